package main

import (
	"github.com/postdeck/cmd"
)

func main() {
	cmd.Execute()
}

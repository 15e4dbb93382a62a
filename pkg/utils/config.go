package utils

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig reads an optional .env file from path and primes viper with the
// process environment so flags and env vars share one lookup surface.
func LoadConfig(path string) {
	if err := godotenv.Load(path + "/.env"); err != nil {
		logrus.Debugf("[CONFIG] No .env file loaded: %v", err)
	}

	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debugf("[CONFIG] viper: %v", err)
	}
}

// CreateFolder ensures every given directory exists.
func CreateFolder(folders ...string) error {
	for _, folder := range folders {
		if err := os.MkdirAll(folder, 0755); err != nil {
			return err
		}
	}
	return nil
}

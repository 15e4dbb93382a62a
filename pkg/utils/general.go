package utils

// PanicIfNeeded panics on error; the REST recovery middleware turns the
// panic into a typed JSON response.
func PanicIfNeeded(err error) {
	if err != nil {
		panic(err)
	}
}

package service

import "fmt"

// ValidationError marks a request rejected for bad input rather than a
// backend failure
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...interface{}) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}

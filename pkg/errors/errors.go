package errors

import (
	goErrors "errors"
)

// ContextError wraps an error with a string describing what operation
// failed. Chains of ContextErrors read like a call stack when printed.
type ContextError struct {
	Context string
	Err     error
}

func (err ContextError) Error() string {
	return err.Context + ": " + err.Err.Error()
}

// Unwrap makes ContextError compatible with the standard errors helpers.
func (err ContextError) Unwrap() error {
	return err.Err
}

// New returns an error with the given message.
func New(msg string) error {
	return goErrors.New(msg)
}

// WithContext annotates err with a description of the operation that failed.
func WithContext(err error, context string) error {
	return ContextError{Context: context, Err: err}
}

// RootCause returns the innermost error in a chain of ContextErrors.
// It's useful for checking the type of the error that started a failure.
func RootCause(err error) error {
	for {
		ce, ok := err.(ContextError)
		if !ok {
			return err
		}
		err = ce.Err
	}
}

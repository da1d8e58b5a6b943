package core

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every argument validation failure in
// min-query. Match it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes a rejected argument.
// Cause, when set, is an additional sentinel the error also matches.
type ArgumentError struct {
	Name   string
	Reason string
	Cause  error
}

func (e *ArgumentError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid argument: %s", e.Reason)
	}
	return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Reason)
}

// Unwrap exposes ErrInvalidArgument and the optional Cause.
func (e *ArgumentError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidArgument, e.Cause}
	}
	return []error{ErrInvalidArgument}
}

// NilArgument reports a required argument that was nil.
func NilArgument(name string) error {
	return &ArgumentError{Name: name, Reason: "must not be nil"}
}

// InvalidArgument reports an argument with a bad value.
func InvalidArgument(name, format string, args ...any) error {
	return &ArgumentError{Name: name, Reason: fmt.Sprintf(format, args...)}
}

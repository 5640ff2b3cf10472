// Copyright © 2019 Shunsuke Tonogai

// Package errors augments the standard errors package with a
// chainable Wrap() method, so call sites can attach context to a
// sentinel without resorting to fmt.Errorf("%w", err).
package errors

import (
	stderr "errors"
	"fmt"
)

var _ error = New("")

// New builds an Error with a message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Newf builds an Error with a formatted message.
func Newf(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Error carries a message plus an optional wrapped cause.
type Error struct {
	msg string
	err error
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap returns the nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap sets the nested error and returns the wrapper
func (e *Error) Wrap(err error) *Error {
	e.err = err
	return e
}

// Is reports whether this error or its cause matches target
func (e *Error) Is(target error) bool {
	return e == target || stderr.Is(e.err, target)
}

// As is a shortcut to the standard lib errors.As
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is is a shortcut to the standard lib errors.Is
func Is(err, target error) bool {
	return stderr.Is(err, target)
}

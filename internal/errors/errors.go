// Package errors lets callers use one import for stdlib matching and
// pkg/errors stack capture.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns a plain error without a stack.
func New(text string) error { return stderrors.New(text) }

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// Wrap annotates err with msg and the caller's stack. A nil err stays nil.
func Wrap(err error, msg string) error { return pkgerrors.Wrap(err, msg) }

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the caller's stack on err. A nil err stays nil.
func WithStack(err error) error { return pkgerrors.WithStack(err) }

// Errorf formats a new error carrying the caller's stack.
func Errorf(format string, args ...any) error { return pkgerrors.Errorf(format, args...) }

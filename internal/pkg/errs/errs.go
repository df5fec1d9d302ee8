package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark tags err so that Is(err, markErr) holds while the message and cause
// chain stay those of err. A nil err yields markErr itself.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is matches marks as well as wrapped chains, which plain errors.Is does not
// see for errors that crossed a Mark boundary.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// IsAny reports whether err matches one of the references.
func IsAny(err error, references ...error) bool {
	return cr.IsAny(err, references...)
}

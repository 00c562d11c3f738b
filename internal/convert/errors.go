// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "errors"

// ErrorKind classifies an extraction failure.
type ErrorKind string

// Error kinds, one per exit status under --strict.
const (
	KindNotFound ErrorKind = "not-found"
	KindParse    ErrorKind = "parse-error"
	KindIO       ErrorKind = "io-error"
)

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrNotFound = &Error{Kind: KindNotFound}
	ErrParse    = &Error{Kind: KindParse}
	ErrIO       = &Error{Kind: KindIO}
)

// Error is an extraction failure with its classification. The message is
// the wrapped error's message so that callers can print it verbatim.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the classification of err, or "" if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

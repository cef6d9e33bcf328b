// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the CLI can pick an exit code and the
// batch report can group them.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindNetwork       ErrorKind = "network"
	KindExtraction    ErrorKind = "extraction"
	KindIO            ErrorKind = "io"
)

// Error is a classified failure. Op names the step that failed and Path,
// when set, the file or URL involved.
type Error struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a kind. A nil err yields nil.
func NewError(kind ErrorKind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Errorf builds a classified error from a format string.
func Errorf(kind ErrorKind, op, path, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost classified error in err's
// chain, or "" when err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

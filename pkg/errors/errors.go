// Package errors provides the structured error type used by the outer
// layers of treeflow (document loading, configuration and the CLI).
//
// The canvas engine in package flow never returns errors; a gesture that
// cannot complete is dropped. Errors appear only where the program talks
// to the outside world: reading tree documents, loading config files,
// rendering output and serving previews.
//
// # Error Codes
//
//   - INVALID_*: a document, flag or config value was rejected
//   - *NOT_FOUND: a file or a node is missing
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // show the allowed formats
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidDocument, cause, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes.
const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidNodeType Code = "INVALID_NODE_TYPE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err, or the outermost *Error in its chain, has code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, or "" if it carries none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix. Other errors
// are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Problems collects independent validation failures so a document can be
// reported in one pass.
type Problems struct {
	Code  Code
	items []string
}

// Addf records one problem.
func (p *Problems) Addf(format string, args ...any) {
	p.items = append(p.items, fmt.Sprintf(format, args...))
}

// Len returns the number of recorded problems.
func (p *Problems) Len() int { return len(p.items) }

// Err returns nil when nothing was recorded, otherwise an *Error listing
// every problem.
func (p *Problems) Err(context string) error {
	switch len(p.items) {
	case 0:
		return nil
	case 1:
		return New(p.Code, "%s: %s", context, p.items[0])
	}
	msg := fmt.Sprintf("%s: %d problems", context, len(p.items))
	for _, it := range p.items {
		msg += "\n  - " + it
	}
	return &Error{Code: p.Code, Message: msg}
}

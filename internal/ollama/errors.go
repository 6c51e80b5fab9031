package ollama

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	// ErrKindConnection means the inference endpoint was unreachable
	ErrKindConnection ErrorKind = "connection"
	// ErrKindTimeout means the per-call deadline elapsed
	ErrKindTimeout ErrorKind = "timeout"
	// ErrKindResponse means a non-success status or malformed payload
	ErrKindResponse ErrorKind = "response"
)

// Error represents a provider-specific error
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ollama: [%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("ollama: [%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a provider error of the given kind.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsProviderError reports whether err belongs to the provider error category.
func IsProviderError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

// KindOf returns the ErrorKind of a provider error, or "" for other errors.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

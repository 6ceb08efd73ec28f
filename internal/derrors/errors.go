// Package derrors provides custom error types for Dworshak.
// Every error carries a stable code so the dispatcher and tests can tell
// failure kinds apart without matching on message text.
package derrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInterrupted marks a handler that stopped because the user interrupted it.
var ErrInterrupted = errors.New("interrupted")

// DworshakError is the base interface for all Dworshak errors
type DworshakError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all Dworshak errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// StoreError represents a failure reading or writing the store file
type StoreError struct {
	baseError
	Path string
}

// NewStoreError creates a new store error
func NewStoreError(path string, message string, cause error) *StoreError {
	return &StoreError{
		baseError: baseError{
			code:    "STORE_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// NotFoundError represents a (service, item) pair that is not stored
type NotFoundError struct {
	baseError
	Service string
	Item    string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(service, item string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: fmt.Sprintf("No value found for %s/%s", service, item),
		},
		Service: service,
		Item:    item,
	}
}

// ReadBackError is returned when a value read after a mutation does not
// match what was written.
type ReadBackError struct {
	baseError
	Service string
	Item    string
}

// NewReadBackError creates a new read-back error
func NewReadBackError(service, item, message string) *ReadBackError {
	return &ReadBackError{
		baseError: baseError{
			code:    "READ_BACK_ERROR",
			message: message,
		},
		Service: service,
		Item:    item,
	}
}

// ValidationError represents a store file that does not match the document schema
type ValidationError struct {
	baseError
	Path string
}

// NewValidationError creates a new validation error
func NewValidationError(path string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// UsageError represents a command invoked with bad arguments
type UsageError struct {
	baseError
	Command string
}

// NewUsageError creates a new usage error
func NewUsageError(command string, message string) *UsageError {
	return &UsageError{
		baseError: baseError{
			code:    "USAGE_ERROR",
			message: message,
		},
		Command: command,
	}
}

// PanicError wraps a value recovered from a panicking handler
type PanicError struct {
	baseError
	Value any
	Stack []byte
}

// NewPanicError creates a new panic error
func NewPanicError(value any, stack []byte) *PanicError {
	return &PanicError{
		baseError: baseError{
			code:    "PANIC",
			message: fmt.Sprintf("panic: %v", value),
		},
		Value: value,
		Stack: stack,
	}
}

// Trace renders the full chain of err, one layer per line, followed by the
// goroutine stack when the chain contains a recovered panic.
func Trace(err error) string {
	var b strings.Builder
	var stack []byte

	for depth := 0; err != nil; depth++ {
		code := "-"
		if de, ok := err.(DworshakError); ok {
			code = de.Code()
		}
		if pe, ok := err.(*PanicError); ok {
			stack = pe.Stack
		}
		fmt.Fprintf(&b, "%s#%d [%s] %T: %s\n", strings.Repeat("  ", depth), depth, code, err, err.Error())
		err = errors.Unwrap(err)
	}

	if len(stack) > 0 {
		b.WriteString("\n")
		b.Write(stack)
	}
	return b.String()
}

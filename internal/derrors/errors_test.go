package derrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewStoreError("/test/config.json", "failed to save store", cause)

	assert.Equal(t, "STORE_ERROR", err.Code())
	assert.Equal(t, "/test/config.json", err.Path)
	assert.Contains(t, err.Error(), "failed to save store")
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("Maxson", "port")

	assert.Equal(t, "NOT_FOUND", err.Code())
	assert.Equal(t, "Maxson", err.Service)
	assert.Equal(t, "port", err.Item)
	assert.Equal(t, "No value found for Maxson/port", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestReadBackError(t *testing.T) {
	err := NewReadBackError("Maxson", "port", "failed to read back stored value")

	assert.Equal(t, "READ_BACK_ERROR", err.Code())
	assert.Equal(t, "Maxson", err.Service)
	assert.Equal(t, "failed to read back stored value", err.Error())
}

func TestValidationError(t *testing.T) {
	cause := fmt.Errorf("invalid type")
	err := NewValidationError("/test/config.json", "store does not match schema", cause)

	assert.Equal(t, "VALIDATION_ERROR", err.Code())
	assert.Equal(t, "/test/config.json", err.Path)
	assert.Contains(t, err.Error(), "invalid type")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestUsageError(t *testing.T) {
	err := NewUsageError("get", "expected 2 arguments, got 1")

	assert.Equal(t, "USAGE_ERROR", err.Code())
	assert.Equal(t, "get", err.Command)
	assert.Equal(t, "expected 2 arguments, got 1", err.Error())
}

func TestPanicError(t *testing.T) {
	err := NewPanicError("boom", []byte("goroutine 1 [running]:"))

	assert.Equal(t, "PANIC", err.Code())
	assert.Equal(t, "panic: boom", err.Error())
	assert.Equal(t, "boom", err.Value)
}

func TestErrorWithoutCause(t *testing.T) {
	err := NewStoreError("/test/config.json", "simple error message", nil)

	assert.Equal(t, "simple error message", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestErrorChaining(t *testing.T) {
	rootCause := fmt.Errorf("root cause")
	storeErr := NewStoreError("/config", "store error", rootCause)
	wrapped := fmt.Errorf("set failed: %w", storeErr)

	var target *StoreError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, rootCause, errors.Unwrap(target))
}

func TestTrace(t *testing.T) {
	rootCause := fmt.Errorf("disk full")
	err := fmt.Errorf("set failed: %w", NewStoreError("/config", "failed to save store", rootCause))

	trace := Trace(err)
	assert.Contains(t, trace, "#0 [-]")
	assert.Contains(t, trace, "#1 [STORE_ERROR] *derrors.StoreError")
	assert.Contains(t, trace, "#2 [-]")
	assert.Contains(t, trace, "disk full")
}

func TestTrace_IncludesPanicStack(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewPanicError("boom", []byte("goroutine 7 [running]:")))

	trace := Trace(err)
	assert.Contains(t, trace, "[PANIC]")
	assert.Contains(t, trace, "goroutine 7 [running]:")
}

func TestTrace_Nil(t *testing.T) {
	assert.Empty(t, Trace(nil))
}

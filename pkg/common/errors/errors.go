package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the goinvoke library

var (
	// ErrNilFunction indicates that a wrapper was constructed around a nil function
	ErrNilFunction = errors.New("function is nil")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError describes a rejected configuration value.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Is makes every ValidationError match ErrInvalidConfiguration.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// PanicError carries a value recovered from a panicking wrapped function.
type PanicError struct {
	Value interface{}
}

// NewPanicError wraps a recovered panic value. If the value is an error it
// stays reachable through Unwrap.
func NewPanicError(v interface{}) *PanicError {
	return &PanicError{Value: v}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("wrapped function panicked: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsConfiguration returns true if the error was caused by invalid configuration
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) || errors.Is(err, ErrNilFunction)
}

// IsValidationError returns true if err is or wraps a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorInput    = 3   // Indicates invalid or insufficient measurement input.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InsufficientDataError indicates that a measurement was requested over too
// few observations, such as an empty response set passed to the consistency
// analyzer. It records how many observations were supplied and how many the
// operation requires.
type InsufficientDataError struct {
	// Got is the number of observations that were supplied.
	Got int
	// Need is the minimum number of observations the operation requires.
	Need int
}

// Error returns a formatted message describing the data shortfall.
//
// Returns:
//   - string: The error message string.
func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: got %d observations, need at least %d", e.Got, e.Need)
}

// InvalidInputError indicates malformed input to a measurement: text the
// distance function cannot process, or a non-finite performance scalar.
// It identifies which field was invalid and provides a human-readable
// explanation.
type InvalidInputError struct {
	// Field is the name of the input that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the invalid input.
//
// Returns:
//   - string: The error message string.
func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for %q: %s", e.Field, e.Message)
}

// NewInvalidInputError creates a new InvalidInputError with a formatted message.
//
// Parameters:
//   - field: The name of the offending input field.
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new InvalidInputError instance.
func NewInvalidInputError(field, format string, a ...any) error {
	return InvalidInputError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// DegenerateBaselineError indicates that the pattern-dependent reference
// baseline evaluated to zero, leaving the coordination ratio undefined.
// The analyzer surfaces this condition instead of dividing by zero.
type DegenerateBaselineError struct {
	// Pattern is the interaction pattern whose combination rule produced
	// the zero reference.
	Pattern string
}

// Error returns a formatted message describing the degenerate baseline.
//
// Returns:
//   - string: The error message string.
func (e DegenerateBaselineError) Error() string {
	return fmt.Sprintf("degenerate baseline: reference for pattern %q is zero, coordination ratio undefined", e.Pattern)
}

// UnknownPatternError indicates an interaction pattern outside the enumerated
// set. The analyzer never silently substitutes a default combination rule.
type UnknownPatternError struct {
	// Pattern is the unrecognized pattern value.
	Pattern string
}

// Error returns a formatted message naming the unrecognized pattern.
//
// Returns:
//   - string: The error message string.
func (e UnknownPatternError) Error() string {
	return fmt.Sprintf("unknown interaction pattern %q (expected sequential, parallel or hierarchical)", e.Pattern)
}

// MeasurementError encapsulates a measurement failure while preserving the
// original cause. This allows for structured error handling and inspection
// of what went wrong during an analyzer run.
type MeasurementError struct {
	// Cause is the underlying error that triggered this measurement error.
	Cause error
}

// Error returns the error message from the underlying cause.
//
// Returns:
//   - string: The error message string from the wrapped error.
func (e MeasurementError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the MeasurementError.
func (e MeasurementError) Unwrap() error { return e.Cause }

// TimeoutError represents a measurement timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

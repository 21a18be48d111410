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
	ExitErrorInput    = 3   // Indicates the input matched no accepted shape.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrInvalidInput is the sentinel matched by every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
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

// InvalidInputError reports a seed collection that matches none of the
// accepted shapes, or an element that cannot be coerced to int64.
type InvalidInputError struct {
	// Reason describes what was wrong with the input.
	Reason string
	// Cause is the underlying coercion error, if any.
	Cause error
}

// Error returns a message that always starts with "invalid input".
func (e InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Reason, e.Cause)
	}
	return "invalid input: " + e.Reason
}

// Unwrap returns the coercion cause.
func (e InvalidInputError) Unwrap() error { return e.Cause }

// Is makes every InvalidInputError match ErrInvalidInput.
func (e InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// NewInvalidInputError creates an InvalidInputError with a formatted reason.
func NewInvalidInputError(format string, a ...any) error {
	return InvalidInputError{Reason: fmt.Sprintf(format, a...)}
}

// CalculationError encapsulates an evaluation failure while preserving the
// original cause. Panics recovered from evaluation chunks are reported this way.
type CalculationError struct {
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var (
		cfgErr     ConfigError
		valErr     ValidationError
		timeoutErr TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, ErrInvalidInput):
		return ExitErrorInput
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

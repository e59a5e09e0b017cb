package errors

import (
	"fmt"
)

// KitError is the structured error type for ymjkit.
// It provides rich context for error handling, logging, and user presentation.
type KitError struct {
	// Code is the unique error code (e.g., "ERR_101_MISSING_HEADER").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Format, IO, Provider, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *KitError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *KitError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with KitError.
func (e *KitError) Is(target error) bool {
	if t, ok := target.(*KitError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *KitError) WithDetail(key, value string) *KitError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *KitError) WithSuggestion(suggestion string) *KitError {
	e.Suggestion = suggestion
	return e
}

// New creates a new KitError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *KitError {
	return &KitError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Newf creates a new KitError with a formatted message.
func Newf(code string, format string, args ...any) *KitError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates a KitError from an existing error.
// The error's message becomes the KitError message.
func Wrap(code string, err error) *KitError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// FormatError creates a document format error.
func FormatError(code string, message string, cause error) *KitError {
	return New(code, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *KitError {
	return New(ErrCodeFileRead, message, cause)
}

// ProviderError creates an embedding-backend error.
// Provider errors are typically retryable.
func ProviderError(message string, cause error) *KitError {
	return New(ErrCodeProviderUnavailable, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *KitError {
	return New(ErrCodeInvalidInput, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is a KitError with Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if ke, ok := err.(*KitError); ok {
		return ke.Retryable
	}
	return false
}

// GetCode extracts the error code from a KitError.
// Returns empty string if not a KitError.
func GetCode(err error) string {
	if ke, ok := err.(*KitError); ok {
		return ke.Code
	}
	return ""
}

// GetCategory extracts the category from a KitError.
// Returns empty string if not a KitError.
func GetCategory(err error) Category {
	if ke, ok := err.(*KitError); ok {
		return ke.Category
	}
	return ""
}

// IsFormat reports whether the error is a document format error.
func IsFormat(err error) bool {
	return GetCategory(err) == CategoryFormat
}

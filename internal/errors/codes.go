// Package errors provides structured error handling for ymjkit.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Document format errors (header framing, header parsing)
//   - 2XX: IO errors (file, disk)
//   - 3XX: Provider errors (embedding backend)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryFormat indicates YMJ document format errors.
	CategoryFormat Category = "FORMAT"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryProvider indicates embedding backend errors.
	CategoryProvider Category = "PROVIDER"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Format errors (100-199)
	ErrCodeMissingHeader  = "ERR_101_MISSING_HEADER"
	ErrCodeUnclosedHeader = "ERR_102_UNCLOSED_HEADER"
	ErrCodeInvalidHeader  = "ERR_103_INVALID_HEADER"
	ErrCodeFooterDecode   = "ERR_110_FOOTER_DECODE"

	// IO errors (200-299)
	ErrCodeFileNotFound = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFileRead     = "ERR_202_FILE_READ"
	ErrCodeFileWrite    = "ERR_203_FILE_WRITE"
	ErrCodeFileLocked   = "ERR_204_FILE_LOCKED"

	// Provider errors (300-399)
	ErrCodeProviderUnavailable = "ERR_301_PROVIDER_UNAVAILABLE"
	ErrCodeProviderTimeout     = "ERR_302_PROVIDER_TIMEOUT"
	ErrCodeEmptyInput          = "ERR_303_EMPTY_INPUT"
	ErrCodeEmbeddingFailed     = "ERR_304_EMBEDDING_FAILED"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidTopK  = "ERR_402_INVALID_TOP_K"
	ErrCodeInvalidPath  = "ERR_403_INVALID_PATH"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeSearchFailed = "ERR_502_SEARCH_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_MISSING_HEADER")
	switch code[4] {
	case '1':
		return CategoryFormat
	case '2':
		return CategoryIO
	case '3':
		return CategoryProvider
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	if isRetryableCode(code) {
		return SeverityWarning
	}
	return SeverityError
}

// isRetryableCode checks if an error code represents a retryable error.
// Only transient provider conditions are retryable; format and validation
// errors will fail identically on retry.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeProviderUnavailable, ErrCodeProviderTimeout:
		return true
	}
	return false
}

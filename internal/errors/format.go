package errors

import (
	"fmt"
	"strings"
)

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	ke, ok := err.(*KitError)
	if !ok {
		// Wrap standard error
		ke = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", ke.Message))

	if ke.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", ke.Suggestion))
	}

	sb.WriteString(fmt.Sprintf("  Code: %s\n", ke.Code))

	return sb.String()
}

// UserMessage returns just the human-readable message for an error,
// without the code prefix. Used for per-file diagnostics in batch loops.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if ke, ok := err.(*KitError); ok {
		return ke.Message
	}
	return err.Error()
}

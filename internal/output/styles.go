package output

import "github.com/charmbracelet/lipgloss"

// Color palette, kept to a small set of ANSI 256 codes.
const (
	colorGreen  = "40"  // Success
	colorRed    = "196" // Errors
	colorYellow = "220" // Warnings
	colorGray   = "245" // Secondary text
)

// Styles holds the text styles used by the Writer.
type Styles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles returns the style set. When styled is false all styles are
// no-ops, so output is plain text for pipes and redirects.
func NewStyles(styled bool) Styles {
	if !styled {
		return Styles{
			Success: lipgloss.NewStyle(),
			Warning: lipgloss.NewStyle(),
			Error:   lipgloss.NewStyle(),
			Dim:     lipgloss.NewStyle(),
		}
	}
	return Styles{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
	}
}

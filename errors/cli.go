package errors

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string

	// NeedsInspection is set when the repository may have been left in a
	// state the user should look at before doing anything else.
	NeedsInspection bool
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

var (
	colorFail  = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorWarn  = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorMuted = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}

	messageStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorFail)
	detailStyle     = lipgloss.NewStyle().Foreground(colorMuted).PaddingLeft(2)
	suggestionStyle = lipgloss.NewStyle().PaddingLeft(2)
	inspectStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
)

// Render formats the error for a terminal.
func (e *CLIError) Render() string {
	var sb strings.Builder
	sb.WriteString(messageStyle.Render("✗ " + e.Message))
	sb.WriteString("\n")

	if e.Details != "" && e.Details != e.Message {
		sb.WriteString(detailStyle.Render(e.Details))
		sb.WriteString("\n")
	}
	if e.NeedsInspection {
		sb.WriteString(inspectStyle.Render("⚠ Check the state of your repository before running anything else."))
		sb.WriteString("\n")
	}
	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(suggestionStyle.Render(e.Suggestion))
		sb.WriteString("\n")
	}

	return sb.String()
}

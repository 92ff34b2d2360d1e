package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorRunID).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorHeading).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorPath).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorBranch)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorKey)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorValue)

	ValidStyle = lipgloss.NewStyle().
			Foreground(ColorValid)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorInvalid)

	EngineStyle = lipgloss.NewStyle().
			Foreground(ColorEngine).
			Bold(true)

	RetryStyle = lipgloss.NewStyle().
			Foreground(ColorRetry)
)

// ValidText styles valid status text (green)
func ValidText(text string) string {
	return ValidStyle.Render(text)
}

// ErrorText styles error text (red)
func ErrorText(text string) string {
	return ErrorStyle.Render(text)
}

// PathText styles file paths (gray)
func PathText(text string) string {
	return InfoStyle.Render(text)
}

// EngineText styles an interpreter or executor name (magenta)
func EngineText(text string) string {
	return EngineStyle.Render(text)
}

// RetryText styles retry settings (orange)
func RetryText(text string) string {
	return RetryStyle.Render(text)
}

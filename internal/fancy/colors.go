package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette for the validate report, named by what each color marks.
var (
	ColorRunID   = lipgloss.Color("39")  // Blue
	ColorHeading = lipgloss.Color("15")  // White
	ColorPath    = lipgloss.Color("250") // Light gray
	ColorBranch  = lipgloss.Color("240") // Dark gray
	ColorKey     = lipgloss.Color("45")  // Cyan
	ColorValue   = lipgloss.Color("228") // Yellow
	ColorValid   = lipgloss.Color("82")  // Green
	ColorInvalid = lipgloss.Color("196") // Red

	// ColorEngine marks the interpreter or executor running the script.
	ColorEngine = lipgloss.Color("201") // Magenta
	// ColorRetry marks retry counts and exempt status codes.
	ColorRetry = lipgloss.Color("208") // Orange
)

// Package style provides terminal output styling for CLI commands.
package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Core styles used across command output.
var (
	Bold    = lipgloss.NewStyle().Bold(true)
	Dim     = lipgloss.NewStyle().Faint(true)
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Pre-rendered status prefixes for aligned list output.
var (
	SuccessPrefix = Success.Render("✓")
	WarningPrefix = Warning.Render("⚠")
	ErrorPrefix   = Error.Render("✗")
)

// PrintWarning prints a warning line with the standard prefix.
func PrintWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", WarningPrefix, fmt.Sprintf(format, args...))
}

// PrintError prints an error line with the standard prefix.
func PrintError(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", ErrorPrefix, fmt.Sprintf(format, args...))
}

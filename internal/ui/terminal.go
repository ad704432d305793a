// Package ui provides terminal detection and shared rendering helpers.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/skulk-project/skulk/internal/style"
)

// IsTerminal reports whether stdout is a TTY.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor reports whether output should carry ANSI color.
// Precedence follows the usual conventions: NO_COLOR
// (https://no-color.org/) always disables, then CLICOLOR=0 disables,
// then CLICOLOR_FORCE enables even without a TTY, then TTY detection.
func ShouldUseColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if _, set := os.LookupEnv("CLICOLOR_FORCE"); set {
		return true
	}
	return IsTerminal()
}

// ShouldUseEmoji reports whether icons render as emoji. SKULK_NO_EMOJI
// disables them, and non-TTY output stays plain either way.
func ShouldUseEmoji() bool {
	if _, set := os.LookupEnv("SKULK_NO_EMOJI"); set {
		return false
	}
	return IsTerminal()
}

// ConfigureColor applies the color policy to lipgloss rendering.
// Call once at startup, before any styled output. EnvColorProfile
// keeps CLICOLOR_FORCE working without a TTY.
func ConfigureColor() {
	if !ShouldUseColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// Check icons fall back to ASCII when emoji is off. Fallback glyphs
// must stay single width; doctor pads them into fixed columns.

// RenderPassIcon returns the styled icon for a passing check.
func RenderPassIcon() string {
	if !ShouldUseEmoji() {
		return style.Success.Render("+")
	}
	return style.Success.Render("✓")
}

// RenderWarnIcon returns the styled icon for a warning.
func RenderWarnIcon() string {
	if !ShouldUseEmoji() {
		return style.Warning.Render("!")
	}
	return style.Warning.Render("⚠")
}

// RenderFailIcon returns the styled icon for a failing check.
func RenderFailIcon() string {
	if !ShouldUseEmoji() {
		return style.Error.Render("x")
	}
	return style.Error.Render("✗")
}

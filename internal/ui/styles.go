// Package ui renders terminal output for the CLI: the completion summary
// after a provisioning run and the doctor diagnostics. Output is styled
// with lipgloss on interactive terminals and plain otherwise.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Colors
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

// plain is the identity styleFunc used for non-TTY output.
func plain(s string) string { return s }

// palette groups the styleFuncs a renderer needs.
type palette struct {
	title   styleFunc
	section styleFunc
	ok      styleFunc
	fail    styleFunc
	warn    styleFunc
	dim     styleFunc
}

func newPalette(styled bool) palette {
	if !styled {
		return palette{plain, plain, plain, plain, plain, plain}
	}
	return palette{
		title:   sf(titleStyle),
		section: sf(sectionStyle),
		ok:      sf(okStyle),
		fail:    sf(failStyle),
		warn:    sf(warningStyle),
		dim:     sf(dimStyle),
	}
}

// IsInteractive reports whether stdout is an interactive terminal.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

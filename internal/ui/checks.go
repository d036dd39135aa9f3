package ui

import (
	"fmt"
	"strings"
)

// Check is a single diagnostic result line.
type Check struct {
	Name string
	OK   bool
	// Required controls how a failed check renders: failed required
	// checks are errors, failed optional checks are warnings.
	Required bool
	Detail   string
}

// RenderChecks renders diagnostic results, one line per check.
func RenderChecks(title string, checks []Check, styled bool) string {
	p := newPalette(styled)
	var b strings.Builder

	b.WriteString(p.title(title))
	b.WriteString("\n\n")

	for _, c := range checks {
		mark := p.ok(checkMark)
		if !c.OK {
			if c.Required {
				mark = p.fail(crossMark)
			} else {
				mark = p.warn(warnMark)
			}
		}
		fmt.Fprintf(&b, "  %s %s", mark, c.Name)
		if c.Detail != "" {
			b.WriteString(p.dim(fmt.Sprintf("  %s", c.Detail)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

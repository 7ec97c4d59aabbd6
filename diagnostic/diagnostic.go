// Package diagnostic renders scanner, parser, and runtime errors the
// way spec.md §6/§7 describes: "<line>: Error: <message>", with the
// word "Error" in bold red and the message in plain red.
package diagnostic

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorLabelColor = lipgloss.Color("#EF4444")

	errorLabelStyle = lipgloss.NewStyle().
			Foreground(errorLabelColor).
			Bold(true)

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(errorLabelColor)
)

// Report writes one "<line>: Error: <message>" diagnostic to w.
func Report(w io.Writer, line int, message string) {
	fmt.Fprintf(w, "%d: %s %s\n", line, errorLabelStyle.Render("Error:"), errorMessageStyle.Render(message))
}

// ReportUsage writes a line-less diagnostic for usage and I/O failures
// (spec.md §7), styled the same way minus the leading line number.
func ReportUsage(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", errorLabelStyle.Render("Error:"), errorMessageStyle.Render(message))
}

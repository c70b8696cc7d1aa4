// Package output provides terminal output formatting utilities for the
// relcut CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Success prints a green checkmarked line for a completed step.
func Success(out io.Writer, format string, args ...any) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// Info prints a cyan informational line.
func Info(out io.Writer, format string, args ...any) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintln(out, cyan(fmt.Sprintf(format, args...)))
}

// Warning prints a yellow warning line.
func Warning(out io.Writer, format string, args ...any) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), fmt.Sprintf(format, args...))
}

// Failure prints a red failure line.
func Failure(out io.Writer, format string, args ...any) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), fmt.Sprintf(format, args...))
}

// Emphasize returns s styled bold white, for version numbers and tag names
// embedded in surrounding text.
func Emphasize(s string) string {
	return color.New(color.FgWhite, color.Bold).Sprint(s)
}

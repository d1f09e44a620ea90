package cmd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/collabintel/ci/internal/core/kb"
)

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// interactive reports whether both stdin and stdout are terminals, which is
// what the bubbletea prompts need.
func interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// terminalWidth returns the width of stdout, or fallback when it is not a
// terminal.
func terminalWidth(fallback int) int {
	if !isTerminal(os.Stdout) {
		return fallback
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// printDiagnostics writes parser diagnostics, one per line.
func printDiagnostics(w io.Writer, diags []kb.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", warnStyle.Render("Warnings"), len(diags))
	for _, d := range diags {
		fmt.Fprintf(w, "  [%s] %s\n", d.Kind, d)
	}
}

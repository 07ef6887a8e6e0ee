// Package controller provides output adapters for presenting run results.
package controller

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "tally.dev/pkg/tally/internal/model"
)

// UI defines the interface for presenting run summaries.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplaySummary prints the per-project summary for one rendered run.
	DisplaySummary(name string, summary m.RunSummary) error
	// Browse opens an interactive view over a run's records; non-interactive
	// implementations fall back to a plain listing.
	Browse(title string, summary m.RunSummary, records []m.ResultRecord) error
}

// NewUI returns the UI appropriate for the output: interactive when the
// output is a terminal, plain text otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(os.Stdout, NewSimpleUI(cmd))
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

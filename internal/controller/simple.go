package controller

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "tally.dev/pkg/tally/internal/model"
	"tally.dev/pkg/tally/internal/render"
)

var (
	passedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySummary prints the per-project counts as a table followed by the
// run verdict line.
func (s *SimpleUI) DisplaySummary(name string, summary m.RunSummary) error {
	if name != "" {
		if err := s.printf("\n%s\n", name); err != nil {
			return err
		}
	}

	if err := s.printf("%s", renderSummaryTable(summary)); err != nil {
		return err
	}

	verdict := passedStyle.Render("PASSED")

	switch summary.OverallStatus {
	case m.RunFailed:
		verdict = failedStyle.Render("FAILED")
	case m.RunInterrupted:
		verdict = skippedStyle.Render("INTERRUPTED")
	case m.RunPassed:
	}

	return s.printf("%s · %d tests · %s%% passed · %s\n",
		verdict, summary.Total, summary.PassRate, render.FormatDuration(summary.DurationMs))
}

func renderSummaryTable(summary m.RunSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Project", "Passed", "Failed", "Skipped", "Total"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, group := range summary.ByProject {
		passed, failed, skipped := 0, 0, 0

		for _, record := range group.Records {
			switch record.Status {
			case m.StatusPassed:
				passed++
			case m.StatusFailed:
				failed++
			case m.StatusSkipped:
				skipped++
			case m.StatusTimedOut, m.StatusInterrupted:
			}
		}

		table.Append([]string{
			group.Name,
			fmt.Sprintf("%d", passed),
			fmt.Sprintf("%d", failed),
			fmt.Sprintf("%d", skipped),
			fmt.Sprintf("%d", len(group.Records)),
		})
	}

	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d", summary.Passed),
		fmt.Sprintf("%d", summary.Failed),
		fmt.Sprintf("%d", summary.Skipped),
		fmt.Sprintf("%d", summary.Total),
	})

	table.Render()

	return tableBuffer.String()
}

// Browse prints a plain listing of every record; SimpleUI has no
// interactive mode.
func (s *SimpleUI) Browse(title string, summary m.RunSummary, records []m.ResultRecord) error {
	if err := s.DisplaySummary(title, summary); err != nil {
		return err
	}

	for i, record := range records {
		if err := s.printf("%4d %s %s (%s) %s\n",
			i+1, render.StatusIcon(record.Status), record.Title,
			record.Project, render.FormatDuration(record.Duration)); err != nil {
			return err
		}
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
	return err
}

package controller

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "tally.dev/pkg/tally/internal/model"
)

func testSummary() m.RunSummary {
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	return m.RunSummary{
		StartTime:     start,
		EndTime:       start.Add(30 * time.Second),
		DurationMs:    30000,
		Total:         3,
		Passed:        2,
		Failed:        1,
		PassRate:      "66.7",
		OverallStatus: m.RunFailed,
		ByProject: []m.Group{
			{Name: "chromium", Records: []m.ResultRecord{
				{Title: "a", Status: m.StatusPassed},
				{Title: "b", Status: m.StatusFailed},
			}},
			{Name: "firefox", Records: []m.ResultRecord{
				{Title: "c", Status: m.StatusPassed},
			}},
		},
	}
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return cmd, out
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	cmd, out := newTestCmd()
	ui := NewSimpleUI(cmd)

	err := ui.DisplaySummary("nightly", testSummary())
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "nightly")
	assert.Contains(t, output, "chromium")
	assert.Contains(t, output, "firefox")
	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "66.7%")
	assert.Contains(t, output, "3 tests")
	assert.Contains(t, output, "30.0s")
}

func TestSimpleUI_DisplaySummary_NoName(t *testing.T) {
	cmd, out := newTestCmd()
	ui := NewSimpleUI(cmd)

	summary := testSummary()
	summary.OverallStatus = m.RunPassed

	err := ui.DisplaySummary("", summary)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "PASSED")
}

func TestSimpleUI_BrowseListsEveryRecord(t *testing.T) {
	cmd, out := newTestCmd()
	ui := NewSimpleUI(cmd)

	records := []m.ResultRecord{
		{Title: "first", Project: "chromium", Status: m.StatusPassed, Duration: 100},
		{Title: "second", Project: "firefox", Status: m.StatusFailed, Duration: 2500},
	}

	err := ui.Browse("Smoke", testSummary(), records)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "first")
	assert.Contains(t, output, "second")
	assert.Contains(t, output, "2.5s")
}

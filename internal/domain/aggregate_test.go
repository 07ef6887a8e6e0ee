package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "tally.dev/pkg/tally/internal/model"
)

var summarizeStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestSummarize_ThreeCompletions(t *testing.T) {
	records := []m.ResultRecord{
		{Title: "a", Project: "projectA", File: "a.spec.ts", Status: m.StatusPassed},
		{Title: "b", Project: "projectB", File: "b.spec.ts", Status: m.StatusFailed, Errors: []m.TestError{{Message: "Timeout"}}},
		{Title: "c", Project: "projectA", File: "a.spec.ts", Status: m.StatusPassed, Retries: 2},
	}

	summary := Summarize(records, summarizeStart, summarizeStart.Add(90*time.Second), m.RunFailed)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.TimedOut)
	assert.Equal(t, 1, summary.Flaky)
	assert.Equal(t, "66.7", summary.PassRate)
	assert.Equal(t, 90000, summary.DurationMs)

	require.Len(t, summary.ByProject, 2)
	assert.Equal(t, "projectA", summary.ByProject[0].Name)
	assert.Len(t, summary.ByProject[0].Records, 2)
	assert.Equal(t, "projectB", summary.ByProject[1].Name)
	assert.Len(t, summary.ByProject[1].Records, 1)
}

func TestSummarize_EmptyRun(t *testing.T) {
	summary := Summarize(nil, summarizeStart, summarizeStart, m.RunPassed)

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, "0.0", summary.PassRate)
	assert.Empty(t, summary.ByProject)
	assert.Empty(t, summary.ByFile)
}

func TestSummarize_StatusCountsSumToTotal(t *testing.T) {
	records := []m.ResultRecord{
		{Status: m.StatusPassed},
		{Status: m.StatusPassed, Retries: 1},
		{Status: m.StatusFailed, Retries: 2},
		{Status: m.StatusSkipped},
		{Status: m.StatusTimedOut},
	}

	summary := Summarize(records, summarizeStart, summarizeStart.Add(time.Second), m.RunFailed)

	// Flaky overlaps passed; it is not part of the disjoint sum.
	assert.Equal(t, summary.Total, summary.Passed+summary.Failed+summary.Skipped+summary.TimedOut)
	assert.Equal(t, 1, summary.Flaky)
}

func TestSummarize_InterruptedCountsInTotalOnly(t *testing.T) {
	records := []m.ResultRecord{
		{Status: m.StatusPassed},
		{Status: m.StatusInterrupted},
	}

	summary := Summarize(records, summarizeStart, summarizeStart.Add(time.Second), m.RunInterrupted)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Total-summary.Passed-summary.Failed-summary.Skipped-summary.TimedOut)
	assert.Equal(t, "50.0", summary.PassRate)
}

func TestSummarize_GroupingPreservesEncounterOrder(t *testing.T) {
	records := []m.ResultRecord{
		{Title: "first", Project: "webkit", File: "z.spec.ts"},
		{Title: "second", Project: "chromium", File: "a.spec.ts"},
		{Title: "third", Project: "webkit", File: "z.spec.ts"},
		{Title: "fourth", Project: "default", File: "unknown"},
	}

	summary := Summarize(records, summarizeStart, summarizeStart.Add(time.Second), m.RunPassed)

	require.Len(t, summary.ByProject, 3)
	assert.Equal(t, "webkit", summary.ByProject[0].Name)
	assert.Equal(t, "chromium", summary.ByProject[1].Name)
	assert.Equal(t, "default", summary.ByProject[2].Name)
	assert.Equal(t, "first", summary.ByProject[0].Records[0].Title)
	assert.Equal(t, "third", summary.ByProject[0].Records[1].Title)

	require.Len(t, summary.ByFile, 3)
	assert.Equal(t, "z.spec.ts", summary.ByFile[0].Name)
	assert.Equal(t, "a.spec.ts", summary.ByFile[1].Name)
	assert.Equal(t, "unknown", summary.ByFile[2].Name)
}

func TestSummarize_FailedAfterRetriesIsNotFlaky(t *testing.T) {
	records := []m.ResultRecord{
		{Status: m.StatusFailed, Retries: 3},
	}

	summary := Summarize(records, summarizeStart, summarizeStart.Add(time.Second), m.RunFailed)

	assert.Equal(t, 0, summary.Flaky)
}

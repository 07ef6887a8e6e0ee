// Package domain implements the aggregation and orchestration logic for
// test run reporting.
package domain

import (
	"fmt"
	"time"

	m "tally.dev/pkg/tally/internal/model"
)

// Summarize computes a RunSummary over the accumulated records.
//
// Counts are linear tallies by status. Flaky is a compound predicate
// (passed AND retries>0): a flaky test is also counted in passed, so
// passed+failed+skipped+timedOut == total while flaky overlaps passed.
func Summarize(records []m.ResultRecord, startTime, endTime time.Time, overallStatus m.RunStatus) m.RunSummary {
	summary := m.RunSummary{
		StartTime:     startTime,
		EndTime:       endTime,
		DurationMs:    int(endTime.Sub(startTime).Milliseconds()),
		Total:         len(records),
		OverallStatus: overallStatus,
	}

	for _, record := range records {
		switch record.Status {
		case m.StatusPassed:
			summary.Passed++
		case m.StatusFailed:
			summary.Failed++
		case m.StatusSkipped:
			summary.Skipped++
		case m.StatusTimedOut:
			summary.TimedOut++
		case m.StatusInterrupted:
			// Counted in Total only.
		}

		if record.Flaky() {
			summary.Flaky++
		}
	}

	summary.PassRate = passRate(summary.Passed, summary.Total)
	summary.ByProject = groupBy(records, func(r m.ResultRecord) string { return r.Project })
	summary.ByFile = groupBy(records, func(r m.ResultRecord) string { return r.File })

	return summary
}

// passRate formats passed/total*100 with one decimal, guarding the
// empty-run divide by zero.
func passRate(passed, total int) string {
	if total == 0 {
		return "0.0"
	}

	return fmt.Sprintf("%.1f", float64(passed)/float64(total)*100)
}

// groupBy buckets records by key, preserving first-seen key order and the
// encounter order of records within each bucket. Empty or defaulted keys
// still create a group under that value.
func groupBy(records []m.ResultRecord, key func(m.ResultRecord) string) []m.Group {
	index := make(map[string]int)

	var groups []m.Group

	for _, record := range records {
		k := key(record)

		i, seen := index[k]
		if !seen {
			i = len(groups)
			index[k] = i
			groups = append(groups, m.Group{Name: k})
		}

		groups[i].Records = append(groups[i].Records, record)
	}

	return groups
}

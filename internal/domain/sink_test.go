package domain

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "tally.dev/pkg/tally/internal/model"
)

func TestSink_FullRunWritesReport(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "nested", "report")
	var out bytes.Buffer

	sink := NewSink(SinkOptions{OutputDir: outputDir, Title: "Nightly", Out: &out})

	sink.OnRunStart(m.RunConfig{})
	sink.OnTestComplete(
		m.TestDescriptor{Title: "login", File: "login.spec.ts", Project: "chromium"},
		m.Outcome{Status: m.StatusPassed, Duration: 800},
	)
	sink.OnTestComplete(
		m.TestDescriptor{Title: "checkout", File: "checkout.spec.ts", Project: "firefox"},
		m.Outcome{Status: m.StatusFailed, Duration: 1500, Errors: []m.TestError{{Message: "Timeout"}}},
	)
	sink.OnRunEnd(m.RunFailed)

	reportPath := filepath.Join(outputDir, ReportFileName)
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err, "report should exist with intermediate directories created")

	document := string(data)
	assert.Contains(t, document, "Nightly")
	assert.Contains(t, document, "login")
	assert.Contains(t, document, "Timeout")
	assert.Contains(t, out.String(), reportPath)
}

func TestSink_OverwritesPriorReport(t *testing.T) {
	outputDir := t.TempDir()
	reportPath := filepath.Join(outputDir, ReportFileName)
	require.NoError(t, os.WriteFile(reportPath, []byte("stale"), 0o600))

	sink := NewSink(SinkOptions{OutputDir: outputDir, Out: &bytes.Buffer{}})
	sink.OnRunStart(m.RunConfig{})
	sink.OnRunEnd(m.RunPassed)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestSink_RecordsKeepCompletionOrder(t *testing.T) {
	sink := NewSink(SinkOptions{OutputDir: t.TempDir(), Out: &bytes.Buffer{}})
	sink.OnRunStart(m.RunConfig{})

	titles := []string{"third declared", "first declared", "second declared"}
	for _, title := range titles {
		sink.OnTestComplete(m.TestDescriptor{Title: title}, m.Outcome{Status: m.StatusPassed})
	}

	records := sink.Records()
	require.Len(t, records, 3)

	for i, title := range titles {
		assert.Equal(t, title, records[i].Title)
	}
}

func TestSink_MissingFieldsDegradeToDefaults(t *testing.T) {
	sink := NewSink(SinkOptions{OutputDir: t.TempDir(), Out: &bytes.Buffer{}})
	sink.OnRunStart(m.RunConfig{})
	sink.OnTestComplete(m.TestDescriptor{Title: "bare"}, m.Outcome{Status: m.StatusPassed})

	records := sink.Records()
	require.Len(t, records, 1)
	assert.Equal(t, m.DefaultFile, records[0].File)
	assert.Equal(t, m.DefaultProject, records[0].Project)
}

func TestSink_WriteFailureDoesNotPanic(t *testing.T) {
	// Using an existing file as the output directory makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o600))

	var out bytes.Buffer

	sink := NewSink(SinkOptions{OutputDir: blocker, Out: &out})
	sink.OnRunStart(m.RunConfig{})
	sink.OnTestComplete(m.TestDescriptor{Title: "x"}, m.Outcome{Status: m.StatusPassed})

	require.NotPanics(t, func() {
		sink.OnRunEnd(m.RunPassed)
	})

	assert.Empty(t, out.String(), "no notice when nothing was written")
}

func TestSink_ZeroValueOptionsUseDefaults(t *testing.T) {
	sink := NewSink(SinkOptions{Out: &bytes.Buffer{}})

	assert.Equal(t, DefaultOutputDir, sink.opts.OutputDir)
	assert.Equal(t, DefaultReportTitle, sink.opts.Title)
}

func TestSink_RunConfigOverridesTitleAndStartTime(t *testing.T) {
	outputDir := t.TempDir()
	start := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Minute)

	sink := NewSink(SinkOptions{
		OutputDir: outputDir,
		Out:       &bytes.Buffer{},
		Now:       func() time.Time { return end },
	})

	sink.OnRunStart(m.RunConfig{Title: "Replayed Run", StartTime: start})
	sink.OnRunEnd(m.RunPassed)

	data, err := os.ReadFile(filepath.Join(outputDir, ReportFileName))
	require.NoError(t, err)

	document := string(data)
	assert.Contains(t, document, "Replayed Run")
	assert.Contains(t, document, "2m 0s")
}

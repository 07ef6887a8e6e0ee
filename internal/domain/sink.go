package domain

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally.dev/pkg/tally/internal/adapter"
	m "tally.dev/pkg/tally/internal/model"
	"tally.dev/pkg/tally/internal/render"
)

// Defaults for sink options.
const (
	DefaultOutputDir   = ".tally-report"
	DefaultReportTitle = "Test Run Report"
	ReportFileName     = "index.html"
)

// Reporter receives the run lifecycle events from a host test runner:
// one run-start, one completion per finished test (in completion order,
// serialized by the host), and one run-end.
type Reporter interface {
	OnRunStart(cfg m.RunConfig)
	OnTestComplete(test m.TestDescriptor, outcome m.Outcome)
	OnRunEnd(status m.RunStatus)
}

// SinkOptions configures a Sink. The zero value uses the defaults.
type SinkOptions struct {
	// OutputDir is where index.html is written.
	OutputDir string
	// Title is the report page title.
	Title string
	// Out receives the one-line notice naming the written report.
	Out io.Writer
	// Journal, when set, receives every event as it happens so an
	// interrupted run can still be rendered afterwards.
	Journal *adapter.Journal
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Sink accumulates result records over one run and writes the HTML report
// when the run ends. One Sink serves exactly one run; construct it at run
// start and discard it after the report is written.
//
// No error escapes the Reporter methods: the host's exit status must
// reflect test outcomes, never reporting failures, so problems are logged
// and swallowed.
type Sink struct {
	opts      SinkOptions
	now       func() time.Time
	startTime time.Time
	records   []m.ResultRecord
}

// NewSink creates a Sink for a single run.
func NewSink(opts SinkOptions) *Sink {
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}

	if opts.Title == "" {
		opts.Title = DefaultReportTitle
	}

	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Sink{opts: opts, now: now}
}

// OnRunStart captures the run's start time and title.
func (s *Sink) OnRunStart(cfg m.RunConfig) {
	s.startTime = cfg.StartTime
	if s.startTime.IsZero() {
		s.startTime = s.now()
	}

	if cfg.Title != "" {
		s.opts.Title = cfg.Title
	}

	s.records = s.records[:0]

	if s.opts.Journal != nil {
		if err := s.opts.Journal.Start(s.opts.Title, s.startTime); err != nil {
			slog.Warn("failed to journal run start", "error", err)
		}
	}

	slog.Info("run started", "title", s.opts.Title, "startTime", s.startTime)
}

// OnTestComplete appends one normalized record. Missing descriptor fields
// degrade to defaults; this method never fails.
func (s *Sink) OnTestComplete(test m.TestDescriptor, outcome m.Outcome) {
	record := m.NewResultRecord(test, outcome)
	s.records = append(s.records, record)

	if s.opts.Journal != nil {
		if err := s.opts.Journal.Record(record); err != nil {
			slog.Warn("failed to journal record", "test", record.Title, "error", err)
		}
	}

	slog.Debug("test completed", "test", record.Title, "status", record.Status, "project", record.Project)
}

// OnRunEnd aggregates the accumulated records, renders the report, and
// writes it to {OutputDir}/index.html, creating directories as needed.
func (s *Sink) OnRunEnd(status m.RunStatus) {
	endTime := s.now()

	if s.opts.Journal != nil {
		if err := s.opts.Journal.End(endTime, status); err != nil {
			slog.Warn("failed to journal run end", "error", err)
		}
	}

	summary := Summarize(s.records, s.startTime, endTime, status)
	document := render.Render(summary, s.records, s.opts.Title)

	if err := s.write(document); err != nil {
		slog.Error("failed to write report", "dir", s.opts.OutputDir, "error", err)
		return
	}

	reportPath := filepath.Join(s.opts.OutputDir, ReportFileName)
	fmt.Fprintf(s.opts.Out, "Report written to %s\n", reportPath)
	slog.Info("report written", "path", reportPath, "tests", summary.Total)
}

// Records returns the records accumulated so far, in completion order.
func (s *Sink) Records() []m.ResultRecord {
	return s.records
}

func (s *Sink) write(document string) error {
	if err := os.MkdirAll(s.opts.OutputDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(s.opts.OutputDir, ReportFileName)
	if err := os.WriteFile(path, []byte(document), 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

package model

import "time"

// RunStatus is the host runner's verdict for the whole run.
type RunStatus string

const (
	// RunPassed indicates every test in the run passed.
	RunPassed RunStatus = "passed"
	// RunFailed indicates at least one test failed.
	RunFailed RunStatus = "failed"
	// RunInterrupted indicates the run was stopped before completion.
	RunInterrupted RunStatus = "interrupted"
)

// Group is an ordered grouping of records under one key, preserving the
// order records were encountered.
type Group struct {
	Name    string
	Records []ResultRecord
}

// RunSummary holds the aggregate statistics derived from a run's records.
// It is computed once at run end and owned by the renderer for one call.
type RunSummary struct {
	StartTime  time.Time
	EndTime    time.Time
	DurationMs int

	Total    int
	Passed   int
	Failed   int
	Skipped  int
	TimedOut int
	Flaky    int

	// PassRate is passed/total*100 rendered with one decimal, "0.0" for
	// an empty run.
	PassRate string

	ByProject []Group
	ByFile    []Group

	OverallStatus RunStatus
}

// Path represents a file system path.
type Path string

// RunConfig is the run-start notification payload from the host runner.
// StartTime may be set by hosts replaying a recorded run; when zero the
// sink captures the wall clock instead.
type RunConfig struct {
	Title     string
	StartTime time.Time
}

// Run is a recorded test run: the raw material for rendering a report.
type Run struct {
	Title         string         `yaml:"title,omitempty"`
	StartTime     time.Time      `yaml:"startTime"`
	EndTime       time.Time      `yaml:"endTime"`
	OverallStatus RunStatus      `yaml:"overallStatus"`
	Records       []ResultRecord `yaml:"records"`
}

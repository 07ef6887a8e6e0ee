// Package model defines the data structures for test run reporting.
package model

// Status represents the outcome of a single test.
type Status string

const (
	// StatusPassed indicates the test passed.
	StatusPassed Status = "passed"
	// StatusFailed indicates the test failed.
	StatusFailed Status = "failed"
	// StatusSkipped indicates the test was skipped.
	StatusSkipped Status = "skipped"
	// StatusTimedOut indicates the test exceeded its time budget.
	StatusTimedOut Status = "timedOut"
	// StatusInterrupted indicates the run was interrupted while the test ran.
	StatusInterrupted Status = "interrupted"
)

// Default substitutes for optional descriptor fields.
const (
	DefaultFile    = "unknown"
	DefaultProject = "default"
)

// TestError is one error attached to a test outcome.
type TestError struct {
	Message string `yaml:"message"`
	Stack   string `yaml:"stack,omitempty"`
	Snippet string `yaml:"snippet,omitempty"`
}

// Step is one executed step within a test, in emission order.
// An empty Error means the step succeeded.
type Step struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Duration int    `yaml:"duration"`
	Error    string `yaml:"error,omitempty"`
}

// Annotation is opaque key/value metadata attached by the test author.
// It is carried through to the report unmodified.
type Annotation struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
}

// ResultRecord is the normalized outcome of one completed test.
// Records are immutable once created and appended in completion order.
type ResultRecord struct {
	Title       string       `yaml:"title"`
	File        string       `yaml:"file"`
	FilePath    string       `yaml:"filePath,omitempty"`
	Line        int          `yaml:"line,omitempty"`
	Suite       string       `yaml:"suite,omitempty"`
	Project     string       `yaml:"project"`
	Status      Status       `yaml:"status"`
	Duration    int          `yaml:"duration"`
	Retries     int          `yaml:"retries,omitempty"`
	Errors      []TestError  `yaml:"errors,omitempty"`
	Steps       []Step       `yaml:"steps,omitempty"`
	Annotations []Annotation `yaml:"annotations,omitempty"`
}

// Flaky reports whether the record ultimately passed but needed retries.
func (r ResultRecord) Flaky() bool {
	return r.Status == StatusPassed && r.Retries > 0
}

// Descriptor decomposes the record back into the test identity the host
// runner would report, so a recorded run can be replayed through a sink.
func (r ResultRecord) Descriptor() TestDescriptor {
	return TestDescriptor{
		Title:    r.Title,
		File:     r.File,
		FilePath: r.FilePath,
		Line:     r.Line,
		Suite:    r.Suite,
		Project:  r.Project,
	}
}

// Outcome decomposes the record back into its outcome payload.
func (r ResultRecord) Outcome() Outcome {
	return Outcome{
		Status:      r.Status,
		Duration:    r.Duration,
		Retries:     r.Retries,
		Errors:      r.Errors,
		Steps:       r.Steps,
		Annotations: r.Annotations,
	}
}

// TestDescriptor identifies a test as reported by the host runner.
// Optional fields may be left zero; NewResultRecord substitutes defaults.
type TestDescriptor struct {
	Title    string
	File     string
	FilePath string
	Line     int
	Suite    string
	Project  string
}

// Outcome carries the result of one test execution from the host runner.
type Outcome struct {
	Status      Status
	Duration    int
	Retries     int
	Errors      []TestError
	Steps       []Step
	Annotations []Annotation
}

// NewResultRecord normalizes a descriptor/outcome pair into a ResultRecord.
// Missing optional fields degrade to defaults rather than failing: a
// reporting problem must never abort the run being reported on.
func NewResultRecord(test TestDescriptor, outcome Outcome) ResultRecord {
	file := test.File
	if file == "" {
		file = DefaultFile
	}

	project := test.Project
	if project == "" {
		project = DefaultProject
	}

	duration := outcome.Duration
	if duration < 0 {
		duration = 0
	}

	return ResultRecord{
		Title:       test.Title,
		File:        file,
		FilePath:    test.FilePath,
		Line:        test.Line,
		Suite:       test.Suite,
		Project:     project,
		Status:      outcome.Status,
		Duration:    duration,
		Retries:     outcome.Retries,
		Errors:      outcome.Errors,
		Steps:       outcome.Steps,
		Annotations: outcome.Annotations,
	}
}

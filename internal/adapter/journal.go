package adapter

import (
	"fmt"
	"time"

	m "tally.dev/pkg/tally/internal/model"
	"tally.dev/pkg/tally/pkg"
)

const journalExt = ".gob"

// journalEntry is one event in a run journal. Exactly one field is set.
type journalEntry struct {
	Start  *journalStart
	Record *m.ResultRecord
	End    *journalEnd
}

type journalStart struct {
	Title     string
	StartTime time.Time
}

type journalEnd struct {
	EndTime time.Time
	Status  m.RunStatus
}

// Journal streams run events to disk as they happen, so a run that dies
// before its end notification can still be rendered from the journal.
type Journal struct {
	spool pkg.Spool[journalEntry]
}

// NewJournal creates a journal writing to path.
func NewJournal(path m.Path) (*Journal, error) {
	spool, err := pkg.NewSpool[journalEntry](string(path))
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}

	return &Journal{spool: spool}, nil
}

// Start records the run-start event.
func (j *Journal) Start(title string, startTime time.Time) error {
	return j.spool.Append(journalEntry{Start: &journalStart{Title: title, StartTime: startTime}})
}

// Record appends one completed test.
func (j *Journal) Record(record m.ResultRecord) error {
	return j.spool.Append(journalEntry{Record: &record})
}

// End records the run-end event and closes the journal.
func (j *Journal) End(endTime time.Time, status m.RunStatus) error {
	if err := j.spool.Append(journalEntry{End: &journalEnd{EndTime: endTime, Status: status}}); err != nil {
		return err
	}

	return j.spool.Close()
}

// ReadJournal replays a journal file into a Run. A journal missing its end
// event (an interrupted run) yields whatever records were captured, with
// the overall status marked interrupted.
func ReadJournal(path m.Path) (m.Run, error) {
	spool, err := pkg.OpenSpool[journalEntry](string(path))
	if err != nil {
		return m.Run{}, fmt.Errorf("open journal: %w", err)
	}
	defer spool.Close()

	run := m.Run{OverallStatus: m.RunInterrupted}
	ended := false

	err = spool.Range(func(_ uint64, entry journalEntry) error {
		switch {
		case entry.Start != nil:
			run.Title = entry.Start.Title
			run.StartTime = entry.Start.StartTime
		case entry.Record != nil:
			run.Records = append(run.Records, *entry.Record)
		case entry.End != nil:
			run.EndTime = entry.End.EndTime
			run.OverallStatus = entry.End.Status
			ended = true
		}

		return nil
	})
	if err != nil {
		return m.Run{}, fmt.Errorf("replay journal %s: %w", path, err)
	}

	if !ended {
		// Best guess at an end time for a truncated journal.
		run.EndTime = run.StartTime

		for _, record := range run.Records {
			run.EndTime = run.EndTime.Add(time.Duration(record.Duration) * time.Millisecond)
		}
	}

	return run, nil
}

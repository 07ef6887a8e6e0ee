// Package adapter provides persistence adapters for recorded test runs.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "tally.dev/pkg/tally/internal/model"
)

// RunStore persists recorded runs so they can be re-rendered or browsed
// after the host runner has exited.
type RunStore interface {
	SaveRun(path m.Path, run m.Run) error
	LoadRun(path m.Path) (m.Run, error)
}

type runStore struct{}

// NewRunStore creates a RunStore reading and writing the local filesystem.
// Runs are stored as YAML; gob journals written by a Sink mid-run are also
// accepted on load.
func NewRunStore() RunStore {
	return &runStore{}
}

// SaveRun writes the run as YAML, creating parent directories as needed.
func (s *runStore) SaveRun(path m.Path, run m.Run) error {
	data, err := yaml.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create run directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}

// LoadRun reads a recorded run, dispatching on the file extension.
func (s *runStore) LoadRun(path m.Path) (m.Run, error) {
	if filepath.Ext(string(path)) == journalExt {
		return ReadJournal(path)
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Run{}, fmt.Errorf("read run: %w", err)
	}

	var run m.Run
	if err := yaml.Unmarshal(data, &run); err != nil {
		return m.Run{}, fmt.Errorf("decode run %s: %w", path, err)
	}

	return run, nil
}

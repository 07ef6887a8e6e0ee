// Package pkg provides utilities for tally.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Spool is a generic append-only log of items of type T backed by a file.
// Items are gob-encoded as they arrive, so a reader can recover everything
// written so far even if the writer never closed cleanly.
type Spool[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	Range(f func(index uint64, item T) error) error
	Close() error
}

type spoolImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewSpool creates a spool writing to path, truncating any previous
// content. Intermediate directories are created as needed.
func NewSpool[T any](path string) (Spool[T], error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			slog.Error("failed to create spool directory", "path", dir, "error", err)
			return nil, fmt.Errorf("failed to create spool directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create spool file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}

	slog.Debug("created spool", "path", path)

	return &spoolImpl[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
		length:  0,
	}, nil
}

// OpenSpool opens an existing spool file for reading via Range.
func OpenSpool[T any](path string) (Spool[T], error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open spool: %w", err)
	}

	return &spoolImpl[T]{path: path}, nil
}

// Append implements Spool.
func (s *spoolImpl[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encoder == nil {
		return fmt.Errorf("spool %s is not open for writing", s.path)
	}

	if err := s.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", s.path, "index", s.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	s.length++
	slog.Debug("appended item", "path", s.path, "index", s.length-1)

	return nil
}

// Path implements Spool.
func (s *spoolImpl[T]) Path() string {
	return s.path
}

// Len implements Spool.
func (s *spoolImpl[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Range implements Spool. It decodes items until the end of the file, so
// it recovers whatever a writer managed to flush before stopping.
func (s *spoolImpl[T]) Range(fn func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		slog.Error("failed to open file for range", "path", s.path, "error", err)
		return fmt.Errorf("failed to open file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close file", "path", s.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); ; i++ {
		var item T

		if err := decoder.Decode(&item); err != nil {
			if errors.Is(err, io.EOF) {
				slog.Debug("range completed", "path", s.path, "count", i)
				return nil
			}

			slog.Error("failed to decode item during range", "path", s.path, "index", i, "error", err)

			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			slog.Warn("range callback error", "path", s.path, "index", i, "error", err)
			return err
		}
	}
}

// Close implements Spool.
func (s *spoolImpl[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			slog.Error("failed to close file", "path", s.path, "error", err)
			return err
		}

		s.file = nil
		s.encoder = nil

		slog.Debug("closed spool", "path", s.path, "length", s.length)
	}

	return nil
}

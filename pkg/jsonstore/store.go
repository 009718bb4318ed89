package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
)

// Store keeps one collection of records in memory, backed by a single JSON
// file. All mutations run under the store lock and are flushed to disk before
// they return, so the file is the record array as of the last successful
// mutation. A crash between the in-memory change and the rename loses that
// one mutation, which is the accepted durability model here.
type Store[T any] struct {
	path string

	mu      sync.Mutex
	records []T
}

// Open loads the collection at path. A missing or empty file is replaced by
// the seed records (flushed immediately when non-empty); a corrupt file is an
// error rather than silent data loss.
func Open[T any](path string, seed []T) (*Store[T], error) {
	s := &Store[T]{path: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		s.records = append([]T(nil), seed...)
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	case len(data) == 0:
		s.records = append([]T(nil), seed...)
	default:
		if err := json.Unmarshal(data, &s.records); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if len(s.records) == 0 {
			s.records = append([]T(nil), seed...)
		}
	}

	if len(s.records) > 0 {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.flushLocked(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Snapshot returns a copy of the records; callers may filter and sort it
// freely without holding the store lock.
func (s *Store[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.records...)
}

// Len reports the current record count.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Update applies fn to the record set and flushes the result. When fn returns
// an error the in-memory records are left untouched and nothing is written.
// The returned slice replaces the collection wholesale, which keeps the
// read-modify-write race confined to this one lock.
func (s *Store[T]) Update(fn func(records []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := append([]T(nil), s.records...)
	next, err := fn(working)
	if err != nil {
		return err
	}

	prev := s.records
	s.records = next
	if err := s.flushLocked(); err != nil {
		s.records = prev
		return err
	}
	return nil
}

// flushLocked writes the collection through a temp file and rename so readers
// of the file never observe a partial write. Callers must hold s.mu.
func (s *Store[T]) flushLocked() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		return multierr.Combine(
			fmt.Errorf("write %s: %w", tmp.Name(), err),
			tmp.Close(),
			os.Remove(tmp.Name()),
		)
	}
	if err := tmp.Close(); err != nil {
		return multierr.Combine(
			fmt.Errorf("close %s: %w", tmp.Name(), err),
			os.Remove(tmp.Name()),
		)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return multierr.Combine(
			fmt.Errorf("rename %s: %w", tmp.Name(), err),
			os.Remove(tmp.Name()),
		)
	}
	return nil
}

// Package jsonfile provides a JSON file-based batch history store.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/scramble-dev/scramble/internal/core/batch"
)

// HistoryFile is the root JSON structure stored on disk.
type HistoryFile struct {
	Batches []batch.Record `json:"batches"`
}

// Store implements batch.Store using a JSON file for persistence.
type Store struct {
	path string
	mu   sync.RWMutex
}

// New creates a new JSON file store at the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// List returns all records, newest first.
func (s *Store) List(ctx context.Context) ([]batch.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	records := file.Batches
	sort.Slice(records, func(i, j int) bool {
		return records[i].ExecutedAt.After(records[j].ExecutedAt)
	})
	return records, nil
}

// Get returns a record by ID. Returns batch.ErrNotFound if not found.
func (s *Store) Get(ctx context.Context, id string) (batch.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return batch.Record{}, err
	}

	for _, rec := range file.Batches {
		if rec.ID == id {
			return rec, nil
		}
	}

	return batch.Record{}, batch.ErrNotFound
}

// Save creates or updates a record.
func (s *Store) Save(ctx context.Context, rec batch.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	found := false
	for i, existing := range file.Batches {
		if existing.ID == rec.ID {
			file.Batches[i] = rec
			found = true
			break
		}
	}
	if !found {
		file.Batches = append(file.Batches, rec)
	}

	return s.save(file)
}

// LastExecuted returns the most recent record that has not been reverted.
// Returns batch.ErrEmpty if there is none.
func (s *Store) LastExecuted(ctx context.Context) (batch.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return batch.Record{}, err
	}

	var (
		latest batch.Record
		found  bool
	)
	for _, rec := range file.Batches {
		if rec.Reverted {
			continue
		}
		if !found || rec.ExecutedAt.After(latest.ExecutedAt) {
			latest = rec
			found = true
		}
	}

	if !found {
		return batch.Record{}, batch.ErrEmpty
	}
	return latest, nil
}

// load reads the history file from disk.
// Returns an empty HistoryFile if the file doesn't exist.
func (s *Store) load() (HistoryFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return HistoryFile{}, nil
		}
		return HistoryFile{}, fmt.Errorf("read history file: %w", err)
	}

	if len(data) == 0 {
		return HistoryFile{}, nil
	}

	var file HistoryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return HistoryFile{}, fmt.Errorf("parse history file: %w", err)
	}

	return file, nil
}

// save writes the history file to disk atomically.
// Uses write-to-temp-then-rename to prevent corruption from interrupted writes.
func (s *Store) save(file HistoryFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	return nil
}

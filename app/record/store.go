package record

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Store persists one pretty-printed JSON document per record under a single
// directory, keyed by the source issue number. A Store owns its directory
// for the duration of one automation run; there are no concurrent writers.
type Store[T any] struct {
	dir string
}

// Entry pairs a record with its storage key.
type Entry[T any] struct {
	Key    string
	Record T
}

func NewStore[T any](dir string) *Store[T] {
	return &Store[T]{dir: dir}
}

func (s *Store[T]) Dir() string {
	return s.dir
}

func (s *Store[T]) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Save writes the record for key, creating the directory if needed. An
// existing file is overwritten; this is create-or-overwrite, not merge.
func (s *Store[T]) Save(key string, rec T) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", key, err)
	}

	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}

	return nil
}

// Load reads the record for key. Missing files return os.ErrNotExist.
func (s *Store[T]) Load(key string) (T, error) {
	var rec T

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return rec, fmt.Errorf("failed to read record %s: %w", key, err)
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to decode record %s: %w", key, err)
	}

	return rec, nil
}

// Delete removes the record for key. Absence of the file is success: the
// target state (no record) is already reached.
func (s *Store[T]) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record %s: %w", key, err)
	}
	return nil
}

// Exists reports whether a record file is present for key.
func (s *Store[T]) Exists(key string) bool {
	_, err := os.Stat(s.path(key))
	return err == nil
}

// List reads every record in the directory, in directory listing order.
// Individual unreadable files are skipped rather than failing the listing.
func (s *Store[T]) List() ([]Entry[T], error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read record directory: %w", err)
	}

	var entries []Entry[T]
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		key := strings.TrimSuffix(de.Name(), ".json")
		rec, err := s.Load(key)
		if err != nil {
			slog.Warn("Skipping unreadable record", "file", de.Name(), "error", err)
			continue
		}
		entries = append(entries, Entry[T]{Key: key, Record: rec})
	}

	return entries, nil
}

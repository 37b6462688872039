package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Store keeps reminders in a JSON document keyed by date. Every successful
// mutation rewrites the whole file.
//
// A Store is owned by a single goroutine and does no locking of its own.
type Store struct {
	path    string
	entries map[string]Entry
	// info describes the file as of the last load or save.
	info   os.FileInfo
	logger *zap.Logger
}

// NewStore returns a store backed by the file at path. Call Load before use.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:    path,
		entries: make(map[string]Entry),
		logger:  logger.Named("store"),
	}
}

// Open creates a store for path and loads it.
func Open(path string, logger *zap.Logger) (*Store, error) {
	s := NewStore(path, logger)
	if _, err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the file into memory and returns a copy of the mapping.
// A missing file is created holding an empty mapping.
func (s *Store) Load() (map[string]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("reminders file missing, creating it", zap.String("path", s.path))
		s.entries = make(map[string]Entry)
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s.snapshot(), nil
	}
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "read", Err: err}
	}

	entries := make(map[string]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &StorageError{Path: s.path, Op: "parse", Err: err}
	}
	// "null" decodes without error into a nil map.
	if entries == nil {
		entries = make(map[string]Entry)
	}

	s.entries = entries
	s.info = s.stat()
	s.logger.Debug("loaded reminders", zap.String("path", s.path), zap.Int("count", len(entries)))

	return s.snapshot(), nil
}

// ReloadIfChanged re-reads the file when another writer replaced or modified
// it since the last load or save. It reports whether a reload happened.
func (s *Store) ReloadIfChanged() (bool, error) {
	cur := s.stat()
	if cur == nil || !fileChanged(s.info, cur) {
		return false, nil
	}
	if _, err := s.Load(); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes the full mapping to disk with sorted keys. The file is written
// to a temporary sibling and renamed into place.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.entries, "", "    ")
	if err != nil {
		return &StorageError{Path: s.path, Op: "encode", Err: err}
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Path: s.path, Op: "rename", Err: err}
	}

	s.info = s.stat()
	s.logger.Debug("saved reminders", zap.String("path", s.path), zap.Int("count", len(s.entries)))
	return nil
}

// Upsert validates the fields and stores them under date, replacing any
// existing entry. Invalid input returns a *ValidationError and leaves the
// store untouched.
func (s *Store) Upsert(date, tm, message string) error {
	r := Reminder{
		Date:    strings.TrimSpace(date),
		Time:    strings.TrimSpace(tm),
		Message: strings.TrimSpace(message),
	}
	if err := Validate(r); err != nil {
		return err
	}

	prev, existed := s.entries[r.Date]
	s.entries[r.Date] = Entry{Time: r.Time, Message: r.Message}

	if err := s.Save(); err != nil {
		if existed {
			s.entries[r.Date] = prev
		} else {
			delete(s.entries, r.Date)
		}
		return err
	}
	return nil
}

// Delete removes the entry for date and persists the mapping.
func (s *Store) Delete(date string) error {
	date = strings.TrimSpace(date)

	prev, ok := s.entries[date]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	delete(s.entries, date)

	if err := s.Save(); err != nil {
		s.entries[date] = prev
		return err
	}
	return nil
}

// ListKeys returns every date key in lexicographic order. Because the day
// leads the key this is not chronological.
func (s *Store) ListKeys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the reminder stored under date.
func (s *Store) Get(date string) (Reminder, bool) {
	date = strings.TrimSpace(date)
	e, ok := s.entries[date]
	if !ok {
		return Reminder{}, false
	}
	return Reminder{Date: date, Time: e.Time, Message: e.Message}, true
}

// Len returns the number of stored reminders.
func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) snapshot() map[string]Entry {
	out := make(map[string]Entry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

func (s *Store) stat() os.FileInfo {
	fi, err := os.Stat(s.path)
	if err != nil {
		return nil
	}
	return fi
}

// fileChanged compares file identity as well as mtime and size. Saves rename
// a fresh file into place, so a write by another Store shows up as a new
// file even when the mtime resolution is too coarse to tell them apart.
func fileChanged(prev, cur os.FileInfo) bool {
	if prev == nil {
		return true
	}
	return !os.SameFile(prev, cur) ||
		!prev.ModTime().Equal(cur.ModTime()) ||
		prev.Size() != cur.Size()
}

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sprudeel/nextPFF/internal/domain"
	"github.com/Sprudeel/nextPFF/internal/logger"
)

// FileStore persists the scan snapshot and the history log as two flat
// JSON documents. Reads never fail: a missing or malformed document is
// replaced by an empty-but-valid default. Writes are all-or-nothing per
// file (write to a temp file, then rename over the target).
type FileStore struct {
	snapshotPath string
	historyPath  string
	logger       logger.Logger
}

// New creates a file store for the two document paths.
func New(snapshotPath, historyPath string, log logger.Logger) *FileStore {
	return &FileStore{
		snapshotPath: snapshotPath,
		historyPath:  historyPath,
		logger:       log,
	}
}

// LoadSnapshot reads the current snapshot. Missing or corrupt files yield
// an empty snapshot.
func (s *FileStore) LoadSnapshot() domain.Snapshot {
	var snap domain.Snapshot
	if !s.load(s.snapshotPath, &snap) {
		return domain.EmptySnapshot()
	}
	if snap.Domains == nil {
		snap.Domains = []domain.Record{}
	}
	return snap
}

// LoadHistory reads the history log. Missing or corrupt files yield an
// empty history; this is a recovery path, not an error.
func (s *FileStore) LoadHistory() domain.History {
	var hist domain.History
	if !s.load(s.historyPath, &hist) {
		return domain.EmptyHistory()
	}
	if hist.Events == nil {
		hist.Events = []domain.Event{}
	}
	if hist.LastState == nil {
		hist.LastState = map[string]domain.StatusEntry{}
	}
	return hist
}

// SaveSnapshot replaces the persisted snapshot with snap.
func (s *FileStore) SaveSnapshot(snap domain.Snapshot) error {
	if err := s.save(s.snapshotPath, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// SaveHistory replaces the persisted history log with hist.
func (s *FileStore) SaveHistory(hist domain.History) error {
	if err := s.save(s.historyPath, hist); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// load reads and decodes one document, reporting whether it was usable.
func (s *FileStore) load(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read document, using empty default",
				logger.String("path", path),
				logger.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("malformed document, using empty default",
			logger.String("path", path),
			logger.Error(err))
		return false
	}
	return true
}

// save encodes v and atomically replaces the file at path.
func (s *FileStore) save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sprudeel/nextPFF/internal/domain"
	"github.com/Sprudeel/nextPFF/internal/logger"
)

func newTestStore(t *testing.T) (*FileStore, string, string) {
	t.Helper()
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "status.json")
	histPath := filepath.Join(dir, "history.json")
	return New(snapPath, histPath, logger.New("error", false)), snapPath, histPath
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	s, _, _ := newTestStore(t)

	snap := s.LoadSnapshot()
	if snap.Domains == nil || len(snap.Domains) != 0 {
		t.Errorf("expected empty valid snapshot, got %+v", snap)
	}
}

func TestLoadHistoryMissingFile(t *testing.T) {
	s, _, _ := newTestStore(t)

	hist := s.LoadHistory()
	if hist.Events == nil || hist.LastState == nil {
		t.Errorf("expected empty valid history, got %+v", hist)
	}
}

func TestLoadHistoryCorruptFile(t *testing.T) {
	s, _, histPath := newTestStore(t)

	if err := os.WriteFile(histPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	hist := s.LoadHistory()
	if len(hist.Events) != 0 || len(hist.LastState) != 0 {
		t.Errorf("corrupt history should reset to empty, got %+v", hist)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := domain.Snapshot{
		ScannedAt: now,
		Domains: []domain.Record{
			{
				Domain:     "pff27.ch",
				TLD:        "ch",
				Registered: true,
				Website: domain.WebsiteResult{
					Present:    true,
					Protocol:   "https",
					StatusCode: 200,
					URLTried:   "https://pff27.ch/",
				},
				CheckedAt: now,
			},
		},
	}

	if err := s.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	loaded := s.LoadSnapshot()
	if !loaded.ScannedAt.Equal(snap.ScannedAt) {
		t.Errorf("ScannedAt = %v, want %v", loaded.ScannedAt, snap.ScannedAt)
	}
	if len(loaded.Domains) != 1 || loaded.Domains[0] != snap.Domains[0] {
		t.Errorf("loaded snapshot differs: %+v", loaded.Domains)
	}
}

func TestSaveSnapshotReplacesPrevious(t *testing.T) {
	s, _, _ := newTestStore(t)

	first := domain.Snapshot{Domains: []domain.Record{{Domain: "a.ch", TLD: "ch"}}}
	second := domain.Snapshot{Domains: []domain.Record{{Domain: "b.ch", TLD: "ch"}}}

	if err := s.SaveSnapshot(first); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if err := s.SaveSnapshot(second); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	loaded := s.LoadSnapshot()
	if len(loaded.Domains) != 1 || loaded.Domains[0].Domain != "b.ch" {
		t.Errorf("snapshot was merged instead of replaced: %+v", loaded.Domains)
	}
}

func TestHistoryRoundTripWireFormat(t *testing.T) {
	s, _, histPath := newTestStore(t)

	prev := domain.StatusRegistered
	hist := domain.History{
		Events: []domain.Event{
			{
				Date:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
				Domain:         "pff27.ch",
				Status:         domain.StatusWebsite,
				PreviousStatus: &prev,
			},
		},
		LastState: map[string]domain.StatusEntry{
			"pff27.ch": {Status: domain.StatusWebsite},
		},
	}

	if err := s.SaveHistory(hist); err != nil {
		t.Fatalf("SaveHistory() error = %v", err)
	}

	// Check the document shape on disk.
	raw, err := os.ReadFile(histPath)
	if err != nil {
		t.Fatalf("failed to read history file: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("history file is not valid JSON: %v", err)
	}
	if _, ok := doc["events"]; !ok {
		t.Error("history document missing events key")
	}
	if _, ok := doc["lastState"]; !ok {
		t.Error("history document missing lastState key")
	}

	loaded := s.LoadHistory()
	if len(loaded.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(loaded.Events))
	}
	ev := loaded.Events[0]
	if ev.PreviousStatus == nil || *ev.PreviousStatus != domain.StatusRegistered {
		t.Errorf("PreviousStatus = %v, want registered", ev.PreviousStatus)
	}
	if loaded.LastState["pff27.ch"].Status != domain.StatusWebsite {
		t.Errorf("lastState = %+v", loaded.LastState)
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "nested", "data", "status.json")
	s := New(snapPath, filepath.Join(dir, "history.json"), logger.New("error", false))

	if err := s.SaveSnapshot(domain.EmptySnapshot()); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if _, err := os.Stat(snapPath); err != nil {
		t.Errorf("snapshot file was not created: %v", err)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s, snapPath, _ := newTestStore(t)

	if err := s.SaveSnapshot(domain.EmptySnapshot()); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(snapPath))
	if err != nil {
		t.Fatalf("failed to list dir: %v", err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the snapshot file, found %v", names)
	}
}

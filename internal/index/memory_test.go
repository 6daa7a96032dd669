package index

import (
	"testing"
	"time"

	"github.com/Sprudeel/nextPFF/internal/domain"
)

func TestMemoryEmpty(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Snapshot(); ok {
		t.Error("empty cache should report no snapshot")
	}
	if _, ok := m.History(); ok {
		t.Error("empty cache should report no history")
	}
	if !m.LastScan().IsZero() {
		t.Error("empty cache should report zero last scan")
	}
}

func TestMemorySetAndGet(t *testing.T) {
	m := NewMemory()

	scannedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := domain.Snapshot{
		ScannedAt: scannedAt,
		Domains:   []domain.Record{{Domain: "pff27.ch", TLD: "ch"}},
	}
	hist := domain.EmptyHistory()

	m.Set(snap, hist)

	got, ok := m.Snapshot()
	if !ok {
		t.Fatal("cache should report a snapshot after Set")
	}
	if len(got.Domains) != 1 || got.Domains[0].Domain != "pff27.ch" {
		t.Errorf("unexpected cached snapshot %+v", got)
	}

	if _, ok := m.History(); !ok {
		t.Error("cache should report a history after Set")
	}
	if !m.LastScan().Equal(scannedAt) {
		t.Errorf("LastScan() = %v, want %v", m.LastScan(), scannedAt)
	}
}

package index

import (
	"sync"
	"time"

	"github.com/Sprudeel/nextPFF/internal/domain"
)

// Memory caches the latest snapshot and history in memory so dashboard
// reads do not touch disk on every request. The scan runner is the only
// writer; handlers read concurrently.
type Memory struct {
	mu       sync.RWMutex
	snapshot domain.Snapshot
	history  domain.History
	primed   bool
	lastScan time.Time
}

// NewMemory creates an empty cache.
func NewMemory() *Memory {
	return &Memory{}
}

// Set replaces the cached documents.
func (m *Memory) Set(snap domain.Snapshot, hist domain.History) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snap
	m.history = hist
	m.primed = true
	m.lastScan = snap.ScannedAt
}

// Snapshot returns the cached snapshot, or false when nothing has been
// cached yet.
func (m *Memory) Snapshot() (domain.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot, m.primed
}

// History returns the cached history, or false when nothing has been
// cached yet.
func (m *Memory) History() (domain.History, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history, m.primed
}

// LastScan returns when the cached snapshot was taken (zero if none).
func (m *Memory) LastScan() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastScan
}

package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/Sprudeel/nextPFF/internal/domain"
	"github.com/Sprudeel/nextPFF/internal/logger"
)

type fakeRegistration struct {
	registered map[string]bool
	calls      []string
}

func (f *fakeRegistration) Probe(ctx context.Context, name string) bool {
	f.calls = append(f.calls, name)
	return f.registered[name]
}

type fakeWebsite struct {
	results map[string]domain.WebsiteResult
	calls   []string
}

func (f *fakeWebsite) Probe(ctx context.Context, name string) domain.WebsiteResult {
	f.calls = append(f.calls, name)
	return f.results[name]
}

func TestScannerSkipsWebsiteForUnregisteredDomains(t *testing.T) {
	reg := &fakeRegistration{registered: map[string]bool{"b.ch": true}}
	web := &fakeWebsite{results: map[string]domain.WebsiteResult{
		"b.ch": {Present: true, Protocol: "https", StatusCode: 200, URLTried: "https://b.ch/"},
	}}

	s := New(reg, web, 0, logger.New("error", false))
	snap := s.Run(context.Background(), []string{"a.ch", "b.ch"})

	if len(snap.Domains) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap.Domains))
	}

	a := snap.Domains[0]
	if a.Registered {
		t.Error("a.ch should not be registered")
	}
	if a.Website != (domain.WebsiteResult{}) {
		t.Errorf("unregistered domain must keep the default website result, got %+v", a.Website)
	}

	if len(web.calls) != 1 || web.calls[0] != "b.ch" {
		t.Errorf("website prober calls = %v, want only b.ch", web.calls)
	}
}

func TestScannerKeepsInputOrder(t *testing.T) {
	names := []string{"c.ch", "a.ch", "b.ch"}
	reg := &fakeRegistration{registered: map[string]bool{}}

	s := New(reg, &fakeWebsite{}, 0, logger.New("error", false))
	snap := s.Run(context.Background(), names)

	for i, name := range names {
		if snap.Domains[i].Domain != name {
			t.Errorf("record[%d] = %q, want %q", i, snap.Domains[i].Domain, name)
		}
	}
	if len(reg.calls) != 3 {
		t.Errorf("expected every domain probed exactly once, got %v", reg.calls)
	}
}

func TestScannerDerivesTLDAndStampsRecords(t *testing.T) {
	reg := &fakeRegistration{registered: map[string]bool{"pff27.ch": true}}
	web := &fakeWebsite{results: map[string]domain.WebsiteResult{
		"pff27.ch": {Present: true, Protocol: "https", StatusCode: 200, URLTried: "https://pff27.ch/"},
	}}

	s := New(reg, web, 0, logger.New("error", false))
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	snap := s.Run(context.Background(), []string{"pff27.ch"})

	if !snap.ScannedAt.Equal(fixed) {
		t.Errorf("ScannedAt = %v, want %v", snap.ScannedAt, fixed)
	}

	rec := snap.Domains[0]
	if rec.TLD != "ch" {
		t.Errorf("TLD = %q, want ch", rec.TLD)
	}
	if !rec.CheckedAt.Equal(fixed) {
		t.Errorf("CheckedAt = %v, want %v", rec.CheckedAt, fixed)
	}
	if !rec.Website.Present || rec.Website.Protocol != "https" {
		t.Errorf("unexpected website result %+v", rec.Website)
	}
}

func TestScannerPacesBetweenDomains(t *testing.T) {
	reg := &fakeRegistration{registered: map[string]bool{}}

	pacing := 30 * time.Millisecond
	s := New(reg, &fakeWebsite{}, pacing, logger.New("error", false))

	start := time.Now()
	s.Run(context.Background(), []string{"a.ch", "b.ch", "c.ch"})
	elapsed := time.Since(start)

	// Two gaps between three domains.
	if elapsed < 2*pacing {
		t.Errorf("run finished in %v, expected at least %v of pacing", elapsed, 2*pacing)
	}
}

func TestScannerEmptyList(t *testing.T) {
	s := New(&fakeRegistration{}, &fakeWebsite{}, 0, logger.New("error", false))
	snap := s.Run(context.Background(), nil)

	if snap.Domains == nil {
		t.Error("Domains should be an empty slice, not nil")
	}
	if len(snap.Domains) != 0 {
		t.Errorf("expected no records, got %d", len(snap.Domains))
	}
}

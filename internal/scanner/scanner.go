package scanner

import (
	"context"
	"time"

	"github.com/Sprudeel/nextPFF/internal/domain"
	"github.com/Sprudeel/nextPFF/internal/logger"
)

// RegistrationProber answers whether a domain is registered.
type RegistrationProber interface {
	Probe(ctx context.Context, name string) bool
}

// WebsiteProber checks whether a registered domain serves a website.
type WebsiteProber interface {
	Probe(ctx context.Context, name string) domain.WebsiteResult
}

// Scanner walks the configured domain list and assembles a snapshot.
// Domains are probed strictly in input order with a fixed pacing delay
// between them, to keep the outbound request rate to the registry and the
// probed hosts bounded.
type Scanner struct {
	registration RegistrationProber
	website      WebsiteProber
	pacing       time.Duration
	logger       logger.Logger
	now          func() time.Time
}

// New creates a scanner.
func New(reg RegistrationProber, web WebsiteProber, pacing time.Duration, log logger.Logger) *Scanner {
	return &Scanner{
		registration: reg,
		website:      web,
		pacing:       pacing,
		logger:       log,
		now:          time.Now,
	}
}

// Run probes every domain and returns the snapshot. Every configured
// domain yields exactly one record, even when both probes failed closed;
// the website prober is only consulted for registered domains.
func (s *Scanner) Run(ctx context.Context, names []string) domain.Snapshot {
	snap := domain.Snapshot{
		ScannedAt: s.now().UTC(),
		Domains:   make([]domain.Record, 0, len(names)),
	}

	for i, name := range names {
		if i > 0 && s.pacing > 0 {
			select {
			case <-time.After(s.pacing):
			case <-ctx.Done():
			}
		}

		rec := domain.Record{
			Domain: name,
			TLD:    domain.TLD(name),
		}

		rec.Registered = s.registration.Probe(ctx, name)
		if rec.Registered {
			rec.Website = s.website.Probe(ctx, name)
		}
		rec.CheckedAt = s.now().UTC()

		s.logger.Debug("domain probed",
			logger.String("domain", name),
			logger.Bool("registered", rec.Registered),
			logger.Bool("website", rec.Website.Present))

		snap.Domains = append(snap.Domains, rec)
	}

	s.logger.Info("scan completed",
		logger.Int("domains", len(snap.Domains)),
		logger.Duration("took", s.now().UTC().Sub(snap.ScannedAt)))

	return snap
}

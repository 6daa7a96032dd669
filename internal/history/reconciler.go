package history

import (
	"time"

	"github.com/Sprudeel/nextPFF/internal/domain"
	"github.com/Sprudeel/nextPFF/internal/logger"
)

// DefaultRetention is how long transition events are kept.
const DefaultRetention = 365 * 24 * time.Hour

// Reconciler derives per-domain statuses from a snapshot, records
// transitions against the prior history and prunes expired events. It is
// the sole writer of the history document.
type Reconciler struct {
	retention time.Duration
	logger    logger.Logger
	now       func() time.Time
}

// New creates a reconciler. A zero retention falls back to DefaultRetention.
func New(retention time.Duration, log logger.Logger) *Reconciler {
	if retention == 0 {
		retention = DefaultRetention
	}
	return &Reconciler{
		retention: retention,
		logger:    log,
		now:       time.Now,
	}
}

// Reconcile compares the snapshot against the prior history and returns
// the updated history plus the number of new events. An event fires when a
// domain's status differs from its last recorded status, or when the
// domain has never been seen; lastState is updated for every domain either
// way. prior is not mutated.
func (r *Reconciler) Reconcile(snap domain.Snapshot, prior domain.History) (domain.History, int) {
	now := r.now().UTC()

	updated := domain.History{
		Events:    make([]domain.Event, 0, len(prior.Events)+len(snap.Domains)),
		LastState: make(map[string]domain.StatusEntry, len(prior.LastState)+len(snap.Domains)),
	}
	updated.Events = append(updated.Events, prior.Events...)
	for name, entry := range prior.LastState {
		updated.LastState[name] = entry
	}

	newEvents := 0
	for _, rec := range snap.Domains {
		status := domain.DeriveStatus(rec)

		prev, seen := updated.LastState[rec.Domain]
		if !seen || prev.Status != status {
			ev := domain.Event{
				Date:   now,
				Domain: rec.Domain,
				Status: status,
			}
			if seen {
				previous := prev.Status
				ev.PreviousStatus = &previous
			}
			updated.Events = append(updated.Events, ev)
			newEvents++

			r.logger.Info("domain status changed",
				logger.String("domain", rec.Domain),
				logger.String("status", string(status)),
				logger.String("previous", previousLabel(ev.PreviousStatus)))
		}

		updated.LastState[rec.Domain] = domain.StatusEntry{Status: status}
	}

	updated.Events = prune(updated.Events, now.Add(-r.retention))

	return updated, newEvents
}

// prune drops events older than cutoff, preserving the relative order of
// survivors.
func prune(events []domain.Event, cutoff time.Time) []domain.Event {
	kept := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if !ev.Date.Before(cutoff) {
			kept = append(kept, ev)
		}
	}
	return kept
}

func previousLabel(s *domain.Status) string {
	if s == nil {
		return "none"
	}
	return string(*s)
}

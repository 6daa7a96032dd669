package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Sprudeel/nextPFF/internal/history"
	"github.com/Sprudeel/nextPFF/internal/index"
	"github.com/Sprudeel/nextPFF/internal/logger"
	"github.com/Sprudeel/nextPFF/internal/metrics"
	"github.com/Sprudeel/nextPFF/internal/scanner"
	"github.com/Sprudeel/nextPFF/internal/sources/domains"
	"github.com/Sprudeel/nextPFF/internal/store"
)

// ScanRunner drives the scan pipeline: on an interval (and on manual
// triggers) it loads the domain list, runs a scan, reconciles the history
// and persists both documents. All cycles run on one goroutine, so at most
// one scan is active at a time.
type ScanRunner struct {
	loader        *domains.Loader
	scanner       *scanner.Scanner
	reconciler    *history.Reconciler
	store         *store.FileStore
	cache         *index.Memory
	metrics       *metrics.Metrics
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewScanRunner creates a scan runner.
func NewScanRunner(
	domainsFile string,
	sc *scanner.Scanner,
	rec *history.Reconciler,
	st *store.FileStore,
	cache *index.Memory,
	m *metrics.Metrics,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ScanRunner {
	return &ScanRunner{
		loader:        domains.NewLoader(domainsFile),
		scanner:       sc,
		reconciler:    rec,
		store:         st,
		cache:         cache,
		metrics:       m,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs one scan cycle immediately, then begins the periodic loop.
func (sr *ScanRunner) Start(ctx context.Context) error {
	if err := sr.RunOnce(ctx); err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.RunOnce(ctx); err != nil {
					sr.logger.Error("scheduled scan failed",
						logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual scan triggered")
				if err := sr.RunOnce(ctx); err != nil {
					sr.logger.Error("manual scan failed",
						logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the runner loop.
func (sr *ScanRunner) Stop() {
	close(sr.stopCh)
}

// RunOnce executes one full scan cycle. Per-domain probe failures never
// make a cycle fail; only an unreadable domain list or an unwritable
// output path does.
func (sr *ScanRunner) RunOnce(ctx context.Context) error {
	start := time.Now()

	names, err := sr.loader.Load()
	if err != nil {
		sr.metrics.IncrementScanFailure()
		return fmt.Errorf("failed to load domain list: %w", err)
	}

	sr.logger.Info("starting scan",
		logger.Int("domains", len(names)))

	snap := sr.scanner.Run(ctx, names)

	prior := sr.store.LoadHistory()
	updated, newEvents := sr.reconciler.Reconcile(snap, prior)

	if err := sr.store.SaveSnapshot(snap); err != nil {
		sr.metrics.IncrementScanFailure()
		return err
	}
	if err := sr.store.SaveHistory(updated); err != nil {
		sr.metrics.IncrementScanFailure()
		return err
	}

	sr.cache.Set(snap, updated)
	sr.metrics.ObserveScan(snap, newEvents, time.Since(start))

	sr.logger.Info("scan cycle completed",
		logger.Int("domains", len(snap.Domains)),
		logger.Int("new_events", newEvents),
		logger.Duration("took", time.Since(start)))

	return nil
}

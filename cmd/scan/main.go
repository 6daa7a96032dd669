// Command scan runs a single scan cycle and exits: load the domain list,
// probe every domain, reconcile the history and write both documents.
// Per-domain probe failures never fail the run; an unreadable domain list
// or an unwritable output path exits non-zero.
package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Sprudeel/nextPFF/internal/config"
	"github.com/Sprudeel/nextPFF/internal/history"
	"github.com/Sprudeel/nextPFF/internal/index"
	"github.com/Sprudeel/nextPFF/internal/logger"
	"github.com/Sprudeel/nextPFF/internal/metrics"
	"github.com/Sprudeel/nextPFF/internal/probe"
	"github.com/Sprudeel/nextPFF/internal/scanner"
	"github.com/Sprudeel/nextPFF/internal/scheduler"
	"github.com/Sprudeel/nextPFF/internal/store"
)

func main() {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	var classifier probe.Classifier
	if cfg.ClassifierURL != "" {
		classifier = probe.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierToken, cfg.ClassifierTimeout)
	}

	registration := probe.NewRegistrationProber(cfg.RDAPBaseURL, cfg.RegistrationTimeout, cfg.RegistrationBackoff, loggerClient)
	website := probe.NewWebsiteProber(cfg.WebsiteTimeout, classifier, loggerClient)

	runner := scheduler.NewScanRunner(
		cfg.DomainsFile,
		scanner.New(registration, website, cfg.Pacing, loggerClient),
		history.New(cfg.HistoryRetention, loggerClient),
		store.New(cfg.SnapshotFile, cfg.HistoryFile, loggerClient),
		index.NewMemory(),
		metrics.New(prometheus.NewRegistry()),
		loggerClient,
		cfg.ScanInterval,
		nil,
	)

	if err := runner.RunOnce(context.Background()); err != nil {
		loggerClient.Error("scan failed", logger.Error(err))
		_ = loggerClient.Sync()
		os.Exit(1)
	}

	_ = loggerClient.Sync()
}

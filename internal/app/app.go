package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Sprudeel/nextPFF/internal/config"
	"github.com/Sprudeel/nextPFF/internal/history"
	"github.com/Sprudeel/nextPFF/internal/httpserver"
	"github.com/Sprudeel/nextPFF/internal/httpserver/deps"
	"github.com/Sprudeel/nextPFF/internal/index"
	"github.com/Sprudeel/nextPFF/internal/logger"
	"github.com/Sprudeel/nextPFF/internal/metrics"
	"github.com/Sprudeel/nextPFF/internal/probe"
	"github.com/Sprudeel/nextPFF/internal/scanner"
	"github.com/Sprudeel/nextPFF/internal/scheduler"
	"github.com/Sprudeel/nextPFF/internal/store"
	"github.com/Sprudeel/nextPFF/internal/version"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	server *httpserver.Server
	runner *scheduler.ScanRunner
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	fileStore := store.New(cfg.SnapshotFile, cfg.HistoryFile, loggerClient)
	cache := index.NewMemory()

	// Serve whatever the last run persisted until the first cycle finishes.
	cache.Set(fileStore.LoadSnapshot(), fileStore.LoadHistory())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	scanMetrics := metrics.New(registry)

	var classifier probe.Classifier
	if cfg.ClassifierURL != "" {
		loggerClient.Info("placeholder classifier configured",
			logger.String("endpoint", cfg.ClassifierURL))
		classifier = probe.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierToken, cfg.ClassifierTimeout)
	} else {
		loggerClient.Info("placeholder classifier not configured, any reachable site counts as present")
	}

	registration := probe.NewRegistrationProber(cfg.RDAPBaseURL, cfg.RegistrationTimeout, cfg.RegistrationBackoff, loggerClient)
	website := probe.NewWebsiteProber(cfg.WebsiteTimeout, classifier, loggerClient)
	sc := scanner.New(registration, website, cfg.Pacing, loggerClient)
	reconciler := history.New(cfg.HistoryRetention, loggerClient)

	// Create manual scan trigger channel
	scanTrigger := make(chan struct{}, 1)

	runner := scheduler.NewScanRunner(
		cfg.DomainsFile,
		sc,
		reconciler,
		fileStore,
		cache,
		scanMetrics,
		loggerClient,
		cfg.ScanInterval,
		scanTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		Store:            fileStore,
		Index:            cache,
		ScanTrigger:      scanTrigger,
		PromGatherer:     registry,
		ScanAllowedCIDRS: cfg.ScanAllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:    cfg,
		logger: loggerClient,
		server: server,
		runner: runner,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting nextPFF v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("nextPFF %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the scan runner (runs one cycle, then the periodic loop)
	if err := a.runner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scan runner: %w", err)
	}
	a.logger.Info("scan runner started",
		logger.Duration("interval", a.cfg.ScanInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.runner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ nextPFF stopped cleanly")
	return nil
}

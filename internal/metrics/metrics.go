package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Sprudeel/nextPFF/internal/domain"
)

// Metrics provides observability for the scan pipeline.
type Metrics struct {
	ScansTotal        prometheus.Counter
	ScanFailures      prometheus.Counter
	ScanDuration      prometheus.Histogram
	DomainsByStatus   *prometheus.GaugeVec
	WebsiteErrors     prometheus.Counter
	HistoryEvents     prometheus.Counter
	LastScanTimestamp prometheus.Gauge
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ScansTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pff_scans_total",
			Help: "Total number of scan runs",
		}),
		ScanFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "pff_scan_failures_total",
			Help: "Total number of scan runs that failed to persist",
		}),
		ScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pff_scan_duration_seconds",
			Help:    "Duration of full scan runs",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		DomainsByStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pff_domains",
			Help: "Number of watched domains per derived status",
		}, []string{"status"}),
		WebsiteErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "pff_website_probe_errors_total",
			Help: "Total number of website probes that ended in a transport error",
		}),
		HistoryEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "pff_history_events_total",
			Help: "Total number of status transition events recorded",
		}),
		LastScanTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pff_last_scan_timestamp_seconds",
			Help: "Unix time of the last completed scan",
		}),
	}
}

// ObserveScan records the outcome of one completed scan cycle.
func (m *Metrics) ObserveScan(snap domain.Snapshot, newEvents int, took time.Duration) {
	m.ScansTotal.Inc()
	m.ScanDuration.Observe(took.Seconds())
	m.HistoryEvents.Add(float64(newEvents))
	m.LastScanTimestamp.Set(float64(snap.ScannedAt.Unix()))

	counts := map[domain.Status]int{
		domain.StatusAvailable:  0,
		domain.StatusRegistered: 0,
		domain.StatusWebsite:    0,
	}
	for _, rec := range snap.Domains {
		counts[domain.DeriveStatus(rec)]++
		if rec.Website.Error != "" {
			m.WebsiteErrors.Inc()
		}
	}
	for status, count := range counts {
		m.DomainsByStatus.WithLabelValues(string(status)).Set(float64(count))
	}
}

// IncrementScanFailure records a scan cycle that could not be persisted.
func (m *Metrics) IncrementScanFailure() {
	m.ScanFailures.Inc()
}

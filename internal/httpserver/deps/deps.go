package deps

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Sprudeel/nextPFF/internal/index"
	"github.com/Sprudeel/nextPFF/internal/logger"
	"github.com/Sprudeel/nextPFF/internal/store"
)

type Deps struct {
	Logger           logger.Logger
	StartTime        time.Time
	Version          string
	Commit           string
	BuildDate        string
	GoVersion        string
	TimeNow          func() time.Time     // for testing, defaults to time.Now
	Store            *store.FileStore     // snapshot/history document store
	Index            *index.Memory        // in-memory cache of the latest documents
	ScanTrigger      chan struct{}        // channel to trigger a manual scan
	PromGatherer     prometheus.Gatherer  // registry backing the /metrics endpoint
	ScanAllowedCIDRS []string             // IPs allowed to hit the manual scan trigger
	TrustProxy       bool                 // true if running behind a trusted reverse proxy
}

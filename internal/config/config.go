package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DomainsFile  string // path to the domains.yaml file
	SnapshotFile string // path to the persisted scan snapshot
	HistoryFile  string // path to the persisted history log

	RDAPBaseURL string // registry lookup base URL (ex: https://rdap.nic.ch)

	ScanInterval        time.Duration // interval between scheduled scans (default: 24h)
	Pacing              time.Duration // delay between per-domain probes (default: 150ms)
	RegistrationTimeout time.Duration // timeout per RDAP request (default: 5s)
	RegistrationBackoff time.Duration // backoff before the single 429 retry (default: 1500ms)
	WebsiteTimeout      time.Duration // timeout per website probe attempt (default: 8s)
	HistoryRetention    time.Duration // how long transition events are kept (default: 8760h)

	ClassifierURL     string        // optional placeholder-classifier endpoint (empty = disabled)
	ClassifierToken   string        // optional bearer token for the classifier
	ClassifierTimeout time.Duration // timeout per classifier call (default: 10s)

	ScanAllowedCIDRS []string // optional, restrict the manual scan trigger to specific IPs
	TrustProxy       bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PFF_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PFF_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PFF_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PFF_PRETTY_LOG", true),

		// Documents
		DomainsFile:  getenv("PFF_DOMAINS_FILE", "/app/domains.yaml"),
		SnapshotFile: getenv("PFF_SNAPSHOT_FILE", "/app/data/status.json"),
		HistoryFile:  getenv("PFF_HISTORY_FILE", "/app/data/history.json"),

		// Probing
		RDAPBaseURL:         getenv("PFF_RDAP_BASE_URL", "https://rdap.nic.ch"),
		ScanInterval:        mustDuration("PFF_SCAN_INTERVAL", 24*time.Hour),
		Pacing:              mustDuration("PFF_PACING", 150*time.Millisecond),
		RegistrationTimeout: mustDuration("PFF_REGISTRATION_TIMEOUT", 5*time.Second),
		RegistrationBackoff: mustDuration("PFF_REGISTRATION_BACKOFF", 1500*time.Millisecond),
		WebsiteTimeout:      mustDuration("PFF_WEBSITE_TIMEOUT", 8*time.Second),
		HistoryRetention:    mustDuration("PFF_HISTORY_RETENTION", 365*24*time.Hour),

		// Placeholder classifier (optional)
		ClassifierURL:     getenv("PFF_CLASSIFIER_URL", ""),
		ClassifierToken:   getenv("PFF_CLASSIFIER_TOKEN", ""),
		ClassifierTimeout: mustDuration("PFF_CLASSIFIER_TIMEOUT", 10*time.Second),

		// Access restrictions
		ScanAllowedCIDRS: parseAllowedIPs(getenv("PFF_SCAN_ALLOWED_CIDRS", "")),
		TrustProxy:       mustBool("PFF_TRUST_PROXY", true),
	}

	if cfg.RDAPBaseURL == "" {
		panic("❌ FATAL: PFF_RDAP_BASE_URL must not be empty")
	}
	cfg.RDAPBaseURL = strings.TrimSuffix(cfg.RDAPBaseURL, "/")

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.ClassifierToken != "" {
			cfgCopy.ClassifierToken = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

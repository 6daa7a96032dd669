package domain

import (
	"strings"
	"time"
)

// WebsiteResult is the outcome of probing a domain's website.
// If Present is true, Protocol, StatusCode and URLTried are all set and
// StatusCode is in [200,400). Otherwise Error or StatusCode explains why.
type WebsiteResult struct {
	Present    bool   `json:"present"`
	Protocol   string `json:"protocol,omitempty"` // "https" | "http"
	StatusCode int    `json:"status,omitempty"`
	URLTried   string `json:"urlTried,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Record is the per-domain result of one scan run.
// Website is only probed when Registered is true; otherwise it stays the
// zero WebsiteResult ({present:false}).
type Record struct {
	Domain     string        `json:"domain"`
	TLD        string        `json:"tld"`
	Registered bool          `json:"registered"`
	Website    WebsiteResult `json:"website"`
	CheckedAt  time.Time     `json:"checkedAt"`
}

// Snapshot is the full result of one scan run. It fully replaces the
// previous snapshot; Domains keeps the configured input order.
type Snapshot struct {
	ScannedAt time.Time `json:"scannedAt"`
	Domains   []Record  `json:"domains"`
}

// EmptySnapshot returns a valid snapshot with no domains, used when no scan
// has been persisted yet.
func EmptySnapshot() Snapshot {
	return Snapshot{Domains: []Record{}}
}

// TLD extracts the top-level domain from a domain name: the lower-cased
// part after the last dot, or the whole name if there is none.
func TLD(name string) string {
	name = strings.ToLower(name)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

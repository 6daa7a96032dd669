package probe

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Sprudeel/nextPFF/internal/logger"
	"github.com/Sprudeel/nextPFF/internal/utils"
)

// rdapVerdict is the interpretation of one RDAP response status.
type rdapVerdict int

const (
	verdictRegistered rdapVerdict = iota // domain exists in the registry
	verdictFree                         // registry reports no such domain
	verdictThrottled                    // rate limited, eligible for one retry
	verdictUnknown                      // anything else, fail closed
)

// rdapPolicy maps RDAP status codes onto verdicts. 401 means the registry
// knows the domain but guards its data, so it still counts as registered.
var rdapPolicy = map[int]rdapVerdict{
	http.StatusOK:              verdictRegistered,
	http.StatusUnauthorized:    verdictRegistered,
	http.StatusNotFound:        verdictFree,
	http.StatusTooManyRequests: verdictThrottled,
}

// RegistrationProber answers whether a domain is registered by asking an
// RDAP endpoint. Every failure path resolves to a boolean: absence of proof
// is treated as "not registered", never surfaced as an error.
type RegistrationProber struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	backoff time.Duration
	logger  logger.Logger
}

// NewRegistrationProber builds a prober against the given RDAP base URL
// (ex: "https://rdap.nic.ch").
func NewRegistrationProber(baseURL string, timeout, backoff time.Duration, log logger.Logger) *RegistrationProber {
	return &RegistrationProber{
		client:  newProbeClient(timeout),
		baseURL: baseURL,
		timeout: timeout,
		backoff: backoff,
		logger:  log,
	}
}

// Probe reports whether name is registered. At most one retry happens, and
// only after a 429; all other outcomes resolve immediately.
func (p *RegistrationProber) Probe(ctx context.Context, name string) bool {
	verdict := p.lookup(ctx, name)

	if verdict == verdictThrottled {
		p.logger.Warn("rdap rate limited, backing off",
			logger.String("domain", name),
			logger.Duration("backoff", p.backoff))

		select {
		case <-time.After(p.backoff):
		case <-ctx.Done():
			return false
		}

		verdict = p.lookup(ctx, name)
	}

	return verdict == verdictRegistered
}

// lookup performs a single RDAP HEAD request and maps it onto a verdict.
func (p *RegistrationProber) lookup(ctx context.Context, name string) rdapVerdict {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	endpoint := p.baseURL + "/domain/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, endpoint, http.NoBody)
	if err != nil {
		return verdictUnknown
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("rdap lookup failed",
			logger.String("domain", name),
			logger.Error(err))
		return verdictUnknown
	}
	defer utils.Close(resp.Body)

	verdict, ok := rdapPolicy[resp.StatusCode]
	if !ok {
		p.logger.Debug("rdap returned unexpected status",
			logger.String("domain", name),
			logger.Int("status", resp.StatusCode))
		return verdictUnknown
	}
	return verdict
}

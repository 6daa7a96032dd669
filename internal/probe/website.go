package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Sprudeel/nextPFF/internal/domain"
	"github.com/Sprudeel/nextPFF/internal/logger"
	"github.com/Sprudeel/nextPFF/internal/utils"
)

// maxClassifierBody bounds how much of a page is fetched for the
// placeholder classifier.
const maxClassifierBody = 64 << 10

// WebsiteProber checks whether a registered domain serves a reachable
// website. It tries https first, then http; within a scheme a HEAD that is
// rejected with 403/405 is escalated once to a full GET. Like the
// registration prober it never returns an error, only a result.
type WebsiteProber struct {
	client     *http.Client
	timeout    time.Duration
	classifier Classifier
	logger     logger.Logger

	// urlFor builds the attempt URL for a scheme. Overridden in tests.
	urlFor func(scheme, name string) string
}

// NewWebsiteProber builds a prober. classifier may be nil, in which case
// every reachable site counts as present.
func NewWebsiteProber(timeout time.Duration, classifier Classifier, log logger.Logger) *WebsiteProber {
	return &WebsiteProber{
		client:     newProbeClient(timeout),
		timeout:    timeout,
		classifier: classifier,
		logger:     log,
		urlFor: func(scheme, name string) string {
			return fmt.Sprintf("%s://%s/", scheme, name)
		},
	}
}

// Probe checks both schemes and picks one result. The first scheme that is
// present wins. When neither is present the https attempt is preferred as
// long as it carries a status code (it reached a server that answered),
// then the http attempt; when neither produced any status a generic
// "not reachable" result is returned.
func (p *WebsiteProber) Probe(ctx context.Context, name string) domain.WebsiteResult {
	var httpsRes, httpRes domain.WebsiteResult

	for i, scheme := range []string{"https", "http"} {
		res := p.attempt(ctx, scheme, name)
		if res.Present {
			return p.classify(ctx, res)
		}
		if i == 0 {
			httpsRes = res
		} else {
			httpRes = res
		}
	}

	switch {
	case httpsRes.StatusCode != 0:
		return httpsRes
	case httpRes.StatusCode != 0:
		return httpRes
	default:
		return domain.WebsiteResult{Present: false, Error: "not reachable"}
	}
}

// attempt probes a single scheme: HEAD, escalated once to GET when the
// server rejects the method.
func (p *WebsiteProber) attempt(ctx context.Context, scheme, name string) domain.WebsiteResult {
	target := p.urlFor(scheme, name)
	res := domain.WebsiteResult{Protocol: scheme, URLTried: target}

	status, err := p.request(ctx, http.MethodHead, target)
	if err == nil && (status == http.StatusForbidden || status == http.StatusMethodNotAllowed) {
		status, err = p.request(ctx, http.MethodGet, target)
	}

	if err != nil {
		if isTimeout(err) {
			res.Error = "timeout"
		} else {
			res.Error = err.Error()
		}
		return res
	}

	res.StatusCode = status
	res.Present = status >= 200 && status < 400
	return res
}

// request issues one probe request and returns the response status.
func (p *WebsiteProber) request(ctx context.Context, method, target string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
	if err != nil {
		return 0, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer utils.Close(resp.Body)

	if method == http.MethodGet {
		// Drain a bounded amount so the connection can close cleanly.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxClassifierBody))
	}

	return resp.StatusCode, nil
}

// classify runs a present result through the placeholder oracle. The
// oracle is fail-open: if the page cannot be fetched or the oracle errors,
// the site stays present.
func (p *WebsiteProber) classify(ctx context.Context, res domain.WebsiteResult) domain.WebsiteResult {
	if p.classifier == nil {
		return res
	}

	body, err := p.fetchBody(ctx, res.URLTried)
	if err != nil {
		p.logger.Debug("could not fetch page for classification",
			logger.String("url", res.URLTried),
			logger.Error(err))
		return res
	}

	real, err := p.classifier.Classify(ctx, body)
	if err != nil {
		p.logger.Warn("placeholder classification failed, keeping site as present",
			logger.String("url", res.URLTried),
			logger.Error(err))
		return res
	}

	if !real {
		res.Present = false
		res.Error = "parked"
	}
	return res
}

// fetchBody retrieves up to maxClassifierBody bytes of the page.
func (p *WebsiteProber) fetchBody(ctx context.Context, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer utils.Close(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxClassifierBody))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

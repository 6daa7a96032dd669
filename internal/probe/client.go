package probe

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// newProbeClient builds an HTTP client for one-shot existence probes:
// no keep-alives, no redirect following (a 3xx already answers the
// question), tight handshake timeouts.
func newProbeClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 0,
				}).DialContext(ctx, network, addr)
			},
			TLSHandshakeTimeout: timeout,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DisableKeepAlives: true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Sprudeel/nextPFF/internal/utils"
)

// Classifier decides whether fetched page content belongs to a real
// website or to a registrar/hosting-provider placeholder page.
type Classifier interface {
	// Classify returns true when the content looks like a real site.
	Classify(ctx context.Context, html string) (bool, error)
}

// HTTPClassifier asks an external text-classification service. The page
// content is posted as JSON and the service answers with a verdict.
type HTTPClassifier struct {
	client   *http.Client
	endpoint string
	token    string
}

// NewHTTPClassifier builds a classifier against the given endpoint. token
// is sent as a bearer token when non-empty.
func NewHTTPClassifier(endpoint, token string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		token:    token,
	}
}

type classifyRequest struct {
	Content string `json:"content"`
}

type classifyResponse struct {
	Real bool `json:"real"`
}

func (c *HTTPClassifier) Classify(ctx context.Context, html string) (bool, error) {
	payload, err := json.Marshal(classifyRequest{Content: html})
	if err != nil {
		return false, fmt.Errorf("failed to marshal classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to create classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("classifier call failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var verdict classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return false, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	return verdict.Real, nil
}

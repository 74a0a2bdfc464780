package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AnalyticsClient fetches the aggregate KPI summary from the external
// analytics service. The summary shape is opaque to this service.
type AnalyticsClient struct {
	baseURL string
	client  *http.Client
}

func NewAnalyticsClient(baseURL string, timeout time.Duration) *AnalyticsClient {
	return &AnalyticsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Summary returns the current analytics summary object.
func (c *AnalyticsClient) Summary(ctx context.Context) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building analytics request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics service returned status %d", resp.StatusCode)
	}

	var summary map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("decoding analytics response: %w", err)
	}

	return summary, nil
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AnomalyRequest carries one position sample plus the user's previously
// recorded speed to the anomaly detection service.
type AnomalyRequest struct {
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Speed     *float64 `json:"speed"`
	PrevSpeed float64  `json:"prev_speed"`
}

// AnomalyResult is the detection verdict. A transport or decode failure is
// treated by callers as a non-anomaly result.
type AnomalyResult struct {
	Anomaly bool   `json:"anomaly"`
	Reason  string `json:"reason"`
}

// AnomalyClient calls the external anomaly detection service.
type AnomalyClient struct {
	baseURL string
	client  *http.Client
}

func NewAnomalyClient(baseURL string, timeout time.Duration) *AnomalyClient {
	return &AnomalyClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Check submits the sample for anomaly detection.
func (c *AnomalyClient) Check(ctx context.Context, request AnomalyRequest) (AnomalyResult, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return AnomalyResult{}, fmt.Errorf("encoding anomaly request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return AnomalyResult{}, fmt.Errorf("building anomaly request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return AnomalyResult{}, fmt.Errorf("anomaly request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AnomalyResult{}, fmt.Errorf("anomaly service returned status %d", resp.StatusCode)
	}

	var result AnomalyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return AnomalyResult{}, fmt.Errorf("decoding anomaly response: %w", err)
	}

	return result, nil
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TriageResult is the incident classification verdict. Severity is the only
// field the pipeline interprets; the rest of the classifier's response is
// kept opaque in Raw.
type TriageResult struct {
	Severity string
	Raw      map[string]interface{}
}

// TriageClient calls the external incident classification service. Unlike
// the anomaly check, triage failures are surfaced to the reporting caller.
type TriageClient struct {
	baseURL string
	client  *http.Client
}

func NewTriageClient(baseURL string, timeout time.Duration) *TriageClient {
	return &TriageClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Classify submits free incident text and returns the assigned severity.
func (c *TriageClient) Classify(ctx context.Context, text string) (TriageResult, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return TriageResult{}, fmt.Errorf("encoding triage request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return TriageResult{}, fmt.Errorf("building triage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return TriageResult{}, fmt.Errorf("triage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return TriageResult{}, fmt.Errorf("triage service returned status %d", resp.StatusCode)
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return TriageResult{}, fmt.Errorf("decoding triage response: %w", err)
	}

	result := TriageResult{Raw: raw}
	if severity, ok := raw["severity"].(string); ok {
		result.Severity = severity
	}

	return result, nil
}

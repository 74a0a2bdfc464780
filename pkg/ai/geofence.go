package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"safetour/internal/models"
)

// GeofenceClient fetches the full geofence set from the external source.
type GeofenceClient struct {
	baseURL string
	client  *http.Client
}

func NewGeofenceClient(baseURL string, timeout time.Duration) *GeofenceClient {
	return &GeofenceClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchFences returns the current complete polygon set. Callers keep their
// previous set when this fails.
func (c *GeofenceClient) FetchFences(ctx context.Context) ([]models.Geofence, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building geofence request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geofence request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geofence source returned status %d", resp.StatusCode)
	}

	var fences []models.Geofence
	if err := json.NewDecoder(resp.Body).Decode(&fences); err != nil {
		return nil, fmt.Errorf("decoding geofence response: %w", err)
	}

	return fences, nil
}

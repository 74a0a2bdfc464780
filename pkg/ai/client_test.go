package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetour/pkg/ai"
)

func TestAnomalyClientCheck(t *testing.T) {
	var received ai.AnomalyRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(ai.AnomalyResult{Anomaly: true, Reason: "sudden stop"})
	}))
	defer server.Close()

	client := ai.NewAnomalyClient(server.URL, time.Second)

	speed := 12.0
	result, err := client.Check(context.Background(), ai.AnomalyRequest{
		Lat:       28.61,
		Lng:       77.20,
		Speed:     &speed,
		PrevSpeed: 5,
	})
	require.NoError(t, err)
	assert.True(t, result.Anomaly)
	assert.Equal(t, "sudden stop", result.Reason)
	assert.Equal(t, 5.0, received.PrevSpeed)
	require.NotNil(t, received.Speed)
	assert.Equal(t, 12.0, *received.Speed)
}

func TestAnomalyClientNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := ai.NewAnomalyClient(server.URL, time.Second)
	_, err := client.Check(context.Background(), ai.AnomalyRequest{})
	assert.Error(t, err)
}

func TestAnomalyClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := ai.NewAnomalyClient(server.URL, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Check(ctx, ai.AnomalyRequest{})
	assert.Error(t, err)
}

func TestGeofenceClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"F1","name":"Zone","risk_level":"high","polygon":[[28.60,77.19],[28.60,77.21],[28.62,77.21],[28.62,77.19]]}]`))
	}))
	defer server.Close()

	client := ai.NewGeofenceClient(server.URL, time.Second)
	fences, err := client.FetchFences(context.Background())
	require.NoError(t, err)
	require.Len(t, fences, 1)
	assert.Equal(t, "F1", fences[0].ID)
	assert.Equal(t, "high", fences[0].RiskLevel)
	assert.Len(t, fences[0].Polygon, 4)
}

func TestGeofenceClientFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := ai.NewGeofenceClient(server.URL, time.Second)
	_, err := client.FetchFences(context.Background())
	assert.Error(t, err)
}

func TestTriageClientClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "lost near ridge", req["text"])
		w.Write([]byte(`{"severity":"warn","category":"navigation","confidence":0.92}`))
	}))
	defer server.Close()

	client := ai.NewTriageClient(server.URL, time.Second)
	result, err := client.Classify(context.Background(), "lost near ridge")
	require.NoError(t, err)
	assert.Equal(t, "warn", result.Severity)
	assert.Equal(t, "navigation", result.Raw["category"])
}

func TestTriageClientMissingSeverity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"category":"other"}`))
	}))
	defer server.Close()

	client := ai.NewTriageClient(server.URL, time.Second)
	result, err := client.Classify(context.Background(), "something")
	require.NoError(t, err)
	assert.Empty(t, result.Severity)
}

func TestAnalyticsClientSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"active_tourists":42,"alerts_last_hour":3}`))
	}))
	defer server.Close()

	client := ai.NewAnalyticsClient(server.URL, time.Second)
	summary, err := client.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(42), summary["active_tourists"])
	assert.Equal(t, float64(3), summary["alerts_last_hour"])
}

package websocket_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetour/internal/models"
	"safetour/pkg/logger"
	ws "safetour/pkg/websocket"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIngestor struct {
	mu      sync.Mutex
	reports []models.PositionReport
}

func (f *fakeIngestor) Ingest(ctx context.Context, report models.PositionReport) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, report)
}

func (f *fakeIngestor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reports)
}

func newTestServer(t *testing.T, ingestor ws.Ingestor) (*ws.Hub, *httptest.Server) {
	t.Helper()

	hub := ws.NewHub(logger.NewNop())
	go hub.Run()

	handler := ws.NewHandler(hub, ingestor, logger.NewNop())
	router := gin.New()
	router.GET("/ws", handler.HandleWebSocket)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *gorilla.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHubPublishReachesAllSubscribers(t *testing.T) {
	hub, server := newTestServer(t, &fakeIngestor{})

	first := dial(t, server)
	second := dial(t, server)
	waitFor(t, func() bool { return hub.SubscriberCount() == 2 })

	hub.Publish(ws.ChannelGPS, models.PositionEvent{
		Kind:   "pos",
		UserID: "u1",
		Lat:    28.61,
		Lng:    77.20,
		Fences: []string{"F1"},
		TS:     time.Now().UnixMilli(),
	})

	for _, conn := range []*gorilla.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var envelope struct {
			Channel string               `json:"channel"`
			Data    models.PositionEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(payload, &envelope))
		assert.Equal(t, ws.ChannelGPS, envelope.Channel)
		assert.Equal(t, "u1", envelope.Data.UserID)
		assert.Equal(t, []string{"F1"}, envelope.Data.Fences)
	}
}

func TestHubDisconnectRemovesSubscriber(t *testing.T) {
	hub, server := newTestServer(t, &fakeIngestor{})

	conn := dial(t, server)
	waitFor(t, func() bool { return hub.SubscriberCount() == 1 })

	conn.Close()
	waitFor(t, func() bool { return hub.SubscriberCount() == 0 })

	// Publishing with no subscribers is a no-op, not an error.
	hub.Publish(ws.ChannelAlerts, models.SOSAlert{Kind: "sos", UserID: "u1", On: true})
}

func TestClientFeedsGPSReportsToIngestor(t *testing.T) {
	ingestor := &fakeIngestor{}
	hub, server := newTestServer(t, ingestor)

	conn := dial(t, server)
	waitFor(t, func() bool { return hub.SubscriberCount() == 1 })

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"type":"gps","user_id":"u1","lat":28.61,"lng":77.20,"speed":5}`)))
	waitFor(t, func() bool { return ingestor.count() == 1 })

	ingestor.mu.Lock()
	report := ingestor.reports[0]
	ingestor.mu.Unlock()
	assert.Equal(t, "u1", report.UserID)
	require.NotNil(t, report.Lat)
	assert.Equal(t, 28.61, *report.Lat)

	// Malformed and non-gps messages are skipped without closing the
	// connection.
	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{not json`)))
	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"type":"chat","body":"hi"}`)))
	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"type":"gps","user_id":"u2","lat":1,"lng":2}`)))

	waitFor(t, func() bool { return ingestor.count() == 2 })
	assert.Equal(t, 1, hub.SubscriberCount())
}

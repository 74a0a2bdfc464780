package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"safetour/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Ingestor consumes decoded position reports coming in over subscriber
// connections.
type Ingestor interface {
	Ingest(ctx context.Context, report models.PositionReport)
}

// Client is one subscriber connection. Membership in the hub is its only
// state; it is created on connect and removed on disconnect or failed send.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	ingestor Ingestor
}

func NewClient(hub *Hub, conn *websocket.Conn, ingestor Ingestor) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		ingestor: ingestor,
	}
}

// readPump decodes inbound messages and feeds gps reports to the ingestion
// pipeline. Malformed or unknown messages are skipped, never fatal to the
// connection.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Debug("subscriber read error")
			}
			break
		}

		var report models.PositionReport
		if err := json.Unmarshal(message, &report); err != nil {
			c.hub.log.WithError(err).Debug("skipping malformed subscriber message")
			continue
		}

		if report.Type == "gps" {
			c.ingestor.Ingest(context.Background(), report)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

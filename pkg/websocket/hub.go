package websocket

import (
	"encoding/json"
	"sync"

	"safetour/pkg/logger"
)

// Logical channels multiplexed over each subscriber connection.
const (
	ChannelGPS    = "gps"
	ChannelAlerts = "alerts"
)

// Envelope tags an outbound payload with the channel it belongs to.
type Envelope struct {
	Channel string      `json:"channel"`
	Data    interface{} `json:"data"`
}

// Hub is the registry of connected subscribers and the fan-out broadcaster.
// Delivery is best effort: a subscriber whose send buffer is full is dropped
// without affecting the others, and nothing is queued or replayed.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.Mutex
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run processes subscriber lifecycle events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	h.log.WithField("subscribers", len(h.clients)).Debug("subscriber connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.log.WithField("subscribers", len(h.clients)).Debug("subscriber disconnected")
	}
}

// Publish serializes the envelope once and hands it to every connected
// subscriber. Failure to deliver to one subscriber never raises an error to
// the caller.
func (h *Hub) Publish(channel string, data interface{}) {
	payload, err := json.Marshal(Envelope{Channel: channel, Data: data})
	if err != nil {
		h.log.WithError(err).Error("failed to encode broadcast payload")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// SubscriberCount returns the number of currently connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

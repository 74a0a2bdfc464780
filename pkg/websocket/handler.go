package websocket

import (
	"github.com/gin-gonic/gin"

	"safetour/pkg/logger"
)

// Handler upgrades HTTP requests into subscriber connections.
type Handler struct {
	hub      *Hub
	ingestor Ingestor
	log      *logger.Logger
}

func NewHandler(hub *Hub, ingestor Ingestor, log *logger.Logger) *Handler {
	return &Handler{
		hub:      hub,
		ingestor: ingestor,
		log:      log,
	}
}

// HandleWebSocket upgrades the request and starts the connection pumps.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := NewClient(h.hub, conn, h.ingestor)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// Hub exposes the underlying hub for publishing.
func (h *Handler) Hub() *Hub {
	return h.hub
}

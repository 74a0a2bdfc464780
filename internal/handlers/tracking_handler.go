package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"safetour/internal/services"
)

// TrackingHandler serves the public tracking surface: health, the current
// fence set, last known positions and registration.
type TrackingHandler struct {
	positions  *services.PositionService
	fences     *services.FenceService
	users      *services.UserService
	demoUserID string
}

func NewTrackingHandler(
	positions *services.PositionService,
	fences *services.FenceService,
	users *services.UserService,
	demoUserID string,
) *TrackingHandler {
	return &TrackingHandler{
		positions:  positions,
		fences:     fences,
		users:      users,
		demoUserID: demoUserID,
	}
}

// GetHealth reports liveness plus a few store counters.
func (h *TrackingHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"users":        h.users.Count(),
		"fences":       len(h.fences.Snapshot()),
		"demo_user_id": h.demoUserID,
	})
}

// ListFences returns the current geofence snapshot.
func (h *TrackingHandler) ListFences(c *gin.Context) {
	c.JSON(http.StatusOK, h.fences.Snapshot())
}

// GetLastPosition returns the user's last known position as a point
// geometry, or null when the user never reported.
func (h *TrackingHandler) GetLastPosition(c *gin.Context) {
	sample, ok := h.positions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ts": sample.ObservedAt,
		"geom": gin.H{
			"type":        "Point",
			"coordinates": []float64{sample.Lng, sample.Lat},
		},
		"speed": sample.Speed,
	})
}

type registerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// RegisterUser creates a new tourist and returns its opaque id.
func (h *TrackingHandler) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Name required"})
		return
	}

	var phone *string
	if trimmed := strings.TrimSpace(req.Phone); trimmed != "" {
		phone = &trimmed
	}

	user := h.users.Register(strings.TrimSpace(req.Name), phone)
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": user.ID, "user": user})
}

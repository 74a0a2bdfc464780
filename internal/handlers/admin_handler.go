package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"safetour/internal/services"
)

// adminListLimit caps the admin user and alert listings.
const adminListLimit = 200

// AnalyticsSource returns the aggregate KPI summary.
type AnalyticsSource interface {
	Summary(ctx context.Context) (map[string]interface{}, error)
}

// AdminHandler serves the operator surface: KPIs, recently active users and
// the alert log.
type AdminHandler struct {
	events    *services.EventService
	users     *services.UserService
	positions *services.PositionService
	analytics AnalyticsSource
}

func NewAdminHandler(
	events *services.EventService,
	users *services.UserService,
	positions *services.PositionService,
	analytics AnalyticsSource,
) *AdminHandler {
	return &AdminHandler{
		events:    events,
		users:     users,
		positions: positions,
		analytics: analytics,
	}
}

// GetKPIs proxies the analytics summary, stamped with a generation time.
func (h *AdminHandler) GetKPIs(c *gin.Context) {
	summary, err := h.analytics.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analytics error"})
		return
	}

	out := gin.H{}
	for k, v := range summary {
		out[k] = v
	}
	out["generated_at"] = time.Now().UTC()

	c.JSON(http.StatusOK, out)
}

type touristRow struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	LastTS    *time.Time `json:"last_ts"`
}

// ListTourists returns up to 200 users, most recently active first. Users
// who never reported a position sort by registration time.
func (h *AdminHandler) ListTourists(c *gin.Context) {
	users := h.users.List()

	rows := make([]touristRow, 0, len(users))
	for _, user := range users {
		row := touristRow{
			ID:        user.ID,
			Name:      user.Name,
			CreatedAt: user.CreatedAt,
		}
		if lastSeen, ok := h.positions.LastSeen(user.ID); ok {
			row.LastTS = &lastSeen
		}
		rows = append(rows, row)
	}

	activity := func(r touristRow) time.Time {
		if r.LastTS != nil {
			return *r.LastTS
		}
		return r.CreatedAt
	}
	sort.Slice(rows, func(i, j int) bool {
		return activity(rows[i]).After(activity(rows[j]))
	})

	if len(rows) > adminListLimit {
		rows = rows[:adminListLimit]
	}

	c.JSON(http.StatusOK, rows)
}

// ListAlerts returns up to 200 most recent alert events, newest first.
func (h *AdminHandler) ListAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.events.Recent(adminListLimit))
}

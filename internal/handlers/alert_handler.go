package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"safetour/internal/models"
	"safetour/internal/services"
	"safetour/pkg/ai"
	"safetour/pkg/logger"
	"safetour/pkg/websocket"
)

// IncidentClassifier assigns a severity to free incident text.
type IncidentClassifier interface {
	Classify(ctx context.Context, text string) (ai.TriageResult, error)
}

// AlertHandler serves SOS toggles and free-text incident reports. Both
// append to the alert log and broadcast on the alerts channel.
type AlertHandler struct {
	events *services.EventService
	hub    services.Broadcaster
	triage IncidentClassifier
	log    *logger.Logger
}

func NewAlertHandler(
	events *services.EventService,
	hub services.Broadcaster,
	triage IncidentClassifier,
	log *logger.Logger,
) *AlertHandler {
	return &AlertHandler{
		events: events,
		hub:    hub,
		triage: triage,
		log:    log,
	}
}

type sosRequest struct {
	UserID string `json:"user_id"`
	On     bool   `json:"on"`
}

// TriggerSOS records an SOS toggle and broadcasts it. A well-formed toggle
// always succeeds.
func (h *AlertHandler) TriggerSOS(c *gin.Context) {
	var req sosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request body"})
		return
	}

	severity := models.SeverityInfo
	if req.On {
		severity = models.SeverityHigh
	}

	event := h.events.Append(req.UserID, models.EventKindSOS, severity, map[string]interface{}{
		"on": req.On,
	})
	h.hub.Publish(websocket.ChannelAlerts, models.SOSAlert{
		Kind:   string(models.EventKindSOS),
		UserID: req.UserID,
		On:     req.On,
		TS:     event.Timestamp,
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type incidentRequest struct {
	Text   string `json:"text"`
	UserID string `json:"user_id"`
}

// ReportIncident forwards free incident text to the classifier and records
// the result. Classifier failure is surfaced to the caller, not swallowed.
func (h *AlertHandler) ReportIncident(c *gin.Context) {
	var req incidentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing text or user_id"})
		return
	}

	result, err := h.triage.Classify(c.Request.Context(), req.Text)
	if err != nil {
		h.log.WithError(err).Error("incident classification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Incident classification unavailable"})
		return
	}

	severity := models.EventSeverity(result.Severity)
	if severity == "" {
		severity = models.SeverityLow
	}

	event := h.events.Append(req.UserID, models.EventKindIncident, severity, map[string]interface{}{
		"text":           req.Text,
		"classification": result.Raw,
	})
	h.hub.Publish(websocket.ChannelAlerts, models.IncidentAlert{
		Kind:     string(models.EventKindIncident),
		UserID:   req.UserID,
		Severity: severity,
		Text:     req.Text,
		TS:       event.Timestamp,
	})

	c.JSON(http.StatusOK, gin.H{"ok": true, "severity": severity})
}

package services

import (
	"context"
	"time"

	"safetour/internal/models"
	"safetour/internal/utils"
	"safetour/pkg/ai"
	"safetour/pkg/logger"
	"safetour/pkg/websocket"
)

// AnomalyTimeout bounds the anomaly oracle call so a slow dependency cannot
// stall ingestion; expiry is treated the same as a transport failure.
const AnomalyTimeout = 3 * time.Second

// Broadcaster fans one event out to every connected subscriber.
type Broadcaster interface {
	Publish(channel string, data interface{})
}

// AnomalyChecker flags abnormal speed/position combinations.
type AnomalyChecker interface {
	Check(ctx context.Context, request ai.AnomalyRequest) (ai.AnomalyResult, error)
}

// IngestService runs each inbound position report through the
// validate, store, anomaly-check, geofence-check, publish sequence. It
// keeps no state of its own between reports; everything shared lives in
// the stores.
type IngestService struct {
	positions *PositionService
	fences    *FenceService
	events    *EventService
	anomaly   AnomalyChecker
	hub       Broadcaster
	log       *logger.Logger
}

func NewIngestService(
	positions *PositionService,
	fences *FenceService,
	events *EventService,
	anomaly AnomalyChecker,
	hub Broadcaster,
	log *logger.Logger,
) *IngestService {
	return &IngestService{
		positions: positions,
		fences:    fences,
		events:    events,
		anomaly:   anomaly,
		hub:       hub,
		log:       log,
	}
}

// Ingest processes one position report, fire and forget. Reports with
// missing or non-finite coordinates are dropped before any state changes.
// An anomaly oracle failure downgrades to a non-anomaly result and never
// aborts the report; the gps broadcast always goes out for a valid report.
func (s *IngestService) Ingest(ctx context.Context, report models.PositionReport) {
	if report.Lat == nil || report.Lng == nil || !utils.IsFiniteCoordinate(*report.Lat, *report.Lng) {
		s.log.WithField("user_id", report.UserID).Debug("dropping report with invalid coordinates")
		return
	}
	lat, lng := *report.Lat, *report.Lng
	now := time.Now()

	// Stored before the anomaly check so concurrent readers already see the
	// new position during a slow oracle call.
	s.positions.Put(report.UserID, models.PositionSample{
		UserID:     report.UserID,
		Lat:        lat,
		Lng:        lng,
		Speed:      report.Speed,
		ObservedAt: now,
	})

	prevSpeed := s.positions.PrevSpeed(report.UserID)

	var anomalyReason string
	checkCtx, cancel := context.WithTimeout(ctx, AnomalyTimeout)
	result, err := s.anomaly.Check(checkCtx, ai.AnomalyRequest{
		Lat:       lat,
		Lng:       lng,
		Speed:     report.Speed,
		PrevSpeed: prevSpeed,
	})
	cancel()
	if err != nil {
		s.log.WithError(err).WithField("user_id", report.UserID).Warn("anomaly check failed")
	} else if result.Anomaly {
		anomalyReason = result.Reason
	}

	// The baseline moves forward even when the check failed.
	var speed float64
	if report.Speed != nil {
		speed = *report.Speed
	}
	s.positions.SetPrevSpeed(report.UserID, speed)

	matched := s.fences.Match(lat, lng)
	fenceIDs := make([]string, 0, len(matched))
	for _, fence := range matched {
		fenceIDs = append(fenceIDs, fence.ID)
	}

	s.hub.Publish(websocket.ChannelGPS, models.PositionEvent{
		Kind:   "pos",
		UserID: report.UserID,
		Lat:    lat,
		Lng:    lng,
		Speed:  report.Speed,
		Fences: fenceIDs,
		TS:     now.UnixMilli(),
	})

	if len(matched) > 0 {
		refs := make([]models.FenceRef, 0, len(matched))
		for _, fence := range matched {
			refs = append(refs, models.FenceRef{
				ID:        fence.ID,
				Name:      fence.Name,
				RiskLevel: fence.RiskLevel,
			})
		}

		event := s.events.Append(report.UserID, models.EventKindEnter, models.SeverityWarn, map[string]interface{}{
			"fence_ids": fenceIDs,
		})
		s.hub.Publish(websocket.ChannelAlerts, models.EnterAlert{
			Kind:   string(models.EventKindEnter),
			UserID: report.UserID,
			Fences: refs,
			TS:     event.Timestamp,
		})
	}

	if anomalyReason != "" {
		event := s.events.Append(report.UserID, models.EventKindAnomaly, models.SeverityHigh, map[string]interface{}{
			"reason": anomalyReason,
		})
		s.hub.Publish(websocket.ChannelAlerts, models.AnomalyAlert{
			Kind:   string(models.EventKindAnomaly),
			UserID: report.UserID,
			Reason: anomalyReason,
			TS:     event.Timestamp,
		})
	}
}

package services

import (
	"context"
	"sync/atomic"
	"time"

	"safetour/internal/models"
	"safetour/internal/utils"
	"safetour/pkg/logger"
)

// FenceRefreshInterval is how often the geofence set is re-fetched from the
// external source. Staleness up to one interval is accepted.
const FenceRefreshInterval = time.Hour

// FenceSource returns the full current geofence set.
type FenceSource interface {
	FetchFences(ctx context.Context) ([]models.Geofence, error)
}

// FenceService holds the current geofence snapshot and refreshes it in the
// background. The snapshot is swapped atomically, so concurrent readers see
// either the old or the new complete set, never a torn one.
type FenceService struct {
	source   FenceSource
	log      *logger.Logger
	snapshot atomic.Value // []models.Geofence
}

func NewFenceService(source FenceSource, log *logger.Logger) *FenceService {
	s := &FenceService{
		source: source,
		log:    log,
	}
	s.snapshot.Store([]models.Geofence{})
	return s
}

// Snapshot returns the current fence set. The returned slice is shared and
// must be treated as read-only.
func (s *FenceService) Snapshot() []models.Geofence {
	return s.snapshot.Load().([]models.Geofence)
}

// Refresh fetches the fence set once and installs it. On failure the
// previous snapshot stays in place.
func (s *FenceService) Refresh(ctx context.Context) error {
	fences, err := s.source.FetchFences(ctx)
	if err != nil {
		return err
	}
	if fences == nil {
		fences = []models.Geofence{}
	}
	s.snapshot.Store(fences)
	s.log.WithField("fences", len(fences)).Info("geofence set refreshed")
	return nil
}

// Run refreshes the fence set on a fixed interval until the context is
// cancelled. A failed fetch is logged and retried on the next tick only.
func (s *FenceService) Run(ctx context.Context) {
	ticker := time.NewTicker(FenceRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.WithError(err).Warn("geofence refresh failed, keeping previous set")
			}
		}
	}
}

// Match returns the fences whose polygon contains the point, evaluated
// against the current snapshot.
func (s *FenceService) Match(lat, lng float64) []models.Geofence {
	var matched []models.Geofence
	for _, fence := range s.Snapshot() {
		if len(fence.Polygon) < 3 {
			continue
		}
		if utils.PointInPolygon(lat, lng, fence.Polygon) {
			matched = append(matched, fence)
		}
	}
	return matched
}

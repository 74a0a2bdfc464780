package services

import (
	"sync"
	"time"

	"safetour/internal/models"
)

// PositionService keeps the single most recent position per user together
// with the previous-speed baseline consumed by the anomaly check. Last
// write wins; there is no history and no ordering check against the
// observation timestamp.
type PositionService struct {
	mu        sync.RWMutex
	positions map[string]models.PositionSample
	lastSpeed map[string]float64
}

func NewPositionService() *PositionService {
	return &PositionService{
		positions: make(map[string]models.PositionSample),
		lastSpeed: make(map[string]float64),
	}
}

// Put overwrites the user's last known position unconditionally.
func (s *PositionService) Put(userID string, sample models.PositionSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[userID] = sample
}

// Get returns the user's last known position, if any.
func (s *PositionService) Get(userID string) (models.PositionSample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sample, ok := s.positions[userID]
	return sample, ok
}

// List returns a copy of every current sample.
func (s *PositionService) List() []models.PositionSample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	samples := make([]models.PositionSample, 0, len(s.positions))
	for _, sample := range s.positions {
		samples = append(samples, sample)
	}
	return samples
}

// LastSeen returns when the user last reported a position, if ever.
func (s *PositionService) LastSeen(userID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sample, ok := s.positions[userID]
	if !ok {
		return time.Time{}, false
	}
	return sample.ObservedAt, true
}

// PrevSpeed returns the previous-speed baseline, zero when none recorded.
func (s *PositionService) PrevSpeed(userID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSpeed[userID]
}

// SetPrevSpeed moves the baseline forward. Called after every anomaly
// check, including failed ones, so the baseline never goes stale.
func (s *PositionService) SetPrevSpeed(userID string, speed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSpeed[userID] = speed
}

package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"safetour/internal/models"
)

// EventLogCapacity bounds the in-memory alert log. Insertion beyond the cap
// evicts the oldest record; eviction is defined behavior, not an error.
const EventLogCapacity = 200

// EventService is the append-only alert log, newest first.
type EventService struct {
	mu       sync.RWMutex
	events   []models.AlertEvent
	capacity int
}

func NewEventService() *EventService {
	return &EventService{capacity: EventLogCapacity}
}

// Append creates a new alert record at the head of the log and returns it.
func (s *EventService) Append(userID string, kind models.EventKind, severity models.EventSeverity, details map[string]interface{}) models.AlertEvent {
	event := models.AlertEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Severity:  severity,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append([]models.AlertEvent{event}, s.events...)
	if len(s.events) > s.capacity {
		s.events = s.events[:s.capacity]
	}

	return event
}

// Recent returns up to limit events, newest first.
func (s *EventService) Recent(limit int) []models.AlertEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.events) {
		limit = len(s.events)
	}

	recent := make([]models.AlertEvent, limit)
	copy(recent, s.events[:limit])
	return recent
}

// Len returns the current number of retained events.
func (s *EventService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

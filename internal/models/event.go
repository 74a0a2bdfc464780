package models

import "time"

type EventKind string

const (
	EventKindSOS      EventKind = "sos"
	EventKindIncident EventKind = "incident"
	EventKindEnter    EventKind = "enter"
	EventKindAnomaly  EventKind = "anomaly"
)

type EventSeverity string

const (
	SeverityInfo EventSeverity = "info"
	SeverityLow  EventSeverity = "low"
	SeverityWarn EventSeverity = "warn"
	SeverityHigh EventSeverity = "high"
)

// AlertEvent is one record in the bounded alert log. Events are never
// mutated after creation; old records are evicted when the log is full.
type AlertEvent struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      EventKind              `json:"type"`
	Severity  EventSeverity          `json:"severity"`
	Timestamp time.Time              `json:"ts"`
	Details   map[string]interface{} `json:"details"`
}

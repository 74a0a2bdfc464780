package models

import "time"

// Broadcast payloads. Each is wrapped in a channel envelope by the hub
// before delivery; gps carries epoch-millisecond timestamps, alert payloads
// carry the timestamp of the alert record they mirror.

// PositionEvent is the gps-channel payload published for every accepted
// report, whether or not any fence matched.
type PositionEvent struct {
	Kind   string   `json:"kind"`
	UserID string   `json:"user_id"`
	Lat    float64  `json:"lat"`
	Lng    float64  `json:"lng"`
	Speed  *float64 `json:"speed"`
	Fences []string `json:"fences"`
	TS     int64    `json:"ts"`
}

// EnterAlert is published when a report lands inside one or more fences.
type EnterAlert struct {
	Kind   string     `json:"kind"`
	UserID string     `json:"user_id"`
	Fences []FenceRef `json:"fences"`
	TS     time.Time  `json:"ts"`
}

// AnomalyAlert is published when the anomaly oracle flags a report.
type AnomalyAlert struct {
	Kind   string    `json:"kind"`
	UserID string    `json:"user_id"`
	Reason string    `json:"reason"`
	TS     time.Time `json:"ts"`
}

// SOSAlert mirrors an SOS toggle submitted over the HTTP surface.
type SOSAlert struct {
	Kind   string    `json:"kind"`
	UserID string    `json:"user_id"`
	On     bool      `json:"on"`
	TS     time.Time `json:"ts"`
}

// IncidentAlert mirrors a classified free-text incident report.
type IncidentAlert struct {
	Kind     string        `json:"kind"`
	UserID   string        `json:"user_id"`
	Severity EventSeverity `json:"severity"`
	Text     string        `json:"text"`
	TS       time.Time     `json:"ts"`
}

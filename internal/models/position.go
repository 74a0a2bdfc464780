package models

import "time"

// PositionSample is the last known position of one user. Exactly one sample
// is retained per user; every valid report overwrites the previous one,
// regardless of observation order.
type PositionSample struct {
	UserID     string    `json:"user_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Speed      *float64  `json:"speed"`
	ObservedAt time.Time `json:"observed_at"`
}

// PositionReport is an inbound gps message from a subscriber connection.
// Coordinates are pointers so a missing field is distinguishable from zero
// and can be rejected during validation.
type PositionReport struct {
	Type   string   `json:"type"`
	UserID string   `json:"user_id"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Speed  *float64 `json:"speed,omitempty"`
}

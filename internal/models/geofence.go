package models

// Geofence is a named polygonal danger/restricted zone. The polygon is an
// ordered [lat,lng] vertex ring; the first vertex implicitly connects to the
// last. The whole set is replaced atomically on refresh, individual fences
// are never mutated.
type Geofence struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	RiskLevel string      `json:"risk_level"`
	Polygon   [][]float64 `json:"polygon"`
}

// FenceRef is the subset of fence fields carried on enter alerts.
type FenceRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RiskLevel string `json:"risk_level"`
}

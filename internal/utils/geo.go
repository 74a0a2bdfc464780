package utils

import "math"

// IsFiniteCoordinate reports whether both coordinates are finite numbers.
// NaN or infinite coordinates must be rejected before any state is touched.
func IsFiniteCoordinate(lat, lng float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) &&
		!math.IsNaN(lng) && !math.IsInf(lng, 0)
}

// PointInPolygon runs a crossing-number (ray casting) test of the point
// against an ordered [lat,lng] vertex ring. An edge counts as a crossing
// when its longitude span straddles the point's longitude and the edge's
// latitude at that longitude is above the point's; an odd crossing count
// means inside. Near-vertical edges divide by a small epsilon instead of
// zero, so boundary-touching points get best-effort answers only.
func PointInPolygon(lat, lng float64, polygon [][]float64) bool {
	odd := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		latI, lonI := polygon[i][0], polygon[i][1]
		latJ, lonJ := polygon[j][0], polygon[j][1]

		span := lonJ - lonI
		if span == 0 {
			span = 1e-12
		}

		if (lonI > lng) != (lonJ > lng) &&
			lat < (latJ-latI)*(lng-lonI)/span+latI {
			odd = !odd
		}
	}
	return odd
}

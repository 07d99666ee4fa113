// Package geo provides great-circle distance math for geofence checks.
package geo

import "math"

// EarthRadius in meters.
const EarthRadius = 6371000.0

// Distance returns the haversine distance in meters between two
// coordinate pairs given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	φ1 := lat1 * math.Pi / 180.0
	φ2 := lat2 * math.Pi / 180.0
	Δφ := (lat2 - lat1) * math.Pi / 180.0
	Δλ := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

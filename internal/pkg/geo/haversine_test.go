package geo

import (
	"math"
	"testing"
)

const (
	siteLat = -32.8908
	siteLon = -68.8272
)

func TestDistanceIdentity(t *testing.T) {
	if d := Distance(siteLat, siteLon, siteLat, siteLon); d != 0 {
		t.Errorf("Distance(A, A) = %v, want 0", d)
	}
	if d := Distance(0, 0, 0, 0); d != 0 {
		t.Errorf("Distance(origin, origin) = %v, want 0", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{siteLat, siteLon, -32.8917, -68.8272},
		{40.730610, -73.935242, 40.7580, -73.9855},
		{35.7031509, 139.7745439, 35.6586, 139.7454},
		{-90, -180, 90, 180},
	}

	for _, p := range pairs {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Distance not symmetric: %v vs %v for %v", ab, ba, p)
		}
	}
}

func TestDistanceKnownOffsets(t *testing.T) {
	// One degree of latitude spans pi*R/180 meters, so small latitude
	// offsets give exact expected distances.
	metersPerDeg := math.Pi * EarthRadius / 180.0

	tests := []struct {
		name   string
		offset float64 // degrees of latitude
		want   float64 // meters
	}{
		{"hundred meters", 100.0 / metersPerDeg, 100.0},
		{"two hundred meters", 200.0 / metersPerDeg, 200.0},
		{"one kilometer", 1000.0 / metersPerDeg, 1000.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(siteLat, siteLon, siteLat+tt.offset, siteLon)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Distance = %v, want %v (±0.01)", got, tt.want)
			}
		})
	}
}

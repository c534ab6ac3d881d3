package geo

import (
	"math"
	"testing"
)

func TestDistanceZero(t *testing.T) {
	points := [][2]float64{{0, 0}, {45.1589, -93.3954}, {-33.8688, 151.2093}, {89.9, 179.9}}
	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(%v, %v) to itself = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{45.1589, -93.3954, 45.0941, -93.4561},
		{40.7128, -74.0060, 51.5074, -0.1278},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0, 179.5, 0, -179.5},
	}

	for _, p := range pairs {
		ab := Distance(p.lat1, p.lon1, p.lat2, p.lon2)
		ba := Distance(p.lat2, p.lon2, p.lat1, p.lon1)
		if math.Abs(ab-ba) > 1e-9*math.Max(ab, 1) {
			t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistanceKnownValues(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		// Один градус по меридиану: R * pi / 180
		{"one degree latitude", 0, 0, 1, 0, EarthRadiusMiles * math.Pi / 180},
		// Четверть окружности по экватору
		{"quarter equator", 0, 0, 0, 90, EarthRadiusMiles * math.Pi / 2},
		{"antipodal", 0, 0, 0, 180, EarthRadiusMiles * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > 1e-6*tt.want {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatMiles(t *testing.T) {
	tests := map[float64]string{
		0:      "0.0 miles",
		3.14:   "3.1 miles",
		2.96:   "3.0 miles",
		12.345: "12.3 miles",
	}
	for in, want := range tests {
		if got := FormatMiles(in); got != want {
			t.Errorf("FormatMiles(%v) = %q, want %q", in, got, want)
		}
	}
}

package geo

import (
	"math"
	"testing"
)

func TestHaversineZeroDistance(t *testing.T) {
	p := Point{Lat: 43.6532, Lon: -79.3832}
	if d := Haversine(p, p); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestHaversineTorontoMontreal(t *testing.T) {
	toronto := Point{Lat: 43.6532, Lon: -79.3832}
	montreal := Point{Lat: 45.5017, Lon: -73.5673}

	d := Haversine(toronto, montreal)
	// Real-world distance is roughly 504 km.
	if d < 495 || d > 515 {
		t.Fatalf("Toronto-Montreal distance out of range: %f km", d)
	}

	// Distance is symmetric.
	if back := Haversine(montreal, toronto); math.Abs(back-d) > 1e-9 {
		t.Fatalf("asymmetric distance: %f vs %f", d, back)
	}
}

func TestHaversineShortRange(t *testing.T) {
	a := Point{Lat: 49.2827, Lon: -123.1207} // Vancouver
	b := Point{Lat: 49.2827, Lon: -123.0}    // ~8.8 km east

	d := Haversine(a, b)
	if d < 8 || d > 10 {
		t.Fatalf("short-range distance out of range: %f km", d)
	}
}

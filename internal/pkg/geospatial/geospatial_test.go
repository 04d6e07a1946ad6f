package geospatial

import (
	"math"
	"testing"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

func TestDistance_KnownDistance(t *testing.T) {
	// Bilbao to Madrid is roughly 320 km as the crow flies.
	d := Distance(domain.NewCoordinate(-2.9350, 43.2630), domain.NewCoordinate(-3.7038, 40.4168))
	if d < 310_000 || d > 330_000 {
		t.Errorf("expected ~320km, got %.0fm", d)
	}
}

func TestDistance_SamePoint(t *testing.T) {
	if d := Distance(domain.NewCoordinate(8.68, 49.41), domain.NewCoordinate(8.68, 49.41)); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestBoundsOf(t *testing.T) {
	b := BoundsOf(
		domain.NewCoordinate(8.681495, 49.41461),
		domain.NewCoordinate(8.687872, 49.420318),
		domain.NewCoordinate(8.684, 49.41),
	)
	want := domain.Bounds{MinLon: 8.681495, MinLat: 49.41, MaxLon: 8.687872, MaxLat: 49.420318}
	if b != want {
		t.Errorf("got %+v, want %+v", b, want)
	}
}

func TestBoundsOf_Empty(t *testing.T) {
	if b := BoundsOf(); !b.IsZero() {
		t.Errorf("expected zero bounds, got %+v", b)
	}
}

func TestLineStringRoundTrip(t *testing.T) {
	in := []domain.Coordinate{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}
	ls := LineString(in)
	if ls[1][0] != 3 || ls[1][1] != 4 {
		t.Fatalf("expected [lon,lat] order, got %v", ls[1])
	}
	out := Coordinates(ls)
	for i := range in {
		if math.Abs(out[i].Lon-in[i].Lon) > 0 || math.Abs(out[i].Lat-in[i].Lat) > 0 {
			t.Errorf("point %d: got %+v want %+v", i, out[i], in[i])
		}
	}
}

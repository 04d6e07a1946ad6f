package geospatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// Distance returns the great-circle distance in meters between two points.
func Distance(a, b domain.Coordinate) float64 {
	return geo.DistanceHaversine(orb.Point{a.Lon, a.Lat}, orb.Point{b.Lon, b.Lat})
}

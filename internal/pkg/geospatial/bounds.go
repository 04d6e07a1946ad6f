package geospatial

import (
	"github.com/paulmach/orb"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// LineString converts a route geometry to an orb line string.
func LineString(coords []domain.Coordinate) orb.LineString {
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		ls[i] = orb.Point{c.Lon, c.Lat}
	}
	return ls
}

// Coordinates converts an orb line string back to route geometry.
func Coordinates(ls orb.LineString) []domain.Coordinate {
	coords := make([]domain.Coordinate, len(ls))
	for i, p := range ls {
		coords[i] = domain.NewCoordinate(p.Lon(), p.Lat())
	}
	return coords
}

// BoundsOf returns the bounding box of the given points. An empty input
// yields zero bounds.
func BoundsOf(coords ...domain.Coordinate) domain.Bounds {
	if len(coords) == 0 {
		return domain.Bounds{}
	}
	return FromOrb(LineString(coords).Bound())
}

// FromOrb converts an orb bound to domain bounds.
func FromOrb(b orb.Bound) domain.Bounds {
	return domain.Bounds{
		MinLon: b.Min.Lon(),
		MinLat: b.Min.Lat(),
		MaxLon: b.Max.Lon(),
		MaxLat: b.Max.Lat(),
	}
}

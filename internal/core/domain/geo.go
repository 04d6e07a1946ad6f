package domain

import "fmt"

// Coordinate is a WGS 84 position in (longitude, latitude) order. This is the
// order used everywhere inside the service; convert with LatLng only where an
// external consumer expects latitude first.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// NewCoordinate builds a Coordinate from a longitude and a latitude.
func NewCoordinate(lon, lat float64) Coordinate {
	return Coordinate{Lon: lon, Lat: lat}
}

// Validate reports whether the coordinate lies inside the valid WGS 84 range.
func (c Coordinate) Validate() error {
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180,180]", c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90,90]", c.Lat)
	}
	return nil
}

// LatLng returns the same position in (latitude, longitude) order.
func (c Coordinate) LatLng() LatLng {
	return LatLng{Lat: c.Lat, Lng: c.Lon}
}

// Pair returns the position as a [lon, lat] array, the GeoJSON order.
func (c Coordinate) Pair() [2]float64 {
	return [2]float64{c.Lon, c.Lat}
}

// LatLng is a position in (latitude, longitude) order, as used by map
// viewports and markers.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Pair returns the position as a [lat, lng] array.
func (l LatLng) Pair() [2]float64 {
	return [2]float64{l.Lat, l.Lng}
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// BoundsFromBBox builds Bounds from a GeoJSON style [minLon, minLat, maxLon, maxLat] slice.
// Slices with 6 values (3D bbox) are accepted, the altitude is ignored.
func BoundsFromBBox(bbox []float64) (Bounds, error) {
	switch len(bbox) {
	case 4:
		return Bounds{MinLon: bbox[0], MinLat: bbox[1], MaxLon: bbox[2], MaxLat: bbox[3]}, nil
	case 6:
		return Bounds{MinLon: bbox[0], MinLat: bbox[1], MaxLon: bbox[3], MaxLat: bbox[4]}, nil
	default:
		return Bounds{}, fmt.Errorf("bbox must have 4 or 6 values, got %d", len(bbox))
	}
}

// IsZero reports whether the bounds were never set.
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

// Center returns the midpoint of the box in (lat, lng) order.
func (b Bounds) Center() LatLng {
	return LatLng{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLon + b.MaxLon) / 2,
	}
}

// SouthWest returns the minimum corner in (lat, lng) order.
func (b Bounds) SouthWest() LatLng {
	return LatLng{Lat: b.MinLat, Lng: b.MinLon}
}

// NorthEast returns the maximum corner in (lat, lng) order.
func (b Bounds) NorthEast() LatLng {
	return LatLng{Lat: b.MaxLat, Lng: b.MaxLon}
}

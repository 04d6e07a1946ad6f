package usecases

import (
	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/pkg/geospatial"
)

// DefaultZoom is the initial zoom level of a rendered map.
const DefaultZoom = 13

// Start marker styling.
const (
	startRadius      = 8
	startColor       = "white"
	startWeight      = 3
	startFillColor   = "blue"
	startFillOpacity = 1.0
)

// MapPresenter builds an interactive map description for a route.
type MapPresenter struct{}

// NewMapPresenter creates a MapPresenter.
func NewMapPresenter() *MapPresenter {
	return &MapPresenter{}
}

// Render centers the map on the route's bounding box, overlays the geometry,
// marks start and end, and fits the viewport to the bounding box. A
// non-positive zoom uses DefaultZoom.
func (p *MapPresenter) Render(route *domain.Route, start, end domain.Coordinate, zoom int) *domain.RenderedMap {
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	bounds := route.Bounds
	if bounds.IsZero() {
		bounds = geospatial.BoundsOf(route.Geometry...)
	}

	return &domain.RenderedMap{
		Center: bounds.Center(),
		Zoom:   zoom,
		Route:  route.Geometry,
		Markers: []domain.Marker{
			{
				Kind:        domain.MarkerCircle,
				Position:    start.LatLng(),
				Tooltip:     "Start",
				Radius:      startRadius,
				Color:       startColor,
				Weight:      startWeight,
				FillColor:   startFillColor,
				FillOpacity: startFillOpacity,
			},
			{
				Kind:     domain.MarkerPin,
				Position: end.LatLng(),
				Tooltip:  "Destination",
			},
		},
		FitBounds: bounds,
	}
}

package openroute

import (
	"encoding/json"

	"github.com/paulmach/orb/geojson"
)

// directionsRequest is the body of POST /v2/directions/{profile}/geojson.
type directionsRequest struct {
	Coordinates  [][2]float64 `json:"coordinates"`
	Instructions bool         `json:"instructions"`
	Units        string       `json:"units"`
}

// directionsResponse is the GeoJSON FeatureCollection returned by the
// geojson endpoint. Geometry is decoded by orb.
type directionsResponse struct {
	Type     string         `json:"type"`
	BBox     geojson.BBox   `json:"bbox,omitempty"`
	Features []routeFeature `json:"features"`
}

type routeFeature struct {
	BBox       geojson.BBox      `json:"bbox,omitempty"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties routeProperties   `json:"properties"`
}

type routeProperties struct {
	Segments []routeSegment `json:"segments"`
	Summary  routeSummary   `json:"summary"`
}

// routeSummary totals; ORS omits zero fields for degenerate routes.
type routeSummary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type routeSegment struct {
	Distance float64     `json:"distance"`
	Duration float64     `json:"duration"`
	Steps    []routeStep `json:"steps"`
}

type routeStep struct {
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Type        int     `json:"type"`
	Instruction string  `json:"instruction"`
	Name        string  `json:"name"`
	WayPoints   []int   `json:"way_points,omitempty"`
}

// errorResponse is the error document ORS sends with non-2xx statuses.
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Info json.RawMessage `json:"info,omitempty"`
}

// ORS error codes that mean no path exists.
const (
	errCodeRouteNotFound    = 2009
	errCodePointNotRoutable = 2010
)

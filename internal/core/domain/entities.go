package domain

import (
	"fmt"
	"strings"
	"time"
)

// Profile is the travel mode used when computing a route.
type Profile string

const (
	ProfileDriving Profile = "driving"
	ProfileCycling Profile = "cycling"
	ProfileWalking Profile = "walking"
)

// ParseProfile accepts a profile name case-insensitively. An empty string
// resolves to driving.
func ParseProfile(s string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProfileDriving:
		return ProfileDriving, nil
	case ProfileCycling:
		return ProfileCycling, nil
	case ProfileWalking:
		return ProfileWalking, nil
	default:
		return "", InvalidError("parse profile", fmt.Errorf("unknown profile %q (want driving, cycling or walking)", s))
	}
}

// OutputMode selects how a computed route is presented.
type OutputMode string

const (
	ModeMap  OutputMode = "map"
	ModeText OutputMode = "text"
)

// ParseMode accepts an output mode name case-insensitively. An empty string
// resolves to map.
func ParseMode(s string) (OutputMode, error) {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeMap:
		return ModeMap, nil
	case ModeText:
		return ModeText, nil
	default:
		return "", InvalidError("parse mode", fmt.Errorf("unknown mode %q (want map or text)", s))
	}
}

// Place is a resolved address.
type Place struct {
	Location    Coordinate `json:"location"`
	DisplayName string     `json:"display_name,omitempty"`
}

// Step is a single turn-by-turn instruction.
type Step struct {
	Instruction     string  `json:"instruction"`
	Name            string  `json:"name,omitempty"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Summary holds route totals.
type Summary struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Duration returns the total travel time.
func (s Summary) Duration() time.Duration {
	return time.Duration(s.DurationSeconds * float64(time.Second))
}

// Route is a computed path between two coordinates.
type Route struct {
	Profile  Profile      `json:"profile"`
	Geometry []Coordinate `json:"geometry"`
	Steps    []Step       `json:"steps"`
	Summary  Summary      `json:"summary"`
	Bounds   Bounds       `json:"bounds"`
}

// MarkerKind distinguishes the start marker from ordinary pins.
type MarkerKind string

const (
	MarkerCircle MarkerKind = "circle"
	MarkerPin    MarkerKind = "pin"
)

// Marker is a point annotation on a rendered map.
type Marker struct {
	Kind     MarkerKind `json:"kind"`
	Position LatLng     `json:"position"`
	Tooltip  string     `json:"tooltip"`

	// Circle styling, ignored for pins.
	Radius      int     `json:"radius,omitempty"`
	Color       string  `json:"color,omitempty"`
	Weight      int     `json:"weight,omitempty"`
	FillColor   string  `json:"fill_color,omitempty"`
	FillOpacity float64 `json:"fill_opacity,omitempty"`
}

// RenderedMap describes an interactive map of a route. It is built once and
// handed to a renderer for serialization.
type RenderedMap struct {
	Center    LatLng       `json:"center"`
	Zoom      int          `json:"zoom"`
	Route     []Coordinate `json:"route"`
	Markers   []Marker     `json:"markers"`
	FitBounds Bounds       `json:"fit_bounds"`
}

// DirectionsRequest is the input of one pipeline run.
type DirectionsRequest struct {
	Address string
	Mode    OutputMode
	Profile Profile

	// ClientIP, when set, is geolocated instead of the caller's own address.
	ClientIP string

	// Zoom is the initial map zoom; zero means the default.
	Zoom int
}

// DirectionsResult is the tagged output of one pipeline run. Exactly one of
// Map and Text is populated, according to Mode.
type DirectionsResult struct {
	Mode        OutputMode   `json:"mode"`
	Map         *RenderedMap `json:"map,omitempty"`
	Text        string       `json:"text,omitempty"`
	Origin      Coordinate   `json:"origin"`
	Destination Place        `json:"destination"`
	Route       *Route       `json:"route"`
}

// RouteComputed is published after a successful pipeline run.
type RouteComputed struct {
	Time               time.Time  `json:"time"`
	Profile            Profile    `json:"profile"`
	Mode               OutputMode `json:"mode"`
	Origin             Coordinate `json:"origin"`
	Destination        Coordinate `json:"destination"`
	DistanceMeters     float64    `json:"distance_meters"`
	DurationSeconds    float64    `json:"duration_seconds"`
	StraightLineMeters float64    `json:"straight_line_meters"`
}

package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	strip "github.com/grokify/html-strip-tags-go"
	"googlemaps.github.io/maps"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/pkg/geospatial"
	"github.com/samirrijal/wayfinder/internal/pkg/metrics"
)

const routeOp = "google directions"

var _ ports.Router = (*Router)(nil)

var travelModes = map[domain.Profile]maps.Mode{
	domain.ProfileDriving: maps.TravelModeDriving,
	domain.ProfileCycling: maps.TravelModeBicycling,
	domain.ProfileWalking: maps.TravelModeWalking,
}

// Router implements ports.Router with the Directions API.
type Router struct {
	client *maps.Client
}

// NewRouter wraps an existing maps client.
func NewRouter(client *maps.Client) *Router {
	return &Router{client: client}
}

// Route requests directions from start to end. Instructions are returned as
// plain text.
func (r *Router) Route(ctx context.Context, start, end domain.Coordinate, profile domain.Profile) (*domain.Route, error) {
	mode, ok := travelModes[profile]
	if !ok {
		return nil, domain.InvalidError(routeOp, fmt.Errorf("unsupported profile %q", profile))
	}

	began := time.Now()
	routes, _, err := r.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      latLngString(start),
		Destination: latLngString(end),
		Mode:        mode,
	})
	switch {
	case hasStatus(err, "ZERO_RESULTS", "NOT_FOUND"):
		metrics.ObserveUpstream("google_directions", "ok", began)
		return nil, domain.RouteNotFoundError(routeOp, err)
	case err != nil:
		metrics.ObserveUpstream("google_directions", "error", began)
		return nil, domain.NetworkError(routeOp, redact(err))
	}
	metrics.ObserveUpstream("google_directions", "ok", began)

	if len(routes) == 0 {
		return nil, domain.RouteNotFoundError(routeOp, errors.New("no routes returned"))
	}
	return toRoute(routes[0], profile)
}

func toRoute(gr maps.Route, profile domain.Profile) (*domain.Route, error) {
	points, err := gr.OverviewPolyline.Decode()
	if err != nil {
		return nil, domain.NetworkError(routeOp, fmt.Errorf("decode polyline: %w", err))
	}

	route := &domain.Route{Profile: profile}
	for _, p := range points {
		route.Geometry = append(route.Geometry, toCoordinate(p))
	}

	for _, leg := range gr.Legs {
		route.Summary.DistanceMeters += float64(leg.Distance.Meters)
		route.Summary.DurationSeconds += leg.Duration.Seconds()

		for _, s := range leg.Steps {
			route.Steps = append(route.Steps, domain.Step{
				Instruction:     CleanInstruction(s.HTMLInstructions),
				DistanceMeters:  float64(s.Distance.Meters),
				DurationSeconds: s.Duration.Seconds(),
			})
		}
	}

	sw, ne := gr.Bounds.SouthWest, gr.Bounds.NorthEast
	if sw != (maps.LatLng{}) || ne != (maps.LatLng{}) {
		route.Bounds = domain.Bounds{MinLon: sw.Lng, MinLat: sw.Lat, MaxLon: ne.Lng, MaxLat: ne.Lat}
	} else {
		route.Bounds = geospatial.BoundsOf(route.Geometry...)
	}

	return route, nil
}

// CleanInstruction strips HTML markup from a Directions API instruction.
// Block elements such as <div> start a new sentence.
func CleanInstruction(html string) string {
	html = strings.ReplaceAll(html, "<div", " <div")
	text := strip.StripTags(html)
	return strings.Join(strings.Fields(text), " ")
}

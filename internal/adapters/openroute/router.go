// Package openroute computes routes with the OpenRouteService directions API.
package openroute

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/pkg/geospatial"
	"github.com/samirrijal/wayfinder/internal/pkg/httpclient"
)

const op = "openroute directions"

var _ ports.Router = (*Router)(nil)

// profiles maps travel modes to ORS profile names.
var profiles = map[domain.Profile]string{
	domain.ProfileDriving: "driving-car",
	domain.ProfileCycling: "cycling-regular",
	domain.ProfileWalking: "foot-walking",
}

// ProfileName returns the ORS profile for p.
func ProfileName(p domain.Profile) (string, bool) {
	name, ok := profiles[p]
	return name, ok
}

// Router implements ports.Router.
type Router struct {
	baseURL string
	apiKey  string
	client  *httpclient.Client
}

// New creates a Router. apiKey is sent in the Authorization header.
func New(baseURL, apiKey string, timeout time.Duration) *Router {
	return &Router{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpclient.New("openroute", timeout),
	}
}

// Route requests a route from start to end with turn instructions.
func (r *Router) Route(ctx context.Context, start, end domain.Coordinate, profile domain.Profile) (*domain.Route, error) {
	orsProfile, ok := ProfileName(profile)
	if !ok {
		return nil, domain.InvalidError(op, fmt.Errorf("unsupported profile %q", profile))
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  [][2]float64{start.Pair(), end.Pair()},
		Instructions: true,
		Units:        "m",
	})
	if err != nil {
		return nil, domain.NetworkError(op, err)
	}

	url := fmt.Sprintf("%s/v2/directions/%s/geojson", r.baseURL, orsProfile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NetworkError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", r.apiKey)

	var resp directionsResponse
	if err := r.client.DoJSON(req, &resp); err != nil {
		return nil, classify(err)
	}

	route, err := toRoute(resp, profile)
	if err != nil {
		return nil, err
	}
	return route, nil
}

// classify maps ORS error documents to domain kinds.
func classify(err error) error {
	var se *httpclient.StatusError
	if !errors.As(err, &se) {
		return domain.NetworkError(op, err)
	}

	var body errorResponse
	if json.Unmarshal(se.Body, &body) == nil {
		switch body.Error.Code {
		case errCodeRouteNotFound, errCodePointNotRoutable:
			return domain.RouteNotFoundError(op, fmt.Errorf("code %d: %s", body.Error.Code, body.Error.Message))
		}
		if body.Error.Message != "" {
			return domain.NetworkError(op, fmt.Errorf("status %d, code %d: %s", se.StatusCode, body.Error.Code, body.Error.Message))
		}
	}
	return domain.NetworkError(op, err)
}

func toRoute(resp directionsResponse, profile domain.Profile) (*domain.Route, error) {
	if len(resp.Features) == 0 {
		return nil, domain.RouteNotFoundError(op, errors.New("response has no route feature"))
	}
	f := resp.Features[0]

	if f.Geometry == nil {
		return nil, domain.NetworkError(op, errors.New("route feature has no geometry"))
	}
	ls, ok := f.Geometry.Geometry().(orb.LineString)
	if !ok {
		return nil, domain.NetworkError(op, fmt.Errorf("route geometry is %s, want LineString", f.Geometry.Type))
	}

	route := &domain.Route{
		Profile:  profile,
		Geometry: geospatial.Coordinates(ls),
		Summary: domain.Summary{
			DistanceMeters:  f.Properties.Summary.Distance,
			DurationSeconds: f.Properties.Summary.Duration,
		},
	}

	for _, seg := range f.Properties.Segments {
		for _, s := range seg.Steps {
			route.Steps = append(route.Steps, domain.Step{
				Instruction:     s.Instruction,
				Name:            s.Name,
				DistanceMeters:  s.Distance,
				DurationSeconds: s.Duration,
			})
		}
	}

	bbox := f.BBox
	if len(bbox) == 0 {
		bbox = resp.BBox
	}
	if len(bbox) > 0 {
		b, err := domain.BoundsFromBBox(bbox)
		if err != nil {
			return nil, domain.NetworkError(op, err)
		}
		route.Bounds = b
	} else {
		route.Bounds = geospatial.FromOrb(ls.Bound())
	}

	return route, nil
}

package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/pkg/geospatial"
	"github.com/samirrijal/wayfinder/internal/pkg/metrics"
	"github.com/samirrijal/wayfinder/internal/pkg/telemetry"
)

// DirectionsService runs the locate → geocode → route → present pipeline.
type DirectionsService struct {
	locator  ports.Locator
	geocoder ports.Geocoder
	router   ports.Router
	events   ports.EventPublisher
	clock    ports.Clock

	text *TextPresenter
	maps *MapPresenter

	defaultProfile domain.Profile
	defaultZoom    int
}

// NewDirectionsService creates a new DirectionsService. events may be nil;
// a nil clock means the system clock.
func NewDirectionsService(
	locator ports.Locator,
	geocoder ports.Geocoder,
	router ports.Router,
	events ports.EventPublisher,
	clock ports.Clock,
) *DirectionsService {
	if clock == nil {
		clock = ports.SystemClock
	}
	return &DirectionsService{
		locator:        locator,
		geocoder:       geocoder,
		router:         router,
		events:         events,
		clock:          clock,
		text:           NewTextPresenter(clock),
		maps:           NewMapPresenter(),
		defaultProfile: domain.ProfileDriving,
		defaultZoom:    DefaultZoom,
	}
}

// WithDefaults sets the profile and zoom used when a request leaves them
// empty.
func (s *DirectionsService) WithDefaults(profile domain.Profile, zoom int) *DirectionsService {
	if profile != "" {
		s.defaultProfile = profile
	}
	if zoom > 0 {
		s.defaultZoom = zoom
	}
	return s
}

// Process computes a route from the caller's location to req.Address and
// renders it according to req.Mode. Stage failures are returned with their
// domain kind intact; there are no partial results.
func (s *DirectionsService) Process(ctx context.Context, req domain.DirectionsRequest) (res *domain.DirectionsResult, err error) {
	// Rejected requests are counted under mode "unknown".
	modeLabel := "unknown"
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = domain.KindOf(err).String()
		}
		metrics.DirectionsTotal.WithLabelValues(modeLabel, outcome).Inc()
	}()

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, domain.InvalidError("process", errors.New("address must not be empty"))
	}
	mode, err := domain.ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	modeLabel = string(mode)
	profile := req.Profile
	if profile == "" {
		profile = s.defaultProfile
	}
	if profile, err = domain.ParseProfile(string(profile)); err != nil {
		return nil, err
	}
	zoom := req.Zoom
	if zoom <= 0 {
		zoom = s.defaultZoom
	}

	ctx, span := telemetry.Tracer().Start(ctx, "directions.process", trace.WithAttributes(
		attribute.String("directions.mode", string(mode)),
		attribute.String("directions.profile", string(profile)),
	))
	defer span.End()

	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	var origin domain.Coordinate
	err = stage(ctx, "locate", func(ctx context.Context) error {
		var err error
		origin, err = s.locator.Locate(ctx, req.ClientIP)
		return err
	})
	if err != nil {
		return nil, err
	}

	var (
		place domain.Place
		found bool
	)
	err = stage(ctx, "geocode", func(ctx context.Context) error {
		var err error
		place, found, err = s.geocoder.Geocode(ctx, address)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFoundError("geocode", fmt.Errorf("no match for %q", address))
	}

	var route *domain.Route
	err = stage(ctx, "route", func(ctx context.Context) error {
		var err error
		route, err = s.router.Route(ctx, origin, place.Location, profile)
		return err
	})
	if err != nil {
		return nil, err
	}

	res = &domain.DirectionsResult{
		Mode:        mode,
		Origin:      origin,
		Destination: place,
		Route:       route,
	}
	switch mode {
	case domain.ModeText:
		res.Text = s.text.Render(route)
	default:
		res.Map = s.maps.Render(route, origin, place.Location, zoom)
	}

	straight := geospatial.Distance(origin, place.Location)
	metrics.RouteDistance.WithLabelValues(string(profile)).Observe(route.Summary.DistanceMeters)

	slog.InfoContext(ctx, "route computed",
		"mode", mode,
		"profile", profile,
		"distance_m", route.Summary.DistanceMeters,
		"duration_s", route.Summary.DurationSeconds,
		"straight_line_m", straight,
		"steps", len(route.Steps),
	)

	if s.events != nil {
		event := &domain.RouteComputed{
			Time:               s.clock.Now(),
			Profile:            profile,
			Mode:               mode,
			Origin:             origin,
			Destination:        place.Location,
			DistanceMeters:     route.Summary.DistanceMeters,
			DurationSeconds:    route.Summary.DurationSeconds,
			StraightLineMeters: straight,
		}
		if perr := s.events.PublishRouteComputed(ctx, event); perr != nil {
			slog.WarnContext(ctx, "publish route computed failed", "error", perr)
		}
	}

	return res, nil
}

// stage runs fn inside a child span. Errors keep their domain kind; untyped
// errors from an adapter are classified as network failures.
func stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := telemetry.Tracer().Start(ctx, "directions."+name)
	defer span.End()

	err := fn(ctx)
	if err == nil {
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if domain.KindOf(err) == domain.KindUnknown {
		return domain.NetworkError(name, err)
	}
	return fmt.Errorf("%s: %w", name, err)
}

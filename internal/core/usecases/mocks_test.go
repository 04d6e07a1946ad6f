package usecases_test

import (
	"context"
	"time"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
)

// --- Mock Locator ---

type mockLocator struct {
	locateFn func(ctx context.Context, ip string) (domain.Coordinate, error)
}

func (m *mockLocator) Locate(ctx context.Context, ip string) (domain.Coordinate, error) {
	if m.locateFn != nil {
		return m.locateFn(ctx, ip)
	}
	return domain.NewCoordinate(8.681495, 49.41461), nil
}

// --- Mock Geocoder ---

type mockGeocoder struct {
	geocodeFn func(ctx context.Context, address string) (domain.Place, bool, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (domain.Place, bool, error) {
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, address)
	}
	return domain.Place{Location: domain.NewCoordinate(8.687872, 49.420318), DisplayName: address}, true, nil
}

// --- Mock Router ---

type mockRouter struct {
	routeFn func(ctx context.Context, start, end domain.Coordinate, profile domain.Profile) (*domain.Route, error)
}

func (m *mockRouter) Route(ctx context.Context, start, end domain.Coordinate, profile domain.Profile) (*domain.Route, error) {
	if m.routeFn != nil {
		return m.routeFn(ctx, start, end, profile)
	}
	return sampleRoute(profile), nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	events []*domain.RouteComputed
	err    error
}

func (m *mockPublisher) PublishRouteComputed(ctx context.Context, event *domain.RouteComputed) error {
	m.events = append(m.events, event)
	return m.err
}

// --- Helpers ---

func fixedClock(hour, min int) ports.Clock {
	t := time.Date(2024, 5, 1, hour, min, 0, 0, time.UTC)
	return ports.ClockFunc(func() time.Time { return t })
}

func sampleRoute(profile domain.Profile) *domain.Route {
	return &domain.Route{
		Profile: profile,
		Geometry: []domain.Coordinate{
			{Lon: 8.681495, Lat: 49.41461},
			{Lon: 8.686507, Lat: 49.41943},
			{Lon: 8.687872, Lat: 49.420318},
		},
		Steps: []domain.Step{
			{Instruction: "Head west on Gerokstraße", DistanceMeters: 1000, DurationSeconds: 80},
			{Instruction: "Arrive at Am Götzenberg, on the right", DistanceMeters: 500, DurationSeconds: 45},
		},
		Summary: domain.Summary{DistanceMeters: 1500, DurationSeconds: 125},
		Bounds:  domain.Bounds{MinLon: 8.681495, MinLat: 49.41461, MaxLon: 8.687872, MaxLat: 49.420318},
	}
}

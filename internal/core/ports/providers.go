package ports

import (
	"context"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// Locator resolves an approximate position from an IP address.
type Locator interface {
	// Locate returns the position of ip, or of the caller's own public
	// address when ip is empty.
	Locate(ctx context.Context, ip string) (domain.Coordinate, error)
}

// Geocoder resolves free-text addresses.
type Geocoder interface {
	// Geocode returns found=false with a nil error when the provider has no
	// match for address.
	Geocode(ctx context.Context, address string) (place domain.Place, found bool, err error)
}

// Router computes routes between two coordinates.
type Router interface {
	Route(ctx context.Context, start, end domain.Coordinate, profile domain.Profile) (*domain.Route, error)
}

package googlemaps

import (
	"context"
	"time"

	"googlemaps.github.io/maps"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/pkg/metrics"
)

var _ ports.Geocoder = (*Geocoder)(nil)

// Geocoder implements ports.Geocoder with the Geocoding API.
type Geocoder struct {
	client *maps.Client
}

// NewGeocoder wraps an existing maps client.
func NewGeocoder(client *maps.Client) *Geocoder {
	return &Geocoder{client: client}
}

// Geocode returns the first result for address. ZERO_RESULTS is reported as
// found=false.
func (g *Geocoder) Geocode(ctx context.Context, address string) (domain.Place, bool, error) {
	start := time.Now()
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	switch {
	case hasStatus(err, "ZERO_RESULTS"):
		metrics.ObserveUpstream("google_geocode", "ok", start)
		return domain.Place{}, false, nil
	case err != nil:
		metrics.ObserveUpstream("google_geocode", "error", start)
		return domain.Place{}, false, domain.NetworkError("google geocode", redact(err))
	}
	metrics.ObserveUpstream("google_geocode", "ok", start)

	if len(results) == 0 {
		return domain.Place{}, false, nil
	}

	r := results[0]
	c := toCoordinate(r.Geometry.Location)
	if err := c.Validate(); err != nil {
		return domain.Place{}, false, domain.NetworkError("google geocode", redact(err))
	}
	return domain.Place{Location: c, DisplayName: r.FormattedAddress}, true, nil
}

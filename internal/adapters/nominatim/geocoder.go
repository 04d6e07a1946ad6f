// Package nominatim geocodes free-text addresses with the OpenStreetMap
// Nominatim search API.
package nominatim

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/pkg/httpclient"
	"github.com/samirrijal/wayfinder/internal/pkg/metrics"
)

const op = "nominatim search"

var _ ports.Geocoder = (*Geocoder)(nil)

// Geocoder implements ports.Geocoder. The public instance allows at most one
// request per second, so every call waits on limiter first.
type Geocoder struct {
	baseURL   string
	userAgent string
	limiter   ports.RateLimiter
	client    *httpclient.Client
}

// New creates a Geocoder. userAgent identifies the application as the
// Nominatim usage policy requires.
func New(baseURL, userAgent string, limiter ports.RateLimiter, timeout time.Duration) *Geocoder {
	return &Geocoder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		limiter:   limiter,
		client:    httpclient.New("nominatim", timeout),
	}
}

// Geocode returns the best match for address. found is false, with a nil
// error, when Nominatim has no result.
func (g *Geocoder) Geocode(ctx context.Context, address string) (domain.Place, bool, error) {
	if g.limiter != nil {
		start := time.Now()
		if err := g.limiter.Wait(ctx); err != nil {
			return domain.Place{}, false, domain.NetworkError(op, err)
		}
		metrics.RateLimitWait.WithLabelValues("nominatim").Observe(time.Since(start).Seconds())
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Place{}, false, domain.NetworkError(op, err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	var results []SearchResult
	if err := g.client.DoJSON(req, &results); err != nil {
		return domain.Place{}, false, domain.NetworkError(op, err)
	}
	if len(results) == 0 {
		return domain.Place{}, false, nil
	}

	place, err := toPlace(results[0])
	if err != nil {
		return domain.Place{}, false, domain.NetworkError(op, err)
	}
	return place, true, nil
}

func toPlace(r SearchResult) (domain.Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return domain.Place{}, fmt.Errorf("parse lat %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return domain.Place{}, fmt.Errorf("parse lon %q: %w", r.Lon, err)
	}

	c := domain.NewCoordinate(lon, lat)
	if err := c.Validate(); err != nil {
		return domain.Place{}, err
	}
	return domain.Place{Location: c, DisplayName: r.DisplayName}, nil
}

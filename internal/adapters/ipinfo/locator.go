// Package ipinfo resolves approximate coordinates from an IP address using
// the ipinfo.io JSON API.
package ipinfo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/pkg/httpclient"
)

const op = "ipinfo locate"

var _ ports.Locator = (*Locator)(nil)

// Locator implements ports.Locator.
type Locator struct {
	baseURL string
	token   string
	client  *httpclient.Client
}

// New creates a Locator against baseURL (e.g. https://ipinfo.io). token is
// optional.
func New(baseURL, token string, timeout time.Duration) *Locator {
	return &Locator{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  httpclient.New("ipinfo", timeout),
	}
}

type response struct {
	IP  string `json:"ip"`
	Loc string `json:"loc"`
}

// Locate looks up ip, or the caller's own public address when ip is empty,
// and returns its coordinates in (lon, lat) order.
func (l *Locator) Locate(ctx context.Context, ip string) (domain.Coordinate, error) {
	endpoint := l.baseURL + "/json"
	if ip != "" {
		endpoint = l.baseURL + "/" + url.PathEscape(ip) + "/json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinate{}, domain.NetworkError(op, err)
	}
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	var body response
	if err := l.client.DoJSON(req, &body); err != nil {
		return domain.Coordinate{}, domain.NetworkError(op, err)
	}

	c, err := ParseLoc(body.Loc)
	if err != nil {
		return domain.Coordinate{}, domain.NetworkError(op, err)
	}
	return c, nil
}

// ParseLoc parses a "lat,lon" string into a Coordinate.
func ParseLoc(loc string) (domain.Coordinate, error) {
	if loc == "" {
		return domain.Coordinate{}, errors.New("response has no loc field")
	}
	latStr, lonStr, ok := strings.Cut(loc, ",")
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("malformed loc %q", loc)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("malformed latitude in loc %q: %w", loc, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("malformed longitude in loc %q: %w", loc, err)
	}

	c := domain.NewCoordinate(lon, lat)
	if err := c.Validate(); err != nil {
		return domain.Coordinate{}, err
	}
	return c, nil
}

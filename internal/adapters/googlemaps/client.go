// Package googlemaps implements the geocoder and router ports on top of the
// Google Maps Platform web services.
package googlemaps

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// NewClient creates a maps client. baseURL is optional and only set in tests.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*maps.Client, error) {
	opts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}

	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("google maps client: %w", err)
	}
	return c, nil
}

var keyParam = regexp.MustCompile(`key=[^&"\s]+`)

// redact drops the query string from transport errors. The API key travels
// as key= in every request URL and must not reach logs or callers.
func redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		if keyParam.MatchString(err.Error()) {
			return errors.New(keyParam.ReplaceAllString(err.Error(), "key=<redacted>"))
		}
		return err
	}
	u, perr := url.Parse(ue.URL)
	if perr != nil {
		return &url.Error{Op: ue.Op, URL: "<redacted>", Err: ue.Err}
	}
	u.RawQuery = ""
	return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
}

// The client reports API statuses as "maps: STATUS - message" errors.
func hasStatus(err error, statuses ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, s := range statuses {
		if strings.Contains(msg, "maps: "+s) {
			return true
		}
	}
	return false
}

func latLngString(c domain.Coordinate) string {
	ll := c.LatLng()
	return fmt.Sprintf("%f,%f", ll.Lat, ll.Lng)
}

func toCoordinate(ll maps.LatLng) domain.Coordinate {
	return domain.NewCoordinate(ll.Lng, ll.Lat)
}

// Package app assembles the directions pipeline from configuration. Both the
// API server and the command line tool build their service here.
package app

import (
	"googlemaps.github.io/maps"

	"github.com/samirrijal/wayfinder/internal/adapters/googlemaps"
	"github.com/samirrijal/wayfinder/internal/adapters/ipinfo"
	"github.com/samirrijal/wayfinder/internal/adapters/nominatim"
	"github.com/samirrijal/wayfinder/internal/adapters/openroute"
	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/core/usecases"
	"github.com/samirrijal/wayfinder/internal/pkg/config"
	"github.com/samirrijal/wayfinder/internal/pkg/ratelimit"
)

// Providers holds the three upstream adapters chosen by configuration.
type Providers struct {
	Locator  ports.Locator
	Geocoder ports.Geocoder
	Router   ports.Router
}

// NewProviders builds the locator, geocoder and router named in cfg. The
// Google client is created once and shared when both stages use it.
func NewProviders(cfg *config.Config) (*Providers, error) {
	if err := cfg.ValidateProviders(); err != nil {
		return nil, err
	}

	p := &Providers{
		Locator: ipinfo.New(cfg.Locator.URL, cfg.Locator.Token, cfg.HTTP.Timeout),
	}

	var google *maps.Client
	googleClient := func() (*maps.Client, error) {
		if google != nil {
			return google, nil
		}
		c, err := googlemaps.NewClient(cfg.Google.APIKey, "", cfg.HTTP.Timeout)
		if err != nil {
			return nil, err
		}
		google = c
		return c, nil
	}

	switch cfg.Geocoder.Provider {
	case config.ProviderGoogle:
		c, err := googleClient()
		if err != nil {
			return nil, err
		}
		p.Geocoder = googlemaps.NewGeocoder(c)
	default:
		p.Geocoder = nominatim.New(
			cfg.Geocoder.URL,
			cfg.Geocoder.UserAgent,
			ratelimit.NewGate(cfg.Geocoder.MinInterval),
			cfg.HTTP.Timeout,
		)
	}

	switch cfg.Router.Provider {
	case config.ProviderGoogle:
		c, err := googleClient()
		if err != nil {
			return nil, err
		}
		p.Router = googlemaps.NewRouter(c)
	default:
		p.Router = openroute.New(cfg.Router.URL, cfg.Router.APIKey, cfg.HTTP.Timeout)
	}

	return p, nil
}

// NewDirectionsService wires the configured providers into a
// DirectionsService. events may be nil.
func NewDirectionsService(cfg *config.Config, events ports.EventPublisher) (*usecases.DirectionsService, error) {
	p, err := NewProviders(cfg)
	if err != nil {
		return nil, err
	}
	profile, err := domain.ParseProfile(cfg.Router.DefaultProfile)
	if err != nil {
		return nil, err
	}
	svc := usecases.NewDirectionsService(p.Locator, p.Geocoder, p.Router, events, ports.SystemClock)
	return svc.WithDefaults(profile, cfg.Map.Zoom), nil
}

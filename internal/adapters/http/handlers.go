package http

import (
	"errors"
	"net/netip"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/samirrijal/wayfinder/internal/adapters/leaflet"
	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/pkg/metrics"
)

// maxAddressLen bounds the free-text address accepted by the API.
const maxAddressLen = 300

// TextDirections is the response body of a text mode request.
type TextDirections struct {
	Mode        string            `json:"mode"`
	Text        string            `json:"text"`
	Origin      domain.Coordinate `json:"origin"`
	Destination domain.Place      `json:"destination"`
	Summary     domain.Summary    `json:"summary"`
	Steps       []domain.Step     `json:"steps"`
}

// MapDirections is the response body of a map mode request when a map store
// is configured.
type MapDirections struct {
	Mode        string            `json:"mode"`
	MapID       string            `json:"map_id"`
	URL         string            `json:"url"`
	ExpiresIn   int               `json:"expires_in"`
	Origin      domain.Coordinate `json:"origin"`
	Destination domain.Place      `json:"destination"`
	Summary     domain.Summary    `json:"summary"`
}

// DirectionsHandler runs the pipeline for ?address=&mode=&profile=&zoom=.
func DirectionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		address := strings.TrimSpace(c.Query("address"))
		if address == "" {
			return errBadRequest(c, "address query parameter is required")
		}
		if len(address) > maxAddressLen {
			return errBadRequest(c, "address too long (max 300 characters)")
		}

		mode, err := domain.ParseMode(c.Query("mode"))
		if err != nil {
			return errFromDomain(c, err)
		}

		var profile domain.Profile
		if p := c.Query("profile"); p != "" {
			if profile, err = domain.ParseProfile(p); err != nil {
				return errFromDomain(c, err)
			}
		}

		zoom := c.QueryInt("zoom", 0)
		if zoom < 0 || zoom > 20 {
			return errBadRequest(c, "zoom must be between 0 and 20")
		}

		res, err := deps.Directions.Process(c.UserContext(), domain.DirectionsRequest{
			Address:  address,
			Mode:     mode,
			Profile:  profile,
			ClientIP: publicIP(c.IP()),
			Zoom:     zoom,
		})
		if err != nil {
			return errFromDomain(c, err)
		}

		c.Set(fiber.HeaderCacheControl, "no-store")

		if res.Mode == domain.ModeText {
			return c.JSON(TextDirections{
				Mode:        string(res.Mode),
				Text:        res.Text,
				Origin:      res.Origin,
				Destination: res.Destination,
				Summary:     res.Route.Summary,
				Steps:       res.Route.Steps,
			})
		}

		doc, err := leaflet.Render(res.Map)
		if err != nil {
			return errInternal(c, err.Error())
		}

		if deps.Maps == nil || c.Query("format") == "html" {
			c.Set(fiber.HeaderContentType, leaflet.ContentType)
			return c.Send(doc)
		}

		id := uuid.NewString()
		if err := deps.Maps.Save(c.UserContext(), id, doc, deps.mapTTL()); err != nil {
			LoggerFromCtx(c.UserContext()).Error("store map", "error", err)
			return errInternal(c, "could not store rendered map")
		}
		metrics.MapsStored.Inc()

		return c.Status(fiber.StatusCreated).JSON(MapDirections{
			Mode:        string(res.Mode),
			MapID:       id,
			URL:         "/v1/maps/" + id,
			ExpiresIn:   int(deps.mapTTL().Seconds()),
			Origin:      res.Origin,
			Destination: res.Destination,
			Summary:     res.Route.Summary,
		})
	}
}

// MapHandler serves a stored map document.
func MapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return errBadRequest(c, "invalid map id")
		}
		if deps.Maps == nil {
			return errNotFound(c, "map storage is not configured")
		}

		doc, err := deps.Maps.Load(c.UserContext(), id)
		if errors.Is(err, ports.ErrMapNotFound) {
			return errNotFound(c, "map not found or expired")
		}
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("load map", "id", id, "error", err)
			return errInternal(c, "could not load map")
		}

		c.Set(fiber.HeaderContentType, leaflet.ContentType)
		return c.Send(doc)
	}
}

// publicIP returns ip when it is a routable address. Loopback and private
// addresses are dropped so the locator falls back to the server's own
// public address.
func publicIP(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return ""
	}
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return ""
	}
	return addr.Unmap().String()
}

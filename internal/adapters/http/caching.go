package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses that the
// handler left alone.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if existing := c.GetRespHeader(fiber.HeaderCacheControl); existing != "" {
			return err
		}

		path := c.Path()
		var cc string

		switch {
		case path == "/v1/health" || path == "/v1/ready" || path == "/metrics":
			cc = "no-cache"

		// Arrival times depend on when the request was made.
		case path == "/v1/directions":
			cc = "no-store"

		// Stored maps never change for a given id.
		case strings.HasPrefix(path, "/v1/maps/"):
			cc = "private, max-age=3600, immutable"

		case strings.HasPrefix(path, "/docs"):
			cc = "public, max-age=300"
		}

		if cc != "" {
			c.Set(fiber.HeaderCacheControl, cc)
		}

		return err
	}
}

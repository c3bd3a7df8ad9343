package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control on GET responses by endpoint unless
// the handler already chose one. The dataset only changes on reload, so
// map and site responses are cacheable for a few minutes.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if c.GetRespHeader(fiber.HeaderCacheControl) != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10"

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/v1/map" || path == "/v1/markers":
			ttl = "public, max-age=300"

		case strings.HasPrefix(path, "/v1/sites"):
			ttl = "public, max-age=300"

		case path == "/v1/nearest":
			ttl = "public, max-age=60"

		case strings.HasPrefix(path, "/static/"):
			ttl = "public, max-age=3600"
		}

		if ttl != "" {
			c.Set(fiber.HeaderCacheControl, ttl)
		}

		return err
	}
}

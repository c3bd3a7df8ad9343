package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/ecoaldeas/internal/pkg/metrics"
	"github.com/samirrijal/ecoaldeas/internal/pkg/telemetry"
)

const requestTimeout = 15 * time.Second

// SetupRoutes registers the dashboard page, REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Tracing (no-op unless a tracer provider is installed)
	app.Use(telemetry.Middleware())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Every map click is a request, so the limit is generous.
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers. Frames are denied; the page itself loads Leaflet
	// and tiles from third parties, so no CSP is set here.
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	sessions := SessionMiddleware(deps.Sessions)

	// Dashboard page and its assets
	app.Get("/", sessions, DashboardHandler(deps))
	app.Use("/static", StaticHandler())

	v1 := app.Group("/v1")
	v1.Get("/map", MapViewHandler(deps))
	v1.Get("/markers", MarkersHandler(deps))
	v1.Get("/sites", ListSitesHandler(deps))
	v1.Get("/sites/:index", GetSiteHandler(deps))
	v1.Get("/nearest", NearestHandler(deps))
	v1.Post("/clicks", sessions, timeout.NewWithContext(ClickHandler(deps), requestTimeout))
	v1.Get("/selection", sessions, timeout.NewWithContext(SelectionHandler(deps), requestTimeout))

	app.Post("/graphql", timeout.NewWithContext(GraphQLHandler(deps), requestTimeout))

	// WebSocket push of selection changes (needs NATS)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if deps.Events == nil {
			return errUnavailable(c, "live updates are disabled")
		}
		return c.Next()
	}, sessions)
	if deps.Events != nil {
		app.Get("/ws", websocket.New(WebSocketHandler(deps.Events)))
	}
}

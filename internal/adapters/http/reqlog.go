package http

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// RequestIDLogMiddleware stores a request-scoped *slog.Logger carrying the
// Fiber request ID in the user context.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid, ok := c.Locals("requestid").(string)
		if !ok || rid == "" {
			return c.Next()
		}
		withLogAttrs(c, "request_id", rid)
		return c.Next()
	}
}

// withLogAttrs extends the request-scoped logger with extra attributes.
func withLogAttrs(c *fiber.Ctx, args ...any) {
	ctx := c.UserContext()
	l := LoggerFromCtx(ctx).With(args...)
	c.SetUserContext(context.WithValue(ctx, loggerKey, l))
}

// LoggerFromCtx extracts the per-request slog.Logger from a context.
// Falls back to the default logger if none is set.
func LoggerFromCtx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

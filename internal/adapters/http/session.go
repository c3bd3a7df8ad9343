package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const sessionIDLocal = "session_id"

// NewSessionStore creates the cookie-backed store that identifies
// dashboard sessions. Only the id is used; selection state lives in a
// ports.SelectionStore.
func NewSessionStore(cookieName string, ttlSeconds int) *session.Store {
	cfg := session.Config{
		KeyLookup:      "cookie:" + cookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if ttlSeconds > 0 {
		cfg.Expiration = time.Duration(ttlSeconds) * time.Second
	}
	return session.New(cfg)
}

// SessionMiddleware resolves the caller's session id, issuing a cookie for
// new sessions, and stores it in c.Locals for handlers.
func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return errInternal(c, "session unavailable")
		}
		id := sess.ID()
		if sess.Fresh() {
			sess.Set("created", time.Now().Unix())
			// Save releases sess; id is read beforehand
			if err := sess.Save(); err != nil {
				return errInternal(c, "session unavailable")
			}
		}
		c.Locals(sessionIDLocal, id)
		withLogAttrs(c, "session", id)
		return c.Next()
	}
}

// sessionID returns the id stored by SessionMiddleware.
func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionIDLocal).(string)
	return id
}

package http

import (
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/nats-io/nats.go"
	"github.com/samirrijal/ecoaldeas/internal/adapters/postgres"
	"github.com/samirrijal/ecoaldeas/internal/adapters/valkey"
	"github.com/samirrijal/ecoaldeas/internal/core/ports"
	"github.com/samirrijal/ecoaldeas/internal/core/usecases"
)

// TileLayer describes the raster tiles the browser map draws under markers.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Sites      *usecases.SiteService
	Selections *usecases.SelectionService
	Sessions   *session.Store
	Tiles      TileLayer
	Events     ports.EventSubscriber
	NATS       *nats.Conn
	DB         *postgres.DB
	Cache      *valkey.Cache
}

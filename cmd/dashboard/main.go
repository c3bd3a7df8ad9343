package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/ecoaldeas/internal/adapters/csvfile"
	"github.com/samirrijal/ecoaldeas/internal/adapters/http"
	"github.com/samirrijal/ecoaldeas/internal/adapters/memory"
	natsadapter "github.com/samirrijal/ecoaldeas/internal/adapters/nats"
	"github.com/samirrijal/ecoaldeas/internal/adapters/postgres"
	"github.com/samirrijal/ecoaldeas/internal/adapters/valkey"
	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/core/ports"
	"github.com/samirrijal/ecoaldeas/internal/core/usecases"
	"github.com/samirrijal/ecoaldeas/internal/pkg/config"
	"github.com/samirrijal/ecoaldeas/internal/pkg/logging"
	"github.com/samirrijal/ecoaldeas/internal/pkg/metrics"
	"github.com/samirrijal/ecoaldeas/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("ecoaldeas-dashboard")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Dataset
	var (
		repo ports.SiteRepository
		db   *postgres.DB
	)
	switch cfg.Data.Source {
	case "postgres":
		db, err = postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewSiteRepo(db)
	default:
		repo, err = csvfile.NewSiteRepo(cfg.Data.Path, cfg.Data.Delimiter)
		if err != nil {
			log.Fatalf("dataset: %v", err)
		}
	}

	sites := usecases.NewSiteService(repo, usecases.MapDefaults{
		Center: domain.GeoPoint{Lat: cfg.Map.CenterLat, Lon: cfg.Map.CenterLon},
		Zoom:   cfg.Map.Zoom,
	})
	if err := loadSites(ctx, sites); err != nil {
		log.Fatalf("load sites: %v", err)
	}

	// Selection store
	ttl := time.Duration(cfg.Session.TTL) * time.Second
	var (
		store ports.SelectionStore
		cache *valkey.Cache
	)
	if cfg.Session.Store == "valkey" {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable, keeping selections in memory", "error", err)
		} else {
			defer cache.Close()
			store = valkey.NewSelectionStore(cache, ttl)
		}
	}
	if store == nil {
		mem := memory.NewSelectionStore(ttl)
		go mem.RunSweeper(ctx, time.Minute)
		store = mem
	}

	// NATS selection events
	var (
		publisher  ports.EventPublisher
		subscriber ports.EventSubscriber
		natsPub    *natsadapter.Publisher
	)
	if cfg.NATS.Enabled {
		natsPub, err = natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, live updates disabled", "error", err)
		} else {
			defer natsPub.Close()
			publisher = natsPub
			subscriber = natsadapter.NewSubscriber(natsPub.Conn())
		}
	}

	deps := &http.Dependencies{
		Sites:      sites,
		Selections: usecases.NewSelectionService(sites, store, publisher),
		Sessions:   http.NewSessionStore(cfg.Session.CookieName, cfg.Session.TTL),
		Tiles:      http.TileLayer{URL: cfg.Map.TileURL, Attribution: cfg.Map.Attribution},
		Events:     subscriber,
		DB:         db,
		Cache:      cache,
	}
	if natsPub != nil {
		deps.NATS = natsPub.Conn()
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    64 * 1024, // click payloads are tiny
		AppName:      "Ecoaldeas",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("dashboard starting", "addr", addr, "source", cfg.Data.Source, "sites", sites.Count())
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range quit {
		if sig == syscall.SIGHUP {
			// Existing selections keep their indices; rows are replaced wholesale.
			if err := loadSites(ctx, sites); err != nil {
				slog.Error("reload failed, keeping previous dataset", "error", err)
			}
			continue
		}
		slog.Info("shutdown signal received, draining connections...", "signal", sig.String())
		break
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// loadSites (re)loads the dataset and records load metrics.
func loadSites(ctx context.Context, sites *usecases.SiteService) error {
	if err := sites.Load(ctx); err != nil {
		metrics.DatasetLoads.WithLabelValues("error").Inc()
		return err
	}
	metrics.DatasetLoads.WithLabelValues("ok").Inc()
	metrics.SitesLoaded.Set(float64(sites.Count()))
	metrics.SitesUnmapped.Set(float64(sites.Unmapped()))

	if sites.Count() == 0 {
		slog.Warn("dataset is empty; every selection will show nothing selected")
	} else {
		slog.Info("dataset loaded", "sites", sites.Count(), "unmapped", sites.Unmapped())
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samirrijal/ecoaldeas/internal/adapters/csvfile"
	"github.com/samirrijal/ecoaldeas/internal/adapters/postgres"
	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/core/ports"
	"github.com/samirrijal/ecoaldeas/internal/pkg/config"
	"github.com/samirrijal/ecoaldeas/internal/pkg/logging"
)

func main() {
	cmd := &cli.Command{
		Name:  "importer",
		Usage: "load the ecovillage CSV into the sites table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path to the delimited dataset",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "delimiter",
				Usage: "field delimiter (one character)",
				Value: ",",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "parse and report without writing to the database",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load("ecoaldeas-importer")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	src, err := csvfile.NewSiteRepo(cmd.String("file"), cmd.String("delimiter"))
	if err != nil {
		return err
	}
	sites, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	unmapped := reportUnmapped(sites)
	slog.Info("dataset parsed", "file", cmd.String("file"), "rows", len(sites), "unmapped", unmapped)

	if cmd.Bool("dry-run") {
		return nil
	}

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if err := store(ctx, postgres.NewSiteRepo(db), sites); err != nil {
		return err
	}
	slog.Info("import complete", "rows", len(sites))
	return nil
}

func store(ctx context.Context, w ports.SiteWriter, sites []domain.Site) error {
	if err := w.ReplaceAll(ctx, sites); err != nil {
		return fmt.Errorf("replace sites: %w", err)
	}
	return nil
}

// reportUnmapped logs every row that will not appear on the map.
func reportUnmapped(sites []domain.Site) int {
	n := 0
	for i, s := range sites {
		if _, err := domain.ParseCoordinateStrict(s.CoordinateText); err != nil {
			n++
			slog.Warn("row has no usable coordinate", "row", i, "name", s.Name, "error", err)
		}
	}
	return n
}

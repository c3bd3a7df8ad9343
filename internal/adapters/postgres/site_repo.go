package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

// SiteRepo implements ports.SiteRepository and ports.SiteWriter with pgx.
type SiteRepo struct {
	db *DB
}

// NewSiteRepo creates a new SiteRepo.
func NewSiteRepo(db *DB) *SiteRepo {
	return &SiteRepo{db: db}
}

// List returns every site ordered by its dataset position.
func (r *SiteRepo) List(ctx context.Context) ([]domain.Site, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT ordinal, nombre, ubicacion, provincia, idea_general_en, enlace,
		       imagen, descripcion_en, coordenadas, active
		FROM sites ORDER BY ordinal
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []domain.Site
	for rows.Next() {
		var s domain.Site
		if err := rows.Scan(
			&s.Index, &s.Name, &s.LocationText, &s.Province, &s.Summary, &s.Link,
			&s.ImageURL, &s.Description, &s.CoordinateText, &s.ActiveFlag,
		); err != nil {
			return nil, err
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}

// ReplaceAll swaps the stored dataset for sites in one transaction.
func (r *SiteRepo) ReplaceAll(ctx context.Context, sites []domain.Site) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM sites`); err != nil {
		return fmt.Errorf("clear sites: %w", err)
	}

	batch := &pgx.Batch{}
	for i, s := range sites {
		var lat, lon *float64
		if p, ok := s.Coordinate().Point(); ok {
			lat, lon = &p.Lat, &p.Lon
		}
		batch.Queue(`
			INSERT INTO sites (ordinal, nombre, ubicacion, provincia, idea_general_en, enlace,
			                   imagen, descripcion_en, coordenadas, active, lat, lon)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, i, s.Name, s.LocationText, s.Province, s.Summary, s.Link,
			s.ImageURL, s.Description, s.CoordinateText, s.ActiveFlag, lat, lon)
	}
	br := tx.SendBatch(ctx, batch)
	for range sites {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("batch close: %w", err)
	}

	return tx.Commit(ctx)
}

package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

// Dataset column names.
const (
	ColName        = "nombre"
	ColLocation    = "ubicacion"
	ColProvince    = "provincia"
	ColSummary     = "idea_general_en"
	ColLink        = "enlace"
	ColImage       = "imagen"
	ColDescription = "descripcion_en"
	ColCoordinates = "coordenadas"
	ColActive      = "active_Y/N"
)

var requiredColumns = []string{
	ColName, ColLocation, ColProvince, ColSummary, ColLink,
	ColImage, ColDescription, ColCoordinates,
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// SiteRepo implements ports.SiteRepository over a delimited text file.
type SiteRepo struct {
	path  string
	comma rune
}

// NewSiteRepo creates a SiteRepo reading path with the given delimiter.
// An empty delimiter means comma.
func NewSiteRepo(path, delimiter string) (*SiteRepo, error) {
	comma := ','
	if delimiter != "" {
		r, size := utf8.DecodeRuneInString(delimiter)
		if size != len(delimiter) || r == utf8.RuneError {
			return nil, fmt.Errorf("csv: delimiter must be a single character, got %q", delimiter)
		}
		comma = r
	}
	return &SiteRepo{path: path, comma: comma}, nil
}

// List reads every row of the file in order.
func (r *SiteRepo) List(ctx context.Context) ([]domain.Site, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", r.path, err)
	}
	defer f.Close()

	return Decode(ctx, f, r.comma)
}

// Decode reads sites from a delimited stream with a header row. Columns are
// located by name; active_Y/N is optional and defaults to "N".
func Decode(ctx context.Context, in io.Reader, comma rune) ([]domain.Site, error) {
	cr := csv.NewReader(in)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("csv: %w %q", ErrMissingColumn, c)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var sites []domain.Site
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}

		active := field(rec, ColActive)
		if active == "" {
			active = "N"
		}
		sites = append(sites, domain.Site{
			Index:          len(sites),
			Name:           field(rec, ColName),
			LocationText:   field(rec, ColLocation),
			Province:       field(rec, ColProvince),
			Summary:        field(rec, ColSummary),
			Link:           field(rec, ColLink),
			ImageURL:       field(rec, ColImage),
			Description:    field(rec, ColDescription),
			CoordinateText: field(rec, ColCoordinates),
			ActiveFlag:     active,
		})
	}
	return sites, nil
}

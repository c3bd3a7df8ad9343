package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/core/ports"
	"github.com/samirrijal/ecoaldeas/internal/pkg/geospatial"
)

// MapDefaults configures the initial map view when the first row has no
// usable coordinate.
type MapDefaults struct {
	Center domain.GeoPoint
	Zoom   int
}

// DefaultMapDefaults centres on Spain.
var DefaultMapDefaults = MapDefaults{
	Center: domain.GeoPoint{Lat: 40.0, Lon: -4.0},
	Zoom:   6,
}

// SiteService holds the loaded dataset and the map view derived from it.
type SiteService struct {
	repo     ports.SiteRepository
	defaults MapDefaults

	mu    sync.RWMutex
	sites []domain.Site
	view  domain.MapView
}

// NewSiteService creates a SiteService. Call Load before serving.
func NewSiteService(repo ports.SiteRepository, defaults MapDefaults) *SiteService {
	if defaults.Zoom <= 0 {
		defaults.Zoom = DefaultMapDefaults.Zoom
	}
	return &SiteService{repo: repo, defaults: defaults}
}

// Load (re)reads the dataset from the repository and rebuilds the map view.
func (s *SiteService) Load(ctx context.Context) error {
	sites, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list sites: %w", err)
	}
	for i := range sites {
		sites[i].Index = i
	}
	view := BuildMapView(sites, s.defaults)

	s.mu.Lock()
	s.sites = sites
	s.view = view
	s.mu.Unlock()
	return nil
}

// Sites returns every loaded row in dataset order. The slice must not be modified.
func (s *SiteService) Sites() []domain.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sites
}

// Count returns the number of loaded rows.
func (s *SiteService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sites)
}

// Get returns the row at index.
func (s *SiteService) Get(index int) (domain.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.sites) {
		return domain.Site{}, fmt.Errorf("%w: index %d", domain.ErrSiteNotFound, index)
	}
	return s.sites[index], nil
}

// Markers returns one marker per row with a valid coordinate.
func (s *SiteService) Markers() []domain.Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Markers
}

// MapView returns the initial map view.
func (s *SiteService) MapView() domain.MapView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Unmapped returns how many rows have no valid coordinate.
func (s *SiteService) Unmapped() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sites) - len(s.view.Markers)
}

// Nearest resolves (lat, lon) to a row without touching any selection, and
// reports the great-circle distance to it in meters.
func (s *SiteService) Nearest(lat, lon float64) (domain.Site, float64, error) {
	sites := s.Sites()
	site, err := s.Get(ResolveNearest(lat, lon, sites))
	if err != nil {
		return domain.Site{}, 0, err
	}
	p, ok := site.Coordinate().Point()
	if !ok {
		// fallback row with no coordinate
		return site, 0, nil
	}
	return site, geospatial.Haversine(lat, lon, p.Lat, p.Lon), nil
}

// BuildMapView derives markers, centre and bounds from sites.
func BuildMapView(sites []domain.Site, defaults MapDefaults) domain.MapView {
	view := domain.MapView{
		Center:  defaults.Center,
		Zoom:    defaults.Zoom,
		Markers: make([]domain.Marker, 0, len(sites)),
	}
	if len(sites) > 0 {
		if p, ok := sites[0].Coordinate().Point(); ok {
			view.Center = p
		}
	}

	points := make([]domain.GeoPoint, 0, len(sites))
	for i, site := range sites {
		p, ok := site.Coordinate().Point()
		if !ok {
			continue
		}
		points = append(points, p)
		view.Markers = append(view.Markers, domain.Marker{
			Index: i,
			Lat:   p.Lat,
			Lon:   p.Lon,
			Color: site.MarkerColor(),
			Popup: domain.Popup{
				Name:     site.Name,
				Location: site.LocationText,
				Province: site.Province,
				Summary:  site.Summary,
				Link:     site.Link,
			},
		})
	}
	view.Bounds = geospatial.Extent(points)
	return view
}

package http

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/pkg/metrics"
)

// mapViewResponse is the MapView plus the tile layer to draw it on.
type mapViewResponse struct {
	domain.MapView
	Tiles TileLayer `json:"tiles"`
}

// MapViewHandler returns the initial map: centre, zoom, markers and bounds.
func MapViewHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(mapViewResponse{MapView: deps.Sites.MapView(), Tiles: deps.Tiles})
	}
}

// MarkersHandler returns one marker per site with a valid coordinate.
func MarkersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Sites.Markers())
	}
}

// ListSitesHandler returns every loaded row, paginated.
func ListSitesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sites := deps.Sites.Sites()
		pg, start, end := pageBounds(c, len(sites), 100, 500)
		page := sites[start:end]
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// GetSiteHandler returns a single row by its index.
func GetSiteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idx, err := c.ParamsInt("index")
		if err != nil {
			return errBadRequest(c, "index must be an integer")
		}
		site, err := deps.Sites.Get(idx)
		if errors.Is(err, domain.ErrSiteNotFound) {
			return errNotFound(c, "site not found")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(site)
	}
}

// nearestResponse is the site a location resolves to.
type nearestResponse struct {
	Site      domain.Site `json:"site"`
	DistanceM float64     `json:"distance_m"`
}

// newNearestResponse reports the distance in whole metres.
func newNearestResponse(site domain.Site, meters float64) nearestResponse {
	return nearestResponse{Site: site, DistanceM: math.Round(meters)}
}

// NearestHandler resolves ?lat=&lon= to the closest site without changing
// the caller's selection.
func NearestHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, errLat := parseFloatQuery(c, "lat")
		lon, errLon := parseFloatQuery(c, "lon")
		if errLat != nil || errLon != nil {
			return errBadRequest(c, "lat and lon are required numbers")
		}

		site, dist, err := deps.Sites.Nearest(lat, lon)
		if errors.Is(err, domain.ErrSiteNotFound) {
			return errNotFound(c, "no sites loaded")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(newNearestResponse(site, dist))
	}
}

// ClickHandler applies one map interaction to the session's selection.
func ClickHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m domain.MapInteraction
		if err := c.BodyParser(&m); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		for _, p := range []*domain.LatLng{m.LastObjectClicked, m.LastClicked} {
			if p != nil && (!finite(p.Lat) || !finite(p.Lng)) {
				return errBadRequest(c, "lat and lng must be finite numbers")
			}
		}

		sid := sessionID(c)
		res, err := deps.Selections.Handle(c.UserContext(), sid, m)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Error("handle click", "error", err)
			return errInternal(c, "could not update selection")
		}

		source := "none"
		if res.Event != nil {
			source = string(res.Event.Source)
		}
		metrics.ClickEvents.WithLabelValues(source).Inc()
		LoggerFromCtx(c.UserContext()).Debug("click handled",
			"source", source, "selected", res.Selection.Index)

		c.Set("Cache-Control", "no-store")
		return c.JSON(res)
	}
}

// SelectionHandler returns the detail panel for the session's selection.
func SelectionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store")

		d, err := deps.Selections.Detail(c.UserContext(), sessionID(c))
		if errors.Is(err, domain.ErrNoSelection) {
			metrics.EmptySelections.Inc()
			return errNoSelection(c)
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(d)
	}
}

func parseFloatQuery(c *fiber.Ctx, key string) (float64, error) {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil {
		return 0, err
	}
	if !finite(v) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package domain

import "errors"

var (
	// ErrSiteNotFound is returned when an index is outside the loaded dataset.
	ErrSiteNotFound = errors.New("site not found")

	// ErrNoSelection is returned when a session's selection does not refer
	// to a loaded site (empty dataset, or a fallback index past the end).
	ErrNoSelection = errors.New("nothing selected")
)

// ActiveFlagYes is the only active_Y/N value that marks a site as active.
const ActiveFlagYes = "Y"

// Marker colours.
const (
	ColorActive   = "green"
	ColorInactive = "red"
)

// Site is one row of the ecovillage dataset. Index is the row's ordinal
// position and is its identity; sites are never mutated after load.
type Site struct {
	Index          int    `json:"index"`
	Name           string `json:"name"`
	LocationText   string `json:"location"`
	Province       string `json:"province"`
	Summary        string `json:"summary"`
	Link           string `json:"link"`
	ImageURL       string `json:"image_url"`
	Description    string `json:"description"`
	CoordinateText string `json:"coordinates"`
	ActiveFlag     string `json:"active"`
}

// Active reports whether the row's active flag is literally "Y".
func (s Site) Active() bool {
	return s.ActiveFlag == ActiveFlagYes
}

// Coordinate parses the row's coordinate text.
func (s Site) Coordinate() Coordinate {
	return ParseCoordinate(s.CoordinateText)
}

// MarkerColor returns the fill/outline colour for the row's marker.
func (s Site) MarkerColor() string {
	if s.Active() {
		return ColorActive
	}
	return ColorInactive
}

// Popup holds the fields shown in a marker's popup.
type Popup struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Province string `json:"province"`
	Summary  string `json:"summary"`
	Link     string `json:"link"`
}

// Marker is the on-map representation of a site with a valid coordinate.
type Marker struct {
	Index int     `json:"index"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
	Popup Popup   `json:"popup"`
}

// MapView is everything the map widget needs for its first render.
type MapView struct {
	Center  GeoPoint `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
	Bounds  *Bounds  `json:"bounds,omitempty"`
}

// ClickSource discriminates marker clicks from plain map clicks.
type ClickSource string

const (
	ClickMarker ClickSource = "marker"
	ClickMap    ClickSource = "map"
)

// ClickEvent is one resolved user interaction with the map.
type ClickEvent struct {
	Source ClickSource `json:"source"`
	Point  GeoPoint    `json:"point"`
}

// LatLng is the Leaflet-style point the browser reports.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapInteraction is what the map widget reports after one interaction
// cycle. Either, both or neither field may be set.
type MapInteraction struct {
	LastObjectClicked *LatLng `json:"last_object_clicked,omitempty"`
	LastClicked       *LatLng `json:"last_clicked,omitempty"`
}

// Event returns the click event carried by the interaction. A marker click
// takes precedence over a map click; ok is false when neither is present.
func (m MapInteraction) Event() (ev ClickEvent, ok bool) {
	switch {
	case m.LastObjectClicked != nil:
		return ClickEvent{
			Source: ClickMarker,
			Point:  GeoPoint{Lat: m.LastObjectClicked.Lat, Lon: m.LastObjectClicked.Lng},
		}, true
	case m.LastClicked != nil:
		return ClickEvent{
			Source: ClickMap,
			Point:  GeoPoint{Lat: m.LastClicked.Lat, Lon: m.LastClicked.Lng},
		}, true
	}
	return ClickEvent{}, false
}

// Selection is a session's dashboard state: the index of the selected site.
// The zero value selects the first row.
type Selection struct {
	Index int `json:"index"`
}

// Get returns the selected index.
func (s *Selection) Get() int { return s.Index }

// Set overwrites the selected index without validation.
func (s *Selection) Set(index int) { s.Index = index }

// Detail is the content of the detail panel for the selected site.
type Detail struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

// DetailOf builds the detail panel content for a site.
func DetailOf(s Site) Detail {
	return Detail{
		Index:       s.Index,
		Name:        s.Name,
		ImageURL:    s.ImageURL,
		Description: s.Description,
	}
}

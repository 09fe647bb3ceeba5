package tracker

import (
	"github.com/honeycarbs/filtrip/internal/domain"
	"github.com/honeycarbs/filtrip/pkg/tiles"
)

// DefaultZoom matches the map's initial zoom level.
const DefaultZoom = 13

// MapView is the map viewport: where it is centered and how far zoomed in.
type MapView struct {
	Center  domain.Coordinates  `json:"center"`
	Zoom    int                 `json:"zoom"`
	Marker  *domain.Coordinates `json:"marker,omitempty"`
	Tile    *tiles.Tile         `json:"tile,omitempty"`
	TileURL string              `json:"tile_url,omitempty"`
}

type viewport struct {
	center   domain.Coordinates
	zoom     int
	marker   *domain.Coordinates
	template string
}

func newViewport(zoom int, template string) viewport {
	return viewport{zoom: tiles.ClampZoom(zoom), template: template}
}

// setView moves the center and marker, keeping the zoom. It reports whether
// anything changed.
func (v *viewport) setView(c domain.Coordinates) bool {
	if v.marker != nil && *v.marker == c && v.center == c {
		return false
	}
	v.center = c
	v.marker = &c
	return true
}

func (v *viewport) setZoom(z int) {
	v.zoom = tiles.ClampZoom(z)
}

func (v viewport) snapshot() MapView {
	mv := MapView{Center: v.center, Zoom: v.zoom}
	if v.marker != nil {
		m := *v.marker
		t := tiles.Locate(m.Lat, m.Lng, v.zoom)
		mv.Marker = &m
		mv.Tile = &t
		mv.TileURL = tiles.URL(v.template, t)
	}
	return mv
}

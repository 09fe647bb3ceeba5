// Package tiles addresses raster map tiles using the z/x/y slippy-map scheme
// served by OpenStreetMap-compatible tile servers.
package tiles

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultTemplate is the public OpenStreetMap tile server.
	DefaultTemplate = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"

	// Attribution must be shown next to OpenStreetMap tiles.
	Attribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`

	MinZoom = 0
	MaxZoom = 19

	// maxLat is the Web Mercator latitude bound.
	maxLat = 85.05112878
)

var subdomains = []string{"a", "b", "c"}

// Tile is a single z/x/y tile coordinate.
type Tile struct {
	Z int `json:"z"`
	X int `json:"x"`
	Y int `json:"y"`
}

// Locate returns the tile at zoom containing (lat, lng).
func Locate(lat, lng float64, zoom int) Tile {
	zoom = ClampZoom(zoom)
	n := math.Exp2(float64(zoom))

	lat = math.Max(-maxLat, math.Min(maxLat, lat))
	lng = math.Max(-180, math.Min(180, lng))

	x := int(math.Floor((lng + 180) / 360 * n))
	rad := lat * math.Pi / 180
	y := int(math.Floor((1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * n))

	last := int(n) - 1
	return Tile{Z: zoom, X: clamp(x, 0, last), Y: clamp(y, 0, last)}
}

// URL expands template for t. {s} rotates over the a/b/c subdomains.
func URL(template string, t Tile) string {
	if template == "" {
		template = DefaultTemplate
	}

	r := strings.NewReplacer(
		"{s}", subdomains[(t.X+t.Y)%len(subdomains)],
		"{z}", strconv.Itoa(t.Z),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
	)
	return r.Replace(template)
}

// ClampZoom bounds zoom to the levels tile servers publish.
func ClampZoom(zoom int) int {
	return clamp(zoom, MinZoom, MaxZoom)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

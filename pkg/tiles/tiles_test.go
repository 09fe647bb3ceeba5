package tiles

import "testing"

func TestLocate(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
		zoom     int
		want     Tile
	}{
		{name: "origin z0", lat: 0, lng: 0, zoom: 0, want: Tile{Z: 0, X: 0, Y: 0}},
		{name: "origin z1", lat: 0, lng: 0, zoom: 1, want: Tile{Z: 1, X: 1, Y: 1}},
		{name: "berlin", lat: 52.52, lng: 13.405, zoom: 13, want: Tile{Z: 13, X: 4401, Y: 2686}},
		{name: "mountain view", lat: 37.40599, lng: -122.078514, zoom: 13, want: Tile{Z: 13, X: 1318, Y: 3176}},
		{name: "north pole clamps", lat: 90, lng: 180, zoom: 2, want: Tile{Z: 2, X: 3, Y: 0}},
		{name: "zoom clamps", lat: 0, lng: 0, zoom: -4, want: Tile{Z: 0, X: 0, Y: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Locate(tc.lat, tc.lng, tc.zoom); got != tc.want {
				t.Errorf("Locate(%v, %v, %d) = %+v, want %+v", tc.lat, tc.lng, tc.zoom, got, tc.want)
			}
		})
	}
}

func TestURL(t *testing.T) {
	got := URL("", Tile{Z: 13, X: 4401, Y: 2686})
	want := "https://b.tile.openstreetmap.org/13/4401/2686.png"
	if got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}

	got = URL("https://tiles.example/{z}/{x}/{y}@2x.png", Tile{Z: 1, X: 0, Y: 1})
	if got != "https://tiles.example/1/0/1@2x.png" {
		t.Errorf("custom template expanded to %q", got)
	}
}

func TestClampZoom(t *testing.T) {
	if ClampZoom(25) != MaxZoom || ClampZoom(-1) != MinZoom || ClampZoom(13) != 13 {
		t.Error("ClampZoom out of bounds")
	}
}

package domain

import (
	"time"
)

// Posting is one job listing on the board. Postings are loaded once and
// never mutated.
type Posting struct {
	ID        int      `json:"id"`
	Company   string   `json:"company"`
	Logo      string   `json:"logo"`
	New       bool     `json:"new"`
	Featured  bool     `json:"featured"`
	Position  string   `json:"position"`
	Role      string   `json:"role"`
	Level     string   `json:"level"`
	PostedAt  string   `json:"postedAt"`
	Contract  string   `json:"contract"`
	Location  string   `json:"location"`
	Languages []string `json:"languages"`
	Tools     []string `json:"tools"`
}

// HasTag reports whether tag is one of the posting's languages or tools.
func (p Posting) HasTag(tag string) bool {
	for _, l := range p.Languages {
		if l == tag {
			return true
		}
	}
	for _, t := range p.Tools {
		if t == tag {
			return true
		}
	}
	return false
}

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is the approximate place an address resolves to
type Location struct {
	Country    string  `json:"country"`
	Region     string  `json:"region"`
	City       string  `json:"city"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	PostalCode string  `json:"postal_code,omitempty"`
	Timezone   string  `json:"timezone"`
	GeonameID  int64   `json:"geoname_id,omitempty"`
}

func (l Location) Coordinates() Coordinates {
	return Coordinates{Lat: l.Lat, Lng: l.Lng}
}

// AutonomousSystem is the network announcing an address
type AutonomousSystem struct {
	ASN    int64  `json:"asn"`
	Name   string `json:"name"`
	Route  string `json:"route"`
	Domain string `json:"domain,omitempty"`
	Type   string `json:"type,omitempty"`
}

// LookupResult is a geolocation answer for one address or domain
type LookupResult struct {
	IP        string            `json:"ip"`
	Location  Location          `json:"location"`
	ISP       string            `json:"isp"`
	AS        *AutonomousSystem `json:"as,omitempty"`
	Domains   []string          `json:"domains,omitempty"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// Place renders "city, region, country".
func (r LookupResult) Place() string {
	return r.Location.City + ", " + r.Location.Region + ", " + r.Location.Country
}

package ipify

import (
	"net/http"
	"time"
)

// Config defines geo.ipify.org client settings
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	// Timeout applies only when HTTPClient is nil
	Timeout time.Duration
}

// Client queries the IP Geolocation API (v2, country+city product)
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Params select what to look up. Both empty means the caller's own address.
type Params struct {
	IPAddress string
	Domain    string
}

// Result is the decoded lookup response.
type Result struct {
	IP       string   `json:"ip"`
	Location Location `json:"location"`
	Domains  []string `json:"domains,omitempty"`
	AS       *AS      `json:"as,omitempty"`
	ISP      string   `json:"isp"`
}

type Location struct {
	Country    string  `json:"country"`
	Region     string  `json:"region"`
	City       string  `json:"city"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	PostalCode string  `json:"postalCode"`
	Timezone   string  `json:"timezone"`
	GeonameID  int64   `json:"geonameId"`
}

// AS describes the autonomous system announcing the address.
type AS struct {
	ASN    int64  `json:"asn"`
	Name   string `json:"name"`
	Route  string `json:"route"`
	Domain string `json:"domain"`
	Type   string `json:"type"`
}

type errorResponse struct {
	Code     int    `json:"code"`
	Messages string `json:"messages"`
}

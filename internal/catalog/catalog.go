// Package catalog holds the bundled job postings and company logo assets.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/honeycarbs/filtrip/internal/domain"
)

//go:embed data.json
var bundled []byte

// keys are lower-cased company names
var logos = map[string]string{
	"photosnap":              "/images/photosnap.svg",
	"manage":                 "/images/manage.svg",
	"account":                "/images/account.svg",
	"myhome":                 "/images/myhome.svg",
	"loop studios":           "/images/loop-studios.svg",
	"faceit":                 "/images/faceit.svg",
	"shortly":                "/images/shortly.svg",
	"insure":                 "/images/insure.svg",
	"eyecam co.":             "/images/eyecam-co.svg",
	"the air filter company": "/images/the-air-filter-company.svg",
}

// Load parses the bundled posting list.
func Load() ([]domain.Posting, error) {
	return parse(bundled)
}

// LoadFile parses a posting list with the bundled schema from path.
func LoadFile(path string) ([]domain.Posting, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return parse(raw)
}

// LogoFor resolves a company's logo asset. Unknown companies get "".
func LogoFor(company string) string {
	return logos[strings.ToLower(company)]
}

func parse(raw []byte) ([]domain.Posting, error) {
	var postings []domain.Posting
	if err := json.Unmarshal(raw, &postings); err != nil {
		return nil, fmt.Errorf("catalog: decode postings: %w", err)
	}

	for i := range postings {
		if postings[i].Languages == nil {
			postings[i].Languages = []string{}
		}
		if postings[i].Tools == nil {
			postings[i].Tools = []string{}
		}
	}

	return postings, nil
}

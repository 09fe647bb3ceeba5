package board

import (
	"slices"

	"github.com/honeycarbs/filtrip/internal/catalog"
	"github.com/honeycarbs/filtrip/internal/domain"
)

const (
	BadgeNew      = "New!"
	BadgeFeatured = "Featured"
)

type TagKind string

const (
	TagLanguage TagKind = "language"
	TagTool     TagKind = "tool"
)

// TagChip is a clickable tag on a card
type TagChip struct {
	Name     string  `json:"name"`
	Kind     TagKind `json:"kind"`
	Selected bool    `json:"selected"`
}

// Card is one rendered posting
type Card struct {
	domain.Posting
	LogoRef string    `json:"logo_ref"`
	Badges  []string  `json:"badges,omitempty"`
	Tags    []TagChip `json:"tags"`
}

// View is everything needed to draw the board
type View struct {
	Filters []string `json:"filters"`
	Jobs    []Card   `json:"jobs"`
	Total   int      `json:"total"`
}

// Project renders postings under the selection tags. It has no side effects.
func Project(postings []domain.Posting, tags []string) View {
	visible := Filter(postings, tags)

	cards := make([]Card, 0, len(visible))
	for _, p := range visible {
		cards = append(cards, card(p, tags))
	}

	filters := slices.Clone(tags)
	if filters == nil {
		filters = []string{}
	}

	return View{
		Filters: filters,
		Jobs:    cards,
		Total:   len(postings),
	}
}

func card(p domain.Posting, selected []string) Card {
	c := Card{
		Posting: p,
		// unmapped companies render with an empty (broken) logo reference
		LogoRef: catalog.LogoFor(p.Company),
		Tags:    make([]TagChip, 0, len(p.Languages)+len(p.Tools)),
	}

	if p.New {
		c.Badges = append(c.Badges, BadgeNew)
	}
	if p.Featured {
		c.Badges = append(c.Badges, BadgeFeatured)
	}

	for _, l := range p.Languages {
		c.Tags = append(c.Tags, TagChip{Name: l, Kind: TagLanguage, Selected: slices.Contains(selected, l)})
	}
	for _, t := range p.Tools {
		c.Tags = append(c.Tags, TagChip{Name: t, Kind: TagTool, Selected: slices.Contains(selected, t)})
	}

	return c
}

package board

import (
	"slices"
	"sync"

	"github.com/honeycarbs/filtrip/internal/domain"
)

// Board owns the selected-filter set of one session. The set is ordered by
// insertion and never holds duplicates.
type Board struct {
	mu       sync.RWMutex
	selected []string
}

// New returns a board with no filters selected.
func New() *Board {
	return &Board{}
}

// ToggleFilter removes tag when selected, appends it otherwise, and returns
// the resulting set.
func (b *Board) ToggleFilter(tag string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := slices.Index(b.selected, tag); i >= 0 {
		b.selected = slices.Delete(b.selected, i, i+1)
	} else {
		b.selected = append(b.selected, tag)
	}
	return slices.Clone(b.selected)
}

// RemoveFilter drops tag if selected. Absent tags are a no-op.
func (b *Board) RemoveFilter(tag string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := slices.Index(b.selected, tag); i >= 0 {
		b.selected = slices.Delete(b.selected, i, i+1)
	}
	return slices.Clone(b.selected)
}

// Filters returns a copy of the selected set in insertion order.
func (b *Board) Filters() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.selected)
}

// FilterJobs narrows postings to those carrying every selected tag. With no
// selection the input slice itself is returned.
func (b *Board) FilterJobs(postings []domain.Posting) []domain.Posting {
	return Filter(postings, b.Filters())
}

// Render projects postings through the current selection.
func (b *Board) Render(postings []domain.Posting) View {
	return Project(postings, b.Filters())
}

// Filter is the stateless form of FilterJobs.
func Filter(postings []domain.Posting, tags []string) []domain.Posting {
	if len(tags) == 0 {
		return postings
	}

	out := make([]domain.Posting, 0, len(postings))
	for _, p := range postings {
		if Match(p, tags) {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether p carries all of tags, each in either its languages
// or its tools.
func Match(p domain.Posting, tags []string) bool {
	for _, tag := range tags {
		if !p.HasTag(tag) {
			return false
		}
	}
	return true
}

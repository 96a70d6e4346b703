// Package query filters and orders catalog listings. It owns no state; every
// call is a pure transform of its inputs.
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/comicverse/hub/internal/domain"
)

// SortKey names an ordering of a listing.
type SortKey string

const (
	SortTitleAsc  SortKey = "title-asc"
	SortTitleDesc SortKey = "title-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortDateAsc   SortKey = "date-asc"
	SortDateDesc  SortKey = "date-desc"
)

// DefaultSort is applied when a browse listing is reset.
const DefaultSort = SortTitleAsc

// SortKeys lists every supported key.
func SortKeys() []SortKey {
	return []SortKey{SortTitleAsc, SortTitleDesc, SortPriceAsc, SortPriceDesc, SortDateAsc, SortDateDesc}
}

// Valid reports whether k is a supported key.
func (k SortKey) Valid() bool {
	return slices.Contains(SortKeys(), k)
}

// Criteria narrows a listing. Empty fields match everything.
type Criteria struct {
	Search    string `json:"search,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Character string `json:"character,omitempty"`
}

// IsEmpty reports whether no criterion is active.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Search) == "" && c.Publisher == "" && c.Genre == "" && strings.TrimSpace(c.Character) == ""
}

// Matches reports whether comic satisfies every active criterion.
func (c Criteria) Matches(comic domain.Comic) bool {
	if search := strings.ToLower(strings.TrimSpace(c.Search)); search != "" {
		if !strings.Contains(strings.ToLower(comic.Title), search) {
			return false
		}
	}
	// Publishers and genres are a closed set, compared exactly.
	if c.Publisher != "" && comic.Publisher != c.Publisher {
		return false
	}
	if c.Genre != "" && comic.Genre != c.Genre {
		return false
	}
	if character := strings.ToLower(strings.TrimSpace(c.Character)); character != "" {
		return slices.ContainsFunc(comic.Characters, func(name string) bool {
			return strings.Contains(strings.ToLower(name), character)
		})
	}
	return true
}

// Filter returns the comics matching criteria in their input order.
func Filter(comics []domain.Comic, criteria Criteria) []domain.Comic {
	out := make([]domain.Comic, 0, len(comics))
	for _, comic := range comics {
		if criteria.Matches(comic) {
			out = append(out, comic)
		}
	}
	return out
}

// Sort returns a new slice ordered by key. The input is never modified and
// ties keep their input order. An unknown key yields an unchanged copy.
func Sort(comics []domain.Comic, key SortKey) []domain.Comic {
	out := slices.Clone(comics)
	if out == nil {
		out = []domain.Comic{}
	}

	cmp := comparator(key)
	if cmp == nil {
		return out
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func comparator(key SortKey) func(a, b domain.Comic) int {
	switch key {
	case SortTitleAsc, SortTitleDesc:
		// Collators keep internal buffers and are not safe to share.
		col := collate.New(language.English)
		if key == SortTitleDesc {
			return func(a, b domain.Comic) int { return col.CompareString(b.Title, a.Title) }
		}
		return func(a, b domain.Comic) int { return col.CompareString(a.Title, b.Title) }
	case SortPriceAsc:
		return func(a, b domain.Comic) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		return func(a, b domain.Comic) int { return b.Price.Cmp(a.Price) }
	case SortDateAsc:
		return func(a, b domain.Comic) int { return a.ReleaseDate.Compare(b.ReleaseDate) }
	case SortDateDesc:
		return func(a, b domain.Comic) int { return b.ReleaseDate.Compare(a.ReleaseDate) }
	default:
		return nil
	}
}

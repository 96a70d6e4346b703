// Package catalog holds the read-only set of comics the storefront sells.
package catalog

import (
	"fmt"

	"github.com/comicverse/hub/internal/domain"
)

// Catalog is an immutable, ordered collection of comics. Every accessor
// returns copies, so callers may modify results freely.
type Catalog struct {
	comics []domain.Comic
	byID   map[string]int
}

// New builds a catalog, keeping the given order. Ids must be unique and
// non-empty and prices non-negative.
func New(comics []domain.Comic) (*Catalog, error) {
	c := &Catalog{
		comics: make([]domain.Comic, 0, len(comics)),
		byID:   make(map[string]int, len(comics)),
	}
	for i, comic := range comics {
		if comic.ID == "" {
			return nil, fmt.Errorf("comic at index %d has no id", i)
		}
		if _, dup := c.byID[comic.ID]; dup {
			return nil, fmt.Errorf("duplicate comic id %q", comic.ID)
		}
		if comic.Price.IsNegative() {
			return nil, fmt.Errorf("comic %q has negative price %s", comic.ID, comic.Price)
		}
		c.byID[comic.ID] = len(c.comics)
		c.comics = append(c.comics, comic.Clone())
	}
	return c, nil
}

// Len returns the number of comics.
func (c *Catalog) Len() int {
	return len(c.comics)
}

// Get looks up a comic by id.
func (c *Catalog) Get(id string) (domain.Comic, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Comic{}, false
	}
	return c.comics[idx].Clone(), true
}

// All returns every comic in catalog order.
func (c *Catalog) All() []domain.Comic {
	return c.where(func(domain.Comic) bool { return true })
}

// ByPublisher returns the comics whose publisher equals name exactly.
func (c *Catalog) ByPublisher(name string) []domain.Comic {
	return c.where(func(cm domain.Comic) bool { return cm.Publisher == name })
}

// Featured returns the comics flagged as featured.
func (c *Catalog) Featured() []domain.Comic {
	return c.where(func(cm domain.Comic) bool { return cm.Featured })
}

// Popular returns the comics flagged as popular.
func (c *Catalog) Popular() []domain.Comic {
	return c.where(func(cm domain.Comic) bool { return cm.Popular })
}

// Resolve maps ids to comics in the given order, skipping unknown ids.
func (c *Catalog) Resolve(ids []string) []domain.Comic {
	out := make([]domain.Comic, 0, len(ids))
	for _, id := range ids {
		if comic, ok := c.Get(id); ok {
			out = append(out, comic)
		}
	}
	return out
}

// Publishers returns distinct publishers in order of first appearance.
func (c *Catalog) Publishers() []string {
	return c.distinct(func(cm domain.Comic) string { return cm.Publisher })
}

// Genres returns distinct genres in order of first appearance.
func (c *Catalog) Genres() []string {
	return c.distinct(func(cm domain.Comic) string { return cm.Genre })
}

func (c *Catalog) where(keep func(domain.Comic) bool) []domain.Comic {
	out := make([]domain.Comic, 0, len(c.comics))
	for _, comic := range c.comics {
		if keep(comic) {
			out = append(out, comic.Clone())
		}
	}
	return out
}

func (c *Catalog) distinct(field func(domain.Comic) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, comic := range c.comics {
		v := field(comic)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

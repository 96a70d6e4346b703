package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Comic is one catalog entry. Catalog comics are never mutated after load.
type Comic struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Publisher   string          `json:"publisher"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate Date            `json:"releaseDate"`
	Genre       string          `json:"genre"`
	Characters  []string        `json:"characters"`
	CoverImage  string          `json:"coverImage"`
	Synopsis    string          `json:"synopsis"`
	Creators    Creators        `json:"creators"`
	Featured    bool            `json:"featured"`
	Popular     bool            `json:"popular"`
}

// Creators credits the people behind an issue. Any field may be empty.
type Creators struct {
	Writer   string `json:"writer,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Colorist string `json:"colorist,omitempty"`
}

// IsZero reports whether no creator is credited.
func (c Creators) IsZero() bool {
	return c.Writer == "" && c.Artist == "" && c.Colorist == ""
}

// Clone returns a copy that shares no slices with c.
func (c Comic) Clone() Comic {
	c.Characters = slices.Clone(c.Characters)
	return c
}

package service

import (
	"context"
	"fmt"

	"github.com/comicverse/hub/internal/catalog"
	"github.com/comicverse/hub/internal/domain"
	"github.com/comicverse/hub/internal/query"
	apperrors "github.com/comicverse/hub/pkg/errors"
	"github.com/comicverse/hub/pkg/slug"
)

// Home page section sizes.
const (
	NewReleasesLimit = 6
	PopularLimit     = 6
	SpotlightLimit   = 4
)

// HomePage is the data behind the landing page.
type HomePage struct {
	Featured    []domain.Comic       `json:"featured"`
	NewReleases []domain.Comic       `json:"new_releases"`
	Popular     []domain.Comic       `json:"popular"`
	Spotlights  []PublisherSpotlight `json:"publisher_spotlights"`
}

// PublisherSpotlight lists a few comics from one publisher.
type PublisherSpotlight struct {
	Publisher string         `json:"publisher"`
	Slug      string         `json:"slug"`
	Comics    []domain.Comic `json:"comics"`
}

// Credit is one named creator of a comic.
type Credit struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// ComicDetail is a comic plus the display strings of its detail page. Display
// strings are HTML-escaped.
type ComicDetail struct {
	Comic           domain.Comic `json:"comic"`
	DisplayTitle    string       `json:"display_title"`
	DisplaySynopsis string       `json:"display_synopsis"`
	PriceDisplay    string       `json:"price_display"`
	ReleaseDisplay  string       `json:"release_date_display"`
	Characters      []string     `json:"characters_display"`
	Credits         []Credit     `json:"credits"`
	Wishlisted      bool         `json:"wishlisted"`
}

// BrowseResult is one filtered and sorted listing.
type BrowseResult struct {
	Criteria     query.Criteria `json:"criteria"`
	Sort         query.SortKey  `json:"sort"`
	Comics       []domain.Comic `json:"comics"`
	Total        int            `json:"total"`
	CatalogTotal int            `json:"catalog_total"`
	Message      string         `json:"message"`
}

// Facet is a filter option with the number of comics it selects.
type Facet struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Badges are the counts shown in the storefront header.
type Badges struct {
	CartCount     int `json:"cart_count"`
	WishlistCount int `json:"wishlist_count"`
}

// StorefrontService assembles the read-only pages of the storefront.
type StorefrontService struct {
	catalog  *catalog.Catalog
	cart     *CartService
	wishlist *WishlistService
}

// NewStorefrontService creates a new storefront service.
func NewStorefrontService(cat *catalog.Catalog, cart *CartService, wishlist *WishlistService) *StorefrontService {
	return &StorefrontService{
		catalog:  cat,
		cart:     cart,
		wishlist: wishlist,
	}
}

// Home returns featured comics, the newest releases, popular comics and a
// spotlight per publisher.
func (s *StorefrontService) Home() HomePage {
	spotlights := make([]PublisherSpotlight, 0)
	for _, publisher := range s.catalog.Publishers() {
		spotlights = append(spotlights, PublisherSpotlight{
			Publisher: publisher,
			Slug:      slug.Generate(publisher),
			Comics:    limit(s.catalog.ByPublisher(publisher), SpotlightLimit),
		})
	}

	return HomePage{
		Featured:    s.catalog.Featured(),
		NewReleases: limit(query.Sort(s.catalog.All(), query.SortDateDesc), NewReleasesLimit),
		Popular:     limit(s.catalog.Popular(), PopularLimit),
		Spotlights:  spotlights,
	}
}

// Comic looks up one comic.
func (s *StorefrontService) Comic(comicID string) (domain.Comic, bool) {
	return s.catalog.Get(comicID)
}

// Detail returns the detail view of one comic.
func (s *StorefrontService) Detail(ctx context.Context, comicID string) (*ComicDetail, error) {
	comic, ok := s.catalog.Get(comicID)
	if !ok {
		return nil, apperrors.NotFound("comic", comicID)
	}

	wishlisted, err := s.wishlist.Contains(ctx, comicID)
	if err != nil {
		return nil, err
	}

	characters := make([]string, len(comic.Characters))
	for i, c := range comic.Characters {
		characters[i] = domain.Escape(c)
	}

	return &ComicDetail{
		Comic:           comic,
		DisplayTitle:    domain.Escape(comic.Title),
		DisplaySynopsis: domain.Escape(comic.Synopsis),
		PriceDisplay:    domain.FormatPrice(comic.Price),
		ReleaseDisplay:  comic.ReleaseDate.Long(),
		Characters:      characters,
		Credits:         credits(comic.Creators),
		Wishlisted:      wishlisted,
	}, nil
}

// Browse filters the whole catalog and orders the matches.
func (s *StorefrontService) Browse(criteria query.Criteria, sort query.SortKey) BrowseResult {
	return browse(s.catalog, criteria, sort)
}

// Publishers lists publishers in catalog order.
func (s *StorefrontService) Publishers() []Facet {
	return s.facets(s.catalog.Publishers(), func(c domain.Comic) string { return c.Publisher })
}

// Genres lists genres in catalog order.
func (s *StorefrontService) Genres() []Facet {
	return s.facets(s.catalog.Genres(), func(c domain.Comic) string { return c.Genre })
}

// Badges returns the cart and wishlist counts.
func (s *StorefrontService) Badges(ctx context.Context) (Badges, error) {
	cartCount, err := s.cart.ItemCount(ctx)
	if err != nil {
		return Badges{}, err
	}
	wishlistCount, err := s.wishlist.Count(ctx)
	if err != nil {
		return Badges{}, err
	}
	return Badges{CartCount: cartCount, WishlistCount: wishlistCount}, nil
}

func (s *StorefrontService) facets(names []string, field func(domain.Comic) string) []Facet {
	counts := make(map[string]int, len(names))
	for _, c := range s.catalog.All() {
		counts[field(c)]++
	}
	out := make([]Facet, len(names))
	for i, name := range names {
		out[i] = Facet{Name: name, Slug: slug.Generate(name), Count: counts[name]}
	}
	return out
}

func browse(cat *catalog.Catalog, criteria query.Criteria, sort query.SortKey) BrowseResult {
	matches := query.Sort(query.Filter(cat.All(), criteria), sort)
	return BrowseResult{
		Criteria:     criteria,
		Sort:         sort,
		Comics:       matches,
		Total:        len(matches),
		CatalogTotal: cat.Len(),
		Message:      ResultsMessage(len(matches), cat.Len()),
	}
}

// ResultsMessage describes how much of the catalog a listing shows.
func ResultsMessage(count, catalogTotal int) string {
	if count == catalogTotal {
		return fmt.Sprintf("Showing all %d comics", count)
	}
	return fmt.Sprintf("Showing %d of %d comics", count, catalogTotal)
}

func credits(c domain.Creators) []Credit {
	out := make([]Credit, 0, 3)
	for _, credit := range []Credit{
		{Role: "Writer", Name: c.Writer},
		{Role: "Artist", Name: c.Artist},
		{Role: "Colorist", Name: c.Colorist},
	} {
		if credit.Name != "" {
			credit.Name = domain.Escape(credit.Name)
			out = append(out, credit)
		}
	}
	return out
}

func limit(comics []domain.Comic, n int) []domain.Comic {
	if len(comics) > n {
		return comics[:n]
	}
	return comics
}

package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comicverse/hub/internal/catalog"
	"github.com/comicverse/hub/internal/domain"
	"github.com/comicverse/hub/internal/kvstate"
	"github.com/comicverse/hub/internal/repository/kv"
	"github.com/comicverse/hub/pkg/logger"
)

// --- Mocks ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context) (*domain.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) Get(ctx context.Context) (*domain.Wishlist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wishlist), args.Error(1)
}

func (m *mockWishlistRepository) Save(ctx context.Context, w *domain.Wishlist) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) CartChanged(ctx context.Context, itemCount int) error {
	args := m.Called(ctx, itemCount)
	return args.Error(0)
}

func (m *mockNotifier) WishlistChanged(ctx context.Context, count int) error {
	args := m.Called(ctx, count)
	return args.Error(0)
}

// --- Helpers ---

func newTestLogger() *slog.Logger {
	return logger.Discard()
}

var testTaxRate = decimal.RequireFromString("0.08")

func testComic(id, title, publisher, price, date string) domain.Comic {
	return domain.Comic{
		ID:          id,
		Title:       title,
		Publisher:   publisher,
		Price:       decimal.RequireFromString(price),
		ReleaseDate: domain.MustParseDate(date),
		CoverImage:  "../images/" + id + ".jpg",
		Characters:  []string{},
	}
}

// scenarioCatalog holds A(10, X, Zorro) and B(5, Y, Apple).
func scenarioCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalogOf(t,
		testComic("A", "Zorro", "X", "10", "2024-01-01"),
		testComic("B", "Apple", "Y", "5", "2024-01-02"),
	)
}

func catalogOf(t *testing.T, comics ...domain.Comic) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(comics)
	require.NoError(t, err)
	return c
}

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

// newMemoryCartService wires a cart service over an in-memory store.
func newMemoryCartService(t *testing.T, cat *catalog.Catalog, store kvstate.Store) *CartService {
	t.Helper()
	return NewCartService(cat, kv.NewCartRepository(store, nil), nil, testTaxRate, newTestLogger())
}

func newMemoryWishlistService(t *testing.T, cat *catalog.Catalog, store kvstate.Store) *WishlistService {
	t.Helper()
	return NewWishlistService(cat, kv.NewWishlistRepository(store, nil), nil, newTestLogger())
}

func comicIDs(comics []domain.Comic) []string {
	ids := make([]string, len(comics))
	for i, c := range comics {
		ids[i] = c.ID
	}
	return ids
}

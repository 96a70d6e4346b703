// Package kv implements the repositories on a kvstate.Store. Records use the
// storefront's historical layout: the cart is a JSON array of line items and
// the wishlist a JSON array of comic ids.
package kv

import (
	"context"
	"log/slog"

	"github.com/comicverse/hub/internal/domain"
	"github.com/comicverse/hub/internal/kvstate"
)

const (
	CartKey     = "comicverse_cart"
	WishlistKey = "comicverse_wishlist"
)

// CartRepository implements repository.CartRepository.
type CartRepository struct {
	store  kvstate.Store
	logger *slog.Logger
}

// NewCartRepository creates a cart repository over store.
func NewCartRepository(store kvstate.Store, logger *slog.Logger) *CartRepository {
	return &CartRepository{store: store, logger: logger}
}

// Get never fails: unreadable records come back as an empty cart.
func (r *CartRepository) Get(ctx context.Context) (*domain.Cart, error) {
	items := kvstate.Read[[]domain.LineItem](ctx, r.store, CartKey, r.logger)
	return &domain.Cart{Items: normalizeItems(items)}, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return kvstate.Write(ctx, r.store, CartKey, items)
}

func (r *CartRepository) Delete(ctx context.Context) error {
	return kvstate.Remove(ctx, r.store, CartKey)
}

// normalizeItems repairs records written by older clients: blank ids and
// non-positive quantities are dropped, repeated ids are merged and
// quantities are clamped.
func normalizeItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if item.ID == "" || item.Quantity <= 0 {
			continue
		}
		if i, ok := index[item.ID]; ok {
			out[i].Quantity = domain.AddQuantity(out[i].Quantity, item.Quantity)
			continue
		}
		item.Quantity = domain.ClampQuantity(item.Quantity)
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// WishlistRepository implements repository.WishlistRepository.
type WishlistRepository struct {
	store  kvstate.Store
	logger *slog.Logger
}

// NewWishlistRepository creates a wishlist repository over store.
func NewWishlistRepository(store kvstate.Store, logger *slog.Logger) *WishlistRepository {
	return &WishlistRepository{store: store, logger: logger}
}

// Get never fails: unreadable records come back as an empty wishlist.
func (r *WishlistRepository) Get(ctx context.Context) (*domain.Wishlist, error) {
	ids := kvstate.Read[[]string](ctx, r.store, WishlistKey, r.logger)
	w := domain.NewWishlist(nil)
	for _, id := range ids {
		if id != "" {
			w.Add(id)
		}
	}
	return &w, nil
}

func (r *WishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	ids := wishlist.IDs
	if ids == nil {
		ids = []string{}
	}
	return kvstate.Write(ctx, r.store, WishlistKey, ids)
}

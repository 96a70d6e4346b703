// Package repository declares the persistence ports of the storefront.
package repository

import (
	"context"

	"github.com/comicverse/hub/internal/domain"
)

// CartRepository persists the shopper's cart as one record.
type CartRepository interface {
	// Get returns the stored cart, or an empty cart when none is stored.
	Get(ctx context.Context) (*domain.Cart, error)

	// Save replaces the stored cart.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the stored cart. Deleting an absent cart is not an error.
	Delete(ctx context.Context) error
}

// WishlistRepository persists the shopper's wishlist as one record.
type WishlistRepository interface {
	// Get returns the stored wishlist, or an empty one when none is stored.
	Get(ctx context.Context) (*domain.Wishlist, error)

	// Save replaces the stored wishlist.
	Save(ctx context.Context, wishlist *domain.Wishlist) error
}

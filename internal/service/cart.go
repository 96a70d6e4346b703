package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comicverse/hub/internal/catalog"
	"github.com/comicverse/hub/internal/domain"
	"github.com/comicverse/hub/internal/event"
	"github.com/comicverse/hub/internal/repository"
	apperrors "github.com/comicverse/hub/pkg/errors"
)

// CartService implements the cart operations. Each operation is one
// read-modify-write of the stored cart, serialized by mu.
type CartService struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	repo     repository.CartRepository
	notifier event.BadgeNotifier
	taxRate  decimal.Decimal
	logger   *slog.Logger
	now      func() time.Time
}

// NewCartService creates a new cart service.
func NewCartService(
	cat *catalog.Catalog,
	repo repository.CartRepository,
	notifier event.BadgeNotifier,
	taxRate decimal.Decimal,
	logger *slog.Logger,
) *CartService {
	if notifier == nil {
		notifier = event.Nop{}
	}
	return &CartService{
		catalog:  cat,
		repo:     repo,
		notifier: notifier,
		taxRate:  taxRate,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns the current cart.
func (s *CartService) Get(ctx context.Context) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// AddItem puts quantity copies of a catalog comic in the cart. A comic
// already in the cart accumulates quantity and keeps its original price.
func (s *CartService) AddItem(ctx context.Context, comicID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.InvalidInput("quantity must be at least 1")
	}
	comic, ok := s.catalog.Get(comicID)
	if !ok {
		return nil, apperrors.NotFound("comic", comicID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	item := cart.Add(comic, quantity)
	if err := s.save(ctx, cart, "add"); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("comic_id", comicID),
		slog.Int("quantity", quantity),
		slog.Int("line_quantity", item.Quantity),
	)
	return cart, nil
}

// SetQuantity overwrites the quantity of a line item. A quantity of zero or
// less removes it.
func (s *CartService) SetQuantity(ctx context.Context, comicID string, quantity int) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !cart.SetQuantity(comicID, quantity) {
		return nil, apperrors.NotFound("cart item", comicID)
	}

	op := "set_quantity"
	if quantity <= 0 {
		op = "remove"
	}
	if err := s.save(ctx, cart, op); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("comic_id", comicID),
		slog.Int("quantity", quantity),
	)
	return cart, nil
}

// RemoveItem drops a line item. Removing a comic that is not in the cart
// succeeds without writing.
func (s *CartService) RemoveItem(ctx context.Context, comicID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !cart.Remove(comicID) {
		return cart, nil
	}
	if err := s.save(ctx, cart, "remove"); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart", slog.String("comic_id", comicID))
	return cart, nil
}

// Clear deletes the stored cart.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clear(ctx, "clear")
}

// ItemCount returns the sum of all quantities.
func (s *CartService) ItemCount(ctx context.Context) (int, error) {
	cart, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}

// Subtotal returns the sum of line totals at the prices captured when each
// comic was added.
func (s *CartService) Subtotal(ctx context.Context) (decimal.Decimal, error) {
	cart, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.Subtotal(), nil
}

// Summary prices the cart with tax.
func (s *CartService) Summary(ctx context.Context) (domain.CartSummary, error) {
	cart, err := s.Get(ctx)
	if err != nil {
		return domain.CartSummary{}, err
	}
	return cart.Summary(s.taxRate), nil
}

// Price prices cart with the configured tax rate.
func (s *CartService) Price(cart *domain.Cart) domain.CartSummary {
	return cart.Summary(s.taxRate)
}

// Checkout completes a demonstration order: it prices the cart, issues a
// receipt and empties the cart. No payment is taken.
func (s *CartService) Checkout(ctx context.Context) (*domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	receipt := &domain.Receipt{
		Reference:   uuid.New().String(),
		PlacedAt:    s.now().UTC(),
		Demo:        true,
		CartSummary: cart.Summary(s.taxRate),
	}
	if err := s.clear(ctx, "checkout"); err != nil {
		return nil, err
	}
	checkoutsCompleted.Inc()

	s.logger.InfoContext(ctx, "demo checkout completed",
		slog.String("reference", receipt.Reference),
		slog.Int("item_count", receipt.ItemCount),
		slog.String("total", receipt.Total.StringFixed(2)),
	)
	return receipt, nil
}

func (s *CartService) load(ctx context.Context) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart, op string) error {
	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	cartMutations.WithLabelValues(op).Inc()
	s.notify(ctx, cart.ItemCount())
	return nil
}

func (s *CartService) clear(ctx context.Context, op string) error {
	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	cartMutations.WithLabelValues(op).Inc()
	s.notify(ctx, 0)
	return nil
}

func (s *CartService) notify(ctx context.Context, count int) {
	if err := s.notifier.CartChanged(ctx, count); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart badge update",
			slog.Int("count", count),
			slog.String("error", err.Error()),
		)
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/comicverse/hub/internal/catalog"
	"github.com/comicverse/hub/internal/domain"
	"github.com/comicverse/hub/internal/event"
	"github.com/comicverse/hub/internal/repository"
)

// WishlistService implements the wishlist operations.
type WishlistService struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	repo     repository.WishlistRepository
	notifier event.BadgeNotifier
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	cat *catalog.Catalog,
	repo repository.WishlistRepository,
	notifier event.BadgeNotifier,
	logger *slog.Logger,
) *WishlistService {
	if notifier == nil {
		notifier = event.Nop{}
	}
	return &WishlistService{
		catalog:  cat,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// Add puts id on the wishlist. It reports whether id was newly added.
func (s *WishlistService) Add(ctx context.Context, comicID string) (bool, error) {
	return s.mutate(ctx, "add", comicID, func(w *domain.Wishlist) (bool, bool) {
		added := w.Add(comicID)
		return added, added
	})
}

// Remove takes id off the wishlist. It reports whether id was present.
func (s *WishlistService) Remove(ctx context.Context, comicID string) (bool, error) {
	return s.mutate(ctx, "remove", comicID, func(w *domain.Wishlist) (bool, bool) {
		removed := w.Remove(comicID)
		return removed, removed
	})
}

// Toggle flips membership of id and reports whether it is now present.
func (s *WishlistService) Toggle(ctx context.Context, comicID string) (bool, error) {
	return s.mutate(ctx, "toggle", comicID, func(w *domain.Wishlist) (bool, bool) {
		return w.Toggle(comicID), true
	})
}

// Contains reports whether id is on the wishlist.
func (s *WishlistService) Contains(ctx context.Context, comicID string) (bool, error) {
	w, err := s.get(ctx)
	if err != nil {
		return false, err
	}
	return w.Contains(comicID), nil
}

// Count returns the number of wishlisted comics still in the catalog.
func (s *WishlistService) Count(ctx context.Context) (int, error) {
	w, err := s.get(ctx)
	if err != nil {
		return 0, err
	}
	return len(s.catalog.Resolve(w.IDs)), nil
}

// IDs returns the stored ids in the order they were added.
func (s *WishlistService) IDs(ctx context.Context) ([]string, error) {
	w, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return w.IDs, nil
}

// Entries resolves the wishlist against the catalog. Ids that no longer
// match a comic are skipped.
func (s *WishlistService) Entries(ctx context.Context) ([]domain.Comic, error) {
	w, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.catalog.Resolve(w.IDs), nil
}

func (s *WishlistService) get(ctx context.Context) (*domain.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return w, nil
}

// mutate runs change against the stored wishlist and saves it when change
// reports a modification.
func (s *WishlistService) mutate(
	ctx context.Context,
	op, comicID string,
	change func(*domain.Wishlist) (result, changed bool),
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.repo.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("get wishlist: %w", err)
	}

	result, changed := change(w)
	if !changed {
		return result, nil
	}
	if err := s.repo.Save(ctx, w); err != nil {
		return false, fmt.Errorf("save wishlist: %w", err)
	}
	wishlistMutations.WithLabelValues(op).Inc()

	count := len(s.catalog.Resolve(w.IDs))
	if err := s.notifier.WishlistChanged(ctx, count); err != nil {
		s.logger.WarnContext(ctx, "failed to publish wishlist badge update",
			slog.Int("count", count),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wishlist updated",
		slog.String("operation", op),
		slog.String("comic_id", comicID),
		slog.Bool("result", result),
	)
	return result, nil
}

package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comicverse/hub/internal/domain"
	"github.com/comicverse/hub/internal/kvstate"
)

func TestWishlistService_AddRemoveContains(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryWishlistService(t, scenarioCatalog(t), kvstate.NewMemoryStore())

	added, err := svc.Add(ctx, "A")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.Add(ctx, "A")
	require.NoError(t, err)
	assert.False(t, added)

	ok, err := svc.Contains(ctx, "A")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := svc.Remove(ctx, "A")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Remove(ctx, "A")
	require.NoError(t, err)
	assert.False(t, removed)

	ok, err = svc.Contains(ctx, "A")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWishlistService_ToggleIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryWishlistService(t, scenarioCatalog(t), kvstate.NewMemoryStore())

	for _, start := range []bool{false, true} {
		if start {
			_, err := svc.Add(ctx, "B")
			require.NoError(t, err)
		}

		first, err := svc.Toggle(ctx, "B")
		require.NoError(t, err)
		assert.Equal(t, !start, first)

		second, err := svc.Toggle(ctx, "B")
		require.NoError(t, err)
		assert.Equal(t, start, second)

		present, err := svc.Contains(ctx, "B")
		require.NoError(t, err)
		assert.Equal(t, start, present)
	}
}

func TestWishlistService_EntriesKeepOrderAndDropStaleIDs(t *testing.T) {
	ctx := context.Background()
	store := kvstate.NewMemoryStore()
	svc := newMemoryWishlistService(t, scenarioCatalog(t), store)

	for _, id := range []string{"B", "retired", "A"} {
		_, err := svc.Add(ctx, id)
		require.NoError(t, err)
	}

	entries, err := svc.Entries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, comicIDs(entries))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	ids, err := svc.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "retired", "A"}, ids)
}

func TestWishlistService_MembershipFollowsParity(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryWishlistService(t, scenarioCatalog(t), kvstate.NewMemoryStore())
	rng := rand.New(rand.NewSource(7))

	ids := []string{"A", "B", "gone"}
	want := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := ids[rng.Intn(len(ids))]
		var err error
		if rng.Intn(2) == 0 {
			_, err = svc.Add(ctx, id)
			want[id] = true
		} else {
			_, err = svc.Remove(ctx, id)
			want[id] = false
		}
		require.NoError(t, err)

		for _, check := range ids {
			got, err := svc.Contains(ctx, check)
			require.NoError(t, err)
			require.Equal(t, want[check], got, "step %d id %s", i, check)
		}

		resolvable := 0
		for _, check := range []string{"A", "B"} {
			if want[check] {
				resolvable++
			}
		}
		entries, err := svc.Entries(ctx)
		require.NoError(t, err)
		require.Len(t, entries, resolvable)
	}
}

func TestWishlistService_UnchangedDoesNotSave(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWishlistRepository)
	notifier := new(mockNotifier)
	svc := NewWishlistService(scenarioCatalog(t), repo, notifier, newTestLogger())

	repo.On("Get", ctx).Return(&domain.Wishlist{IDs: []string{"A"}}, nil)

	added, err := svc.Add(ctx, "A")
	require.NoError(t, err)
	assert.False(t, added)

	removed, err := svc.Remove(ctx, "B")
	require.NoError(t, err)
	assert.False(t, removed)

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "WishlistChanged", mock.Anything, mock.Anything)
}

func TestWishlistService_PublishesBadge(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWishlistRepository)
	notifier := new(mockNotifier)
	svc := NewWishlistService(scenarioCatalog(t), repo, notifier, newTestLogger())

	repo.On("Get", ctx).Return(&domain.Wishlist{IDs: []string{"A"}}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Wishlist")).Return(nil)
	notifier.On("WishlistChanged", ctx, 2).Return(errors.New("broker down"))

	present, err := svc.Toggle(ctx, "B")
	require.NoError(t, err)
	assert.True(t, present)

	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestWishlistService_BadgeIgnoresStaleIDs(t *testing.T) {
	ctx := context.Background()
	repo := new(mockWishlistRepository)
	notifier := new(mockNotifier)
	svc := NewWishlistService(scenarioCatalog(t), repo, notifier, newTestLogger())

	repo.On("Get", ctx).Return(&domain.Wishlist{IDs: []string{"retired"}}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Wishlist")).Return(nil)
	notifier.On("WishlistChanged", ctx, 1).Return(nil)

	added, err := svc.Add(ctx, "A")
	require.NoError(t, err)
	assert.True(t, added)

	notifier.AssertExpectations(t)
}

func TestWishlistService_Errors(t *testing.T) {
	ctx := context.Background()

	repo := new(mockWishlistRepository)
	repo.On("Get", ctx).Return(nil, errors.New("unreachable"))
	svc := NewWishlistService(scenarioCatalog(t), repo, nil, newTestLogger())

	_, err := svc.Add(ctx, "A")
	assert.ErrorContains(t, err, "get wishlist")
	_, err = svc.Entries(ctx)
	assert.ErrorContains(t, err, "get wishlist")

	saving := new(mockWishlistRepository)
	saving.On("Get", ctx).Return(&domain.Wishlist{}, nil)
	saving.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))
	svc = NewWishlistService(scenarioCatalog(t), saving, nil, newTestLogger())

	_, err = svc.Add(ctx, "A")
	assert.ErrorContains(t, err, "save wishlist")
}

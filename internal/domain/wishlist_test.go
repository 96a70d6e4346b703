package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWishlist_DropsDuplicates(t *testing.T) {
	w := NewWishlist([]string{"b", "a", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, w.IDs)
}

func TestWishlist_AddRemove(t *testing.T) {
	var w Wishlist

	assert.True(t, w.Add("001"))
	assert.False(t, w.Add("001"))
	assert.True(t, w.Contains("001"))
	assert.Equal(t, 1, w.Len())

	assert.True(t, w.Remove("001"))
	assert.False(t, w.Remove("001"))
	assert.False(t, w.Contains("001"))
}

func TestWishlist_RemoveKeepsOrder(t *testing.T) {
	w := NewWishlist([]string{"a", "b", "c"})
	w.Remove("b")
	assert.Equal(t, []string{"a", "c"}, w.IDs)
}

func TestWishlist_ToggleIsItsOwnInverse(t *testing.T) {
	for _, start := range [][]string{{}, {"x"}, {"y", "x", "z"}} {
		w := NewWishlist(start)
		before := w.Contains("x")

		w.Toggle("x")
		assert.NotEqual(t, before, w.Contains("x"))
		w.Toggle("x")
		assert.Equal(t, before, w.Contains("x"))
	}
}

func TestWishlist_ToggleReportsPresence(t *testing.T) {
	var w Wishlist
	assert.True(t, w.Toggle("a"))
	assert.False(t, w.Toggle("a"))
}

func TestWishlist_MembershipFollowsNetParity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ids := []string{"a", "b", "c"}

	var w Wishlist
	present := map[string]bool{}
	for i := 0; i < 500; i++ {
		id := ids[rng.IntN(len(ids))]
		if rng.IntN(2) == 0 {
			w.Add(id)
			present[id] = true
		} else {
			w.Remove(id)
			present[id] = false
		}
		for _, check := range ids {
			assert.Equal(t, present[check], w.Contains(check))
		}
	}

	distinct := 0
	for _, p := range present {
		if p {
			distinct++
		}
	}
	assert.Equal(t, distinct, w.Len())
}

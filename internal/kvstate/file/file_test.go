package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comicverse/hub/internal/kvstate"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	return s
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, ok, err := s.Get(ctx, "comicverse_cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "comicverse_cart", []byte(`[{"id":"001"}]`)))
	got, ok, err := s.Get(ctx, "comicverse_cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"001"}]`, string(got))

	require.NoError(t, s.Delete(ctx, "comicverse_cart"))
	require.NoError(t, s.Delete(ctx, "comicverse_cart"))
	_, ok, err = s.Get(ctx, "comicverse_cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, kvstate.Write(ctx, kvstate.Namespaced(first, "default"), "comicverse_wishlist", []string{"001", "004"}))

	second, err := New(dir)
	require.NoError(t, err)
	got := kvstate.Read[[]string](ctx, kvstate.Namespaced(second, "default"), "comicverse_wishlist", nil)
	assert.Equal(t, []string{"001", "004"}, got)
}

func TestStore_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "a", []byte("2")))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.json", entries[0].Name())
}

func TestStore_EscapesKeys(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Set(ctx, "../escape", []byte("1")))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got, ok, err := s.Get(ctx, "../escape")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", string(got))
}

func TestStore_EmptyKey(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, _, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, kvstate.ErrEmptyKey)
	assert.ErrorIs(t, s.Set(ctx, "", nil), kvstate.ErrEmptyKey)
	assert.ErrorIs(t, s.Delete(ctx, ""), kvstate.ErrEmptyKey)
}

func TestStore_Ping(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.Ping(ctx))

	require.NoError(t, os.RemoveAll(s.Dir()))
	assert.Error(t, s.Ping(ctx))
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

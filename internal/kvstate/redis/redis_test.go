package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comicverse/hub/internal/kvstate"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, ttl), mr
}

func TestStore_Get_Missing(t *testing.T) {
	s, _ := setupTestRedis(t, 0)

	data, ok, err := s.Get(context.Background(), "comicverse_cart")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestStore_SetGet(t *testing.T) {
	s, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "default:comicverse_wishlist", []byte(`["001"]`)))

	raw, err := mr.Get("comicverse:state:default:comicverse_wishlist")
	require.NoError(t, err)
	assert.Equal(t, `["001"]`, raw)
	assert.Zero(t, mr.TTL("comicverse:state:default:comicverse_wishlist"))

	got, ok, err := s.Get(ctx, "default:comicverse_wishlist")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["001"]`, string(got))
}

func TestStore_Set_AppliesTTL(t *testing.T) {
	s, mr := setupTestRedis(t, 24*time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("1")))
	assert.Equal(t, 24*time.Hour, mr.TTL("comicverse:state:k"))

	mr.FastForward(25 * time.Hour)
	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	s, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("1")))
	require.NoError(t, s.Delete(ctx, "k"))
	assert.False(t, mr.Exists("comicverse:state:k"))

	// Deleting again is a no-op.
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestStore_TypedHelpers(t *testing.T) {
	s, _ := setupTestRedis(t, 0)
	ctx := context.Background()
	store := kvstate.Namespaced(s, "default")

	require.NoError(t, kvstate.Write(ctx, store, "comicverse_wishlist", []string{"003", "001"}))
	assert.Equal(t, []string{"003", "001"}, kvstate.Read[[]string](ctx, store, "comicverse_wishlist", nil))
}

func TestStore_ServerDown(t *testing.T) {
	s, mr := setupTestRedis(t, 0)
	ctx := context.Background()
	mr.Close()

	_, _, err := s.Get(ctx, "k")
	assert.ErrorContains(t, err, "redis get k")
	assert.ErrorContains(t, s.Set(ctx, "k", []byte("1")), "redis set k")
	assert.ErrorContains(t, s.Delete(ctx, "k"), "redis del k")
	assert.ErrorContains(t, s.Ping(ctx), "redis ping")
}

func TestStore_Ping(t *testing.T) {
	s, _ := setupTestRedis(t, 0)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestStore_EmptyKey(t *testing.T) {
	s, _ := setupTestRedis(t, 0)
	ctx := context.Background()

	_, _, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, kvstate.ErrEmptyKey)
	assert.ErrorIs(t, s.Set(ctx, "", nil), kvstate.ErrEmptyKey)
	assert.ErrorIs(t, s.Delete(ctx, ""), kvstate.ErrEmptyKey)
}

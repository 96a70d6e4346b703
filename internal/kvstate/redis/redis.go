// Package redis is a kvstate substrate backed by Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comicverse/hub/internal/kvstate"
	"github.com/comicverse/hub/pkg/database"
)

const (
	system    = "redis"
	keyPrefix = "comicverse:state:"
)

// Store implements kvstate.Store using Redis strings.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed store. A ttl of zero keeps records forever;
// otherwise every write refreshes the expiry.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

func (s *Store) Get(ctx context.Context, key string) (data []byte, found bool, err error) {
	if key == "" {
		return nil, false, kvstate.ErrEmptyKey
	}
	ctx, end := database.TraceQuery(ctx, system, "kv.get", "GET")
	defer func() { end(err) }()

	data, err = s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) (err error) {
	if key == "" {
		return kvstate.ErrEmptyKey
	}
	ctx, end := database.TraceQuery(ctx, system, "kv.set", "SET")
	defer func() { end(err) }()

	if err = s.client.Set(ctx, keyPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) (err error) {
	if key == "" {
		return kvstate.ErrEmptyKey
	}
	ctx, end := database.TraceQuery(ctx, system, "kv.delete", "DEL")
	defer func() { end(err) }()

	if err = s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Package kvstate stores small JSON records under string keys. Substrates
// implement Store; the typed helpers turn absent or unreadable records into
// empty defaults so storefront state never fails a read.
package kvstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrEmptyKey is returned by substrates for a blank key.
var ErrEmptyKey = errors.New("kvstate: empty key")

// Store is a durable key-value substrate.
type Store interface {
	// Get returns the raw record and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the record under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the substrate is reachable.
	Ping(ctx context.Context) error
}

// Read decodes the record under key into T. Absent keys, substrate errors and
// corrupt records all yield the zero value; the latter two are logged.
func Read[T any](ctx context.Context, store Store, key string, logger *slog.Logger) T {
	var zero T

	data, ok, err := store.Get(ctx, key)
	if err != nil {
		readFallbacks.WithLabelValues(reasonUnavailable).Inc()
		warn(ctx, logger, "state read failed, using empty default", key, err)
		return zero
	}
	if !ok || len(data) == 0 {
		return zero
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		readFallbacks.WithLabelValues(reasonCorrupt).Inc()
		warn(ctx, logger, "corrupt state record, using empty default", key, err)
		return zero
	}
	return v
}

// Write encodes value as JSON and replaces the record under key.
func Write[T any](ctx context.Context, store Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Remove deletes the record under key.
func Remove(ctx context.Context, store Store, key string) error {
	if err := store.Delete(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func warn(ctx context.Context, logger *slog.Logger, msg, key string, err error) {
	if logger == nil {
		return
	}
	logger.WarnContext(ctx, msg,
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// namespaced prefixes every key with a profile namespace.
type namespaced struct {
	inner  Store
	prefix string
}

// Namespaced scopes store to ns. Keys become "ns:key". An empty ns returns
// store unchanged.
func Namespaced(store Store, ns string) Store {
	if ns == "" {
		return store
	}
	return &namespaced{inner: store, prefix: ns + ":"}
}

func (n *namespaced) key(k string) (string, error) {
	if k == "" {
		return "", ErrEmptyKey
	}
	return n.prefix + k, nil
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	k, err := n.key(key)
	if err != nil {
		return nil, false, err
	}
	return n.inner.Get(ctx, k)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	k, err := n.key(key)
	if err != nil {
		return err
	}
	return n.inner.Set(ctx, k, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	k, err := n.key(key)
	if err != nil {
		return err
	}
	return n.inner.Delete(ctx, k)
}

func (n *namespaced) Ping(ctx context.Context) error {
	return n.inner.Ping(ctx)
}

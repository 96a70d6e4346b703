// Package postgres is a kvstate substrate backed by a PostgreSQL table.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/comicverse/hub/internal/kvstate"
	"github.com/comicverse/hub/pkg/database"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const system = "postgresql"

const (
	getQuery = `SELECT value FROM kv_state
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())`

	upsertQuery = `INSERT INTO kv_state (key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = NOW()`

	deleteQuery = `DELETE FROM kv_state WHERE key = $1`
)

// Migrations returns the schema files for the kv_state table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies pending schema migrations.
func Migrate(ctx context.Context, db database.DBTX, logger *slog.Logger) error {
	return database.RunMigrations(ctx, db, Migrations(), logger)
}

// Store implements kvstate.Store on the kv_state table.
type Store struct {
	db  database.DBTX
	ttl time.Duration
	now func() time.Time
}

// New creates a PostgreSQL-backed store. A ttl of zero keeps records forever.
func New(db database.DBTX, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl, now: time.Now}
}

func (s *Store) Get(ctx context.Context, key string) (data []byte, found bool, err error) {
	if key == "" {
		return nil, false, kvstate.ErrEmptyKey
	}
	ctx, end := database.TraceQuery(ctx, system, "kv.get", getQuery)
	defer func() { end(err) }()

	err = s.db.QueryRow(ctx, getQuery, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", key, err)
	}
	return data, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) (err error) {
	if key == "" {
		return kvstate.ErrEmptyKey
	}
	ctx, end := database.TraceQuery(ctx, system, "kv.set", upsertQuery)
	defer func() { end(err) }()

	var expiresAt *time.Time
	if s.ttl > 0 {
		t := s.now().Add(s.ttl).UTC()
		expiresAt = &t
	}

	if _, err = s.db.Exec(ctx, upsertQuery, key, value, expiresAt); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) (err error) {
	if key == "" {
		return kvstate.ErrEmptyKey
	}
	ctx, end := database.TraceQuery(ctx, system, "kv.delete", deleteQuery)
	defer func() { end(err) }()

	if _, err = s.db.Exec(ctx, deleteQuery, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-api/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS dishes (
		id             INTEGER PRIMARY KEY,
		name           TEXT NOT NULL,
		price          DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (price >= 0),
		description    TEXT NOT NULL DEFAULT '',
		average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_ratings  INTEGER NOT NULL DEFAULT 0 CHECK (total_ratings >= 0)
	)`,
	"CREATE INDEX IF NOT EXISTS idx_dishes_name ON dishes (name)",
	`CREATE TABLE IF NOT EXISTS ratings (
		id       SERIAL PRIMARY KEY,
		dish_id  INTEGER NOT NULL REFERENCES dishes (id) ON DELETE CASCADE,
		user_id  TEXT NOT NULL,
		rating   INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		rated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (dish_id, user_id)
	)`,
	"CREATE INDEX IF NOT EXISTS idx_ratings_user_id ON ratings (user_id)",
	`CREATE TABLE IF NOT EXISTS orders (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		status        TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		total         DOUBLE PRECISION NOT NULL DEFAULT 0,
		placed_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	"CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id)",
	`CREATE TABLE IF NOT EXISTS items (
		id       SERIAL PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		name     TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0)
	)`,
	"CREATE INDEX IF NOT EXISTS idx_items_order_id ON items (order_id)",
}

// EnsureSchema creates the tables on first start. It never alters existing ones.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// withTx runs fn in one transaction. The deferred rollback is a no-op once
// the commit succeeded, so every exit path releases the transaction.
func (r *PostgresRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", classify(err))
	}
	return nil
}

// classify tags unique violations with domain.ErrAlreadyExists.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %w", domain.ErrAlreadyExists, err)
	}
	return err
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf(format+": %w", append(args, domain.ErrNotFound)...)
	}
	return err
}

func firstLine(stmt string) string {
	for i, r := range stmt {
		if r == '\n' {
			return stmt[:i]
		}
	}
	return stmt
}

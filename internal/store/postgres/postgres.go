// Package postgres stores analysis results in PostgreSQL as JSONB.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spigell/career-advisor/internal/analysis"
)

const schema = `CREATE TABLE IF NOT EXISTS analysis_results (
	id         UUID PRIMARY KEY,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the results table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Put upserts the result. Ids must be UUIDs.
func (s *Store) Put(ctx context.Context, id string, result *analysis.Result) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid analysis id %q: %w", id, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO analysis_results (id, result)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET result = EXCLUDED.result`,
		parsed, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// Get loads a result. Unknown or malformed ids return analysis.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*analysis.Result, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, analysis.ErrNotFound
	}

	var payload []byte
	err = s.pool.QueryRow(ctx,
		`SELECT result FROM analysis_results WHERE id = $1`,
		parsed,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, analysis.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var result analysis.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}

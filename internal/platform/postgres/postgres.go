// Package postgres manages the pgx connection pool shared by stores.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"scanid/internal/platform/config"
)

// Pool wraps a pgx pool with health checking.
type Pool struct {
	*pgxpool.Pool
}

// New creates a connection pool from the provided configuration.
// Returns nil if the URL is empty (postgres not configured).
func New(ctx context.Context, cfg config.Postgres) (*Pool, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// Health checks if the database connection is healthy.
func (p *Pool) Health(ctx context.Context) error {
	return p.Ping(ctx)
}

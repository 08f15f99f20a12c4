// Package pg owns the pgx pool and its tracing seam
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config carries the knobs pg needs to open a pool
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
}

// TraceData is one finished statement observation
type TraceData struct {
	SQL      string
	Args     []any
	Duration time.Duration
	Err      error
	SlowMs   int
}

// QueryTracer receives finished statement observations
type QueryTracer interface {
	Trace(ctx context.Context, td TraceData)
}

// PG wraps the pool plus the tracing configuration the adapter needs
type PG struct {
	Pool   *pgxpool.Pool
	Tr     QueryTracer
	SlowMs int
}

// newPool is a seam for tests
var newPool = func(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Open parses the URL and builds the pool
// the pool is not pinged here; callers own readiness checks
func Open(ctx context.Context, cfg Config, tr QueryTracer, mutate func(*pgxpool.Config)) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if mutate != nil {
		mutate(pc)
	}

	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, err
	}

	return &PG{Pool: pool, Tr: tr, SlowMs: cfg.SlowMs}, nil
}

// Close releases the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

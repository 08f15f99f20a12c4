package store

import (
	"context"
	"time"

	"casework/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgAdapter adapts pg.PG (pgxpool) to the RowQuerier and TxRunner seams
type pgAdapter struct {
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter { return &pgAdapter{p: p} }

// emit routes a finished query through the configured tracer, if any
func (a *pgAdapter) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if a.p.Tr == nil {
		return
	}
	a.p.Tr.Trace(ctx, pg.TraceData{
		SQL:      sql,
		Args:     args,
		Duration: time.Since(start),
		Err:      err,
		SlowMs:   a.p.SlowMs,
	})
}

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := a.p.Pool.Exec(ctx, sql, args...)
	a.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return tag{ct}, nil
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.p.Pool.Query(ctx, sql, args...)
	a.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rowsAdapter{rs}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := a.p.Pool.QueryRow(ctx, sql, args...)
	a.emit(ctx, sql, args, start, nil)
	return r
}

// Tx runs fn inside a transaction, committing on nil error
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	q := &txQuerier{tx: tx, parent: a}
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (a *pgAdapter) Ping(ctx context.Context) error { return a.p.Pool.Ping(ctx) }

func (a *pgAdapter) Close() error {
	a.p.Close()
	return nil
}

// tag wraps pgconn.CommandTag to satisfy CommandTag
type tag struct{ ct pgconn.CommandTag }

func (t tag) String() string      { return t.ct.String() }
func (t tag) RowsAffected() int64 { return t.ct.RowsAffected() }

// rowsAdapter narrows pgx.Rows to the store Rows seam
type rowsAdapter struct{ rs pgx.Rows }

func (r rowsAdapter) Next() bool             { return r.rs.Next() }
func (r rowsAdapter) Scan(dest ...any) error { return r.rs.Scan(dest...) }
func (r rowsAdapter) Err() error             { return r.rs.Err() }
func (r rowsAdapter) Close()                 { r.rs.Close() }

func (r rowsAdapter) Columns() []string {
	fds := r.rs.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = string(fd.Name)
	}
	return cols
}

// txQuerier runs statements on a single transaction, sharing the parent tracer
type txQuerier struct {
	tx     pgx.Tx
	parent *pgAdapter
}

func (t *txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.tx.Exec(ctx, sql, args...)
	t.parent.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return tag{ct}, nil
}

func (t *txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.tx.Query(ctx, sql, args...)
	t.parent.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rowsAdapter{rs}, nil
}

func (t *txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := t.tx.QueryRow(ctx, sql, args...)
	t.parent.emit(ctx, sql, args, start, nil)
	return r
}

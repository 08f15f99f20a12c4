package store

import (
	"context"
	"fmt"

	chx "casework/internal/platform/store/ch"
)

// clickhouseAdapter adapts ch.CH to the Clickhouse seam
type clickhouseAdapter struct {
	c *chx.CH
}

func newCHAdapter(c *chx.CH) *clickhouseAdapter { return &clickhouseAdapter{c: c} }

// Insert accepts [][]any for batch appends
func (a *clickhouseAdapter) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return fmt.Errorf("ch insert: unsupported payload %T", data)
	}
	return a.c.Insert(ctx, table, rows)
}

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

func (a *clickhouseAdapter) Ping(ctx context.Context) error { return a.c.Ping(ctx) }

func (a *clickhouseAdapter) Close() error { return a.c.Close() }

// chRows narrows ch.Rows to the store Rows seam
type chRows struct{ rs chx.Rows }

func (r chRows) Next() bool             { return r.rs.Next() }
func (r chRows) Scan(dest ...any) error { return r.rs.Scan(dest...) }
func (r chRows) Err() error             { return r.rs.Err() }
func (r chRows) Close()                 { _ = r.rs.Close() }
func (r chRows) Columns() []string      { return r.rs.Columns() }

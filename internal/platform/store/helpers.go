package store

import (
	"context"
	"errors"

	perr "casework/internal/platform/errors"
)

// Binder maps a Row into a T
type Binder[T any] interface {
	Bind(row Row) (T, error)
}

// BinderFunc adapts a function to Binder
type BinderFunc[T any] func(row Row) (T, error)

// Bind implements Binder
func (f BinderFunc[T]) Bind(row Row) (T, error) { return f(row) }

// Exec runs a statement and returns its command tag
func Exec(ctx context.Context, q RowQuerier, sql string, args ...any) (CommandTag, error) {
	ct, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "exec")
	}
	return ct, nil
}

// ExecAffectingOne runs a statement and requires exactly one affected row
func ExecAffectingOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	ct, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return perr.FromPostgres(err, "exec")
	}
	if n := ct.RowsAffected(); n != 1 {
		return perr.NotFoundf("expected 1 affected row, got %d", n)
	}
	return nil
}

// Scalar scans a single value from a single row query
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var out T
	if err := q.QueryRow(ctx, sql, args...).Scan(&out); err != nil {
		return out, perr.FromPostgres(err, "scalar")
	}
	return out, nil
}

// One binds a single row, mapping no rows to ErrorCodeNotFound
func One[T any](ctx context.Context, q RowQuerier, b Binder[T], sql string, args ...any) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, perr.FromPostgres(err, "query")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, perr.FromPostgres(err, "query")
		}
		return zero, perr.NotFoundf("no rows")
	}

	out, err := b.Bind(rowFromRows{rows})
	if err != nil {
		return zero, err
	}
	if rows.Next() {
		return zero, errors.New("expected exactly one row, got more")
	}
	return out, rows.Err()
}

// Many binds all rows in order
func Many[T any](ctx context.Context, q RowQuerier, b Binder[T], sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "query")
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := b.Bind(rowFromRows{rows})
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// rowFromRows lets a Binder scan the current row of a Rows cursor
type rowFromRows struct{ rs Rows }

func (r rowFromRows) Scan(dest ...any) error { return r.rs.Scan(dest...) }

package store

import (
	"context"
)

// conn is the small query surface shared by the sqlite and postgres drivers.
// Queries are written with "?" placeholders; each driver rebinds as needed.
type conn interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (rows, error)
	QueryRow(ctx context.Context, query string, args ...any) row
	Close() error
}

type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

type row interface {
	Scan(dest ...any) error
}

package clickhouse

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Conn interface {
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		Close() error
	}
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Close() error
		Err() error
	}
	Metrics interface {
		Observe(operation, coin, network string, err error, started time.Time)
	}
)

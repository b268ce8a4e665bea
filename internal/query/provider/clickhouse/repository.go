// Package clickhouse reads transactions and address histories from the UTXO
// tables maintained by the blockinsight7000 ingesters.
package clickhouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
)

// Config selects the database and the chain the repository reads.
type Config struct {
	DSN     string
	Coin    string
	Network string
	// AddressTxLimit bounds the address history returned per lookup; zero keeps all.
	AddressTxLimit int
}

// Repository implements provider.Provider over ClickHouse.
type Repository struct {
	conn    Conn
	metrics Metrics
	coin    string
	network string
	txLimit int
}

// NewRepository opens a ClickHouse connection.
func NewRepository(cfg Config, metrics Metrics) (*Repository, error) {
	if cfg.DSN == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if cfg.Coin == "" || cfg.Network == "" {
		return nil, errors.New("clickhouse coin and network are required")
	}
	if metrics == nil {
		return nil, errors.New("clickhouse metrics is required")
	}

	options, err := clickhouse.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{
		conn:    connAdapter{conn: conn},
		metrics: metrics,
		coin:    cfg.Coin,
		network: cfg.Network,
		txLimit: cfg.AddressTxLimit,
	}, nil
}

// Close closes the connection.
func (r *Repository) Close() error {
	return r.conn.Close()
}

func (r *Repository) query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable(ctx, err)
	}
	return rows, nil
}

// unavailable classifies a driver failure. Context errors keep their identity.
func unavailable(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", provider.ErrUnavailable, err)
}

func closeRows(rows Rows, err *error) {
	if cerr := rows.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close rows: %w", cerr)
	}
}

type connAdapter struct {
	conn clickhouse.Conn
}

func (a connAdapter) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return a.conn.Query(ctx, query, args...)
}

func (a connAdapter) Close() error {
	return a.conn.Close()
}

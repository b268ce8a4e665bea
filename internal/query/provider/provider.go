// Package provider defines the data provider port used by the query evaluator
// and the decorators composed around concrete adapters.
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

var (
	// ErrNotFound reports an unknown transaction hash or address.
	ErrNotFound = errors.New("entity not found")
	// ErrUnavailable reports a network or service failure of the data source.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrUnsupported reports a lookup the adapter cannot serve.
	ErrUnsupported = errors.New("lookup not supported by provider")
)

type (
	// TransactionFetcher returns a fully derived transaction by hash.
	TransactionFetcher interface {
		FetchTransaction(ctx context.Context, hash string) (*model.Transaction, error)
	}
	// AddressFetcher returns a fully derived address by its string form.
	AddressFetcher interface {
		FetchAddress(ctx context.Context, address string) (*model.Address, error)
	}
	// Provider serves both entity kinds.
	Provider interface {
		TransactionFetcher
		AddressFetcher
	}
	// Metrics records the outcome of a provider lookup.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

const (
	// OperationFetchTransaction labels transaction lookups.
	OperationFetchTransaction = "fetch_transaction"
	// OperationFetchAddress labels address lookups.
	OperationFetchAddress = "fetch_address"
)

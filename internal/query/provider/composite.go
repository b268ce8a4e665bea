package provider

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

// Composite reads transactions and addresses from different sources.
type Composite struct {
	transactions TransactionFetcher
	addresses    AddressFetcher
}

// NewComposite builds a Provider from a transaction source and an address source.
func NewComposite(transactions TransactionFetcher, addresses AddressFetcher) *Composite {
	return &Composite{transactions: transactions, addresses: addresses}
}

// FetchTransaction delegates to the transaction source.
func (c *Composite) FetchTransaction(ctx context.Context, hash string) (*model.Transaction, error) {
	return c.transactions.FetchTransaction(ctx, hash)
}

// FetchAddress delegates to the address source.
func (c *Composite) FetchAddress(ctx context.Context, address string) (*model.Address, error) {
	return c.addresses.FetchAddress(ctx, address)
}

package provider

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

// Cache keeps recently fetched entities in memory for ttl. Cached values are
// shared between queries and never modified. Failed lookups are not cached.
type Cache struct {
	next  Provider
	txs   *ttlcache.Cache[string, *model.Transaction]
	addrs *ttlcache.Cache[string, *model.Address]
}

// NewCache wraps next with caches holding at most capacity entities of each
// kind for ttl. A zero capacity leaves the caches unbounded.
func NewCache(next Provider, ttl time.Duration, capacity uint64) *Cache {
	return &Cache{
		next: next,
		txs: ttlcache.New[string, *model.Transaction](
			ttlcache.WithTTL[string, *model.Transaction](ttl),
			ttlcache.WithCapacity[string, *model.Transaction](capacity),
			ttlcache.WithDisableTouchOnHit[string, *model.Transaction](),
		),
		addrs: ttlcache.New[string, *model.Address](
			ttlcache.WithTTL[string, *model.Address](ttl),
			ttlcache.WithCapacity[string, *model.Address](capacity),
			ttlcache.WithDisableTouchOnHit[string, *model.Address](),
		),
	}
}

// FetchTransaction returns a cached transaction or fetches and caches it.
func (c *Cache) FetchTransaction(ctx context.Context, hash string) (*model.Transaction, error) {
	if item := c.txs.Get(hash); item != nil {
		return item.Value(), nil
	}
	tx, err := c.next.FetchTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}
	c.txs.Set(hash, tx, ttlcache.DefaultTTL)
	return tx, nil
}

// FetchAddress returns a cached address or fetches and caches it.
func (c *Cache) FetchAddress(ctx context.Context, address string) (*model.Address, error) {
	if item := c.addrs.Get(address); item != nil {
		return item.Value(), nil
	}
	addr, err := c.next.FetchAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	c.addrs.Set(address, addr, ttlcache.DefaultTTL)
	return addr, nil
}

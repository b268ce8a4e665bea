package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

const (
	transactionKeyPrefix = "tx/"
	addressKeyPrefix     = "addr/"
)

// diskRecord wraps a stored entity with the time it was written.
type diskRecord[T any] struct {
	StoredAt int64 `json:"stored_at"`
	Final    bool  `json:"final"`
	Data     T     `json:"data"`
}

// DiskCache persists raw entity records in a pebble store so that repeated
// queries survive restarts. Derived fields are recomputed on load.
//
// Confirmed transactions never change and are kept for good. Addresses and
// unconfirmed transactions do change upstream: they are served for ttl after
// being written and are not persisted at all when ttl is zero.
type DiskCache struct {
	next   Provider
	db     *pebble.DB
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewDiskCache opens (or creates) the store in dir and wraps next.
func NewDiskCache(next Provider, dir string, ttl time.Duration, logger *zap.Logger) (*DiskCache, error) {
	if ttl < 0 {
		return nil, fmt.Errorf("disk cache ttl must not be negative, got %s", ttl)
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble store %s: %w", dir, err)
	}
	return &DiskCache{next: next, db: db, ttl: ttl, now: time.Now, logger: logger}, nil
}

// Close closes the underlying store.
func (c *DiskCache) Close() error {
	return c.db.Close()
}

// FetchTransaction loads a transaction from disk or fetches and stores it.
func (c *DiskCache) FetchTransaction(ctx context.Context, hash string) (*model.Transaction, error) {
	key := transactionKeyPrefix + hash

	data, fresh, err := loadRecord[model.TransactionData](c, key)
	if err != nil {
		c.logger.Warn("read cached transaction", zap.String("hash", hash), zap.Error(err))
	}
	if fresh {
		return model.NewTransaction(data), nil
	}

	tx, err := c.next.FetchTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}
	if err := c.store(key, tx.BlockHeight > 0, tx.TransactionData); err != nil {
		c.logger.Warn("store transaction", zap.String("hash", hash), zap.Error(err))
	}
	return tx, nil
}

// FetchAddress loads an address from disk or fetches and stores it.
func (c *DiskCache) FetchAddress(ctx context.Context, address string) (*model.Address, error) {
	key := addressKeyPrefix + address

	data, fresh, err := loadRecord[model.AddressData](c, key)
	if err != nil {
		c.logger.Warn("read cached address", zap.String("address", address), zap.Error(err))
	}
	if fresh {
		return model.NewAddress(data), nil
	}

	addr, err := c.next.FetchAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if err := c.store(key, false, addr.AddressData); err != nil {
		c.logger.Warn("store address", zap.String("address", address), zap.Error(err))
	}
	return addr, nil
}

// loadRecord reports whether key holds a record that can still be served.
// Expired records are misses; undecodable ones are errors.
func loadRecord[T any](c *DiskCache, key string) (T, bool, error) {
	var rec diskRecord[T]

	value, closer, err := c.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return rec.Data, false, nil
	}
	if err != nil {
		return rec.Data, false, fmt.Errorf("get %s: %w", key, err)
	}
	defer closer.Close()

	if err := json.Unmarshal(value, &rec); err != nil {
		return rec.Data, false, fmt.Errorf("decode %s: %w", key, err)
	}
	if rec.StoredAt == 0 {
		return rec.Data, false, nil
	}
	if !rec.Final && c.now().Sub(time.Unix(0, rec.StoredAt)) >= c.ttl {
		return rec.Data, false, nil
	}
	return rec.Data, true, nil
}

func (c *DiskCache) store(key string, final bool, data any) error {
	if !final && c.ttl == 0 {
		return nil
	}
	value, err := json.Marshal(diskRecord[any]{
		StoredAt: c.now().UnixNano(),
		Final:    final,
		Data:     data,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.db.Set([]byte(key), value, pebble.NoSync); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

package setup

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/btcsuite/btcd/rpcclient"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider/blockchaininfo"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider/clickhouse"
)

// Provider is the composed provider stack. Close releases the connections and
// stores it opened.
type Provider struct {
	provider.Provider
	closers []func() error
}

// Close closes every resource in reverse opening order.
func (p *Provider) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		errs = append(errs, p.closers[i]())
	}
	p.closers = nil
	return errors.Join(errs...)
}

// NewProvider builds adapters for the configured sources and wraps them, from
// the inside out, with metrics, retries, the disk cache and the memory cache.
func NewProvider(cfg ProviderConfig, logger *zap.Logger) (_ *Provider, err error) {
	if logger == nil {
		return nil, errors.New("provider logger is required")
	}
	logger = logger.Named("provider")

	stack := &Provider{}
	defer func() {
		if err != nil {
			_ = stack.Close()
		}
	}()

	addressSource := cfg.AddressSource
	if addressSource == "" {
		addressSource = cfg.Source
	}
	if addressSource == SourceBitcoin {
		return nil, errors.New("bitcoin node cannot serve addresses, set an address source")
	}

	txs, err := stack.source(cfg, cfg.Source, logger)
	if err != nil {
		return nil, err
	}
	var p provider.Provider = txs
	if addressSource != cfg.Source {
		addrs, err := stack.source(cfg, addressSource, logger)
		if err != nil {
			return nil, err
		}
		p = provider.NewComposite(txs, addrs)
	}

	p = provider.NewRetrying(p, cfg.RetryAttempts, cfg.RetryBackoff, logger)

	if cfg.DiskCacheDir != "" {
		disk, err := provider.NewDiskCache(p, cfg.DiskCacheDir, cfg.DiskCacheTTL, logger)
		if err != nil {
			return nil, err
		}
		stack.closers = append(stack.closers, disk.Close)
		p = disk
	}
	if cfg.CacheTTL > 0 {
		p = provider.NewCache(p, cfg.CacheTTL, cfg.CacheCapacity)
	}

	logger.Info("provider ready",
		zap.String("source", cfg.Source),
		zap.String("address_source", addressSource),
		zap.Int("retry_attempts", cfg.RetryAttempts),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.String("disk_cache_dir", cfg.DiskCacheDir),
		zap.Duration("disk_cache_ttl", cfg.DiskCacheTTL),
	)
	stack.Provider = p
	return stack, nil
}

func (p *Provider) source(cfg ProviderConfig, name string, logger *zap.Logger) (provider.Provider, error) {
	var src provider.Provider
	switch name {
	case SourceBlockchainInfo:
		src = blockchaininfo.NewClient(blockchaininfo.Config{
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.HTTPTimeout,
			RequestsPerSecond: cfg.RequestsPerSecond,
			AddressTxLimit:    cfg.AddressTxLimit,
		})
	case SourceClickhouse:
		repo, err := clickhouse.NewRepository(clickhouse.Config{
			DSN:            cfg.ClickhouseDSN,
			Coin:           cfg.Coin,
			Network:        cfg.Network,
			AddressTxLimit: cfg.AddressTxLimit,
		}, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, fmt.Errorf("init clickhouse repository: %w", err)
		}
		p.closers = append(p.closers, repo.Close)
		src = repo
	case SourceBitcoin:
		client, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
		if err != nil {
			return nil, fmt.Errorf("init bitcoin rpc client: %w", err)
		}
		p.closers = append(p.closers, func() error {
			client.Shutdown()
			client.WaitForShutdown()
			return nil
		})
		node, err := bitcoin.NewProvider(
			bitcoin.NewObservedClient(client, metrics.NewNodeRPC(cfg.Coin, cfg.Network)),
			cfg.Network,
			cfg.RPCWorkers,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("init bitcoin provider: %w", err)
		}
		src = node
	default:
		return nil, fmt.Errorf("unknown provider source %q", name)
	}
	return provider.NewObserved(src, metrics.NewProvider(name)), nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}

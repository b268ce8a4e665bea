// Package setup builds the data provider stack from configuration.
package setup

import "time"

// Data sources.
const (
	SourceBlockchainInfo = "blockchaininfo"
	SourceClickhouse     = "clickhouse"
	SourceBitcoin        = "bitcoin"
)

// ProviderConfig is embedded by binaries as a go-flags group, e.g.
//
//	Provider setup.ProviderConfig `group:"provider" namespace:"provider" env-namespace:"PROVIDER"`
type ProviderConfig struct {
	Source        string `long:"source" env:"SOURCE" description:"transaction data source" choice:"blockchaininfo" choice:"clickhouse" choice:"bitcoin" default:"blockchaininfo"`
	AddressSource string `long:"address-source" env:"ADDRESS_SOURCE" description:"address data source, defaults to --provider.source" choice:"blockchaininfo" choice:"clickhouse"`

	BaseURL           string        `long:"blockchaininfo-url" env:"BLOCKCHAININFO_URL" description:"explorer API base URL" default:"https://blockchain.info"`
	RequestsPerSecond int           `long:"rps" env:"RPS" description:"explorer request rate, 0 disables pacing" default:"5"`
	HTTPTimeout       time.Duration `long:"http-timeout" env:"HTTP_TIMEOUT" description:"explorer request timeout" default:"30s"`
	AddressTxLimit    int           `long:"address-tx-limit" env:"ADDRESS_TX_LIMIT" description:"address history length per lookup, 0 keeps the source default" default:"50"`

	ClickhouseDSN string `long:"clickhouse-dsn" env:"CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	Coin          string `long:"coin" env:"COIN" description:"coin name" default:"BTC"`
	Network       string `long:"network" env:"NETWORK" description:"network name" default:"mainnet"`

	RPCURL      string `long:"rpc-url" env:"RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser     string `long:"rpc-user" env:"RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string `long:"rpc-password" env:"RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCWorkers  int    `long:"rpc-workers" env:"RPC_WORKERS" description:"concurrent previous transaction lookups" default:"4"`

	RetryAttempts int           `long:"retry-attempts" env:"RETRY_ATTEMPTS" description:"attempts per lookup on transient failures" default:"3"`
	RetryBackoff  time.Duration `long:"retry-backoff" env:"RETRY_BACKOFF" description:"backoff step between attempts" default:"500ms"`

	CacheTTL      time.Duration `long:"cache-ttl" env:"CACHE_TTL" description:"in-memory entity cache TTL, 0 disables the cache" default:"10m"`
	CacheCapacity uint64        `long:"cache-capacity" env:"CACHE_CAPACITY" description:"in-memory entity cache capacity" default:"10000"`
	DiskCacheDir  string        `long:"disk-cache-dir" env:"DISK_CACHE_DIR" description:"directory of the persistent entity cache, empty disables it"`
	DiskCacheTTL  time.Duration `long:"disk-cache-ttl" env:"DISK_CACHE_TTL" description:"how long addresses and unconfirmed transactions stay on disk, 0 keeps only confirmed transactions" default:"10m"`
}

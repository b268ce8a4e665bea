package bitcoin

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
)

// ObservedClient wraps btc rpcclient with metrics instrumentation and context
// cancellation.
type ObservedClient struct {
	client     *rpcclient.Client
	rpcMetrics RPCMetrics
}

// NewObservedClient constructs an instrumented RPC client.
func NewObservedClient(client *rpcclient.Client, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// GetRawTransactionVerbose returns a decoded transaction.
func (r *ObservedClient) GetRawTransactionVerbose(ctx context.Context, txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("getrawtransaction", err, started)
	}()
	future := r.client.GetRawTransactionVerboseAsync(txHash)
	return await(ctx, future.Receive)
}

// GetBlockHeaderVerbose returns the header of a block.
func (r *ObservedClient) GetBlockHeaderVerbose(ctx context.Context, blockHash *chainhash.Hash) (res *btcjson.GetBlockHeaderVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("getblockheader", err, started)
	}()
	future := r.client.GetBlockHeaderVerboseAsync(blockHash)
	return await(ctx, future.Receive)
}

// await stops waiting when ctx is done. The pending response is still
// received and dropped by the spawned goroutine.
func await[T any](ctx context.Context, receive func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := receive()
		ch <- result{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.value, r.err
	}
}

package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
	"github.com/goodnatureofminers/blockinsight7000-query/pkg/workerpool"
)

const defaultWorkers = 4

// Provider resolves transactions through a node. Input values and addresses
// come from the previous transactions, so the node needs txindex enabled.
type Provider struct {
	client  RPCClient
	decoder PayeeDecoder
	workers int
	logger  *zap.Logger
}

// NewProvider builds a Provider for the given network. workers bounds the
// concurrent previous-transaction lookups per fetch.
func NewProvider(client RPCClient, network string, workers int, logger *zap.Logger) (*Provider, error) {
	if client == nil {
		return nil, errors.New("bitcoin rpc client is required")
	}
	if logger == nil {
		return nil, errors.New("bitcoin logger is required")
	}
	decoder, err := newPayeeDecoder(network)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Provider{
		client:  client,
		decoder: decoder,
		workers: workers,
		logger:  logger.Named("bitcoin_provider"),
	}, nil
}

// FetchTransaction returns the transaction with its inputs resolved.
func (p *Provider) FetchTransaction(ctx context.Context, hash string) (*model.Transaction, error) {
	txHash, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction %q: %w", provider.ErrNotFound, hash, err)
	}

	raw, err := p.client.GetRawTransactionVerbose(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", hash, classify(ctx, err))
	}

	outputs, err := convertOutputs(p.decoder, raw)
	if err != nil {
		return nil, err
	}
	inputs, coinbase, err := p.resolveInputs(ctx, raw)
	if err != nil {
		return nil, err
	}
	height, err := p.blockHeight(ctx, raw.BlockHash)
	if err != nil {
		return nil, err
	}

	data := model.TransactionData{
		Hash:        raw.Txid,
		Size:        int64(raw.Size),
		Time:        raw.Time,
		LockTime:    int64(raw.LockTime),
		BlockHeight: height,
		Weight:      int64(raw.Weight),
		Version:     int64(raw.Version),
		Inputs:      inputs,
		Outputs:     outputs,
	}
	if !coinbase {
		data.Fee = fee(data)
	}
	return model.NewTransaction(data), nil
}

// FetchAddress is not served by a node without an address index.
func (p *Provider) FetchAddress(_ context.Context, address string) (*model.Address, error) {
	return nil, fmt.Errorf("%w: address %s via bitcoin node", provider.ErrUnsupported, address)
}

func (p *Provider) resolveInputs(ctx context.Context, raw *btcjson.TxRawResult) ([]model.Input, bool, error) {
	var (
		prevIDs []string
		seen    = make(map[string]struct{})
	)
	for _, vin := range raw.Vin {
		if vin.IsCoinBase() {
			return []model.Input{}, true, nil
		}
		if _, ok := seen[vin.Txid]; !ok {
			seen[vin.Txid] = struct{}{}
			prevIDs = append(prevIDs, vin.Txid)
		}
	}

	fetched, err := workerpool.Map(ctx, p.workers, prevIDs, func(ctx context.Context, txid string) (*btcjson.TxRawResult, error) {
		prevHash, err := chainhash.NewHashFromStr(txid)
		if err != nil {
			return nil, fmt.Errorf("previous transaction %q: %w", txid, err)
		}
		prev, err := p.client.GetRawTransactionVerbose(ctx, prevHash)
		if err != nil {
			return nil, fmt.Errorf("get previous transaction %s: %w", txid, classify(ctx, err))
		}
		return prev, nil
	})
	if err != nil {
		return nil, false, err
	}
	prevs := make(map[string]*btcjson.TxRawResult, len(prevIDs))
	for i, txid := range prevIDs {
		prevs[txid] = fetched[i]
	}

	inputs := make([]model.Input, 0, len(raw.Vin))
	for _, vin := range raw.Vin {
		prev := prevs[vin.Txid]
		if int(vin.Vout) >= len(prev.Vout) {
			return nil, false, fmt.Errorf("tx %s spends missing output %s:%d", raw.Txid, vin.Txid, vin.Vout)
		}
		out, err := convertOutput(p.decoder, prev.Txid, prev.Vout[vin.Vout])
		if err != nil {
			return nil, false, err
		}
		inputs = append(inputs, model.Input{PrevOut: out})
	}
	p.logger.Debug("inputs resolved",
		zap.String("txid", raw.Txid),
		zap.Int("inputs", len(inputs)),
		zap.Int("previous_transactions", len(prevIDs)),
	)
	return inputs, false, nil
}

func (p *Provider) blockHeight(ctx context.Context, blockHash string) (int64, error) {
	if blockHash == "" {
		return 0, nil
	}
	h, err := chainhash.NewHashFromStr(blockHash)
	if err != nil {
		return 0, fmt.Errorf("block hash %q: %w", blockHash, err)
	}
	header, err := p.client.GetBlockHeaderVerbose(ctx, h)
	if err != nil {
		return 0, fmt.Errorf("get block header %s: %w", blockHash, classify(ctx, err))
	}
	return int64(header.Height), nil
}

func fee(data model.TransactionData) int64 {
	var total int64
	for _, in := range data.Inputs {
		total += in.PrevOut.Value
	}
	for _, out := range data.Outputs {
		total -= out.Value
	}
	if total < 0 {
		return 0
	}
	return total
}

// classify maps node failures onto the provider taxonomy.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	case IsUnknownEntity(err):
		return fmt.Errorf("%w: %w", provider.ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", provider.ErrUnavailable, err)
	}
}

// IsUnknownEntity reports whether the node rejected a call because it has no
// such transaction or block.
func IsUnknownEntity(err error) bool {
	var rpcErr *btcjson.RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	// -5 is shared by unknown transactions and unknown blocks.
	return rpcErr.Code == btcjson.ErrRPCNoTxInfo || rpcErr.Code == btcjson.ErrRPCInvalidParameter
}

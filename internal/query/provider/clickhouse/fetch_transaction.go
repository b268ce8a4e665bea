package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
	"github.com/goodnatureofminers/blockinsight7000-query/pkg/safe"
)

const transactionQuery = `
SELECT
	block_height,
	timestamp,
	size,
	version,
	locktime
FROM utxo_transactions FINAL
WHERE coin = ? AND network = ? AND txid = CAST(? AS FixedString(64))
LIMIT 1`

const transactionInputsQuery = `
SELECT
	is_coinbase,
	value,
	addresses
FROM utxo_transaction_inputs FINAL
WHERE coin = ? AND network = ? AND txid = CAST(? AS FixedString(64))
ORDER BY input_index ASC`

const transactionOutputsQuery = `
SELECT
	value,
	addresses
FROM utxo_transaction_outputs FINAL
WHERE coin = ? AND network = ? AND txid = CAST(? AS FixedString(64))
ORDER BY output_index ASC`

// FetchTransaction assembles a transaction from its header, input and output rows.
func (r *Repository) FetchTransaction(ctx context.Context, hash string) (*model.Transaction, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe(provider.OperationFetchTransaction, r.coin, r.network, err, start)
	}()

	if _, perr := chainhash.NewHashFromStr(hash); perr != nil || len(hash) != 2*chainhash.HashSize {
		err = fmt.Errorf("%w: transaction %q", provider.ErrNotFound, hash)
		return nil, err
	}

	data, err := r.transactionHeader(ctx, hash)
	if err != nil {
		return nil, err
	}

	coinbase, err := r.transactionInputs(ctx, hash, &data)
	if err != nil {
		return nil, err
	}
	if err = r.transactionOutputs(ctx, hash, &data); err != nil {
		return nil, err
	}

	if !coinbase {
		data.Fee = feeOf(data)
	}
	return model.NewTransaction(data), nil
}

func (r *Repository) transactionHeader(ctx context.Context, hash string) (data model.TransactionData, err error) {
	rows, err := r.query(ctx, transactionQuery, r.coin, r.network, hash)
	if err != nil {
		return data, fmt.Errorf("query transaction: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return data, fmt.Errorf("iterate transaction: %w", unavailable(ctx, err))
		}
		return data, fmt.Errorf("%w: transaction %s", provider.ErrNotFound, hash)
	}

	var (
		height            uint64
		timestamp         time.Time
		size, ver, locked uint32
	)
	if err = rows.Scan(&height, &timestamp, &size, &ver, &locked); err != nil {
		return data, fmt.Errorf("scan transaction: %w", err)
	}

	blockHeight, err := safe.Int64(height)
	if err != nil {
		return data, fmt.Errorf("transaction %s block height: %w", hash, err)
	}

	return model.TransactionData{
		Hash:        hash,
		Size:        int64(size),
		Time:        timestamp.Unix(),
		LockTime:    int64(locked),
		BlockHeight: blockHeight,
		Version:     int64(ver),
	}, nil
}

func (r *Repository) transactionInputs(ctx context.Context, hash string, data *model.TransactionData) (coinbase bool, err error) {
	rows, err := r.query(ctx, transactionInputsQuery, r.coin, r.network, hash)
	if err != nil {
		return false, fmt.Errorf("query transaction inputs: %w", err)
	}
	defer closeRows(rows, &err)

	data.Inputs = make([]model.Input, 0)
	for rows.Next() {
		var (
			isCoinbase bool
			value      uint64
			addresses  []string
		)
		if err = rows.Scan(&isCoinbase, &value, &addresses); err != nil {
			return false, fmt.Errorf("scan transaction input: %w", err)
		}
		if isCoinbase {
			coinbase = true
			continue
		}
		amount, cerr := safe.Int64(value)
		if cerr != nil {
			err = fmt.Errorf("transaction %s input value: %w", hash, cerr)
			return false, err
		}
		data.Inputs = append(data.Inputs, model.Input{
			PrevOut: model.Output{Addr: model.Payee(addresses), Value: amount},
		})
	}

	if err = rows.Err(); err != nil {
		return false, fmt.Errorf("iterate transaction inputs: %w", unavailable(ctx, err))
	}
	return coinbase, nil
}

func (r *Repository) transactionOutputs(ctx context.Context, hash string, data *model.TransactionData) (err error) {
	rows, err := r.query(ctx, transactionOutputsQuery, r.coin, r.network, hash)
	if err != nil {
		return fmt.Errorf("query transaction outputs: %w", err)
	}
	defer closeRows(rows, &err)

	data.Outputs = make([]model.Output, 0)
	for rows.Next() {
		var (
			value     uint64
			addresses []string
		)
		if err = rows.Scan(&value, &addresses); err != nil {
			return fmt.Errorf("scan transaction output: %w", err)
		}
		amount, cerr := safe.Int64(value)
		if cerr != nil {
			err = fmt.Errorf("transaction %s output value: %w", hash, cerr)
			return err
		}
		data.Outputs = append(data.Outputs, model.Output{Addr: model.Payee(addresses), Value: amount})
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate transaction outputs: %w", unavailable(ctx, err))
	}
	return nil
}

func feeOf(data model.TransactionData) int64 {
	var fee int64
	for _, in := range data.Inputs {
		fee += in.PrevOut.Value
	}
	for _, out := range data.Outputs {
		fee -= out.Value
	}
	if fee < 0 {
		return 0
	}
	return fee
}

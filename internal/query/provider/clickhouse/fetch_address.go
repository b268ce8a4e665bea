package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
)

// addressHistoryQuery nets the value an address received and spent per
// transaction, newest first.
const addressHistoryQuery = `
SELECT
	txid,
	sum(received) AS received,
	sum(spent) AS spent,
	max(block_height) AS height
FROM (
	SELECT txid, block_height, toInt64(value) AS received, toInt64(0) AS spent
	FROM utxo_transaction_outputs FINAL
	WHERE coin = ? AND network = ? AND has(addresses, ?)
	UNION ALL
	SELECT txid, block_height, toInt64(0) AS received, toInt64(value) AS spent
	FROM utxo_transaction_inputs FINAL
	WHERE coin = ? AND network = ? AND has(addresses, ?)
)
GROUP BY txid
ORDER BY height DESC, txid ASC`

// FetchAddress derives the balance and history of address from the inputs and
// outputs that reference it.
func (r *Repository) FetchAddress(ctx context.Context, address string) (*model.Address, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe(provider.OperationFetchAddress, r.coin, r.network, err, start)
	}()

	data, err := r.addressHistory(ctx, address)
	if err != nil {
		return nil, err
	}
	return model.NewAddress(data), nil
}

func (r *Repository) addressHistory(ctx context.Context, address string) (data model.AddressData, err error) {
	rows, err := r.query(ctx, addressHistoryQuery,
		r.coin, r.network, address,
		r.coin, r.network, address,
	)
	if err != nil {
		return data, fmt.Errorf("query address history: %w", err)
	}
	defer closeRows(rows, &err)

	data = model.AddressData{Address: address, Txs: make([]model.AddressTx, 0)}
	for rows.Next() {
		var (
			txid            string
			received, spent int64
			height          uint64
		)
		if err = rows.Scan(&txid, &received, &spent, &height); err != nil {
			return data, fmt.Errorf("scan address transaction: %w", err)
		}

		data.NTx++
		data.TotalReceived += received
		data.TotalSent += spent
		if r.txLimit <= 0 || len(data.Txs) < r.txLimit {
			data.Txs = append(data.Txs, model.AddressTx{Hash: txid, Result: received - spent})
		}
	}

	if err = rows.Err(); err != nil {
		return data, fmt.Errorf("iterate address history: %w", unavailable(ctx, err))
	}
	if data.NTx == 0 {
		return data, fmt.Errorf("%w: address %s", provider.ErrNotFound, address)
	}

	data.FinalBalance = data.TotalReceived - data.TotalSent
	return data, nil
}

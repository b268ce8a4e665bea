// Package bitcoin serves transactions straight from a Bitcoin node over JSON-RPC.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

// BtcToSatoshis converts BTC amount to satoshis.
func BtcToSatoshis(value float64) (int64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return int64(amt), nil
}

// convertOutput maps an RPC output to the address it pays and its value.
func convertOutput(decoder PayeeDecoder, txid string, vout btcjson.Vout) (model.Output, error) {
	value, err := BtcToSatoshis(vout.Value)
	if err != nil {
		return model.Output{}, fmt.Errorf("tx %s output %d value: %w", txid, vout.N, err)
	}
	addr, err := decoder.payee(vout)
	if err != nil {
		return model.Output{}, fmt.Errorf("payee of tx %s output %d: %w", txid, vout.N, err)
	}
	return model.Output{Addr: addr, Value: value}, nil
}

func convertOutputs(decoder PayeeDecoder, tx *btcjson.TxRawResult) ([]model.Output, error) {
	outputs := make([]model.Output, 0, len(tx.Vout))
	for _, vout := range tx.Vout {
		out, err := convertOutput(decoder, tx.Txid, vout)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

package model

// AddressTx is one transaction in an address history. Result is the signed net
// value for the address in that transaction; negative means a net outflow.
type AddressTx struct {
	Hash   string `json:"hash"`
	Result int64  `json:"result"`
}

// AddressData holds the raw attributes of an address as returned by a data provider.
type AddressData struct {
	Address       string      `json:"address"`
	NTx           int64       `json:"n_tx"`
	FinalBalance  int64       `json:"final_balance"`
	TotalSent     int64       `json:"total_sent"`
	TotalReceived int64       `json:"total_received"`
	Txs           []AddressTx `json:"txs"`
}

// Address is a fetched address together with its derived fields.
type Address struct {
	AddressData

	OutTxsHash []string
	InTxsHash  []string
}

// NewAddress computes the derived fields of data.
func NewAddress(data AddressData) *Address {
	addr := &Address{
		AddressData: data,
		OutTxsHash:  make([]string, 0),
		InTxsHash:   make([]string, 0),
	}
	for _, tx := range data.Txs {
		if tx.Result < 0 {
			addr.OutTxsHash = append(addr.OutTxsHash, tx.Hash)
		} else {
			addr.InTxsHash = append(addr.InTxsHash, tx.Hash)
		}
	}
	return addr
}

// LargestOutflow returns the transaction with the most negative result. Ties
// resolve to the first such transaction in history order. ok is false when the
// history is empty.
func (a *Address) LargestOutflow() (tx AddressTx, ok bool) {
	for i, t := range a.Txs {
		if i == 0 || t.Result < tx.Result {
			tx = t
		}
	}
	return tx, len(a.Txs) > 0
}

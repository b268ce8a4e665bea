// Package model defines the entities a query is evaluated against.
package model

import "github.com/btcsuite/btcd/btcutil"

// Output is a value sent to (or, inside an Input, spent from) an address.
// Value is expressed in base units (satoshis).
type Output struct {
	Addr  string `json:"addr"`
	Value int64  `json:"value"`
}

// Input references the previous output it spends.
type Input struct {
	PrevOut Output `json:"prev_out"`
}

// TransactionData holds the raw attributes of a transaction as returned by a data provider.
type TransactionData struct {
	Hash        string   `json:"hash"`
	Size        int64    `json:"size"`
	Time        int64    `json:"time"`
	LockTime    int64    `json:"lock_time"`
	DoubleSpend bool     `json:"double_spend"`
	RelayedBy   string   `json:"relayed_by"`
	BlockHeight int64    `json:"block_height"`
	Fee         int64    `json:"fee"`
	Weight      int64    `json:"weight"`
	Version     int64    `json:"ver"`
	Inputs      []Input  `json:"inputs"`
	Outputs     []Output `json:"out"`
}

// Transaction is a fetched transaction together with its derived fields.
// Values are snapshots: a Transaction is never modified after NewTransaction returns.
type Transaction struct {
	TransactionData

	NumInputs    int
	NumOutputs   int
	TotalRec     float64
	TotalSent    float64
	SentValues   []float64
	RecValues    []float64
	OutAddresses []string
	InAddresses  []string
}

// NewTransaction computes the derived fields of data. Monetary derived fields are
// scaled from base units to display units (1e8 base units per coin).
func NewTransaction(data TransactionData) *Transaction {
	tx := &Transaction{
		TransactionData: data,
		NumInputs:       len(data.Inputs),
		NumOutputs:      len(data.Outputs),
		SentValues:      make([]float64, 0, len(data.Outputs)),
		RecValues:       make([]float64, 0, len(data.Inputs)),
		OutAddresses:    make([]string, 0, len(data.Outputs)),
		InAddresses:     make([]string, 0, len(data.Inputs)),
	}

	var received, sent int64
	for _, in := range data.Inputs {
		received += in.PrevOut.Value
		tx.RecValues = append(tx.RecValues, ToDisplay(in.PrevOut.Value))
		tx.InAddresses = append(tx.InAddresses, in.PrevOut.Addr)
	}
	for _, out := range data.Outputs {
		sent += out.Value
		tx.SentValues = append(tx.SentValues, ToDisplay(out.Value))
		tx.OutAddresses = append(tx.OutAddresses, out.Addr)
	}
	tx.TotalRec = ToDisplay(received)
	tx.TotalSent = ToDisplay(sent)

	return tx
}

// ToDisplay converts an amount in base units to display units.
func ToDisplay(baseUnits int64) float64 {
	return btcutil.Amount(baseUnits).ToBTC()
}

// HighestOutput returns the output with the largest value. Ties resolve to the
// first such output in transaction order. ok is false when there are no outputs.
func (t *Transaction) HighestOutput() (out Output, ok bool) {
	for i, o := range t.Outputs {
		if i == 0 || o.Value > out.Value {
			out = o
		}
	}
	return out, len(t.Outputs) > 0
}

// Payee returns the address an output script pays when it names exactly one.
// Bare multisig, nonstandard and data-carrier outputs have no single payee and
// map to "", as the block explorer reports them.
func Payee(addresses []string) string {
	if len(addresses) != 1 {
		return ""
	}
	return addresses[0]
}

package blockchaininfo

import "github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"

type rawOutput struct {
	Addr  string `json:"addr"`
	Value int64  `json:"value"`
}

type rawInput struct {
	// PrevOut is absent for coinbase inputs.
	PrevOut *rawOutput `json:"prev_out"`
}

type rawTransaction struct {
	Hash        string      `json:"hash"`
	Ver         int64       `json:"ver"`
	Size        int64       `json:"size"`
	Weight      int64       `json:"weight"`
	Fee         int64       `json:"fee"`
	RelayedBy   string      `json:"relayed_by"`
	LockTime    int64       `json:"lock_time"`
	DoubleSpend bool        `json:"double_spend"`
	Time        int64       `json:"time"`
	BlockHeight *int64      `json:"block_height"`
	Inputs      []rawInput  `json:"inputs"`
	Out         []rawOutput `json:"out"`
}

type rawAddressTx struct {
	Hash   string `json:"hash"`
	Result int64  `json:"result"`
}

type rawAddress struct {
	Address       string         `json:"address"`
	NTx           int64          `json:"n_tx"`
	TotalReceived int64          `json:"total_received"`
	TotalSent     int64          `json:"total_sent"`
	FinalBalance  int64          `json:"final_balance"`
	Txs           []rawAddressTx `json:"txs"`
}

func (r rawTransaction) toModel() model.TransactionData {
	data := model.TransactionData{
		Hash:        r.Hash,
		Size:        r.Size,
		Time:        r.Time,
		LockTime:    r.LockTime,
		DoubleSpend: r.DoubleSpend,
		RelayedBy:   r.RelayedBy,
		Fee:         r.Fee,
		Weight:      r.Weight,
		Version:     r.Ver,
		Inputs:      make([]model.Input, 0, len(r.Inputs)),
		Outputs:     make([]model.Output, 0, len(r.Out)),
	}
	if r.BlockHeight != nil {
		data.BlockHeight = *r.BlockHeight
	}
	for _, in := range r.Inputs {
		var prev model.Output
		if in.PrevOut != nil {
			prev = model.Output{Addr: in.PrevOut.Addr, Value: in.PrevOut.Value}
		}
		data.Inputs = append(data.Inputs, model.Input{PrevOut: prev})
	}
	for _, out := range r.Out {
		data.Outputs = append(data.Outputs, model.Output{Addr: out.Addr, Value: out.Value})
	}
	return data
}

func (r rawAddress) toModel() model.AddressData {
	data := model.AddressData{
		Address:       r.Address,
		NTx:           r.NTx,
		FinalBalance:  r.FinalBalance,
		TotalSent:     r.TotalSent,
		TotalReceived: r.TotalReceived,
		Txs:           make([]model.AddressTx, 0, len(r.Txs)),
	}
	for _, tx := range r.Txs {
		data.Txs = append(data.Txs, model.AddressTx{Hash: tx.Hash, Result: tx.Result})
	}
	return data
}

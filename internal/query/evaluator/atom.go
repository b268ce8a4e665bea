package evaluator

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/ast"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

var transactionFields = map[string]func(*model.Transaction) Value{
	"hash":          func(t *model.Transaction) Value { return StringValue(t.Hash) },
	"size":          func(t *model.Transaction) Value { return NumberValue(float64(t.Size)) },
	"time":          func(t *model.Transaction) Value { return NumberValue(float64(t.Time)) },
	"lock_time":     func(t *model.Transaction) Value { return NumberValue(float64(t.LockTime)) },
	"double_spend":  func(t *model.Transaction) Value { return BoolValue(t.DoubleSpend) },
	"relayed_by":    func(t *model.Transaction) Value { return StringValue(t.RelayedBy) },
	"block_height":  func(t *model.Transaction) Value { return NumberValue(float64(t.BlockHeight)) },
	"fee":           func(t *model.Transaction) Value { return NumberValue(float64(t.Fee)) },
	"weight":        func(t *model.Transaction) Value { return NumberValue(float64(t.Weight)) },
	"ver":           func(t *model.Transaction) Value { return NumberValue(float64(t.Version)) },
	"num_inputs":    func(t *model.Transaction) Value { return NumberValue(float64(t.NumInputs)) },
	"num_outputs":   func(t *model.Transaction) Value { return NumberValue(float64(t.NumOutputs)) },
	"total_rec":     func(t *model.Transaction) Value { return NumberValue(t.TotalRec) },
	"total_sent":    func(t *model.Transaction) Value { return NumberValue(t.TotalSent) },
	"sent_values":   func(t *model.Transaction) Value { return numberList(t.SentValues) },
	"rec_values":    func(t *model.Transaction) Value { return numberList(t.RecValues) },
	"out_addresses": func(t *model.Transaction) Value { return stringList(t.OutAddresses) },
	"in_addresses":  func(t *model.Transaction) Value { return stringList(t.InAddresses) },
}

var addressFields = map[string]func(*model.Address) Value{
	"address":        func(a *model.Address) Value { return StringValue(a.Address) },
	"n_tx":           func(a *model.Address) Value { return NumberValue(float64(a.NTx)) },
	"final_balance":  func(a *model.Address) Value { return NumberValue(float64(a.FinalBalance)) },
	"total_sent":     func(a *model.Address) Value { return NumberValue(float64(a.TotalSent)) },
	"total_received": func(a *model.Address) Value { return NumberValue(float64(a.TotalReceived)) },
	"out_txs_hash":   func(a *model.Address) Value { return stringList(a.OutTxsHash) },
	"in_txs_hash":    func(a *model.Address) Value { return stringList(a.InTxsHash) },
}

// resolveAtom reads atom from the entity of its kind held by st.
func resolveAtom(st *State, atom ast.Atom) (Value, error) {
	var (
		v     Value
		found bool
	)
	switch atom.Entity {
	case ast.EntityTransaction:
		if st.tx == nil {
			return Value{}, fmt.Errorf("%w: %s needs a current transaction", ErrNoCurrentEntity, atom)
		}
		var get func(*model.Transaction) Value
		if get, found = transactionFields[atom.Field]; found {
			v = get(st.tx)
		}
	case ast.EntityAddress:
		if st.addr == nil {
			return Value{}, fmt.Errorf("%w: %s needs a current address", ErrNoCurrentEntity, atom)
		}
		var get func(*model.Address) Value
		if get, found = addressFields[atom.Field]; found {
			v = get(st.addr)
		}
	}
	if !found {
		return Value{}, fmt.Errorf("%w: %s.%s", ErrFieldNotFound, atom.Entity, atom.Field)
	}

	if atom.Index == nil {
		return v, nil
	}
	if v.Kind != KindList {
		return Value{}, fmt.Errorf("%w: %s is a %s", ErrNotIndexable, atom, v.Kind)
	}
	i := *atom.Index
	if i < 0 || i >= len(v.List) {
		return Value{}, fmt.Errorf("%w: %s has %d elements", ErrIndexOutOfRange, atom, len(v.List))
	}
	return v.List[i], nil
}

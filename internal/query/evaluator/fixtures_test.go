package evaluator

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/parser"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
)

const sampleHash = "7a51a014f6bd3ccad3a403a99ad525f1aff310fbffe904bada56440d4abeba7f"

type fixtures struct {
	txs   map[string]*model.Transaction
	addrs map[string]*model.Address
}

func newFixtures() fixtures {
	return fixtures{
		txs:   make(map[string]*model.Transaction),
		addrs: make(map[string]*model.Address),
	}
}

func (f fixtures) addTx(data model.TransactionData) fixtures {
	f.txs[data.Hash] = model.NewTransaction(data)
	return f
}

func (f fixtures) addAddr(data model.AddressData) fixtures {
	f.addrs[data.Address] = model.NewAddress(data)
	return f
}

// provider serves the fixtures; unknown keys are ErrNotFound.
func (f fixtures) provider(ctrl *gomock.Controller) *MockProvider {
	p := NewMockProvider(ctrl)
	p.EXPECT().FetchTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, hash string) (*model.Transaction, error) {
			if tx, ok := f.txs[hash]; ok {
				return tx, nil
			}
			return nil, fmt.Errorf("transaction %s: %w", hash, provider.ErrNotFound)
		}).AnyTimes()
	p.EXPECT().FetchAddress(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, address string) (*model.Address, error) {
			if addr, ok := f.addrs[address]; ok {
				return addr, nil
			}
			return nil, fmt.Errorf("address %s: %w", address, provider.ErrNotFound)
		}).AnyTimes()
	return p
}

func txID(i int) string   { return fmt.Sprintf("tx%d", i) }
func addrID(i int) string { return fmt.Sprintf("addr%d", i) }

// newChain links tx0 -> addr0 -> tx1 -> addr1 -> ... -> tx<length>. Every
// tx<i> sends its largest output to addr<i>, and addr<i> spends the most in
// tx<i+1>. addr<length> is unknown, so the chain ends after tx<length>.
func newChain(length int) fixtures {
	f := newFixtures()
	for i := 0; i <= length; i++ {
		data := model.TransactionData{
			Hash: txID(i),
			Size: int64(200 + i),
			Outputs: []model.Output{
				{Addr: fmt.Sprintf("change%d", i), Value: 50_000},
				{Addr: addrID(i), Value: 900_000},
			},
		}
		if i > 0 {
			data.Inputs = []model.Input{{PrevOut: model.Output{Addr: addrID(i - 1), Value: 1_000_000}}}
		}
		f.addTx(data)
	}
	for i := 0; i < length; i++ {
		f.addAddr(model.AddressData{
			Address: addrID(i),
			NTx:     3,
			Txs: []model.AddressTx{
				{Hash: txID(i), Result: 900_000},
				{Hash: "dust" + txID(i), Result: -10},
				{Hash: txID(i + 1), Result: -1_000_000},
			},
		})
	}
	return f
}

func sampleTransaction() model.TransactionData {
	return model.TransactionData{
		Hash:        sampleHash,
		Size:        225,
		Time:        1664289786,
		LockTime:    755924,
		DoubleSpend: false,
		RelayedBy:   "0.0.0.0",
		Inputs: []model.Input{
			{PrevOut: model.Output{Addr: "X", Value: 200_010_000}},
		},
		Outputs: []model.Output{
			{Addr: "A", Value: 150_000_000},
			{Addr: "B", Value: 50_000_000},
			{Addr: "C", Value: 1_000},
		},
	}
}

func newTestEvaluator(t *testing.T, f fixtures) *Evaluator {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ev, err := NewEvaluator(f.provider(ctrl), nil, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	return ev
}

func evaluate(t *testing.T, ev *Evaluator, query string) (Result, error) {
	t.Helper()
	q, err := parser.Parse(query)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", query, err)
	}
	return ev.Evaluate(context.Background(), q)
}

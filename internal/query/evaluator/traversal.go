package evaluator

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/ast"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

// Traverser follows the largest value flow between transactions and addresses.
type Traverser struct {
	provider Provider
}

// NewTraverser builds a Traverser reading entities from provider.
func NewTraverser(provider Provider) *Traverser {
	return &Traverser{provider: provider}
}

// AdvanceFromTransaction moves from tx to the address receiving its highest
// output, then to that address's transaction with the largest outflow.
func (t *Traverser) AdvanceFromTransaction(ctx context.Context, tx *model.Transaction) (*State, error) {
	addr, err := t.toAddress(ctx, tx)
	if err != nil {
		return nil, err
	}
	next, err := t.toTransaction(ctx, addr)
	if err != nil {
		return nil, err
	}
	return NewState(next, addr), nil
}

// AdvanceFromAddress moves from addr to its transaction with the largest
// outflow, then to the address receiving that transaction's highest output.
func (t *Traverser) AdvanceFromAddress(ctx context.Context, addr *model.Address) (*State, error) {
	tx, err := t.toTransaction(ctx, addr)
	if err != nil {
		return nil, err
	}
	next, err := t.toAddress(ctx, tx)
	if err != nil {
		return nil, err
	}
	return NewState(tx, next), nil
}

// Advance performs one step over entity. When st does not hold an entity of
// that kind yet, the step is the single hop from the entity it does hold.
func (t *Traverser) Advance(ctx context.Context, st *State, entity ast.Entity) (*State, error) {
	switch entity {
	case ast.EntityTransaction:
		if st.tx != nil {
			return t.AdvanceFromTransaction(ctx, st.tx)
		}
		if st.addr != nil {
			tx, err := t.toTransaction(ctx, st.addr)
			if err != nil {
				return nil, err
			}
			return st.WithTransaction(tx), nil
		}
	case ast.EntityAddress:
		if st.addr != nil {
			return t.AdvanceFromAddress(ctx, st.addr)
		}
		if st.tx != nil {
			addr, err := t.toAddress(ctx, st.tx)
			if err != nil {
				return nil, err
			}
			return st.WithAddress(addr), nil
		}
	default:
		return nil, fmt.Errorf("cannot traverse %s", entity)
	}
	return nil, fmt.Errorf("%w: nothing to traverse from", ErrNoCurrentEntity)
}

func (t *Traverser) toAddress(ctx context.Context, tx *model.Transaction) (*model.Address, error) {
	out, ok := tx.HighestOutput()
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s has no outputs", ErrChainEnd, tx.Hash)
	}
	if out.Addr == "" {
		return nil, fmt.Errorf("%w: highest output of transaction %s has no address", ErrChainEnd, tx.Hash)
	}
	addr, err := t.provider.FetchAddress(ctx, out.Addr)
	if err != nil {
		return nil, fmt.Errorf("fetch address %s: %w", out.Addr, err)
	}
	return addr, nil
}

func (t *Traverser) toTransaction(ctx context.Context, addr *model.Address) (*model.Transaction, error) {
	atx, ok := addr.LargestOutflow()
	if !ok {
		return nil, fmt.Errorf("%w: address %s has no transactions", ErrChainEnd, addr.Address)
	}
	tx, err := t.provider.FetchTransaction(ctx, atx.Hash)
	if err != nil {
		return nil, fmt.Errorf("fetch transaction %s: %w", atx.Hash, err)
	}
	return tx, nil
}

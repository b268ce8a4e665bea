package evaluator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/ast"
)

// Dispatcher is the recursive evaluation capability handed to operators.
type Dispatcher interface {
	// Eval evaluates p against st and returns the context the evaluation ended in.
	Eval(ctx context.Context, st *State, p ast.Predicate) (bool, *State, error)
	// Advance performs one traversal step over entity. A chain that cannot
	// continue yields an error matching ErrChainEnd.
	Advance(ctx context.Context, st *State, entity ast.Entity) (*State, error)
}

// Operands are the subtrees an operator is applied to. Bound is only set for quantifiers.
type Operands struct {
	Bound int
	Args  []ast.Predicate
}

// Operator implements one connective or quantifier.
type Operator interface {
	Apply(ctx context.Context, d Dispatcher, st *State, ops Operands) (bool, *State, error)
}

// OperatorFunc adapts a function to Operator.
type OperatorFunc func(ctx context.Context, d Dispatcher, st *State, ops Operands) (bool, *State, error)

// Apply calls f.
func (f OperatorFunc) Apply(ctx context.Context, d Dispatcher, st *State, ops Operands) (bool, *State, error) {
	return f(ctx, d, st, ops)
}

// Registry maps operators to their implementations.
type Registry map[ast.Operator]Operator

// DefaultRegistry returns a registry with every operator of the language.
func DefaultRegistry() Registry {
	return Registry{
		ast.OpAnd:    OperatorFunc(and),
		ast.OpOr:     OperatorFunc(or),
		ast.OpNot:    OperatorFunc(not),
		ast.OpGtrans: quantifier{entity: ast.EntityTransaction, mode: forAll},
		ast.OpFtrans: quantifier{entity: ast.EntityTransaction, mode: exists},
		ast.OpXtrans: quantifier{entity: ast.EntityTransaction, mode: next},
		ast.OpGaddr:  quantifier{entity: ast.EntityAddress, mode: forAll},
		ast.OpFaddr:  quantifier{entity: ast.EntityAddress, mode: exists},
	}
}

func and(ctx context.Context, d Dispatcher, st *State, ops Operands) (bool, *State, error) {
	left, right, st, err := evalBoth(ctx, d, st, ops)
	return left && right, st, err
}

func or(ctx context.Context, d Dispatcher, st *State, ops Operands) (bool, *State, error) {
	left, right, st, err := evalBoth(ctx, d, st, ops)
	return left || right, st, err
}

// evalBoth evaluates both operands left to right, the right one in the
// context the left one ended in.
func evalBoth(ctx context.Context, d Dispatcher, st *State, ops Operands) (bool, bool, *State, error) {
	if len(ops.Args) != 2 {
		return false, false, st, fmt.Errorf("%w: binary operator got %d", ErrOperandCount, len(ops.Args))
	}
	left, st, err := d.Eval(ctx, st, ops.Args[0])
	if err != nil {
		return false, false, st, err
	}
	right, st, err := d.Eval(ctx, st, ops.Args[1])
	if err != nil {
		return false, false, st, err
	}
	return left, right, st, nil
}

func not(ctx context.Context, d Dispatcher, st *State, ops Operands) (bool, *State, error) {
	if len(ops.Args) != 1 {
		return false, st, fmt.Errorf("%w: Not got %d", ErrOperandCount, len(ops.Args))
	}
	v, st, err := d.Eval(ctx, st, ops.Args[0])
	if err != nil {
		return false, st, err
	}
	return !v, st, nil
}

type quantifierMode int

const (
	forAll quantifierMode = iota + 1
	exists
	next
)

// quantifier advances the context Bound times and evaluates the body after
// every step. When the chain ends early only the steps actually reached count:
// forAll holds vacuously, exists and next do not.
type quantifier struct {
	entity ast.Entity
	mode   quantifierMode
}

func (q quantifier) Apply(ctx context.Context, d Dispatcher, st *State, ops Operands) (bool, *State, error) {
	if len(ops.Args) != 1 {
		return false, st, fmt.Errorf("%w: quantifier got %d", ErrOperandCount, len(ops.Args))
	}
	if ops.Bound < 1 || (q.mode == next && ops.Bound != 1) {
		return false, st, fmt.Errorf("%w: %d", ErrInvalidBound, ops.Bound)
	}

	result := q.mode == forAll
	for i := 0; i < ops.Bound; i++ {
		stepped, err := d.Advance(ctx, st, q.entity)
		if errors.Is(err, ErrChainEnd) {
			break
		}
		if err != nil {
			return false, st, err
		}

		ok, after, err := d.Eval(ctx, stepped, ops.Args[0])
		if err != nil {
			return false, st, err
		}
		st = after

		switch q.mode {
		case forAll:
			result = result && ok
		case exists:
			result = result || ok
		case next:
			result = ok
		}
	}
	return result, st, nil
}

// Package evaluator walks a parsed query against entities fetched from a data
// provider.
//
// Evaluation is single threaded per query. All per-query state lives in the
// State values threaded through Eval, so one Evaluator can serve concurrent
// queries.
package evaluator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/ast"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
)

// Traversal step outcomes reported to Metrics.
const (
	StepAdvanced = "advanced"
	StepChainEnd = "chain_end"
	StepFailed   = "error"
)

// Result is the outcome of one query.
type Result struct {
	Node  string
	Value bool
}

// Evaluator evaluates queries.
type Evaluator struct {
	provider  Provider
	traverser *Traverser
	registry  Registry
	metrics   Metrics
	logger    *zap.Logger
}

// NewEvaluator builds an Evaluator. A nil registry selects DefaultRegistry and
// nil metrics disable step metrics.
func NewEvaluator(p Provider, registry Registry, metrics Metrics, logger *zap.Logger) (*Evaluator, error) {
	if p == nil {
		return nil, errors.New("evaluator provider is required")
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Evaluator{
		provider:  p,
		traverser: NewTraverser(p),
		registry:  registry,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Evaluate fetches the root entity of q and evaluates its predicate.
func (e *Evaluator) Evaluate(ctx context.Context, q *ast.Query) (Result, error) {
	st, err := e.root(ctx, q.Root)
	if err != nil {
		return Result{}, err
	}
	v, _, err := e.Eval(ctx, st, q.Predicate)
	if err != nil {
		return Result{}, err
	}
	return Result{Node: q.Root.ID, Value: v}, nil
}

func (e *Evaluator) root(ctx context.Context, root ast.Root) (*State, error) {
	switch root.Entity {
	case ast.EntityTransaction:
		tx, err := e.provider.FetchTransaction(ctx, root.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch root transaction %s: %w", root.ID, err)
		}
		return NewState(tx, nil), nil
	case ast.EntityAddress:
		addr, err := e.provider.FetchAddress(ctx, root.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch root address %s: %w", root.ID, err)
		}
		return NewState(nil, addr), nil
	default:
		return nil, fmt.Errorf("unsupported root entity %s", root.Entity)
	}
}

// Eval evaluates p against st. It returns the context the evaluation ended in,
// which differs from st when p contains a quantifier.
func (e *Evaluator) Eval(ctx context.Context, st *State, p ast.Predicate) (bool, *State, error) {
	if err := ctx.Err(); err != nil {
		return false, st, err
	}

	switch n := p.(type) {
	case *ast.Group:
		return e.Eval(ctx, st, n.Inner)
	case *ast.Binary:
		return e.dispatch(ctx, st, n.Op, Operands{Args: []ast.Predicate{n.Left, n.Right}})
	case *ast.Unary:
		return e.dispatch(ctx, st, n.Op, Operands{Args: []ast.Predicate{n.Operand}})
	case *ast.Quantifier:
		return e.dispatch(ctx, st, n.Op, Operands{Bound: n.Bound, Args: []ast.Predicate{n.Body}})
	case *ast.Comparison:
		v, err := e.comparison(st, n)
		return e.leaf(n, n.Entity(), v, st, err)
	case *ast.Membership:
		v, err := e.membership(st, n)
		return e.leaf(n, n.Entity(), v, st, err)
	case nil:
		return false, st, errors.New("empty predicate")
	default:
		return false, st, fmt.Errorf("unsupported predicate node %T", p)
	}
}

func (e *Evaluator) dispatch(ctx context.Context, st *State, op ast.Operator, ops Operands) (bool, *State, error) {
	impl, ok := e.registry[op]
	if !ok {
		return false, st, fmt.Errorf("%w: %s", ErrUnknownOperator, op)
	}
	return impl.Apply(ctx, e, st, ops)
}

func (e *Evaluator) leaf(p ast.Predicate, entity ast.Entity, v bool, st *State, err error) (bool, *State, error) {
	if err != nil {
		return false, st, fmt.Errorf("evaluate %s: %w", formatPredicate(p), err)
	}
	e.logger.Debug("expression evaluated",
		zap.Stringer("entity", entity),
		zap.Stringer("expression", expression{p}),
		zap.Bool("result", v),
	)
	return v, st, nil
}

var formatPredicate = ast.Format

// expression renders a predicate only when a log entry is written.
type expression struct {
	p ast.Predicate
}

func (e expression) String() string {
	return formatPredicate(e.p)
}

func (e *Evaluator) comparison(st *State, c *ast.Comparison) (bool, error) {
	left, err := resolveAtom(st, c.Left)
	if err != nil {
		return false, err
	}
	var right Value
	switch r := c.Right.(type) {
	case ast.Atom:
		right, err = resolveAtom(st, r)
	case ast.Literal:
		right, err = literalValue(r)
	default:
		err = fmt.Errorf("unsupported operand %T", c.Right)
	}
	if err != nil {
		return false, err
	}
	return compare(c.Op, left, right)
}

func (e *Evaluator) membership(st *State, m *ast.Membership) (bool, error) {
	element, err := literalValue(m.Element)
	if err != nil {
		return false, err
	}
	set, err := resolveAtom(st, m.Set)
	if err != nil {
		return false, err
	}
	return contains(set, element)
}

// Resolve returns the value atom has in st.
func (e *Evaluator) Resolve(st *State, atom ast.Atom) (Value, error) {
	return resolveAtom(st, atom)
}

// Advance performs one traversal step. Missing or unreachable entities end the
// chain: such failures are reported as ErrChainEnd. Context errors propagate.
func (e *Evaluator) Advance(ctx context.Context, st *State, entity ast.Entity) (*State, error) {
	next, err := e.traverser.Advance(ctx, st, entity)
	if err != nil && ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		err = fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	switch {
	case err == nil:
		e.metrics.ObserveStep(entity.String(), StepAdvanced)
		e.logger.Debug("traversal step",
			zap.Stringer("entity", entity),
			zap.String("transaction", hashOf(next)),
			zap.String("address", addressOf(next)),
		)
		return next, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		e.metrics.ObserveStep(entity.String(), StepFailed)
		return nil, err
	case errors.Is(err, ErrChainEnd):
		e.metrics.ObserveStep(entity.String(), StepChainEnd)
		e.logger.Debug("traversal chain ended", zap.Stringer("entity", entity), zap.Error(err))
		return nil, err
	case errors.Is(err, provider.ErrNotFound), errors.Is(err, provider.ErrUnavailable):
		e.metrics.ObserveStep(entity.String(), StepChainEnd)
		e.logger.Warn("traversal fetch failed, ending chain", zap.Stringer("entity", entity), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrChainEnd, err)
	default:
		e.metrics.ObserveStep(entity.String(), StepFailed)
		return nil, err
	}
}

func hashOf(st *State) string {
	if st.tx == nil {
		return ""
	}
	return st.tx.Hash
}

func addressOf(st *State) string {
	if st.addr == nil {
		return ""
	}
	return st.addr.Address
}

type nopMetrics struct{}

func (nopMetrics) ObserveStep(string, string) {}

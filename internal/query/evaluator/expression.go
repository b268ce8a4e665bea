package evaluator

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/ast"
)

// literalValue normalizes a literal: HEX and IP tags only mark string
// literals, so all three string kinds compare as plain strings.
func literalValue(lit ast.Literal) (Value, error) {
	switch lit.Kind {
	case ast.LiteralNumber:
		return NumberValue(lit.Number), nil
	case ast.LiteralBool:
		return BoolValue(lit.Bool), nil
	case ast.LiteralString, ast.LiteralHex, ast.LiteralIP:
		return StringValue(lit.Text), nil
	default:
		return Value{}, fmt.Errorf("%w: unknown literal kind %s", ErrTypeMismatch, lit.Kind)
	}
}

func compare(op ast.CompareOp, left, right Value) (bool, error) {
	if left.Kind != right.Kind {
		return false, fmt.Errorf("%w: cannot compare %s with %s", ErrTypeMismatch, left.Kind, right.Kind)
	}
	switch op {
	case ast.OpEqual:
		if left.Kind == KindList {
			return false, fmt.Errorf("%w: %s does not support %s", ErrTypeMismatch, left.Kind, op)
		}
		return left.Equal(right), nil
	case ast.OpLess, ast.OpGreater:
		if left.Kind != KindNumber {
			return false, fmt.Errorf("%w: %s is not ordered", ErrTypeMismatch, left.Kind)
		}
		if op == ast.OpLess {
			return left.Num < right.Num, nil
		}
		return left.Num > right.Num, nil
	default:
		return false, fmt.Errorf("unknown comparison operator %q", string(op))
	}
}

func contains(set, element Value) (bool, error) {
	if set.Kind != KindList {
		return false, fmt.Errorf("%w: membership needs a list, got %s", ErrTypeMismatch, set.Kind)
	}
	for _, item := range set.List {
		if item.Equal(element) {
			return true, nil
		}
	}
	return false, nil
}

package evaluator

import (
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/ast"
)

var (
	// ErrUnknownOperator reports an operator without a registered implementation.
	ErrUnknownOperator = ast.ErrUnknownOperator
	// ErrFieldNotFound reports a field name the entity does not expose.
	ErrFieldNotFound = errors.New("field not found")
	// ErrIndexOutOfRange reports an index outside the bounds of a sequence field.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotIndexable reports an index applied to a scalar field.
	ErrNotIndexable = errors.New("field is not indexable")
	// ErrTypeMismatch reports operands of incompatible kinds.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNoCurrentEntity reports an atom or step over an entity the context does not hold.
	ErrNoCurrentEntity = errors.New("no current entity")
	// ErrInvalidBound reports a quantifier bound outside its allowed range.
	ErrInvalidBound = errors.New("invalid quantifier bound")
	// ErrOperandCount reports an operator applied to the wrong number of operands.
	ErrOperandCount = errors.New("wrong number of operands")
	// ErrChainEnd reports that a traversal step found no next entity.
	ErrChainEnd = errors.New("traversal chain ended")
)

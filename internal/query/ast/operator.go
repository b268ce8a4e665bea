package ast

import (
	"errors"
	"fmt"
)

// Operator is the closed set of boolean connectives and traversal quantifiers.
type Operator int

const (
	OpAnd Operator = iota + 1
	OpOr
	OpNot
	OpGtrans
	OpFtrans
	OpXtrans
	OpGaddr
	OpFaddr
)

var operatorNames = map[Operator]string{
	OpAnd:    "And",
	OpOr:     "Or",
	OpNot:    "Not",
	OpGtrans: "Gtrans",
	OpFtrans: "Ftrans",
	OpXtrans: "Xtrans",
	OpGaddr:  "Gaddr",
	OpFaddr:  "Faddr",
}

var operatorsByName = func() map[string]Operator {
	m := make(map[string]Operator, len(operatorNames))
	for op, name := range operatorNames {
		m[name] = op
	}
	return m
}()

// Operators lists every operator in declaration order.
func Operators() []Operator {
	return []Operator{OpAnd, OpOr, OpNot, OpGtrans, OpFtrans, OpXtrans, OpGaddr, OpFaddr}
}

// LookupOperator maps an operator token to its Operator by exact lexical name.
func LookupOperator(name string) (Operator, bool) {
	op, ok := operatorsByName[name]
	return op, ok
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// IsQuantifier reports whether o takes a bound and walks the entity graph.
func (o Operator) IsQuantifier() bool {
	switch o {
	case OpGtrans, OpFtrans, OpXtrans, OpGaddr, OpFaddr:
		return true
	default:
		return false
	}
}

// Traverses reports which entity kind a quantifier steps over.
func (o Operator) Traverses() (Entity, bool) {
	switch o {
	case OpGtrans, OpFtrans, OpXtrans:
		return EntityTransaction, true
	case OpGaddr, OpFaddr:
		return EntityAddress, true
	default:
		return 0, false
	}
}

// ErrUnknownOperator reports an operator token outside the closed operator set.
var ErrUnknownOperator = errors.New("unknown operator")

// Package ast defines the syntax tree of the query language.
//
// Every grammar production has its own node type. Predicate and Operand are
// closed interfaces: only the types declared here implement them.
package ast

import "fmt"

// Entity names the kind of record a root or an atom refers to.
type Entity int

const (
	EntityTransaction Entity = iota + 1
	EntityAddress
)

func (e Entity) String() string {
	switch e {
	case EntityTransaction:
		return "Transaction"
	case EntityAddress:
		return "Address"
	default:
		return fmt.Sprintf("Entity(%d)", int(e))
	}
}

// Query is the root node: From <entity> <id> Check <predicate>.
type Query struct {
	Root      Root
	Predicate Predicate
}

// Root selects the entity the evaluation starts from.
type Root struct {
	Entity Entity
	ID     string
}

// Predicate is a node that evaluates to a boolean.
type Predicate interface {
	predicate()
}

// Group is a parenthesised predicate.
type Group struct {
	Inner Predicate
}

// Binary is an infix connective (And, Or).
type Binary struct {
	Op    Operator
	Left  Predicate
	Right Predicate
}

// Unary is a prefix connective (Not).
type Unary struct {
	Op      Operator
	Operand Predicate
}

// Quantifier is a traversal operator applied Bound times to Body.
type Quantifier struct {
	Op    Operator
	Bound int
	Body  Predicate
}

// Comparison is Atom <op> (Literal | Atom).
type Comparison struct {
	Left  Atom
	Op    CompareOp
	Right Operand
}

// Membership is Literal in Atom.
type Membership struct {
	Element Literal
	Set     Atom
}

func (*Group) predicate()      {}
func (*Binary) predicate()     {}
func (*Unary) predicate()      {}
func (*Quantifier) predicate() {}
func (*Comparison) predicate() {}
func (*Membership) predicate() {}

// Entity reports which entity a leaf expression reads, distinguishing
// transaction expressions from address expressions.
func (c *Comparison) Entity() Entity { return c.Left.Entity }

// Entity reports which entity the membership set is read from.
func (m *Membership) Entity() Entity { return m.Set.Entity }

// Operand is the right-hand side of a comparison.
type Operand interface {
	operand()
}

// Atom is Entity.field, optionally indexed: Entity.field[i].
type Atom struct {
	Entity Entity
	Field  string
	Index  *int
}

func (Atom) operand() {}

// Indexed reports whether the atom carries an index.
func (a Atom) Indexed() bool { return a.Index != nil }

func (a Atom) String() string {
	if a.Index != nil {
		return fmt.Sprintf("%s.%s[%d]", a.Entity, a.Field, *a.Index)
	}
	return fmt.Sprintf("%s.%s", a.Entity, a.Field)
}

// CompareOp is a comparison operator.
type CompareOp string

const (
	OpEqual   CompareOp = "="
	OpLess    CompareOp = "<"
	OpGreater CompareOp = ">"
)

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a predicate back to query text. Groups keep their parentheses,
// so parsing the result yields an equal tree.
func Format(p Predicate) string {
	var b strings.Builder
	format(&b, p)
	return b.String()
}

// String renders the whole query.
func (q *Query) String() string {
	return fmt.Sprintf("From %s %s Check %s", q.Root.Entity, q.Root.ID, Format(q.Predicate))
}

func format(b *strings.Builder, p Predicate) {
	switch n := p.(type) {
	case *Group:
		b.WriteByte('(')
		format(b, n.Inner)
		b.WriteByte(')')
	case *Binary:
		format(b, n.Left)
		b.WriteString(" " + n.Op.String() + " ")
		format(b, n.Right)
	case *Unary:
		b.WriteString(n.Op.String() + " ")
		format(b, n.Operand)
	case *Quantifier:
		b.WriteString(n.Op.String() + " " + strconv.Itoa(n.Bound) + " ")
		format(b, n.Body)
	case *Comparison:
		b.WriteString(n.Left.String() + " " + string(n.Op) + " ")
		switch r := n.Right.(type) {
		case Atom:
			b.WriteString(r.String())
		case Literal:
			b.WriteString(r.String())
		}
	case *Membership:
		b.WriteString(n.Element.String() + " in " + n.Set.String())
	case nil:
		b.WriteString("<nil>")
	default:
		fmt.Fprintf(b, "<%T>", p)
	}
}

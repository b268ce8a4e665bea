package ast

import (
	"fmt"
	"strconv"
)

// LiteralKind is the tag the parser assigns to a literal token.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota + 1
	LiteralBool
	LiteralString
	LiteralHex
	LiteralIP
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralBool:
		return "bool"
	case LiteralString:
		return "string"
	case LiteralHex:
		return "hex"
	case LiteralIP:
		return "ip"
	default:
		return fmt.Sprintf("LiteralKind(%d)", int(k))
	}
}

// Literal is a constant token. Text holds the string form for string-like
// kinds; Number and Bool hold the parsed value of the other kinds.
type Literal struct {
	Kind   LiteralKind
	Text   string
	Number float64
	Bool   bool
}

func (Literal) operand() {}

// NumberLiteral builds a numeric literal.
func NumberLiteral(v float64) Literal {
	return Literal{Kind: LiteralNumber, Number: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// BoolLiteral builds a boolean literal.
func BoolLiteral(v bool) Literal {
	text := "False"
	if v {
		text = "True"
	}
	return Literal{Kind: LiteralBool, Bool: v, Text: text}
}

// StringLiteral builds a plain string literal.
func StringLiteral(s string) Literal {
	return Literal{Kind: LiteralString, Text: s}
}

// HexLiteral builds a HEX-tagged string literal.
func HexLiteral(s string) Literal {
	return Literal{Kind: LiteralHex, Text: s}
}

// IPLiteral builds an IP-tagged string literal.
func IPLiteral(s string) Literal {
	return Literal{Kind: LiteralIP, Text: s}
}

func (l Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return strconv.Quote(l.Text)
	case LiteralHex:
		return "HEX " + l.Text
	case LiteralIP:
		return "IP " + l.Text
	default:
		return l.Text
	}
}

package evaluator

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the normalized kind of a resolved value.
type Kind int

const (
	KindNumber Kind = iota + 1
	KindString
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a resolved field or literal.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
	List []Value
}

// NumberValue wraps a number.
func NumberValue(v float64) Value { return Value{Kind: KindNumber, Num: v} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// ListValue wraps a sequence.
func ListValue(items ...Value) Value { return Value{Kind: KindList, List: items} }

func numberList(vs []float64) Value {
	items := make([]Value, len(vs))
	for i, v := range vs {
		items[i] = NumberValue(v)
	}
	return ListValue(items...)
}

func stringList(vs []string) Value {
	items := make([]Value, len(vs))
	for i, v := range vs {
		items[i] = StringValue(v)
	}
	return ListValue(items...)
}

// Equal reports whether v and other have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == other.Num
	case KindString:
		return v.Str == other.Str
	case KindBool:
		return v.Bool == other.Bool
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return strconv.Quote(v.Str)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<invalid>"
	}
}

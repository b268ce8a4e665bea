// Package parser turns query text into an ast.Query.
//
//	query      := "From" ("Transaction" | "Address") WORD "Check" predicate
//	predicate  := and { "Or" and }
//	and        := unary { "And" unary }
//	unary      := "Not" unary | QUANTIFIER INT unary | "Xtrans" [INT] unary | primary
//	primary    := "(" predicate ")" | literal "in" atom | atom CMP (literal | atom)
//	atom       := ("Transaction" | "Address") "." IDENT [ "[" INT "]" ]
//	literal    := NUMBER | "True" | "False" | STRING | "HEX" WORD | "IP" WORD
package parser

import (
	"fmt"
	"math"
	"net/netip"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/ast"
)

// SyntaxError describes why and where the query text could not be parsed.
type SyntaxError struct {
	Offset int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

const (
	kwFrom        = "From"
	kwCheck       = "Check"
	kwIn          = "in"
	kwTransaction = "Transaction"
	kwAddress     = "Address"
	kwTrue        = "True"
	kwFalse       = "False"
	kwHex         = "HEX"
	kwIP          = "IP"
)

// Parse parses a single query.
func Parse(text string) (*ast.Query, error) {
	p := &parser{lex: lexer{src: text}}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p.parseQuery()
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) next() error {
	tok, err := p.lex.scan(p.tok.end)
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// nextWord replaces the lookahead with a raw word that starts after the current token.
func (p *parser) nextWord() error {
	tok, err := p.lex.scanWord(p.tok.end)
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// peek scans the token after the lookahead without consuming anything.
func (p *parser) peek() (token, error) {
	return p.lex.scan(p.tok.end)
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.tok.start, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) isKeyword(kw string) bool {
	return p.tok.kind == tokIdent && p.tok.text == kw
}

func (p *parser) expectKeyword(kw string) error {
	if !p.isKeyword(kw) {
		return p.errorf("expected %q, got %s", kw, p.tok.describe())
	}
	return p.next()
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.tok
	if tok.kind != kind {
		return tok, p.errorf("expected %s, got %s", kind, tok.describe())
	}
	return tok, p.next()
}

func (p *parser) parseQuery() (*ast.Query, error) {
	if err := p.expectKeyword(kwFrom); err != nil {
		return nil, err
	}
	entity, ok := entityKeyword(p.tok)
	if !ok {
		return nil, p.errorf("expected %q or %q, got %s", kwTransaction, kwAddress, p.tok.describe())
	}
	if err := p.nextWord(); err != nil {
		return nil, err
	}
	root := ast.Root{Entity: entity, ID: p.tok.text}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(kwCheck); err != nil {
		return nil, err
	}

	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s after predicate", p.tok.describe())
	}
	return &ast.Query{Root: root, Predicate: pred}, nil
}

func (p *parser) parseOr() (ast.Predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword(ast.OpOr.String()) {
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Predicate, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isKeyword(ast.OpAnd.String()) {
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (ast.Predicate, error) {
	if p.tok.kind != tokIdent {
		return p.parsePrimary()
	}
	op, ok := ast.LookupOperator(p.tok.text)
	switch {
	case !ok:
		return p.parsePrimary()
	case op == ast.OpNot:
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Operand: operand}, nil
	case op.IsQuantifier():
		return p.parseQuantifier(op)
	default:
		return nil, p.errorf("operator %s needs a left operand", op)
	}
}

func (p *parser) parseQuantifier(op ast.Operator) (ast.Predicate, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	bound := 1
	hasBound := p.tok.kind == tokNumber
	if hasBound && op == ast.OpXtrans {
		// Xtrans 5 in Transaction.sent_values reads the number as a literal.
		after, err := p.peek()
		if err != nil {
			return nil, err
		}
		hasBound = !(after.kind == tokIdent && after.text == kwIn)
	}
	switch {
	case hasBound:
		n, err := p.parseBound()
		if err != nil {
			return nil, err
		}
		if op == ast.OpXtrans && n != 1 {
			return nil, p.errorf("%s advances exactly one step, bound must be 1", op)
		}
		bound = n
		if err := p.next(); err != nil {
			return nil, err
		}
	case op != ast.OpXtrans:
		return nil, p.errorf("%s requires a bound, got %s", op, p.tok.describe())
	}

	body, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Quantifier{Op: op, Bound: bound, Body: body}, nil
}

func (p *parser) parseBound() (int, error) {
	n, err := strconv.Atoi(p.tok.text)
	if err != nil || n < 1 {
		return 0, p.errorf("bound must be a positive integer, got %s", p.tok.describe())
	}
	return n, nil
}

func (p *parser) parsePrimary() (ast.Predicate, error) {
	if p.tok.kind == tokLParen {
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &ast.Group{Inner: inner}, nil
	}

	if _, ok := entityKeyword(p.tok); ok {
		return p.parseComparison()
	}
	if p.startsLiteral() {
		return p.parseMembership()
	}
	if p.tok.kind == tokIdent && isCapitalized(p.tok.text) {
		return nil, &SyntaxError{
			Offset: p.tok.start,
			Msg:    fmt.Sprintf("unknown operator %q", p.tok.text),
			Err:    ast.ErrUnknownOperator,
		}
	}
	return nil, p.errorf("expected expression, got %s", p.tok.describe())
}

func (p *parser) parseComparison() (ast.Predicate, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	var op ast.CompareOp
	switch p.tok.kind {
	case tokEqual:
		op = ast.OpEqual
	case tokLess:
		op = ast.OpLess
	case tokGreater:
		op = ast.OpGreater
	default:
		return nil, p.errorf("expected comparison operator after %s, got %s", left, p.tok.describe())
	}
	if err := p.next(); err != nil {
		return nil, err
	}

	var right ast.Operand
	if _, ok := entityKeyword(p.tok); ok {
		right, err = p.parseAtom()
	} else {
		right, err = p.parseLiteral()
	}
	if err != nil {
		return nil, err
	}
	return &ast.Comparison{Left: left, Op: op, Right: right}, nil
}

func (p *parser) parseMembership() (ast.Predicate, error) {
	element, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(kwIn); err != nil {
		return nil, err
	}
	set, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return &ast.Membership{Element: element, Set: set}, nil
}

func (p *parser) parseAtom() (ast.Atom, error) {
	entity, ok := entityKeyword(p.tok)
	if !ok {
		return ast.Atom{}, p.errorf("expected %q or %q, got %s", kwTransaction, kwAddress, p.tok.describe())
	}
	if err := p.next(); err != nil {
		return ast.Atom{}, err
	}
	if _, err := p.expect(tokDot); err != nil {
		return ast.Atom{}, err
	}
	field, err := p.expect(tokIdent)
	if err != nil {
		return ast.Atom{}, err
	}
	atom := ast.Atom{Entity: entity, Field: field.text}

	if p.tok.kind != tokLBracket {
		return atom, nil
	}
	if err := p.next(); err != nil {
		return ast.Atom{}, err
	}
	idxTok, err := p.expect(tokNumber)
	if err != nil {
		return ast.Atom{}, err
	}
	idx, err := strconv.Atoi(idxTok.text)
	if err != nil {
		return ast.Atom{}, &SyntaxError{Offset: idxTok.start, Msg: fmt.Sprintf("index must be an integer, got %q", idxTok.text)}
	}
	if _, err := p.expect(tokRBracket); err != nil {
		return ast.Atom{}, err
	}
	atom.Index = &idx
	return atom, nil
}

func (p *parser) startsLiteral() bool {
	switch p.tok.kind {
	case tokNumber, tokString:
		return true
	case tokIdent:
		switch p.tok.text {
		case kwTrue, kwFalse, kwHex, kwIP:
			return true
		}
	}
	return false
}

func (p *parser) parseLiteral() (ast.Literal, error) {
	tok := p.tok
	var lit ast.Literal
	switch {
	case tok.kind == tokNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil || math.IsInf(v, 0) {
			return ast.Literal{}, p.errorf("invalid number %q", tok.text)
		}
		lit = ast.NumberLiteral(v)
	case tok.kind == tokString:
		lit = ast.StringLiteral(tok.text)
	case p.isKeyword(kwTrue):
		lit = ast.BoolLiteral(true)
	case p.isKeyword(kwFalse):
		lit = ast.BoolLiteral(false)
	case p.isKeyword(kwHex), p.isKeyword(kwIP):
		return p.parseTaggedLiteral(tok.text)
	default:
		return ast.Literal{}, p.errorf("expected literal, got %s", tok.describe())
	}
	return lit, p.next()
}

func (p *parser) parseTaggedLiteral(tag string) (ast.Literal, error) {
	if err := p.nextWord(); err != nil {
		return ast.Literal{}, err
	}
	text := p.tok.text

	var lit ast.Literal
	if tag == kwIP {
		if _, err := netip.ParseAddr(text); err != nil {
			return ast.Literal{}, &SyntaxError{
				Offset: p.tok.start,
				Msg:    fmt.Sprintf("invalid IP literal %q", text),
				Err:    err,
			}
		}
		lit = ast.IPLiteral(text)
	} else {
		lit = ast.HexLiteral(text)
	}
	return lit, p.next()
}

func entityKeyword(tok token) (ast.Entity, bool) {
	if tok.kind != tokIdent {
		return 0, false
	}
	switch tok.text {
	case kwTransaction:
		return ast.EntityTransaction, true
	case kwAddress:
		return ast.EntityAddress, true
	default:
		return 0, false
	}
}

func isCapitalized(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

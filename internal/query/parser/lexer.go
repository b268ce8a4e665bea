package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokWord
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokDot
	tokEqual
	tokLess
	tokGreater
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of query"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokWord:
		return "word"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokDot:
		return "'.'"
	case tokEqual:
		return "'='"
	case tokLess:
		return "'<'"
	case tokGreater:
		return "'>'"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

var punctuation = map[byte]tokenKind{
	'(': tokLParen,
	')': tokRParen,
	'[': tokLBracket,
	']': tokRBracket,
	'.': tokDot,
	'=': tokEqual,
	'<': tokLess,
	'>': tokGreater,
}

type token struct {
	kind  tokenKind
	text  string
	start int
	end   int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return t.kind.String()
	case tokString:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// lexer scans tokens on demand. It keeps no state besides the source, so the
// parser can re-scan from any offset, which it does for raw words: hashes,
// addresses and IPs do not follow identifier or number rules.
type lexer struct {
	src string
}

func (l *lexer) skipSpace(pos int) int {
	for pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

// scan returns the next regular token starting at or after pos.
func (l *lexer) scan(pos int) (token, error) {
	pos = l.skipSpace(pos)
	if pos >= len(l.src) {
		return token{kind: tokEOF, start: pos, end: pos}, nil
	}

	c := l.src[pos]
	if kind, ok := punctuation[c]; ok {
		return token{kind: kind, text: string(c), start: pos, end: pos + 1}, nil
	}

	switch {
	case c == '"':
		return l.scanString(pos)
	case isDigit(c) || (c == '-' && pos+1 < len(l.src) && isDigit(l.src[pos+1])):
		return l.scanNumber(pos), nil
	case isIdentStart(c):
		end := pos + 1
		for end < len(l.src) && isIdentPart(l.src[end]) {
			end++
		}
		return token{kind: tokIdent, text: l.src[pos:end], start: pos, end: end}, nil
	default:
		r, _ := utf8.DecodeRuneInString(l.src[pos:])
		return token{}, &SyntaxError{Offset: pos, Msg: fmt.Sprintf("unexpected character %q", r)}
	}
}

// scanWord returns a raw word: a maximal run of characters that are neither
// space nor brackets.
func (l *lexer) scanWord(pos int) (token, error) {
	pos = l.skipSpace(pos)
	end := pos
	for end < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[end:])
		if unicode.IsSpace(r) || strings.ContainsRune("()[]", r) {
			break
		}
		end += size
	}
	if end == pos {
		return token{}, &SyntaxError{Offset: pos, Msg: "expected a word"}
	}
	return token{kind: tokWord, text: l.src[pos:end], start: pos, end: end}, nil
}

func (l *lexer) scanNumber(pos int) token {
	end := pos
	if l.src[end] == '-' {
		end++
	}
	for end < len(l.src) && isDigit(l.src[end]) {
		end++
	}
	if end+1 < len(l.src) && l.src[end] == '.' && isDigit(l.src[end+1]) {
		end++
		for end < len(l.src) && isDigit(l.src[end]) {
			end++
		}
	}
	return token{kind: tokNumber, text: l.src[pos:end], start: pos, end: end}
}

func (l *lexer) scanString(pos int) (token, error) {
	var b strings.Builder
	for i := pos + 1; i < len(l.src); i++ {
		switch c := l.src[i]; c {
		case '"':
			return token{kind: tokString, text: b.String(), start: pos, end: i + 1}, nil
		case '\\':
			if i+1 >= len(l.src) {
				return token{}, &SyntaxError{Offset: i, Msg: "unterminated escape"}
			}
			i++
			switch l.src[i] {
			case '"', '\\':
				b.WriteByte(l.src[i])
			default:
				return token{}, &SyntaxError{Offset: i - 1, Msg: fmt.Sprintf("unknown escape \\%c", l.src[i])}
			}
		default:
			b.WriteByte(c)
		}
	}
	return token{}, &SyntaxError{Offset: pos, Msg: "unterminated string"}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

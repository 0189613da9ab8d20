package irtext

import (
	"strings"
	"unicode"

	"github.com/wippyai/dataflow/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokValue           // %name
	tokIdent           // bare identifier, possibly dotted (arith.add)
	tokInt             // integer literal
	tokFloat           // float literal
	tokString          // double-quoted string
	tokEqual           // =
	tokComma           // ,
	tokLBracket        // [
	tokRBracket        // ]
	tokLBrace          // {
	tokRBrace          // }
	tokLParen          // (
	tokRParen          // )
)

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	src  string
	pos  int
	line int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '%':
		l.pos++
		for l.pos < len(l.src) && isIdentChar(rune(l.src[l.pos])) {
			l.pos++
		}
		if l.pos == start+1 {
			return token{}, errors.ParseFailed(l.line, "empty value name after %", nil)
		}
		return token{kind: tokValue, text: l.src[start+1 : l.pos], line: l.line}, nil

	case c == '"':
		l.pos++
		var b strings.Builder
		for l.pos < len(l.src) && l.src[l.pos] != '"' {
			if l.src[l.pos] == '\n' {
				return token{}, errors.ParseFailed(l.line, "unterminated string literal", nil)
			}
			if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
				l.pos++
			}
			b.WriteByte(l.src[l.pos])
			l.pos++
		}
		if l.pos >= len(l.src) {
			return token{}, errors.ParseFailed(l.line, "unterminated string literal", nil)
		}
		l.pos++ // closing quote
		return token{kind: tokString, text: b.String(), line: l.line}, nil

	case c == '-' || c >= '0' && c <= '9':
		l.pos++
		isFloat := false
		for l.pos < len(l.src) {
			d := l.src[l.pos]
			if d >= '0' && d <= '9' {
				l.pos++
				continue
			}
			if d == '.' || d == 'e' || d == 'E' || (isFloat && (d == '+' || d == '-')) {
				isFloat = true
				l.pos++
				continue
			}
			break
		}
		kind := tokInt
		if isFloat {
			kind = tokFloat
		}
		return token{kind: kind, text: l.src[start:l.pos], line: l.line}, nil

	case isIdentStart(rune(c)):
		l.pos++
		for l.pos < len(l.src) && (isIdentChar(rune(l.src[l.pos])) || l.src[l.pos] == '.') {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], line: l.line}, nil
	}

	l.pos++
	switch c {
	case '=':
		return token{kind: tokEqual, text: "=", line: l.line}, nil
	case ',':
		return token{kind: tokComma, text: ",", line: l.line}, nil
	case '[':
		return token{kind: tokLBracket, text: "[", line: l.line}, nil
	case ']':
		return token{kind: tokRBracket, text: "]", line: l.line}, nil
	case '{':
		return token{kind: tokLBrace, text: "{", line: l.line}, nil
	case '}':
		return token{kind: tokRBrace, text: "}", line: l.line}, nil
	case '(':
		return token{kind: tokLParen, text: "(", line: l.line}, nil
	case ')':
		return token{kind: tokRParen, text: ")", line: l.line}, nil
	}
	return token{}, errors.ParseFailed(l.line, "unexpected character "+string(rune(c)), nil)
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/golox/errors"
	"github.com/pontaoski/golox/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/golox", "lexer")

type Lexer struct {
	source  string
	start   int
	current int
	line    int

	tokens []types.Token
	errs   errors.List
}

func NewLexer(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
	}
}

// Scan is a convenience wrapper for NewLexer(source).Scan().
func Scan(source string) ([]types.Token, errors.List) {
	return NewLexer(source).Scan()
}

// Scan consumes the whole source. Lexical errors are collected rather than
// aborting, so the returned token slice always ends in an EOF token.
func (l *Lexer) Scan() ([]types.Token, errors.List) {
	for !l.atEnd() {
		l.start = l.current
		l.lex()
	}

	l.tokens = append(l.tokens, types.Token{Kind: types.EOF, Line: l.line})
	plog.Debugf("scanned %d tokens, %d errors", len(l.tokens), len(l.errs))

	return l.tokens, l.errs
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) kinded(k types.TokenKind) {
	l.literal(k, nil)
}

func (l *Lexer) literal(k types.TokenKind, lit interface{}) {
	l.tokens = append(l.tokens, types.Token{
		Kind:    k,
		Lexeme:  l.source[l.start:l.current],
		Literal: lit,
		Line:    l.line,
	})
}

func (l *Lexer) either(next byte, two, one types.TokenKind) {
	if l.match(next) {
		l.kinded(two)
		return
	}
	l.kinded(one)
}

var single = map[byte]types.TokenKind{
	'(': types.LPAREN,
	')': types.RPAREN,
	'{': types.LBRACE,
	'}': types.RBRACE,
	'[': types.LBRACKET,
	']': types.RBRACKET,
	',': types.COMMA,
	'.': types.DOT,
	'-': types.MINUS,
	'+': types.PLUS,
	';': types.SEMICOLON,
	'*': types.STAR,
}

func (l *Lexer) lex() {
	c := l.advance()

	if kind, ok := single[c]; ok {
		l.kinded(kind)
		return
	}

	switch c {
	case '!':
		l.either('=', types.BANG_EQUAL, types.BANG)
	case '=':
		l.either('=', types.EQUAL_EQUAL, types.EQUAL)
	case '<':
		l.either('=', types.LESS_EQUAL, types.LESS)
	case '>':
		l.either('=', types.GREATER_EQUAL, types.GREATER)
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.atEnd() {
				l.advance()
			}
			return
		}
		l.kinded(types.SLASH)
	case ' ', '\r', '\t':
	case '\n':
		l.line++
	case '"':
		l.lexString()
	default:
		switch {
		case isDigit(c):
			l.lexNumber()
		case isAlpha(c):
			l.lexIdent()
		default:
			// one diagnostic per character, not per byte
			if c >= utf8.RuneSelf {
				_, size := utf8.DecodeRuneInString(l.source[l.start:])
				l.current = l.start + size
			}
			l.errs = append(l.errs, errors.AtLine(l.line, "Unexpected character."))
		}
	}
}

func (l *Lexer) lexString() {
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.atEnd() {
		l.errs = append(l.errs, errors.AtLine(l.line, "Unterminated string."))
		return
	}

	// closing quote
	l.advance()
	l.literal(types.STRING, l.source[l.start+1:l.current-1])
}

func (l *Lexer) lexNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	// a trailing '.' without digits belongs to the next token
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	// the lexeme is always well formed; overflow yields +Inf
	value, _ := strconv.ParseFloat(l.source[l.start:l.current], 64)
	l.literal(types.NUMBER, value)
}

func (l *Lexer) lexIdent() {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	if kind, ok := types.Keywords[l.source[l.start:l.current]]; ok {
		l.kinded(kind)
		return
	}
	l.kinded(types.IDENT)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

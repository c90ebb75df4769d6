package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/golox/types"
)

// SyntaxError covers every diagnostic found before evaluation: lexical
// errors, parse errors and resolver checks.
type SyntaxError struct {
	Line    int
	Where   string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// AtLine is used by the lexer, which has no token to point at.
func AtLine(line int, message string) *SyntaxError {
	return &SyntaxError{Line: line, Message: message}
}

func AtToken(tok types.Token, message string) *SyntaxError {
	if tok.Kind == types.EOF {
		return &SyntaxError{Line: tok.Line, Where: " at end", Message: message}
	}
	return &SyntaxError{Line: tok.Line, Where: fmt.Sprintf(" at '%s'", tok.Lexeme), Message: message}
}

type List []*SyntaxError

func (l List) Error() string {
	var msgs []string
	for _, e := range l {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Err returns nil for an empty list so callers can use the usual err != nil check.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

type RuntimeError struct {
	Token   types.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Line() int {
	return e.Token.Line
}

func NewRuntimeError(tok types.Token, msg string, fmts ...interface{}) *RuntimeError {
	return &RuntimeError{
		Token:   tok,
		Message: fmt.Sprintf(msg, fmts...),
	}
}

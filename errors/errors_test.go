package errors

import (
	"testing"

	"github.com/pontaoski/golox/types"
)

func TestSyntaxErrorFormat(t *testing.T) {
	cases := []struct {
		err  *SyntaxError
		want string
	}{
		{AtLine(4, "Unexpected character."), "[line 4] Error: Unexpected character."},
		{AtToken(types.Token{Kind: types.EOF, Line: 9}, "Expect expression."), "[line 9] Error at end: Expect expression."},
		{AtToken(types.Token{Kind: types.IDENT, Lexeme: "foo", Line: 2}, "Expect ';' after value."), "[line 2] Error at 'foo': Expect ';' after value."},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestListErr(t *testing.T) {
	var empty List
	if empty.Err() != nil {
		t.Errorf("empty list should have no error")
	}

	l := List{AtLine(1, "a"), AtLine(2, "b")}
	if err := l.Err(); err == nil || err.Error() != "[line 1] Error: a\n[line 2] Error: b" {
		t.Errorf("got %v", err)
	}
}

func TestRuntimeError(t *testing.T) {
	err := NewRuntimeError(types.Token{Kind: types.IDENT, Lexeme: "x", Line: 5}, "Undefined variable '%s'.", "x")
	if err.Error() != "Undefined variable 'x'." || err.Line() != 5 {
		t.Errorf("got %q at line %d", err.Error(), err.Line())
	}
}

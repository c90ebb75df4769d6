package ast

import (
	"testing"

	"github.com/pontaoski/golox/types"
)

func ident(name string) types.Token {
	return types.Token{Kind: types.IDENT, Lexeme: name, Line: 1}
}

func TestDeclarationStrings(t *testing.T) {
	ctor := &Function{Name: ident("init"), Params: []types.Token{ident("a"), ident("b")}}
	if got := ctor.String(); got != "fun init(a, b)" {
		t.Errorf("got %q", got)
	}
	if !ctor.IsInitializer() {
		t.Errorf("init should be an initializer")
	}

	bare := &Function{Name: ident("f")}
	if got := bare.String(); got != "fun f()" {
		t.Errorf("got %q", got)
	}
	if bare.IsInitializer() {
		t.Errorf("f is not an initializer")
	}

	if got := (&Class{Name: ident("A")}).String(); got != "class A" {
		t.Errorf("got %q", got)
	}
	sub := &Class{Name: ident("B"), Superclass: &Variable{Name: ident("A")}}
	if got := sub.String(); got != "class B < A" {
		t.Errorf("got %q", got)
	}
}

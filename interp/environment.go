package interp

import (
	"github.com/pontaoski/golox/errors"
	"github.com/pontaoski/golox/types"
)

// Environment is one scope of the chain. Scopes are shared by pointer: every
// closure created in a scope aliases it, so a write through one holder is
// seen by all of them.
type Environment struct {
	enclosing *Environment
	values    map[string]interface{}
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		enclosing: enclosing,
		values:    make(map[string]interface{}),
	}
}

// Define always succeeds and may shadow an existing binding.
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

func (e *Environment) Get(name types.Token) (interface{}, error) {
	for env := e; env != nil; env = env.enclosing {
		if val, ok := env.values[name.Lexeme]; ok {
			return val, nil
		}
	}

	return nil, errors.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (e *Environment) Assign(name types.Token, value interface{}) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}

	return errors.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads a binding exactly distance scopes out. The resolver guarantees
// the binding exists there.
func (e *Environment) GetAt(distance int, name string) interface{} {
	return e.ancestor(distance).values[name]
}

func (e *Environment) AssignAt(distance int, name string, value interface{}) {
	e.ancestor(distance).values[name] = value
}

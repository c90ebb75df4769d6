// Package interp evaluates resolved syntax trees.
//
// Runtime values are nil, bool, float64, string, *Array, *Instance and the
// Callable implementations. A runtime error stops evaluation of the whole
// Interpret call and comes back as an *errors.RuntimeError.
package interp

import (
	"fmt"
	"io"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/golox/ast"
	"github.com/pontaoski/golox/resolver"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/golox", "interp")

type flow int

const (
	normal flow = iota
	returning
)

// completion is the outcome of executing a statement. A return statement
// produces a returning completion that unwinds blocks and loops until the
// enclosing call consumes it.
type completion struct {
	flow  flow
	value interface{}
}

// DefaultMaxDepth is the call depth limit of a new interpreter.
const DefaultMaxDepth = 10000

type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  resolver.Locals
	out     io.Writer

	depth int
	// MaxDepth bounds nested calls; zero means unbounded.
	MaxDepth int
}

func New(out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	for name, fn := range addNatives() {
		globals.Define(name, fn)
	}

	return &Interpreter{
		globals: globals,
		env:     globals,
		locals:  resolver.Locals{},
		out:     out,

		MaxDepth: DefaultMaxDepth,
	}
}

func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// Interpret runs stmts in the global scope. Locals from earlier calls are
// kept, so one interpreter can run a sequence of separately parsed chunks.
func (i *Interpreter) Interpret(stmts []ast.Stmt, locals resolver.Locals) (err error) {
	for expr, depth := range locals {
		i.locals[expr] = depth
	}

	defer func() {
		i.env = i.globals
		i.depth = 0

		if r := recover(); r != nil {
			err = tracerr.Errorf("internal interpreter error: %v", r)
		}
	}()

	for _, stmt := range stmts {
		if _, err = i.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt) (completion, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return i.executeBlock(s.Statements, NewEnvironment(i.env))
	case *ast.Class:
		return completion{}, i.class(s)
	case *ast.Expression:
		_, err := i.evaluate(s.Expression)
		return completion{}, err
	case *ast.Function:
		i.env.Define(s.Name.Lexeme, NewFunction(s, i.env, false))
		return completion{}, nil
	case *ast.If:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return completion{}, err
		}
		if truthy(cond) {
			return i.execute(s.Then)
		} else if s.Else != nil {
			return i.execute(s.Else)
		}
		return completion{}, nil
	case *ast.Print:
		val, err := i.evaluate(s.Expression)
		if err != nil {
			return completion{}, err
		}
		fmt.Fprintln(i.out, Stringify(val))
		return completion{}, nil
	case *ast.Return:
		var val interface{}
		if s.Value != nil {
			var err error
			if val, err = i.evaluate(s.Value); err != nil {
				return completion{}, err
			}
		}
		return completion{flow: returning, value: val}, nil
	case *ast.Var:
		var val interface{}
		if s.Initializer != nil {
			var err error
			if val, err = i.evaluate(s.Initializer); err != nil {
				return completion{}, err
			}
		}
		i.env.Define(s.Name.Lexeme, val)
		return completion{}, nil
	case *ast.While:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil || !truthy(cond) {
				return completion{}, err
			}
			c, err := i.execute(s.Body)
			if err != nil || c.flow == returning {
				return c, err
			}
		}
	}

	panic(fmt.Sprintf("unhandled statement %T", stmt))
}

func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (completion, error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range stmts {
		c, err := i.execute(stmt)
		if err != nil || c.flow == returning {
			return c, err
		}
	}
	return completion{}, nil
}

// class binds the class name before building methods so they can refer to
// it, and closes methods over an extra scope holding "super" when there is a
// superclass.
func (i *Interpreter) class(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		val, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		var ok bool
		if superclass, ok = val.(*Class); !ok {
			return newError(s.Superclass.Name, "Superclass must be a class.")
		}
	}

	i.env.Define(s.Name.Lexeme, nil)

	env := i.env
	if superclass != nil {
		env = NewEnvironment(i.env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, env, m.IsInitializer())
	}

	return i.env.Assign(s.Name, NewClass(s.Name.Lexeme, superclass, methods))
}

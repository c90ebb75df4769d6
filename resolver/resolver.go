// Package resolver computes, for every variable, this and super reference,
// how many scopes lie between the reference and its binding. References it
// cannot find are left out of the result and resolve as globals at runtime.
package resolver

import (
	"fmt"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/golox/ast"
	"github.com/pontaoski/golox/errors"
	"github.com/pontaoski/golox/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/golox", "resolver")

// Locals maps a reference node, by identity, to its hop count.
type Locals map[ast.Expr]int

type functionKind int

const (
	noFunction functionKind = iota
	function
	initializer
	method
)

type classKind int

const (
	noClass classKind = iota
	class
	subclass
)

type Resolver struct {
	// each scope maps a name to whether its initializer has finished
	scopes          []map[string]bool
	currentFunction functionKind
	currentClass    classKind

	locals Locals
	errs   errors.List
}

func NewResolver() *Resolver {
	return &Resolver{locals: Locals{}}
}

// Resolve is a convenience wrapper for NewResolver().Resolve(stmts).
func Resolve(stmts []ast.Stmt) (Locals, errors.List) {
	return NewResolver().Resolve(stmts)
}

func (r *Resolver) Resolve(stmts []ast.Stmt) (Locals, errors.List) {
	r.statements(stmts)
	plog.Debugf("resolved %d local references, %d errors", len(r.locals), len(r.errs))
	return r.locals, r.errs
}

func (r *Resolver) pushScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) popScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) top() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) error(tok types.Token, message string) {
	r.errs = append(r.errs, errors.AtToken(tok, message))
}

func (r *Resolver) declare(name types.Token) {
	if len(r.scopes) == 0 {
		return
	}

	scope := r.top()
	if _, ok := scope[name.Lexeme]; ok {
		r.error(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name types.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.top()[name.Lexeme] = true
}

func (r *Resolver) local(expr ast.Expr, name types.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) statements(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.statement(stmt)
	}
}

func (r *Resolver) statement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.pushScope()
		r.statements(s.Statements)
		r.popScope()
	case *ast.Class:
		r.class(s)
	case *ast.Expression:
		r.expression(s.Expression)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.function(s, function)
	case *ast.If:
		r.expression(s.Condition)
		r.statement(s.Then)
		if s.Else != nil {
			r.statement(s.Else)
		}
	case *ast.Print:
		r.expression(s.Expression)
	case *ast.Return:
		if r.currentFunction == noFunction {
			r.error(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == initializer {
				r.error(s.Keyword, "Can't return a value from an initializer.")
			}
			r.expression(s.Value)
		}
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.expression(s.Initializer)
		}
		r.define(s.Name)
	case *ast.While:
		r.expression(s.Condition)
		r.statement(s.Body)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement %T", stmt))
	}
}

// class mirrors the environments the interpreter builds: an optional scope
// holding "super", then a scope holding "this" around every method body.
func (r *Resolver) class(s *ast.Class) {
	enclosing := r.currentClass
	r.currentClass = class
	defer func() { r.currentClass = enclosing }()
	plog.Tracef("resolving %s", s)

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = subclass
		r.expression(s.Superclass)

		r.pushScope()
		r.top()["super"] = true
		defer r.popScope()
	}

	r.pushScope()
	r.top()["this"] = true

	for _, m := range s.Methods {
		kind := method
		if m.IsInitializer() {
			kind = initializer
		}
		r.function(m, kind)
	}

	r.popScope()
}

func (r *Resolver) function(fn *ast.Function, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	plog.Tracef("resolving %s", fn)

	r.pushScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.statements(fn.Body)
	r.popScope()

	r.currentFunction = enclosing
}

func (r *Resolver) expression(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Array:
		for _, el := range e.Elements {
			r.expression(el)
		}
	case *ast.IndexGet:
		r.expression(e.Array)
		r.expression(e.Index)
	case *ast.IndexSet:
		r.expression(e.Array)
		r.expression(e.Index)
		r.expression(e.Value)
	case *ast.Assign:
		r.expression(e.Value)
		r.local(e, e.Name)
	case *ast.Binary:
		r.expression(e.Left)
		r.expression(e.Right)
	case *ast.Call:
		r.expression(e.Callee)
		for _, arg := range e.Arguments {
			r.expression(arg)
		}
	case *ast.Get:
		r.expression(e.Object)
	case *ast.Grouping:
		r.expression(e.Expression)
	case *ast.Literal:
	case *ast.Logical:
		r.expression(e.Left)
		r.expression(e.Right)
	case *ast.Set:
		r.expression(e.Value)
		r.expression(e.Object)
	case *ast.Super:
		switch r.currentClass {
		case noClass:
			r.error(e.Keyword, "Can't use 'super' outside of a class.")
		case class:
			r.error(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.local(e, e.Keyword)
	case *ast.This:
		if r.currentClass == noClass {
			r.error(e.Keyword, "Can't use 'this' outside of a class.")
		}
		r.local(e, e.Keyword)
	case *ast.Unary:
		r.expression(e.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.top()[e.Name.Lexeme]; ok && !defined {
				r.error(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.local(e, e.Name)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression %T", expr))
	}
}

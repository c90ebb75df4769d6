package interp

import (
	stderrors "errors"
	"math"

	"github.com/pontaoski/golox/ast"
	"github.com/pontaoski/golox/errors"
	"github.com/pontaoski/golox/types"
)

func newError(tok types.Token, msg string, fmts ...interface{}) error {
	return errors.NewRuntimeError(tok, msg, fmts...)
}

func (i *Interpreter) evaluate(expr ast.Expr) (interface{}, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Grouping:
		return i.evaluate(e.Expression)
	case *ast.Variable:
		return i.lookup(e, e.Name)
	case *ast.This:
		return i.lookup(e, e.Keyword)
	case *ast.Assign:
		val, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := i.locals[e]; ok {
			i.env.AssignAt(distance, e.Name.Lexeme, val)
			return val, nil
		}
		return val, i.globals.Assign(e.Name, val)
	case *ast.Logical:
		left, err := i.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Kind == types.OR {
			if truthy(left) {
				return left, nil
			}
		} else if !truthy(left) {
			return left, nil
		}
		return i.evaluate(e.Right)
	case *ast.Unary:
		return i.unary(e)
	case *ast.Binary:
		return i.binary(e)
	case *ast.Call:
		return i.call(e)
	case *ast.Get:
		obj, err := i.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		if inst, ok := obj.(*Instance); ok {
			return inst.Get(e.Name)
		}
		return nil, newError(e.Name, "Only instances have properties.")
	case *ast.Set:
		obj, err := i.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, newError(e.Name, "Only instances have fields.")
		}
		val, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(e.Name, val)
		return val, nil
	case *ast.Super:
		return i.super(e)
	case *ast.Array:
		elements := make([]interface{}, 0, len(e.Elements))
		for _, el := range e.Elements {
			val, err := i.evaluate(el)
			if err != nil {
				return nil, err
			}
			elements = append(elements, val)
		}
		return NewArray(elements), nil
	case *ast.IndexGet:
		arr, idx, err := i.indexed(e.Array, e.Index, e.Bracket)
		if err != nil {
			return nil, err
		}
		return arr.Elements[idx], nil
	case *ast.IndexSet:
		arr, idx, err := i.indexed(e.Array, e.Index, e.Bracket)
		if err != nil {
			return nil, err
		}
		val, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		arr.Elements[idx] = val
		return val, nil
	}

	panic("unhandled expression")
}

// lookup reads a local at its resolved distance, or a global when the
// resolver found no enclosing binding.
func (i *Interpreter) lookup(expr ast.Expr, name types.Token) (interface{}, error) {
	if distance, ok := i.locals[expr]; ok {
		return i.env.GetAt(distance, name.Lexeme), nil
	}
	return i.globals.Get(name)
}

func (i *Interpreter) unary(e *ast.Unary) (interface{}, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case types.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, newError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	case types.BANG:
		return !truthy(right), nil
	}

	panic("unhandled unary operator " + e.Operator.Kind.String())
}

func (i *Interpreter) binary(e *ast.Binary) (interface{}, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case types.EQUAL_EQUAL:
		return equal(left, right), nil
	case types.BANG_EQUAL:
		return !equal(left, right), nil
	case types.PLUS:
		switch l := left.(type) {
		case float64:
			if r, ok := right.(float64); ok {
				return l + r, nil
			}
		case string:
			if r, ok := right.(string); ok {
				return l + r, nil
			}
		}
		return nil, newError(e.Operator, "Operands must be two numbers or two strings.")
	}

	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, newError(e.Operator, "Operands must be numbers.")
	}

	switch e.Operator.Kind {
	case types.MINUS:
		return l - r, nil
	case types.STAR:
		return l * r, nil
	case types.SLASH:
		return l / r, nil
	case types.GREATER:
		return l > r, nil
	case types.GREATER_EQUAL:
		return l >= r, nil
	case types.LESS:
		return l < r, nil
	case types.LESS_EQUAL:
		return l <= r, nil
	}

	panic("unhandled binary operator " + e.Operator.Kind.String())
}

func (i *Interpreter) call(e *ast.Call) (interface{}, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newError(e.Paren, "Can only call functions and classes.")
	}

	args := make([]interface{}, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		val, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	native, isNative := fn.(*NativeFunction)
	if !(isNative && native.Variadic) && len(args) != fn.Arity() {
		return nil, newError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	i.depth++
	defer func() { i.depth-- }()
	if i.MaxDepth > 0 && i.depth > i.MaxDepth {
		return nil, newError(e.Paren, "Stack overflow.")
	}
	plog.Tracef("call %s with %d arguments at depth %d", fn, len(args), i.depth)

	val, err := fn.Call(i, args)
	if err != nil {
		var rerr *errors.RuntimeError
		if !stderrors.As(err, &rerr) {
			// natives report plain errors; attach the call site
			return nil, newError(e.Paren, "%s", err.Error())
		}
		return nil, err
	}
	return val, nil
}

// super finds the method one class above the one whose body we are in and
// binds it to the current instance, which lives one scope nearer than super.
func (i *Interpreter) super(e *ast.Super) (interface{}, error) {
	distance, ok := i.locals[e]
	if !ok {
		return nil, newError(e.Keyword, "Can't use 'super' outside of a class.")
	}

	superclass := i.env.GetAt(distance, "super").(*Class)
	instance := i.env.GetAt(distance-1, "this").(*Instance)

	m := superclass.FindMethod(e.Method.Lexeme)
	if m == nil {
		return nil, newError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return m.Bind(instance), nil
}

func (i *Interpreter) indexed(arrExpr, idxExpr ast.Expr, bracket types.Token) (*Array, int, error) {
	val, err := i.evaluate(arrExpr)
	if err != nil {
		return nil, 0, err
	}
	arr, ok := val.(*Array)
	if !ok {
		return nil, 0, newError(bracket, "Expected an array.")
	}

	idxVal, err := i.evaluate(idxExpr)
	if err != nil {
		return nil, 0, err
	}
	n, ok := idxVal.(float64)
	if !ok || n != math.Trunc(n) {
		return nil, 0, newError(bracket, "Array index must be an integer.")
	}
	if n < 0 || n >= float64(len(arr.Elements)) {
		return nil, 0, newError(bracket, "Array index out of bounds.")
	}
	return arr, int(n), nil
}

package interp

import (
	"fmt"

	"github.com/pontaoski/golox/ast"
	"github.com/pontaoski/golox/errors"
	"github.com/pontaoski/golox/types"
)

// Callable is a closed set: *NativeFunction, *Function and *Class.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []interface{}) (interface{}, error)
	String() string

	isCallable()
}

type NativeFunction struct {
	Name     string
	Params   int
	Variadic bool
	Fn       func(args []interface{}) (interface{}, error)
}

func (n *NativeFunction) isCallable() {}

func (n *NativeFunction) Arity() int {
	return n.Params
}

func (n *NativeFunction) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	return n.Fn(args)
}

func (n *NativeFunction) String() string {
	return "<native fn>"
}

// Function is a closure over the environment it was declared in.
type Function struct {
	declaration   *ast.Function
	closure       *Environment
	isInitializer bool
}

func NewFunction(declaration *ast.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{
		declaration:   declaration,
		closure:       closure,
		isInitializer: isInitializer,
	}
}

func (f *Function) isCallable() {}

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

func (f *Function) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	c, err := in.executeBlock(f.declaration.Body, env)
	if err != nil {
		return nil, err
	}

	// initializers hand back the instance whatever the body did
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if c.flow == returning {
		return c.value, nil
	}
	return nil, nil
}

// Bind returns a copy of f whose closure is a fresh scope binding "this".
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme)
}

type Class struct {
	Name       string
	Superclass *Class
	methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{
		Name:       name,
		Superclass: superclass,
		methods:    methods,
	}
}

func (c *Class) isCallable() {}

// FindMethod searches the class and then its superclass chain.
func (c *Class) FindMethod(name string) *Function {
	for class := c; class != nil; class = class.Superclass {
		if m, ok := class.methods[name]; ok {
			return m
		}
	}
	return nil
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string {
	return c.Name
}

type Instance struct {
	class  *Class
	fields map[string]interface{}
}

func NewInstance(class *Class) *Instance {
	return &Instance{
		class:  class,
		fields: make(map[string]interface{}),
	}
}

// Get prefers fields over methods, so a field can shadow a method.
func (i *Instance) Get(name types.Token) (interface{}, error) {
	if val, ok := i.fields[name.Lexeme]; ok {
		return val, nil
	}

	if m := i.class.FindMethod(name.Lexeme); m != nil {
		return m.Bind(i), nil
	}

	return nil, errors.NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

func (i *Instance) Set(name types.Token, value interface{}) {
	i.fields[name.Lexeme] = value
}

func (i *Instance) String() string {
	return i.class.Name + " instance"
}

// Array has a fixed length; indexing outside it is a runtime error.
type Array struct {
	Elements []interface{}
}

func NewArray(elements []interface{}) *Array {
	return &Array{Elements: elements}
}

func (a *Array) String() string {
	return formatArray(a, map[*Array]bool{})
}

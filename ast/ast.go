// Package ast holds the two node families produced by the parser. Nodes are
// always handled through pointers: the resolver keys its results on node
// identity, so two structurally equal expressions stay distinct.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go ast"

// LiteralValue is nil, bool, float64 or string.
type LiteralValue interface{}

// IsInitializer reports whether a method declaration is a class initializer.
func (n *Function) IsInitializer() bool {
	return n.Name.Lexeme == "init"
}

package ast

import (
	"fmt"
	"strings"
)

func (n *Function) String() string {
	var params []string
	for _, p := range n.Params {
		params = append(params, p.Lexeme)
	}
	return fmt.Sprintf("fun %s(%s)", n.Name.Lexeme, strings.Join(params, ", "))
}

func (n *Class) String() string {
	if n.Superclass != nil {
		return fmt.Sprintf("class %s < %s", n.Name.Lexeme, n.Superclass.Name.Lexeme)
	}
	return "class " + n.Name.Lexeme
}

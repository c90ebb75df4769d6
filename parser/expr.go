package parser

import (
	"github.com/pontaoski/golox/ast"
	"github.com/pontaoski/golox/errors"
	"github.com/pontaoski/golox/types"
)

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right associative. The target is parsed as an ordinary
// expression first and then converted, so "a.b.c = 1" needs no lookahead.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(types.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		case *ast.IndexGet:
			return &ast.IndexSet{Array: target.Array, Bracket: target.Bracket, Index: target.Index, Value: value}
		}

		p.error(equals, "Invalid assignment target.")
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()

	for p.match(types.OR) {
		operator := p.previous()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: p.and()}
	}

	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.binary(0)

	for p.match(types.AND) {
		operator := p.previous()
		expr = &ast.Logical{Left: expr, Operator: operator, Right: p.binary(0)}
	}

	return expr
}

// binaryLevels lists the left associative binary operators from the lowest
// precedence to the highest.
var binaryLevels = [][]types.TokenKind{
	{types.BANG_EQUAL, types.EQUAL_EQUAL},
	{types.GREATER, types.GREATER_EQUAL, types.LESS, types.LESS_EQUAL},
	{types.MINUS, types.PLUS},
	{types.SLASH, types.STAR},
}

func (p *Parser) binary(level int) ast.Expr {
	if level == len(binaryLevels) {
		return p.unary()
	}

	expr := p.binary(level + 1)

	for p.match(binaryLevels[level]...) {
		operator := p.previous()
		expr = &ast.Binary{Left: expr, Operator: operator, Right: p.binary(level + 1)}
	}

	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(types.BANG, types.MINUS) {
		operator := p.previous()
		return &ast.Unary{Operator: operator, Right: p.unary()}
	}

	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(types.LPAREN):
			args := p.expressionList(types.RPAREN, "Can't have more than 255 arguments.")
			paren := p.consume(types.RPAREN, "Expect ')' after arguments.")
			expr = &ast.Call{Callee: expr, Paren: paren, Arguments: args}
		case p.match(types.LBRACKET):
			index := p.expression()
			bracket := p.consume(types.RBRACKET, "Expect ']' after index.")
			expr = &ast.IndexGet{Array: expr, Bracket: bracket, Index: index}
		case p.match(types.DOT):
			name := p.consume(types.IDENT, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) expressionList(end types.TokenKind, tooMany string) []ast.Expr {
	var exprs []ast.Expr

	if !p.check(end) {
		for {
			if len(exprs) >= maxArgs {
				p.error(p.peek(), tooMany)
			}
			exprs = append(exprs, p.expression())

			if !p.match(types.COMMA) {
				break
			}
		}
	}

	return exprs
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(types.FALSE):
		return &ast.Literal{Value: false}
	case p.match(types.TRUE):
		return &ast.Literal{Value: true}
	case p.match(types.NIL):
		return &ast.Literal{Value: nil}
	case p.match(types.NUMBER, types.STRING):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(types.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(types.IDENT):
		return &ast.Variable{Name: p.previous()}
	case p.match(types.SUPER):
		keyword := p.previous()
		p.consume(types.DOT, "Expect '.' after 'super'.")
		method := p.consume(types.IDENT, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(types.LBRACKET):
		bracket := p.previous()
		elements := p.expressionList(types.RBRACKET, "Can't have more than 255 elements.")
		p.consume(types.RBRACKET, "Expect ']' after array.")
		return &ast.Array{Elements: elements, Bracket: bracket}
	case p.match(types.LPAREN):
		expr := p.expression()
		p.consume(types.RPAREN, "Expect ')' after expression.")
		return &ast.Grouping{Expression: expr}
	}

	panic(p.error(p.peek(), "Expect expression."))
}

func (p *Parser) match(kinds ...types.TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// consume returns the next token if it has the expected kind, and bails out
// of the current declaration otherwise.
func (p *Parser) consume(kind types.TokenKind, message string) types.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.error(p.peek(), message))
}

func (p *Parser) check(kind types.TokenKind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() types.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == types.EOF
}

func (p *Parser) peek() types.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() types.Token {
	return p.tokens[p.current-1]
}

// error records a diagnostic without unwinding; callers that cannot continue
// panic with the returned value.
func (p *Parser) error(tok types.Token, message string) bailout {
	p.errs = append(p.errs, errors.AtToken(tok, message))
	return bailout{}
}

func (p *Parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		if p.previous().Kind == types.SEMICOLON {
			return
		}

		switch p.peek().Kind {
		case types.CLASS, types.FUN, types.VAR, types.FOR, types.IF, types.WHILE, types.PRINT, types.RETURN:
			return
		}

		p.advance()
	}
}

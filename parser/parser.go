package parser

import (
	"fmt"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/golox/ast"
	"github.com/pontaoski/golox/errors"
	"github.com/pontaoski/golox/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/golox", "parser")

const maxArgs = 255

// bailout unwinds the parser to the enclosing declaration after a
// diagnostic has been recorded.
type bailout struct{}

type Parser struct {
	tokens  []types.Token
	current int
	errs    errors.List
}

func NewParser(tokens []types.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is a convenience wrapper for NewParser(tokens).Parse().
func Parse(tokens []types.Token) ([]ast.Stmt, errors.List) {
	return NewParser(tokens).Parse()
}

// Parse returns every statement that parsed, plus one diagnostic per
// malformed declaration. The token slice must end in an EOF token.
func (p *Parser) Parse() ([]ast.Stmt, errors.List) {
	var statements []ast.Stmt

	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	plog.Debugf("parsed %d statements, %d errors", len(statements), len(p.errs))
	return statements, p.errs
}

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(types.CLASS):
		return p.classDeclaration()
	case p.match(types.FUN):
		return p.function("function")
	case p.match(types.VAR):
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(types.IDENT, "Expect class name.")

	var superclass *ast.Variable
	if p.match(types.LESS) {
		p.consume(types.IDENT, "Expect superclass name.")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(types.LBRACE, "Expect '{' before class body.")

	var methods []*ast.Function
	for !p.check(types.RBRACE) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}

	p.consume(types.RBRACE, "Expect '}' after class body.")

	return &ast.Class{
		Name:       name,
		Superclass: superclass,
		Methods:    methods,
	}
}

func (p *Parser) function(kind string) *ast.Function {
	name := p.consume(types.IDENT, fmt.Sprintf("Expect %s name.", kind))
	p.consume(types.LPAREN, fmt.Sprintf("Expect '(' after %s name.", kind))

	var params []types.Token
	if !p.check(types.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.error(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(types.IDENT, "Expect parameter name."))

			if !p.match(types.COMMA) {
				break
			}
		}
	}
	p.consume(types.RPAREN, "Expect ')' after parameters.")

	p.consume(types.LBRACE, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()

	return &ast.Function{
		Name:   name,
		Params: params,
		Body:   body,
	}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(types.IDENT, "Expect variable name.")

	var initializer ast.Expr
	if p.match(types.EQUAL) {
		initializer = p.expression()
	}

	p.consume(types.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: initializer}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(types.FOR):
		return p.forStatement()
	case p.match(types.IF):
		return p.ifStatement()
	case p.match(types.PRINT):
		value := p.expression()
		p.consume(types.SEMICOLON, "Expect ';' after value.")
		return &ast.Print{Expression: value}
	case p.match(types.RETURN):
		return p.returnStatement()
	case p.match(types.WHILE):
		return p.whileStatement()
	case p.match(types.LBRACE):
		return &ast.Block{Statements: p.block()}
	}

	expr := p.expression()
	p.consume(types.SEMICOLON, "Expect ';' after expression.")
	return &ast.Expression{Expression: expr}
}

// forStatement desugars into
//
//	{ initializer; while (condition) { body; increment; } }
func (p *Parser) forStatement() ast.Stmt {
	p.consume(types.LPAREN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(types.SEMICOLON):
	case p.match(types.VAR):
		initializer = p.varDeclaration()
	default:
		expr := p.expression()
		p.consume(types.SEMICOLON, "Expect ';' after expression.")
		initializer = &ast.Expression{Expression: expr}
	}

	var condition ast.Expr
	if !p.check(types.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(types.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(types.RPAREN) {
		increment = p.expression()
	}
	p.consume(types.RPAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{Statements: []ast.Stmt{
			body,
			&ast.Expression{Expression: increment},
		}}
	}

	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.While{Condition: condition, Body: body}

	if initializer != nil {
		body = &ast.Block{Statements: []ast.Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(types.LPAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(types.RPAREN, "Expect ')' after if condition.")

	then := p.statement()
	var elseBranch ast.Stmt
	if p.match(types.ELSE) {
		elseBranch = p.statement()
	}

	return &ast.If{Condition: condition, Then: then, Else: elseBranch}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()

	var value ast.Expr
	if !p.check(types.SEMICOLON) {
		value = p.expression()
	}

	p.consume(types.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(types.LPAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(types.RPAREN, "Expect ')' after condition.")

	return &ast.While{Condition: condition, Body: p.statement()}
}

// block should be called when the parser is past the opening brace
func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt

	for !p.check(types.RBRACE) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	p.consume(types.RBRACE, "Expect '}' after block.")
	return statements
}

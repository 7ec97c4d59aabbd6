// Package parser implements a recursive-descent parser that turns a
// token stream into a statement tree, with synchronization-based
// error recovery so one malformed statement doesn't abort the whole
// parse.
package parser

import (
	"fmt"

	"github.com/sergev/amm/ast"
	"github.com/sergev/amm/token"
)

// Parser holds the token stream and a cursor into it.
type Parser struct {
	tokens  []token.Token
	current int
	Errors  []*Error
}

// New constructs a Parser over a complete token stream (one produced
// by the scanner, ending in EOF).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the token stream and returns every statement parsed.
// Statements preceding a parse error are retained; the parser
// synchronizes at the declaration boundary and keeps going, so
// p.Errors may hold more than one diagnostic.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.Errors = append(p.Errors, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *Parser) declaration() (ast.Stmt, *Error) {
	if p.match(token.Var) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *Parser) varDecl() (ast.Stmt, *Error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *Parser) statement() (ast.Stmt, *Error) {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.LeftBrace):
		return p.block()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.While):
		return p.whileStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() (ast.Stmt, *Error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expr: value}, nil
}

func (p *Parser) exprStmt() (ast.Stmt, *Error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: value}, nil
}

// block parses "{" declaration* "}" — declarations, so var is legal
// directly inside a block.
func (p *Parser) block() (ast.Stmt, *Error) {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Statements: stmts}, nil
}

// ifStmt uses statement (not declaration) for its branches, so a bare
// var is disallowed directly after if/else — this asymmetry with
// whileStmt is intentional (spec.md §4.2).
func (p *Parser) ifStmt() (ast.Stmt, *Error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Condition: cond, Then: thenBranch, Else: elseBranch}, nil
}

// whileStmt uses declaration for its body, permitting a bare var in
// loop-body position, unlike ifStmt (spec.md §4.2).
func (p *Parser) whileStmt() (ast.Stmt, *Error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after while condition."); err != nil {
		return nil, err
	}
	body, err := p.declaration()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Condition: cond, Body: body}, nil
}

func (p *Parser) expression() (ast.Expr, *Error) {
	return p.assignment()
}

// assignment is right-associative: after parsing the left side as a
// logic_or expression, a trailing '=' rewrites it into an Assignment
// node if the left side was exactly a Variable; the already-built
// tree is inspected, not re-parsed.
func (p *Parser) assignment() (ast.Expr, *Error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.match(token.Equal) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assignment{Name: v.Name, Value: value}, nil
		}
		return nil, newError(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expr, *Error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		opTok := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: ast.OperatorFromToken(opTok.Kind), OpTok: opTok, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expr, *Error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		opTok := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: ast.OperatorFromToken(opTok.Kind), OpTok: opTok, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, *Error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(token.BangEqual, token.EqualEqual) {
		opTok := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: ast.OperatorFromToken(opTok.Kind), OpTok: opTok, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expr, *Error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		opTok := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: ast.OperatorFromToken(opTok.Kind), OpTok: opTok, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expr, *Error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(token.Minus, token.Plus) {
		opTok := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: ast.OperatorFromToken(opTok.Kind), OpTok: opTok, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expr, *Error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(token.Slash, token.Star) {
		opTok := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: ast.OperatorFromToken(opTok.Kind), OpTok: opTok, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, *Error) {
	if p.match(token.Bang, token.Minus) {
		opTok := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: ast.OperatorFromToken(opTok.Kind), OpTok: opTok, Right: right}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expr, *Error) {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: token.Literal{Kind: token.LitBool, Bool: false}}, nil
	case p.match(token.True):
		return &ast.Literal{Value: token.Literal{Kind: token.LitBool, Bool: true}}, nil
	case p.match(token.Nil):
		return &ast.Literal{Value: token.Literal{Kind: token.LitNil}}, nil
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}, nil
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Inner: expr}, nil
	default:
		return nil, newError(p.peek(), fmt.Sprintf("Unexpected token %s in expression", p.peek().Kind))
	}
}

// synchronize advances past the token that caused the error, then
// skips tokens until the parser is confident a new statement begins:
// right after a semicolon, or right before one of the statement
// keywords (spec.md §4.2).
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(k token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(k token.Kind, message string) (token.Token, *Error) {
	if p.check(k) {
		return p.advance(), nil
	}
	return token.Token{}, newError(p.peek(), message)
}

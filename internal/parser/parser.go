// Package parser implements a recursive-descent parser over
// internal/lexer's token stream, producing an internal/ast.Program.
// Destructuring targets are recognized (so the grammar does not choke
// on them) but never decomposed — see internal/ast.Pattern.
package parser

import (
	"fmt"

	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/lexer"
	"github.com/arolab/typeflow/internal/token"
)

// Parser holds the two-token lookahead state the grammar needs, plus
// an overflow buffer for the arbitrary-lookahead arrow-function check
// (the lexer itself is forward-only, so any lookahead beyond peek has
// to be cached here rather than re-read).
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token
	buf  []token.Token

	errors []error
}

// New creates a Parser over l and primes the lookahead tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Parse parses a full module and returns the accumulated syntax
// errors alongside the (possibly partial) program.
func (p *Parser) Parse() (*ast.Program, []error) {
	program := &ast.Program{}

	for p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.next()
	}

	return program, p.errors
}

func (p *Parser) next() {
	p.cur = p.peek
	if len(p.buf) > 0 {
		p.peek = p.buf[0]
		p.buf = p.buf[1:]
		return
	}
	p.peek = p.l.NextToken()
}

// lookahead returns the token k positions beyond peek (lookahead(0) ==
// peek), filling buf from the lexer as needed. It never discards
// tokens: everything it reads stays in buf until next() consumes it.
func (p *Parser) lookahead(k int) token.Token {
	if k == 0 {
		return p.peek
	}
	for len(p.buf) < k {
		p.buf = append(p.buf, p.l.NextToken())
	}
	return p.buf[k-1]
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Errorf("parser: %s (at %s)", fmt.Sprintf(format, args...), p.cur.Loc))
}

func (p *Parser) expect(t token.Type) bool {
	if p.peek.Type != t {
		p.errorf("expected next token to be %s, got %s", t, p.peek.Type)
		return false
	}
	p.next()
	return true
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.CONST, token.LET, token.VAR:
		return p.parseVariableDeclaration()
	case token.IF:
		return p.parseIfStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMI:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableDeclaration() *ast.VariableDeclaration {
	tok := p.cur
	var kind ast.DeclarationKind
	switch tok.Type {
	case token.CONST:
		kind = ast.Const
	case token.LET:
		kind = ast.Let
	default:
		kind = ast.Var
	}

	decl := &ast.VariableDeclaration{Token: tok, Kind: kind}

	switch p.peek.Type {
	case token.LBRACKET:
		p.next()
		decl.Target = p.parseArrayPattern()
	case token.LBRACE:
		p.next()
		decl.Target = p.parseObjectPattern()
	default:
		if !p.expect(token.IDENT) {
			return decl
		}
		decl.Target = &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme}
	}

	if p.peek.Type == token.ASSIGN {
		p.next()
		p.next()
		decl.Init = p.parseAssignment()
	}

	if p.peek.Type == token.SEMI {
		p.next()
	}

	return decl
}

// parseArrayPattern / parseObjectPattern consume a balanced
// bracket/brace group without decomposing it; the analyzer hard-fails
// on any Pattern target, so the internal shape does not matter.
func (p *Parser) parseArrayPattern() *ast.ArrayPattern {
	tok := p.cur
	start := p.cur.Loc.Start
	depth := 1
	for depth > 0 && p.peek.Type != token.EOF {
		p.next()
		switch p.cur.Type {
		case token.LBRACKET:
			depth++
		case token.RBRACKET:
			depth--
		}
	}
	return &ast.ArrayPattern{Token: tok, Raw: fmt.Sprintf("[%d:%d]", start, p.cur.Loc.End)}
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	tok := p.cur
	start := p.cur.Loc.Start
	depth := 1
	for depth > 0 && p.peek.Type != token.EOF {
		p.next()
		switch p.cur.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}
	}
	return &ast.ObjectPattern{Token: tok, Raw: fmt.Sprintf("{%d:%d}", start, p.cur.Loc.End)}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur}
	p.next()

	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.next()
	}

	return block
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.cur}

	if !p.expect(token.LPAREN) {
		return stmt
	}
	p.next()
	stmt.Test = p.parseExpression()

	if !p.expect(token.RPAREN) {
		return stmt
	}
	if !p.expect(token.LBRACE) {
		return stmt
	}
	stmt.Consequent = p.parseBlockStatement()

	if p.peek.Type == token.ELSE {
		p.next()
		if p.peek.Type == token.IF {
			p.next()
			stmt.Alternate = p.parseIfStatement()
		} else if p.expect(token.LBRACE) {
			stmt.Alternate = p.parseBlockStatement()
		}
	}

	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.cur
	expr := p.parseExpression()

	if p.peek.Type == token.SEMI {
		p.next()
	}

	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

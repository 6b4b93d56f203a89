// Package ast defines the AST shape the type-flow engine consumes:
// an ECMAScript-family module of const/let/var declarations, expression
// statements and if-statements, following the teacher's node style
// (a Token-bearing struct per production exposing TokenLiteral and
// GetToken).
package ast

import "github.com/arolab/typeflow/internal/token"

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that appears in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of a parsed module.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// DeclarationKind distinguishes const/let/var.
type DeclarationKind int

const (
	Const DeclarationKind = iota
	Let
	Var
)

func (k DeclarationKind) String() string {
	switch k {
	case Const:
		return "const"
	case Let:
		return "let"
	case Var:
		return "var"
	default:
		return "var"
	}
}

// VariableDeclaration is `const|let|var <target> = <init>;`.
// Target is either a plain Identifier or a Pattern (destructuring,
// recognized by the parser but a hard-fail for the analyzer).
type VariableDeclaration struct {
	Token  token.Token
	Kind   DeclarationKind
	Target Node // *Identifier or Pattern
	Init   Expression
}

func (vd *VariableDeclaration) statementNode()        {}
func (vd *VariableDeclaration) TokenLiteral() string   { return vd.Token.Lexeme }
func (vd *VariableDeclaration) GetToken() token.Token  { return vd.Token }

// ExpressionStatement wraps a bare expression used as a statement.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// BlockStatement is `{ ...statements }`.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// IfStatement is `if (Test) Consequent [else Alternate]`.
type IfStatement struct {
	Token       token.Token
	Test        Expression
	Consequent  Statement
	Alternate   Statement // nil when there is no else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

package ast

import "github.com/arolab/typeflow/internal/token"

// Pattern marks a destructuring or rest target in a VariableDeclaration.
// The parser recognizes these productions but never decomposes them:
// per spec.md §6, pattern destructuring, assignment patterns and
// rest/void patterns abort analysis with a feature-gap error rather
// than being typed.
type Pattern interface {
	Node
	patternNode()
}

// ArrayPattern is `[a, b, ...rest]` used as a declaration target.
type ArrayPattern struct {
	Token token.Token
	Raw   string // unparsed contents, kept only for diagnostics
}

func (a *ArrayPattern) patternNode()         {}
func (a *ArrayPattern) TokenLiteral() string  { return a.Token.Lexeme }
func (a *ArrayPattern) GetToken() token.Token { return a.Token }

// ObjectPattern is `{a, b: c}` used as a declaration target.
type ObjectPattern struct {
	Token token.Token
	Raw   string
}

func (o *ObjectPattern) patternNode()         {}
func (o *ObjectPattern) TokenLiteral() string  { return o.Token.Lexeme }
func (o *ObjectPattern) GetToken() token.Token { return o.Token }

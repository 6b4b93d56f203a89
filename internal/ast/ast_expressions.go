package ast

import "github.com/arolab/typeflow/internal/token"

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// LiteralKind distinguishes the primitive literal forms.
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BooleanLiteral
	NullLiteral
	UndefinedLiteral
	RegExpLiteral
)

// Literal is a primitive literal: number, string, boolean, null,
// undefined or regexp.
type Literal struct {
	Token token.Token
	Kind  LiteralKind
	Value string
}

func (l *Literal) expressionNode()       {}
func (l *Literal) TokenLiteral() string  { return l.Token.Lexeme }
func (l *Literal) GetToken() token.Token { return l.Token }

// ThisExpression is the `this` keyword.
type ThisExpression struct {
	Token token.Token
}

func (t *ThisExpression) expressionNode()       {}
func (t *ThisExpression) TokenLiteral() string  { return t.Token.Lexeme }
func (t *ThisExpression) GetToken() token.Token { return t.Token }

// ArrayExpression is `[ e1, , ...e2 ]`. A nil element represents an
// elision (a hole left by a skipped comma).
type ArrayExpression struct {
	Token    token.Token
	Elements []Expression
}

func (a *ArrayExpression) expressionNode()       {}
func (a *ArrayExpression) TokenLiteral() string  { return a.Token.Lexeme }
func (a *ArrayExpression) GetToken() token.Token { return a.Token }

// PropertyKind distinguishes the four object-literal property forms.
type PropertyKind int

const (
	PropertyLiteral PropertyKind = iota
	PropertyShorthand
	PropertyMethod
	PropertySpread
)

// Property is one entry of an ObjectExpression.
type Property struct {
	Token    token.Token
	Kind     PropertyKind
	Key      Expression // nil for PropertySpread
	Value    Expression // the shorthand identifier, method function, or spread argument
	Computed bool
}

// ObjectExpression is `{ ...properties }`.
type ObjectExpression struct {
	Token      token.Token
	Properties []*Property
}

func (o *ObjectExpression) expressionNode()       {}
func (o *ObjectExpression) TokenLiteral() string  { return o.Token.Lexeme }
func (o *ObjectExpression) GetToken() token.Token { return o.Token }

// FunctionExpression is a named or anonymous `function` expression.
type FunctionExpression struct {
	Token  token.Token
	Params []*Identifier
	Body   *BlockStatement
}

func (f *FunctionExpression) expressionNode()       {}
func (f *FunctionExpression) TokenLiteral() string  { return f.Token.Lexeme }
func (f *FunctionExpression) GetToken() token.Token { return f.Token }

// ArrowFunctionExpression is `(params) => body`. Body may be an
// expression (implicit return) or a block.
type ArrowFunctionExpression struct {
	Token          token.Token
	Params         []*Identifier
	Body           Node // Expression or *BlockStatement
	ExpressionBody bool
}

func (a *ArrowFunctionExpression) expressionNode()       {}
func (a *ArrowFunctionExpression) TokenLiteral() string  { return a.Token.Lexeme }
func (a *ArrowFunctionExpression) GetToken() token.Token { return a.Token }

// BinaryExpression covers assignment (`=`), addition (`+`), the
// equality operators (`===`, `!==`) and every other binary operator,
// which the traversal parses but never surfaces as an event
// (spec: "deliberately not surfaced").
type BinaryExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpression) expressionNode()       {}
func (b *BinaryExpression) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BinaryExpression) GetToken() token.Token { return b.Token }

// MemberExpression is static `object.property` access.
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property *Identifier
}

func (m *MemberExpression) expressionNode()       {}
func (m *MemberExpression) TokenLiteral() string  { return m.Token.Lexeme }
func (m *MemberExpression) GetToken() token.Token { return m.Token }

// ComputedMemberExpression is `object[property]` access.
type ComputedMemberExpression struct {
	Token    token.Token
	Object   Expression
	Property Expression
}

func (c *ComputedMemberExpression) expressionNode()       {}
func (c *ComputedMemberExpression) TokenLiteral() string  { return c.Token.Lexeme }
func (c *ComputedMemberExpression) GetToken() token.Token { return c.Token }

// ConditionalExpression is the ternary `test ? consequent : alternate`.
type ConditionalExpression struct {
	Token      token.Token
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (c *ConditionalExpression) expressionNode()       {}
func (c *ConditionalExpression) TokenLiteral() string  { return c.Token.Lexeme }
func (c *ConditionalExpression) GetToken() token.Token { return c.Token }

// CallExpression is `callee(arguments...)`.
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (c *CallExpression) expressionNode()       {}
func (c *CallExpression) TokenLiteral() string  { return c.Token.Lexeme }
func (c *CallExpression) GetToken() token.Token { return c.Token }

// SequenceExpression is the comma operator `a, b, c`.
type SequenceExpression struct {
	Token       token.Token
	Expressions []Expression
}

func (s *SequenceExpression) expressionNode()       {}
func (s *SequenceExpression) TokenLiteral() string  { return s.Token.Lexeme }
func (s *SequenceExpression) GetToken() token.Token { return s.Token }

// TemplateLiteral is a backtick string. Its interpolations are never
// inspected by the analyzer (they are opaque text in the raw lexeme).
type TemplateLiteral struct {
	Token token.Token
	Raw   string
}

func (t *TemplateLiteral) expressionNode()       {}
func (t *TemplateLiteral) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TemplateLiteral) GetToken() token.Token { return t.Token }

// TaggedTemplateExpression is `tag`quasi``.
type TaggedTemplateExpression struct {
	Token token.Token
	Tag   Expression
	Quasi *TemplateLiteral
}

func (t *TaggedTemplateExpression) expressionNode()       {}
func (t *TaggedTemplateExpression) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TaggedTemplateExpression) GetToken() token.Token { return t.Token }

// UnaryExpression covers prefix operators (`!x`, `-x`, `typeof x`,
// prefix `++x`/`--x`) and postfix `x++`/`x--`.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
	Prefix   bool
}

func (u *UnaryExpression) expressionNode()       {}
func (u *UnaryExpression) TokenLiteral() string  { return u.Token.Lexeme }
func (u *UnaryExpression) GetToken() token.Token { return u.Token }

// SpreadElement is `...argument`, valid inside array/call argument
// lists (and, as a hard-fail case, object literals).
type SpreadElement struct {
	Token    token.Token
	Argument Expression
}

func (s *SpreadElement) expressionNode()       {}
func (s *SpreadElement) TokenLiteral() string  { return s.Token.Lexeme }
func (s *SpreadElement) GetToken() token.Token { return s.Token }

// MethodDefinition is one method of a ClassExpression's body.
type MethodDefinition struct {
	Token token.Token
	Key   *Identifier
	Value *FunctionExpression
}

// ClassExpression is `class [Name] [extends Super] { methods... }`.
type ClassExpression struct {
	Token   token.Token
	Name    *Identifier // nil for an anonymous class expression
	Super   Expression  // nil when there is no `extends` clause
	Methods []*MethodDefinition
}

func (c *ClassExpression) expressionNode()       {}
func (c *ClassExpression) TokenLiteral() string  { return c.Token.Lexeme }
func (c *ClassExpression) GetToken() token.Token { return c.Token }

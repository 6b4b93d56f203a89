package traversal

import (
	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/source"
)

// Event is one entry of the flat stream Walk produces. Concrete kinds
// below mirror the taxonomy the tracing and validation passes consume;
// every "linking" operator (assignment, member access, call, ...)
// carries NodeRefs for its operands rather than raw expressions, since
// those operands were already walked and have their own entries
// earlier in the stream.
type Event interface {
	eventNode()
}

// Identifier is a bare name reference.
type Identifier struct {
	Node *NodeRef
	Name string
}

func (Identifier) eventNode() {}

// Literal is a primitive literal.
type Literal struct {
	Node    *NodeRef
	Literal *ast.Literal
}

func (Literal) eventNode() {}

// Assignment is `left = right`; only the `=` operator surfaces this.
type Assignment struct {
	Node  *NodeRef
	Left  *NodeRef
	Right *NodeRef
}

func (Assignment) eventNode() {}

// Addition is `left + right`; only the `+` operator surfaces this.
type Addition struct {
	Node  *NodeRef
	Left  *NodeRef
	Right *NodeRef
}

func (Addition) eventNode() {}

// Equality is `left === right` or `left !== right`.
type Equality struct {
	Node     *NodeRef
	Left     *NodeRef
	Right    *NodeRef
	Operator string
}

func (Equality) eventNode() {}

// Conditional is the ternary `test ? consequent : alternate`.
type Conditional struct {
	Node       *NodeRef
	Test       *NodeRef
	Consequent *NodeRef
	Alternate  *NodeRef
}

func (Conditional) eventNode() {}

// PropertyAccess is static `object.property` access; the property
// name is already resolved textually, so it carries no NodeRef of its
// own.
type PropertyAccess struct {
	Node        *NodeRef
	Object      *NodeRef
	Property    string
	PropertyLoc source.Location
}

func (PropertyAccess) eventNode() {}

// DynamicPropertyAccess is `object[property]`; property is itself a
// walked sub-expression.
type DynamicPropertyAccess struct {
	Node     *NodeRef
	Object   *NodeRef
	Property *NodeRef
}

func (DynamicPropertyAccess) eventNode() {}

// Array wraps an array literal opaquely; its elements are typed by
// expression typing, not decomposed into further events.
type Array struct {
	Node *NodeRef
	Expr *ast.ArrayExpression
}

func (Array) eventNode() {}

// Sequence is the comma operator; Items are the already-walked member
// expressions in order.
type Sequence struct {
	Node  *NodeRef
	Items []*NodeRef
}

func (Sequence) eventNode() {}

// This is the `this` keyword.
type This struct {
	Node *NodeRef
	This *ast.ThisExpression
}

func (This) eventNode() {}

// PreOrPostFix covers every unary form this grammar parses: prefix
// `!`, `-`, `+`, `typeof`, prefix `++`/`--`, and postfix `++`/`--`.
type PreOrPostFix struct {
	Node    *NodeRef
	Operand *NodeRef
	Op      string
}

func (PreOrPostFix) eventNode() {}

// Template is a backtick string literal.
type Template struct {
	Node *NodeRef
}

func (Template) eventNode() {}

// FunctionCall is `callee(args...)`.
type FunctionCall struct {
	Node   *NodeRef
	Callee *NodeRef
	Args   []*NodeRef
}

func (FunctionCall) eventNode() {}

// Spread is `...argument`.
type Spread struct {
	Node     *NodeRef
	Argument *NodeRef
}

func (Spread) eventNode() {}

// Object wraps an object literal opaquely.
type Object struct {
	Node *NodeRef
	Expr *ast.ObjectExpression
}

func (Object) eventNode() {}

// Function wraps a function or arrow expression opaquely; Body is
// never itself walked (no inference through function bodies).
type Function struct {
	Node   *NodeRef
	Params []*ast.Identifier
	Body   ast.Node
}

func (Function) eventNode() {}

// Class wraps a class expression opaquely.
type Class struct {
	Node  *NodeRef
	Class *ast.ClassExpression
}

func (Class) eventNode() {}

// ConsequentBody marks an if-statement's consequent; Statement is the
// raw, not-yet-walked branch body, left for the validation pass to
// walk under its own narrowed child scope.
type ConsequentBody struct {
	Test      *NodeRef
	Statement ast.Statement
}

func (ConsequentBody) eventNode() {}

// AlternateBody marks the presence of an if-statement's else branch.
// Reserved for symmetric narrowing (open question §9a); currently a
// no-op downstream.
type AlternateBody struct {
	Expression *NodeRef
}

func (AlternateBody) eventNode() {}

// AfterIf marks the end of an if construct. Reserved for join-after-
// branch (open question §9a); currently a no-op downstream.
type AfterIf struct {
	Expression *NodeRef
}

func (AfterIf) eventNode() {}

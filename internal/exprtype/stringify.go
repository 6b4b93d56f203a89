package exprtype

import "github.com/arolab/typeflow/internal/ast"

// ExpressionToString renders expr for diagnostics and for deriving a
// computed member's property name from its textual form (spec.md
// §4.6). Grounded on expression_to_string in the original
// implementation. Literals, identifiers, `this` and static member
// chains render as source-like text and array literals as "Array";
// every other expression kind renders as a NotRepresentable(<kind>)
// placeholder.
func ExpressionToString(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value
	case *ast.Identifier:
		return e.Name
	case *ast.ThisExpression:
		return "this"
	case *ast.MemberExpression:
		return ExpressionToString(e.Object) + "." + e.Property.Name
	case *ast.ComputedMemberExpression:
		return "NotRepresentable(ComputedMember)"
	case *ast.ObjectExpression:
		return "NotRepresentable(Object)"
	case *ast.FunctionExpression:
		return "NotRepresentable(Function)"
	case *ast.ArrowFunctionExpression:
		return "NotRepresentable(Arrow)"
	case *ast.BinaryExpression:
		return "NotRepresentable(Binary)"
	case *ast.ArrayExpression:
		return "Array"
	case *ast.SequenceExpression:
		return "NotRepresentable(Sequence)"
	case *ast.ConditionalExpression:
		return "NotRepresentable(Conditional)"
	case *ast.CallExpression:
		return "NotRepresentable(Call)"
	case *ast.UnaryExpression:
		return "NotRepresentable(Unary)"
	case *ast.TemplateLiteral:
		return "NotRepresentable(Template)"
	case *ast.TaggedTemplateExpression:
		return "NotRepresentable(TaggedTemplate)"
	case *ast.SpreadElement:
		return "NotRepresentable(Spread)"
	case *ast.ClassExpression:
		return "NotRepresentable(Class)"
	default:
		return "NotRepresentable(Unknown)"
	}
}

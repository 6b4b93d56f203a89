package exprtype

import (
	"testing"

	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/lexer"
	"github.com/arolab/typeflow/internal/parser"
	"github.com/arolab/typeflow/internal/typesystem"
)

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	p := parser.New(lexer.New(src))
	program, errs := p.Parse()
	if len(errs) != 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected exactly one statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected an expression statement, got %T", program.Statements[0])
	}
	return stmt.Expression
}

func TestLiteralTypes(t *testing.T) {
	scope := typesystem.NewRootScope()

	cases := map[string]typesystem.Kind{
		`1`:         typesystem.KindNumber,
		`"x"`:       typesystem.KindString,
		`true`:      typesystem.KindBoolean,
		`null`:      typesystem.KindNull,
		`undefined`: typesystem.KindUndefined,
	}

	for src, want := range cases {
		expr := parseExpr(t, src+";")
		got, err := DetermineType(expr, scope)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", src, err)
		}
		if got.Kind != want {
			t.Errorf("%q: type = %v, want %v", src, got.Kind, want)
		}
	}
}

func TestUndefinedIdentifierIsScopeError(t *testing.T) {
	scope := typesystem.NewRootScope()
	expr := parseExpr(t, "missing;")

	_, err := DetermineType(expr, scope)
	if err == nil {
		t.Fatalf("expected a scope error for an undefined identifier")
	}
	if _, ok := err.(*typesystem.ScopeError); !ok {
		t.Errorf("expected *typesystem.ScopeError, got %T", err)
	}
}

func TestObjectLiteralBuildsAggregateWithProperties(t *testing.T) {
	scope := typesystem.NewRootScope()
	expr := parseExpr(t, `({ name: "x", count: 1 });`)

	got, err := DetermineType(expr, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != typesystem.KindObject {
		t.Fatalf("expected an Object type, got %v", got.Kind)
	}

	props := got.Properties()
	if props["name"].Kind != typesystem.KindString {
		t.Errorf("name property = %v, want String", props["name"].Kind)
	}
	if props["count"].Kind != typesystem.KindNumber {
		t.Errorf("count property = %v, want Number", props["count"].Kind)
	}
}

func TestObjectLiteralProtoDispatch(t *testing.T) {
	scope := typesystem.NewRootScope()

	undefinedProto := parseExpr(t, `({ __proto__: undefined, a: 1 });`)
	got, err := DetermineType(undefinedProto, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Agg.Prototype() != nil {
		t.Errorf("undefined __proto__ should leave the aggregate without a prototype")
	}
	if _, hasProto := got.Properties()["__proto__"]; hasProto {
		t.Errorf("__proto__ must be consumed, not left as a regular property")
	}

	fallback := parseExpr(t, `({ __proto__: 1, a: 1 });`)
	got2, err := DetermineType(fallback, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got2.Agg.Prototype() != typesystem.Aggregate(typesystem.ObjectPrototype) {
		t.Errorf("a non-aggregate __proto__ should fall back to ObjectPrototype")
	}
}

func TestArrayLiteralIsComposed(t *testing.T) {
	scope := typesystem.NewRootScope()
	expr := parseExpr(t, `[1, "a"];`)

	got, err := DetermineType(expr, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != typesystem.KindComposed {
		t.Fatalf("expected Composed, got %v", got.Kind)
	}
	if got.Composed.Outer != typesystem.Aggregate(typesystem.ArrayPrototype) {
		t.Errorf("array literal's outer aggregate should be ArrayPrototype")
	}
	if got.Composed.Inner.Kind != typesystem.KindMixed {
		t.Errorf("array literal's inner type should be a Mixed join of its elements")
	}
}

func TestConditionalTypeJoinsOnMismatch(t *testing.T) {
	scope := typesystem.NewRootScope()
	expr := parseExpr(t, `true ? 1 : "x";`)

	got, err := DetermineType(expr, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != typesystem.KindMixed {
		t.Errorf("mismatched branches should join into Mixed, got %v", got.Kind)
	}
}

func TestCallOnNonFunctionIsTypeError(t *testing.T) {
	scope := typesystem.NewRootScope()
	scope.Add(typesystem.NewVariable("n", typesystem.Const, typesystem.Number()))
	expr := parseExpr(t, `n();`)

	_, err := DetermineType(expr, scope)
	if err == nil {
		t.Fatalf("expected a NotFunction type error")
	}
	typeErr, ok := err.(*typesystem.TypeError)
	if !ok || typeErr.Kind != typesystem.NotFunction {
		t.Errorf("expected NotFunction TypeError, got %v", err)
	}
}

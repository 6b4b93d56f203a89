package tracing

import (
	"testing"

	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/lexer"
	"github.com/arolab/typeflow/internal/parser"
	"github.com/arolab/typeflow/internal/source"
	"github.com/arolab/typeflow/internal/typesystem"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	program, errs := p.Parse()
	if len(errs) != 0 {
		t.Fatalf("parse errors for %q: %v", src, errs)
	}
	return program
}

func TestTraceIdentifierAssignmentRecordsTypeChange(t *testing.T) {
	scope := typesystem.NewRootScope()
	n := typesystem.NewVariable("n", typesystem.Let, typesystem.Number())
	scope.Add(n)

	program := parseProgram(t, `n = "s";`)
	if errs := Run(program, scope); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if got := n.TypeAt(source.Location{Start: 10000, End: 10000}); got.Kind != typesystem.KindString {
		t.Errorf("n's type after the assignment = %v, want String", got.Kind)
	}
}

func TestTraceMemberAssignmentAddsProperty(t *testing.T) {
	scope := typesystem.NewRootScope()
	agg := typesystem.NewObjectAggregate("", map[string]typesystem.Type{"p": typesystem.Number()}, nil)
	scope.Add(typesystem.NewVariable("o", typesystem.Const, typesystem.NewObjectType(agg)))

	program := parseProgram(t, `o.q = "s";`)
	if errs := Run(program, scope); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	got, ok := agg.QueryProperty("q", source.Location{Start: 10000, End: 10000})
	if !ok || got.Kind != typesystem.KindString {
		t.Errorf("expected o.q to resolve to String after the assignment, got %v, ok=%v", got, ok)
	}
}

func TestTraceMemberAssignmentOnPrimitiveIsTypeError(t *testing.T) {
	scope := typesystem.NewRootScope()
	scope.Add(typesystem.NewVariable("n", typesystem.Const, typesystem.Number()))

	program := parseProgram(t, `n.q = "s";`)
	errs := Run(program, scope)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(errs), errs)
	}
	typeErr, ok := errs[0].(*typesystem.TypeError)
	if !ok || typeErr.Kind != typesystem.PrimitivePropertyWrite {
		t.Errorf("expected PrimitivePropertyWrite, got %v", errs[0])
	}
}

func TestTraceCallOnNonFunctionIsTypeError(t *testing.T) {
	scope := typesystem.NewRootScope()
	scope.Add(typesystem.NewVariable("n", typesystem.Const, typesystem.Number()))

	program := parseProgram(t, `n();`)
	errs := Run(program, scope)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(errs), errs)
	}
	typeErr, ok := errs[0].(*typesystem.TypeError)
	if !ok || typeErr.Kind != typesystem.NotFunction {
		t.Errorf("expected NotFunction, got %v", errs[0])
	}
}

func TestTraceCallRecordsInvocation(t *testing.T) {
	scope := typesystem.NewRootScope()
	fn := typesystem.NewFunctionAggregate("f", []string{"x"}, nil)
	scope.Add(typesystem.NewVariable("f", typesystem.Const, typesystem.NewFunctionType(fn)))

	program := parseProgram(t, `f(1);`)
	if errs := Run(program, scope); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	invocations := fn.Invocations()
	if len(invocations) != 1 || len(invocations[0].Args) != 1 || invocations[0].Args[0].Kind != typesystem.KindNumber {
		t.Errorf("expected one recorded invocation with a Number argument, got %+v", invocations)
	}
}

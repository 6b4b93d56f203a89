package validate

import (
	"testing"

	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/diagnostics"
	"github.com/arolab/typeflow/internal/exprtype"
	"github.com/arolab/typeflow/internal/lexer"
	"github.com/arolab/typeflow/internal/parser"
	"github.com/arolab/typeflow/internal/tracing"
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

func kindsOf(ds []*diagnostics.Diagnostic) []diagnostics.Kind {
	out := make([]diagnostics.Kind, len(ds))
	for i, d := range ds {
		out[i] = d.Kind
	}
	return out
}

func mustRun(t *testing.T, program *ast.Program, scope *typesystem.Scope) *diagnostics.Set {
	t.Helper()
	set, err := Run(program, scope)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	return set
}

func TestUndefinedVariableIsReported(t *testing.T) {
	scope := typesystem.NewRootScope()
	program := parseProgram(t, `missing;`)

	set := mustRun(t, program, scope)
	if got := kindsOf(set.Ordered()); len(got) != 1 || got[0] != diagnostics.UndefinedVariable {
		t.Errorf("expected one UndefinedVariable diagnostic, got %v", got)
	}
}

func TestUnknownPropertyIsReported(t *testing.T) {
	scope := typesystem.NewRootScope()
	agg := typesystem.NewObjectAggregate("", map[string]typesystem.Type{"p": typesystem.Number()}, nil)
	scope.Add(typesystem.NewVariable("o", typesystem.Const, typesystem.NewObjectType(agg)))

	program := parseProgram(t, `o.missing;`)
	set := mustRun(t, program, scope)

	if got := kindsOf(set.Ordered()); len(got) != 1 || got[0] != diagnostics.UnknownProperty {
		t.Errorf("expected one UnknownProperty diagnostic, got %v", got)
	}
}

func TestAssignTypeMismatchIsReported(t *testing.T) {
	scope := typesystem.NewRootScope()
	scope.Add(typesystem.NewVariable("n", typesystem.Let, typesystem.Number()))

	program := parseProgram(t, `n = "s";`)
	tracing.Run(program, scope)
	set := mustRun(t, program, scope)

	if got := kindsOf(set.Ordered()); len(got) != 1 || got[0] != diagnostics.AssignTypeMismatch {
		t.Errorf("expected one AssignTypeMismatch diagnostic, got %v", got)
	}
}

func TestAssignNullIsAlwaysAccepted(t *testing.T) {
	scope := typesystem.NewRootScope()
	scope.Add(typesystem.NewVariable("n", typesystem.Let, typesystem.Null()))

	program := parseProgram(t, `n = "s";`)
	tracing.Run(program, scope)
	set := mustRun(t, program, scope)

	if set.Len() != 0 {
		t.Errorf("expected no diagnostics for an assignment to a Null-declared variable, got %v", kindsOf(set.Ordered()))
	}
}

func TestCompareTypeMismatchIsReported(t *testing.T) {
	scope := typesystem.NewRootScope()
	scope.Add(typesystem.NewVariable("n", typesystem.Const, typesystem.Number()))

	program := parseProgram(t, `n === "s";`)
	set := mustRun(t, program, scope)

	if got := kindsOf(set.Ordered()); len(got) != 1 || got[0] != diagnostics.CompareTypeMismatch {
		t.Errorf("expected one CompareTypeMismatch diagnostic, got %v", got)
	}
}

func TestConsequentNarrowingWithdrawsCompareMismatch(t *testing.T) {
	scope := typesystem.NewRootScope()
	scope.Add(typesystem.NewVariable("x", typesystem.Let, typesystem.Number()))

	program := parseProgram(t, `if (x === "a") { x; }`)
	set := mustRun(t, program, scope)

	if set.Len() != 0 {
		t.Errorf("expected the compare mismatch to be withdrawn inside the narrowed branch, got %v", kindsOf(set.Ordered()))
	}
}

func TestConsequentNarrowingIgnoresNotStrictEquals(t *testing.T) {
	scope := typesystem.NewRootScope()
	scope.Add(typesystem.NewVariable("x", typesystem.Let, typesystem.Number()))

	program := parseProgram(t, `if (x !== "a") { x; }`)
	set := mustRun(t, program, scope)

	if got := kindsOf(set.Ordered()); len(got) != 1 || got[0] != diagnostics.CompareTypeMismatch {
		t.Errorf("expected the !== mismatch to stand, got %v", got)
	}
}

func TestPropertyWriteDoesNotReportUnknownProperty(t *testing.T) {
	scope := typesystem.NewRootScope()
	agg := typesystem.NewObjectAggregate("", map[string]typesystem.Type{"p": typesystem.Number()}, nil)
	scope.Add(typesystem.NewVariable("o", typesystem.Const, typesystem.NewObjectType(agg)))

	program := parseProgram(t, `o.q = "s"; o.q;`)
	tracing.Run(program, scope)
	set := mustRun(t, program, scope)

	if set.Len() != 0 {
		t.Errorf("expected no diagnostics once o.q has been written and traced, got %v", kindsOf(set.Ordered()))
	}
}

func TestNonsensicalComparisonIsReported(t *testing.T) {
	scope := typesystem.NewRootScope()

	program := parseProgram(t, `if (1 === 1) { 1; }`)
	set := mustRun(t, program, scope)

	if got := kindsOf(set.Ordered()); len(got) != 1 || got[0] != diagnostics.NonsensicalComparison {
		t.Errorf("expected one NonsensicalComparison diagnostic, got %v", got)
	}
}

func TestDynamicPropertyAccessWithNonStringKeyIsInvalidType(t *testing.T) {
	scope := typesystem.NewRootScope()
	agg := typesystem.NewArrayAggregate("Array", nil, typesystem.ArrayPrototype)
	scope.Add(typesystem.NewVariable("o", typesystem.Const, typesystem.NewComposed(agg, typesystem.Number())))

	program := parseProgram(t, `o[0];`)
	set := mustRun(t, program, scope)

	if got := kindsOf(set.Ordered()); len(got) != 1 || got[0] != diagnostics.InvalidType {
		t.Errorf("expected one InvalidType diagnostic, got %v", got)
	}
}

func TestObjectSpreadAbortsWithFeatureGap(t *testing.T) {
	scope := typesystem.NewRootScope()
	program := parseProgram(t, `const a = { b: 1 }; const c = { ...a };`)

	_, err := Run(program, scope)
	gap, ok := err.(*exprtype.FeatureGapError)
	if !ok || gap.Kind != exprtype.GapObjectSpread {
		t.Errorf("expected a GapObjectSpread feature-gap error, got %v", err)
	}
}

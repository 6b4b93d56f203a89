// Package tracing implements the type-change tracing pass: it reacts
// to top-level assignment and call statements, mutating the module
// scope's variables and aggregates in place so that later expression
// typing and validation see an accurate change trace. Grounded on
// original_source/src's tracing pass, restricted (per design note §9,
// open question d) to top-level statements only — nested assignments
// inside blocks are narrowed instead by the validation pass.
package tracing

import (
	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/exprtype"
	"github.com/arolab/typeflow/internal/typesystem"
)

// Run walks program's top-level statements and traces every
// assignment and call it finds. It returns the run-level errors
// produced along the way (undefined variables, not-a-function calls,
// primitive property writes); these are distinct from validation
// diagnostics, which the validation pass builds separately from the
// event stream. A feature gap (spec.md §7) halts the walk immediately
// instead of being appended alongside the rest.
func Run(program *ast.Program, scope *typesystem.Scope) []error {
	var errs []error
	for _, stmt := range program.Statements {
		es, ok := stmt.(*ast.ExpressionStatement)
		if !ok {
			continue
		}
		err := traceExpression(es.Expression, scope)
		if err == nil {
			continue
		}
		if _, ok := err.(*exprtype.FeatureGapError); ok {
			return []error{err}
		}
		errs = append(errs, err)
	}
	return errs
}

func traceExpression(expr ast.Expression, scope *typesystem.Scope) error {
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		if e.Operator == "=" {
			return traceAssignment(e, scope)
		}
		return nil
	case *ast.CallExpression:
		return traceCall(e, scope)
	default:
		return nil
	}
}

func traceAssignment(assign *ast.BinaryExpression, scope *typesystem.Scope) error {
	rightType, err := exprtype.DetermineType(assign.Right, scope)
	if err != nil {
		return err
	}

	switch left := assign.Left.(type) {
	case *ast.Identifier:
		v, ok := scope.Locate(left.Name)
		if !ok {
			return typesystem.NewScopeError(left.Name, scope.String())
		}
		v.RecordTypeChange(rightType, assign.Token.Loc)
		return nil

	case *ast.MemberExpression:
		objType, err := exprtype.DetermineType(left.Object, scope)
		if err != nil {
			return err
		}
		switch objType.Kind {
		case typesystem.KindObject, typesystem.KindFunction:
			objType.Agg.Mutate(left.Property.Name, rightType, assign.Token.Loc.CollapseAfter())
			return nil
		default:
			return typesystem.NewTypeError(typesystem.PrimitivePropertyWrite, left.Property.Name)
		}

	default:
		// Assigning to anything else (a computed member, a pattern)
		// is outside what the tracing pass reacts to.
		return nil
	}
}

func traceCall(call *ast.CallExpression, scope *typesystem.Scope) error {
	calleeType, err := exprtype.DetermineType(call.Callee, scope)
	if err != nil {
		return err
	}

	args := make([]typesystem.Type, len(call.Arguments))
	for i, a := range call.Arguments {
		t, err := exprtype.DetermineType(a, scope)
		if err != nil {
			return err
		}
		args[i] = t
	}

	if calleeType.Kind != typesystem.KindFunction {
		return typesystem.NewTypeError(typesystem.NotFunction, exprtype.ExpressionToString(call.Callee))
	}
	calleeType.Agg.(*typesystem.FunctionAggregate).TraceInvocation(args, call.Token.Loc)
	return nil
}

// Package flowcheck wires the declaration walk, tracing pass and
// validation pass into one entry point, following the data flow
// spec.md §2 lays out: AST → declaration walk building module scope →
// tracing pass → traversal events → validation pass.
package flowcheck

import (
	"fmt"

	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/diagnostics"
	"github.com/arolab/typeflow/internal/exprtype"
	"github.com/arolab/typeflow/internal/tracing"
	"github.com/arolab/typeflow/internal/typesystem"
	"github.com/arolab/typeflow/internal/validate"
)

// PatternError is returned when a declaration targets a destructuring
// pattern: the parser recognizes the production but the analyzer
// hard-fails on it (spec.md §6).
type PatternError struct {
	Kind string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s destructuring pattern is not implemented", e.Kind)
}

// Result is one completed analysis run: the populated module scope
// and the diagnostics the validation pass produced.
type Result struct {
	Scope       *typesystem.Scope
	Diagnostics *diagnostics.Set

	// RunErrors holds the tracing pass's non-fatal run-level errors
	// (not-a-function calls, primitive property writes) — distinct
	// from Diagnostics, which only ever holds ValidationError kinds.
	RunErrors []error
}

// Run analyzes program end to end: build the module scope from its
// top-level declarations, trace assignments and calls, then validate.
// A destructuring pattern or a feature gap (object-literal spread)
// aborts the run and is returned as err.
func Run(program *ast.Program) (*Result, error) {
	scope := typesystem.NewRootScope()
	if err := declare(program, scope); err != nil {
		return nil, err
	}

	runErrs := tracing.Run(program, scope)
	if len(runErrs) == 1 {
		if gap, ok := runErrs[0].(*exprtype.FeatureGapError); ok {
			return nil, gap
		}
	}

	diags, err := validate.Run(program, scope)
	if err != nil {
		return nil, err
	}

	return &Result{Scope: scope, Diagnostics: diags, RunErrors: runErrs}, nil
}

// declare builds the module scope from program's top-level const/let/var
// declarations, in source order, so that a later declaration's
// initializer can reference an earlier one. A destructuring pattern
// target aborts immediately, per spec.md §6.
func declare(program *ast.Program, scope *typesystem.Scope) error {
	for _, stmt := range program.Statements {
		decl, ok := stmt.(*ast.VariableDeclaration)
		if !ok {
			continue
		}

		ident, ok := decl.Target.(*ast.Identifier)
		if !ok {
			return patternError(decl.Target)
		}

		initial := typesystem.Undefined()
		if decl.Init != nil {
			t, err := exprtype.DetermineType(decl.Init, scope)
			if err != nil {
				return err
			}
			initial = t
			initial.AssignName(ident.Name)
		}

		kind := declKind(decl.Kind)
		v := typesystem.NewVariable(ident.Name, kind, initial)
		scope.Add(v)

		if initial.Kind == typesystem.KindObject || initial.Kind == typesystem.KindFunction {
			scope.AddType(initial.Agg)
		}
	}
	return nil
}

func declKind(k ast.DeclarationKind) typesystem.DeclKind {
	switch k {
	case ast.Const:
		return typesystem.Const
	case ast.Let:
		return typesystem.Let
	default:
		return typesystem.Var
	}
}

func patternError(target ast.Node) error {
	switch target.(type) {
	case *ast.ArrayPattern:
		return &PatternError{Kind: "array"}
	case *ast.ObjectPattern:
		return &PatternError{Kind: "object"}
	default:
		return &PatternError{Kind: "unknown"}
	}
}

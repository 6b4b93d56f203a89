package typesystem

import "github.com/arolab/typeflow/internal/source"

// DeclKind distinguishes const/let/var for a Variable.
type DeclKind int

const (
	Const DeclKind = iota
	Let
	Var
)

func (k DeclKind) String() string {
	switch k {
	case Const:
		return "const"
	case Let:
		return "let"
	default:
		return "var"
	}
}

// Variable is a named binding with a declared (initializer) type and
// a trace of subsequent reassignments.
type Variable struct {
	Name    string
	Kind    DeclKind
	Initial Type
	trace   *ChangeTrace
}

func NewVariable(name string, kind DeclKind, initial Type) *Variable {
	return &Variable{Name: name, Kind: kind, Initial: initial, trace: NewChangeTrace()}
}

// RecordTypeChange appends a reassignment. Used both by real
// assignment tracing and by the validation pass's narrowing rule.
func (v *Variable) RecordTypeChange(newType Type, loc source.Location) {
	v.trace.Append(TraceEntry{Attr: TypeChange, NewType: newType, Loc: loc})
}

// TypeAt returns the effective type at a source position: the most
// recent TypeChange at or before at.Start, else the declared initial
// type.
func (v *Variable) TypeAt(at source.Location) Type {
	if entry, found := v.trace.FindRev(func(e TraceEntry) bool {
		return e.Attr == TypeChange && e.Loc.Start <= at.Start
	}); found {
		return entry.NewType
	}
	return v.Initial
}

// Clone returns an independent variable with the same declared type
// and trace history, for a child scope's narrowed binding.
func (v *Variable) Clone() *Variable {
	return &Variable{Name: v.Name, Kind: v.Kind, Initial: v.Initial, trace: v.trace.Clone()}
}

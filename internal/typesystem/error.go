package typesystem

import "fmt"

// ScopeError is the one scope-error kind: a name that could not be
// located in the chain. Expression typing converts this into a
// validation diagnostic at the call site (spec.md §7).
type ScopeError struct {
	Name      string
	ScopeName string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("undefined variable %q in scope %q", e.Name, e.ScopeName)
}

func NewScopeError(name, scopeName string) *ScopeError {
	return &ScopeError{Name: name, ScopeName: scopeName}
}

// TypeErrorKind discriminates the type-error taxonomy.
type TypeErrorKind int

const (
	IncompatiblePrototype TypeErrorKind = iota
	NotFunction
	PrimitivePropertyWrite
)

func (k TypeErrorKind) String() string {
	switch k {
	case IncompatiblePrototype:
		return "IncompatiblePrototype"
	case NotFunction:
		return "NotFunction"
	case PrimitivePropertyWrite:
		return "PrimitivePropertyWrite"
	default:
		return "Unknown"
	}
}

// TypeError is produced during expression typing and tracing: a
// prototype that doesn't resolve to an aggregate, a call on a
// non-function, or a property write onto a primitive.
type TypeError struct {
	Kind    TypeErrorKind
	Subject string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Subject)
}

func NewTypeError(kind TypeErrorKind, subject string) *TypeError {
	return &TypeError{Kind: kind, Subject: subject}
}

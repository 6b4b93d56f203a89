// Package diagnostics holds the validation pass's output: a
// deduplicated, source-ordered set of ValidationError records,
// grounded on original_source/src's diagnostic set but using Go
// pointer identity (rather than an explicit id field) as the dedup and
// withdraw-by-identity key, per spec.md §4.10.
package diagnostics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arolab/typeflow/internal/source"
)

// Kind identifies one of the six validation diagnostic taxonomies.
type Kind int

const (
	UndefinedVariable Kind = iota
	UnknownProperty
	AssignTypeMismatch
	CompareTypeMismatch
	InvalidType
	NonsensicalComparison
)

func (k Kind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case UnknownProperty:
		return "UnknownProperty"
	case AssignTypeMismatch:
		return "AssignTypeMismatch"
	case CompareTypeMismatch:
		return "CompareTypeMismatch"
	case InvalidType:
		return "InvalidType"
	case NonsensicalComparison:
		return "NonsensicalComparison"
	default:
		return "Unknown"
	}
}

// Diagnostic is one validation error. Only the fields relevant to its
// Kind are populated; see the New* constructors. Diagnostics are
// always handled by pointer: the set dedups and withdraws by pointer
// identity, not by value equality, so that the same instance attached
// to a node's metadata can be inserted and later removed as one
// record (spec.md §9 "Withdrawn diagnostics").
type Diagnostic struct {
	Kind     Kind
	Location source.Location

	VariableName string
	ScopeName    string
	Object       string
	Property     string
	Target       string
	OwnType      string
	TheirType    string
	LeftType     string
	RightType    string
	Expression   string
	CurrentType  string
	ExpectedType string
}

func NewUndefinedVariable(name, scopeName string, loc source.Location) *Diagnostic {
	return &Diagnostic{Kind: UndefinedVariable, Location: loc, VariableName: name, ScopeName: scopeName}
}

func NewUnknownProperty(object, property string, loc source.Location) *Diagnostic {
	return &Diagnostic{Kind: UnknownProperty, Location: loc, Object: object, Property: property}
}

func NewAssignTypeMismatch(target, ownType, theirType string, loc source.Location) *Diagnostic {
	return &Diagnostic{Kind: AssignTypeMismatch, Location: loc, Target: target, OwnType: ownType, TheirType: theirType}
}

func NewCompareTypeMismatch(leftType, rightType string, loc source.Location) *Diagnostic {
	return &Diagnostic{Kind: CompareTypeMismatch, Location: loc, LeftType: leftType, RightType: rightType}
}

func NewInvalidType(expression, currentType, expectedType string, loc source.Location) *Diagnostic {
	return &Diagnostic{Kind: InvalidType, Location: loc, Expression: expression, CurrentType: currentType, ExpectedType: expectedType}
}

func NewNonsensicalComparison(expression string, loc source.Location) *Diagnostic {
	return &Diagnostic{Kind: NonsensicalComparison, Location: loc, Expression: expression}
}

// Message renders a human-readable description of the diagnostic.
func (d *Diagnostic) Message() string {
	switch d.Kind {
	case UndefinedVariable:
		return fmt.Sprintf("undefined variable %q in scope %s", d.VariableName, d.ScopeName)
	case UnknownProperty:
		return fmt.Sprintf("unknown property %q on %s", d.Property, d.Object)
	case AssignTypeMismatch:
		return fmt.Sprintf("cannot assign %s to %s (%s)", d.TheirType, d.Target, d.OwnType)
	case CompareTypeMismatch:
		return fmt.Sprintf("comparing %s with %s", d.LeftType, d.RightType)
	case InvalidType:
		return fmt.Sprintf("%s has type %s, expected %s", d.Expression, d.CurrentType, d.ExpectedType)
	case NonsensicalComparison:
		return fmt.Sprintf("comparison %s is always the same value", d.Expression)
	default:
		return "invalid diagnostic"
	}
}

// Set is a deduplicated, source-ordered collection of diagnostics.
// Membership and removal are by pointer identity.
type Set struct {
	mu      sync.Mutex
	order   []*Diagnostic
	present map[*Diagnostic]bool
}

// NewSet returns an empty diagnostic set.
func NewSet() *Set {
	return &Set{present: make(map[*Diagnostic]bool)}
}

// Insert adds d to the set if it is not already present.
func (s *Set) Insert(d *Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.present[d] {
		return
	}
	s.present[d] = true
	s.order = append(s.order, d)
}

// Remove withdraws d from the set, if present.
func (s *Set) Remove(d *Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present[d] {
		return
	}
	delete(s.present, d)
	for i, existing := range s.order {
		if existing == d {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len reports how many diagnostics are currently in the set.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Ordered returns every diagnostic currently in the set, sorted by
// Location.Start ascending (stable on ties, preserving insertion
// order between diagnostics at the same offset).
func (s *Set) Ordered() []*Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Diagnostic, len(s.order))
	copy(out, s.order)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Location.Start < out[j].Location.Start })
	return out
}

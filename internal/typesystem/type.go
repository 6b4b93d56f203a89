// Package typesystem implements the type lattice, change traces,
// aggregates and scopes the type-flow engine reasons over: the
// mutable model of "what type is this variable/property right now, at
// this point in the source".
package typesystem

import (
	"strings"

	"github.com/arolab/typeflow/internal/source"
)

// Kind discriminates the variants of Type.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindRegExp
	KindUndefined
	KindNull
	KindObject
	KindFunction
	KindMixed
	KindComposed
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindRegExp:
		return "RegExp"
	case KindUndefined:
		return "Undefined"
	case KindNull:
		return "Null"
	case KindObject:
		return "Object"
	case KindFunction:
		return "Function"
	case KindMixed:
		return "Mixed"
	case KindComposed:
		return "Composed"
	default:
		return "Unknown"
	}
}

// Composed pairs a container aggregate (e.g. the Array prototype)
// with the type of its elements.
type Composed struct {
	Outer Aggregate
	Inner Type
}

// Type is the closed sum spec.md §3 describes: primitives, the two
// aggregate variants, a union (Mixed) and a container (Composed). It
// is a plain value: copying it shares any embedded Aggregate handle,
// which is what keeps aggregate identity stable across clones.
type Type struct {
	Kind     Kind
	Agg      Aggregate // set for KindObject / KindFunction
	Mixed    []Type    // set for KindMixed
	Composed *Composed // set for KindComposed
}

func Number() Type    { return Type{Kind: KindNumber} }
func String() Type    { return Type{Kind: KindString} }
func Boolean() Type   { return Type{Kind: KindBoolean} }
func RegExp() Type    { return Type{Kind: KindRegExp} }
func Undefined() Type { return Type{Kind: KindUndefined} }
func Null() Type      { return Type{Kind: KindNull} }

func NewObjectType(agg Aggregate) Type   { return Type{Kind: KindObject, Agg: agg} }
func NewFunctionType(agg Aggregate) Type { return Type{Kind: KindFunction, Agg: agg} }

// NewMixed builds a union, retaining duplicates and source order as
// spec.md requires (it is a join, not a set).
func NewMixed(types ...Type) Type {
	return Type{Kind: KindMixed, Mixed: types}
}

func NewComposed(outer Aggregate, inner Type) Type {
	return Type{Kind: KindComposed, Composed: &Composed{Outer: outer, Inner: inner}}
}

// Properties returns a read-only snapshot of t's property map: the
// aggregate's own map for Object/Function, else the Object prototype
// fallback (every other variant behaves like a valueless instance of
// Object for property lookup purposes).
func (t Type) Properties() map[string]Type {
	switch t.Kind {
	case KindObject, KindFunction:
		return t.Agg.Properties()
	default:
		return ObjectPrototype.Properties()
	}
}

// QueryProperty looks up name on t at source position at. Only
// Object/Function aggregates answer; every other variant returns
// not-found.
func (t Type) QueryProperty(name string, at source.Location) (Type, bool) {
	switch t.Kind {
	case KindObject, KindFunction:
		return t.Agg.QueryProperty(name, at)
	default:
		return Type{}, false
	}
}

// AssignName is a no-op on primitives; on aggregates it defers to the
// aggregate's first-writer-wins AssignName.
func (t Type) AssignName(name string) {
	if t.Kind == KindObject || t.Kind == KindFunction {
		t.Agg.AssignName(name)
	}
}

// Unwrap returns the element type of a Composed container, or t
// unchanged otherwise.
func (t Type) Unwrap() Type {
	if t.Kind == KindComposed {
		return t.Composed.Inner
	}
	return t
}

// String is the canonical display form used in diagnostics.
func (t Type) String() string {
	switch t.Kind {
	case KindNumber, KindString, KindBoolean, KindRegExp, KindUndefined, KindNull:
		return t.Kind.String()
	case KindObject:
		if name := t.Agg.Name(); name != "" {
			return name
		}
		return "ObjectLiteral"
	case KindFunction:
		if name := t.Agg.Name(); name != "" {
			return name
		}
		return "AnonymousFunction"
	case KindMixed:
		parts := make([]string, len(t.Mixed))
		for i, m := range t.Mixed {
			parts[i] = m.String()
		}
		return strings.Join(parts, " | ")
	case KindComposed:
		outerName := t.Composed.Outer.Name()
		if outerName == "" {
			outerName = "ObjectLiteral"
		}
		return outerName + "<" + t.Composed.Inner.String() + ">"
	default:
		return "Unknown"
	}
}

// Equal is structural equality: aggregates compare by identity,
// Mixed/Composed recurse, primitives compare by Kind alone.
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindObject, KindFunction:
		if a.Agg == nil || b.Agg == nil {
			return a.Agg == b.Agg
		}
		return a.Agg.ID() == b.Agg.ID()
	case KindMixed:
		if len(a.Mixed) != len(b.Mixed) {
			return false
		}
		for i := range a.Mixed {
			if !Equal(a.Mixed[i], b.Mixed[i]) {
				return false
			}
		}
		return true
	case KindComposed:
		return a.Composed.Outer.ID() == b.Composed.Outer.ID() && Equal(a.Composed.Inner, b.Composed.Inner)
	default:
		return true
	}
}

package typesystem

import "encoding/json"

// TypeSnapshot is the wire form of a Type (spec.md §6): unit strings
// for primitives, tagged objects for the four variants that carry a
// payload.
//
// encoding/json is used here rather than a third-party codec: no
// example repo in the corpus imports one directly for its own wire
// format (yaml.v3 covers config, and the two JSON libraries that
// appear anywhere in the pack's go.mod files arrive only as indirect,
// transitive dependencies of unrelated tooling, never as something a
// repo's own code imports) so there is nothing grounded to reach for
// besides the standard library.
type TypeSnapshot struct {
	Primitive string            `json:"primitive,omitempty"`
	Object    string            `json:"Object,omitempty"`
	Function  string            `json:"Function,omitempty"`
	Mixed     []TypeSnapshot    `json:"Mixed,omitempty"`
	Composed  *ComposedSnapshot `json:"Composed,omitempty"`
}

// MarshalJSON writes a primitive as its bare name ("Number") and every
// other variant as its tagged object.
func (t TypeSnapshot) MarshalJSON() ([]byte, error) {
	if t.Primitive != "" {
		return json.Marshal(t.Primitive)
	}
	type tagged TypeSnapshot
	return json.Marshal(tagged(t))
}

type ComposedSnapshot struct {
	Outer string       `json:"outer"`
	Inner TypeSnapshot `json:"inner"`
}

// Snapshot converts t into its wire form.
func (t Type) Snapshot() TypeSnapshot {
	switch t.Kind {
	case KindObject:
		return TypeSnapshot{Object: t.Agg.ID().String()}
	case KindFunction:
		return TypeSnapshot{Function: t.Agg.ID().String()}
	case KindMixed:
		out := make([]TypeSnapshot, len(t.Mixed))
		for i, m := range t.Mixed {
			out[i] = m.Snapshot()
		}
		return TypeSnapshot{Mixed: out}
	case KindComposed:
		return TypeSnapshot{Composed: &ComposedSnapshot{
			Outer: t.Composed.Outer.ID().String(),
			Inner: t.Composed.Inner.Snapshot(),
		}}
	default:
		return TypeSnapshot{Primitive: t.Kind.String()}
	}
}

// VariableSnapshot is one entry of a ScopeSnapshot's Variables map.
type VariableSnapshot struct {
	Name        string       `json:"name"`
	CurrentType TypeSnapshot `json:"current_type"`
	Kind        string       `json:"kind"`
}

// AggregateSnapshot is one entry of a ScopeSnapshot's TypeDeclarations
// map: an aggregate's id, property map and is-array flag.
type AggregateSnapshot struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	IsArray    bool                    `json:"is_array"`
	Properties map[string]TypeSnapshot `json:"properties"`
}

// ScopeSnapshot is the serializable module scope spec.md §6
// describes.
type ScopeSnapshot struct {
	Name             string                       `json:"name"`
	Parent           string                       `json:"parent,omitempty"`
	Variables        map[string]VariableSnapshot  `json:"variables"`
	TypeDeclarations map[string]AggregateSnapshot `json:"type_declarations"`
}

// Snapshot converts s into its wire form, using s's effective type at
// the end of the source (the widest possible query location) for
// each variable's current_type.
func (s *Scope) Snapshot(atEnd func(*Variable) Type) ScopeSnapshot {
	out := ScopeSnapshot{
		Name:             s.name,
		Variables:        make(map[string]VariableSnapshot),
		TypeDeclarations: make(map[string]AggregateSnapshot),
	}
	if s.parent != nil {
		out.Parent = s.parent.name
	}

	for name, v := range s.Variables() {
		out.Variables[name] = VariableSnapshot{
			Name:        name,
			CurrentType: atEnd(v).Snapshot(),
			Kind:        v.Kind.String(),
		}
	}

	for id, agg := range s.Types() {
		props := make(map[string]TypeSnapshot)
		for name, t := range agg.Properties() {
			props[name] = t.Snapshot()
		}
		out.TypeDeclarations[id.String()] = AggregateSnapshot{
			ID:         id.String(),
			Name:       agg.Name(),
			IsArray:    agg.IsArray(),
			Properties: props,
		}
	}

	return out
}

// MarshalScope is a thin convenience wrapper over json.Marshal for
// callers (the CLI's -dump-scope flag) that only need bytes.
func MarshalScope(snap ScopeSnapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

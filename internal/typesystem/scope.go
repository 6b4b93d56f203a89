package typesystem

import "github.com/google/uuid"

// Scope is a named lexical frame with a parent link, following the
// teacher's Environment (internal/evaluator) in shape: a guarded map
// plus chain lookup into the parent on miss.
type Scope struct {
	mu     guard
	name   string
	parent *Scope

	variables map[string]*Variable
	types     map[uuid.UUID]Aggregate

	// bound tracks bind-copies by the ORIGINAL aggregate's id, so a
	// second Bind of the same source aggregate returns the same copy
	// rather than minting another one.
	bound map[uuid.UUID]Aggregate
}

// NewScope creates a root scope (no parent).
func NewScope(name string) *Scope {
	return newScope(name, nil)
}

// NewChildScope creates a scope nested under parent.
func NewChildScope(name string, parent *Scope) *Scope {
	return newScope(name, parent)
}

func newScope(name string, parent *Scope) *Scope {
	return &Scope{
		name:      name,
		parent:    parent,
		variables: make(map[string]*Variable),
		types:     make(map[uuid.UUID]Aggregate),
		bound:     make(map[uuid.UUID]Aggregate),
	}
}

func (s *Scope) Name() string   { return s.name }
func (s *Scope) Parent() *Scope { return s.parent }

// LocateOwn finds a variable declared directly in this scope.
func (s *Scope) LocateOwn(name string) (*Variable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.variables[name]
	return v, ok
}

// LocateChain finds a variable in this scope, else its ancestors.
func (s *Scope) LocateChain(name string) (*Variable, bool) {
	if v, ok := s.LocateOwn(name); ok {
		return v, true
	}
	if s.parent != nil {
		return s.parent.LocateChain(name)
	}
	return nil, false
}

// Locate is an alias for LocateChain.
func (s *Scope) Locate(name string) (*Variable, bool) {
	return s.LocateChain(name)
}

// Add inserts v by name; last writer wins.
func (s *Scope) Add(v *Variable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variables[v.Name] = v
}

// AddType registers agg by id if not already present.
func (s *Scope) AddType(agg Aggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.types[agg.ID()]; !ok {
		s.types[agg.ID()] = agg
	}
}

// Types returns a snapshot of the registered aggregates.
func (s *Scope) Types() map[uuid.UUID]Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]Aggregate, len(s.types))
	for k, v := range s.types {
		out[k] = v
	}
	return out
}

// Variables returns a snapshot of the scope's own variables.
func (s *Scope) Variables() map[string]*Variable {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*Variable, len(s.variables))
	for k, v := range s.variables {
		out[k] = v
	}
	return out
}

// BindVariable returns the variable this scope already holds under
// v's name, if any; otherwise it inserts and returns an independent
// clone of v. Repeated calls with the same source variable are
// idempotent.
func (s *Scope) BindVariable(v *Variable) *Variable {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.variables[v.Name]; ok {
		return existing
	}
	cp := v.Clone()
	s.variables[cp.Name] = cp
	return cp
}

// BindAggregate returns the existing narrowed copy of agg in this
// scope if one was already bound (tracked by agg's original id);
// otherwise it clones agg, registers the clone, and returns it.
func (s *Scope) BindAggregate(agg Aggregate) Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cp, ok := s.bound[agg.ID()]; ok {
		return cp
	}
	cp := agg.Clone()
	s.bound[agg.ID()] = cp
	s.types[cp.ID()] = cp
	return cp
}

// String renders the parent chain joined by " > ", root first.
func (s *Scope) String() string {
	if s.parent == nil {
		return s.name
	}
	return s.parent.String() + " > " + s.name
}

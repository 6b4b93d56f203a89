package typesystem

import (
	"github.com/arolab/typeflow/internal/source"
	"github.com/google/uuid"
)

// Aggregate is the closed two-variant sum design note §9 calls for:
// Object and Function aggregates share identity, naming, a property
// map and a per-aggregate change trace. Rather than exposing a
// general CustomType interface, the sum is just these two concrete
// types behind one interface of shared operations; anything
// Function-specific (parameters, invocations, return type) is reached
// through a type assertion to *FunctionAggregate.
type Aggregate interface {
	ID() uuid.UUID
	Name() string
	AssignName(name string)
	IsArray() bool
	Prototype() Aggregate
	Properties() map[string]Type
	QueryProperty(name string, at source.Location) (Type, bool)
	SetStaticProperty(name string, t Type)
	Mutate(name string, newType Type, loc source.Location)
	ForceUpdate(name string, newType Type, loc source.Location)
	Clone() Aggregate
}

// core holds everything Object and Function aggregates share.
type core struct {
	mu         guard
	id         uuid.UUID
	name       string
	properties map[string]Type
	prototype  Aggregate
	trace      *ChangeTrace
}

func newCore(name string, properties map[string]Type, prototype Aggregate) *core {
	props := make(map[string]Type, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	return &core{
		id:         uuid.New(),
		name:       name,
		properties: props,
		prototype:  prototype,
		trace:      NewChangeTrace(),
	}
}

func (c *core) ID() uuid.UUID { return c.id }

func (c *core) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// AssignName is first-writer-wins: a name already set is never
// overwritten.
func (c *core) AssignName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.name == "" {
		c.name = name
	}
}

func (c *core) Prototype() Aggregate { return c.prototype }

func (c *core) Properties() map[string]Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]Type, len(c.properties))
	for k, v := range c.properties {
		out[k] = v
	}
	return out
}

func (c *core) SetStaticProperty(name string, t Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.properties[name] = t
}

// QueryProperty resolves in trace-then-static order: the most recent
// trace entry for name whose loc.Start is at or before at.End wins;
// Remove yields "not found", Add/Update yield the recorded type. With
// no matching trace entry, the static property map is consulted.
func (c *core) QueryProperty(name string, at source.Location) (Type, bool) {
	if entry, found := c.trace.FindRev(func(e TraceEntry) bool {
		return e.PropertyName == name && e.Loc.Start <= at.End
	}); found {
		if entry.Attr == PropertyRemove {
			return Type{}, false
		}
		return entry.NewType, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.properties[name]
	return t, ok
}

// Mutate records a property write at loc, tagging it Add or Update
// depending on whether the static map already has the property.
func (c *core) Mutate(name string, newType Type, loc source.Location) {
	c.mu.Lock()
	_, exists := c.properties[name]
	c.mu.Unlock()

	attr := PropertyAdd
	if exists {
		attr = PropertyUpdate
	}
	c.trace.Append(TraceEntry{Attr: attr, PropertyName: name, NewType: newType, Loc: loc})
}

// ForceUpdate records an unconditional Update entry, used by the
// validation pass's consequent-narrowing rule rather than real
// assignment tracing.
func (c *core) ForceUpdate(name string, newType Type, loc source.Location) {
	c.trace.Append(TraceEntry{Attr: PropertyUpdate, PropertyName: name, NewType: newType, Loc: loc})
}

func (c *core) cloneCore() *core {
	c.mu.Lock()
	props := make(map[string]Type, len(c.properties))
	for k, v := range c.properties {
		props[k] = v
	}
	name := c.name
	proto := c.prototype
	c.mu.Unlock()

	return &core{
		id:         uuid.New(),
		name:       name,
		properties: props,
		prototype:  proto,
		trace:      c.trace.Clone(),
	}
}

// ObjectAggregate is a plain object or, with IsArray set, the backing
// aggregate for a Composed array container.
type ObjectAggregate struct {
	*core
	isArray bool
}

func NewObjectAggregate(name string, properties map[string]Type, prototype Aggregate) *ObjectAggregate {
	return &ObjectAggregate{core: newCore(name, properties, prototype)}
}

func NewArrayAggregate(name string, properties map[string]Type, prototype Aggregate) *ObjectAggregate {
	return &ObjectAggregate{core: newCore(name, properties, prototype), isArray: true}
}

func (o *ObjectAggregate) IsArray() bool { return o.isArray }

func (o *ObjectAggregate) Clone() Aggregate {
	return &ObjectAggregate{core: o.cloneCore(), isArray: o.isArray}
}

// Invocation is one recorded call site of a Function aggregate.
type Invocation struct {
	Args []Type
	Loc  source.Location
}

// FunctionAggregate is a function or class-constructor value.
type FunctionAggregate struct {
	*core
	mu          guard
	Params      []string
	invocations []Invocation
}

func NewFunctionAggregate(name string, params []string, prototype Aggregate) *FunctionAggregate {
	return &FunctionAggregate{core: newCore(name, nil, prototype), Params: params}
}

func (f *FunctionAggregate) IsArray() bool { return false }

// ReturnType is the return-type stub design note §9 documents:
// arguments are ignored and the result is always Undefined, leaving
// room for a future per-argument-shape inference pass.
func (f *FunctionAggregate) ReturnType(args []Type) Type {
	return Undefined()
}

// TraceInvocation records a call site against this function.
func (f *FunctionAggregate) TraceInvocation(args []Type, loc source.Location) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invocations = append(f.invocations, Invocation{Args: args, Loc: loc})
}

func (f *FunctionAggregate) Invocations() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Invocation, len(f.invocations))
	copy(out, f.invocations)
	return out
}

func (f *FunctionAggregate) Clone() Aggregate {
	f.mu.Lock()
	params := make([]string, len(f.Params))
	copy(params, f.Params)
	invocations := make([]Invocation, len(f.invocations))
	copy(invocations, f.invocations)
	f.mu.Unlock()

	return &FunctionAggregate{core: f.cloneCore(), Params: params, invocations: invocations}
}

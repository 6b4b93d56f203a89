package typesystem

import (
	"testing"

	"github.com/arolab/typeflow/internal/source"
)

func TestTypeStringAndEqual(t *testing.T) {
	if got := Number().String(); got != "Number" {
		t.Errorf("Number().String() = %s, want Number", got)
	}

	if !Equal(Number(), Number()) {
		t.Errorf("Number() should equal Number()")
	}
	if Equal(Number(), String()) {
		t.Errorf("Number() should not equal String()")
	}

	obj := NewObjectType(NewObjectAggregate("", nil, nil))
	objClone := obj
	if !Equal(obj, objClone) {
		t.Errorf("clones of an object type should be equal (shared aggregate identity)")
	}

	other := NewObjectType(NewObjectAggregate("", nil, nil))
	if Equal(obj, other) {
		t.Errorf("distinct aggregates should not be equal")
	}
}

func TestTypeUnwrap(t *testing.T) {
	arr := NewArrayAggregate("", nil, ArrayPrototype)
	composed := NewComposed(arr, Number())

	if got := composed.Unwrap(); got.Kind != KindNumber {
		t.Errorf("Unwrap(Composed) = %v, want Number", got)
	}
	if got := Number().Unwrap(); got.Kind != KindNumber {
		t.Errorf("Unwrap(Number) should be a no-op")
	}
}

func TestMixedStringJoinsMembers(t *testing.T) {
	m := NewMixed(Number(), String())
	if got, want := m.String(), "Number | String"; got != want {
		t.Errorf("Mixed.String() = %q, want %q", got, want)
	}
}

func TestAggregateQueryPropertyTraceOverridesStatic(t *testing.T) {
	agg := NewObjectAggregate("", map[string]Type{"p": Number()}, nil)

	if got, ok := agg.QueryProperty("p", source.Location{Start: 0, End: 0}); !ok || got.Kind != KindNumber {
		t.Fatalf("static property p should resolve to Number before any mutation")
	}

	agg.Mutate("p", String(), source.Location{Start: 10, End: 12})

	if got, ok := agg.QueryProperty("p", source.Location{Start: 0, End: 0}); !ok || got.Kind != KindNumber {
		t.Errorf("query before the mutation's location should still see the static Number")
	}
	if got, ok := agg.QueryProperty("p", source.Location{Start: 20, End: 20}); !ok || got.Kind != KindString {
		t.Errorf("query after the mutation's location should see the new String type")
	}
}

func TestAggregateAssignNameFirstWriterWins(t *testing.T) {
	agg := NewObjectAggregate("", nil, nil)
	agg.AssignName("First")
	agg.AssignName("Second")

	if got := agg.Name(); got != "First" {
		t.Errorf("AssignName should be first-writer-wins, got %q", got)
	}
}

func TestVariableTypeAtTracksReassignment(t *testing.T) {
	v := NewVariable("n", Const, Number())
	v.RecordTypeChange(String(), source.Location{Start: 50, End: 51})

	if got := v.TypeAt(source.Location{Start: 0, End: 0}); got.Kind != KindNumber {
		t.Errorf("TypeAt before reassignment = %v, want Number", got)
	}
	if got := v.TypeAt(source.Location{Start: 100, End: 100}); got.Kind != KindString {
		t.Errorf("TypeAt after reassignment = %v, want String", got)
	}
}

func TestScopeChainLookup(t *testing.T) {
	parent := NewScope("Module")
	parent.Add(NewVariable("a", Const, Number()))

	child := NewChildScope("Block", parent)
	child.Add(NewVariable("b", Let, String()))

	if _, ok := child.LocateOwn("a"); ok {
		t.Errorf("LocateOwn should not see the parent's variables")
	}
	if _, ok := child.LocateChain("a"); !ok {
		t.Errorf("LocateChain should find a variable declared in the parent")
	}
	if _, ok := parent.LocateChain("b"); ok {
		t.Errorf("a parent scope must not see its child's variables")
	}
}

func TestScopeBindIsIdempotent(t *testing.T) {
	parent := NewScope("Module")
	v := NewVariable("x", Let, Number())
	parent.Add(v)

	child := NewChildScope("IfConsequentBlockScope", parent)
	first := child.BindVariable(v)
	second := child.BindVariable(v)

	if first != second {
		t.Errorf("BindVariable should return the same handle on repeated binds")
	}

	first.RecordTypeChange(String(), source.Location{Start: 5, End: 6})
	if got := v.TypeAt(source.Location{Start: 10, End: 10}); got.Kind != KindNumber {
		t.Errorf("narrowing the bound copy must not affect the parent's variable, got %v", got)
	}
}

func TestScopeBindAggregateIdempotentAndIsolated(t *testing.T) {
	parent := NewScope("Module")
	agg := NewObjectAggregate("", map[string]Type{"p": Number()}, nil)

	child := NewChildScope("IfConsequentBlockScope", parent)
	copy1 := child.BindAggregate(agg)
	copy2 := child.BindAggregate(agg)

	if copy1.ID() != copy2.ID() {
		t.Errorf("BindAggregate should return the same copy on repeated binds")
	}
	if copy1.ID() == agg.ID() {
		t.Errorf("a bound aggregate copy must have its own identity")
	}

	copy1.ForceUpdate("p", String(), source.Location{Start: 0, End: 0})
	if got, _ := agg.QueryProperty("p", source.Location{Start: 100, End: 100}); got.Kind != KindNumber {
		t.Errorf("mutating the bound copy must not affect the original aggregate")
	}
}

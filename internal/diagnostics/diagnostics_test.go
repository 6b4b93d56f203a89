package diagnostics

import (
	"testing"

	"github.com/arolab/typeflow/internal/source"
)

func TestSetInsertDedupsByIdentity(t *testing.T) {
	s := NewSet()
	d := NewUnknownProperty("a", "namex", source.Location{Start: 10, End: 16})

	s.Insert(d)
	s.Insert(d)

	if s.Len() != 1 {
		t.Errorf("inserting the same diagnostic twice should not duplicate it, len = %d", s.Len())
	}
}

func TestSetRemoveWithdraws(t *testing.T) {
	s := NewSet()
	d := NewCompareTypeMismatch("Number", "String", source.Location{Start: 5, End: 5})

	s.Insert(d)
	s.Remove(d)

	if s.Len() != 0 {
		t.Errorf("expected the set to be empty after withdrawal, len = %d", s.Len())
	}
}

func TestSetOrderedSortsByLocation(t *testing.T) {
	s := NewSet()
	late := NewUnknownProperty("a", "x", source.Location{Start: 100, End: 101})
	early := NewUndefinedVariable("missing", "Module", source.Location{Start: 1, End: 8})

	s.Insert(late)
	s.Insert(early)

	ordered := s.Ordered()
	if len(ordered) != 2 || ordered[0] != early || ordered[1] != late {
		t.Errorf("Ordered() should sort by Location.Start ascending, got %+v", ordered)
	}
}

func TestDiagnosticMessage(t *testing.T) {
	d := NewAssignTypeMismatch("n", "Number", "String", source.Location{})
	if got := d.Message(); got == "" {
		t.Errorf("Message() should not be empty")
	}
}

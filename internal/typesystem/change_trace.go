package typesystem

import "github.com/arolab/typeflow/internal/source"

// MutationKind tags a ChangeTrace entry: either a plain variable
// reassignment (TypeChange, no property name) or a property-shape
// mutation on an aggregate.
type MutationKind int

const (
	TypeChange MutationKind = iota
	PropertyAdd
	PropertyRemove
	PropertyUpdate
)

func (k MutationKind) String() string {
	switch k {
	case TypeChange:
		return "TypeChange"
	case PropertyAdd:
		return "Add"
	case PropertyRemove:
		return "Remove"
	case PropertyUpdate:
		return "Update"
	default:
		return "Unknown"
	}
}

// TraceEntry is one append-only record: what changed, its new type,
// and the source location that makes the change visible to queries
// from that point on.
type TraceEntry struct {
	Attr         MutationKind
	PropertyName string // empty for TypeChange
	NewType      Type
	Loc          source.Location
}

// ChangeTrace is an append-only, order-preserving log of TraceEntry
// values. It backs both per-variable traces (TypeChange entries only)
// and per-aggregate traces (PropertyMutation entries only); callers
// supply the predicate that makes sense for their case.
type ChangeTrace struct {
	mu      guard
	entries []TraceEntry
}

// NewChangeTrace returns an empty trace.
func NewChangeTrace() *ChangeTrace {
	return &ChangeTrace{}
}

// Append records a new entry. No entry is ever removed or rewritten.
func (ct *ChangeTrace) Append(e TraceEntry) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.entries = append(ct.entries, e)
}

// FindRev scans from the most recently appended entry backwards and
// returns the first one matching pred.
func (ct *ChangeTrace) FindRev(pred func(TraceEntry) bool) (TraceEntry, bool) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	for i := len(ct.entries) - 1; i >= 0; i-- {
		if pred(ct.entries[i]) {
			return ct.entries[i], true
		}
	}
	return TraceEntry{}, false
}

// Clone returns an independent trace with the same entries, used when
// a scope binds a narrowed copy of a variable or aggregate: the copy
// must be able to diverge without the original observing it.
func (ct *ChangeTrace) Clone() *ChangeTrace {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	cp := &ChangeTrace{entries: make([]TraceEntry, len(ct.entries))}
	copy(cp.entries, ct.entries)
	return cp
}

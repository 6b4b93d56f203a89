package exprtype

import "fmt"

// PropertyError is returned by DetermineType when a static or
// computed member access resolves to no known property. It is not
// one of typesystem's three run-level taxonomies (spec.md §7); it is
// converted into a validation diagnostic at the call site, same as a
// ScopeError is.
type PropertyError struct {
	Object   string
	Property string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("unknown property %q on %s", e.Property, e.Object)
}

// FeatureGapKind names one of the constructs expression typing
// refuses to handle: per spec.md §7 these abort analysis immediately
// rather than being recovered into a diagnostic.
type FeatureGapKind int

const (
	GapDestructuring FeatureGapKind = iota
	GapObjectSpread
)

func (k FeatureGapKind) String() string {
	switch k {
	case GapDestructuring:
		return "destructuring patterns are not implemented"
	case GapObjectSpread:
		return "object literal spread is not implemented"
	default:
		return "unimplemented feature"
	}
}

// FeatureGapError signals one of the above. Callers of DetermineType
// should treat it as fatal to the whole analysis run, not recoverable
// into a single diagnostic.
type FeatureGapError struct {
	Kind FeatureGapKind
}

func (e *FeatureGapError) Error() string {
	return e.Kind.String()
}

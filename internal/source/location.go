// Package source holds the byte-offset location type shared by the
// lexer, parser, AST and type-flow engine. Line/column are filled in by
// whatever produced the location (lexer, parser); callers that only have
// offsets may leave them zero.
package source

import "fmt"

// Location is a half-open byte range [Start, End) into the analyzed
// source, with an optional line/column for human-facing rendering.
type Location struct {
	Start  uint32
	End    uint32
	Line   uint32
	Column uint32
}

// Zero reports whether loc is the unset location.
func (loc Location) Zero() bool {
	return loc == Location{}
}

// CollapseAfter returns a zero-width location one byte past loc's end.
// Used to anchor a property mutation to the point just past an
// assignment so later queries at or after that offset observe the new
// shape, while queries at the assignment itself still see the old one.
func (loc Location) CollapseAfter() Location {
	return Location{Start: loc.End + 1, End: loc.End + 1, Line: loc.Line, Column: loc.Column}
}

// CollapseBefore returns a zero-width location at loc's start.
func (loc Location) CollapseBefore() Location {
	return Location{Start: loc.Start, End: loc.Start, Line: loc.Line, Column: loc.Column}
}

func (loc Location) String() string {
	if loc.Line == 0 && loc.Column == 0 {
		return fmt.Sprintf("%d:%d", loc.Start, loc.End)
	}
	return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
}

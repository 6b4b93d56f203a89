// Package traversal normalizes a parsed AST into a flat, ordered
// sequence of semantic events, grounded on original_source/src's event
// walker but with NodeRef identity switched to a monotonic counter
// (design note §9) instead of the original's pseudo-random 16-bit id.
package traversal

import (
	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/source"
)

// NodeRef identifies one occurrence of an expression in a walked
// tree. Equality and hashing are by id only, so two structurally
// identical occurrences of the same expression (e.g. two `x.y` at
// different offsets) are distinct keys in a metadata map even though
// their Expr/Loc compare equal.
type NodeRef struct {
	id   uint64
	Expr ast.Expression
	Loc  source.Location
}

// ID returns the node's unique, run-scoped identity.
func (n *NodeRef) ID() uint64 { return n.id }

// Package validate implements the validation pass: it consumes the
// traversal's event stream, maintains per-node metadata keyed by
// NodeRef identity, and produces a deduplicated set of diagnostics,
// narrowing types inside if-statement consequents. Grounded on
// original_source/src's validation pass (spec.md §4.9).
package validate

import (
	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/diagnostics"
	"github.com/arolab/typeflow/internal/exprtype"
	"github.com/arolab/typeflow/internal/source"
	"github.com/arolab/typeflow/internal/traversal"
	"github.com/arolab/typeflow/internal/typesystem"
)

// comparisonContext records an Equality event's operands so a later
// ConsequentBody can inspect them for narrowing.
type comparisonContext struct {
	Operator string
	Left     *traversal.NodeRef
	Right    *traversal.NodeRef
}

// propertyContext records a PropertyAccess event's operands so a later
// ConsequentBody can narrow the accessed aggregate.
type propertyContext struct {
	Object   *traversal.NodeRef
	Property string
}

// metadata is the mutable record attached to one NodeRef: at most one
// diagnostic (first-setter-wins), an optional resolved variable, an
// optional cached expression type, and optional comparison/property
// context.
type metadata struct {
	err        *diagnostics.Diagnostic
	variable   *typesystem.Variable
	exprType   *typesystem.Type
	comparison *comparisonContext
	property   *propertyContext
}

// Validator runs the validation pass over one program, accumulating
// diagnostics and per-node metadata as it goes.
type Validator struct {
	walker *traversal.Walker
	diags  *diagnostics.Set
	meta   map[*traversal.NodeRef]*metadata

	// fatal is set the moment expression typing hits a feature gap
	// (spec.md §7: these abort the analysis immediately, unlike scope
	// and property errors, which are recovered into a diagnostic).
	// process checks it between events so a gap anywhere in the
	// program halts the whole pass rather than just the node it hit.
	fatal error
}

// Run validates program under scope (the module scope a prior
// declaration walk and tracing pass have already populated) and
// returns the resulting diagnostic set, or the feature-gap error that
// aborted the run.
func Run(program *ast.Program, scope *typesystem.Scope) (*diagnostics.Set, error) {
	v := &Validator{
		walker: traversal.NewWalker(),
		diags:  diagnostics.NewSet(),
		meta:   make(map[*traversal.NodeRef]*metadata),
	}
	v.process(v.walker.Walk(program), scope)
	if v.fatal != nil {
		return nil, v.fatal
	}
	return v.diags, nil
}

func (v *Validator) metaFor(node *traversal.NodeRef) *metadata {
	if m, ok := v.meta[node]; ok {
		return m
	}
	m := &metadata{}
	v.meta[node] = m
	return m
}

// typeOf returns the cached expression type for an already-processed
// node. Every event's operands were walked earlier in the stream
// (child-before-parent), so their metadata is always populated by the
// time a parent event inspects them.
func (v *Validator) typeOf(node *traversal.NodeRef) (typesystem.Type, bool) {
	m, ok := v.meta[node]
	if !ok || m.exprType == nil {
		return typesystem.Type{}, false
	}
	return *m.exprType, true
}

// attach records d on m if m has no diagnostic yet, and inserts it
// into the set. First-setter-wins keeps the at-most-one-error
// invariant the withdraw mechanism depends on.
func (v *Validator) attach(m *metadata, d *diagnostics.Diagnostic) {
	if m.err != nil {
		return
	}
	m.err = d
	v.diags.Insert(d)
}

// withdraw removes m's diagnostic, if any, from the set.
func (v *Validator) withdraw(m *metadata) {
	if m.err == nil {
		return
	}
	v.diags.Remove(m.err)
	m.err = nil
}

// determineOrDiagnose computes node's type via expression typing
// under scope, converting a scope or property error into the matching
// diagnostic kind. A feature gap (destructuring, object spread) has no
// diagnostic counterpart; it aborts the whole run. A type error
// (incompatible prototype) has no validation diagnostic counterpart
// either and simply leaves the node untyped.
func (v *Validator) determineOrDiagnose(node *traversal.NodeRef, scope *typesystem.Scope) (typesystem.Type, bool) {
	t, err := exprtype.DetermineType(node.Expr, scope)
	if err == nil {
		return t, true
	}
	m := v.metaFor(node)
	switch e := err.(type) {
	case *typesystem.ScopeError:
		v.attach(m, diagnostics.NewUndefinedVariable(e.Name, e.ScopeName, node.Loc))
	case *exprtype.PropertyError:
		v.attach(m, diagnostics.NewUnknownProperty(e.Object, e.Property, node.Loc))
	case *exprtype.FeatureGapError:
		v.fatal = e
	}
	return typesystem.Type{}, false
}

func (v *Validator) cacheType(node *traversal.NodeRef, scope *typesystem.Scope) {
	t, ok := v.determineOrDiagnose(node, scope)
	if !ok {
		return
	}
	m := v.metaFor(node)
	m.exprType = &t
}

// propagateOperand copies an already-processed operand's cached type
// and variable onto node's own metadata, unchanged, for the
// expression-typing-is-a-no-op forms (Spread, PreOrPostFix).
func (v *Validator) propagateOperand(node, operand *traversal.NodeRef) {
	om, ok := v.meta[operand]
	if !ok {
		return
	}
	m := v.metaFor(node)
	m.exprType = om.exprType
	m.variable = om.variable
}

func (v *Validator) process(events []traversal.Event, scope *typesystem.Scope) {
	for _, e := range events {
		if v.fatal != nil {
			return
		}
		v.processEvent(e, scope)
	}
}

func (v *Validator) processEvent(e traversal.Event, scope *typesystem.Scope) {
	switch ev := e.(type) {
	case traversal.Identifier:
		v.processIdentifier(ev, scope)
	case traversal.Assignment:
		v.processAssignment(ev)
	case traversal.Addition:
		v.processAddition(ev)
	case traversal.Equality:
		v.processEquality(ev)
	case traversal.PropertyAccess:
		v.processPropertyAccess(ev)
	case traversal.DynamicPropertyAccess:
		v.processDynamicPropertyAccess(ev)
	case traversal.FunctionCall:
		v.processFunctionCall(ev)
	case traversal.Spread:
		v.propagateOperand(ev.Node, ev.Argument)
	case traversal.PreOrPostFix:
		v.propagateOperand(ev.Node, ev.Operand)
	case traversal.ConsequentBody:
		v.processConsequentBody(ev, scope)
	case traversal.Literal:
		v.cacheType(ev.Node, scope)
	case traversal.Conditional:
		v.cacheType(ev.Node, scope)
	case traversal.Array:
		v.cacheType(ev.Node, scope)
	case traversal.Object:
		v.cacheType(ev.Node, scope)
	case traversal.Function:
		v.cacheType(ev.Node, scope)
	case traversal.Class:
		v.cacheType(ev.Node, scope)
	case traversal.Sequence:
		v.cacheType(ev.Node, scope)
	case traversal.This:
		v.cacheType(ev.Node, scope)
	case traversal.Template:
		v.cacheType(ev.Node, scope)
	case traversal.AlternateBody, traversal.AfterIf:
		// reserved for symmetric narrowing and join; no-ops (design
		// note §9, open question a).
	}
}

func (v *Validator) processIdentifier(e traversal.Identifier, scope *typesystem.Scope) {
	m := v.metaFor(e.Node)
	variable, ok := scope.Locate(e.Name)
	if !ok {
		v.attach(m, diagnostics.NewUndefinedVariable(e.Name, scope.String(), e.Node.Loc))
		return
	}
	m.variable = variable
	t := variable.TypeAt(e.Node.Loc)
	m.exprType = &t
}

func (v *Validator) processPropertyAccess(e traversal.PropertyAccess) {
	m := v.metaFor(e.Node)
	m.property = &propertyContext{Object: e.Object, Property: e.Property}

	objType, ok := v.typeOf(e.Object)
	if !ok {
		return
	}
	t, found := objType.QueryProperty(e.Property, e.PropertyLoc)
	if !found {
		v.attach(m, diagnostics.NewUnknownProperty(exprtype.ExpressionToString(e.Object.Expr), e.Property, e.PropertyLoc))
		return
	}
	m.exprType = &t
}

func (v *Validator) processDynamicPropertyAccess(e traversal.DynamicPropertyAccess) {
	m := v.metaFor(e.Node)
	result := typesystem.Undefined()
	m.exprType = &result

	propType, ok := v.typeOf(e.Property)
	if ok && propType.Kind != typesystem.KindString {
		v.attach(m, diagnostics.NewInvalidType(exprtype.ExpressionToString(e.Node.Expr), propType.String(), typesystem.KindString.String(), e.Node.Loc))
	}
}

// isStaticPropertyWriteTarget reports whether expr is a static (dot)
// member expression, the shape of an assignment's LHS that creates
// the property rather than reading it. A computed member expression
// (o[k] = ...) is excluded: its own diagnostic, if any, is about the
// key's type, not about the property being unknown, and still applies
// to a write.
func isStaticPropertyWriteTarget(expr ast.Expression) bool {
	_, ok := expr.(*ast.MemberExpression)
	return ok
}

func (v *Validator) processAssignment(e traversal.Assignment) {
	m := v.metaFor(e.Node)

	// A dot member expression on the LHS of an assignment creates the
	// property rather than reading it, so any UnknownProperty raised
	// while walking it as a PropertyAccess read is a false positive.
	if isStaticPropertyWriteTarget(e.Left.Expr) {
		if lm, ok := v.meta[e.Left]; ok {
			v.withdraw(lm)
		}
	}

	their, theirOK := v.typeOf(e.Right)
	if theirOK {
		t := their
		m.exprType = &t
	}
	own, ownOK := v.typeOf(e.Left)
	if !ownOK || !theirOK {
		return
	}
	if typesystem.Equal(own, their) || own.Kind == typesystem.KindNull {
		return
	}
	v.attach(m, diagnostics.NewAssignTypeMismatch(exprtype.ExpressionToString(e.Left.Expr), own.String(), their.String(), e.Left.Loc))
}

func (v *Validator) processAddition(e traversal.Addition) {
	left, leftOK := v.typeOf(e.Left)
	right, rightOK := v.typeOf(e.Right)
	if !leftOK || !rightOK {
		return
	}
	result := typesystem.Number()
	if left.Kind == typesystem.KindString || right.Kind == typesystem.KindString {
		result = typesystem.String()
	} else if left.Kind == typesystem.KindComposed && left.Composed.Outer.IsArray() {
		result = typesystem.String()
	}
	m := v.metaFor(e.Node)
	m.exprType = &result
}

func (v *Validator) processEquality(e traversal.Equality) {
	m := v.metaFor(e.Node)
	m.comparison = &comparisonContext{Operator: e.Operator, Left: e.Left, Right: e.Right}

	left, leftOK := v.typeOf(e.Left)
	right, rightOK := v.typeOf(e.Right)
	if !leftOK || !rightOK {
		return
	}
	if !typesystem.Equal(left, right) {
		v.attach(m, diagnostics.NewCompareTypeMismatch(left.String(), right.String(), e.Node.Loc))
	}
}

func (v *Validator) processFunctionCall(e traversal.FunctionCall) {
	calleeType, ok := v.typeOf(e.Callee)
	if !ok || calleeType.Kind != typesystem.KindFunction {
		return
	}
	args := make([]typesystem.Type, 0, len(e.Args))
	for _, a := range e.Args {
		if t, ok := v.typeOf(a); ok {
			args = append(args, t)
		}
	}
	fn := calleeType.Agg.(*typesystem.FunctionAggregate)
	result := fn.ReturnType(args)
	v.metaFor(e.Node).exprType = &result
}

func (v *Validator) processConsequentBody(e traversal.ConsequentBody, scope *typesystem.Scope) {
	child := typesystem.NewChildScope("IfConsequentBlockScope", scope)

	if testMeta, ok := v.meta[e.Test]; ok && testMeta.comparison != nil {
		v.narrow(testMeta, e.Test, child)
	}

	v.process(v.walker.WalkStatement(e.Statement), child)
}

// narrow implements the consequent-block narrowing rule: a comparison
// between a variable or property access and a concretely-typed other
// side refines the subject's effective type within child; a
// comparison where neither side is a variable is flagged as provably
// constant (the NonsensicalComparison is attached only if the test
// carries no diagnostic yet, and an existing one is kept). For an `===`
// test with a variable on either side, a diagnostic already attached to
// the test (because the two sides looked incompatible) is withdrawn,
// since the comparison is now understood as a guard rather than an
// error.
func (v *Validator) narrow(testMeta *metadata, testNode *traversal.NodeRef, child *typesystem.Scope) {
	cmp := testMeta.comparison
	left := v.meta[cmp.Left]
	right := v.meta[cmp.Right]

	leftIsVar := left != nil && left.variable != nil
	rightIsVar := right != nil && right.variable != nil

	if !leftIsVar && !rightIsVar {
		v.attach(testMeta, diagnostics.NewNonsensicalComparison(exprtype.ExpressionToString(testNode.Expr), testNode.Loc))
		return
	}

	// Narrowing (and the mismatch withdrawal that comes with it) only
	// applies to an x === T guard; x !== T says nothing about x's type
	// inside the consequent, so its mismatch diagnostic, if any, stands.
	if cmp.Operator != "===" {
		return
	}

	switch {
	case leftIsVar && right != nil && right.exprType != nil:
		child.BindVariable(left.variable).RecordTypeChange(*right.exprType, testNode.Loc)
	case rightIsVar && left != nil && left.exprType != nil:
		child.BindVariable(right.variable).RecordTypeChange(*left.exprType, testNode.Loc)
	case left != nil && left.property != nil && right != nil && right.exprType != nil:
		v.narrowProperty(left.property, *right.exprType, testNode.Loc, child)
	case right != nil && right.property != nil && left != nil && left.exprType != nil:
		v.narrowProperty(right.property, *left.exprType, testNode.Loc, child)
	}

	v.withdraw(testMeta)
}

func (v *Validator) narrowProperty(prop *propertyContext, newType typesystem.Type, loc source.Location, child *typesystem.Scope) {
	objType, ok := v.typeOf(prop.Object)
	if !ok || (objType.Kind != typesystem.KindObject && objType.Kind != typesystem.KindFunction) {
		return
	}
	copyAgg := child.BindAggregate(objType.Agg)
	copyAgg.ForceUpdate(prop.Property, newType, loc)
}

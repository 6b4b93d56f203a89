package traversal

import "github.com/arolab/typeflow/internal/ast"

// Walker assigns NodeRef ids from a single monotonic counter shared
// across every statement it walks, including the separate recursive
// walks the validation pass issues for if-consequent bodies — so ids
// stay unique for the whole analysis run, not just one Walk call.
type Walker struct {
	counter uint64
}

// NewWalker returns a Walker with a fresh counter.
func NewWalker() *Walker {
	return &Walker{}
}

// Walk emits the event stream for an entire program's top-level
// statements, in source order.
func (w *Walker) Walk(program *ast.Program) []Event {
	var events []Event
	for _, stmt := range program.Statements {
		events = append(events, w.WalkStatement(stmt)...)
	}
	return events
}

// WalkStatement emits the event stream for a single statement. Exposed
// so the validation pass can recurse into an if-statement's branch
// body under its own narrowed scope while continuing this Walker's id
// sequence.
func (w *Walker) WalkStatement(stmt ast.Statement) []Event {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		if s.Init == nil {
			return nil
		}
		events, _ := w.walkExpression(s.Init)
		return events

	case *ast.ExpressionStatement:
		events, _ := w.walkExpression(s.Expression)
		return events

	case *ast.BlockStatement:
		var events []Event
		for _, inner := range s.Statements {
			events = append(events, w.WalkStatement(inner)...)
		}
		return events

	case *ast.IfStatement:
		return w.walkIf(s)

	default:
		return nil
	}
}

func (w *Walker) walkIf(s *ast.IfStatement) []Event {
	events, testNode := w.walkExpression(s.Test)
	events = append(events, ConsequentBody{Test: testNode, Statement: s.Consequent})
	if s.Alternate != nil {
		events = append(events, AlternateBody{Expression: testNode})
	}
	events = append(events, AfterIf{Expression: testNode})
	return events
}

func (w *Walker) newNode(expr ast.Expression) *NodeRef {
	w.counter++
	return &NodeRef{id: w.counter, Expr: expr, Loc: expr.GetToken().Loc}
}

// walkExpression emits expr's sub-expressions' events (child before
// parent) followed by expr's own event where the taxonomy calls for
// one, and returns the NodeRef identifying expr itself for use by an
// enclosing event.
func (w *Walker) walkExpression(expr ast.Expression) ([]Event, *NodeRef) {
	switch e := expr.(type) {
	case *ast.Literal:
		node := w.newNode(e)
		return []Event{Literal{Node: node, Literal: e}}, node

	case *ast.Identifier:
		node := w.newNode(e)
		return []Event{Identifier{Node: node, Name: e.Name}}, node

	case *ast.ThisExpression:
		node := w.newNode(e)
		return []Event{This{Node: node, This: e}}, node

	case *ast.TemplateLiteral:
		node := w.newNode(e)
		return []Event{Template{Node: node}}, node

	case *ast.TaggedTemplateExpression:
		// Not its own event kind; typing and walking defer entirely
		// to the tag, same as expression typing does.
		return w.walkExpression(e.Tag)

	case *ast.ArrayExpression:
		node := w.newNode(e)
		return []Event{Array{Node: node, Expr: e}}, node

	case *ast.ObjectExpression:
		node := w.newNode(e)
		return []Event{Object{Node: node, Expr: e}}, node

	case *ast.FunctionExpression:
		node := w.newNode(e)
		return []Event{Function{Node: node, Params: e.Params, Body: e.Body}}, node

	case *ast.ArrowFunctionExpression:
		node := w.newNode(e)
		return []Event{Function{Node: node, Params: e.Params, Body: e.Body}}, node

	case *ast.ClassExpression:
		node := w.newNode(e)
		return []Event{Class{Node: node, Class: e}}, node

	case *ast.BinaryExpression:
		return w.walkBinary(e)

	case *ast.MemberExpression:
		objEvents, objNode := w.walkExpression(e.Object)
		node := w.newNode(e)
		events := append(objEvents, PropertyAccess{
			Node:        node,
			Object:      objNode,
			Property:    e.Property.Name,
			PropertyLoc: e.Property.Token.Loc,
		})
		return events, node

	case *ast.ComputedMemberExpression:
		objEvents, objNode := w.walkExpression(e.Object)
		propEvents, propNode := w.walkExpression(e.Property)
		node := w.newNode(e)
		events := append(objEvents, propEvents...)
		events = append(events, DynamicPropertyAccess{Node: node, Object: objNode, Property: propNode})
		return events, node

	case *ast.ConditionalExpression:
		testEvents, testNode := w.walkExpression(e.Test)
		consEvents, consNode := w.walkExpression(e.Consequent)
		altEvents, altNode := w.walkExpression(e.Alternate)
		node := w.newNode(e)
		events := append(testEvents, consEvents...)
		events = append(events, altEvents...)
		events = append(events, Conditional{Node: node, Test: testNode, Consequent: consNode, Alternate: altNode})
		return events, node

	case *ast.CallExpression:
		calleeEvents, calleeNode := w.walkExpression(e.Callee)
		events := calleeEvents
		argNodes := make([]*NodeRef, len(e.Arguments))
		for i, a := range e.Arguments {
			argEvents, argNode := w.walkExpression(a)
			events = append(events, argEvents...)
			argNodes[i] = argNode
		}
		node := w.newNode(e)
		events = append(events, FunctionCall{Node: node, Callee: calleeNode, Args: argNodes})
		return events, node

	case *ast.SequenceExpression:
		var events []Event
		items := make([]*NodeRef, len(e.Expressions))
		for i, ex := range e.Expressions {
			exEvents, exNode := w.walkExpression(ex)
			events = append(events, exEvents...)
			items[i] = exNode
		}
		node := w.newNode(e)
		events = append(events, Sequence{Node: node, Items: items})
		return events, node

	case *ast.UnaryExpression:
		operandEvents, operandNode := w.walkExpression(e.Operand)
		node := w.newNode(e)
		events := append(operandEvents, PreOrPostFix{Node: node, Operand: operandNode, Op: e.Operator})
		return events, node

	case *ast.SpreadElement:
		argEvents, argNode := w.walkExpression(e.Argument)
		node := w.newNode(e)
		events := append(argEvents, Spread{Node: node, Argument: argNode})
		return events, node

	default:
		return nil, w.newNode(expr)
	}
}

func (w *Walker) walkBinary(e *ast.BinaryExpression) ([]Event, *NodeRef) {
	leftEvents, leftNode := w.walkExpression(e.Left)
	rightEvents, rightNode := w.walkExpression(e.Right)
	events := append(leftEvents, rightEvents...)
	node := w.newNode(e)

	switch e.Operator {
	case "=":
		events = append(events, Assignment{Node: node, Left: leftNode, Right: rightNode})
	case "+":
		events = append(events, Addition{Node: node, Left: leftNode, Right: rightNode})
	case "===", "!==":
		events = append(events, Equality{Node: node, Left: leftNode, Right: rightNode, Operator: e.Operator})
	}
	// every other binary operator is deliberately not surfaced as its
	// own event; its operands were still walked above.

	return events, node
}

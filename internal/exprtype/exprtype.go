// Package exprtype implements expression typing: a pure, scope-aware
// function mapping an AST expression to a typesystem.Type, grounded
// on original_source/src/expressions.rs and objects.rs but updated to
// go through typesystem.Type.QueryProperty (trace-aware) rather than
// a static-only property map, per the validation pass's requirements.
package exprtype

import (
	"github.com/arolab/typeflow/internal/ast"
	"github.com/arolab/typeflow/internal/typesystem"
)

// DetermineType computes expr's type in scope. It never mutates scope
// or any aggregate; all mutation lives in the tracing and validation
// passes.
func DetermineType(expr ast.Expression, scope *typesystem.Scope) (typesystem.Type, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalType(e), nil

	case *ast.Identifier:
		v, ok := scope.Locate(e.Name)
		if !ok {
			return typesystem.Type{}, typesystem.NewScopeError(e.Name, scope.String())
		}
		return v.TypeAt(e.Token.Loc), nil

	case *ast.ThisExpression:
		return typesystem.Undefined(), nil

	case *ast.ArrayExpression:
		return arrayType(e, scope)

	case *ast.ObjectExpression:
		return objectType(e, scope)

	case *ast.FunctionExpression:
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = p.Name
		}
		return typesystem.NewFunctionType(typesystem.NewFunctionAggregate("", params, nil)), nil

	case *ast.ArrowFunctionExpression:
		return typesystem.NewFunctionType(typesystem.NewFunctionAggregate("", nil, nil)), nil

	case *ast.BinaryExpression:
		// Addition and equality typing happen at event-time (the
		// validation pass); as a pure function, every
		// binary form types to Undefined.
		return typesystem.Undefined(), nil

	case *ast.MemberExpression:
		return staticMemberType(e, scope)

	case *ast.ComputedMemberExpression:
		return computedMemberType(e, scope)

	case *ast.ConditionalExpression:
		return conditionalType(e, scope)

	case *ast.CallExpression:
		return callType(e, scope)

	case *ast.SequenceExpression:
		if len(e.Expressions) == 0 {
			return typesystem.Undefined(), nil
		}
		return DetermineType(e.Expressions[len(e.Expressions)-1], scope)

	case *ast.TemplateLiteral:
		return typesystem.String(), nil

	case *ast.TaggedTemplateExpression:
		return DetermineType(e.Tag, scope)

	case *ast.UnaryExpression:
		return DetermineType(e.Operand, scope)

	case *ast.SpreadElement:
		return spreadType(e, scope)

	case *ast.ClassExpression:
		return classType(e, scope)

	default:
		return typesystem.Undefined(), nil
	}
}

func literalType(lit *ast.Literal) typesystem.Type {
	switch lit.Kind {
	case ast.NumberLiteral:
		return typesystem.Number()
	case ast.StringLiteral:
		return typesystem.String()
	case ast.BooleanLiteral:
		return typesystem.Boolean()
	case ast.NullLiteral:
		return typesystem.Null()
	case ast.RegExpLiteral:
		return typesystem.RegExp()
	default:
		return typesystem.Undefined()
	}
}

func arrayType(arr *ast.ArrayExpression, scope *typesystem.Scope) (typesystem.Type, error) {
	elements := make([]typesystem.Type, len(arr.Elements))
	for i, el := range arr.Elements {
		if el == nil {
			elements[i] = typesystem.Undefined()
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			t, err := DetermineType(spread.Argument, scope)
			if err != nil {
				return typesystem.Type{}, err
			}
			elements[i] = t
			continue
		}
		t, err := DetermineType(el, scope)
		if err != nil {
			return typesystem.Type{}, err
		}
		elements[i] = t
	}
	return typesystem.NewComposed(typesystem.ArrayPrototype, typesystem.NewMixed(elements...)), nil
}

// objectType builds a fresh Object aggregate from an object literal's
// properties: Literal and Shorthand contribute their value's type,
// Method contributes a fresh Function, and __proto__ is consumed to
// pick the new aggregate's prototype.
func objectType(obj *ast.ObjectExpression, scope *typesystem.Scope) (typesystem.Type, error) {
	properties := make(map[string]typesystem.Type, len(obj.Properties))

	for _, prop := range obj.Properties {
		if prop.Kind == ast.PropertySpread {
			return typesystem.Type{}, &FeatureGapError{Kind: GapObjectSpread}
		}

		name, err := propertyKeyString(prop, scope)
		if err != nil {
			return typesystem.Type{}, err
		}

		switch prop.Kind {
		case ast.PropertyMethod:
			fn := prop.Value.(*ast.FunctionExpression)
			params := make([]string, len(fn.Params))
			for i, p := range fn.Params {
				params[i] = p.Name
			}
			properties[name] = typesystem.NewFunctionType(typesystem.NewFunctionAggregate("", params, nil))
		default: // PropertyLiteral, PropertyShorthand
			t, err := DetermineType(prop.Value, scope)
			if err != nil {
				return typesystem.Type{}, err
			}
			properties[name] = t
		}
	}

	var prototype typesystem.Aggregate = typesystem.ObjectPrototype
	if protoType, ok := properties["__proto__"]; ok {
		switch protoType.Kind {
		case typesystem.KindObject, typesystem.KindFunction:
			prototype = protoType.Agg
		case typesystem.KindUndefined:
			prototype = nil
		default:
			prototype = typesystem.ObjectPrototype
		}
	}
	delete(properties, "__proto__")

	agg := typesystem.NewObjectAggregate("", properties, prototype)
	return typesystem.NewObjectType(agg), nil
}

func propertyKeyString(prop *ast.Property, scope *typesystem.Scope) (string, error) {
	if prop.Kind == ast.PropertyShorthand {
		return prop.Key.(*ast.Identifier).Name, nil
	}
	if prop.Computed {
		return ExpressionToString(prop.Key), nil
	}
	switch k := prop.Key.(type) {
	case *ast.Identifier:
		return k.Name, nil
	case *ast.Literal:
		return k.Value, nil
	default:
		return ExpressionToString(prop.Key), nil
	}
}

func staticMemberType(m *ast.MemberExpression, scope *typesystem.Scope) (typesystem.Type, error) {
	objType, err := DetermineType(m.Object, scope)
	if err != nil {
		return typesystem.Type{}, err
	}
	if t, ok := objType.QueryProperty(m.Property.Name, m.Property.Token.Loc); ok {
		return t, nil
	}
	return typesystem.Type{}, &PropertyError{Object: ExpressionToString(m.Object), Property: m.Property.Name}
}

func computedMemberType(c *ast.ComputedMemberExpression, scope *typesystem.Scope) (typesystem.Type, error) {
	objType, err := DetermineType(c.Object, scope)
	if err != nil {
		return typesystem.Type{}, err
	}
	name := ExpressionToString(c.Property)
	if t, ok := objType.QueryProperty(name, c.Property.GetToken().Loc); ok {
		return t, nil
	}
	return typesystem.Type{}, &PropertyError{Object: ExpressionToString(c.Object), Property: name}
}

func conditionalType(c *ast.ConditionalExpression, scope *typesystem.Scope) (typesystem.Type, error) {
	altType, err := DetermineType(c.Alternate, scope)
	if err != nil {
		return typesystem.Type{}, err
	}
	consType, err := DetermineType(c.Consequent, scope)
	if err != nil {
		return typesystem.Type{}, err
	}
	if typesystem.Equal(altType, consType) {
		return altType, nil
	}
	return typesystem.NewMixed(altType, consType), nil
}

func callType(c *ast.CallExpression, scope *typesystem.Scope) (typesystem.Type, error) {
	calleeType, err := DetermineType(c.Callee, scope)
	if err != nil {
		return typesystem.Type{}, err
	}

	args := make([]typesystem.Type, len(c.Arguments))
	for i, a := range c.Arguments {
		t, err := DetermineType(a, scope)
		if err != nil {
			return typesystem.Type{}, err
		}
		args[i] = t
	}

	if calleeType.Kind != typesystem.KindFunction {
		return typesystem.Type{}, typesystem.NewTypeError(typesystem.NotFunction, ExpressionToString(c.Callee))
	}
	fn := calleeType.Agg.(*typesystem.FunctionAggregate)
	return fn.ReturnType(args), nil
}

func spreadType(s *ast.SpreadElement, scope *typesystem.Scope) (typesystem.Type, error) {
	argType, err := DetermineType(s.Argument, scope)
	if err != nil {
		return typesystem.Type{}, err
	}
	if argType.Kind == typesystem.KindComposed && argType.Composed.Outer.IsArray() {
		return argType.Composed.Inner, nil
	}
	return argType, nil
}

func classType(c *ast.ClassExpression, scope *typesystem.Scope) (typesystem.Type, error) {
	name := ""
	if c.Name != nil {
		name = c.Name.Name
	}

	var parentPrototype typesystem.Aggregate
	if c.Super != nil {
		superType, err := DetermineType(c.Super, scope)
		if err != nil {
			return typesystem.Type{}, err
		}
		switch superType.Kind {
		case typesystem.KindObject, typesystem.KindFunction:
			parentPrototype = superType.Agg
		default:
			return typesystem.Type{}, typesystem.NewTypeError(typesystem.IncompatiblePrototype, superType.String())
		}
	}

	constructor := typesystem.NewFunctionAggregate(name, nil, nil)

	prototypeName := ""
	if name != "" {
		prototypeName = name + "Prototype"
	}
	prototypeProps := map[string]typesystem.Type{
		"constructor": typesystem.NewFunctionType(constructor),
	}
	prototype := typesystem.NewObjectAggregate(prototypeName, prototypeProps, parentPrototype)

	constructor.SetStaticProperty("prototype", typesystem.NewObjectType(prototype))

	return typesystem.NewFunctionType(constructor), nil
}

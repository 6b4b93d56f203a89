package typesystem

// Built-in prototypes are process-lifetime constants, initialized
// exactly once before any analysis runs and never mutated afterward
// (spec.md §3 invariant). ArrayPrototype is given the display name
// "Array" here so Composed's to_string renders "Array<Number>" rather
// than falling back to "ObjectLiteral" for every array type.
var (
	ObjectPrototype *ObjectAggregate
	ArrayPrototype  *ObjectAggregate
	StringFunction  *FunctionAggregate
	ObjectFunction  *FunctionAggregate
)

func init() {
	ObjectPrototype = NewObjectAggregate("", map[string]Type{"name": String()}, nil)
	ObjectPrototype.AssignName("ObjectPrototype")

	ArrayPrototype = NewArrayAggregate("", map[string]Type{"length": Number()}, ObjectPrototype)
	ArrayPrototype.AssignName("Array")

	StringFunction = NewFunctionAggregate("String", nil, ObjectPrototype)

	ObjectFunction = NewFunctionAggregate("Object", nil, ObjectPrototype)
	ObjectFunction.SetStaticProperty("prototype", NewObjectType(ObjectPrototype))
}

// NewRootScope builds the module-level static root scope: the one
// predefined variable is Object, bound to the Object function type
// (spec.md §4.5).
func NewRootScope() *Scope {
	root := NewScope("Module")
	root.Add(NewVariable("Object", Const, NewFunctionType(ObjectFunction)))
	root.AddType(ObjectFunction)
	root.AddType(ObjectPrototype)
	root.AddType(ArrayPrototype)
	return root
}

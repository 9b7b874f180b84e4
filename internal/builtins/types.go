package builtins

import _ "embed"

// BuiltinType names a type that is always in scope.
type BuiltinType string

const (
	Any    BuiltinType = "Any"
	Never  BuiltinType = "Never"
	Null   BuiltinType = "Null"
	Bool   BuiltinType = "Bool"
	Number BuiltinType = "Number"
	String BuiltinType = "String"

	// Generic displays, written Name[Args].
	List     BuiltinType = "List"
	Tuple    BuiltinType = "Tuple"
	Iterable BuiltinType = "Iterable"
	Promise  BuiltinType = "Promise"
)

// BuiltinTypes contains all valid built-in type names
var BuiltinTypes = map[string]bool{
	string(Any):    true,
	string(Never):  true,
	string(Null):   true,
	string(Bool):   true,
	string(Number): true,
	string(String): true,

	string(List):     true,
	string(Tuple):    true,
	string(Iterable): true,
	string(Promise):  true,
}

// IsBuiltinType checks if a type name is a built-in type
func IsBuiltinType(typeName string) bool {
	return BuiltinTypes[typeName]
}

// IsGenericType reports whether typeName must be applied to type arguments.
func IsGenericType(typeName string) bool {
	switch BuiltinType(typeName) {
	case List, Tuple, Iterable, Promise:
		return true
	default:
		return false
	}
}

// Arity is the number of type arguments a generic builtin takes; -1 means
// any number.
func Arity(typeName string) int {
	switch BuiltinType(typeName) {
	case List, Iterable, Promise:
		return 1
	case Tuple:
		return -1
	default:
		return 0
	}
}

// Prelude declares the method tables of the builtin types and the global
// functions.
//
//go:embed prelude.yali
var Prelude string

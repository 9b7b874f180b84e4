package ast

// TypeExpression is the restricted sub-grammar used in annotations.
type TypeExpression interface {
	Node
	Accept(v TypeExpressionVisitor)
}

// Typename names a type, optionally through a module (`mod.Name`).
type Typename struct {
	Range      Range
	Qualifier  *Identifier
	Identifier *Identifier
	Arguments  []TypeExpression
}

// SpecialTypeDisplay is one of the builtin bracketed constructors such as
// List[T], Tuple[A, B] or Promise[T].
type SpecialTypeDisplay struct {
	Range      Range
	Identifier *Identifier
	Arguments  []TypeExpression
}

type NullableTypeDisplay struct {
	Range Range
	Type  TypeExpression
}

type UnionTypeDisplay struct {
	Range Range
	Types []TypeExpression
}

type FunctionTypeDisplay struct {
	Range      Range
	Parameters []TypeExpression
	ReturnType TypeExpression
}

// ValueTypeDisplay is a literal used as a type, e.g. "red" | "green".
type ValueTypeDisplay struct {
	Range Range
	Value Expression
}

// SpecialTypeNames lists the names the parser turns into SpecialTypeDisplay
// when followed by brackets.
var SpecialTypeNames = map[string]bool{
	"List":     true,
	"Tuple":    true,
	"Iterable": true,
	"Promise":  true,
	"Nullable": true,
	"Union":    true,
	"Function": true,
}

package ast

// Expression is any node that produces a value. Binary and unary operators,
// attribute access and indexing never appear as their own node kinds: the
// parser rewrites them into MethodCall nodes with dunder method names.
type Expression interface {
	Node
	Accept(v ExpressionVisitor)
}

type NullLiteral struct {
	Range Range
}

type BooleanLiteral struct {
	Range Range
	Value bool
}

type NumberLiteral struct {
	Range Range
	Value float64
	Raw   string
}

type StringLiteral struct {
	Range Range
	Value string
	Raw   string
}

type Identifier struct {
	Range Range
	Name  string
}

// Assignment rebinds a plain variable. Attribute and index assignment are
// MethodCall nodes (__set_<name> and __setitem__).
type Assignment struct {
	Range  Range
	Target *Identifier
	Value  Expression
}

type ListDisplay struct {
	Range Range
	Items []Expression
}

type RecordEntry struct {
	Range Range
	Key   *Identifier
	Value Expression
}

type RecordDisplay struct {
	Range   Range
	Entries []*RecordEntry
}

type Parameter struct {
	Range        Range
	Identifier   *Identifier
	Type         TypeExpression // nil when left to inference
	DefaultValue Expression     // nil when required
}

type TypeParameter struct {
	Range      Range
	Identifier *Identifier
	Bound      TypeExpression
}

// FunctionDisplay is a function literal, a named function declaration's
// value, or (with a nil Body) a bodiless signature inside an interface or
// abstract class. Arrow functions with an expression body get a synthesized
// Block holding a single Return.
type FunctionDisplay struct {
	Range          Range
	Identifier     *Identifier
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	ReturnType     TypeExpression
	Body           *Block
	ExpressionBody bool
}

type MethodCall struct {
	Range      Range
	Owner      Expression
	Identifier *Identifier
	Arguments  []Expression
}

type LogicalNot struct {
	Range   Range
	Operand Expression
}

type LogicalAnd struct {
	Range Range
	Left  Expression
	Right Expression
}

type LogicalOr struct {
	Range Range
	Left  Expression
	Right Expression
}

type Conditional struct {
	Range     Range
	Condition Expression
	Then      Expression
	Else      Expression
}

type TypeAssertion struct {
	Range      Range
	Expression Expression
	Type       TypeExpression
}

// NativeExpression embeds target-language source text verbatim.
type NativeExpression struct {
	Range  Range
	Source string
}

type NativePureFunction struct {
	Range      Range
	Parameters []*Parameter
	ReturnType TypeExpression
	Source     string
}

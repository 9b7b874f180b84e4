package ast

type Statement interface {
	Node
	Accept(v StatementVisitor)
}

// Declaration introduces a variable. `var` declarations are mutable, `const`
// declarations and named functions are not.
type Declaration struct {
	Range      Range
	IsMutable  bool
	IsStatic   bool
	Identifier *Identifier
	Type       TypeExpression
	Value      Expression
	Comment    string
}

// Function returns the function literal when d was written as
// `function name(...) {...}`.
func (d *Declaration) Function() (*FunctionDisplay, bool) {
	fn, ok := d.Value.(*FunctionDisplay)
	return fn, ok && fn.Identifier != nil && !d.IsMutable
}

type ExpressionStatement struct {
	Range      Range
	Expression Expression
}

type Block struct {
	Range      Range
	Statements []Statement
}

type If struct {
	Range     Range
	Condition Expression
	Body      *Block
	Else      Statement // *Block, *If or nil
}

type While struct {
	Range     Range
	Condition Expression
	Body      *Block
}

type For struct {
	Range    Range
	Variable *Identifier
	Iterable Expression
	Body     *Block
}

type Return struct {
	Range Range
	Value Expression
}

type Break struct {
	Range Range
}

type Continue struct {
	Range Range
}

type ClassDefinition struct {
	Range      Range
	IsAbstract bool
	Identifier *Identifier
	Base       TypeExpression
	Members    []*Declaration
	Comment    string
}

type InterfaceDefinition struct {
	Range      Range
	Identifier *Identifier
	Bases      []TypeExpression
	Members    []*Declaration
	Comment    string
}

type EnumMember struct {
	Range      Range
	Identifier *Identifier
	Value      Expression
}

type EnumDefinition struct {
	Range      Range
	Identifier *Identifier
	Members    []*EnumMember
	Comment    string
}

type Typedef struct {
	Range      Range
	Identifier *Identifier
	Type       TypeExpression
	Comment    string
}

type ImportAs struct {
	Range Range
	Path  []*Identifier
	Alias *Identifier
}

type ImportName struct {
	Range      Range
	Identifier *Identifier
	Alias      *Identifier
}

type FromImport struct {
	Range Range
	Path  []*Identifier
	Names []*ImportName
}

type ExportAs struct {
	Range      Range
	Identifier *Identifier
	Alias      *Identifier
}

// DottedPath joins an import path back into its source spelling.
func DottedPath(path []*Identifier) string {
	out := ""
	for i, part := range path {
		if i > 0 {
			out += "."
		}
		out += part.Name
	}
	return out
}

package ast

// Inspect traverses the tree rooted at n depth-first, calling f for every
// node. If f returns false the children of that node are skipped. Shared
// subtrees (the parser reuses owner nodes when desugaring compound
// assignments) are visited once per occurrence.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || isNilNode(n) || !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil && !isNilNode(c) {
				out = append(out, c)
			}
		}
	}
	addExpr := func(items []Expression) {
		for _, e := range items {
			add(e)
		}
	}
	addType := func(t TypeExpression) {
		if t != nil {
			add(t)
		}
	}
	addValue := func(e Expression) {
		if e != nil {
			add(e)
		}
	}
	addParams := func(params []*Parameter) {
		for _, p := range params {
			add(p)
		}
	}

	switch n := n.(type) {
	case *File:
		for _, s := range n.Statements {
			add(s)
		}
	case *Assignment:
		add(n.Target)
		addValue(n.Value)
	case *ListDisplay:
		addExpr(n.Items)
	case *RecordDisplay:
		for _, e := range n.Entries {
			add(e)
		}
	case *RecordEntry:
		add(n.Key)
		addValue(n.Value)
	case *FunctionDisplay:
		if n.Identifier != nil {
			add(n.Identifier)
		}
		for _, tp := range n.TypeParameters {
			add(tp)
		}
		addParams(n.Parameters)
		addType(n.ReturnType)
		if n.Body != nil {
			add(n.Body)
		}
	case *Parameter:
		add(n.Identifier)
		addType(n.Type)
		addValue(n.DefaultValue)
	case *TypeParameter:
		add(n.Identifier)
		addType(n.Bound)
	case *MethodCall:
		add(n.Owner)
		add(n.Identifier)
		addExpr(n.Arguments)
	case *LogicalNot:
		add(n.Operand)
	case *LogicalAnd:
		add(n.Left, n.Right)
	case *LogicalOr:
		add(n.Left, n.Right)
	case *Conditional:
		add(n.Condition, n.Then, n.Else)
	case *TypeAssertion:
		add(n.Expression)
		addType(n.Type)
	case *NativePureFunction:
		addParams(n.Parameters)
		addType(n.ReturnType)
	case *Declaration:
		add(n.Identifier)
		addType(n.Type)
		addValue(n.Value)
	case *ExpressionStatement:
		add(n.Expression)
	case *Block:
		for _, s := range n.Statements {
			add(s)
		}
	case *If:
		add(n.Condition, n.Body)
		if n.Else != nil {
			add(n.Else)
		}
	case *While:
		add(n.Condition, n.Body)
	case *For:
		add(n.Variable, n.Iterable, n.Body)
	case *Return:
		addValue(n.Value)
	case *ClassDefinition:
		add(n.Identifier)
		addType(n.Base)
		for _, m := range n.Members {
			add(m)
		}
	case *InterfaceDefinition:
		add(n.Identifier)
		for _, b := range n.Bases {
			add(b)
		}
		for _, m := range n.Members {
			add(m)
		}
	case *EnumDefinition:
		add(n.Identifier)
		for _, m := range n.Members {
			add(m)
		}
	case *EnumMember:
		add(n.Identifier)
		addValue(n.Value)
	case *Typedef:
		add(n.Identifier)
		addType(n.Type)
	case *ImportAs:
		for _, p := range n.Path {
			add(p)
		}
		if n.Alias != nil {
			add(n.Alias)
		}
	case *FromImport:
		for _, p := range n.Path {
			add(p)
		}
		for _, name := range n.Names {
			add(name)
		}
	case *ImportName:
		add(n.Identifier)
		if n.Alias != nil {
			add(n.Alias)
		}
	case *ExportAs:
		add(n.Identifier)
		if n.Alias != nil {
			add(n.Alias)
		}
	case *Typename:
		if n.Qualifier != nil {
			add(n.Qualifier)
		}
		add(n.Identifier)
		for _, a := range n.Arguments {
			add(a)
		}
	case *SpecialTypeDisplay:
		add(n.Identifier)
		for _, a := range n.Arguments {
			add(a)
		}
	case *NullableTypeDisplay:
		add(n.Type)
	case *UnionTypeDisplay:
		for _, t := range n.Types {
			add(t)
		}
	case *FunctionTypeDisplay:
		for _, t := range n.Parameters {
			add(t)
		}
		addType(n.ReturnType)
	case *ValueTypeDisplay:
		add(n.Value)
	}
	return out
}

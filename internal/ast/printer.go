package ast

import (
	"strconv"
	"strings"
)

// Format renders any node in a compact constructor notation, e.g.
// MethodCall(MethodCall(a, __get_b), __get_c). The output is meant for
// debugging and tests, not for round-tripping.
func Format(n Node) string {
	if n == nil {
		return "nil"
	}
	p := &printer{}
	p.node(n)
	return p.b.String()
}

type printer struct {
	b strings.Builder
}

func (p *printer) write(parts ...string) {
	for _, s := range parts {
		p.b.WriteString(s)
	}
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case nil:
		p.write("nil")
	case Expression:
		if isNilNode(n) {
			p.write("nil")
			return
		}
		n.Accept(p)
	case Statement:
		if isNilNode(n) {
			p.write("nil")
			return
		}
		n.Accept(p)
	case TypeExpression:
		if isNilNode(n) {
			p.write("nil")
			return
		}
		n.Accept(p)
	case *File:
		p.write("File(")
		p.statements(n.Statements)
		p.write(")")
	case *Parameter:
		p.parameter(n)
	default:
		p.write(n.NodeType().String())
	}
}

// isNilNode catches typed nil pointers stored in interface fields.
func isNilNode(n Node) bool {
	switch n := n.(type) {
	case *Identifier:
		return n == nil
	case *Block:
		return n == nil
	case *FunctionDisplay:
		return n == nil
	}
	return false
}

func (p *printer) call(kind string, args ...func()) {
	p.write(kind, "(")
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		arg()
	}
	p.write(")")
}

func (p *printer) of(n Node) func() {
	return func() { p.node(n) }
}

func (p *printer) text(s string) func() {
	return func() { p.write(s) }
}

func (p *printer) ident(id *Identifier) func() {
	return func() {
		if id == nil {
			p.write("nil")
			return
		}
		p.write(id.Name)
	}
}

func (p *printer) list(n int, item func(i int)) func() {
	return func() {
		p.write("[")
		for i := 0; i < n; i++ {
			if i > 0 {
				p.write(", ")
			}
			item(i)
		}
		p.write("]")
	}
}

func (p *printer) expressions(items []Expression) func() {
	return p.list(len(items), func(i int) { p.node(items[i]) })
}

func (p *printer) statements(items []Statement) {
	p.list(len(items), func(i int) { p.node(items[i]) })()
}

func (p *printer) parameter(param *Parameter) {
	p.write(param.Identifier.Name)
	if param.Type != nil {
		p.write(": ")
		p.node(param.Type)
	}
	if param.DefaultValue != nil {
		p.write(" = ")
		p.node(param.DefaultValue)
	}
}

func (p *printer) VisitNullLiteral(*NullLiteral) { p.write("null") }

func (p *printer) VisitBooleanLiteral(n *BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *printer) VisitNumberLiteral(n *NumberLiteral) {
	if n.Raw != "" {
		p.write(n.Raw)
		return
	}
	p.write(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (p *printer) VisitStringLiteral(n *StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *printer) VisitIdentifier(n *Identifier) { p.write(n.Name) }

func (p *printer) VisitAssignment(n *Assignment) {
	p.call("Assignment", p.ident(n.Target), p.of(n.Value))
}

func (p *printer) VisitListDisplay(n *ListDisplay) {
	p.call("ListDisplay", p.expressions(n.Items))
}

func (p *printer) VisitRecordDisplay(n *RecordDisplay) {
	p.call("RecordDisplay", p.list(len(n.Entries), func(i int) {
		p.write(n.Entries[i].Key.Name, ": ")
		p.node(n.Entries[i].Value)
	}))
}

func (p *printer) functionParts(typeParams []*TypeParameter, params []*Parameter, ret TypeExpression) []func() {
	parts := []func(){}
	if len(typeParams) > 0 {
		parts = append(parts, p.list(len(typeParams), func(i int) {
			p.write(typeParams[i].Identifier.Name)
			if typeParams[i].Bound != nil {
				p.write(": ")
				p.node(typeParams[i].Bound)
			}
		}))
	}
	parts = append(parts, p.list(len(params), func(i int) { p.parameter(params[i]) }))
	if ret != nil {
		parts = append(parts, p.of(ret))
	}
	return parts
}

func (p *printer) VisitFunctionDisplay(n *FunctionDisplay) {
	parts := []func(){p.ident(n.Identifier)}
	parts = append(parts, p.functionParts(n.TypeParameters, n.Parameters, n.ReturnType)...)
	if n.Body != nil {
		parts = append(parts, p.of(n.Body))
	}
	p.call("FunctionDisplay", parts...)
}

func (p *printer) VisitMethodCall(n *MethodCall) {
	parts := []func(){p.of(n.Owner), p.ident(n.Identifier)}
	if len(n.Arguments) > 0 {
		parts = append(parts, p.expressions(n.Arguments))
	}
	p.call("MethodCall", parts...)
}

func (p *printer) VisitLogicalNot(n *LogicalNot) { p.call("LogicalNot", p.of(n.Operand)) }

func (p *printer) VisitLogicalAnd(n *LogicalAnd) {
	p.call("LogicalAnd", p.of(n.Left), p.of(n.Right))
}

func (p *printer) VisitLogicalOr(n *LogicalOr) {
	p.call("LogicalOr", p.of(n.Left), p.of(n.Right))
}

func (p *printer) VisitConditional(n *Conditional) {
	p.call("Conditional", p.of(n.Condition), p.of(n.Then), p.of(n.Else))
}

func (p *printer) VisitTypeAssertion(n *TypeAssertion) {
	p.call("TypeAssertion", p.of(n.Expression), p.of(n.Type))
}

func (p *printer) VisitNativeExpression(n *NativeExpression) {
	p.call("NativeExpression", p.text(strconv.Quote(n.Source)))
}

func (p *printer) VisitNativePureFunction(n *NativePureFunction) {
	parts := p.functionParts(nil, n.Parameters, n.ReturnType)
	parts = append(parts, p.text(strconv.Quote(n.Source)))
	p.call("NativePureFunction", parts...)
}

func mutability(mutable bool) string {
	if mutable {
		return "var"
	}
	return "const"
}

func (p *printer) VisitDeclaration(n *Declaration) {
	kind := mutability(n.IsMutable)
	if n.IsStatic {
		kind = "static " + kind
	}
	parts := []func(){p.text(kind), p.ident(n.Identifier)}
	if n.Type != nil {
		parts = append(parts, p.of(n.Type))
	}
	if n.Value != nil {
		parts = append(parts, p.of(n.Value))
	}
	p.call("Declaration", parts...)
}

func (p *printer) VisitExpressionStatement(n *ExpressionStatement) {
	p.call("ExpressionStatement", p.of(n.Expression))
}

func (p *printer) VisitBlock(n *Block) {
	p.write("Block(")
	p.statements(n.Statements)
	p.write(")")
}

func (p *printer) VisitIf(n *If) {
	parts := []func(){p.of(n.Condition), p.of(n.Body)}
	if n.Else != nil {
		parts = append(parts, p.of(n.Else))
	}
	p.call("If", parts...)
}

func (p *printer) VisitWhile(n *While) {
	p.call("While", p.of(n.Condition), p.of(n.Body))
}

func (p *printer) VisitFor(n *For) {
	p.call("For", p.ident(n.Variable), p.of(n.Iterable), p.of(n.Body))
}

func (p *printer) VisitReturn(n *Return) {
	if n.Value == nil {
		p.write("Return()")
		return
	}
	p.call("Return", p.of(n.Value))
}

func (p *printer) VisitBreak(*Break)       { p.write("Break()") }
func (p *printer) VisitContinue(*Continue) { p.write("Continue()") }

func (p *printer) members(members []*Declaration) func() {
	return p.list(len(members), func(i int) { p.node(members[i]) })
}

func (p *printer) VisitClassDefinition(n *ClassDefinition) {
	name := "ClassDefinition"
	if n.IsAbstract {
		name = "AbstractClassDefinition"
	}
	parts := []func(){p.ident(n.Identifier)}
	if n.Base != nil {
		parts = append(parts, p.of(n.Base))
	}
	parts = append(parts, p.members(n.Members))
	p.call(name, parts...)
}

func (p *printer) VisitInterfaceDefinition(n *InterfaceDefinition) {
	bases := p.list(len(n.Bases), func(i int) { p.node(n.Bases[i]) })
	p.call("InterfaceDefinition", p.ident(n.Identifier), bases, p.members(n.Members))
}

func (p *printer) VisitEnumDefinition(n *EnumDefinition) {
	p.call("EnumDefinition", p.ident(n.Identifier), p.list(len(n.Members), func(i int) {
		p.write(n.Members[i].Identifier.Name)
		if n.Members[i].Value != nil {
			p.write(" = ")
			p.node(n.Members[i].Value)
		}
	}))
}

func (p *printer) VisitTypedef(n *Typedef) {
	p.call("Typedef", p.ident(n.Identifier), p.of(n.Type))
}

func (p *printer) VisitImportAs(n *ImportAs) {
	parts := []func(){p.text(DottedPath(n.Path))}
	if n.Alias != nil {
		parts = append(parts, p.ident(n.Alias))
	}
	p.call("ImportAs", parts...)
}

func (p *printer) VisitFromImport(n *FromImport) {
	p.call("FromImport", p.text(DottedPath(n.Path)), p.list(len(n.Names), func(i int) {
		p.write(n.Names[i].Identifier.Name)
		if n.Names[i].Alias != nil {
			p.write(" as ", n.Names[i].Alias.Name)
		}
	}))
}

func (p *printer) VisitExportAs(n *ExportAs) {
	parts := []func(){p.ident(n.Identifier)}
	if n.Alias != nil {
		parts = append(parts, p.ident(n.Alias))
	}
	p.call("ExportAs", parts...)
}

func (p *printer) typeArguments(args []TypeExpression) {
	if len(args) == 0 {
		return
	}
	p.write("[")
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		p.node(arg)
	}
	p.write("]")
}

func (p *printer) VisitTypename(n *Typename) {
	if n.Qualifier != nil {
		p.write(n.Qualifier.Name, ".")
	}
	p.write(n.Identifier.Name)
	p.typeArguments(n.Arguments)
}

func (p *printer) VisitSpecialTypeDisplay(n *SpecialTypeDisplay) {
	p.write(n.Identifier.Name)
	p.typeArguments(n.Arguments)
}

func (p *printer) VisitNullableTypeDisplay(n *NullableTypeDisplay) {
	p.node(n.Type)
	p.write("?")
}

func (p *printer) VisitUnionTypeDisplay(n *UnionTypeDisplay) {
	for i, t := range n.Types {
		if i > 0 {
			p.write(" | ")
		}
		p.node(t)
	}
}

func (p *printer) VisitFunctionTypeDisplay(n *FunctionTypeDisplay) {
	p.write("(")
	for i, t := range n.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.node(t)
	}
	p.write(") => ")
	p.node(n.ReturnType)
}

func (p *printer) VisitValueTypeDisplay(n *ValueTypeDisplay) { p.node(n.Value) }

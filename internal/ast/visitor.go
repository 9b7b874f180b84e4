package ast

// ExpressionVisitor is implemented by every consumer that needs to treat each
// expression kind separately. Adding a node kind breaks every visitor, which
// is the point.
type ExpressionVisitor interface {
	VisitNullLiteral(n *NullLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNumberLiteral(n *NumberLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitIdentifier(n *Identifier)
	VisitAssignment(n *Assignment)
	VisitListDisplay(n *ListDisplay)
	VisitRecordDisplay(n *RecordDisplay)
	VisitFunctionDisplay(n *FunctionDisplay)
	VisitMethodCall(n *MethodCall)
	VisitLogicalNot(n *LogicalNot)
	VisitLogicalAnd(n *LogicalAnd)
	VisitLogicalOr(n *LogicalOr)
	VisitConditional(n *Conditional)
	VisitTypeAssertion(n *TypeAssertion)
	VisitNativeExpression(n *NativeExpression)
	VisitNativePureFunction(n *NativePureFunction)
}

type StatementVisitor interface {
	VisitDeclaration(n *Declaration)
	VisitExpressionStatement(n *ExpressionStatement)
	VisitBlock(n *Block)
	VisitIf(n *If)
	VisitWhile(n *While)
	VisitFor(n *For)
	VisitReturn(n *Return)
	VisitBreak(n *Break)
	VisitContinue(n *Continue)
	VisitClassDefinition(n *ClassDefinition)
	VisitInterfaceDefinition(n *InterfaceDefinition)
	VisitEnumDefinition(n *EnumDefinition)
	VisitTypedef(n *Typedef)
	VisitImportAs(n *ImportAs)
	VisitFromImport(n *FromImport)
	VisitExportAs(n *ExportAs)
}

type TypeExpressionVisitor interface {
	VisitTypename(n *Typename)
	VisitSpecialTypeDisplay(n *SpecialTypeDisplay)
	VisitNullableTypeDisplay(n *NullableTypeDisplay)
	VisitUnionTypeDisplay(n *UnionTypeDisplay)
	VisitFunctionTypeDisplay(n *FunctionTypeDisplay)
	VisitValueTypeDisplay(n *ValueTypeDisplay)
}

func (nl *NullLiteral) Accept(v ExpressionVisitor)         { v.VisitNullLiteral(nl) }
func (bl *BooleanLiteral) Accept(v ExpressionVisitor)      { v.VisitBooleanLiteral(bl) }
func (nl *NumberLiteral) Accept(v ExpressionVisitor)       { v.VisitNumberLiteral(nl) }
func (sl *StringLiteral) Accept(v ExpressionVisitor)       { v.VisitStringLiteral(sl) }
func (i *Identifier) Accept(v ExpressionVisitor)           { v.VisitIdentifier(i) }
func (a *Assignment) Accept(v ExpressionVisitor)           { v.VisitAssignment(a) }
func (ld *ListDisplay) Accept(v ExpressionVisitor)         { v.VisitListDisplay(ld) }
func (rd *RecordDisplay) Accept(v ExpressionVisitor)       { v.VisitRecordDisplay(rd) }
func (fd *FunctionDisplay) Accept(v ExpressionVisitor)     { v.VisitFunctionDisplay(fd) }
func (mc *MethodCall) Accept(v ExpressionVisitor)          { v.VisitMethodCall(mc) }
func (ln *LogicalNot) Accept(v ExpressionVisitor)          { v.VisitLogicalNot(ln) }
func (la *LogicalAnd) Accept(v ExpressionVisitor)          { v.VisitLogicalAnd(la) }
func (lo *LogicalOr) Accept(v ExpressionVisitor)           { v.VisitLogicalOr(lo) }
func (c *Conditional) Accept(v ExpressionVisitor)          { v.VisitConditional(c) }
func (ta *TypeAssertion) Accept(v ExpressionVisitor)       { v.VisitTypeAssertion(ta) }
func (ne *NativeExpression) Accept(v ExpressionVisitor)    { v.VisitNativeExpression(ne) }
func (npf *NativePureFunction) Accept(v ExpressionVisitor) { v.VisitNativePureFunction(npf) }

func (d *Declaration) Accept(v StatementVisitor)          { v.VisitDeclaration(d) }
func (es *ExpressionStatement) Accept(v StatementVisitor) { v.VisitExpressionStatement(es) }
func (b *Block) Accept(v StatementVisitor)                { v.VisitBlock(b) }
func (i *If) Accept(v StatementVisitor)                   { v.VisitIf(i) }
func (w *While) Accept(v StatementVisitor)                { v.VisitWhile(w) }
func (f *For) Accept(v StatementVisitor)                  { v.VisitFor(f) }
func (r *Return) Accept(v StatementVisitor)               { v.VisitReturn(r) }
func (b *Break) Accept(v StatementVisitor)                { v.VisitBreak(b) }
func (c *Continue) Accept(v StatementVisitor)             { v.VisitContinue(c) }
func (cd *ClassDefinition) Accept(v StatementVisitor)     { v.VisitClassDefinition(cd) }
func (id *InterfaceDefinition) Accept(v StatementVisitor) { v.VisitInterfaceDefinition(id) }
func (ed *EnumDefinition) Accept(v StatementVisitor)      { v.VisitEnumDefinition(ed) }
func (t *Typedef) Accept(v StatementVisitor)              { v.VisitTypedef(t) }
func (ia *ImportAs) Accept(v StatementVisitor)            { v.VisitImportAs(ia) }
func (fi *FromImport) Accept(v StatementVisitor)          { v.VisitFromImport(fi) }
func (ea *ExportAs) Accept(v StatementVisitor)            { v.VisitExportAs(ea) }

func (t *Typename) Accept(v TypeExpressionVisitor)              { v.VisitTypename(t) }
func (std *SpecialTypeDisplay) Accept(v TypeExpressionVisitor)  { v.VisitSpecialTypeDisplay(std) }
func (ntd *NullableTypeDisplay) Accept(v TypeExpressionVisitor) { v.VisitNullableTypeDisplay(ntd) }
func (utd *UnionTypeDisplay) Accept(v TypeExpressionVisitor)    { v.VisitUnionTypeDisplay(utd) }
func (ftd *FunctionTypeDisplay) Accept(v TypeExpressionVisitor) { v.VisitFunctionTypeDisplay(ftd) }
func (vtd *ValueTypeDisplay) Accept(v TypeExpressionVisitor)    { v.VisitValueTypeDisplay(vtd) }

package ast

type Node interface {
	NodeRange() Range
	NodeType() NodeType
	String() string
}

func (nl *NullLiteral) NodeRange() Range { return nl.Range }
func (*NullLiteral) NodeType() NodeType  { return NULL_LITERAL }

func (bl *BooleanLiteral) NodeRange() Range { return bl.Range }
func (*BooleanLiteral) NodeType() NodeType  { return BOOLEAN_LITERAL }

func (nl *NumberLiteral) NodeRange() Range { return nl.Range }
func (*NumberLiteral) NodeType() NodeType  { return NUMBER_LITERAL }

func (sl *StringLiteral) NodeRange() Range { return sl.Range }
func (*StringLiteral) NodeType() NodeType  { return STRING_LITERAL }

func (i *Identifier) NodeRange() Range { return i.Range }
func (*Identifier) NodeType() NodeType { return IDENTIFIER }

func (a *Assignment) NodeRange() Range { return a.Range }
func (*Assignment) NodeType() NodeType { return ASSIGNMENT }

func (ld *ListDisplay) NodeRange() Range { return ld.Range }
func (*ListDisplay) NodeType() NodeType  { return LIST_DISPLAY }

func (rd *RecordDisplay) NodeRange() Range { return rd.Range }
func (*RecordDisplay) NodeType() NodeType  { return RECORD_DISPLAY }

func (fd *FunctionDisplay) NodeRange() Range { return fd.Range }
func (*FunctionDisplay) NodeType() NodeType  { return FUNCTION_DISPLAY }

func (mc *MethodCall) NodeRange() Range { return mc.Range }
func (*MethodCall) NodeType() NodeType  { return METHOD_CALL }

func (ln *LogicalNot) NodeRange() Range { return ln.Range }
func (*LogicalNot) NodeType() NodeType  { return LOGICAL_NOT }

func (la *LogicalAnd) NodeRange() Range { return la.Range }
func (*LogicalAnd) NodeType() NodeType  { return LOGICAL_AND }

func (lo *LogicalOr) NodeRange() Range { return lo.Range }
func (*LogicalOr) NodeType() NodeType  { return LOGICAL_OR }

func (c *Conditional) NodeRange() Range { return c.Range }
func (*Conditional) NodeType() NodeType { return CONDITIONAL }

func (ta *TypeAssertion) NodeRange() Range { return ta.Range }
func (*TypeAssertion) NodeType() NodeType  { return TYPE_ASSERTION }

func (ne *NativeExpression) NodeRange() Range { return ne.Range }
func (*NativeExpression) NodeType() NodeType  { return NATIVE_EXPRESSION }

func (npf *NativePureFunction) NodeRange() Range { return npf.Range }
func (*NativePureFunction) NodeType() NodeType   { return NATIVE_PURE_FUNCTION }

func (d *Declaration) NodeRange() Range { return d.Range }
func (*Declaration) NodeType() NodeType { return DECLARATION }

func (es *ExpressionStatement) NodeRange() Range { return es.Range }
func (*ExpressionStatement) NodeType() NodeType  { return EXPRESSION_STATEMENT }

func (b *Block) NodeRange() Range { return b.Range }
func (*Block) NodeType() NodeType { return BLOCK }

func (i *If) NodeRange() Range { return i.Range }
func (*If) NodeType() NodeType { return IF }

func (w *While) NodeRange() Range { return w.Range }
func (*While) NodeType() NodeType { return WHILE }

func (f *For) NodeRange() Range { return f.Range }
func (*For) NodeType() NodeType { return FOR }

func (r *Return) NodeRange() Range { return r.Range }
func (*Return) NodeType() NodeType { return RETURN }

func (b *Break) NodeRange() Range { return b.Range }
func (*Break) NodeType() NodeType { return BREAK }

func (c *Continue) NodeRange() Range { return c.Range }
func (*Continue) NodeType() NodeType { return CONTINUE }

func (cd *ClassDefinition) NodeRange() Range { return cd.Range }
func (*ClassDefinition) NodeType() NodeType  { return CLASS_DEFINITION }

func (id *InterfaceDefinition) NodeRange() Range { return id.Range }
func (*InterfaceDefinition) NodeType() NodeType  { return INTERFACE_DEFINITION }

func (ed *EnumDefinition) NodeRange() Range { return ed.Range }
func (*EnumDefinition) NodeType() NodeType  { return ENUM_DEFINITION }

func (t *Typedef) NodeRange() Range { return t.Range }
func (*Typedef) NodeType() NodeType { return TYPEDEF }

func (ia *ImportAs) NodeRange() Range { return ia.Range }
func (*ImportAs) NodeType() NodeType  { return IMPORT_AS }

func (fi *FromImport) NodeRange() Range { return fi.Range }
func (*FromImport) NodeType() NodeType  { return FROM_IMPORT }

func (ea *ExportAs) NodeRange() Range { return ea.Range }
func (*ExportAs) NodeType() NodeType  { return EXPORT_AS }

func (t *Typename) NodeRange() Range { return t.Range }
func (*Typename) NodeType() NodeType { return TYPENAME }

func (std *SpecialTypeDisplay) NodeRange() Range { return std.Range }
func (*SpecialTypeDisplay) NodeType() NodeType   { return SPECIAL_TYPE_DISPLAY }

func (ntd *NullableTypeDisplay) NodeRange() Range { return ntd.Range }
func (*NullableTypeDisplay) NodeType() NodeType   { return NULLABLE_TYPE_DISPLAY }

func (utd *UnionTypeDisplay) NodeRange() Range { return utd.Range }
func (*UnionTypeDisplay) NodeType() NodeType   { return UNION_TYPE_DISPLAY }

func (ftd *FunctionTypeDisplay) NodeRange() Range { return ftd.Range }
func (*FunctionTypeDisplay) NodeType() NodeType   { return FUNCTION_TYPE_DISPLAY }

func (vtd *ValueTypeDisplay) NodeRange() Range { return vtd.Range }
func (*ValueTypeDisplay) NodeType() NodeType   { return VALUE_TYPE_DISPLAY }

func (p *Parameter) NodeRange() Range { return p.Range }
func (*Parameter) NodeType() NodeType { return PARAMETER }

func (tp *TypeParameter) NodeRange() Range { return tp.Range }
func (*TypeParameter) NodeType() NodeType  { return TYPE_PARAMETER }

func (re *RecordEntry) NodeRange() Range { return re.Range }
func (*RecordEntry) NodeType() NodeType  { return RECORD_ENTRY }

func (em *EnumMember) NodeRange() Range { return em.Range }
func (*EnumMember) NodeType() NodeType  { return ENUM_MEMBER }

func (in *ImportName) NodeRange() Range { return in.Range }
func (*ImportName) NodeType() NodeType  { return IMPORT_NAME }

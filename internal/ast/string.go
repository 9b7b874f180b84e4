package ast

func (nl *NullLiteral) String() string          { return Format(nl) }
func (bl *BooleanLiteral) String() string       { return Format(bl) }
func (nl *NumberLiteral) String() string        { return Format(nl) }
func (sl *StringLiteral) String() string        { return Format(sl) }
func (i *Identifier) String() string            { return Format(i) }
func (a *Assignment) String() string            { return Format(a) }
func (ld *ListDisplay) String() string          { return Format(ld) }
func (rd *RecordDisplay) String() string        { return Format(rd) }
func (fd *FunctionDisplay) String() string      { return Format(fd) }
func (mc *MethodCall) String() string           { return Format(mc) }
func (ln *LogicalNot) String() string           { return Format(ln) }
func (la *LogicalAnd) String() string           { return Format(la) }
func (lo *LogicalOr) String() string            { return Format(lo) }
func (c *Conditional) String() string           { return Format(c) }
func (ta *TypeAssertion) String() string        { return Format(ta) }
func (ne *NativeExpression) String() string     { return Format(ne) }
func (npf *NativePureFunction) String() string  { return Format(npf) }
func (d *Declaration) String() string           { return Format(d) }
func (es *ExpressionStatement) String() string  { return Format(es) }
func (b *Block) String() string                 { return Format(b) }
func (i *If) String() string                    { return Format(i) }
func (w *While) String() string                 { return Format(w) }
func (f *For) String() string                   { return Format(f) }
func (r *Return) String() string                { return Format(r) }
func (b *Break) String() string                 { return Format(b) }
func (c *Continue) String() string              { return Format(c) }
func (cd *ClassDefinition) String() string      { return Format(cd) }
func (id *InterfaceDefinition) String() string  { return Format(id) }
func (ed *EnumDefinition) String() string       { return Format(ed) }
func (t *Typedef) String() string               { return Format(t) }
func (ia *ImportAs) String() string             { return Format(ia) }
func (fi *FromImport) String() string           { return Format(fi) }
func (ea *ExportAs) String() string             { return Format(ea) }
func (t *Typename) String() string              { return Format(t) }
func (std *SpecialTypeDisplay) String() string  { return Format(std) }
func (ntd *NullableTypeDisplay) String() string { return Format(ntd) }
func (utd *UnionTypeDisplay) String() string    { return Format(utd) }
func (ftd *FunctionTypeDisplay) String() string { return Format(ftd) }
func (vtd *ValueTypeDisplay) String() string    { return Format(vtd) }
func (p *Parameter) String() string             { return Format(p) }
func (tp *TypeParameter) String() string        { return Format(tp) }
func (re *RecordEntry) String() string          { return Format(re) }
func (em *EnumMember) String() string           { return Format(em) }
func (in *ImportName) String() string           { return Format(in) }
func (f *File) String() string                  { return Format(f) }

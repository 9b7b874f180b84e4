package semantic

import (
	"yal/internal/ast"
	"yal/internal/errors"
	"yal/internal/stdlib"
	"yal/internal/types"
)

// Options configures an annotation run.
type Options struct {
	// Importer resolves import paths. Nil means the standard library only.
	Importer types.Importer
}

// annotator walks one file. It implements the expression, statement and
// type expression visitors; each Visit method leaves its answer in result,
// flow or typeResult.
type annotator struct {
	ann      *Annotation
	uri      string
	importer types.Importer
	scope    *Scope

	expected   *types.Type
	result     *ExpressionInfo
	flow       Flow
	typeResult *types.Type

	// breaks has one entry per enclosing loop of the current function.
	breaks []bool

	signatures map[*ast.FunctionDisplay]*signature
	classes    map[*ast.ClassDefinition]*classInfo
	classTypes map[*types.Type]*classInfo
	interfaces map[*ast.InterfaceDefinition]*interfaceInfo
	typedefs   map[*ast.Typedef]*types.Type
	pending    map[*types.Type]bool
	// cyclic is set when a type expression names a pending typedef.
	cyclic bool
	fields     map[*ast.Declaration]*types.Variable
	hoisted    map[*ast.Declaration]*types.Variable
	jumps      map[ast.Expression]bool
	exports    []*ast.ExportAs
}

// AnnotateFile resolves names and infers types for file using the standard
// library as the only source of imports.
func AnnotateFile(file *ast.File) *Annotation {
	return AnnotateFileWithOptions(file, Options{})
}

// AnnotateFileWithOptions is AnnotateFile with a custom importer.
func AnnotateFileWithOptions(file *ast.File, opts Options) *Annotation {
	importer := opts.Importer
	if importer == nil {
		importer = stdlib.Standard()
	}
	a := &annotator{
		ann:        newAnnotation(file),
		uri:        file.URI(),
		importer:   importer,
		signatures: map[*ast.FunctionDisplay]*signature{},
		classes:    map[*ast.ClassDefinition]*classInfo{},
		classTypes: map[*types.Type]*classInfo{},
		interfaces: map[*ast.InterfaceDefinition]*interfaceInfo{},
		typedefs:   map[*ast.Typedef]*types.Type{},
		pending:    map[*types.Type]bool{},
		fields:     map[*ast.Declaration]*types.Variable{},
		hoisted:    map[*ast.Declaration]*types.Variable{},
		jumps:      map[ast.Expression]bool{},
	}
	for _, e := range file.Errors {
		a.ann.Errors = append(a.ann.Errors, errors.FromSyntaxError(e))
	}

	a.scope = NewScope(newRootScope())
	a.ann.fileScope = a.scope
	a.statements(file.Statements)
	a.resolveExports()

	errors.Sort(a.ann.Errors)
	return a.ann
}

func (a *annotator) loc(r ast.Range) ast.Location {
	return ast.Location{URI: a.uri, Range: r}
}

func (a *annotator) report(d errors.Diagnostic) {
	a.ann.Errors = append(a.ann.Errors, d)
}

// reference records a use of v at r. Narrowed copies are mapped back to
// the declared variable.
func (a *annotator) reference(r ast.Range, v *types.Variable) {
	a.ann.References = append(a.ann.References, Reference{Range: r, Variable: a.scope.original(v)})
}

// declare binds v in the current scope under id's name and records the
// declaration.
func (a *annotator) declare(v *types.Variable, id *ast.Identifier) {
	if prev := a.scope.LookupLocal(id.Name); prev != nil && !prev.IsForwardDeclaration {
		a.report(errors.DuplicateDeclaration(id.Name, a.loc(id.Range), prev.Location))
	}
	a.scope.DefineAs(id.Name, v)
	a.ann.Variables = append(a.ann.Variables, v)
	a.ann.References = append(a.ann.References, Reference{Range: id.Range, Variable: v, IsDeclaration: true})
}

func (a *annotator) newVariable(id *ast.Identifier, t *types.Type, mutable bool, value types.Value) *types.Variable {
	return types.NewVariable(id.Name, t, mutable, value, a.loc(id.Range))
}

// withScope runs fn with s as the current scope.
func (a *annotator) withScope(s *Scope, fn func()) {
	saved := a.scope
	a.scope = s
	defer func() { a.scope = saved }()
	fn()
}

func (a *annotator) recordScope(r ast.Range, s *Scope) {
	a.ann.scopes = append(a.ann.scopes, scopeSpan{rng: r, scope: s})
}

// statements annotates a statement list in the current scope. Names that
// may be used before their statement (types, imports and named functions)
// are bound in passes before the list is walked in order.
func (a *annotator) statements(stmts []ast.Statement) Flow {
	a.declareTypes(stmts)
	a.declareImports(stmts)
	a.resolveHeaders(stmts)
	a.declareFunctions(stmts)
	a.declareStatics(stmts)

	flow := Continues
	warned := false
	for _, stmt := range stmts {
		if flow == Jumps && !warned {
			a.report(errors.UnreachableCode(a.loc(stmt.NodeRange())))
			warned = true
		}
		flow = flow.sequence(a.statement(stmt))
	}
	return flow
}

func (a *annotator) statement(stmt ast.Statement) Flow {
	saved := a.flow
	a.flow = Continues
	stmt.Accept(a)
	flow := a.flow
	a.flow = saved
	a.ann.flows[stmt] = flow
	return flow
}

// block annotates b in scope s.
func (a *annotator) block(b *ast.Block, s *Scope) Flow {
	a.recordScope(b.Range, s)
	var flow Flow
	a.withScope(s, func() { flow = a.statements(b.Statements) })
	a.ann.flows[b] = flow
	return flow
}

func (a *annotator) VisitDeclaration(n *ast.Declaration) {
	if v, ok := a.hoisted[n]; ok {
		fn := n.Value.(*ast.FunctionDisplay)
		if fn.Body == nil {
			a.report(errors.MissingBody(n.Identifier.Name, "", a.loc(n.Identifier.Range)))
		}
		a.functionBody(fn, a.signatures[fn], nil)
		a.ann.expressions[fn] = &ExpressionInfo{Type: v.Type, Value: v.Value}
		return
	}

	var declared *types.Type
	if n.Type != nil {
		declared = a.resolveType(n.Type)
	}
	var info *ExpressionInfo
	if n.Value != nil {
		info = a.solve(n.Value, declared)
	}

	t := declared
	var value types.Value
	switch {
	case declared != nil:
		if info != nil && a.checkAssignable(info, declared, n.Value.NodeRange()) {
			value = info.Value
		}
	case info == nil:
		t = types.Any
	case n.IsMutable:
		t = widen(info.Type)
	default:
		t = info.Type
		value = info.Value
	}
	v := a.newVariable(n.Identifier, t, n.IsMutable, value)
	v.Comment = n.Comment
	a.declare(v, n.Identifier)
}

func (a *annotator) VisitExpressionStatement(n *ast.ExpressionStatement) {
	a.solve(n.Expression, nil)
	if a.jumps[n.Expression] {
		a.flow = Jumps
	}
}

func (a *annotator) VisitBlock(n *ast.Block) {
	a.flow = a.block(n, NewScope(a.scope))
}

func (a *annotator) VisitIf(n *ast.If) {
	cond := a.solve(n.Condition, nil)
	whenTrue, whenFalse := a.narrowing(n.Condition)

	thenScope := NewScope(a.scope)
	a.applyNarrowing(thenScope, whenTrue)
	thenFlow := a.block(n.Body, thenScope)

	elseFlow := Continues
	if n.Else != nil {
		elseScope := NewScope(a.scope)
		a.applyNarrowing(elseScope, whenFalse)
		a.withScope(elseScope, func() { elseFlow = a.statement(n.Else) })
	}

	switch {
	case cond.Value != nil && types.Truthy(cond.Value):
		a.flow = thenFlow
	case cond.Value != nil:
		a.flow = elseFlow
	default:
		a.flow = branch(thenFlow, elseFlow)
	}

	// Code after `if x == null { return }` sees x as non-null.
	if thenFlow == Jumps && elseFlow != Jumps {
		a.applyNarrowing(a.scope, whenFalse)
	} else if elseFlow == Jumps && thenFlow != Jumps && n.Else != nil {
		a.applyNarrowing(a.scope, whenTrue)
	}
}

func (a *annotator) VisitWhile(n *ast.While) {
	cond := a.solve(n.Condition, nil)
	whenTrue, _ := a.narrowing(n.Condition)

	s := newLoopScope(a.scope)
	a.applyNarrowing(s, whenTrue)
	a.breaks = append(a.breaks, false)
	body := a.block(n.Body, s)
	breaks := a.breaks[len(a.breaks)-1]
	a.breaks = a.breaks[:len(a.breaks)-1]

	infinite := cond.Value != nil && types.Truthy(cond.Value)
	a.flow = loopFlow(body, infinite, breaks)
}

func (a *annotator) VisitFor(n *ast.For) {
	info := a.solve(n.Iterable, nil)
	item := info.Type.IterableItemType()
	if item == nil {
		if !info.Failed {
			a.report(errors.NotIterable(info.Type.String(), a.loc(n.Iterable.NodeRange())))
		}
		item = types.Any
	}

	s := newLoopScope(a.scope)
	a.withScope(s, func() {
		a.declare(a.newVariable(n.Variable, item, false, nil), n.Variable)
	})
	a.breaks = append(a.breaks, false)
	body := a.block(n.Body, s)
	a.breaks = a.breaks[:len(a.breaks)-1]
	a.flow = loopFlow(body, false, true)
}

func (a *annotator) VisitReturn(n *ast.Return) {
	a.flow = Jumps
	fn := a.scope.function
	if fn == nil {
		a.report(errors.ReturnOutsideFunction(a.loc(n.Range)))
		if n.Value != nil {
			a.solve(n.Value, nil)
		}
		return
	}

	t := types.Null
	at := n.Range
	reported := false
	if n.Value != nil {
		info := a.solve(n.Value, fn.expected)
		t, reported = info.Type, info.Failed
		at = n.Value.NodeRange()
	}
	if fn.declared != nil && !reported && !t.IsAssignableTo(fn.declared) {
		a.report(errors.InvalidReturnType(fn.declared.String(), t.String(), a.loc(at)))
	}
	fn.returns = append(fn.returns, t)
}

func (a *annotator) VisitBreak(n *ast.Break) {
	a.flow = Jumps
	if !a.scope.InLoop() {
		a.report(errors.JumpOutsideLoop("break", a.loc(n.Range)))
		return
	}
	if len(a.breaks) > 0 {
		a.breaks[len(a.breaks)-1] = true
	}
}

func (a *annotator) VisitContinue(n *ast.Continue) {
	a.flow = Jumps
	if !a.scope.InLoop() {
		a.report(errors.JumpOutsideLoop("continue", a.loc(n.Range)))
	}
}

// Imports are bound before the statement list is walked.
func (a *annotator) VisitImportAs(*ast.ImportAs)     {}
func (a *annotator) VisitFromImport(*ast.FromImport) {}

func (a *annotator) VisitExportAs(n *ast.ExportAs) {
	if a.scope != a.ann.fileScope {
		a.report(errors.NewSemanticError(errors.ErrorInvalidExport, "exports are only allowed at the top level of a file", a.loc(n.Range)).Build())
		return
	}
	a.exports = append(a.exports, n)
}

// resolveExports runs after the whole file is annotated so that an export
// may precede the declaration it names.
func (a *annotator) resolveExports() {
	for _, n := range a.exports {
		v := a.ann.fileScope.LookupLocal(n.Identifier.Name)
		if v == nil {
			a.report(errors.InvalidExport(n.Identifier.Name, a.loc(n.Identifier.Range)))
			continue
		}
		a.ann.References = append(a.ann.References, Reference{Range: n.Identifier.Range, Variable: v})
		name := n.Identifier.Name
		if n.Alias != nil {
			name = n.Alias.Name
			a.ann.References = append(a.ann.References, Reference{Range: n.Alias.Range, Variable: v})
		}
		if prev, dup := a.ann.ExportMap[name]; dup && prev != v {
			a.report(errors.DuplicateDeclaration(name, a.loc(n.Range), prev.Location))
			continue
		}
		a.ann.ExportMap[name] = v
	}
}

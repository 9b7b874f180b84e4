package semantic

import (
	"errors"
	"fmt"

	"yal/internal/ast"
	diag "yal/internal/errors"
	"yal/internal/types"
)

type classInfo struct {
	def      *ast.ClassDefinition
	scope    *Scope
	instance *types.Type
	static   *types.Type
	base     *classInfo
}

type interfaceInfo struct {
	def      *ast.InterfaceDefinition
	scope    *Scope
	instance *types.Type
}

// signature is the resolved header of a function literal. The method's
// return type is a placeholder until the body has been annotated when
// inferReturn is set.
type signature struct {
	method      *types.Method
	scope       *Scope
	inferReturn bool
	annotated   bool
}

// declareTypes registers every class, interface, enum and typedef so that
// headers and bodies may refer to them regardless of order.
func (a *annotator) declareTypes(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.ClassDefinition:
			info := &classInfo{def: n, scope: a.scope}
			info.instance = types.NewClass(n.Identifier.Name, nil, n.IsAbstract, func(self *types.Type) map[string][]*types.Method {
				return a.classMethods(info, self)
			})
			info.static = types.NewModule(n.Identifier.Name, info.instance, func(self *types.Type) map[string][]*types.Method {
				return a.constructor(info, self)
			})
			a.classes[n] = info
			a.classTypes[info.instance] = info
			v := a.newVariable(n.Identifier, info.static, false, nil)
			v.Comment = n.Comment
			a.declare(v, n.Identifier)

		case *ast.InterfaceDefinition:
			info := &interfaceInfo{def: n, scope: a.scope}
			info.instance = types.NewInterface(n.Identifier.Name, nil, func(self *types.Type) map[string][]*types.Method {
				return a.interfaceMethods(info, self)
			})
			a.interfaces[n] = info
			v := a.newVariable(n.Identifier, types.NewModule(n.Identifier.Name, info.instance, nil), false, nil)
			v.Comment = n.Comment
			a.declare(v, n.Identifier)

		case *ast.EnumDefinition:
			a.declareEnum(n)

		case *ast.Typedef:
			static := types.NewModule(n.Identifier.Name, nil, nil)
			a.typedefs[n] = static
			a.pending[static] = true
			v := a.newVariable(n.Identifier, static, false, nil)
			v.Comment = n.Comment
			a.declare(v, n.Identifier)
		}
	}
}

// Enum members are constants of the enum type. A member without an
// explicit value stands for its own name.
func (a *annotator) declareEnum(n *ast.EnumDefinition) {
	enum := types.NewEnum(n.Identifier.Name, nil)
	static := types.NewModule(n.Identifier.Name, enum, nil)
	for _, m := range n.Members {
		var value types.Value = types.StringValue(m.Identifier.Name)
		if m.Value != nil {
			info := a.solve(m.Value, nil)
			if info.Value == nil {
				a.report(diag.NewSemanticError(diag.ErrorTypeMismatch,
					fmt.Sprintf("enum member '%s' must have a constant value", m.Identifier.Name), a.loc(m.Value.NodeRange())).Build())
			} else {
				value = info.Value
			}
		}
		if _, dup := static.Member(m.Identifier.Name); dup {
			prev, _ := static.Member(m.Identifier.Name)
			a.report(diag.DuplicateDeclaration(m.Identifier.Name, a.loc(m.Identifier.Range), prev.Location))
			continue
		}
		member := a.newVariable(m.Identifier, enum, false, value)
		static.AddMember(member)
		a.ann.Variables = append(a.ann.Variables, member)
		a.ann.References = append(a.ann.References, Reference{Range: m.Identifier.Range, Variable: member, IsDeclaration: true})
	}
	v := a.newVariable(n.Identifier, static, false, nil)
	v.Comment = n.Comment
	a.declare(v, n.Identifier)
}

// knownModules lists the paths an importer can serve, when it can say.
func (a *annotator) knownModules() []string {
	if lister, ok := a.importer.(interface{ Names() []string }); ok {
		return lister.Names()
	}
	return nil
}

func (a *annotator) importModule(path []*ast.Identifier) *types.Type {
	name := ast.DottedPath(path)
	mod, err := a.importer.Import(name)
	if err == nil {
		return mod
	}
	at := ast.Join(path[0].Range, path[len(path)-1].Range)
	if errors.Is(err, types.ErrModuleNotFound) {
		a.report(diag.ModuleNotFound(name, a.loc(at), a.knownModules()))
	} else {
		a.report(diag.NewSemanticError(diag.ErrorModuleNotFound, err.Error(), a.loc(at)).Build())
	}
	return nil
}

func (a *annotator) declareImports(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.ImportAs:
			if len(n.Path) == 0 {
				continue
			}
			path := ast.DottedPath(n.Path)
			mod := a.importModule(n.Path)
			if mod == nil {
				mod = types.Any
			}
			id := n.Path[len(n.Path)-1]
			if n.Alias != nil {
				id = n.Alias
			}
			a.declare(a.newVariable(id, mod, false, nil), id)
			a.ann.ImportMap[id.Name] = path

		case *ast.FromImport:
			if len(n.Path) == 0 {
				continue
			}
			path := ast.DottedPath(n.Path)
			mod := a.importModule(n.Path)
			for _, name := range n.Names {
				local := name.Identifier
				if name.Alias != nil {
					local = name.Alias
				}
				a.ann.ImportMap[local.Name] = path
				if mod == nil {
					a.declare(a.newVariable(local, types.Any, false, nil), local)
					continue
				}
				v, ok := mod.Member(name.Identifier.Name)
				if !ok {
					a.report(diag.NotExported(path, name.Identifier.Name, a.loc(name.Identifier.Range), moduleMembers(mod)))
					a.declare(a.newVariable(local, types.Any, false, nil), local)
					continue
				}
				if prev := a.scope.LookupLocal(local.Name); prev != nil {
					a.report(diag.DuplicateDeclaration(local.Name, a.loc(local.Range), prev.Location))
				}
				a.scope.DefineAs(local.Name, v)
				a.ann.References = append(a.ann.References, Reference{Range: name.Identifier.Range, Variable: v})
				if name.Alias != nil {
					a.ann.References = append(a.ann.References, Reference{Range: name.Alias.Range, Variable: v})
				}
			}
		}
	}
}

func moduleMembers(mod *types.Type) []string {
	if d, ok := mod.Data().(*types.ModuleData); ok {
		return d.Order
	}
	return nil
}

// resolveHeaders completes class bases, interface bases and typedef
// targets, visiting each definition after the ones it names.
func (a *annotator) resolveHeaders(stmts []ast.Statement) {
	var defs []definition
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.ClassDefinition:
			defs = append(defs, definition{name: n.Identifier.Name, statement: n, deps: typeNames(n.Base)})
		case *ast.InterfaceDefinition:
			var deps []string
			for _, b := range n.Bases {
				deps = append(deps, typeNames(b)...)
			}
			defs = append(defs, definition{name: n.Identifier.Name, statement: n, deps: deps})
		case *ast.Typedef:
			defs = append(defs, definition{name: n.Identifier.Name, statement: n, deps: typeNames(n.Type)})
		}
	}

	for _, d := range sortDefinitions(defs) {
		switch n := d.statement.(type) {
		case *ast.ClassDefinition:
			if n.Base == nil {
				continue
			}
			info := a.classes[n]
			base, cyclic := a.resolveHeader(n.Base)
			switch {
			case cyclic:
				a.report(diag.CyclicType(n.Identifier.Name, a.loc(n.Base.NodeRange())))
			case base == types.Any:
			case base.Kind() != types.ClassKind:
				a.report(diag.InvalidBase(n.Identifier.Name, base.String(), a.loc(n.Base.NodeRange())))
			case a.inherits(base, info.instance):
				a.report(diag.InvalidBase(n.Identifier.Name, base.String(), a.loc(n.Base.NodeRange())))
			default:
				info.instance.SetBase(base)
				info.base = a.classTypes[base]
			}

		case *ast.InterfaceDefinition:
			info := a.interfaces[n]
			var bases []*types.Type
			for _, b := range n.Bases {
				t, cyclic := a.resolveHeader(b)
				if cyclic {
					a.report(diag.CyclicType(n.Identifier.Name, a.loc(b.NodeRange())))
					continue
				}
				if t == types.Any {
					continue
				}
				// A base that already extends this interface would close a cycle.
				if t.Kind() != types.InterfaceKind || t == info.instance || t.ExtendsInterface(info.instance) {
					a.report(diag.InvalidBase(n.Identifier.Name, t.String(), a.loc(b.NodeRange())))
					continue
				}
				bases = append(bases, t)
			}
			info.instance.SetBases(bases)

		case *ast.Typedef:
			static := a.typedefs[n]
			target, cyclic := a.resolveHeader(n.Type)
			if cyclic {
				a.report(diag.CyclicType(n.Identifier.Name, a.loc(n.Identifier.Range)))
				target = types.Any
			}
			static.SetTypeValue(target)
			delete(a.pending, static)
		}
	}
}

// resolveHeader resolves a type named in a definition header and reports
// whether it reached a typedef that is still being resolved.
func (a *annotator) resolveHeader(t ast.TypeExpression) (*types.Type, bool) {
	a.cyclic = false
	resolved := a.resolveType(t)
	return resolved, a.cyclic
}

// inherits reports whether class t is sub or one of its subclasses, which
// would make t extending sub a cycle.
func (a *annotator) inherits(t, sub *types.Type) bool {
	for cur := t; cur != nil; cur = cur.Base() {
		if cur == sub {
			return true
		}
	}
	return false
}

// declareFunctions binds each named function so that calls may precede the
// declaration. Bodies are annotated when the walk reaches them.
func (a *annotator) declareFunctions(stmts []ast.Statement) {
	for _, stmt := range stmts {
		d, ok := stmt.(*ast.Declaration)
		if !ok {
			continue
		}
		fn, ok := d.Function()
		if !ok {
			continue
		}
		v := a.functionVariable(d, fn)
		a.hoisted[d] = v
		a.declare(v, d.Identifier)
	}
}

func (a *annotator) functionVariable(d *ast.Declaration, fn *ast.FunctionDisplay) *types.Variable {
	sig := a.signature(fn, "__call__", nil)
	t := types.NewFunction(d.Identifier.Name, func(self *types.Type) map[string][]*types.Method {
		sig.method.Owner = self
		return map[string][]*types.Method{"__call__": {sig.method}}
	})
	v := a.newVariable(d.Identifier, t, false, types.FunctionValue{Name: d.Identifier.Name})
	v.Comment = d.Comment
	return v
}

// declareStatics adds static members to each class's static side before
// anything can look at its method table.
func (a *annotator) declareStatics(stmts []ast.Statement) {
	for _, stmt := range stmts {
		n, ok := stmt.(*ast.ClassDefinition)
		if !ok {
			continue
		}
		info := a.classes[n]
		a.withScope(info.scope, func() {
			for _, d := range n.Members {
				if !d.IsStatic {
					continue
				}
				var v *types.Variable
				if fn, ok := d.Function(); ok {
					v = a.functionVariable(d, fn)
				} else {
					v = a.field(d)
				}
				if _, dup := info.static.Member(d.Identifier.Name); dup {
					prev, _ := info.static.Member(d.Identifier.Name)
					a.report(diag.DuplicateDeclaration(d.Identifier.Name, a.loc(d.Identifier.Range), prev.Location))
					continue
				}
				info.static.AddMember(v)
				a.ann.Variables = append(a.ann.Variables, v)
				a.ann.References = append(a.ann.References, Reference{Range: d.Identifier.Range, Variable: v, IsDeclaration: true})
			}
		})
	}
}

// signature resolves a function literal's header. Parameters without an
// annotation take their type from lambda, the expected function type, then
// from their default value, and are Any otherwise.
func (a *annotator) signature(fn *ast.FunctionDisplay, name string, lambda *types.LambdaData) *signature {
	if sig, ok := a.signatures[fn]; ok {
		return sig
	}
	s := NewScope(a.scope)
	sig := &signature{scope: s, method: &types.Method{Identifier: name}}
	a.signatures[fn] = sig

	a.withScope(s, func() {
		for _, tp := range fn.TypeParameters {
			var bound *types.Type
			if tp.Bound != nil {
				bound = a.resolveType(tp.Bound)
			}
			param := types.NewTypeParameter(tp.Identifier.Name, bound)
			sig.method.TypeParameters = append(sig.method.TypeParameters, param)
			a.declare(a.newVariable(tp.Identifier, types.NewModule(tp.Identifier.Name, param, nil), false, nil), tp.Identifier)
		}

		for i, p := range fn.Parameters {
			param := types.Parameter{Identifier: p.Identifier.Name, Type: types.Any, HasDefault: p.DefaultValue != nil}
			switch {
			case p.Type != nil:
				param.Type = a.resolveType(p.Type)
			case lambda != nil && i < len(lambda.Parameters):
				param.Type = lambda.Parameters[i]
			case p.DefaultValue != nil:
				param.Type = widen(a.solve(p.DefaultValue, nil).Type)
			}
			if p.DefaultValue != nil {
				info := a.solve(p.DefaultValue, param.Type)
				if a.checkAssignable(info, param.Type, p.DefaultValue.NodeRange()) {
					param.DefaultValue = info.Value
				}
			}
			sig.method.Parameters = append(sig.method.Parameters, param)
		}

		switch {
		case fn.ReturnType != nil:
			sig.method.ReturnType = a.resolveType(fn.ReturnType)
		case fn.Body == nil:
			sig.method.ReturnType = types.Null
		default:
			sig.method.ReturnType = types.Any
			sig.inferReturn = true
		}
		sig.method.IsControlFlow = sig.method.ReturnType == types.Never
	})
	return sig
}

// functionBody annotates fn's body once. With inference on, the method's
// return type becomes the common type of what the body returns.
func (a *annotator) functionBody(fn *ast.FunctionDisplay, sig *signature, this *types.Type) {
	if fn.Body == nil || sig.annotated {
		return
	}
	sig.annotated = true
	m := sig.method

	ctx := &functionContext{name: "<anonymous>", thisType: this}
	if fn.Identifier != nil {
		ctx.name = fn.Identifier.Name
	}
	if !sig.inferReturn {
		ctx.declared = m.ReturnType
		ctx.expected = m.ReturnType
	} else if m.ReturnType != types.Any {
		// Seeded by an expected function type.
		ctx.expected = m.ReturnType
	}

	s := newFunctionScope(sig.scope, ctx)
	savedBreaks := a.breaks
	a.breaks = nil
	var flow Flow
	a.withScope(s, func() {
		if this != nil {
			a.scope.Define(types.NewVariable("this", this, false, nil, a.loc(fn.Range)))
		}
		for i, p := range fn.Parameters {
			a.declare(a.newVariable(p.Identifier, m.Parameters[i].Type, true, nil), p.Identifier)
		}
		flow = a.block(fn.Body, a.scope)
	})
	a.breaks = savedBreaks

	if sig.inferReturn {
		returns := make([]*types.Type, 0, len(ctx.returns)+1)
		for _, r := range ctx.returns {
			returns = append(returns, widen(r))
		}
		if flow != Jumps {
			returns = append(returns, types.Null)
		}
		m.ReturnType = types.CommonTypeOf(returns...)
		m.IsControlFlow = m.ReturnType == types.Never
		return
	}
	if flow != Jumps && !types.Null.IsAssignableTo(m.ReturnType) {
		at := fn.Range
		if fn.Identifier != nil {
			at = fn.Identifier.Range
		}
		a.report(diag.MissingReturn(ctx.name, m.ReturnType.String(), a.loc(at)))
	}
}

// field resolves a class field. Its type is the annotation, else the
// widened type of its initializer.
func (a *annotator) field(d *ast.Declaration) *types.Variable {
	if v, ok := a.fields[d]; ok {
		return v
	}
	t := types.Any
	if d.Type != nil {
		t = a.resolveType(d.Type)
	}
	var value types.Value
	if d.Value != nil {
		var want *types.Type
		if d.Type != nil {
			want = t
		}
		info := a.solve(d.Value, want)
		switch {
		case d.Type == nil:
			t = widen(info.Type)
		case a.checkAssignable(info, t, d.Value.NodeRange()):
			value = info.Value
		}
	}
	v := a.newVariable(d.Identifier, t, d.IsMutable, value)
	v.Comment = d.Comment
	a.fields[d] = v
	return v
}

// classMethods builds an instance method table: inherited methods first,
// then getters and setters for fields and the class's own methods.
func (a *annotator) classMethods(info *classInfo, self *types.Type) map[string][]*types.Method {
	table := map[string][]*types.Method{}
	if base := self.Base(); base != nil {
		for name, methods := range base.Methods() {
			table[name] = methods
		}
	}
	a.withScope(info.scope, func() {
		own := map[string]bool{}
		for _, d := range info.def.Members {
			if d.IsStatic {
				continue
			}
			name := d.Identifier.Name
			if fn, ok := d.Function(); ok {
				sig := a.signature(fn, name, nil)
				if sig.method.SourceVariable == nil {
					sig.method.SourceVariable = a.newVariable(d.Identifier, types.Lambda(parameterTypes(sig.method), sig.method.ReturnType), false, nil)
					sig.method.SourceVariable.Comment = d.Comment
				}
				sig.method.Owner = self
				sig.method.IsAbstract = fn.Body == nil
				if !own[name] {
					table[name] = nil
					own[name] = true
				}
				table[name] = append(table[name], sig.method)
				continue
			}
			v := a.field(d)
			getter := "__get_" + name
			table[getter] = []*types.Method{{Identifier: getter, ReturnType: v.Type, SourceVariable: v, Owner: self}}
			setter := "__set_" + name
			if d.IsMutable {
				table[setter] = []*types.Method{{
					Identifier:     setter,
					Parameters:     []types.Parameter{{Identifier: "value", Type: v.Type}},
					ReturnType:     types.Null,
					SourceVariable: v,
					Owner:          self,
				}}
			} else {
				delete(table, setter)
			}
		}
	})
	return table
}

func parameterTypes(m *types.Method) []*types.Type {
	out := make([]*types.Type, len(m.Parameters))
	for i, p := range m.Parameters {
		out[i] = p.Type
	}
	return out
}

// constructor gives a class's static side its __call__: one parameter per
// instance field, superclass fields first.
func (a *annotator) constructor(info *classInfo, self *types.Type) map[string][]*types.Method {
	return map[string][]*types.Method{"__call__": {{
		Identifier: "__call__",
		Parameters: a.constructorParameters(info),
		ReturnType: info.instance,
		Owner:      self,
	}}}
}

func (a *annotator) constructorParameters(info *classInfo) []types.Parameter {
	var params []types.Parameter
	if info.base != nil {
		params = append(params, a.constructorParameters(info.base)...)
	}
	a.withScope(info.scope, func() {
		for _, d := range info.def.Members {
			if d.IsStatic {
				continue
			}
			if _, ok := d.Function(); ok {
				continue
			}
			v := a.field(d)
			param := types.Parameter{Identifier: v.Identifier, Type: v.Type, HasDefault: d.Value != nil}
			if d.Value != nil {
				// Mutable fields drop their value; the default keeps it.
				if info := a.solve(d.Value, v.Type); info.Type.IsAssignableTo(v.Type) {
					param.DefaultValue = info.Value
				}
			}
			params = append(params, param)
		}
	})
	return params
}

// interfaceMethods merges the bases' tables with the interface's own
// members. A `var` member requires a getter and a setter, `const` only a
// getter.
func (a *annotator) interfaceMethods(info *interfaceInfo, self *types.Type) map[string][]*types.Method {
	table := map[string][]*types.Method{}
	if d, ok := self.Data().(*types.InterfaceData); ok {
		for _, base := range d.Bases {
			for name, methods := range base.Methods() {
				table[name] = methods
			}
		}
	}
	a.withScope(info.scope, func() {
		for _, d := range info.def.Members {
			name := d.Identifier.Name
			if fn, ok := d.Function(); ok {
				sig := a.signature(fn, name, nil)
				sig.method.Owner = self
				if sig.method.SourceVariable == nil {
					sig.method.SourceVariable = a.newVariable(d.Identifier, types.Lambda(parameterTypes(sig.method), sig.method.ReturnType), false, nil)
					sig.method.SourceVariable.Comment = d.Comment
				}
				table[name] = []*types.Method{sig.method}
				continue
			}
			v := a.field(d)
			getter := "__get_" + name
			table[getter] = []*types.Method{{Identifier: getter, ReturnType: v.Type, SourceVariable: v, Owner: self}}
			if d.IsMutable {
				setter := "__set_" + name
				table[setter] = []*types.Method{{
					Identifier:     setter,
					Parameters:     []types.Parameter{{Identifier: "value", Type: v.Type}},
					ReturnType:     types.Null,
					SourceVariable: v,
					Owner:          self,
				}}
			}
		}
	})
	return table
}

func (a *annotator) VisitClassDefinition(n *ast.ClassDefinition) {
	info := a.classes[n]
	info.instance.Methods()
	info.static.Methods()
	if !n.IsAbstract {
		a.checkAbstractMembers(n, info)
	}
	for _, d := range n.Members {
		if d.IsStatic {
			if v, ok := info.static.Member(d.Identifier.Name); ok && v.Type.Kind() == types.FunctionKind {
				if fn, ok := d.Function(); ok {
					a.functionBody(fn, a.signatures[fn], nil)
				}
			}
			continue
		}
		fn, ok := d.Function()
		if !ok {
			if v := a.fields[d]; v != nil {
				a.ann.Variables = append(a.ann.Variables, v)
				a.ann.References = append(a.ann.References, Reference{Range: d.Identifier.Range, Variable: v, IsDeclaration: true})
			}
			continue
		}
		sig := a.signatures[fn]
		if sig == nil {
			continue
		}
		if v := sig.method.SourceVariable; v != nil {
			a.ann.Variables = append(a.ann.Variables, v)
			a.ann.References = append(a.ann.References, Reference{Range: d.Identifier.Range, Variable: v, IsDeclaration: true})
		}
		a.functionBody(fn, sig, info.instance)
		if sig.inferReturn {
			sig.method.SourceVariable.Type = types.Lambda(parameterTypes(sig.method), sig.method.ReturnType)
		}
	}
}

// checkAbstractMembers reports the bodiless methods a concrete class declares
// or inherits without overriding.
func (a *annotator) checkAbstractMembers(n *ast.ClassDefinition, info *classInfo) {
	for _, d := range n.Members {
		if fn, ok := d.Function(); ok && fn.Body == nil {
			a.report(diag.MissingBody(d.Identifier.Name, "", a.loc(d.Identifier.Range)))
		}
	}
	for _, name := range info.instance.MethodNames() {
		for _, m := range info.instance.GetMethods(name) {
			if m.IsAbstract && m.Owner != info.instance {
				a.report(diag.MissingBody(name, m.Owner.String(), a.loc(n.Identifier.Range)))
			}
		}
	}
}

func (a *annotator) VisitInterfaceDefinition(n *ast.InterfaceDefinition) {
	info := a.interfaces[n]
	info.instance.Methods()
	for _, d := range n.Members {
		var v *types.Variable
		if fn, ok := d.Function(); ok {
			if sig := a.signatures[fn]; sig != nil {
				v = sig.method.SourceVariable
			}
		} else {
			v = a.fields[d]
		}
		if v != nil {
			a.ann.Variables = append(a.ann.Variables, v)
			a.ann.References = append(a.ann.References, Reference{Range: d.Identifier.Range, Variable: v, IsDeclaration: true})
		}
	}
}

func (a *annotator) VisitEnumDefinition(*ast.EnumDefinition) {}

func (a *annotator) VisitTypedef(*ast.Typedef) {}

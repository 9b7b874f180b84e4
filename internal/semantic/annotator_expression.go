package semantic

import (
	"sort"
	"strings"

	"yal/internal/ast"
	"yal/internal/errors"
	"yal/internal/types"
)

// solve annotates e against an optional expected type. Each expression is
// solved once; diagnostics and references come from that first pass.
func (a *annotator) solve(e ast.Expression, expected *types.Type) *ExpressionInfo {
	if info, ok := a.ann.expressions[e]; ok {
		return info
	}
	savedExpected, savedResult := a.expected, a.result
	a.expected, a.result = expected, nil
	e.Accept(a)
	info := a.result
	if info == nil {
		info = failed()
	}
	a.ann.expressions[e] = info
	a.expected, a.result = savedExpected, savedResult
	return info
}

func failed() *ExpressionInfo {
	return &ExpressionInfo{Type: types.Any, Failed: true}
}

// checkAssignable reports a mismatch at r unless the solved expression fits
// target. Failed expressions are not reported twice.
func (a *annotator) checkAssignable(info *ExpressionInfo, target *types.Type, r ast.Range) bool {
	if info.Failed {
		return false
	}
	actual := info.Type
	if actual.IsAssignableTo(target) {
		return true
	}
	if iface := target.NonNull(); iface.Kind() == types.InterfaceKind {
		if member := missingMember(actual.NonNull(), iface); member != "" && actual.Kind() != types.NullKind {
			a.report(errors.MissingInterfaceMember(actual.String(), iface.String(), member, a.loc(r)))
			return false
		}
	}
	a.report(errors.TypeMismatch(target.String(), actual.String(), a.loc(r)))
	return false
}

// missingMember names the first interface method t has no method for.
func missingMember(t, iface *types.Type) string {
	names := iface.MethodNames()
	for _, name := range names {
		if name == "__eq__" || name == "__ne__" {
			continue
		}
		if len(t.GetMethods(name)) == 0 {
			return strings.TrimPrefix(name, "__get_")
		}
	}
	return ""
}

// widen forgets literal precision so that a mutable variable can take any
// value of the same basic type.
func widen(t *types.Type) *types.Type {
	if d, ok := t.Data().(*types.UnionData); ok {
		members := make([]*types.Type, len(d.Members))
		for i, m := range d.Members {
			members[i] = widen(m)
		}
		return types.CommonTypeOf(members...)
	}
	if t.IsNullable() {
		return widen(t.NonNull()).Nullable()
	}
	return t.Widen()
}

func literal(v types.Value) *ExpressionInfo {
	return &ExpressionInfo{Type: types.ValueOf(v), Value: v}
}

func (a *annotator) VisitNullLiteral(*ast.NullLiteral) {
	a.result = &ExpressionInfo{Type: types.Null, Value: types.NullValue{}}
}

func (a *annotator) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	a.result = literal(types.BoolValue(n.Value))
}

func (a *annotator) VisitNumberLiteral(n *ast.NumberLiteral) {
	a.result = literal(types.NumberValue(n.Value))
}

func (a *annotator) VisitStringLiteral(n *ast.StringLiteral) {
	a.result = literal(types.StringValue(n.Value))
}

func (a *annotator) VisitIdentifier(n *ast.Identifier) {
	v := a.scope.Lookup(n.Name)
	if v == nil {
		if n.Name == "this" {
			a.report(errors.NewSemanticError(errors.ErrorThisOutsideClass, "'this' can only be used inside a method", a.loc(n.Range)).Build())
		} else {
			a.report(errors.UndefinedVariable(n.Name, a.loc(n.Range), a.scope.Names()))
		}
		a.result = failed()
		return
	}
	if n.Name != "this" {
		a.reference(n.Range, v)
	}
	a.result = &ExpressionInfo{Type: v.Type, Value: v.Value}
}

func (a *annotator) VisitAssignment(n *ast.Assignment) {
	v := a.scope.Lookup(n.Target.Name)
	if v == nil {
		a.report(errors.UndefinedVariable(n.Target.Name, a.loc(n.Target.Range), a.scope.Names()))
		a.result = a.solve(n.Value, nil)
		return
	}
	original := a.scope.original(v)
	a.reference(n.Target.Range, original)
	if !original.IsMutable {
		a.report(errors.AssignToConstant(n.Target.Name, a.loc(n.Target.Range)))
	}
	info := a.solve(n.Value, original.Type)
	a.checkAssignable(info, original.Type, n.Value.NodeRange())
	if v != original && !info.Type.IsAssignableTo(v.Type) {
		// The assignment undoes a null check.
		a.scope.DefineAs(n.Target.Name, original)
	}
	a.result = info
}

// expectedItems extracts what the items of a list display should be from
// the type it is expected to have.
func expectedItems(expected *types.Type) (*types.Type, *types.TupleData) {
	if expected == nil {
		return nil, nil
	}
	switch d := expected.NonNull().Data().(type) {
	case *types.ListData:
		return d.Item, nil
	case *types.IterableData:
		return d.Item, nil
	case *types.TupleData:
		return nil, d
	case *types.UnionData:
		for _, m := range d.Members {
			if item, tuple := expectedItems(m); item != nil || tuple != nil {
				return item, tuple
			}
		}
	}
	return nil, nil
}

func listValue(infos []*ExpressionInfo) types.Value {
	values := make(types.ListValue, len(infos))
	for i, info := range infos {
		if info.Value == nil {
			return nil
		}
		values[i] = info.Value
	}
	return values
}

func (a *annotator) VisitListDisplay(n *ast.ListDisplay) {
	item, tuple := expectedItems(a.expected)
	infos := make([]*ExpressionInfo, len(n.Items))

	if tuple != nil && len(tuple.Items) == len(n.Items) {
		items := make([]*types.Type, len(n.Items))
		for i, e := range n.Items {
			infos[i] = a.solve(e, tuple.Items[i])
			items[i] = infos[i].Type
		}
		a.result = &ExpressionInfo{Type: types.Tuple(items...), Value: listValue(infos)}
		return
	}

	for i, e := range n.Items {
		infos[i] = a.solve(e, item)
	}
	if item != nil {
		for i, info := range infos {
			a.checkAssignable(info, item, n.Items[i].NodeRange())
		}
		a.result = &ExpressionInfo{Type: item.List(), Value: listValue(infos)}
		return
	}
	if len(infos) == 0 {
		a.result = &ExpressionInfo{Type: types.Any.List(), Value: types.ListValue{}}
		return
	}
	items := make([]*types.Type, len(infos))
	for i, info := range infos {
		items[i] = widen(info.Type)
	}
	a.result = &ExpressionInfo{Type: types.CommonTypeOf(items...).List(), Value: listValue(infos)}
}

// A record display builds an anonymous class with one mutable field per
// entry. Entries are solved against the expected type's attributes.
func (a *annotator) VisitRecordDisplay(n *ast.RecordDisplay) {
	var expected *types.Type
	if a.expected != nil {
		expected = a.expected.NonNull()
	}
	fields := make([]*types.Variable, 0, len(n.Entries))
	seen := map[string]*types.Variable{}
	for _, entry := range n.Entries {
		var want *types.Type
		if expected != nil && expected != types.Any {
			if getters := expected.GetMethods("__get_" + entry.Key.Name); len(getters) > 0 {
				want = getters[0].ReturnType
			}
		}
		info := a.solve(entry.Value, want)
		t := widen(info.Type)
		if want != nil && info.Type.IsAssignableTo(want) {
			t = want
		}
		if prev, dup := seen[entry.Key.Name]; dup {
			a.report(errors.DuplicateDeclaration(entry.Key.Name, a.loc(entry.Key.Range), prev.Location))
			continue
		}
		v := a.newVariable(entry.Key, t, true, nil)
		seen[entry.Key.Name] = v
		fields = append(fields, v)
		a.ann.References = append(a.ann.References, Reference{Range: entry.Key.Range, Variable: v, IsDeclaration: true})
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Identifier + ": " + f.Type.String()
	}
	record := types.NewClass("{"+strings.Join(parts, ", ")+"}", nil, false, func(self *types.Type) map[string][]*types.Method {
		table := map[string][]*types.Method{}
		for _, f := range fields {
			table["__get_"+f.Identifier] = []*types.Method{{Identifier: "__get_" + f.Identifier, ReturnType: f.Type, SourceVariable: f, Owner: self}}
			table["__set_"+f.Identifier] = []*types.Method{{
				Identifier:     "__set_" + f.Identifier,
				Parameters:     []types.Parameter{{Identifier: "value", Type: f.Type}},
				ReturnType:     types.Null,
				SourceVariable: f,
				Owner:          self,
			}}
		}
		return table
	})
	a.result = &ExpressionInfo{Type: record}
}

func (a *annotator) VisitFunctionDisplay(n *ast.FunctionDisplay) {
	var lambda *types.LambdaData
	if a.expected != nil {
		if d, ok := a.expected.NonNull().Data().(*types.LambdaData); ok && len(d.Parameters) == len(n.Parameters) {
			lambda = d
		}
	}
	sig := a.signature(n, "__call__", lambda)
	if lambda != nil && sig.inferReturn && lambda.Return != types.Any {
		sig.method.ReturnType = lambda.Return
	}
	a.functionBody(n, sig, a.thisType())

	name := ""
	if n.Identifier != nil {
		name = n.Identifier.Name
	}
	if len(sig.method.TypeParameters) > 0 || n.Identifier != nil {
		t := types.NewFunction(name, func(self *types.Type) map[string][]*types.Method {
			sig.method.Owner = self
			return map[string][]*types.Method{"__call__": {sig.method}}
		})
		a.result = &ExpressionInfo{Type: t, Value: types.FunctionValue{Name: name}}
		return
	}
	a.result = &ExpressionInfo{
		Type:  types.Lambda(parameterTypes(sig.method), sig.method.ReturnType),
		Value: types.FunctionValue{},
	}
}

// thisType is the class of the enclosing method, so that lambdas inside
// methods keep seeing `this`.
func (a *annotator) thisType() *types.Type {
	if a.scope.function != nil {
		return a.scope.function.thisType
	}
	return nil
}

func (a *annotator) VisitLogicalNot(n *ast.LogicalNot) {
	info := a.solve(n.Operand, nil)
	result := &ExpressionInfo{Type: types.Bool}
	if info.Value != nil {
		result.Value = types.BoolValue(!types.Truthy(info.Value))
		result.Type = types.ValueOf(result.Value)
	}
	a.result = result
}

func (a *annotator) VisitLogicalAnd(n *ast.LogicalAnd) {
	left := a.solve(n.Left, nil)
	whenTrue, _ := a.narrowing(n.Left)
	s := NewScope(a.scope)
	a.applyNarrowing(s, whenTrue)
	var right *ExpressionInfo
	a.withScope(s, func() { right = a.solve(n.Right, nil) })
	a.result = shortCircuit(left, right, false)
}

func (a *annotator) VisitLogicalOr(n *ast.LogicalOr) {
	left := a.solve(n.Left, nil)
	_, whenFalse := a.narrowing(n.Left)
	s := NewScope(a.scope)
	a.applyNarrowing(s, whenFalse)
	var right *ExpressionInfo
	a.withScope(s, func() { right = a.solve(n.Right, nil) })
	a.result = shortCircuit(left, right, true)
}

// shortCircuit is the result of `and` (or when isOr): the left operand if
// it decides the outcome, otherwise the right.
func shortCircuit(left, right *ExpressionInfo, isOr bool) *ExpressionInfo {
	if left.Value != nil {
		if types.Truthy(left.Value) == isOr {
			return left
		}
		return right
	}
	return &ExpressionInfo{Type: types.CommonTypeOf(widen(left.Type), widen(right.Type))}
}

func (a *annotator) VisitConditional(n *ast.Conditional) {
	cond := a.solve(n.Condition, nil)
	whenTrue, whenFalse := a.narrowing(n.Condition)

	thenScope := NewScope(a.scope)
	a.applyNarrowing(thenScope, whenTrue)
	var then, otherwise *ExpressionInfo
	a.withScope(thenScope, func() { then = a.solve(n.Then, a.expected) })

	elseScope := NewScope(a.scope)
	a.applyNarrowing(elseScope, whenFalse)
	a.withScope(elseScope, func() { otherwise = a.solve(n.Else, a.expected) })

	if cond.Value != nil {
		if types.Truthy(cond.Value) {
			a.result = then
		} else {
			a.result = otherwise
		}
		return
	}
	a.result = &ExpressionInfo{Type: then.Type.GetCommonType(otherwise.Type)}
}

func (a *annotator) VisitTypeAssertion(n *ast.TypeAssertion) {
	info := a.solve(n.Expression, nil)
	t := a.resolveType(n.Type)
	if !info.Type.IsAssignableTo(t) && !t.IsAssignableTo(info.Type) {
		a.report(errors.TypeMismatch(t.String(), info.Type.String(), a.loc(n.Expression.NodeRange())))
	}
	result := &ExpressionInfo{Type: t}
	if info.Value != nil && info.Type.IsAssignableTo(t) {
		result.Value = info.Value
	}
	a.result = result
}

func (a *annotator) VisitNativeExpression(*ast.NativeExpression) {
	a.result = &ExpressionInfo{Type: types.Any}
}

func (a *annotator) VisitNativePureFunction(n *ast.NativePureFunction) {
	params := make([]*types.Type, len(n.Parameters))
	for i, p := range n.Parameters {
		params[i] = types.Any
		if p.Type != nil {
			params[i] = a.resolveType(p.Type)
		}
	}
	ret := types.Any
	if n.ReturnType != nil {
		ret = a.resolveType(n.ReturnType)
	}
	a.result = &ExpressionInfo{Type: types.Lambda(params, ret), Value: types.FunctionValue{}}
}

// narrowing finds the variables a condition proves non-null when it holds
// and when it does not.
func (a *annotator) narrowing(cond ast.Expression) (whenTrue, whenFalse []string) {
	switch n := cond.(type) {
	case *ast.Identifier:
		if v := a.scope.Lookup(n.Name); v != nil && v.Type.IsNullable() {
			return []string{n.Name}, nil
		}
	case *ast.MethodCall:
		if len(n.Arguments) != 1 || (n.Identifier.Name != "__eq__" && n.Identifier.Name != "__ne__") {
			return nil, nil
		}
		var id *ast.Identifier
		switch {
		case isNull(n.Arguments[0]):
			id, _ = n.Owner.(*ast.Identifier)
		case isNull(n.Owner):
			id, _ = n.Arguments[0].(*ast.Identifier)
		}
		if id == nil {
			return nil, nil
		}
		if v := a.scope.Lookup(id.Name); v == nil || !v.Type.IsNullable() {
			return nil, nil
		}
		if n.Identifier.Name == "__ne__" {
			return []string{id.Name}, nil
		}
		return nil, []string{id.Name}
	case *ast.LogicalNot:
		t, f := a.narrowing(n.Operand)
		return f, t
	case *ast.LogicalAnd:
		lt, _ := a.narrowing(n.Left)
		rt, _ := a.narrowing(n.Right)
		return append(lt, rt...), nil
	case *ast.LogicalOr:
		_, lf := a.narrowing(n.Left)
		_, rf := a.narrowing(n.Right)
		return nil, append(lf, rf...)
	}
	return nil, nil
}

func isNull(e ast.Expression) bool {
	_, ok := e.(*ast.NullLiteral)
	return ok
}

func (a *annotator) applyNarrowing(s *Scope, names []string) {
	sort.Strings(names)
	for _, name := range names {
		if v := s.Lookup(name); v != nil && v.Type.IsNullable() {
			s.narrow(name, v, v.Type.NonNull())
		}
	}
}

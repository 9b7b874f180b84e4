package semantic

import (
	"math"
	"strings"

	"yal/internal/ast"
	"yal/internal/errors"
	"yal/internal/types"
)

func isMemberName(name string) bool {
	return !strings.HasPrefix(name, "__") || strings.HasPrefix(name, "__get_") || strings.HasPrefix(name, "__set_")
}

// VisitMethodCall resolves every operator, attribute access, index and call,
// since the parser lowers all of them to method calls.
func (a *annotator) VisitMethodCall(n *ast.MethodCall) {
	owner := a.solve(n.Owner, nil)
	name := n.Identifier.Name
	recv := owner.Type

	switch recv {
	case types.Any:
		for _, arg := range n.Arguments {
			a.solve(arg, nil)
		}
		a.result = &ExpressionInfo{Type: types.Any, Failed: owner.Failed}
		return
	case types.Never:
		for _, arg := range n.Arguments {
			a.solve(arg, nil)
		}
		a.result = &ExpressionInfo{Type: types.Never}
		return
	}

	if recv.IsNullable() && name != "__eq__" && name != "__ne__" {
		a.report(errors.NullableReceiver(recv.String(), name, a.loc(n.Identifier.Range)))
		recv = recv.NonNull()
	}

	if isMemberName(name) {
		t := recv
		a.ann.CompletionPoints = append(a.ann.CompletionPoints, CompletionPoint{
			Range:    n.Identifier.Range,
			complete: func() []Completion { return memberCompletions(t) },
		})
	}

	candidates := recv.GetMethodsHandlingArgumentCount(name, len(n.Arguments))
	if len(candidates) == 0 {
		for _, arg := range n.Arguments {
			a.solve(arg, nil)
		}
		overloads := recv.GetMethods(name)
		switch {
		case len(overloads) > 0:
			expected := make([]string, len(overloads))
			for i, m := range overloads {
				expected[i] = m.Signature()
			}
			a.report(errors.InvalidArguments(callName(n), expected, len(n.Arguments), a.loc(n.Range)))
		case name == "__call__":
			a.report(errors.NotCallable(recv.String(), a.loc(n.Owner.NodeRange())))
		default:
			a.report(errors.UndefinedMember(recv.String(), name, a.loc(n.Identifier.Range), recv.MethodNames()))
		}
		a.result = failed()
		return
	}

	m := candidates[0]
	inst, args := a.bindCall(m, n.Arguments)

	if name == "__call__" {
		if tv := recv.TypeValue(); tv != nil && tv.Kind() == types.ClassKind && tv.IsAbstract() {
			a.report(errors.AbstractInstantiation(tv.String(), a.loc(n.Range)))
		}
	}
	if m.SourceVariable != nil {
		a.reference(n.Identifier.Range, m.SourceVariable)
	}

	result := &ExpressionInfo{Type: inst.ReturnType}
	switch {
	case inst.InlineValue != nil:
		result.Value = inst.InlineValue
	case owner.Value != nil:
		if v, ok := fold(name, owner.Value, args); ok {
			result.Value = v
		}
	}
	if result.Value != nil {
		if vt := types.ValueOf(result.Value); vt != nil && vt.Widen() == widen(inst.ReturnType) {
			result.Type = vt
		}
	}
	if item := tupleItem(recv, name, args); item != nil {
		result.Type = item
	}
	a.result = result

	if name == "__call__" || !strings.HasPrefix(name, "__") {
		ranges := make([]ast.Range, len(n.Arguments))
		for i, arg := range n.Arguments {
			ranges[i] = arg.NodeRange()
		}
		a.ann.CallInstances = append(a.ann.CallInstances, CallInstance{Range: n.Range, Method: m, Arguments: ranges})
	}
	if name == "__call__" && owner.Type == printFunction() && len(args) == 1 && args[0].Value != nil {
		a.ann.PrintInstances = append(a.ann.PrintInstances, PrintInstance{Range: n.Range, Value: types.Repr(args[0].Value)})
	}
	if inst.IsControlFlow {
		a.jumps[n] = true
	}
}

// callName is how a call site is named in diagnostics.
func callName(n *ast.MethodCall) string {
	if n.Identifier.Name == "__call__" {
		if id, ok := n.Owner.(*ast.Identifier); ok {
			return id.Name
		}
		return "function"
	}
	return errors.DisplayMember(n.Identifier.Name)
}

// bindCall solves the arguments of a call to m. Arguments are solved left to
// right against the parameter types with what has been inferred so far, so
// that a lambda passed after a list sees the list's item type.
func (a *annotator) bindCall(m *types.Method, arguments []ast.Expression) (*types.Method, []*ExpressionInfo) {
	b := types.Bindings{}.Open(m.TypeParameters...)
	infos := make([]*ExpressionInfo, len(arguments))
	for i, arg := range arguments {
		param := m.Parameters[i].Type
		infos[i] = a.solve(arg, b.Expected(param))
		b.Bind(param, infos[i].Type)
	}
	inst := b.Instantiate(m)
	for i, arg := range arguments {
		a.checkAssignable(infos[i], inst.Parameters[i].Type, arg.NodeRange())
	}
	return inst, infos
}

// tupleItem is the precise item type of a tuple indexed by a constant.
func tupleItem(recv *types.Type, name string, args []*ExpressionInfo) *types.Type {
	d, ok := recv.Data().(*types.TupleData)
	if !ok || name != "__getitem__" || len(args) != 1 {
		return nil
	}
	n, ok := args[0].Value.(types.NumberValue)
	if !ok || float64(n) != math.Trunc(float64(n)) {
		return nil
	}
	i := int(n)
	if i < 0 {
		i += len(d.Items)
	}
	if i < 0 || i >= len(d.Items) {
		return nil
	}
	return d.Items[i]
}

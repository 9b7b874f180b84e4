package semantic

import (
	"fmt"

	"yal/internal/ast"
	"yal/internal/builtins"
	"yal/internal/errors"
	"yal/internal/types"
)

// resolveType returns the type a type expression denotes. Unresolvable
// parts are reported once and become Any.
func (a *annotator) resolveType(t ast.TypeExpression) *types.Type {
	if t == nil {
		return types.Any
	}
	if resolved, ok := a.ann.typeExprs[t]; ok {
		return resolved
	}
	saved := a.typeResult
	a.typeResult = nil
	t.Accept(a)
	resolved := a.typeResult
	if resolved == nil {
		resolved = types.Any
	}
	a.typeResult = saved
	a.ann.typeExprs[t] = resolved
	return resolved
}

func (a *annotator) typeNamesInScope() []string {
	var names []string
	for name, v := range a.scope.Visible() {
		if v.Type.TypeValue() != nil {
			names = append(names, name)
		}
	}
	return names
}

func (a *annotator) VisitTypename(n *ast.Typename) {
	for _, arg := range n.Arguments {
		a.resolveType(arg)
	}
	name := n.Identifier.Name

	var v *types.Variable
	if n.Qualifier != nil {
		owner := a.scope.Lookup(n.Qualifier.Name)
		if owner == nil {
			a.report(errors.UndefinedVariable(n.Qualifier.Name, a.loc(n.Qualifier.Range), a.scope.Names()))
			return
		}
		a.reference(n.Qualifier.Range, owner)
		if owner.Type == types.Any {
			return
		}
		member, ok := owner.Type.Member(name)
		if !ok {
			a.report(errors.UndefinedMember(owner.Type.String(), "__get_"+name, a.loc(n.Identifier.Range), owner.Type.MethodNames()))
			return
		}
		v = member
	} else {
		if builtins.IsGenericType(name) {
			a.report(errors.InvalidTypeArguments(fmt.Sprintf("type %s requires type arguments", name), a.loc(n.Range)))
			return
		}
		v = a.scope.Lookup(name)
		if v == nil {
			a.report(errors.UndefinedType(name, a.loc(n.Identifier.Range), a.typeNamesInScope()))
			return
		}
	}
	a.reference(n.Identifier.Range, v)

	if a.pending[v.Type] {
		a.cyclic = true
		return
	}
	if v.Type == types.Any {
		return
	}
	tv := v.Type.TypeValue()
	if tv == nil {
		a.report(errors.NotAType(name, a.loc(n.Identifier.Range)))
		return
	}
	if len(n.Arguments) > 0 {
		a.report(errors.InvalidTypeArguments(fmt.Sprintf("type %s does not accept type arguments", name), a.loc(n.Range)))
	}
	a.typeResult = tv
}

func (a *annotator) VisitSpecialTypeDisplay(n *ast.SpecialTypeDisplay) {
	args := make([]*types.Type, len(n.Arguments))
	for i, arg := range n.Arguments {
		args[i] = a.resolveType(arg)
	}
	name := n.Identifier.Name
	switch name {
	case "Nullable":
		if len(args) != 1 {
			a.report(errors.InvalidTypeArguments(fmt.Sprintf("type Nullable takes 1 type argument, got %d", len(args)), a.loc(n.Range)))
			return
		}
		a.typeResult = args[0].Nullable()
	case "Union":
		a.typeResult = unionOf(args)
	case "Function":
		if len(args) == 0 {
			a.report(errors.InvalidTypeArguments("type Function needs at least a return type", a.loc(n.Range)))
			return
		}
		a.typeResult = types.Lambda(args[:len(args)-1], args[len(args)-1])
	default:
		t, err := types.Builtin(name, args)
		if err != nil {
			a.report(errors.InvalidTypeArguments(err.Error(), a.loc(n.Range)))
			return
		}
		a.typeResult = t
	}
}

func (a *annotator) VisitNullableTypeDisplay(n *ast.NullableTypeDisplay) {
	a.typeResult = a.resolveType(n.Type).Nullable()
}

func (a *annotator) VisitUnionTypeDisplay(n *ast.UnionTypeDisplay) {
	members := make([]*types.Type, len(n.Types))
	for i, t := range n.Types {
		members[i] = a.resolveType(t)
	}
	a.typeResult = unionOf(members)
}

func (a *annotator) VisitFunctionTypeDisplay(n *ast.FunctionTypeDisplay) {
	params := make([]*types.Type, len(n.Parameters))
	for i, p := range n.Parameters {
		params[i] = a.resolveType(p)
	}
	a.typeResult = types.Lambda(params, a.resolveType(n.ReturnType))
}

func (a *annotator) VisitValueTypeDisplay(n *ast.ValueTypeDisplay) {
	info := a.solve(n.Value, nil)
	if info.Value == nil {
		a.report(errors.NewSemanticError(errors.ErrorNotAType, "only literal values can be used as types", a.loc(n.Range)).Build())
		return
	}
	if t := types.ValueOf(info.Value); t != nil {
		a.typeResult = t
	}
}

// unionOf builds a written union without consulting assignability, since
// the members' method tables may not be complete yet. Null and nullable
// members make the whole union nullable.
func unionOf(members []*types.Type) *types.Type {
	nullable := false
	seen := map[*types.Type]bool{}
	var flat []*types.Type
	for _, m := range members {
		switch {
		case m == types.Any:
			return types.Any
		case m == types.Never:
			continue
		case m == types.Null:
			nullable = true
			continue
		case m.IsNullable():
			nullable = true
			m = m.NonNull()
		}
		if !seen[m] {
			seen[m] = true
			flat = append(flat, m)
		}
	}
	var t *types.Type
	switch len(flat) {
	case 0:
		t = types.Never
	case 1:
		t = flat[0]
	default:
		t = types.Union(flat...)
	}
	if nullable {
		t = t.Nullable()
	}
	return t
}

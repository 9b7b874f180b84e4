package types

import (
	"github.com/hashicorp/go-set/v3"
)

// IsAssignableTo reports whether a value of type t can be used where target
// is expected.
func (t *Type) IsAssignableTo(target *Type) bool {
	if t == target {
		return true
	}
	if target.kind == AnyKind || t.kind == NeverKind {
		return true
	}
	if target.kind == NullableKind {
		if t.kind == NullKind {
			return true
		}
		return t.NonNull().IsAssignableTo(target.NonNull())
	}
	switch t.kind {
	case AnyKind, NullKind, NullableKind:
		return false
	case UnionKind:
		for _, m := range t.unionMembers() {
			if !m.IsAssignableTo(target) {
				return false
			}
		}
		return true
	case TypeParameterKind:
		if bound := t.data.(*TypeParameterData).Bound; bound != nil {
			return bound.IsAssignableTo(target)
		}
		return false
	}

	switch d := target.data.(type) {
	case *UnionData:
		for _, m := range d.Members {
			if t.IsAssignableTo(m) {
				return true
			}
		}
	case *TupleData:
		if src, ok := t.data.(*TupleData); ok && len(src.Items) == len(d.Items) {
			for i := range src.Items {
				if !src.Items[i].IsAssignableTo(d.Items[i]) {
					return false
				}
			}
			return true
		}
	case *ListData:
		switch src := t.data.(type) {
		case *TupleData:
			for _, item := range src.Items {
				if !item.IsAssignableTo(d.Item) {
					return false
				}
			}
			return true
		case *ListData:
			return src.Item.IsAssignableTo(d.Item)
		}
	case *IterableData:
		if item := t.IterableItemType(); item != nil {
			return item.IsAssignableTo(d.Item)
		}
	case *PromiseData:
		if src, ok := t.data.(*PromiseData); ok {
			return src.Value.IsAssignableTo(d.Value)
		}
	case *InterfaceData:
		if t.isUnionElement() && t.implements(target) {
			return true
		}
	case *ClassData:
		for base := t.Base(); base != nil; base = base.Base() {
			if base == target {
				return true
			}
		}
	case *LambdaData:
		if t.callableAs(d) {
			return true
		}
	}

	if v, ok := t.data.(*ValueData); ok {
		return v.Base.IsAssignableTo(target)
	}
	return false
}

// implements checks structural conformance of t to the interface target.
// The answer is memoised per interface; it is seeded true before checking
// so that mutually recursive interfaces terminate.
func (t *Type) implements(target *Type) bool {
	if target.implementors == nil {
		target.implementors = map[*Type]bool{}
	}
	if known, ok := target.implementors[t]; ok {
		return known
	}
	if t.ExtendsInterface(target) {
		target.implementors[t] = true
		return true
	}

	target.implementors[t] = true
	result := true
	for name, required := range target.Methods() {
		if name == "__eq__" || name == "__ne__" {
			continue
		}
		for _, want := range required {
			if !t.hasImplementation(name, want) {
				result = false
				break
			}
		}
		if !result {
			break
		}
	}
	target.implementors[t] = result
	return result
}

// ExtendsInterface reports whether target is among the bases of interface
// t, directly or through other bases. Cyclic bases terminate.
func (t *Type) ExtendsInterface(target *Type) bool {
	return t.extendsInterface(target, map[*Type]bool{})
}

func (t *Type) extendsInterface(target *Type, visited map[*Type]bool) bool {
	d, ok := t.data.(*InterfaceData)
	if !ok || visited[t] {
		return false
	}
	visited[t] = true
	for _, base := range d.Bases {
		if base == target || base.extendsInterface(target, visited) {
			return true
		}
	}
	return false
}

func (t *Type) hasImplementation(name string, want *Method) bool {
	for _, have := range t.GetMethods(name) {
		if have.ImplementsMethod(want) {
			return true
		}
	}
	// A concrete class may leave a nullable field unstated: reading it
	// simply yields null.
	if t.kind == ClassKind && !t.IsAbstract() && want.IsGetter() && want.ReturnType.kind == NullableKind {
		return len(t.GetMethods(name)) == 0
	}
	return false
}

// ImplementsMethod reports whether m can stand in for target in an
// interface. Arity must match exactly: default parameters do not help here
// even though they do at call sites.
func (m *Method) ImplementsMethod(target *Method) bool {
	if len(m.Parameters) != len(target.Parameters) {
		return false
	}
	if m.AliasFor != target.AliasFor {
		return false
	}
	for i := range m.Parameters {
		if !target.Parameters[i].Type.IsAssignableTo(m.Parameters[i].Type) {
			return false
		}
	}
	return m.ReturnType.IsAssignableTo(target.ReturnType)
}

// callableAs applies the function subtyping rule: t may take fewer
// parameters, each accepting the target's argument type, and must return
// something assignable to the target's result.
func (t *Type) callableAs(target *LambdaData) bool {
	if t.kind != LambdaKind && t.kind != FunctionKind {
		return false
	}
	argc := len(target.Parameters)
	for _, call := range t.GetMethods("__call__") {
		if call.MinArity() > argc {
			continue
		}
		ok := true
		for i, p := range call.Parameters {
			if i >= argc {
				break
			}
			if !target.Parameters[i].IsAssignableTo(p.Type) {
				ok = false
				break
			}
		}
		if ok && call.ReturnType.IsAssignableTo(target.Return) {
			return true
		}
	}
	return false
}

// isUnionElement reports whether t may appear as a member of a union type.
func (t *Type) isUnionElement() bool {
	switch t.kind {
	case BoolKind, NumberKind, StringKind, ListKind, TupleKind, PromiseKind, ClassKind,
		InterfaceKind, EnumKind, ValueKind, LambdaKind, FunctionKind, IterableKind, TypeParameterKind:
		return true
	}
	return false
}

// IterableItemType returns the element type produced by iterating over t,
// or nil when t is not iterable.
func (t *Type) IterableItemType() *Type {
	switch d := t.data.(type) {
	case *ListData:
		return d.Item
	case *IterableData:
		return d.Item
	case *TupleData:
		item := Never
		for _, it := range d.Items {
			item = item.GetCommonType(it)
		}
		return item
	case *ValueData:
		return d.Base.IterableItemType()
	case *UnionData:
		var item *Type
		for _, m := range d.Members {
			mi := m.IterableItemType()
			if mi == nil {
				return nil
			}
			if item == nil {
				item = mi
			} else {
				item = item.GetCommonType(mi)
			}
		}
		return item
	case *TypeParameterData:
		if d.Bound != nil {
			return d.Bound.IterableItemType()
		}
		return nil
	}
	switch t.kind {
	case StringKind:
		return String
	case AnyKind:
		return Any
	case NeverKind:
		return Never
	}
	for _, m := range t.GetMethods("__iter__") {
		if len(m.Parameters) == 0 && m.ReturnType.kind == IterableKind {
			return m.ReturnType.data.(*IterableData).Item
		}
	}
	return nil
}

// GetCommonType is the narrowest type both t and other can be widened to.
// It is symmetric up to union membership.
func (t *Type) GetCommonType(other *Type) *Type {
	switch {
	case t == other:
		return t
	case t.kind == AnyKind || other.kind == AnyKind:
		return Any
	case t.kind == NeverKind:
		return other
	case other.kind == NeverKind:
		return t
	case t.kind == NullKind:
		return other.Nullable()
	case other.kind == NullKind:
		return t.Nullable()
	case t.kind == NullableKind || other.kind == NullableKind:
		return t.NonNull().GetCommonType(other.NonNull()).Nullable()
	case t.IsAssignableTo(other):
		return other
	case other.IsAssignableTo(t):
		return t
	}

	if ti, ok := t.data.(*IterableData); ok {
		if oi, ok := other.data.(*IterableData); ok {
			return ti.Item.GetCommonType(oi.Item).Iterable()
		}
	}

	members := set.New[*Type](4)
	for _, side := range []*Type{t, other} {
		for _, m := range side.unionMembers() {
			if !m.isUnionElement() {
				return Any
			}
			members.Insert(m)
		}
	}
	switch members.Size() {
	case 0:
		return Never
	case 1:
		return members.Slice()[0]
	}
	return Union(members.Slice()...)
}

// CommonTypeOf folds GetCommonType over types; the common type of nothing
// is Never.
func CommonTypeOf(types ...*Type) *Type {
	out := Never
	for _, t := range types {
		out = out.GetCommonType(t)
	}
	return out
}

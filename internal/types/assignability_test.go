package types

import (
	"testing"

	"github.com/hashicorp/go-set/v3"
	"github.com/stretchr/testify/assert"
)

func getter(self *Type, name string, ret *Type) *Method {
	return &Method{Identifier: "__get_" + name, ReturnType: ret, Owner: self}
}

func methodTable(methods ...func(self *Type) *Method) MethodInit {
	return func(self *Type) map[string][]*Method {
		table := map[string][]*Method{}
		for _, build := range methods {
			m := build(self)
			table[m.Identifier] = append(table[m.Identifier], m)
		}
		return table
	}
}

func TestAssignabilityBasics(t *testing.T) {
	all := []*Type{Any, Never, Null, Bool, Number, String, Number.Nullable(), Number.List(), Tuple(Number, String)}
	for _, typ := range all {
		assert.True(t, typ.IsAssignableTo(typ), "%s is assignable to itself", typ)
		assert.True(t, typ.IsAssignableTo(Any), "%s is assignable to Any", typ)
		assert.True(t, Never.IsAssignableTo(typ), "Never is assignable to %s", typ)
	}

	assert.True(t, Null.IsAssignableTo(Number.Nullable()))
	assert.True(t, Number.IsAssignableTo(Number.Nullable()))
	assert.False(t, Null.IsAssignableTo(Number))
	assert.False(t, Number.Nullable().IsAssignableTo(Number))
	assert.False(t, Any.IsAssignableTo(Number))
	assert.False(t, Number.IsAssignableTo(String))
}

func TestAssignabilityUnions(t *testing.T) {
	ns := Union(Number, String)
	assert.True(t, Number.IsAssignableTo(ns))
	assert.True(t, ValueOf(StringValue("x")).IsAssignableTo(ns))
	assert.False(t, ns.IsAssignableTo(Number))
	assert.True(t, ns.IsAssignableTo(Union(Number, String, Bool)))
	assert.False(t, Union(Number, Bool).IsAssignableTo(ns))
	assert.True(t, Union(ValueOf(StringValue("red")), ValueOf(StringValue("green"))).IsAssignableTo(String))
}

func TestAssignabilityCollections(t *testing.T) {
	assert.True(t, Tuple(Number, Number).IsAssignableTo(Number.List()))
	assert.False(t, Tuple(Number, String).IsAssignableTo(Number.List()))
	assert.True(t, Tuple(Number, String).IsAssignableTo(Union(Number, String).List()))
	assert.True(t, Tuple(Number, String).IsAssignableTo(Tuple(Number, String.Nullable())))
	assert.False(t, Tuple(Number).IsAssignableTo(Tuple(Number, Number)))

	assert.True(t, Number.List().IsAssignableTo(Number.Iterable()))
	assert.True(t, Number.List().IsAssignableTo(Any.Iterable()))
	assert.True(t, String.IsAssignableTo(String.Iterable()))
	assert.False(t, Number.IsAssignableTo(Number.Iterable()))
	assert.True(t, Tuple(Number, Number).IsAssignableTo(Number.Iterable()))

	assert.True(t, Number.Promise().IsAssignableTo(Number.Nullable().Promise()))
	assert.False(t, Number.Promise().IsAssignableTo(String.Promise()))
	assert.False(t, Number.Promise().IsAssignableTo(Number))
}

func TestAssignabilityClasses(t *testing.T) {
	animal := NewClass("Animal", nil, true, nil)
	dog := NewClass("Dog", animal, false, nil)
	puppy := NewClass("Puppy", dog, false, nil)
	cat := NewClass("Cat", animal, false, nil)

	assert.True(t, dog.IsAssignableTo(animal))
	assert.True(t, puppy.IsAssignableTo(animal))
	assert.False(t, animal.IsAssignableTo(dog))
	assert.False(t, cat.IsAssignableTo(dog))
	assert.True(t, dog.IsAssignableTo(animal.Nullable()))
}

func TestAssignabilityInterfaces(t *testing.T) {
	sized := NewInterface("Sized", nil, methodTable(func(self *Type) *Method {
		return getter(self, "size", Number)
	}))

	assert.True(t, Number.List().IsAssignableTo(sized))
	assert.True(t, String.IsAssignableTo(sized))
	assert.False(t, Bool.IsAssignableTo(sized))
	assert.False(t, Number.List().Nullable().IsAssignableTo(sized))

	box := NewClass("Box", nil, false, methodTable(func(self *Type) *Method {
		return getter(self, "size", ValueOf(NumberValue(1)))
	}))
	assert.True(t, box.IsAssignableTo(sized))

	sizedAndNamed := NewInterface("Named", []*Type{sized}, nil)
	assert.True(t, sizedAndNamed.IsAssignableTo(sized))
}

func TestAssignabilityRecursiveInterfaces(t *testing.T) {
	node := NewInterface("Node", nil, methodTable(func(self *Type) *Method {
		return &Method{Identifier: "next", ReturnType: self.Nullable(), Owner: self}
	}))

	link := NewClass("Link", nil, false, methodTable(func(self *Type) *Method {
		return &Method{Identifier: "next", ReturnType: self.Nullable(), Owner: self}
	}))
	broken := NewClass("Broken", nil, false, methodTable(func(self *Type) *Method {
		return &Method{Identifier: "next", ReturnType: Number, Owner: self}
	}))

	assert.True(t, link.IsAssignableTo(node))
	assert.False(t, broken.IsAssignableTo(node))
	// the memoised answers are stable
	assert.True(t, link.IsAssignableTo(node))
	assert.False(t, broken.IsAssignableTo(node))
}

func TestAssignabilityCyclicInterfaceBases(t *testing.T) {
	a := NewInterface("A", nil, nil)
	b := NewInterface("B", []*Type{a}, nil)
	a.SetBases([]*Type{b})
	sized := NewInterface("Sized", nil, methodTable(func(self *Type) *Method {
		return &Method{Identifier: "size", ReturnType: Number, Owner: self}
	}))

	assert.True(t, a.IsAssignableTo(b))
	assert.True(t, b.IsAssignableTo(a))
	assert.False(t, a.IsAssignableTo(sized))
	assert.False(t, b.IsAssignableTo(sized))
	assert.False(t, a.ExtendsInterface(sized))
	assert.True(t, a.ExtendsInterface(a), "a cycle leads back to the start")
}

func TestImplementsMethodIgnoresDefaults(t *testing.T) {
	want := &Method{
		Identifier: "scale",
		Parameters: []Parameter{{Identifier: "by", Type: Number}},
		ReturnType: Number,
	}
	exact := &Method{
		Identifier: "scale",
		Parameters: []Parameter{{Identifier: "factor", Type: Any}},
		ReturnType: ValueOf(NumberValue(0)),
	}
	withDefault := &Method{
		Identifier: "scale",
		Parameters: []Parameter{
			{Identifier: "by", Type: Number},
			{Identifier: "offset", Type: Number, HasDefault: true},
		},
		ReturnType: Number,
	}
	narrower := &Method{
		Identifier: "scale",
		Parameters: []Parameter{{Identifier: "by", Type: ValueOf(NumberValue(2))}},
		ReturnType: Number,
	}

	assert.True(t, exact.ImplementsMethod(want))
	assert.False(t, withDefault.ImplementsMethod(want))
	assert.False(t, narrower.ImplementsMethod(want))
	assert.True(t, withDefault.Accepts(1))
}

func TestNullableGetterException(t *testing.T) {
	labelled := NewInterface("Labelled", nil, methodTable(func(self *Type) *Method {
		return getter(self, "label", String.Nullable())
	}))
	concrete := NewClass("Plain", nil, false, nil)
	abstract := NewClass("Shape", nil, true, nil)

	assert.True(t, concrete.IsAssignableTo(labelled))
	assert.False(t, abstract.IsAssignableTo(labelled))
}

func TestAssignabilityFunctions(t *testing.T) {
	numToStr := Lambda([]*Type{Number}, String)

	assert.True(t, numToStr.IsAssignableTo(Lambda([]*Type{Number, Number}, String)))
	assert.True(t, numToStr.IsAssignableTo(Lambda([]*Type{ValueOf(NumberValue(1))}, String.Nullable())))
	assert.True(t, Lambda([]*Type{Any}, String).IsAssignableTo(numToStr))
	assert.False(t, numToStr.IsAssignableTo(Lambda([]*Type{Any}, String)))
	assert.False(t, numToStr.IsAssignableTo(Lambda(nil, String)))
	assert.False(t, numToStr.IsAssignableTo(Lambda([]*Type{Number}, Number)))

	length := builtinPrelude().function("len", builtinPrelude().functions["len"]).Type
	assert.True(t, length.IsAssignableTo(Lambda([]*Type{String}, Number)))
	assert.False(t, length.IsAssignableTo(Lambda([]*Type{Number}, Number)))
}

func TestAssignabilityNominalIdentity(t *testing.T) {
	a := NewEnum("Color", nil)
	b := NewEnum("Color", nil)
	assert.True(t, a.IsAssignableTo(a))
	assert.False(t, a.IsAssignableTo(b))

	m := NewModule("math", nil, nil)
	assert.False(t, m.IsAssignableTo(NewModule("math", nil, nil)))
}

func TestTypeParameterUsesBound(t *testing.T) {
	bounded := NewTypeParameter("T", Number)
	assert.True(t, bounded.IsAssignableTo(Number))
	assert.False(t, bounded.IsAssignableTo(String))
	assert.False(t, NewTypeParameter("U", nil).IsAssignableTo(Number))
}

func TestGetCommonType(t *testing.T) {
	tests := []struct {
		a, b, want *Type
	}{
		{Number, Number, Number},
		{Number, Any, Any},
		{Never, String, String},
		{Null, Number, Number.Nullable()},
		{Number.Nullable(), Number, Number.Nullable()},
		{Number.Nullable(), String, Union(Number, String).Nullable()},
		{ValueOf(NumberValue(1)), Number, Number},
		{Tuple(Number), Number.List(), Number.List()},
		{Number.Iterable(), String.Iterable(), Union(Number, String).Iterable()},
		{Number, NewModule("m", nil, nil), Any},
		{Null, Null, Null},
	}
	for _, tt := range tests {
		assert.Same(t, tt.want, tt.a.GetCommonType(tt.b), "common type of %s and %s", tt.a, tt.b)
		assert.Same(t, tt.want, tt.b.GetCommonType(tt.a), "common type of %s and %s", tt.b, tt.a)
	}
}

func TestGetCommonTypeBuildsUnions(t *testing.T) {
	dog := NewClass("Dog", nil, false, nil)
	cat := NewClass("Cat", nil, false, nil)

	lhs := dog.GetCommonType(cat)
	rhs := cat.GetCommonType(dog)
	assert.Equal(t, UnionKind, lhs.Kind())
	assert.True(t, members(lhs).Equal(set.From([]*Type{dog, cat})))
	assert.True(t, members(lhs).Equal(members(rhs)))

	wider := lhs.GetCommonType(Number)
	assert.True(t, members(wider).Equal(set.From([]*Type{dog, cat, Number})))
	assert.Same(t, lhs, lhs.GetCommonType(cat))
}

func TestCommonTypeOf(t *testing.T) {
	assert.Same(t, Never, CommonTypeOf())
	assert.Same(t, Number, CommonTypeOf(ValueOf(NumberValue(1)), Number))
	assert.Same(t, String.Nullable(), CommonTypeOf(Null, String, Null))
}

func TestIterableItemType(t *testing.T) {
	assert.Same(t, Number, Number.List().IterableItemType())
	assert.Same(t, String, String.IterableItemType())
	assert.Same(t, String, ValueOf(StringValue("abc")).IterableItemType())
	assert.Same(t, Union(Number, String), Tuple(Number, String).IterableItemType())
	assert.Same(t, Union(Number, String), Union(Number.List(), String.List()).IterableItemType())
	assert.Nil(t, Number.IterableItemType())
	assert.Nil(t, Union(Number, String.List()).IterableItemType())
}

package types

import (
	"testing"

	"github.com/hashicorp/go-set/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func members(t *Type) *set.Set[*Type] {
	return set.From(t.unionMembers())
}

func TestDerivedTypesAreMemoised(t *testing.T) {
	assert.Same(t, Number.List(), Number.List())
	assert.Same(t, Number.Nullable(), Number.Nullable())
	assert.Same(t, String.Iterable(), String.Iterable())
	assert.Same(t, Bool.Promise(), Bool.Promise())
	assert.Same(t, Tuple(Number, String), Tuple(Number, String))
	assert.Same(t, Lambda([]*Type{Number}, String), Lambda([]*Type{Number}, String))
	assert.NotSame(t, Lambda([]*Type{Number}, String), Lambda([]*Type{Number}, Number))
	assert.NotSame(t, Tuple(Number), Tuple(Number, Number))
}

func TestNullable(t *testing.T) {
	assert.Same(t, Number.Nullable(), Number.Nullable().Nullable())
	assert.Same(t, Null, Null.Nullable())
	assert.Same(t, Null, Never.Nullable())
	assert.Same(t, Any, Any.Nullable())
	assert.Same(t, Number, Number.Nullable().NonNull())
	assert.Same(t, Never, Null.NonNull())
	assert.True(t, Number.Nullable().IsNullable())
	assert.False(t, Number.IsNullable())
}

func TestUnionInterning(t *testing.T) {
	ab := Union(Number, String)
	assert.Same(t, ab, Union(String, Number))
	assert.Same(t, ab, Union(Number, String, Number))

	nested := Union(ab, Bool)
	assert.True(t, members(nested).Equal(set.From([]*Type{Number, String, Bool})))
	assert.Same(t, nested, Union(Bool, Number, String))
}

func TestUnionNeedsTwoMembers(t *testing.T) {
	assert.Panics(t, func() { Union(Number) })
	assert.Panics(t, func() { Union(Number, Number) })
	assert.Panics(t, func() { Union() })
}

func TestValueTypes(t *testing.T) {
	one := ValueOf(NumberValue(1))
	assert.Same(t, one, ValueOf(NumberValue(1)))
	assert.NotSame(t, one, ValueOf(NumberValue(2)))
	assert.NotSame(t, ValueOf(StringValue("1")), one)
	assert.Same(t, Number, one.Widen())
	assert.Same(t, Null, ValueOf(NullValue{}))
	assert.Nil(t, ValueOf(ListValue{}))
	assert.Same(t, String, String.Widen())
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *Type
		want string
	}{
		{Any, "Any"},
		{Number.Nullable(), "Number?"},
		{Number.List(), "List[Number]"},
		{Tuple(Number, String), "Tuple[Number, String]"},
		{String.Iterable(), "Iterable[String]"},
		{Bool.Promise(), "Promise[Bool]"},
		{Lambda([]*Type{Number, String}, Bool), "(Number, String) => Bool"},
		{Lambda(nil, Null).Nullable(), "(() => Null)?"},
		{Union(Number, String), "Number | String"},
		{Union(Number, String).Nullable(), "(Number | String)?"},
		{ValueOf(StringValue("red")), `"red"`},
		{NewClass("Point", nil, false, nil), "Point"},
		{NewFunction("f", nil), "function f"},
		{NewModule("math", nil, nil), "module math"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestModuleMembers(t *testing.T) {
	mod := NewModule("geometry", nil, nil)
	mod.AddMember(NewVariable("pi", Number, false, NumberValue(3.14), preludeLocationForTest))
	mod.AddMember(builtinPrelude().function("size", builtinPrelude().functions["len"]))

	getter := mod.GetMethods("__get_pi")
	require.Len(t, getter, 1)
	assert.Equal(t, NumberValue(3.14), getter[0].InlineValue)
	assert.Same(t, Number, getter[0].ReturnType)

	direct := mod.GetMethods("size")
	require.Len(t, direct, 1)
	assert.Same(t, Number, direct[0].ReturnType)
	assert.NotNil(t, direct[0].SourceVariable)

	v, ok := mod.Member("pi")
	require.True(t, ok)
	assert.False(t, v.IsMutable)
}

func TestMutableVariablesDropValues(t *testing.T) {
	v := NewVariable("x", Number, true, NumberValue(1), preludeLocationForTest)
	assert.Nil(t, v.Value)
	c := NewVariable("y", Number, false, NumberValue(1), preludeLocationForTest)
	assert.Equal(t, NumberValue(1), c.Value)
}

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"yal/internal/ast"
)

var preludeLocationForTest = ast.Location{URI: "test.yal"}

func TestRepr(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NullValue{}, "null"},
		{BoolValue(true), "true"},
		{BoolValue(false), "false"},
		{NumberValue(1), "1"},
		{NumberValue(-2.5), "-2.5"},
		{NumberValue(0.1), "0.1"},
		{NumberValue(1e21), "1e+21"},
		{NumberValue(math.NaN()), "NaN"},
		{NumberValue(math.Inf(-1)), "-Infinity"},
		{StringValue("hi"), `"hi"`},
		{StringValue("a\"b\n<"), `"a\"b\n<"`},
		{ListValue{NumberValue(1), StringValue("x")}, `[1, "x"]`},
		{ListValue{}, "[]"},
		{FunctionValue{Name: "f"}, "<function f>"},
		{FunctionValue{}, "<function>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Repr(tt.value))
	}
}

func TestStr(t *testing.T) {
	assert.Equal(t, "hi", Str(StringValue("hi")))
	assert.Equal(t, `["hi"]`, Str(ListValue{StringValue("hi")}))
	assert.Equal(t, "3", Str(NumberValue(3)))
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, ValuesEqual(NumberValue(1), NumberValue(1)))
	assert.False(t, ValuesEqual(NumberValue(1), StringValue("1")))
	assert.True(t, ValuesEqual(ListValue{BoolValue(true)}, ListValue{BoolValue(true)}))
	assert.False(t, ValuesEqual(ListValue{BoolValue(true)}, NumberValue(1)))
	assert.False(t, ValuesEqual(ListValue{}, ListValue{NullValue{}}))
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(NullValue{}))
	assert.False(t, Truthy(NumberValue(0)))
	assert.False(t, Truthy(StringValue("")))
	assert.True(t, Truthy(StringValue("x")))
	assert.True(t, Truthy(FunctionValue{}))
	assert.False(t, Truthy(ListValue{}))
}

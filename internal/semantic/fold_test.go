package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yal/internal/types"
)

func known(values ...types.Value) []*ExpressionInfo {
	out := make([]*ExpressionInfo, len(values))
	for i, v := range values {
		out[i] = &ExpressionInfo{Type: types.Any, Value: v}
	}
	return out
}

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		op   string
		recv types.Value
		args []types.Value
		want types.Value
	}{
		{"add", "__add__", types.NumberValue(1), []types.Value{types.NumberValue(2)}, types.NumberValue(3)},
		{"floordiv", "__floordiv__", types.NumberValue(7), []types.Value{types.NumberValue(2)}, types.NumberValue(3)},
		{"floored mod", "__mod__", types.NumberValue(-7), []types.Value{types.NumberValue(3)}, types.NumberValue(2)},
		{"pow", "__pow__", types.NumberValue(2), []types.Value{types.NumberValue(10)}, types.NumberValue(1024)},
		{"shift", "__lshift__", types.NumberValue(1), []types.Value{types.NumberValue(4)}, types.NumberValue(16)},
		{"shift to exact limit", "__lshift__", types.NumberValue(1), []types.Value{types.NumberValue(52)}, types.NumberValue(1 << 52)},
		{"invert", "__invert__", types.NumberValue(5), nil, types.NumberValue(-6)},
		{"compare", "__le__", types.NumberValue(2), []types.Value{types.NumberValue(2)}, types.BoolValue(true)},
		{"repeat", "__mul__", types.StringValue("ab"), []types.Value{types.NumberValue(3)}, types.StringValue("ababab")},
		{"concat", "__add__", types.StringValue("a"), []types.Value{types.StringValue("b")}, types.StringValue("ab")},
		{"contains", "__contains__", types.StringValue("hello"), []types.Value{types.StringValue("ell")}, types.BoolValue(true)},
		{"size counts UTF-16 units", "__get_size", types.StringValue("h\U0001F600"), nil, types.NumberValue(3)},
		{"length alias", "__get_length", types.StringValue("abc"), nil, types.NumberValue(3)},
		{"upper", "upper", types.StringValue("abc"), nil, types.StringValue("ABC")},
		{"xor", "__xor__", types.BoolValue(true), []types.Value{types.BoolValue(true)}, types.BoolValue(false)},
		{"list equality", "__eq__", types.ListValue{types.NumberValue(1)}, []types.Value{types.ListValue{types.NumberValue(1)}}, types.BoolValue(true)},
		{"mixed inequality", "__ne__", types.NumberValue(1), []types.Value{types.StringValue("1")}, types.BoolValue(true)},
		{"str", "__str__", types.NumberValue(1.5), nil, types.StringValue("1.5")},
		{"list size", "__get_size", types.ListValue{types.NullValue{}, types.NullValue{}}, nil, types.NumberValue(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fold(tt.op, tt.recv, known(tt.args...))
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFoldRefuses(t *testing.T) {
	tests := []struct {
		name string
		op   string
		recv types.Value
		args []*ExpressionInfo
	}{
		{"unknown operand", "__add__", types.NumberValue(1), []*ExpressionInfo{{Type: types.Number}}},
		{"zero divisor", "__mod__", types.NumberValue(7), known(types.NumberValue(0))},
		{"fractional bitwise", "__and__", types.NumberValue(1.5), known(types.NumberValue(1))},
		{"huge repeat", "__mul__", types.StringValue("ab"), known(types.NumberValue(20000))},
		{"negative repeat", "__mul__", types.StringValue("ab"), known(types.NumberValue(-1))},
		{"unknown method", "split", types.StringValue("a b"), nil},
		{"shift past int64", "__lshift__", types.NumberValue(1), known(types.NumberValue(63))},
		{"shift wraps sign", "__lshift__", types.NumberValue(3), known(types.NumberValue(62))},
		{"shift past exact range", "__lshift__", types.NumberValue(1), known(types.NumberValue(53))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := fold(tt.op, tt.recv, tt.args)
			assert.False(t, ok)
		})
	}
}

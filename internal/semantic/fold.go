package semantic

import (
	"math"
	"strings"
	"unicode/utf16"

	"yal/internal/types"
)

// maxFoldedRepeat bounds string repetition so that folding never builds
// huge constants.
const maxFoldedRepeat = 10000

// fold evaluates a builtin method on compile-time values. It reports false
// when any operand is unknown or the operation is not foldable.
func fold(name string, recv types.Value, args []*ExpressionInfo) (types.Value, bool) {
	values := make([]types.Value, len(args))
	for i, arg := range args {
		if arg.Value == nil {
			return nil, false
		}
		values[i] = arg.Value
	}

	switch name {
	case "__eq__":
		if len(values) == 1 {
			return types.BoolValue(types.ValuesEqual(recv, values[0])), true
		}
	case "__ne__":
		if len(values) == 1 {
			return types.BoolValue(!types.ValuesEqual(recv, values[0])), true
		}
	case "__str__":
		if len(values) == 0 {
			return types.StringValue(types.Str(recv)), true
		}
	}

	switch r := recv.(type) {
	case types.NumberValue:
		return foldNumber(name, float64(r), values)
	case types.StringValue:
		return foldString(name, string(r), values)
	case types.BoolValue:
		return foldBool(name, bool(r), values)
	case types.ListValue:
		if name == "__get_size" || name == "__get_length" {
			return types.NumberValue(len(r)), true
		}
	}
	return nil, false
}

func isInteger(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53
}

func foldNumber(name string, x float64, args []types.Value) (types.Value, bool) {
	if len(args) == 0 {
		switch name {
		case "__neg__":
			return types.NumberValue(-x), true
		case "__pos__":
			return types.NumberValue(x), true
		case "__invert__":
			if isInteger(x) {
				return types.NumberValue(^int64(x)), true
			}
		}
		return nil, false
	}
	if len(args) != 1 {
		return nil, false
	}
	yv, ok := args[0].(types.NumberValue)
	if !ok {
		return nil, false
	}
	y := float64(yv)

	switch name {
	case "__add__":
		return types.NumberValue(x + y), true
	case "__sub__":
		return types.NumberValue(x - y), true
	case "__mul__":
		return types.NumberValue(x * y), true
	case "__div__":
		return types.NumberValue(x / y), true
	case "__floordiv__":
		if y != 0 {
			return types.NumberValue(math.Floor(x / y)), true
		}
	case "__mod__":
		// Floored: the result takes the divisor's sign.
		if y != 0 {
			m := math.Mod(x, y)
			if m != 0 && (m < 0) != (y < 0) {
				m += y
			}
			return types.NumberValue(m), true
		}
	case "__pow__":
		return types.NumberValue(math.Pow(x, y)), true
	case "__lt__":
		return types.BoolValue(x < y), true
	case "__le__":
		return types.BoolValue(x <= y), true
	case "__gt__":
		return types.BoolValue(x > y), true
	case "__ge__":
		return types.BoolValue(x >= y), true
	}

	if !isInteger(x) || !isInteger(y) {
		return nil, false
	}
	a, b := int64(x), int64(y)
	switch name {
	case "__and__":
		return types.NumberValue(a & b), true
	case "__or__":
		return types.NumberValue(a | b), true
	case "__xor__":
		return types.NumberValue(a ^ b), true
	case "__lshift__":
		// Results past 2^53 lose precision, and past 2^63 they wrap.
		if b >= 0 && b < 54 {
			if r := a << b; r>>b == a && isInteger(float64(r)) {
				return types.NumberValue(r), true
			}
		}
	case "__rshift__":
		if b >= 0 && b < 64 {
			return types.NumberValue(a >> b), true
		}
	}
	return nil, false
}

func foldString(name, s string, args []types.Value) (types.Value, bool) {
	switch name {
	case "__get_size", "__get_length":
		if len(args) == 0 {
			return types.NumberValue(len(utf16.Encode([]rune(s)))), true
		}
	case "upper":
		if len(args) == 0 {
			return types.StringValue(strings.ToUpper(s)), true
		}
	case "lower":
		if len(args) == 0 {
			return types.StringValue(strings.ToLower(s)), true
		}
	case "strip":
		if len(args) == 0 {
			return types.StringValue(strings.TrimSpace(s)), true
		}
	}
	if len(args) != 1 {
		return nil, false
	}

	if name == "__mul__" {
		n, ok := args[0].(types.NumberValue)
		if !ok || !isInteger(float64(n)) || n < 0 || n > maxFoldedRepeat {
			return nil, false
		}
		return types.StringValue(strings.Repeat(s, int(n))), true
	}

	t, ok := args[0].(types.StringValue)
	if !ok {
		return nil, false
	}
	other := string(t)
	switch name {
	case "__add__":
		return types.StringValue(s + other), true
	case "__lt__":
		return types.BoolValue(s < other), true
	case "__le__":
		return types.BoolValue(s <= other), true
	case "__gt__":
		return types.BoolValue(s > other), true
	case "__ge__":
		return types.BoolValue(s >= other), true
	case "__contains__":
		return types.BoolValue(strings.Contains(s, other)), true
	case "startsWith":
		return types.BoolValue(strings.HasPrefix(s, other)), true
	case "endsWith":
		return types.BoolValue(strings.HasSuffix(s, other)), true
	}
	return nil, false
}

func foldBool(name string, x bool, args []types.Value) (types.Value, bool) {
	if len(args) != 1 {
		return nil, false
	}
	y, ok := args[0].(types.BoolValue)
	if !ok {
		return nil, false
	}
	switch name {
	case "__and__":
		return types.BoolValue(x && bool(y)), true
	case "__or__":
		return types.BoolValue(x || bool(y)), true
	case "__xor__":
		return types.BoolValue(x != bool(y)), true
	}
	return nil, false
}

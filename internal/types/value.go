package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a compile-time known value.
type Value interface {
	isValue()
}

type NullValue struct{}
type BoolValue bool
type NumberValue float64
type StringValue string
type ListValue []Value

// FunctionValue stands for a named or anonymous function.
type FunctionValue struct{ Name string }

func (NullValue) isValue()     {}
func (BoolValue) isValue()     {}
func (NumberValue) isValue()   {}
func (StringValue) isValue()   {}
func (ListValue) isValue()     {}
func (FunctionValue) isValue() {}

// Repr renders v the way it would be written in source: strings are
// quoted and list elements use Repr.
func Repr(v Value) string {
	switch v := v.(type) {
	case nil, NullValue:
		return "null"
	case BoolValue:
		return strconv.FormatBool(bool(v))
	case NumberValue:
		return formatNumber(float64(v))
	case StringValue:
		return quote(string(v))
	case ListValue:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = Repr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case FunctionValue:
		if v.Name == "" {
			return "<function>"
		}
		return "<function " + v.Name + ">"
	}
	return "?"
}

// Str is the printed form: like Repr except that a top-level string is
// shown without quotes.
func Str(v Value) string {
	if s, ok := v.(StringValue); ok {
		return string(s)
	}
	return Repr(v)
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// ValuesEqual compares two compile-time values structurally.
func ValuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case ListValue:
		bl, ok := b.(ListValue)
		if !ok || len(a) != len(bl) {
			return false
		}
		for i := range a {
			if !ValuesEqual(a[i], bl[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}
	return a == b
}

// Truthy reports the boolean interpretation of v used by constant folding
// of `and`, `or` and `not`.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil, NullValue:
		return false
	case BoolValue:
		return bool(v)
	case NumberValue:
		return v != 0
	case StringValue:
		return v != ""
	case ListValue:
		return len(v) > 0
	}
	return true
}

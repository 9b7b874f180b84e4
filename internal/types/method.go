package types

import (
	"sort"
	"strconv"
	"strings"

	"yal/internal/ast"
)

type Parameter struct {
	Identifier   string
	Type         *Type
	HasDefault   bool
	DefaultValue Value
}

// Method is one callable entry in a type's method table. Several methods may
// share an identifier; they are told apart by arity.
type Method struct {
	Identifier     string
	TypeParameters []*Type
	Parameters     []Parameter
	ReturnType     *Type
	SourceVariable *Variable
	AliasFor       string
	InlineValue    Value
	IsControlFlow  bool
	// IsAbstract is set for a class method declared without a body.
	IsAbstract bool
	Owner      *Type
}

// MinArity is the number of leading parameters without a default.
func (m *Method) MinArity() int {
	n := len(m.Parameters)
	for n > 0 && m.Parameters[n-1].HasDefault {
		n--
	}
	return n
}

func (m *Method) Arity() int { return len(m.Parameters) }

// Accepts reports whether a call with argc arguments can be satisfied.
func (m *Method) Accepts(argc int) bool {
	return m.MinArity() <= argc && argc <= len(m.Parameters)
}

// Signature renders the parameter list and return type, e.g.
// "[T](xs: List[T], sep: String = ", "): String".
func (m *Method) Signature() string {
	var b strings.Builder
	if len(m.TypeParameters) > 0 {
		b.WriteString("[")
		for i, tp := range m.TypeParameters {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(tp.Name())
			if bound := tp.data.(*TypeParameterData).Bound; bound != nil {
				b.WriteString(": ")
				b.WriteString(bound.String())
			}
		}
		b.WriteString("]")
	}
	b.WriteString("(")
	for i, p := range m.Parameters {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Identifier)
		b.WriteString(": ")
		b.WriteString(p.Type.String())
		if p.HasDefault {
			b.WriteString(" = ")
			if p.DefaultValue != nil {
				b.WriteString(Repr(p.DefaultValue))
			} else {
				b.WriteString("...")
			}
		}
	}
	b.WriteString("): ")
	b.WriteString(m.ReturnType.String())
	return b.String()
}

// IsGetter reports whether m is the zero-argument accessor of a field.
func (m *Method) IsGetter() bool {
	return strings.HasPrefix(m.Identifier, "__get_") && len(m.Parameters) == 0
}

// Variable is any named, typed binding. A mutable variable never carries a
// compile-time value.
type Variable struct {
	Identifier           string
	Type                 *Type
	IsMutable            bool
	IsPrivate            bool
	Comment              string
	Value                Value
	IsForwardDeclaration bool
	Location             ast.Location
}

func NewVariable(name string, t *Type, mutable bool, value Value, loc ast.Location) *Variable {
	v := &Variable{Identifier: name, Type: t, IsMutable: mutable, Location: loc}
	if !mutable {
		v.Value = value
	}
	return v
}

// Methods returns the type's method table, building it on first use. A
// table requested while it is being built is seen as empty.
func (t *Type) Methods() map[string][]*Method {
	if t.methods != nil {
		return t.methods
	}
	if t.building {
		return nil
	}
	t.building = true
	table := map[string][]*Method{}
	if t.kind != AnyKind && t.kind != NeverKind {
		addEqualityMethods(t, table)
	}
	for name, methods := range t.derivedMethods() {
		table[name] = methods
	}
	if t.init != nil {
		for name, methods := range t.init(t) {
			table[name] = methods
		}
	}
	t.methods = table
	t.building = false
	return table
}

// GetMethods returns every overload named name.
func (t *Type) GetMethods(name string) []*Method {
	return t.Methods()[name]
}

// MethodNames lists the method table's keys in sorted order.
func (t *Type) MethodNames() []string {
	table := t.Methods()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMethodsHandlingArgumentCount picks the overloads of name for a call
// with argc arguments. Methods whose required parameter count is exactly
// argc come first; failing that, any method that can take argc arguments.
// If several qualify, those with exactly argc parameters and no type
// parameters win; if none of them do, the first candidate is kept so that
// callers still have something to report against.
func (t *Type) GetMethodsHandlingArgumentCount(name string, argc int) []*Method {
	var candidates []*Method
	for _, m := range t.GetMethods(name) {
		if m.MinArity() == argc {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		for _, m := range t.GetMethods(name) {
			if m.Accepts(argc) {
				candidates = append(candidates, m)
			}
		}
	}
	if len(candidates) <= 1 {
		return candidates
	}
	var strict []*Method
	for _, m := range candidates {
		if len(m.Parameters) == argc && len(m.TypeParameters) == 0 {
			strict = append(strict, m)
		}
	}
	if len(strict) == 0 {
		return candidates[:1]
	}
	return strict
}

func addEqualityMethods(t *Type, table map[string][]*Method) {
	for _, name := range []string{"__eq__", "__ne__"} {
		table[name] = []*Method{{
			Identifier: name,
			Parameters: []Parameter{{Identifier: "other", Type: Any}},
			ReturnType: Bool,
			Owner:      t,
		}}
	}
}

// derivedMethods supplies the tables of structural types from the builtin
// prelude or from their components.
func (t *Type) derivedMethods() map[string][]*Method {
	switch d := t.data.(type) {
	case nil:
		switch t.kind {
		case BoolKind, NumberKind, StringKind, NullKind:
			return builtinMethods(t, t.kind.String(), nil)
		}
	case *ListData:
		return builtinMethods(t, "List", []*Type{d.Item})
	case *IterableData:
		return builtinMethods(t, "Iterable", []*Type{d.Item})
	case *PromiseData:
		return builtinMethods(t, "Promise", []*Type{d.Value})
	case *TupleData:
		return tupleMethods(t, d)
	case *LambdaData:
		return map[string][]*Method{"__call__": {lambdaCall(t, d)}}
	case *ValueData:
		return d.Base.Methods()
	case *TypeParameterData:
		if d.Bound != nil {
			return d.Bound.Methods()
		}
	case *UnionData:
		return unionMethods(t, d)
	case *ModuleData:
		return moduleMethods(t, d)
	}
	return nil
}

func lambdaCall(t *Type, d *LambdaData) *Method {
	params := make([]Parameter, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = Parameter{Identifier: "arg" + strconv.Itoa(i), Type: p}
	}
	return &Method{Identifier: "__call__", Parameters: params, ReturnType: d.Return, Owner: t}
}

// Tuples read like lists of their common element type.
func tupleMethods(t *Type, d *TupleData) map[string][]*Method {
	item := Never
	for _, it := range d.Items {
		item = item.GetCommonType(it)
	}
	table := map[string][]*Method{
		"__getitem__": {{
			Identifier: "__getitem__",
			Parameters: []Parameter{{Identifier: "index", Type: Number}},
			ReturnType: item,
			Owner:      t,
		}},
		"__get_size": {{
			Identifier:  "__get_size",
			ReturnType:  Number,
			InlineValue: NumberValue(len(d.Items)),
			Owner:       t,
		}},
		"__iter__": {{
			Identifier: "__iter__",
			ReturnType: item.Iterable(),
			Owner:      t,
		}},
		"__contains__": {{
			Identifier: "__contains__",
			Parameters: []Parameter{{Identifier: "item", Type: Any}},
			ReturnType: Bool,
			Owner:      t,
		}},
	}
	return table
}

// A union keeps the methods every member has at the same arity, returning
// the common type of the members' results.
func unionMethods(t *Type, d *UnionData) map[string][]*Method {
	table := map[string][]*Method{}
	first := d.Members[0]
	for name, overloads := range first.Methods() {
		for _, m := range overloads {
			ret := m.ReturnType
			shared := true
			for _, other := range d.Members[1:] {
				match := findArity(other.GetMethods(name), len(m.Parameters))
				if match == nil {
					shared = false
					break
				}
				ret = ret.GetCommonType(match.ReturnType)
			}
			if !shared {
				continue
			}
			table[name] = append(table[name], &Method{
				Identifier: name,
				Parameters: m.Parameters,
				ReturnType: ret,
				AliasFor:   m.AliasFor,
				Owner:      t,
			})
		}
	}
	return table
}

func findArity(methods []*Method, arity int) *Method {
	for _, m := range methods {
		if len(m.Parameters) == arity {
			return m
		}
	}
	return nil
}

// A module exposes each member through a getter, mutable members through a
// setter, and function members also directly as methods so that `mod.f(x)`
// resolves without a getter.
func moduleMethods(t *Type, d *ModuleData) map[string][]*Method {
	table := map[string][]*Method{}
	for _, name := range d.Order {
		v := d.Members[name]
		getter := "__get_" + name
		table[getter] = []*Method{{
			Identifier:     getter,
			ReturnType:     v.Type,
			SourceVariable: v,
			InlineValue:    v.Value,
			Owner:          t,
		}}
		if v.IsMutable {
			setter := "__set_" + name
			table[setter] = []*Method{{
				Identifier:     setter,
				Parameters:     []Parameter{{Identifier: "value", Type: v.Type}},
				ReturnType:     Null,
				SourceVariable: v,
				Owner:          t,
			}}
		}
		if v.Type.kind != FunctionKind {
			continue
		}
		for _, call := range v.Type.GetMethods("__call__") {
			alias := *call
			alias.Identifier = name
			alias.SourceVariable = v
			alias.Owner = t
			table[name] = append(table[name], &alias)
		}
	}
	return table
}

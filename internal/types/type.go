package types

import (
	"sort"
	"strings"
)

// Kind discriminates the payload carried by a Type.
type Kind int

const (
	AnyKind Kind = iota
	NeverKind
	NullKind
	BoolKind
	NumberKind
	StringKind
	NullableKind
	ListKind
	TupleKind
	FunctionKind
	LambdaKind
	ModuleKind
	ClassKind
	InterfaceKind
	EnumKind
	UnionKind
	ValueKind
	IterableKind
	PromiseKind
	TypeParameterKind
)

var kindNames = [...]string{
	AnyKind:           "Any",
	NeverKind:         "Never",
	NullKind:          "Null",
	BoolKind:          "Bool",
	NumberKind:        "Number",
	StringKind:        "String",
	NullableKind:      "nullable",
	ListKind:          "list",
	TupleKind:         "tuple",
	FunctionKind:      "function",
	LambdaKind:        "lambda",
	ModuleKind:        "module",
	ClassKind:         "class",
	InterfaceKind:     "interface",
	EnumKind:          "enum",
	UnionKind:         "union",
	ValueKind:         "value",
	IterableKind:      "iterable",
	PromiseKind:       "promise",
	TypeParameterKind: "type parameter",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Data is the closed set of payloads a Type may carry. Basic types carry
// none.
type Data interface {
	isData()
}

type NullableData struct{ Item *Type }
type ListData struct{ Item *Type }
type TupleData struct{ Items []*Type }
type IterableData struct{ Item *Type }
type PromiseData struct{ Value *Type }

// FunctionData is a named function. Its overloads live in the owning
// type's method table under __call__.
type FunctionData struct{ Name string }

type LambdaData struct {
	Parameters []*Type
	Return     *Type
}

// ModuleData describes a namespace: an imported module, the static side of
// a class or enum, or a name that denotes a type. TypeValue is non-nil when
// the module can be used in type position.
type ModuleData struct {
	Name      string
	Members   map[string]*Variable
	Order     []string
	TypeValue *Type
}

type ClassData struct {
	Name       string
	Base       *Type
	IsAbstract bool
}

type InterfaceData struct {
	Name  string
	Bases []*Type
}

type EnumData struct{ Name string }

type UnionData struct{ Members []*Type }

// ValueData is the type of exactly one scalar compile-time value.
type ValueData struct {
	Value Value
	Base  *Type
}

type TypeParameterData struct {
	Name  string
	Bound *Type
}

func (*NullableData) isData()      {}
func (*ListData) isData()          {}
func (*TupleData) isData()         {}
func (*IterableData) isData()      {}
func (*PromiseData) isData()       {}
func (*FunctionData) isData()      {}
func (*LambdaData) isData()        {}
func (*ModuleData) isData()        {}
func (*ClassData) isData()         {}
func (*InterfaceData) isData()     {}
func (*EnumData) isData()          {}
func (*UnionData) isData()         {}
func (*ValueData) isData()         {}
func (*TypeParameterData) isData() {}

// MethodInit builds a method table on first use. It receives the type the
// table belongs to so that methods can refer back to it.
type MethodInit func(self *Type) map[string][]*Method

// Type is interned: structurally equal derived types are the same pointer,
// so == is type equality for everything except nominal kinds (class,
// interface, enum, function, module, type parameter), which are unique per
// declaration.
type Type struct {
	id   int
	kind Kind
	data Data

	init     MethodInit
	methods  map[string][]*Method
	building bool

	list     *Type
	nullable *Type
	iterable *Type
	promise  *Type

	// implementors memoises IsAssignableTo for interface targets.
	implementors map[*Type]bool
}

var nextID int

func newType(kind Kind, data Data, init MethodInit) *Type {
	nextID++
	return &Type{id: nextID, kind: kind, data: data, init: init}
}

var (
	Any    = newType(AnyKind, nil, nil)
	Never  = newType(NeverKind, nil, nil)
	Null   = newType(NullKind, nil, nil)
	Bool   = newType(BoolKind, nil, nil)
	Number = newType(NumberKind, nil, nil)
	String = newType(StringKind, nil, nil)
)

func (t *Type) Kind() Kind { return t.kind }
func (t *Type) Data() Data { return t.data }
func (t *Type) ID() int    { return t.id }

func (t *Type) IsNullable() bool { return t.kind == NullableKind }

// NonNull strips one level of nullability; Null itself becomes Never.
func (t *Type) NonNull() *Type {
	switch t.kind {
	case NullableKind:
		return t.data.(*NullableData).Item
	case NullKind:
		return Never
	}
	return t
}

// Nullable returns T?. Any and nullable types are their own nullable form
// and Never? is Null.
func (t *Type) Nullable() *Type {
	switch t.kind {
	case AnyKind, NullKind, NullableKind:
		return t
	case NeverKind:
		return Null
	}
	if t.nullable == nil {
		t.nullable = newType(NullableKind, &NullableData{Item: t}, nil)
	}
	return t.nullable
}

func (t *Type) List() *Type {
	if t.list == nil {
		t.list = newType(ListKind, &ListData{Item: t}, nil)
	}
	return t.list
}

func (t *Type) Iterable() *Type {
	if t.iterable == nil {
		t.iterable = newType(IterableKind, &IterableData{Item: t}, nil)
	}
	return t.iterable
}

func (t *Type) Promise() *Type {
	if t.promise == nil {
		t.promise = newType(PromiseKind, &PromiseData{Value: t}, nil)
	}
	return t.promise
}

// trie interns types keyed by a sequence of component types.
type trie struct {
	next  map[*Type]*trie
	value *Type
	// returns is only used by lambdas, which key on parameters then return.
	returns map[*Type]*Type
}

func (n *trie) walk(path []*Type) *trie {
	for _, t := range path {
		if n.next == nil {
			n.next = make(map[*Type]*trie)
		}
		child, ok := n.next[t]
		if !ok {
			child = &trie{}
			n.next[t] = child
		}
		n = child
	}
	return n
}

var (
	tuples  = &trie{}
	lambdas = &trie{}
	unions  = &trie{}
	values  = map[any]*Type{}
)

func Tuple(items ...*Type) *Type {
	node := tuples.walk(items)
	if node.value == nil {
		node.value = newType(TupleKind, &TupleData{Items: append([]*Type(nil), items...)}, nil)
	}
	return node.value
}

func Lambda(parameters []*Type, ret *Type) *Type {
	node := lambdas.walk(parameters)
	if node.returns == nil {
		node.returns = make(map[*Type]*Type)
	}
	t, ok := node.returns[ret]
	if !ok {
		t = newType(LambdaKind, &LambdaData{Parameters: append([]*Type(nil), parameters...), Return: ret}, nil)
		node.returns[ret] = t
	}
	return t
}

// Union interns the union of members. Nested unions are flattened and
// duplicates dropped; fewer than two distinct members is a programming
// error.
func Union(members ...*Type) *Type {
	seen := map[*Type]bool{}
	flat := []*Type{}
	for _, m := range members {
		for _, leaf := range m.unionMembers() {
			if !seen[leaf] {
				seen[leaf] = true
				flat = append(flat, leaf)
			}
		}
	}
	if len(flat) < 2 {
		panic("types: a union needs at least two distinct members")
	}
	sort.Slice(flat, func(i, j int) bool { return flat[i].id < flat[j].id })

	node := unions.walk(flat)
	if node.value == nil {
		node.value = newType(UnionKind, &UnionData{Members: flat}, nil)
	}
	return node.value
}

func (t *Type) unionMembers() []*Type {
	if u, ok := t.data.(*UnionData); ok {
		return u.Members
	}
	return []*Type{t}
}

// ValueOf returns the singleton type of a scalar value. Null has no
// separate value type; lists and functions are not value types.
func ValueOf(v Value) *Type {
	var base *Type
	switch v.(type) {
	case NullValue:
		return Null
	case BoolValue:
		base = Bool
	case NumberValue:
		base = Number
	case StringValue:
		base = String
	default:
		return nil
	}
	key := valueKey(v)
	t, ok := values[key]
	if !ok {
		t = newType(ValueKind, &ValueData{Value: v, Base: base}, nil)
		values[key] = t
	}
	return t
}

type scalarKey struct {
	kind Kind
	repr string
}

func valueKey(v Value) any {
	switch v := v.(type) {
	case BoolValue:
		return scalarKey{BoolKind, Repr(v)}
	case NumberValue:
		return scalarKey{NumberKind, Repr(v)}
	case StringValue:
		return scalarKey{StringKind, string(v)}
	}
	return nil
}

// Widen maps a value type to its underlying basic type and leaves anything
// else untouched.
func (t *Type) Widen() *Type {
	if v, ok := t.data.(*ValueData); ok {
		return v.Base
	}
	return t
}

func NewFunction(name string, init MethodInit) *Type {
	return newType(FunctionKind, &FunctionData{Name: name}, init)
}

func NewModule(name string, typeValue *Type, init MethodInit) *Type {
	return newType(ModuleKind, &ModuleData{Name: name, Members: map[string]*Variable{}, TypeValue: typeValue}, init)
}

func NewClass(name string, base *Type, abstract bool, init MethodInit) *Type {
	return newType(ClassKind, &ClassData{Name: name, Base: base, IsAbstract: abstract}, init)
}

func NewInterface(name string, bases []*Type, init MethodInit) *Type {
	return newType(InterfaceKind, &InterfaceData{Name: name, Bases: bases}, init)
}

func NewEnum(name string, init MethodInit) *Type {
	return newType(EnumKind, &EnumData{Name: name}, init)
}

func NewTypeParameter(name string, bound *Type) *Type {
	return newType(TypeParameterKind, &TypeParameterData{Name: name, Bound: bound}, nil)
}

// AddMember adds a named member to a module type. It must be called before
// the module's method table is first used.
func (t *Type) AddMember(v *Variable) {
	m := t.data.(*ModuleData)
	if _, exists := m.Members[v.Identifier]; !exists {
		m.Order = append(m.Order, v.Identifier)
	}
	m.Members[v.Identifier] = v
}

// Member looks up a module member by name.
func (t *Type) Member(name string) (*Variable, bool) {
	m, ok := t.data.(*ModuleData)
	if !ok {
		return nil, false
	}
	v, ok := m.Members[name]
	return v, ok
}

// TypeValue returns the type a module denotes when used in type position.
func (t *Type) TypeValue() *Type {
	if m, ok := t.data.(*ModuleData); ok {
		return m.TypeValue
	}
	return nil
}

// SetTypeValue completes a typedef whose target is resolved after its name
// has been registered.
func (t *Type) SetTypeValue(v *Type) {
	t.data.(*ModuleData).TypeValue = v
}

// SetBase completes a class whose superclass is resolved after the class
// itself has been registered.
func (t *Type) SetBase(base *Type) {
	t.data.(*ClassData).Base = base
}

// SetBases is SetBase for interfaces.
func (t *Type) SetBases(bases []*Type) {
	t.data.(*InterfaceData).Bases = bases
}

// Base returns a class's superclass, or nil.
func (t *Type) Base() *Type {
	if c, ok := t.data.(*ClassData); ok {
		return c.Base
	}
	return nil
}

func (t *Type) IsAbstract() bool {
	c, ok := t.data.(*ClassData)
	return ok && c.IsAbstract
}

// Name is the declared name of nominal types and the display string of
// everything else.
func (t *Type) Name() string {
	switch d := t.data.(type) {
	case *FunctionData:
		return d.Name
	case *ModuleData:
		return d.Name
	case *ClassData:
		return d.Name
	case *InterfaceData:
		return d.Name
	case *EnumData:
		return d.Name
	case *TypeParameterData:
		return d.Name
	}
	return t.String()
}

func (t *Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	switch d := t.data.(type) {
	case nil:
		b.WriteString(t.kind.String())
	case *NullableData:
		if d.Item.kind == UnionKind || d.Item.kind == LambdaKind {
			b.WriteString("(")
			d.Item.write(b)
			b.WriteString(")")
		} else {
			d.Item.write(b)
		}
		b.WriteString("?")
	case *ListData:
		writeGeneric(b, "List", d.Item)
	case *TupleData:
		writeGeneric(b, "Tuple", d.Items...)
	case *IterableData:
		writeGeneric(b, "Iterable", d.Item)
	case *PromiseData:
		writeGeneric(b, "Promise", d.Value)
	case *LambdaData:
		b.WriteString("(")
		for i, p := range d.Parameters {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(b)
		}
		b.WriteString(") => ")
		d.Return.write(b)
	case *FunctionData:
		b.WriteString("function ")
		b.WriteString(d.Name)
	case *ModuleData:
		b.WriteString("module ")
		b.WriteString(d.Name)
	case *UnionData:
		for i, m := range d.Members {
			if i > 0 {
				b.WriteString(" | ")
			}
			if m.kind == LambdaKind {
				b.WriteString("(")
				m.write(b)
				b.WriteString(")")
			} else {
				m.write(b)
			}
		}
	case *ValueData:
		b.WriteString(Repr(d.Value))
	default:
		b.WriteString(t.Name())
	}
}

func writeGeneric(b *strings.Builder, name string, args ...*Type) {
	b.WriteString(name)
	b.WriteString("[")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
	b.WriteString("]")
}

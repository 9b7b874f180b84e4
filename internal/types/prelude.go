package types

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"yal/internal/ast"
	"yal/internal/builtins"
)

// The prelude language declares method tables and module members without
// bodies:
//
//	class List[T] { function map[R](f: (T) => R): List[R] }
//	function print(value: Any): Null
//	module math { const pi: Number = 3.14 }

type preludeFile struct {
	Decls []*preludeDecl `parser:"@@*"`
}

type preludeDecl struct {
	Class    *preludeClass    `parser:"  @@"`
	Function *preludeFunction `parser:"| @@"`
	Module   *preludeModule   `parser:"| @@"`
	Const    *preludeConst    `parser:"| @@"`
}

type preludeClass struct {
	Pos        lexer.Position
	Name       string           `parser:"\"class\" @Ident"`
	TypeParams []string         `parser:"( \"[\" @Ident ( \",\" @Ident )* \"]\" )?"`
	Members    []*preludeMember `parser:"\"{\" @@* \"}\""`
}

type preludeMember struct {
	Function *preludeFunction `parser:"  @@"`
	Alias    *preludeAlias    `parser:"| @@"`
}

type preludeAlias struct {
	Name   string `parser:"\"alias\" @Ident"`
	Target string `parser:"\"=\" @Ident"`
}

type preludeFunction struct {
	Pos        lexer.Position
	Name       string              `parser:"\"function\" @Ident"`
	TypeParams []*preludeTypeParam `parser:"( \"[\" @@ ( \",\" @@ )* \"]\" )?"`
	Params     []*preludeParam     `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
	Return     *preludeType        `parser:"\":\" @@"`
}

type preludeTypeParam struct {
	Name  string       `parser:"@Ident"`
	Bound *preludeType `parser:"( \":\" @@ )?"`
}

type preludeParam struct {
	Name    string          `parser:"@Ident"`
	Type    *preludeType    `parser:"\":\" @@"`
	Default *preludeLiteral `parser:"( \"=\" @@ )?"`
}

type preludeType struct {
	Pos     lexer.Position
	Members []*preludeTypeMember `parser:"@@ ( \"|\" @@ )*"`
}

type preludeTypeMember struct {
	Base     *preludeTypeBase `parser:"@@"`
	Nullable bool             `parser:"@\"?\"?"`
}

type preludeTypeBase struct {
	Lambda *preludeLambda `parser:"  @@"`
	Named  *preludeNamed  `parser:"| @@"`
}

type preludeLambda struct {
	Params []*preludeType `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
	Return *preludeType   `parser:"\"=>\" @@"`
}

type preludeNamed struct {
	Name string         `parser:"@Ident"`
	Args []*preludeType `parser:"( \"[\" @@ ( \",\" @@ )* \"]\" )?"`
}

type preludeLiteral struct {
	Number *float64 `parser:"  @Number"`
	String *string  `parser:"| @String"`
	True   bool     `parser:"| @\"true\""`
	False  bool     `parser:"| @\"false\""`
	Null   bool     `parser:"| @\"null\""`
}

type preludeModule struct {
	Name    string                 `parser:"\"module\" @Ident \"{\""`
	Members []*preludeModuleMember `parser:"@@* \"}\""`
}

type preludeModuleMember struct {
	Const    *preludeConst    `parser:"  @@"`
	Function *preludeFunction `parser:"| @@"`
}

type preludeConst struct {
	Pos   lexer.Position
	Name  string          `parser:"\"const\" @Ident"`
	Type  *preludeType    `parser:"\":\" @@"`
	Value *preludeLiteral `parser:"( \"=\" @@ )?"`
}

var preludeLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\n]*`, Action: nil},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`, Action: nil},
		{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Punct", Pattern: `=>|[{}\[\]():,=?|]`, Action: nil},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})

var preludeParser = participle.MustBuild[preludeFile](
	participle.Lexer(preludeLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Prelude is a parsed declaration file: class templates that supply the
// method tables of builtin types, global functions, and modules.
type Prelude struct {
	location  ast.Location
	name      string
	classes   map[string]*preludeClass
	functions map[string][]*preludeFunction
	order     []string
	consts    []*preludeConst
	modules   map[string]*preludeModule
}

// ParsePrelude parses declarations written in the prelude language.
func ParsePrelude(filename, source string) (*Prelude, error) {
	file, err := preludeParser.ParseString(filename, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	p := &Prelude{
		location:  ast.Location{URI: "prelude:" + filename},
		name:      filename,
		classes:   map[string]*preludeClass{},
		functions: map[string][]*preludeFunction{},
		modules:   map[string]*preludeModule{},
	}
	for _, d := range file.Decls {
		switch {
		case d.Class != nil:
			if _, dup := p.classes[d.Class.Name]; dup {
				return nil, fmt.Errorf("%s: class %s declared twice", d.Class.Pos, d.Class.Name)
			}
			p.classes[d.Class.Name] = d.Class
		case d.Function != nil:
			if _, seen := p.functions[d.Function.Name]; !seen {
				p.order = append(p.order, d.Function.Name)
			}
			p.functions[d.Function.Name] = append(p.functions[d.Function.Name], d.Function)
		case d.Module != nil:
			p.modules[d.Module.Name] = d.Module
		case d.Const != nil:
			p.consts = append(p.consts, d.Const)
		}
	}
	// Resolve every signature once up front so that mistakes surface here
	// rather than on first use of a method table.
	if err := p.check(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Prelude) check() error {
	for name, c := range p.classes {
		args := make([]*Type, len(c.TypeParams))
		for i, tp := range c.TypeParams {
			args[i] = NewTypeParameter(tp, nil)
		}
		if _, err := p.Methods(nil, name, args); err != nil {
			return err
		}
	}
	for _, overloads := range p.functions {
		for _, f := range overloads {
			if _, err := resolveFunction(f, nil, nil); err != nil {
				return err
			}
		}
	}
	for name := range p.modules {
		if _, err := p.Module(name); err != nil {
			return err
		}
	}
	return nil
}

// Methods builds the method table of self from the class template named
// class, binding the template's type parameters to args in order.
func (p *Prelude) Methods(self *Type, class string, args []*Type) (map[string][]*Method, error) {
	c, ok := p.classes[class]
	if !ok {
		return nil, nil
	}
	if len(args) != len(c.TypeParams) {
		return nil, fmt.Errorf("%s: class %s takes %d type arguments, got %d", c.Pos, class, len(c.TypeParams), len(args))
	}
	env := map[string]*Type{}
	for i, name := range c.TypeParams {
		env[name] = args[i]
	}
	table := map[string][]*Method{}
	for _, m := range c.Members {
		if m.Function == nil {
			continue
		}
		method, err := resolveFunction(m.Function, env, self)
		if err != nil {
			return nil, err
		}
		table[method.Identifier] = append(table[method.Identifier], method)
	}
	for _, m := range c.Members {
		if m.Alias == nil {
			continue
		}
		targets, ok := table[m.Alias.Target]
		if !ok {
			return nil, fmt.Errorf("%s: alias %s refers to unknown method %s", c.Pos, m.Alias.Name, m.Alias.Target)
		}
		for _, target := range targets {
			alias := *target
			alias.Identifier = m.Alias.Name
			alias.AliasFor = m.Alias.Target
			table[alias.Identifier] = append(table[alias.Identifier], &alias)
		}
	}
	return table, nil
}

// Globals returns a variable for each top level function and constant.
func (p *Prelude) Globals() []*Variable {
	var out []*Variable
	for _, name := range p.order {
		out = append(out, p.function(name, p.functions[name]))
	}
	for _, c := range p.consts {
		v, err := p.resolveConst(c)
		if err != nil {
			panic(err)
		}
		out = append(out, v)
	}
	return out
}

// Module builds the module type declared as `module name { ... }`.
func (p *Prelude) Module(name string) (*Type, error) {
	decl, ok := p.modules[name]
	if !ok {
		return nil, fmt.Errorf("%s: no module named %s", p.name, name)
	}
	mod := NewModule(name, nil, nil)
	grouped := map[string][]*preludeFunction{}
	var order []string
	for _, m := range decl.Members {
		switch {
		case m.Const != nil:
			v, err := p.resolveConst(m.Const)
			if err != nil {
				return nil, err
			}
			mod.AddMember(v)
		case m.Function != nil:
			if _, err := resolveFunction(m.Function, nil, nil); err != nil {
				return nil, err
			}
			if _, seen := grouped[m.Function.Name]; !seen {
				order = append(order, m.Function.Name)
			}
			grouped[m.Function.Name] = append(grouped[m.Function.Name], m.Function)
		}
	}
	for _, fn := range order {
		mod.AddMember(p.function(fn, grouped[fn]))
	}
	return mod, nil
}

// ModuleNames lists the modules the prelude declares.
func (p *Prelude) ModuleNames() []string {
	names := make([]string, 0, len(p.modules))
	for name := range p.modules {
		names = append(names, name)
	}
	return names
}

func (p *Prelude) function(name string, overloads []*preludeFunction) *Variable {
	fn := NewFunction(name, func(self *Type) map[string][]*Method {
		calls := make([]*Method, 0, len(overloads))
		for _, f := range overloads {
			m, err := resolveFunction(f, nil, self)
			if err != nil {
				panic(err)
			}
			m.Identifier = "__call__"
			calls = append(calls, m)
		}
		return map[string][]*Method{"__call__": calls}
	})
	return NewVariable(name, fn, false, FunctionValue{Name: name}, p.location)
}

func (p *Prelude) resolveConst(c *preludeConst) (*Variable, error) {
	t, err := resolvePreludeType(c.Type, nil)
	if err != nil {
		return nil, err
	}
	var value Value
	if c.Value != nil {
		value = c.Value.value()
	}
	return NewVariable(c.Name, t, false, value, p.location), nil
}

func resolveFunction(f *preludeFunction, outer map[string]*Type, owner *Type) (*Method, error) {
	env := map[string]*Type{}
	for k, v := range outer {
		env[k] = v
	}
	m := &Method{Identifier: f.Name, Owner: owner}
	for _, tp := range f.TypeParams {
		var bound *Type
		if tp.Bound != nil {
			b, err := resolvePreludeType(tp.Bound, env)
			if err != nil {
				return nil, err
			}
			bound = b
		}
		param := NewTypeParameter(tp.Name, bound)
		env[tp.Name] = param
		m.TypeParameters = append(m.TypeParameters, param)
	}
	for _, p := range f.Params {
		t, err := resolvePreludeType(p.Type, env)
		if err != nil {
			return nil, err
		}
		param := Parameter{Identifier: p.Name, Type: t}
		if p.Default != nil {
			param.HasDefault = true
			param.DefaultValue = p.Default.value()
		}
		m.Parameters = append(m.Parameters, param)
	}
	ret, err := resolvePreludeType(f.Return, env)
	if err != nil {
		return nil, err
	}
	m.ReturnType = ret
	m.IsControlFlow = ret == Never
	return m, nil
}

func resolvePreludeType(t *preludeType, env map[string]*Type) (*Type, error) {
	members := make([]*Type, 0, len(t.Members))
	for _, m := range t.Members {
		var base *Type
		var err error
		if m.Base.Lambda != nil {
			base, err = resolvePreludeLambda(m.Base.Lambda, env)
		} else {
			base, err = resolvePreludeNamed(m.Base.Named, env)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Pos, err)
		}
		if m.Nullable {
			base = base.Nullable()
		}
		if !containsType(members, base) {
			members = append(members, base)
		}
	}
	if len(members) == 1 {
		return members[0], nil
	}
	return Union(members...), nil
}

func containsType(list []*Type, t *Type) bool {
	for _, x := range list {
		if x == t {
			return true
		}
	}
	return false
}

func resolvePreludeLambda(l *preludeLambda, env map[string]*Type) (*Type, error) {
	params := make([]*Type, len(l.Params))
	for i, p := range l.Params {
		t, err := resolvePreludeType(p, env)
		if err != nil {
			return nil, err
		}
		params[i] = t
	}
	ret, err := resolvePreludeType(l.Return, env)
	if err != nil {
		return nil, err
	}
	return Lambda(params, ret), nil
}

func resolvePreludeNamed(n *preludeNamed, env map[string]*Type) (*Type, error) {
	if t, ok := env[n.Name]; ok && len(n.Args) == 0 {
		return t, nil
	}
	args := make([]*Type, len(n.Args))
	for i, a := range n.Args {
		t, err := resolvePreludeType(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return Builtin(n.Name, args)
}

// Builtin resolves the name of a builtin type applied to args.
func Builtin(name string, args []*Type) (*Type, error) {
	if !builtins.IsBuiltinType(name) {
		return nil, fmt.Errorf("unknown type %s", name)
	}
	if want := builtins.Arity(name); want >= 0 && want != len(args) {
		if want == 0 {
			return nil, fmt.Errorf("type %s does not accept type arguments", name)
		}
		return nil, fmt.Errorf("type %s takes %d type arguments, got %d", name, want, len(args))
	}
	switch builtins.BuiltinType(name) {
	case builtins.Any:
		return Any, nil
	case builtins.Never:
		return Never, nil
	case builtins.Null:
		return Null, nil
	case builtins.Bool:
		return Bool, nil
	case builtins.Number:
		return Number, nil
	case builtins.String:
		return String, nil
	case builtins.List:
		return args[0].List(), nil
	case builtins.Iterable:
		return args[0].Iterable(), nil
	case builtins.Promise:
		return args[0].Promise(), nil
	case builtins.Tuple:
		return Tuple(args...), nil
	}
	return nil, fmt.Errorf("unknown type %s", name)
}

func (l *preludeLiteral) value() Value {
	switch {
	case l.Number != nil:
		return NumberValue(*l.Number)
	case l.String != nil:
		return StringValue(*l.String)
	case l.True:
		return BoolValue(true)
	case l.False:
		return BoolValue(false)
	}
	return NullValue{}
}

var builtinPrelude = sync.OnceValue(func() *Prelude {
	p, err := ParsePrelude("prelude.yali", builtins.Prelude)
	if err != nil {
		panic(err)
	}
	return p
})

var globals = sync.OnceValue(func() []*Variable {
	return builtinPrelude().Globals()
})

// Globals are the variables in scope in every file.
func Globals() []*Variable {
	return globals()
}

func builtinMethods(t *Type, class string, args []*Type) map[string][]*Method {
	table, err := builtinPrelude().Methods(t, class, args)
	if err != nil {
		panic(err)
	}
	return table
}

package semantic

import (
	"sort"

	"yal/internal/types"
)

// Scope is one level of name bindings. Function bodies, loops and blocks
// each open a new scope whose parent is the enclosing one.
type Scope struct {
	variables map[string]*types.Variable
	parent    *Scope

	// function is shared by every scope inside one function body.
	function *functionContext
	loop     bool
	// narrowed maps a narrowed copy back to the declared variable.
	narrowed map[*types.Variable]*types.Variable
}

// functionContext collects what a function body's return statements
// produce so that an omitted return type can be inferred.
type functionContext struct {
	name     string
	declared *types.Type
	expected *types.Type
	returns  []*types.Type
	thisType *types.Type
}

func NewScope(parent *Scope) *Scope {
	s := &Scope{variables: make(map[string]*types.Variable), parent: parent}
	if parent != nil {
		s.function = parent.function
	}
	return s
}

func newFunctionScope(parent *Scope, fn *functionContext) *Scope {
	s := NewScope(parent)
	s.function = fn
	return s
}

func newLoopScope(parent *Scope) *Scope {
	s := NewScope(parent)
	s.loop = true
	return s
}

func (s *Scope) Define(v *types.Variable) {
	s.variables[v.Identifier] = v
}

// DefineAs binds v under a name other than its own, as `from m import x as
// y` does.
func (s *Scope) DefineAs(name string, v *types.Variable) {
	s.variables[name] = v
}

func (s *Scope) Lookup(name string) *types.Variable {
	if v, ok := s.variables[name]; ok {
		return v
	}
	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	return nil
}

func (s *Scope) LookupLocal(name string) *types.Variable {
	return s.variables[name]
}

// InLoop reports whether break and continue are valid here. Loops outside
// the current function do not count.
func (s *Scope) InLoop() bool {
	for cur := s; cur != nil && cur.function == s.function; cur = cur.parent {
		if cur.loop {
			return true
		}
	}
	return false
}

// narrow shadows the variable bound to name with a copy of type t.
// References through the copy still resolve to the declared variable.
func (s *Scope) narrow(name string, v *types.Variable, t *types.Type) {
	if v.Type == t {
		return
	}
	original := s.original(v)
	copied := *original
	copied.Type = t
	if s.narrowed == nil {
		s.narrowed = make(map[*types.Variable]*types.Variable)
	}
	s.narrowed[&copied] = original
	s.variables[name] = &copied
}

// original undoes narrowing.
func (s *Scope) original(v *types.Variable) *types.Variable {
	for cur := s; cur != nil; cur = cur.parent {
		if orig, ok := cur.narrowed[v]; ok {
			return orig
		}
	}
	return v
}

// Names lists every name visible from s, innermost binding first.
func (s *Scope) Names() []string {
	return keys(s.Visible())
}

// Visible returns each visible name with the binding that wins.
func (s *Scope) Visible() map[string]*types.Variable {
	out := map[string]*types.Variable{}
	for cur := s; cur != nil; cur = cur.parent {
		for name, v := range cur.variables {
			if _, shadowed := out[name]; !shadowed {
				out[name] = v
			}
		}
	}
	return out
}

func keys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package semantic

import (
	"strings"
	"sync"

	"yal/internal/ast"
	"yal/internal/builtins"
	"yal/internal/types"
)

const builtinURI = "prelude:builtins"

// builtinVariables are the names every file starts with: the non-generic
// builtin types, usable both in type position and as values, and the
// prelude's global functions.
var builtinVariables = sync.OnceValue(func() []*types.Variable {
	var vars []*types.Variable
	for _, name := range []builtins.BuiltinType{
		builtins.Any, builtins.Never, builtins.Null,
		builtins.Bool, builtins.Number, builtins.String,
	} {
		t, err := types.Builtin(string(name), nil)
		if err != nil {
			panic(err)
		}
		static := types.NewModule(string(name), t, nil)
		vars = append(vars, types.NewVariable(string(name), static, false, nil, ast.Location{URI: builtinURI}))
	}
	return append(vars, types.Globals()...)
})

// printFunction is the type of the global print, whose calls are recorded
// as print instances.
var printFunction = sync.OnceValue(func() *types.Type {
	for _, v := range types.Globals() {
		if v.Identifier == "print" {
			return v.Type
		}
	}
	return nil
})

func newRootScope() *Scope {
	root := NewScope(nil)
	for _, v := range builtinVariables() {
		root.Define(v)
	}
	return root
}

// IsBuiltin reports whether v comes from the prelude rather than a source
// file.
func IsBuiltin(v *types.Variable) bool {
	return strings.HasPrefix(v.Location.URI, "prelude:")
}

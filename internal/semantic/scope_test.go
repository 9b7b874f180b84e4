package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yal/internal/ast"
	"yal/internal/types"
)

func variable(name string, t *types.Type) *types.Variable {
	return types.NewVariable(name, t, true, nil, ast.Location{})
}

func TestScopeLookup(t *testing.T) {
	outer := NewScope(nil)
	a := variable("a", types.Number)
	outer.Define(a)

	inner := NewScope(outer)
	shadow := variable("a", types.String)
	inner.Define(shadow)
	inner.DefineAs("alias", a)

	assert.Same(t, shadow, inner.Lookup("a"))
	assert.Same(t, a, outer.Lookup("a"))
	assert.Same(t, a, inner.Lookup("alias"))
	assert.Nil(t, inner.LookupLocal("missing"))
	assert.Nil(t, inner.Lookup("missing"))

	assert.Equal(t, []string{"a", "alias"}, inner.Names())
	assert.Same(t, shadow, inner.Visible()["a"])
}

func TestScopeInLoop(t *testing.T) {
	root := NewScope(nil)
	assert.False(t, root.InLoop())

	loop := newLoopScope(root)
	block := NewScope(loop)
	assert.True(t, block.InLoop())

	fn := newFunctionScope(block, &functionContext{name: "f"})
	assert.False(t, fn.InLoop(), "a function body does not inherit the outer loop")
	assert.True(t, newLoopScope(fn).InLoop())
}

func TestScopeNarrowing(t *testing.T) {
	outer := NewScope(nil)
	x := variable("x", types.Number.Nullable())
	outer.Define(x)

	inner := NewScope(outer)
	inner.narrow("x", x, types.Number)
	narrowed := inner.Lookup("x")
	require.NotSame(t, x, narrowed)
	assert.Same(t, types.Number, narrowed.Type)
	assert.Same(t, x, inner.original(narrowed))
	assert.Same(t, x, outer.Lookup("x"))

	deeper := NewScope(inner)
	deeper.narrow("x", narrowed, types.Number)
	assert.Same(t, narrowed, deeper.Lookup("x"), "narrowing to the same type is a no-op")
	assert.Same(t, x, deeper.original(narrowed))
	assert.Same(t, x, deeper.original(x))
}

package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yal/internal/types"
)

func labels(completions []Completion) []string {
	out := make([]string, len(completions))
	for i, c := range completions {
		out[i] = c.Label
	}
	return out
}

func TestReferencesAndDefinition(t *testing.T) {
	source := "var count = 1\ncount = count + 1\nprint(count)"
	ann := annotate(t, source)
	require.Empty(t, ann.Errors)

	count := ann.Lookup("count")
	refs := ann.ReferencesTo(count)
	require.Len(t, refs, 4)
	assert.True(t, refs[0].IsDeclaration)
	for _, r := range refs[1:] {
		assert.False(t, r.IsDeclaration)
	}

	loc, ok := ann.DefinitionAt(at(t, source, "count", 2))
	require.True(t, ok)
	assert.Equal(t, "test.yal", loc.URI)
	assert.Equal(t, at(t, source, "count", 0).Index, loc.Range.Start.Index)

	_, ok = ann.DefinitionAt(at(t, source, "print", 0))
	assert.False(t, ok, "builtins have no source location")
}

func TestCompoundAttributeAssignmentReferencesOnce(t *testing.T) {
	source := "class Box {\n  var n: Number = 0\n}\nconst box = Box()\nvar i = 0\nconst xs = [1, 2]\nbox.n += 1\nxs[i] += 1"
	ann := annotate(t, source)
	require.Empty(t, ann.Errors)

	assert.Len(t, ann.ReferencesTo(ann.Lookup("box")), 2)
	assert.Len(t, ann.ReferencesTo(ann.Lookup("xs")), 2)
	assert.Len(t, ann.ReferencesTo(ann.Lookup("i")), 2)
}

func TestNarrowedReferencesPointAtDeclaration(t *testing.T) {
	source := `function f(x: Number?): Number {
  if x != null {
    return x
  }
  return 0
}`
	ann := annotate(t, source)
	require.Empty(t, ann.Errors)

	ref := ann.ReferenceAt(at(t, source, "x", 2))
	require.NotNil(t, ref)
	assert.Same(t, types.Number.Nullable(), ref.Variable.Type)
	assert.Len(t, ann.ReferencesTo(ref.Variable), 3)
}

func TestHover(t *testing.T) {
	source := `var count: Number = 1
const greeting = "hi"
function add(a: Number, b: Number = 1): Number {
  return a + b
}
class Point {
  var x: Number = 0
}
import math
const all = [count, greeting, add, Point, math]`
	ann := annotate(t, source)

	tests := []struct {
		needle string
		n      int
		want   string
	}{
		{"count", 1, "var count: Number"},
		{"greeting", 1, `const greeting: "hi" = "hi"`},
		{"add", 1, "function add(a: Number, b: Number = 1): Number"},
		{"Point", 1, "class Point"},
		{"math", 1, "module math"},
	}
	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			text, rng, ok := ann.HoverAt(at(t, source, tt.needle, tt.n))
			require.True(t, ok)
			assert.Equal(t, tt.want, text)
			assert.Equal(t, at(t, source, tt.needle, tt.n).Index, rng.Start.Index)
		})
	}

	_, _, ok := ann.HoverAt(at(t, source, "return", 0))
	assert.False(t, ok)
}

func TestMemberReferences(t *testing.T) {
	source := `class Point {
  var x: Number = 0
  function norm(): Number {
    return this.x
  }
}
const p = Point()
p.x = p.norm()`
	ann := annotate(t, source)
	require.Empty(t, ann.Errors)

	ref := ann.ReferenceAt(at(t, source, "x", 2))
	require.NotNil(t, ref)
	assert.Equal(t, "x", ref.Variable.Identifier)
	assert.Len(t, ann.ReferencesTo(ref.Variable), 3)

	ref = ann.ReferenceAt(at(t, source, "norm", 1))
	require.NotNil(t, ref)
	assert.Equal(t, at(t, source, "norm", 0).Index, ref.Variable.Location.Range.Start.Index)
}

func TestScopeCompletions(t *testing.T) {
	source := `var alpha = 1
function f(beta: Number) {
  print(beta)
}
`
	ann := annotate(t, source)
	require.Empty(t, ann.Errors)

	inside := labels(ann.CompletionsAt(at(t, source, "print", 0)))
	assert.Contains(t, inside, "alpha")
	assert.Contains(t, inside, "beta")
	assert.Contains(t, inside, "print")
	assert.Equal(t, "while", inside[len(inside)-1], "keywords sort last")

	outside := labels(ann.CompletionsAt(at(t, source, "var", 0)))
	assert.Contains(t, outside, "alpha")
	assert.NotContains(t, outside, "beta")
}

func TestMemberCompletions(t *testing.T) {
	source := `const s = "abc"
const n = s.size
import math
const r = math.pi`
	ann := annotate(t, source)
	require.Empty(t, ann.Errors)

	members := labels(ann.CompletionsAt(at(t, source, "size", 0)))
	assert.Contains(t, members, "size")
	assert.Contains(t, members, "upper")
	assert.NotContains(t, members, "__add__")

	completions := ann.CompletionsAt(at(t, source, "pi", 0))
	var sqrt, pi *Completion
	for i := range completions {
		switch completions[i].Label {
		case "sqrt":
			sqrt = &completions[i]
		case "pi":
			pi = &completions[i]
		}
	}
	require.NotNil(t, sqrt)
	require.NotNil(t, pi)
	assert.Equal(t, CompletionFunction, sqrt.Kind)
	assert.Equal(t, CompletionConstant, pi.Kind)
}

func TestPrintInstances(t *testing.T) {
	ann := annotate(t, `var x = 1
print(1 + 2)
print("hi")
print(x)
print([1, "a"])`)
	require.Empty(t, ann.Errors)

	values := make([]string, len(ann.PrintInstances))
	for i, p := range ann.PrintInstances {
		values[i] = p.Value
	}
	assert.Equal(t, []string{"3", `"hi"`, `[1, "a"]`}, values)
}

func TestCallInstances(t *testing.T) {
	source := `function add(a: Number, b: Number): Number {
  return a + b
}
add(1, 2)`
	ann := annotate(t, source)
	require.Empty(t, ann.Errors)

	call := ann.CallAt(at(t, source, "2", 0))
	require.NotNil(t, call)
	assert.Equal(t, "__call__", call.Method.Identifier)
	require.Len(t, call.Arguments, 2)
	assert.Equal(t, at(t, source, "1", 0).Index, call.Arguments[0].Start.Index)

	assert.Nil(t, ann.CallAt(at(t, source, "return", 0)))
}

func TestClassify(t *testing.T) {
	ann := annotate(t, `var v = 1
const c = 2
function f() {
}
class K {
}
interface I {
}
enum E { A }
import math`)

	tests := map[string]CompletionKind{
		"v":    CompletionVariable,
		"c":    CompletionConstant,
		"f":    CompletionFunction,
		"K":    CompletionClass,
		"I":    CompletionInterface,
		"E":    CompletionEnum,
		"A":    CompletionEnumMember,
		"math": CompletionModule,
	}
	for name, kind := range tests {
		v := ann.Lookup(name)
		require.NotNil(t, v, name)
		assert.Equal(t, kind, Classify(v), name)
	}
}

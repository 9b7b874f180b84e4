package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yal/internal/errors"
)

func TestFlowSequence(t *testing.T) {
	assert.Equal(t, Jumps, Continues.sequence(Jumps))
	assert.Equal(t, Jumps, Jumps.sequence(Continues))
	assert.Equal(t, MaybeJumps, MaybeJumps.sequence(Continues))
	assert.Equal(t, Jumps, MaybeJumps.sequence(Jumps))

	assert.Equal(t, Jumps, branch(Jumps, Jumps))
	assert.Equal(t, Continues, branch(Continues, Continues))
	assert.Equal(t, MaybeJumps, branch(Jumps, Continues))

	assert.Equal(t, Jumps, loopFlow(Continues, true, false))
	assert.Equal(t, Continues, loopFlow(Continues, true, true))
	assert.Equal(t, MaybeJumps, loopFlow(Jumps, false, true))
	assert.Equal(t, "maybe jumps", MaybeJumps.String())
}

func TestUnreachableCode(t *testing.T) {
	source := `function f(): Number {
  return 1
  print(2)
  print(3)
}`
	ann := annotate(t, source)

	require.Len(t, ann.Errors, 1)
	d := ann.Errors[0]
	assert.Equal(t, errors.WarningUnreachableCode, d.Code)
	assert.Equal(t, errors.Warning, d.Level)
	assert.Equal(t, at(t, source, "print(2)", 0).Index, d.Location.Range.Start.Index)
	assert.False(t, ann.HasErrors())
}

func TestUnreachableAfterInfiniteLoop(t *testing.T) {
	ann := annotate(t, "while true {\n}\nprint(1)")
	assert.Equal(t, []string{errors.WarningUnreachableCode}, codes(ann))
	assert.Equal(t, Jumps, ann.FlowOf(ann.File.Statements[0]))
}

func TestMissingReturn(t *testing.T) {
	tests := []struct {
		name   string
		source string
		codes  []string
	}{
		{"falls off the end", "function f(): Number {\n  print(1)\n}", []string{errors.ErrorMissingReturn}},
		{"one branch returns", "function f(x: Bool): Number {\n  if x {\n    return 1\n  }\n}", []string{errors.ErrorMissingReturn}},
		{"both branches return", "function f(x: Bool): Number {\n  if x {\n    return 1\n  } else {\n    return 2\n  }\n}", nil},
		{"infinite loop", "function f(): Number {\n  while true {\n  }\n}", nil},
		{"loop with break", "function f(): Number {\n  while true {\n    break\n  }\n}", []string{errors.ErrorMissingReturn}},
		{"nullable return", "function f(): Number? {\n  print(1)\n}", nil},
		{"ends in fail", "function f(x: Number): Number {\n  if x > 0 {\n    return x\n  }\n  fail(\"negative\")\n}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ann := annotate(t, tt.source)
			if tt.codes == nil {
				assert.Empty(t, ann.Errors)
			} else {
				assert.Equal(t, tt.codes, codes(ann))
			}
		})
	}
}

func TestInvalidReturnType(t *testing.T) {
	ann := annotate(t, "function f(): Number {\n  return \"one\"\n}")
	assert.Equal(t, []string{errors.ErrorInvalidReturnType}, codes(ann))
}

func TestInferredReturnIncludesFallthrough(t *testing.T) {
	ann := annotate(t, `function maybe(x: Bool) {
  if x {
    return 1
  }
}
const m = maybe(true)`)

	assert.Empty(t, ann.Errors)
	m := ann.Lookup("m")
	require.NotNil(t, m)
	assert.True(t, m.Type.IsNullable())
}

func TestJumpsOutsideLoops(t *testing.T) {
	tests := map[string]string{
		"break":    errors.ErrorJumpOutsideLoop,
		"continue": errors.ErrorJumpOutsideLoop,
		"return 1": errors.ErrorReturnOutsideFunction,
	}
	for source, code := range tests {
		ann := annotate(t, source)
		assert.Equal(t, []string{code}, codes(ann), source)
	}
}

func TestLoopInsideFunctionInsideLoop(t *testing.T) {
	ann := annotate(t, `while true {
  const f = () => {
    break
  }
  break
}`)

	assert.Equal(t, []string{errors.ErrorJumpOutsideLoop}, codes(ann))
}

func TestForLoops(t *testing.T) {
	ann := annotate(t, `var total = 0
for n in [1, 2, 3] {
  total += n
}
for c in "abc" {
  print(c.upper())
}`)
	assert.Empty(t, ann.Errors)

	ann = annotate(t, "for n in 5 {\n}")
	assert.Equal(t, []string{errors.ErrorNotIterable}, codes(ann))
}

func TestLoopVariableIsConstant(t *testing.T) {
	ann := annotate(t, "for n in [1] {\n  n = 2\n}")
	assert.Equal(t, []string{errors.ErrorAssignToConstant}, codes(ann))
}

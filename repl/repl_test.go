package repl

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yal/internal/parser"
)

func newSession() (*Session, *bytes.Buffer) {
	color.NoColor = true
	var out bytes.Buffer
	return NewSession(&out, parser.Options{}), &out
}

func TestEvalPrintsFoldedValues(t *testing.T) {
	s, out := newSession()

	s.Feed("const x = 2")
	s.Feed("x * 5")
	assert.Contains(t, out.String(), "10: Number")
	assert.Len(t, s.history, 2)
}

func TestEvalDropsInputWithErrors(t *testing.T) {
	s, out := newSession()

	s.Feed("var y: String = 1")
	assert.Contains(t, out.String(), "error[E0300]")
	assert.Empty(t, s.history)

	out.Reset()
	s.Feed(`var y: String = "ok"`)
	assert.Empty(t, out.String())
	assert.Len(t, s.history, 1)
}

func TestFeedBuffersUnbalancedLines(t *testing.T) {
	s, out := newSession()

	assert.False(t, s.Feed("function inc(a: Number): Number {"))
	assert.Len(t, s.pending, 1)
	s.Feed("  return a + 1")
	s.Feed("}")
	assert.Empty(t, s.pending)
	require.Len(t, s.history, 1)

	s.Feed("inc(1)")
	assert.Contains(t, out.String(), "Number")
}

func TestPrintInstances(t *testing.T) {
	s, out := newSession()
	s.Feed(`print("hi")`)
	assert.Contains(t, out.String(), "hi")
}

func TestCommands(t *testing.T) {
	s, out := newSession()

	s.Feed(":ast")
	assert.True(t, s.ShowAST)
	s.Feed("const x = 2")
	assert.Contains(t, out.String(), "Declaration(const, x")

	s.Feed(":tokens")
	out.Reset()
	s.Feed("x")
	assert.Contains(t, out.String(), "IDENTIFIER x")

	s.Feed(":reset")
	assert.Empty(t, s.history)

	s.Feed(":dialect c")
	assert.Equal(t, parser.CStyleDialect, s.Options.Dialect)

	assert.True(t, s.Feed(":quit"))
}

func TestCompletions(t *testing.T) {
	s, _ := newSession()
	s.Feed(`const greeting = "hi"`)

	assert.Contains(t, s.Completions("gre"), "eting")
	assert.Contains(t, s.Completions("whi"), "le")
	assert.Empty(t, s.Completions("zzz"))
}

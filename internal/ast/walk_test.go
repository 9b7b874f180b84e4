package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectVisitsIdentifiersInOrder(t *testing.T) {
	file := &File{Statements: []Statement{
		&Declaration{
			Identifier: ident("x"),
			Value: &MethodCall{
				Owner:      ident("a"),
				Identifier: ident("__add__"),
				Arguments:  []Expression{ident("b")},
			},
		},
		&ExpressionStatement{Expression: &Assignment{Target: ident("y"), Value: ident("x")}},
	}}

	var names []string
	Inspect(file, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})

	assert.Equal(t, []string{"x", "a", "__add__", "b", "y", "x"}, names)
}

func TestInspectCanPrune(t *testing.T) {
	fn := &FunctionDisplay{
		Identifier: ident("f"),
		Body:       &Block{Statements: []Statement{&Return{Value: ident("hidden")}}},
	}

	var seen []NodeType
	Inspect(fn, func(n Node) bool {
		seen = append(seen, n.NodeType())
		_, isBlock := n.(*Block)
		return !isBlock
	})

	require.Contains(t, seen, BLOCK)
	assert.NotContains(t, seen, RETURN)
}

func TestRangeHelpers(t *testing.T) {
	a := Range{Start: Position{Index: 2}, End: Position{Index: 5}}
	b := Range{Start: Position{Index: 4}, End: Position{Index: 9}}

	joined := Join(a, b)
	assert.Equal(t, 2, joined.Start.Index)
	assert.Equal(t, 9, joined.End.Index)
	assert.True(t, a.Contains(Position{Index: 5}))
	assert.False(t, a.Contains(Position{Index: 6}))
	assert.False(t, a.IsEmpty())
}

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeTypeStrings(t *testing.T) {
	for nt := ILLEGAL; nt <= IMPORT_NAME; nt++ {
		assert.NotEmpty(t, nodeTypeNames[nt], "NodeType %d has no name", int(nt))
		assert.Equal(t, nodeTypeNames[nt], nt.String())
	}
	assert.Equal(t, "NodeType(?)", NodeType(-1).String())
	assert.Equal(t, "NodeType(?)", (IMPORT_NAME + 1).String())
}

func TestNodeTypesMatchNodes(t *testing.T) {
	tests := []struct {
		node Node
		want NodeType
	}{
		{&File{}, FILE},
		{&NullLiteral{}, NULL_LITERAL},
		{&Identifier{Name: "x"}, IDENTIFIER},
		{&MethodCall{}, METHOD_CALL},
		{&Declaration{}, DECLARATION},
		{&ClassDefinition{}, CLASS_DEFINITION},
		{&Typename{}, TYPENAME},
		{&UnionTypeDisplay{}, UNION_TYPE_DISPLAY},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.NodeType())
		})
	}
}

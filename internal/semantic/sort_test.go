package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yal/internal/ast"
)

func names(defs []definition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.name
	}
	return out
}

func TestSortDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []definition
		want []string
	}{
		{
			name: "independent keep source order",
			defs: []definition{{name: "A"}, {name: "B"}, {name: "C"}},
			want: []string{"A", "B", "C"},
		},
		{
			name: "dependencies first",
			defs: []definition{
				{name: "Dog", deps: []string{"Animal"}},
				{name: "Animal", deps: []string{"Named"}},
				{name: "Named"},
			},
			want: []string{"Named", "Animal", "Dog"},
		},
		{
			name: "unknown and self references are ignored",
			defs: []definition{
				{name: "Node", deps: []string{"Node", "String"}},
				{name: "Tree", deps: []string{"Node", "Node"}},
			},
			want: []string{"Node", "Tree"},
		},
		{
			name: "cycles fall back to source order",
			defs: []definition{
				{name: "A", deps: []string{"B"}},
				{name: "B", deps: []string{"A"}},
				{name: "C", deps: []string{"A"}},
			},
			want: []string{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(sortDefinitions(tt.defs)))
		})
	}
}

func TestTypeNames(t *testing.T) {
	ident := func(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

	// Animal | List[Named?] | (mod.Ext) => Result
	expr := &ast.UnionTypeDisplay{Types: []ast.TypeExpression{
		&ast.Typename{Identifier: ident("Animal")},
		&ast.SpecialTypeDisplay{Identifier: ident("List"), Arguments: []ast.TypeExpression{
			&ast.NullableTypeDisplay{Type: &ast.Typename{Identifier: ident("Named")}},
		}},
		&ast.FunctionTypeDisplay{
			Parameters: []ast.TypeExpression{&ast.Typename{Qualifier: ident("mod"), Identifier: ident("Ext")}},
			ReturnType: &ast.Typename{Identifier: ident("Result")},
		},
	}}

	assert.Equal(t, []string{"Animal", "Named", "Result"}, typeNames(expr))
	assert.Nil(t, typeNames(nil))
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yal/internal/ast"
)

func TestParseProgram(t *testing.T) {
	source := `
import math
from strings import join as joinAll

# A point in the plane.
class Point {
  var x: Number = 0
  var y: Number = 0

  function length(): Number {
    return math.sqrt(this.x * this.x + this.y * this.y)
  }
}

interface Measurable {
  function length(): Number
}

function total(items: List[Measurable]): Number {
  var sum = 0
  for item in items {
    sum += item.length()
  }
  return sum
}

const origin = Point()
print(total([origin]))
export total
`
	file := Parse("file:///program.yal", source)
	require.Empty(t, file.Errors)
	require.Len(t, file.Statements, 8)

	kinds := make([]ast.NodeType, len(file.Statements))
	for i, stmt := range file.Statements {
		kinds[i] = stmt.NodeType()
	}
	assert.Equal(t, []ast.NodeType{
		ast.IMPORT_AS, ast.FROM_IMPORT, ast.CLASS_DEFINITION, ast.INTERFACE_DEFINITION,
		ast.DECLARATION, ast.DECLARATION, ast.EXPRESSION_STATEMENT, ast.EXPORT_AS,
	}, kinds)

	class := file.Statements[2].(*ast.ClassDefinition)
	assert.Equal(t, "A point in the plane.", class.Comment)
	assert.Len(t, class.Members, 3)

	assert.Equal(t, "file:///program.yal", file.URI())
	assert.Equal(t, 0, file.Location.Range.Start.Line)
}

func TestParseIndentedProgram(t *testing.T) {
	source := `function f(x: Number): Number:
    if x > 0:
        return x
    else:
        return -x

class P:
    var x: Number = 0

while true: break
`
	file := ParseWithOptions("test.yal", source, Options{Dialect: Lang3Dialect})
	require.Empty(t, file.Errors)
	assert.Equal(t, []string{
		"Declaration(const, f, FunctionDisplay(f, [x: Number], Number, Block([If(MethodCall(x, __gt__, [0]), Block([Return(x)]), Block([Return(MethodCall(x, __neg__))]))])))",
		"ClassDefinition(P, [Declaration(var, x, Number, 0)])",
		"While(true, Block([Break()]))",
	}, formatStatements(file.Statements))
}

func TestIndentedSingleLineElse(t *testing.T) {
	source := "if a: b\nelse: c\n"
	file := ParseWithOptions("test.yal", source, Options{Dialect: Lang3Dialect})
	require.Empty(t, file.Errors)
	assert.Equal(t, []string{
		"If(a, Block([ExpressionStatement(b)]), Block([ExpressionStatement(c)]))",
	}, formatStatements(file.Statements))
}

func TestIndentedBracesStillWork(t *testing.T) {
	source := "var f = (x) => {\n  return x\n}\nf(1)\n"
	file := ParseWithOptions("test.yal", source, Options{Dialect: Lang3Dialect})
	require.Empty(t, file.Errors)
	assert.Len(t, file.Statements, 2)
}

func TestRecoveryContinuesAfterBadStatement(t *testing.T) {
	file := Parse("test.yal", "var = 1\nvar y = 2")
	require.Len(t, file.Errors, 1)
	assert.Equal(t, "expected variable name (found '=')", file.Errors[0].Message)
	assert.Equal(t, 0, file.Errors[0].Location.Range.Start.Line)
	assert.Equal(t, []string{"Declaration(var, y, 2)"}, formatStatements(file.Statements))
}

func TestRecoveryInsideBlock(t *testing.T) {
	file := Parse("test.yal", "function f() {\n  x = (1 +\n  return 2\n}\nvar z = 3")
	require.NotEmpty(t, file.Errors)

	last := file.Statements[len(file.Statements)-1]
	assert.Equal(t, "Declaration(var, z, 3)", last.String())
}

func TestRecoverySkipsBracketedGarbage(t *testing.T) {
	file := Parse("test.yal", "f(1 2 (3\n4))\ng()")
	require.NotEmpty(t, file.Errors)
	require.NotEmpty(t, file.Statements)
	assert.Equal(t, "ExpressionStatement(MethodCall(g, __call__))", file.Statements[len(file.Statements)-1].String())
}

func TestLexicalErrorsAreSyntaxErrors(t *testing.T) {
	file := Parse("test.yal", `"abc`)
	require.Len(t, file.Errors, 1)
	assert.Equal(t, "unterminated string literal", file.Errors[0].Message)
	assert.Equal(t, []string{`ExpressionStatement("abc")`}, formatStatements(file.Statements))
}

func TestErrorsAreSortedByPosition(t *testing.T) {
	file := Parse("test.yal", "var = 1\nx $ y")
	require.Len(t, file.Errors, 3)
	for i := 1; i < len(file.Errors); i++ {
		assert.False(t, file.Errors[i].Location.Range.Start.Before(file.Errors[i-1].Location.Range.Start))
	}
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		")", "}}}", "(((", "[[[", "{", "var", "var x:", "const = ", "class {", "class A extends {",
		"abstract", "abstract function", "interface", "enum E {", "enum E { 1 }", "typedef", "typedef X =",
		"import", "import a.", "from a import", "from import x", "export", "if", "if x", "if x {", "else",
		"while", "for", "for x", "for x in", "return return", "break break", "a.", "a[", "f(", "[1,", "{a:",
		"function", "function f", "function f(", "function (", "x = = 2", "native", "native function",
		"(a) =>", "(a): =>", "@@@", "\"\"\"", "'", "a ? b :", "x as", "x not", "static var x", "~", "not",
		"\x00\x01", "1e", "0b2", "a.b.c = ", "(,)", "[,]", "{,}", "=>", "class A { static }",
	}
	for _, dialect := range []Dialect{DefaultDialect, CStyleDialect, Lang3Dialect} {
		for _, input := range inputs {
			assert.NotPanics(t, func() {
				file := ParseWithOptions("test.yal", input, Options{Dialect: dialect})
				require.NotNil(t, file)
			}, "input %q", input)
		}
	}

	for _, input := range []string{"if x:", "class A:\n", "def:\n  x\n y", "a:\n\tb\n    c"} {
		assert.NotPanics(t, func() {
			ParseWithOptions("test.yal", input, Options{Dialect: Lang3Dialect})
		}, "input %q", input)
	}
}

func TestParserOverTokens(t *testing.T) {
	tokens := Lex("var a = 1")
	p := NewParser("test.yal", tokens, DefaultDialect)
	file := p.ParseFile()

	assert.Empty(t, p.Errors())
	assert.Len(t, file.Statements, 1)
}

func TestParseSourceKeepsTokens(t *testing.T) {
	file, tokens := ParseSource("test.yal", "var a = 1 # one", Options{})
	require.Len(t, file.Statements, 1)
	assert.Equal(t, []TokenType{VAR, IDENTIFIER, EQUAL, NUMBER, COMMENT, EOF}, tokenTypes(tokens))

	assert.Equal(t, 1, TokenAt(tokens, ast.Position{Index: 4}))
	assert.Equal(t, 3, TokenAt(tokens, ast.Position{Index: 8}))
	assert.Equal(t, -1, TokenAt(tokens, ast.Position{Index: 9}))
	assert.Equal(t, 4, TokenAt(tokens, ast.Position{Index: 12}))
}

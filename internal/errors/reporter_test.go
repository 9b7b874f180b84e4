package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yal/internal/ast"
)

func loc(line, column, length int) ast.Location {
	start := ast.Position{Line: line, Column: column}
	end := ast.Position{Line: line, Column: column + length}
	return ast.Location{URI: "test.yal", Range: ast.Range{Start: start, End: end}}
}

func TestErrorReporter(t *testing.T) {
	source := `function area(w: Number) {
    const x = unknownVar
    return x
}`

	reporter := NewErrorReporter("test.yal", source)

	err := UndefinedVariable("unknownVar", loc(1, 14, 10), []string{"knownVar", "anotherVar"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable")
	assert.Contains(t, formatted, "unknownVar")

	// one-indexed for humans
	assert.Contains(t, formatted, "test.yal:2:15")
	assert.Contains(t, formatted, strings.Repeat("^", 10))

	assert.Contains(t, formatted, "    return x")
	assert.Contains(t, formatted, "function area")
}

func TestUndefinedVariableError(t *testing.T) {
	err := UndefinedVariable("balace", loc(0, 4, 6), []string{"balance"})
	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Equal(t, Error, err.Level)
	assert.Contains(t, err.Message, "balace")
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'balance'")
	assert.Equal(t, "balance", err.Suggestions[0].Replacement)

	err = UndefinedVariable("xyz", loc(0, 4, 3), nil)
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "make sure the variable is declared")
}

func TestUndefinedMemberError(t *testing.T) {
	err := UndefinedMember("List[Number]", "__get_sise", loc(0, 0, 4), []string{"__get_size", "__add__", "push"})
	assert.Equal(t, ErrorUndefinedMember, err.Code)
	assert.Equal(t, "List[Number] has no attribute 'sise'", err.Message)
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'size'")

	err = UndefinedMember("Bool", "__add__", loc(0, 0, 1), nil)
	assert.Equal(t, "Bool has no operator '+'", err.Message)
}

func TestDisplayMember(t *testing.T) {
	assert.Equal(t, "attribute 'x'", DisplayMember("__get_x"))
	assert.Equal(t, "assignable attribute 'x'", DisplayMember("__set_x"))
	assert.Equal(t, "call operator", DisplayMember("__call__"))
	assert.Equal(t, "index operator", DisplayMember("__getitem__"))
	assert.Equal(t, "operator '**'", DisplayMember("__pow__"))
	assert.Equal(t, "method 'push'", DisplayMember("push"))
}

func TestTypeMismatchError(t *testing.T) {
	err := TypeMismatch("Number", "String", loc(0, 0, 1))
	assert.Equal(t, ErrorTypeMismatch, err.Code)
	assert.Equal(t, "type mismatch: expected Number, found String", err.Message)
	assert.Empty(t, err.Suggestions)

	err = TypeMismatch("Number", "Number?", loc(0, 0, 1))
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "against null")
}

func TestFromSyntaxError(t *testing.T) {
	l := loc(0, 0, 1)
	assert.Equal(t, ErrorSyntax, FromSyntaxError(&ast.SyntaxError{Location: l, Message: "expected ')'"}).Code)
	assert.Equal(t, ErrorUnterminated, FromSyntaxError(&ast.SyntaxError{Location: l, Message: "unterminated string literal"}).Code)
	assert.Equal(t, ErrorUnexpectedCharacter, FromSyntaxError(&ast.SyntaxError{Location: l, Message: `unexpected character "$"`}).Code)
}

func TestWarningFormatting(t *testing.T) {
	reporter := NewErrorReporter("test.yal", "return\nprint(1)")

	formatted := reporter.FormatError(UnreachableCode(loc(1, 0, 8)))

	assert.Contains(t, formatted, "warning[W0601]")
	assert.Contains(t, formatted, "unreachable code")
	assert.Contains(t, formatted, "remove this code")
}

func TestFormatAll(t *testing.T) {
	reporter := NewErrorReporter("test.yal", "x\ny")
	out := reporter.FormatAll([]Diagnostic{
		UndefinedVariable("x", loc(0, 0, 1), nil),
		UnreachableCode(loc(1, 0, 1)),
	})
	assert.Contains(t, out, "test.yal: 1 error, 1 warning")
	assert.Empty(t, reporter.FormatAll(nil))
}

func TestErrorMarkerCreation(t *testing.T) {
	reporter := NewErrorReporter("test.yal", `var variable = value`)

	marker := reporter.createMarker(4, 8, Error)

	assert.Equal(t, 4, strings.Count(marker, " "))
	assert.Equal(t, 8, strings.Count(marker, "^"))

	assert.Equal(t, 1, strings.Count(reporter.createMarker(0, 0, Warning), "^"))
}

func TestMultiLineSpan(t *testing.T) {
	reporter := NewErrorReporter("test.yal", "const x = [\n  1]")
	r := ast.Range{Start: ast.Position{Line: 0, Column: 10}, End: ast.Position{Line: 1, Column: 4}}
	assert.Equal(t, 1, reporter.spanLength(r, "const x = ["))
}

func TestSortAndCount(t *testing.T) {
	diags := []Diagnostic{
		UnreachableCode(ast.Location{URI: "b.yal"}),
		UndefinedVariable("y", ast.Location{URI: "a.yal", Range: ast.Range{Start: ast.Position{Index: 9}}}, nil),
		UndefinedVariable("x", ast.Location{URI: "a.yal", Range: ast.Range{Start: ast.Position{Index: 2}}}, nil),
	}
	Sort(diags)
	assert.Contains(t, diags[0].Message, "'x'")
	assert.Contains(t, diags[1].Message, "'y'")
	assert.Equal(t, "b.yal", diags[2].Location.URI)
	assert.Equal(t, 2, CountErrors(diags))
}

func TestDiagnosticString(t *testing.T) {
	d := AssignToConstant("pi", loc(2, 4, 2))
	assert.Equal(t, "test.yal:3:5: error[E0401]: cannot assign to constant 'pi'", d.String())
}

func TestCodes(t *testing.T) {
	assert.True(t, IsWarning(WarningUnreachableCode))
	assert.False(t, IsWarning(ErrorMissingReturn))
	assert.Equal(t, "Type", GetErrorCategory(ErrorTypeMismatch))
	assert.Equal(t, "Import/Module", GetErrorCategory(ErrorModuleNotFound))
	assert.Equal(t, "Warning", GetErrorCategory(WarningUnreachableCode))
	assert.Equal(t, "Unknown", GetErrorCategory("X"))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E9999"))
	assert.NotEqual(t, "Unknown error code", GetErrorDescription(ErrorNotIterable))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNames(t *testing.T) {
	candidates := []string{"balance", "amount", "total", "balanced", "xyz"}

	similar := SimilarNames("balace", candidates)
	assert.Equal(t, []string{"balance", "balanced"}, similar)

	assert.Empty(t, SimilarNames("verydifferent", candidates))
	assert.Empty(t, SimilarNames("total", candidates))
}

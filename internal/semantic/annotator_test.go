package semantic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yal/internal/ast"
	"yal/internal/errors"
	"yal/internal/parser"
	"yal/internal/types"
)

func parseFile(t *testing.T, source string) *ast.File {
	t.Helper()
	file := parser.Parse("test.yal", source)
	require.Empty(t, file.Errors, "source should parse cleanly")
	return file
}

func annotate(t *testing.T, source string) *Annotation {
	t.Helper()
	return AnnotateFile(parseFile(t, source))
}

func codes(ann *Annotation) []string {
	out := make([]string, len(ann.Errors))
	for i, d := range ann.Errors {
		out[i] = d.Code
	}
	return out
}

// at returns the position of the nth occurrence (from 0) of needle. The
// sources in these tests are ASCII, so byte offsets equal UTF-16 indices.
func at(t *testing.T, source, needle string, n int) ast.Position {
	t.Helper()
	offset := 0
	for i := 0; ; i++ {
		j := strings.Index(source[offset:], needle)
		require.GreaterOrEqual(t, j, 0, "needle %q not found", needle)
		if i == n {
			return ast.Position{Index: offset + j, Offset: offset + j}
		}
		offset += j + len(needle)
	}
}

func TestDeclarationWithMatchingType(t *testing.T) {
	ann := annotate(t, "var x: Number = 5")

	assert.Empty(t, ann.Errors)
	x := ann.Lookup("x")
	require.NotNil(t, x)
	assert.Same(t, types.Number, x.Type)
	assert.True(t, x.IsMutable)
	assert.Nil(t, x.Value)
}

func TestDeclarationTypeMismatch(t *testing.T) {
	source := "var y: String = 5"
	ann := annotate(t, source)

	require.Len(t, ann.Errors, 1)
	d := ann.Errors[0]
	assert.Equal(t, errors.ErrorTypeMismatch, d.Code)
	assert.Equal(t, errors.Error, d.Level)
	assert.Equal(t, "test.yal", d.Location.URI)
	assert.Equal(t, at(t, source, "5", 0).Index, d.Location.Range.Start.Index)

	y := ann.Lookup("y")
	require.NotNil(t, y)
	assert.Same(t, types.String, y.Type)
}

func TestConstantsCarryValues(t *testing.T) {
	ann := annotate(t, `const a = 1 + 2
const b = "x" * 3
const c = a > 2
const d = not c
const e = -a`)

	assert.Empty(t, ann.Errors)
	tests := []struct {
		name  string
		value types.Value
	}{
		{"a", types.NumberValue(3)},
		{"b", types.StringValue("xxx")},
		{"c", types.BoolValue(true)},
		{"d", types.BoolValue(false)},
		{"e", types.NumberValue(-3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ann.Lookup(tt.name)
			require.NotNil(t, v)
			assert.Equal(t, tt.value, v.Value)
			assert.Same(t, types.ValueOf(tt.value), v.Type)
		})
	}
}

func TestMutableDeclarationsWiden(t *testing.T) {
	ann := annotate(t, "var n = 1\nn = 2\nvar s = \"a\"\ns += \"b\"")

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.Number, ann.Lookup("n").Type)
	assert.Same(t, types.String, ann.Lookup("s").Type)
}

func TestAssignToConstant(t *testing.T) {
	ann := annotate(t, "const c = 1\nc = 2")
	assert.Contains(t, codes(ann), errors.ErrorAssignToConstant)
}

func TestUndefinedVariable(t *testing.T) {
	ann := annotate(t, "var count = 1\nprint(cuont)")

	require.Len(t, ann.Errors, 1)
	assert.Equal(t, errors.ErrorUndefinedVariable, ann.Errors[0].Code)
	assert.Contains(t, ann.Errors[0].Message, "cuont")
}

func TestErrorsAreReportedOnce(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"var y: Number = undefinedName", errors.ErrorUndefinedVariable},
		{"var y: Number = undefinedName + 1", errors.ErrorUndefinedVariable},
		{"function f(n: Number) {\n}\nf(nope)", errors.ErrorUndefinedVariable},
		{"var y: Number = (1).nope", errors.ErrorUndefinedMember},
		{"function g(): Number {\n  return missing\n}", errors.ErrorUndefinedVariable},
		{"for x in missing {\n}", errors.ErrorUndefinedVariable},
	}
	for _, tt := range tests {
		ann := annotate(t, tt.source)
		assert.Equal(t, []string{tt.want}, codes(ann), tt.source)
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	ann := annotate(t, "var a = 1\nvar a = 2")
	assert.Equal(t, []string{errors.ErrorDuplicateDeclaration}, codes(ann))
}

func TestListInference(t *testing.T) {
	ann := annotate(t, `const xs = [1, 2, 3]
const empty = []
const mixed = [1, "a"]
var pair: Tuple[Number, String] = [1, "a"]
var names: List[String] = []`)

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.Number.List(), ann.Lookup("xs").Type)
	assert.Same(t, types.Any.List(), ann.Lookup("empty").Type)
	assert.Same(t, types.Union(types.Number, types.String).List(), ann.Lookup("mixed").Type)
	assert.Same(t, types.Tuple(types.Number, types.String), ann.Lookup("pair").Type)
	assert.Same(t, types.String.List(), ann.Lookup("names").Type)
	assert.Equal(t, types.ListValue{types.NumberValue(1), types.NumberValue(2), types.NumberValue(3)}, ann.Lookup("xs").Value)
}

func TestListItemMismatch(t *testing.T) {
	source := `var xs: List[Number] = [1, "a"]`
	ann := annotate(t, source)

	require.Len(t, ann.Errors, 1)
	assert.Equal(t, errors.ErrorTypeMismatch, ann.Errors[0].Code)
	assert.Equal(t, at(t, source, `"a"`, 0).Index, ann.Errors[0].Location.Range.Start.Index)
}

func TestFunctionReturnInference(t *testing.T) {
	ann := annotate(t, `function double(x: Number) {
  return x * 2
}
const y = double(4)`)

	assert.Empty(t, ann.Errors)
	calls := ann.Lookup("double").Type.GetMethods("__call__")
	require.Len(t, calls, 1)
	assert.Same(t, types.Number, calls[0].ReturnType)
	assert.Same(t, types.Number, ann.Lookup("y").Type)
}

func TestFunctionsAreHoisted(t *testing.T) {
	ann := annotate(t, `const z = later(1)
function later(x: Number): String {
  return str(x)
}`)

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.String, ann.Lookup("z").Type)
}

func TestWrongArgumentCount(t *testing.T) {
	ann := annotate(t, `function one(x: Number): Number {
  return x
}
one(1, 2)`)

	assert.Equal(t, []string{errors.ErrorInvalidArguments}, codes(ann))
}

func TestNotCallable(t *testing.T) {
	ann := annotate(t, "const n = 1\nn()")
	assert.Equal(t, []string{errors.ErrorNotCallable}, codes(ann))
}

func TestUndefinedMember(t *testing.T) {
	ann := annotate(t, `const s = "abc"
const u = s.uper()`)

	require.Len(t, ann.Errors, 1)
	assert.Equal(t, errors.ErrorUndefinedMember, ann.Errors[0].Code)
}

func TestGenericFunction(t *testing.T) {
	ann := annotate(t, `function map[T, U](items: List[T], fn: (T) => U): List[U] {
  var out: List[U] = []
  for item in items {
    out = out + [fn(item)]
  }
  return out
}
const doubled = map([1, 2, 3], (x) => x * 2)
const labels = map(["a"], (s) => s.size)`)

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.Number.List(), ann.Lookup("doubled").Type)
	assert.Same(t, types.Number.List(), ann.Lookup("labels").Type)
}

func TestGenericBuiltinMethod(t *testing.T) {
	ann := annotate(t, "const names = [1, 2].map((n) => str(n))")

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.String.List(), ann.Lookup("names").Type)
}

func TestLambdaContextualTyping(t *testing.T) {
	ann := annotate(t, "var f: (Number) => String = (n) => str(n + 1)")

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.Lambda([]*types.Type{types.Number}, types.String), ann.Lookup("f").Type)
	n := ann.Lookup("n")
	require.NotNil(t, n)
	assert.Same(t, types.Number, n.Type)
}

func TestRecordDisplay(t *testing.T) {
	ann := annotate(t, `const r = {x: 1, label: "a"}
const rx = r.x
r.label = "b"`)

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.Number, ann.Lookup("rx").Type)
	assert.Equal(t, types.ClassKind, ann.Lookup("r").Type.Kind())
}

func TestConditionalExpression(t *testing.T) {
	ann := annotate(t, `const picked = true ? 1 : "a"
var flag = false
var either = flag ? 1 : "a"`)

	assert.Empty(t, ann.Errors)
	assert.Equal(t, types.NumberValue(1), ann.Lookup("picked").Value)
	assert.Same(t, types.Union(types.Number, types.String), ann.Lookup("either").Type)
}

func TestNullNarrowing(t *testing.T) {
	ann := annotate(t, `function inc(x: Number?): Number {
  if x != null {
    return x + 1
  }
  return 0
}
function upper(s: String?): String {
  if s == null {
    return ""
  }
  return s.upper()
}
function both(a: Number?, b: Number?): Number {
  if a != null and b != null {
    return a + b
  }
  return 0
}`)

	assert.Empty(t, ann.Errors)
}

func TestNullableReceiver(t *testing.T) {
	ann := annotate(t, `function inc(x: Number?): Number {
  return x + 1
}`)

	assert.Equal(t, []string{errors.ErrorNullableReceiver}, codes(ann))
}

func TestAssignmentUndoesNarrowing(t *testing.T) {
	ann := annotate(t, `var x: Number? = 1
if x != null {
  x = null
  print(x + 1)
}`)

	assert.Equal(t, []string{errors.ErrorNullableReceiver}, codes(ann))
}

func TestTypeAssertion(t *testing.T) {
	ann := annotate(t, `var a: Any = 1
const n = a as Number
const bad = "s" as Number`)

	assert.Same(t, types.Number, ann.Lookup("n").Type)
	assert.Equal(t, []string{errors.ErrorTypeMismatch}, codes(ann))
}

func TestUndefinedType(t *testing.T) {
	ann := annotate(t, `var q: Strng = "a"`)

	require.Len(t, ann.Errors, 1)
	assert.Equal(t, errors.ErrorUndefinedType, ann.Errors[0].Code)
	assert.Same(t, types.Any, ann.Lookup("q").Type)
}

func TestSyntaxErrorsBecomeDiagnostics(t *testing.T) {
	file := parser.Parse("test.yal", "var = 1\nvar ok = 2")
	require.NotEmpty(t, file.Errors)

	ann := AnnotateFile(file)
	assert.Contains(t, codes(ann), errors.ErrorSyntax)
	assert.NotNil(t, ann.Lookup("ok"))
}

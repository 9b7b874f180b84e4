package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yal/internal/errors"
	"yal/internal/types"
)

func TestClassConstruction(t *testing.T) {
	ann := annotate(t, `class Point {
  var x: Number = 0
  var y: Number = 0
  function sum(): Number {
    return this.x + this.y
  }
}
const p = Point(1, 2)
const s = p.sum()
p.x = 5`)

	assert.Empty(t, ann.Errors)
	p := ann.Lookup("p")
	require.NotNil(t, p)
	assert.Equal(t, types.ClassKind, p.Type.Kind())
	assert.Equal(t, "Point", p.Type.Name())
	assert.Same(t, types.Number, ann.Lookup("s").Type)

	calls := ann.Lookup("Point").Type.GetMethods("__call__")
	require.Len(t, calls, 1)
	assert.Equal(t, "(x: Number = 0, y: Number = 0): Point", calls[0].Signature())
}

func TestConstructorArgumentMismatch(t *testing.T) {
	ann := annotate(t, `class Point {
  var x: Number = 0
}
const p = Point("a")`)

	assert.Equal(t, []string{errors.ErrorTypeMismatch}, codes(ann))
}

func TestConstFieldsHaveNoSetter(t *testing.T) {
	ann := annotate(t, `class Box {
  const size: Number = 1
}
const b = Box()
b.size = 2`)

	assert.Equal(t, []string{errors.ErrorUndefinedMember}, codes(ann))
}

func TestInheritance(t *testing.T) {
	ann := annotate(t, `class Dog extends Animal {
  var tricks: Number = 0
}
class Animal {
  var name: String = ""
  function speak(): String {
    return this.name
  }
}
const d = Dog("rex", 2)
const sound = d.speak()
const a: Animal = d`)

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.String, ann.Lookup("sound").Type)

	dog := ann.Lookup("d").Type
	require.NotNil(t, dog.Base())
	assert.Equal(t, "Animal", dog.Base().Name())
}

func TestInvalidBases(t *testing.T) {
	ann := annotate(t, "class A extends Number {\n}")
	assert.Equal(t, []string{errors.ErrorInvalidBase}, codes(ann))

	ann = annotate(t, "class A extends B {\n}\nclass B extends A {\n}")
	assert.Equal(t, []string{errors.ErrorInvalidBase}, codes(ann))
}

func TestCyclicInterfaceBases(t *testing.T) {
	ann := annotate(t, `interface A extends B {
}
interface B extends A {
}
interface C {
  function size(): Number
}
function take(a: A) {
  const c: C = a
}`)

	assert.Equal(t, []string{errors.ErrorInvalidBase, errors.ErrorMissingInterfaceMember}, codes(ann))
}

func TestAbstractInstantiation(t *testing.T) {
	ann := annotate(t, `abstract class Shape {
  function area(): Number
}
const s = Shape()`)

	assert.Equal(t, []string{errors.ErrorAbstractInstantiation}, codes(ann))
}

func TestAbstractMembersMustBeImplemented(t *testing.T) {
	source := `abstract class S {
  function f(): Number
}
class K extends S {
}
var s: S = K()`
	ann := annotate(t, source)
	require.Equal(t, []string{errors.ErrorMissingBody}, codes(ann))
	assert.Contains(t, ann.Errors[0].Message, "'f' of S")
	assert.Equal(t, at(t, source, "K", 0).Index, ann.Errors[0].Location.Range.Start.Index)

	ann = annotate(t, `abstract class S {
  function f(): Number
}
abstract class T extends S {
}
class K extends T {
  function f(): Number {
    return 1
  }
}
var s: S = K()`)
	assert.Empty(t, ann.Errors)

	ann = annotate(t, `class K {
  function f(): Number
}
function g(): Number`)
	assert.Equal(t, []string{errors.ErrorMissingBody, errors.ErrorMissingBody}, codes(ann))
}

func TestStaticMembers(t *testing.T) {
	ann := annotate(t, `class Counter {
  static function zero(): Number {
    return 0
  }
}
const z = Counter.zero()`)

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.Number, ann.Lookup("z").Type)
}

func TestStructuralInterfaces(t *testing.T) {
	ann := annotate(t, `interface Named {
  function name(): String
}
class Person {
  var first: String = ""
  function name(): String {
    return this.first
  }
}
class Rock {
  var weight: Number = 1
}
const p: Named = Person()
const r: Named = Rock()
const n = p.name()`)

	require.Len(t, ann.Errors, 1)
	assert.Equal(t, errors.ErrorMissingInterfaceMember, ann.Errors[0].Code)
	assert.Contains(t, ann.Errors[0].Message, "name")
	assert.Same(t, types.String, ann.Lookup("n").Type)
}

func TestInterfaceProperties(t *testing.T) {
	ann := annotate(t, `interface HasSize {
  const size: Number
}
class Bag {
  var size: Number = 0
}
const b: HasSize = Bag()
const s = b.size`)

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.Number, ann.Lookup("s").Type)
}

func TestEnums(t *testing.T) {
	ann := annotate(t, `enum Color { RED, GREEN = "green", BLUE = 3 }
const c = Color.RED
var d: Color = Color.BLUE`)

	assert.Empty(t, ann.Errors)
	assert.Equal(t, types.StringValue("RED"), ann.Lookup("RED").Value)
	assert.Equal(t, types.StringValue("green"), ann.Lookup("GREEN").Value)
	assert.Equal(t, types.NumberValue(3), ann.Lookup("BLUE").Value)

	c := ann.Lookup("c")
	assert.Equal(t, types.EnumKind, c.Type.Kind())
	assert.Equal(t, types.StringValue("RED"), c.Value)
	assert.Same(t, c.Type, ann.Lookup("d").Type)
}

func TestDuplicateEnumMember(t *testing.T) {
	ann := annotate(t, "enum E { A, A }")
	assert.Equal(t, []string{errors.ErrorDuplicateDeclaration}, codes(ann))
}

func TestTypedefs(t *testing.T) {
	ann := annotate(t, `var id: Id = 1
id = "x"
typedef Id = Number | String
typedef Handler = (Id) => Null
var h: Handler = (x) => print(x)`)

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.Union(types.Number, types.String), ann.Lookup("id").Type)
	assert.Same(t, types.Lambda([]*types.Type{types.Union(types.Number, types.String)}, types.Null), ann.Lookup("h").Type)
}

func TestCyclicTypedefs(t *testing.T) {
	source := "typedef A = A | Number"
	ann := annotate(t, source)
	require.Equal(t, []string{errors.ErrorCyclicType}, codes(ann))
	assert.Equal(t, at(t, source, "A", 0).Index, ann.Errors[0].Location.Range.Start.Index)

	source = "typedef A = B\ntypedef B = A\nvar x: B = 1"
	ann = annotate(t, source)
	require.Equal(t, []string{errors.ErrorCyclicType}, codes(ann))
	assert.Contains(t, ann.Errors[0].Message, "'A'")

	ann = annotate(t, "class C extends T {\n}\ntypedef T = C")
	assert.Equal(t, []string{errors.ErrorCyclicType}, codes(ann))
}

func TestValueTypes(t *testing.T) {
	ann := annotate(t, `typedef Mode = "read" | "write"
var m: Mode = "read"
m = "append"`)

	assert.Equal(t, []string{errors.ErrorTypeMismatch}, codes(ann))
}

func TestNotAType(t *testing.T) {
	ann := annotate(t, "const n = 1\nvar x: n = 1")
	assert.Equal(t, []string{errors.ErrorNotAType}, codes(ann))
}

func TestGenericTypesNeedArguments(t *testing.T) {
	ann := annotate(t, "var xs: List = []")
	assert.Equal(t, []string{errors.ErrorInvalidTypeArguments}, codes(ann))
}

func TestStandardImports(t *testing.T) {
	ann := annotate(t, `import math
from strings import join, repeat as times
const r = math.sqrt(16)
const s = join(["a", "b"], "-")
const t = times("ab", 2)
const tau = math.pi * 2`)

	assert.Empty(t, ann.Errors)
	assert.Same(t, types.Number, ann.Lookup("r").Type)
	assert.Same(t, types.String, ann.Lookup("s").Type)
	assert.Same(t, types.String, ann.Lookup("t").Type)
	assert.Equal(t, types.NumberValue(2*3.141592653589793), ann.Lookup("tau").Value)
	assert.Equal(t, map[string]string{"math": "math", "join": "strings", "times": "strings"}, ann.ImportMap)
}

func TestImportErrors(t *testing.T) {
	ann := annotate(t, "import nothing.here\nconst x = here.y")
	assert.Equal(t, []string{errors.ErrorModuleNotFound}, codes(ann))

	ann = annotate(t, "from math import nope")
	assert.Equal(t, []string{errors.ErrorNotExported}, codes(ann))
}

func TestCustomImporter(t *testing.T) {
	lib := annotate(t, "const answer = 42\nexport answer as value")
	require.Empty(t, lib.Errors)

	importer := types.MapImporter{"lib": lib.Module("lib")}
	file := parseFile(t, "from lib import value\nconst v = value + 1")
	ann := AnnotateFileWithOptions(file, Options{Importer: importer})

	assert.Empty(t, ann.Errors)
	assert.Equal(t, types.NumberValue(43), ann.Lookup("v").Value)
}

func TestExports(t *testing.T) {
	ann := annotate(t, `export helper
function helper(): Number {
  return 1
}
const a = 1
export a as b
export missing`)

	assert.Equal(t, []string{errors.ErrorInvalidExport}, codes(ann))
	assert.Same(t, ann.Lookup("helper"), ann.ExportMap["helper"])
	assert.Same(t, ann.Lookup("a"), ann.ExportMap["b"])

	mod := ann.Module("lib")
	_, ok := mod.Member("b")
	assert.True(t, ok)
}

func TestExportsOnlyAtTopLevel(t *testing.T) {
	ann := annotate(t, "const a = 1\nif true {\n  export a\n}")
	assert.Equal(t, []string{errors.ErrorInvalidExport}, codes(ann))
}

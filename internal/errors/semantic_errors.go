package errors

import (
	"fmt"
	"sort"
	"strings"

	"yal/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating diagnostics with suggestions
type SemanticErrorBuilder struct {
	d Diagnostic
}

// NewSemanticError creates a new error builder
func NewSemanticError(code, message string, loc ast.Location) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{d: Diagnostic{Level: Error, Code: code, Message: message, Location: loc}}
}

// NewSemanticWarning creates a new warning builder
func NewSemanticWarning(code, message string, loc ast.Location) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{d: Diagnostic{Level: Warning, Code: code, Message: message, Location: loc}}
}

// WithSuggestion adds a suggestion to the diagnostic
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, r ast.Range) *SemanticErrorBuilder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Range:       r,
	})
	return b
}

// WithNote adds a note to the diagnostic
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

// WithHelp adds help text to the diagnostic
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.d.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *SemanticErrorBuilder) Build() Diagnostic {
	return b.d
}

func (b *SemanticErrorBuilder) withSimilar(name string, candidates []string) *SemanticErrorBuilder {
	similar := SimilarNames(name, candidates)
	switch len(similar) {
	case 0:
	case 1:
		b.WithReplacement(fmt.Sprintf("did you mean '%s'?", similar[0]), similar[0], b.d.Location.Range)
	default:
		b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}
	return b
}

// FromSyntaxError classifies a parser or scanner problem.
func FromSyntaxError(e *ast.SyntaxError) Diagnostic {
	code := ErrorSyntax
	switch {
	case strings.HasPrefix(e.Message, "unexpected character"):
		code = ErrorUnexpectedCharacter
	case strings.HasPrefix(e.Message, "unterminated"):
		code = ErrorUnterminated
	}
	return NewSemanticError(code, e.Message, e.Location).Build()
}

// UndefinedVariable creates an error for undefined variables with suggestions
func UndefinedVariable(name string, loc ast.Location, inScope []string) Diagnostic {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), loc).
		withSimilar(name, inScope)
	if len(builder.d.Suggestions) == 0 {
		builder.WithSuggestion("make sure the variable is declared before use").
			WithNote("variables are declared with 'var', 'const' or 'function'")
	}
	return builder.Build()
}

// UndefinedType creates an error for an unknown name in a type expression
func UndefinedType(name string, loc ast.Location, known []string) Diagnostic {
	return NewSemanticError(ErrorUndefinedType, fmt.Sprintf("undefined type '%s'", name), loc).
		withSimilar(name, known).
		Build()
}

// NotAType reports a value used in type position.
func NotAType(name string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorNotAType, fmt.Sprintf("'%s' is not a type", name), loc).
		WithHelp("only classes, interfaces, enums, typedefs and builtin types can be used as types").
		Build()
}

// UndefinedMember creates an error for a failed method or attribute lookup
func UndefinedMember(owner, member string, loc ast.Location, available []string) Diagnostic {
	display := DisplayMember(member)
	builder := NewSemanticError(ErrorUndefinedMember, fmt.Sprintf("%s has no %s", owner, display), loc)
	var names []string
	for _, a := range available {
		if !strings.HasPrefix(a, "__") || strings.HasPrefix(a, "__get_") {
			names = append(names, strings.TrimPrefix(a, "__get_"))
		}
	}
	return builder.withSimilar(strings.TrimPrefix(member, "__get_"), names).Build()
}

// DisplayMember renders a method name the way a user wrote it.
func DisplayMember(member string) string {
	switch {
	case strings.HasPrefix(member, "__get_"):
		return fmt.Sprintf("attribute '%s'", strings.TrimPrefix(member, "__get_"))
	case strings.HasPrefix(member, "__set_"):
		return fmt.Sprintf("assignable attribute '%s'", strings.TrimPrefix(member, "__set_"))
	case member == "__call__":
		return "call operator"
	case member == "__getitem__":
		return "index operator"
	case member == "__setitem__":
		return "index assignment"
	}
	if op, ok := operatorSymbols[member]; ok {
		return fmt.Sprintf("operator '%s'", op)
	}
	return fmt.Sprintf("method '%s'", member)
}

var operatorSymbols = map[string]string{
	"__add__": "+", "__sub__": "-", "__mul__": "*", "__div__": "/", "__floordiv__": "//",
	"__mod__": "%", "__pow__": "**", "__lt__": "<", "__le__": "<=", "__gt__": ">", "__ge__": ">=",
	"__and__": "&", "__or__": "|", "__xor__": "^", "__lshift__": "<<", "__rshift__": ">>",
	"__neg__": "unary -", "__pos__": "unary +", "__invert__": "~", "__contains__": "in",
}

// TypeMismatch creates an error for type mismatches
func TypeMismatch(expected, actual string, loc ast.Location) Diagnostic {
	builder := NewSemanticError(ErrorTypeMismatch, fmt.Sprintf("type mismatch: expected %s, found %s", expected, actual), loc)
	if strings.HasSuffix(actual, "?") && strings.TrimSuffix(actual, "?") == expected {
		builder.WithSuggestion("check the value against null before using it").
			WithNote(fmt.Sprintf("%s may be null", actual))
	}
	return builder.Build()
}

// InvalidArguments creates an error for call arity mismatches
func InvalidArguments(name string, expected []string, actual int, loc ast.Location) Diagnostic {
	want := strings.Join(expected, " or ")
	builder := NewSemanticError(ErrorInvalidArguments,
		fmt.Sprintf("%s expects %s arguments, got %d", name, want, actual), loc)
	return builder.WithHelp("check the function signature for the correct number of parameters").Build()
}

// NotCallable reports a call on a value without a call operator
func NotCallable(typ string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorNotCallable, fmt.Sprintf("%s is not callable", typ), loc).Build()
}

// NotIterable reports a for loop over something that has no item type
func NotIterable(typ string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorNotIterable, fmt.Sprintf("%s is not iterable", typ), loc).
		WithHelp("lists, tuples, strings and anything with an __iter__ method can be iterated").
		Build()
}

// InvalidTypeArguments reports a badly applied generic type
func InvalidTypeArguments(message string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorInvalidTypeArguments, message, loc).Build()
}

// NullableReceiver reports a method call through a possibly null value
func NullableReceiver(typ, member string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorNullableReceiver,
		fmt.Sprintf("cannot use %s of %s: value may be null", DisplayMember(member), typ), loc).
		WithSuggestion("check the value against null first").
		Build()
}

// InvalidReturnType reports a return value that does not fit the declared type
func InvalidReturnType(expected, actual string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorInvalidReturnType,
		fmt.Sprintf("cannot return %s from a function returning %s", actual, expected), loc).Build()
}

// DuplicateDeclaration creates an error for duplicate declarations
func DuplicateDeclaration(name string, loc, previous ast.Location) Diagnostic {
	return NewSemanticError(ErrorDuplicateDeclaration, fmt.Sprintf("duplicate declaration: %s", name), loc).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' to a unique name", name)).
		WithNote(fmt.Sprintf("previously declared at %s", previous)).
		Build()
}

// AssignToConstant reports an assignment to an immutable binding
func AssignToConstant(name string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorAssignToConstant, fmt.Sprintf("cannot assign to constant '%s'", name), loc).
		WithSuggestion("declare it with 'var' to make it mutable").
		Build()
}

// MissingInterfaceMember reports an interface method a class does not provide
func MissingInterfaceMember(class, iface, member string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorMissingInterfaceMember,
		fmt.Sprintf("class %s does not implement %s required by %s", class, DisplayMember(member), iface), loc).
		Build()
}

// AbstractInstantiation reports constructing an abstract class
func AbstractInstantiation(class string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorAbstractInstantiation, fmt.Sprintf("cannot construct abstract class %s", class), loc).
		WithHelp("construct one of its concrete subclasses instead").
		Build()
}

// InvalidBase reports a superclass that is not a class
func InvalidBase(name, typ string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorInvalidBase, fmt.Sprintf("%s cannot extend %s", name, typ), loc).Build()
}

// ReturnOutsideFunction reports a top-level return
func ReturnOutsideFunction(loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorReturnOutsideFunction, "return outside of a function", loc).Build()
}

// MissingBody reports a function signature that is never implemented. An
// owner names the abstract class that declared it.
func MissingBody(function, owner string, loc ast.Location) Diagnostic {
	if owner == "" {
		return NewSemanticError(ErrorMissingBody, fmt.Sprintf("function '%s' has no body", function), loc).
			WithHelp("only abstract classes and interfaces may declare methods without a body").
			Build()
	}
	return NewSemanticError(ErrorMissingBody,
		fmt.Sprintf("abstract method '%s' of %s is not implemented", function, owner), loc).
		WithSuggestion(fmt.Sprintf("implement '%s' or declare the class abstract", function)).
		Build()
}

// CyclicType reports a definition whose header leads back to itself
func CyclicType(name string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorCyclicType, fmt.Sprintf("type '%s' is defined in terms of itself", name), loc).
		WithHelp("a typedef cannot name itself, directly or through other typedefs").
		Build()
}

// JumpOutsideLoop reports break or continue outside a loop
func JumpOutsideLoop(keyword string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorJumpOutsideLoop, fmt.Sprintf("%s outside of a loop", keyword), loc).Build()
}

// ModuleNotFound reports an import that resolves to nothing
func ModuleNotFound(path string, loc ast.Location, known []string) Diagnostic {
	return NewSemanticError(ErrorModuleNotFound, fmt.Sprintf("cannot find module '%s'", path), loc).
		withSimilar(path, known).
		Build()
}

// NotExported reports a from-import of an unknown name
func NotExported(module, name string, loc ast.Location, available []string) Diagnostic {
	builder := NewSemanticError(ErrorNotExported, fmt.Sprintf("module '%s' has no member '%s'", module, name), loc).
		withSimilar(name, available)
	if len(available) > 0 {
		sorted := append([]string(nil), available...)
		sort.Strings(sorted)
		builder.WithNote(fmt.Sprintf("available: %s", strings.Join(sorted, ", ")))
	}
	return builder.Build()
}

// InvalidExport reports an export of something that is not declared
func InvalidExport(name string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorInvalidExport, fmt.Sprintf("cannot export undeclared name '%s'", name), loc).Build()
}

// MissingReturn creates an error for functions that declare a return type but
// can finish without returning
func MissingReturn(functionName, returnType string, loc ast.Location) Diagnostic {
	return NewSemanticError(ErrorMissingReturn,
		fmt.Sprintf("function '%s' declares return type %s but can finish without returning", functionName, returnType), loc).
		WithSuggestion(fmt.Sprintf("add a return statement that returns a value of type %s", returnType)).
		WithHelp("functions with return types must return a value on all execution paths").
		Build()
}

// UnreachableCode creates a warning for code after a return, break,
// continue or call that never returns
func UnreachableCode(loc ast.Location) Diagnostic {
	return NewSemanticWarning(WarningUnreachableCode, "unreachable code", loc).
		WithSuggestion("remove this code").
		Build()
}

// SimilarNames returns the candidates within a small edit distance of target,
// closest first.
func SimilarNames(target string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	var found []scored
	seen := map[string]bool{}
	for _, candidate := range candidates {
		if candidate == target || seen[candidate] || len(candidate) <= 2 {
			continue
		}
		seen[candidate] = true
		if d := levenshteinDistance(target, candidate); d <= 2 {
			found = append(found, scored{candidate, d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].name < found[j].name
	})
	out := make([]string, len(found))
	for i, s := range found {
		out[i] = s.name
	}
	return out
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

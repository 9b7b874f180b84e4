package semantic

import (
	"fmt"
	"sort"
	"strings"

	"yal/internal/ast"
	"yal/internal/errors"
	"yal/internal/types"
)

// Reference is one occurrence of a variable's name in the source.
type Reference struct {
	Range         ast.Range
	Variable      *types.Variable
	IsDeclaration bool
}

// ExpressionInfo is what the annotator learned about one expression.
type ExpressionInfo struct {
	Type  *types.Type
	Value types.Value
	// Failed marks the Any left behind by an expression that already
	// reported an error. It is not checked against expected types again.
	Failed bool
}

// PrintInstance is a print call whose argument is known at compile time.
type PrintInstance struct {
	Range ast.Range
	Value string
}

// CallInstance records a resolved call for signature help.
type CallInstance struct {
	Range     ast.Range
	Method    *types.Method
	Arguments []ast.Range
}

// CompletionPoint is a span where member completion applies, such as the
// name after a dot. Its candidates are computed on demand.
type CompletionPoint struct {
	Range    ast.Range
	complete func() []Completion
}

func (p CompletionPoint) Completions() []Completion {
	return p.complete()
}

type scopeSpan struct {
	rng   ast.Range
	scope *Scope
}

// Annotation is the result of annotating one file. Its caches belong to a
// single annotation run and are not safe for concurrent mutation; queries
// after AnnotateFile returns only read.
type Annotation struct {
	File             *ast.File
	Errors           []errors.Diagnostic
	References       []Reference
	Variables        []*types.Variable
	CompletionPoints []CompletionPoint
	PrintInstances   []PrintInstance
	CallInstances    []CallInstance
	ExportMap        map[string]*types.Variable
	ImportMap        map[string]string

	expressions map[ast.Expression]*ExpressionInfo
	typeExprs   map[ast.TypeExpression]*types.Type
	flows       map[ast.Statement]Flow
	scopes      []scopeSpan
	fileScope   *Scope
}

func newAnnotation(file *ast.File) *Annotation {
	return &Annotation{
		File:        file,
		ExportMap:   map[string]*types.Variable{},
		ImportMap:   map[string]string{},
		expressions: map[ast.Expression]*ExpressionInfo{},
		typeExprs:   map[ast.TypeExpression]*types.Type{},
		flows:       map[ast.Statement]Flow{},
	}
}

// Info returns what is known about e, or nil if e was never reached.
func (a *Annotation) Info(e ast.Expression) *ExpressionInfo {
	return a.expressions[e]
}

// TypeOf returns the type of e, or nil if e was never reached.
func (a *Annotation) TypeOf(e ast.Expression) *types.Type {
	if info := a.expressions[e]; info != nil {
		return info.Type
	}
	return nil
}

// ResolvedType returns the type a type expression denotes.
func (a *Annotation) ResolvedType(t ast.TypeExpression) *types.Type {
	return a.typeExprs[t]
}

// FlowOf returns how control leaves stmt.
func (a *Annotation) FlowOf(stmt ast.Statement) Flow {
	return a.flows[stmt]
}

// HasErrors reports whether any diagnostic is an error.
func (a *Annotation) HasErrors() bool {
	return errors.CountErrors(a.Errors) > 0
}

// Lookup finds a variable declared anywhere in the file by name, preferring
// the outermost declaration.
func (a *Annotation) Lookup(name string) *types.Variable {
	for _, v := range a.Variables {
		if v.Identifier == name {
			return v
		}
	}
	return nil
}

// ReferenceAt returns the innermost reference covering pos.
func (a *Annotation) ReferenceAt(pos ast.Position) *Reference {
	var best *Reference
	for i := range a.References {
		r := &a.References[i]
		if !r.Range.Contains(pos) {
			continue
		}
		if best == nil || r.Range.End.Index-r.Range.Start.Index < best.Range.End.Index-best.Range.Start.Index {
			best = r
		}
	}
	return best
}

// ReferencesTo lists every reference to v in source order.
func (a *Annotation) ReferencesTo(v *types.Variable) []Reference {
	var out []Reference
	for _, r := range a.References {
		if r.Variable == v {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Range.Start.Index < out[j].Range.Start.Index
	})
	return out
}

// DefinitionAt returns where the name under pos was declared.
func (a *Annotation) DefinitionAt(pos ast.Position) (ast.Location, bool) {
	ref := a.ReferenceAt(pos)
	if ref == nil || IsBuiltin(ref.Variable) {
		return ast.Location{}, false
	}
	return ref.Variable.Location, true
}

// HoverAt describes the name under pos in the form `var x: T`.
func (a *Annotation) HoverAt(pos ast.Position) (string, ast.Range, bool) {
	ref := a.ReferenceAt(pos)
	if ref == nil {
		return "", ast.Range{}, false
	}
	return Describe(ref.Variable), ref.Range, true
}

// Describe renders a variable the way it would be declared.
func Describe(v *types.Variable) string {
	var b strings.Builder
	switch v.Type.Kind() {
	case types.FunctionKind:
		calls := v.Type.GetMethods("__call__")
		for i, m := range calls {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "function %s%s", v.Identifier, m.Signature())
		}
	case types.ModuleKind:
		if tv := v.Type.TypeValue(); tv != nil {
			fmt.Fprintf(&b, "%s %s", typeKeyword(tv), v.Identifier)
		} else {
			fmt.Fprintf(&b, "module %s", v.Identifier)
		}
	default:
		keyword := "const"
		if v.IsMutable {
			keyword = "var"
		}
		fmt.Fprintf(&b, "%s %s: %s", keyword, v.Identifier, v.Type)
		if v.Value != nil {
			fmt.Fprintf(&b, " = %s", types.Repr(v.Value))
		}
	}
	if v.Comment != "" {
		b.WriteString("\n\n")
		b.WriteString(v.Comment)
	}
	return b.String()
}

func typeKeyword(t *types.Type) string {
	switch t.Kind() {
	case types.ClassKind:
		return "class"
	case types.InterfaceKind:
		return "interface"
	case types.EnumKind:
		return "enum"
	}
	return "typedef"
}

// CallAt returns the innermost call whose range covers pos.
func (a *Annotation) CallAt(pos ast.Position) *CallInstance {
	var best *CallInstance
	for i := range a.CallInstances {
		c := &a.CallInstances[i]
		if !c.Range.Contains(pos) {
			continue
		}
		if best == nil || c.Range.Start.Index >= best.Range.Start.Index {
			best = c
		}
	}
	return best
}

// scopeAt returns the innermost recorded scope covering pos.
func (a *Annotation) scopeAt(pos ast.Position) *Scope {
	var best *scopeSpan
	for i := range a.scopes {
		s := &a.scopes[i]
		if !s.rng.Contains(pos) {
			continue
		}
		if best == nil || s.rng.End.Index-s.rng.Start.Index <= best.rng.End.Index-best.rng.Start.Index {
			best = s
		}
	}
	if best == nil {
		return a.fileScope
	}
	return best.scope
}

// Module exposes the file's exports as a module type named name.
func (a *Annotation) Module(name string) *types.Type {
	mod := types.NewModule(name, nil, nil)
	for _, alias := range keys(a.ExportMap) {
		v := a.ExportMap[alias]
		if v.Identifier != alias {
			renamed := *v
			renamed.Identifier = alias
			v = &renamed
		}
		mod.AddMember(v)
	}
	return mod
}

package semantic

import (
	"sort"
	"strings"

	"yal/internal/ast"
	"yal/internal/types"
)

type CompletionKind int

const (
	CompletionVariable CompletionKind = iota
	CompletionConstant
	CompletionFunction
	CompletionMethod
	CompletionField
	CompletionClass
	CompletionInterface
	CompletionEnum
	CompletionEnumMember
	CompletionModule
	CompletionTypeParameter
	CompletionKeyword
)

type Completion struct {
	Label         string
	Kind          CompletionKind
	Detail        string
	Documentation string
}

var keywords = []string{
	"abstract", "and", "as", "break", "class", "const", "continue", "else",
	"enum", "export", "extends", "false", "for", "from", "function", "if",
	"import", "in", "interface", "native", "not", "null", "or", "return",
	"static", "true", "typedef", "var", "while",
}

// Classify picks the completion kind that best describes v.
func Classify(v *types.Variable) CompletionKind {
	t := v.Type
	switch t.Kind() {
	case types.FunctionKind, types.LambdaKind:
		return CompletionFunction
	case types.TypeParameterKind:
		return CompletionTypeParameter
	case types.ModuleKind:
		tv := t.TypeValue()
		if tv == nil {
			return CompletionModule
		}
		switch tv.Kind() {
		case types.InterfaceKind:
			return CompletionInterface
		case types.EnumKind:
			return CompletionEnum
		}
		return CompletionClass
	case types.EnumKind:
		return CompletionEnumMember
	}
	if !v.IsMutable {
		return CompletionConstant
	}
	return CompletionVariable
}

func variableCompletion(v *types.Variable) Completion {
	return Completion{
		Label:         v.Identifier,
		Kind:          Classify(v),
		Detail:        Describe(&types.Variable{Identifier: v.Identifier, Type: v.Type, IsMutable: v.IsMutable, Value: v.Value}),
		Documentation: v.Comment,
	}
}

// memberCompletions lists the attributes and methods reachable with a dot.
// Operator methods and setters are left out.
func memberCompletions(t *types.Type) []Completion {
	var out []Completion
	for _, name := range t.MethodNames() {
		methods := t.GetMethods(name)
		if len(methods) == 0 {
			continue
		}
		m := methods[0]
		switch {
		case strings.HasPrefix(name, "__get_"):
			c := Completion{Label: strings.TrimPrefix(name, "__get_"), Kind: CompletionField, Detail: m.ReturnType.String()}
			if v := m.SourceVariable; v != nil {
				c = variableCompletion(v)
				c.Label = strings.TrimPrefix(name, "__get_")
			}
			out = append(out, c)
		case strings.HasPrefix(name, "__"):
			continue
		default:
			if t.Kind() == types.ModuleKind {
				if _, member := t.Member(name); member {
					// Reported through its getter already.
					continue
				}
			}
			c := Completion{Label: name, Kind: CompletionMethod, Detail: name + m.Signature()}
			if m.SourceVariable != nil {
				c.Documentation = m.SourceVariable.Comment
			}
			out = append(out, c)
		}
	}
	return out
}

// CompletionsAt lists what may be typed at pos: members after a dot, or
// every visible name plus the keywords.
func (a *Annotation) CompletionsAt(pos ast.Position) []Completion {
	for _, p := range a.CompletionPoints {
		if p.Range.Contains(pos) {
			return p.Completions()
		}
	}
	var out []Completion
	scope := a.scopeAt(pos)
	if scope != nil {
		visible := scope.Visible()
		for _, name := range keys(visible) {
			out = append(out, variableCompletion(visible[name]))
		}
	}
	for _, kw := range keywords {
		out = append(out, Completion{Label: kw, Kind: CompletionKeyword})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].Kind == CompletionKeyword) != (out[j].Kind == CompletionKeyword) {
			return out[j].Kind == CompletionKeyword
		}
		return out[i].Label < out[j].Label
	})
	return out
}

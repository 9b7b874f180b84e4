package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"yal/internal/ast"
	"yal/internal/semantic"
	"yal/internal/types"
	"yal/internal/workspace"
)

func position(res *workspace.Result, p protocol.Position) ast.Position {
	return res.Document.PositionAt(int(p.Line), int(p.Character))
}

func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	res, err := h.result(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	text, rng, ok := res.Annotation.HoverAt(position(res, params.Position))
	if !ok {
		return nil, nil
	}
	r := convertRange(rng)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```yal\n" + text + "\n```",
		},
		Range: &r,
	}, nil
}

func (h *Handler) TextDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	res, err := h.result(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	loc, ok := res.Annotation.DefinitionAt(position(res, params.Position))
	if !ok {
		return nil, nil
	}
	return convertLocation(loc), nil
}

func (h *Handler) TextDocumentReferences(ctx *glsp.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	res, err := h.result(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	ref := res.Annotation.ReferenceAt(position(res, params.Position))
	if ref == nil {
		return nil, nil
	}
	var out []protocol.Location
	for _, r := range res.Annotation.ReferencesTo(ref.Variable) {
		if r.IsDeclaration && !params.Context.IncludeDeclaration {
			continue
		}
		out = append(out, protocol.Location{URI: params.TextDocument.URI, Range: convertRange(r.Range)})
	}
	return out, nil
}

var completionKinds = map[semantic.CompletionKind]protocol.CompletionItemKind{
	semantic.CompletionVariable:      protocol.CompletionItemKindVariable,
	semantic.CompletionConstant:      protocol.CompletionItemKindConstant,
	semantic.CompletionFunction:      protocol.CompletionItemKindFunction,
	semantic.CompletionMethod:        protocol.CompletionItemKindMethod,
	semantic.CompletionField:         protocol.CompletionItemKindField,
	semantic.CompletionClass:         protocol.CompletionItemKindClass,
	semantic.CompletionInterface:     protocol.CompletionItemKindInterface,
	semantic.CompletionEnum:          protocol.CompletionItemKindEnum,
	semantic.CompletionEnumMember:    protocol.CompletionItemKindEnumMember,
	semantic.CompletionModule:        protocol.CompletionItemKindModule,
	semantic.CompletionTypeParameter: protocol.CompletionItemKindTypeParameter,
	semantic.CompletionKeyword:       protocol.CompletionItemKindKeyword,
}

func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	res, err := h.result(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	completions := res.Annotation.CompletionsAt(position(res, params.Position))
	items := make([]protocol.CompletionItem, 0, len(completions))
	for _, c := range completions {
		kind := completionKinds[c.Kind]
		item := protocol.CompletionItem{Label: c.Label, Kind: &kind}
		if c.Detail != "" {
			item.Detail = ptrString(c.Detail)
		}
		if c.Documentation != "" {
			item.Documentation = protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: c.Documentation}
		}
		items = append(items, item)
	}
	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

func (h *Handler) TextDocumentSignatureHelp(ctx *glsp.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	res, err := h.result(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	pos := position(res, params.Position)
	call := res.Annotation.CallAt(pos)
	if call == nil {
		return nil, nil
	}

	m := call.Method
	info := protocol.SignatureInformation{Label: callLabel(m) + m.Signature()}
	for _, p := range m.Parameters {
		info.Parameters = append(info.Parameters, protocol.ParameterInformation{
			Label: fmt.Sprintf("%s: %s", p.Identifier, p.Type),
		})
	}
	if v := m.SourceVariable; v != nil && v.Comment != "" {
		info.Documentation = protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: v.Comment}
	}

	var active protocol.UInteger
	for i, arg := range call.Arguments {
		if pos.Index > arg.End.Index {
			active = protocol.UInteger(i + 1)
		}
	}
	if n := len(m.Parameters); n > 0 && int(active) >= n {
		active = protocol.UInteger(n - 1)
	}
	var first protocol.UInteger
	return &protocol.SignatureHelp{
		Signatures:      []protocol.SignatureInformation{info},
		ActiveSignature: &first,
		ActiveParameter: &active,
	}, nil
}

func callLabel(m *types.Method) string {
	if m.Identifier == "__call__" && m.SourceVariable != nil {
		return m.SourceVariable.Identifier
	}
	return m.Identifier
}

func (h *Handler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	res, err := h.result(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	symbols := []protocol.DocumentSymbol{}
	for _, stmt := range res.File.Statements {
		symbols = append(symbols, documentSymbols(res.Annotation, stmt, false)...)
	}
	return symbols, nil
}

func documentSymbols(ann *semantic.Annotation, stmt ast.Statement, member bool) []protocol.DocumentSymbol {
	switch n := stmt.(type) {
	case *ast.Declaration:
		if n.Identifier == nil {
			return nil
		}
		kind := protocol.SymbolKindConstant
		switch {
		case isFunction(n.Value) && member:
			kind = protocol.SymbolKindMethod
		case isFunction(n.Value):
			kind = protocol.SymbolKindFunction
		case member:
			kind = protocol.SymbolKindField
		case n.IsMutable:
			kind = protocol.SymbolKindVariable
		}
		s := symbol(n.Identifier, n.Range, kind)
		if ref := ann.ReferenceAt(n.Identifier.Range.Start); ref != nil && ref.Variable.Identifier == n.Identifier.Name {
			s.Detail = ptrString(ref.Variable.Type.String())
		}
		return []protocol.DocumentSymbol{s}
	case *ast.ClassDefinition:
		if n.Identifier == nil {
			return nil
		}
		s := symbol(n.Identifier, n.Range, protocol.SymbolKindClass)
		for _, m := range n.Members {
			s.Children = append(s.Children, documentSymbols(ann, m, true)...)
		}
		return []protocol.DocumentSymbol{s}
	case *ast.InterfaceDefinition:
		if n.Identifier == nil {
			return nil
		}
		s := symbol(n.Identifier, n.Range, protocol.SymbolKindInterface)
		for _, m := range n.Members {
			s.Children = append(s.Children, documentSymbols(ann, m, true)...)
		}
		return []protocol.DocumentSymbol{s}
	case *ast.EnumDefinition:
		if n.Identifier == nil {
			return nil
		}
		s := symbol(n.Identifier, n.Range, protocol.SymbolKindEnum)
		for _, m := range n.Members {
			if m.Identifier != nil {
				s.Children = append(s.Children, symbol(m.Identifier, m.Range, protocol.SymbolKindEnumMember))
			}
		}
		return []protocol.DocumentSymbol{s}
	case *ast.Typedef:
		if n.Identifier == nil {
			return nil
		}
		s := symbol(n.Identifier, n.Range, protocol.SymbolKindTypeParameter)
		if t := ann.ResolvedType(n.Type); t != nil {
			s.Detail = ptrString(t.String())
		}
		return []protocol.DocumentSymbol{s}
	case *ast.ImportAs:
		name := n.Alias
		if name == nil && len(n.Path) > 0 {
			name = n.Path[len(n.Path)-1]
		}
		if name == nil {
			return nil
		}
		s := symbol(name, n.Range, protocol.SymbolKindModule)
		s.Detail = ptrString(ast.DottedPath(n.Path))
		return []protocol.DocumentSymbol{s}
	}
	return nil
}

func isFunction(e ast.Expression) bool {
	_, ok := e.(*ast.FunctionDisplay)
	return ok
}

func symbol(id *ast.Identifier, rng ast.Range, kind protocol.SymbolKind) protocol.DocumentSymbol {
	return protocol.DocumentSymbol{
		Name:           id.Name,
		Kind:           kind,
		Range:          convertRange(rng),
		SelectionRange: convertRange(id.Range),
	}
}

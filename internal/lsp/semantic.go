package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"yal/internal/parser"
	"yal/internal/semantic"
	"yal/internal/workspace"
)

// SemanticTokenTypes is the legend sent to clients; token types are
// encoded as indexes into it.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"class",
	"enum",
	"interface",
	"typeParameter",
	"variable",
	"property",
	"enumMember",
	"function",
	"method",
	"keyword",
	"comment",
	"string",
	"number",
}

// SemanticTokenModifiers is the modifier legend; modifiers are a bitmask
// over it.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
	"defaultLibrary",
}

// SemanticToken is one entry before delta encoding. Line and StartChar are
// zero-based.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

var kindTokenTypes = map[semantic.CompletionKind]string{
	semantic.CompletionVariable:      "variable",
	semantic.CompletionConstant:      "variable",
	semantic.CompletionFunction:      "function",
	semantic.CompletionMethod:        "method",
	semantic.CompletionField:         "property",
	semantic.CompletionClass:         "class",
	semantic.CompletionInterface:     "interface",
	semantic.CompletionEnum:          "enum",
	semantic.CompletionEnumMember:    "enumMember",
	semantic.CompletionModule:        "namespace",
	semantic.CompletionTypeParameter: "typeParameter",
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	res, err := h.result(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(collectSemanticTokens(res))}, nil
}

// collectSemanticTokens colours the token stream. Identifiers take their
// colour from the variable they resolve to; unresolved ones are skipped.
func collectSemanticTokens(res *workspace.Result) []SemanticToken {
	refs := map[int]semantic.Reference{}
	for _, r := range res.Annotation.References {
		refs[r.Range.Start.Index] = r
	}

	var tokens []SemanticToken
	for _, tok := range res.Tokens {
		r := tok.Range
		if r.Start.Line != r.End.Line || r.IsEmpty() {
			continue
		}
		var tokenType string
		modifiers := 0
		switch {
		case tok.Type == parser.COMMENT:
			tokenType = "comment"
		case tok.Type == parser.STRING:
			tokenType = "string"
		case tok.Type == parser.NUMBER:
			tokenType = "number"
		case tok.Type >= parser.ABSTRACT && tok.Type <= parser.WHILE:
			tokenType = "keyword"
		case tok.Type == parser.IDENTIFIER:
			ref, ok := refs[r.Start.Index]
			if !ok {
				continue
			}
			tokenType = kindTokenTypes[semantic.Classify(ref.Variable)]
			if ref.IsDeclaration {
				modifiers |= modifier("declaration")
			}
			if !ref.Variable.IsMutable {
				modifiers |= modifier("readonly")
			}
			if semantic.IsBuiltin(ref.Variable) {
				modifiers |= modifier("defaultLibrary")
			}
		default:
			continue
		}
		tokens = append(tokens, SemanticToken{
			Line:           uint32(r.Start.Line),
			StartChar:      uint32(r.Start.Column),
			Length:         uint32(r.End.Column - r.Start.Column),
			TokenType:      indexOf(tokenType, SemanticTokenTypes),
			TokenModifiers: modifiers,
		})
	}
	return tokens
}

// encodeSemanticTokens applies the LSP relative encoding: each entry is
// (delta line, delta start, length, type, modifiers).
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))
		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

func modifier(name string) int {
	return 1 << indexOf(name, SemanticTokenModifiers)
}

// indexOf returns the index of target in list, or 0 if absent.
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}

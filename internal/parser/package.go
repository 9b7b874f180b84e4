package parser

import "yal/internal/ast"

// ParseSource lexes and parses source, also returning the raw token stream
// (comments and lexical errors included) for consumers that colour text.
func ParseSource(uri string, source string, opts Options) (*ast.File, []Token) {
	tokens := LexWithOptions(source, opts)
	p := NewParser(uri, tokens, opts.Dialect)
	return p.ParseFile(), tokens
}

// TokenAt returns the index of the token whose range contains pos, or -1.
// Layout and EOF tokens never match.
func TokenAt(tokens []Token, pos ast.Position) int {
	lo, hi := 0, len(tokens)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := tokens[mid].Range
		switch {
		case pos.Index < r.Start.Index:
			hi = mid - 1
		case pos.Index >= r.End.Index:
			lo = mid + 1
		default:
			switch tokens[mid].Type {
			case NEWLINE, INDENT, DEDENT, EOF:
				return -1
			}
			return mid
		}
	}
	return -1
}

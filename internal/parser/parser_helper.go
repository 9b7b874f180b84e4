package parser

import "yal/internal/ast"

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) checkAny(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			return true
		}
	}
	return false
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given type or returns a syntax error
// positioned at the offending token. Nothing is recorded here; the nearest
// statement loop records and recovers.
func (p *Parser) expect(tt TokenType, message string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return p.peek(), p.errorAt(p.peek(), message)
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(n int) Token {
	i := p.current + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) errorAt(tok Token, message string) *ast.SyntaxError {
	switch {
	case tok.Type == EOF:
		message += " (found end of input)"
	case tok.Type == NEWLINE:
		message += " (found line break)"
	case tok.Type == INDENT || tok.Type == DEDENT:
		message += " (found change of indentation)"
	case tok.Lexeme != "":
		message += " (found '" + tok.Lexeme + "')"
	}
	return &ast.SyntaxError{Location: p.location(tok.Range), Message: message}
}

func (p *Parser) location(r ast.Range) ast.Location {
	return ast.Location{URI: p.uri, Range: r}
}

// rangeFrom spans from the start of tok to the end of the last consumed token.
func (p *Parser) rangeFrom(tok Token) ast.Range {
	end := p.previous().Range.End
	if p.current == 0 || end.Index < tok.Range.Start.Index {
		end = tok.Range.End
	}
	return ast.Range{Start: tok.Range.Start, End: end}
}

// startsNewLine reports whether the next token sits on a later line than
// the last consumed one.
func (p *Parser) startsNewLine() bool {
	if p.current == 0 {
		return false
	}
	return p.peek().Range.Start.Line > p.previous().Range.End.Line
}

// newlineBreaks reports whether a line break before the next token ends the
// current expression. Inside brackets line breaks are insignificant.
func (p *Parser) newlineBreaks() bool {
	return p.dialect.NewlineSensitive() && p.nesting == 0 && p.startsNewLine()
}

// endStatement accepts any statement delimiter. When none is present a
// delimiter is assumed at the current position and the problem recorded,
// so parsing carries on with the next statement.
func (p *Parser) endStatement() {
	if p.match(SEMICOLON, NEWLINE) {
		return
	}
	if p.isAtEnd() || p.checkAny(RIGHT_BRACE, DEDENT) {
		return
	}
	if p.dialect.NewlineSensitive() && p.startsNewLine() {
		return
	}
	if p.dialect.NewlineSensitive() {
		p.record(p.errorAt(p.peek(), "expected ';' or a line break after statement"))
	} else {
		p.record(p.errorAt(p.peek(), "expected ';' after statement"))
	}
}

func (p *Parser) identifier(tok Token) *ast.Identifier {
	return &ast.Identifier{Range: tok.Range, Name: tok.Lexeme}
}

func (p *Parser) expectIdentifier(message string) (*ast.Identifier, error) {
	tok, err := p.expect(IDENTIFIER, message)
	if err != nil {
		return nil, err
	}
	return p.identifier(tok), nil
}

// docComment returns the comment block written directly above the token at
// index i, if any.
func (p *Parser) docComment(i int) string {
	return p.docs[i]
}

// matchingClose returns the index of the token closing the bracket at index
// open, or -1 if the brackets never balance. Used for bounded lookahead.
func (p *Parser) matchingClose(open int) int {
	depth := 0
	for i := open; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case LEFT_PAREN, LEFT_BRACKET, LEFT_BRACE:
			depth++
		case RIGHT_PAREN, RIGHT_BRACKET, RIGHT_BRACE:
			depth--
			if depth == 0 {
				return i
			}
		case EOF:
			return -1
		}
	}
	return -1
}

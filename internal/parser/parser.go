package parser

import (
	"sort"
	"strings"

	"yal/internal/ast"
)

// Parser is a recursive-descent parser over a materialised token buffer.
// Comments are removed from the stream up front (their text is kept for
// doc comments) and ERROR tokens are turned into syntax errors, so the
// productions never have to skip them.
type Parser struct {
	uri     string
	dialect Dialect
	tokens  []Token
	docs    map[int]string
	current int
	nesting int
	errors  []*ast.SyntaxError
}

// Parse parses source in the default dialect. It always returns a File;
// syntax problems are reported in File.Errors.
func Parse(uri, source string) *ast.File {
	return ParseWithOptions(uri, source, Options{})
}

func ParseWithOptions(uri, source string, opts Options) *ast.File {
	p := NewParser(uri, LexWithOptions(source, opts), opts.Dialect)
	return p.ParseFile()
}

// NewParser prepares a parser over an already scanned token sequence.
func NewParser(uri string, tokens []Token, dialect Dialect) *Parser {
	p := &Parser{
		uri:     uri,
		dialect: dialect,
		docs:    make(map[int]string),
	}

	var pending []string
	lastCommentLine, lastTokenLine := -2, -1
	for _, tok := range tokens {
		switch tok.Type {
		case COMMENT:
			if tok.Range.Start.Line == lastTokenLine {
				continue
			}
			if tok.Range.Start.Line != lastCommentLine+1 {
				pending = pending[:0]
			}
			pending = append(pending, tok.StringValue())
			lastCommentLine = tok.Range.End.Line
		case NEWLINE, INDENT, DEDENT:
			p.tokens = append(p.tokens, tok)
		case ERROR:
			p.errors = append(p.errors, &ast.SyntaxError{
				Location: p.location(tok.Range),
				Message:  tok.StringValue(),
			})
		default:
			if len(pending) > 0 && lastCommentLine == tok.Range.Start.Line-1 {
				p.docs[len(p.tokens)] = strings.Join(pending, "\n")
			}
			pending = pending[:0]
			lastCommentLine = -2
			lastTokenLine = tok.Range.End.Line
			p.tokens = append(p.tokens, tok)
		}
	}
	if len(p.tokens) == 0 || p.tokens[len(p.tokens)-1].Type != EOF {
		p.tokens = append(p.tokens, Token{Type: EOF})
	}
	return p
}

func (p *Parser) ParseFile() *ast.File {
	statements := p.parseStatements()
	end := p.peek().Range.End

	sort.SliceStable(p.errors, func(i, j int) bool {
		return p.errors[i].Location.Range.Start.Index < p.errors[j].Location.Range.Start.Index
	})

	return &ast.File{
		Location:   p.location(ast.Range{End: end}),
		Statements: statements,
		Errors:     p.errors,
	}
}

// Errors returns the syntax errors recorded so far.
func (p *Parser) Errors() []*ast.SyntaxError {
	return p.errors
}

// parseStatements is the recovery boundary: a statement that fails to parse
// is recorded and the parser skips ahead to the next likely statement start.
func (p *Parser) parseStatements(terminators ...TokenType) []ast.Statement {
	statements := []ast.Statement{}
	for !p.isAtEnd() && !p.checkAny(terminators...) {
		if p.match(SEMICOLON, NEWLINE) {
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			p.record(err)
			p.synchronize(terminators...)
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}

// synchronize skips tokens until a statement delimiter has been consumed or
// the next token starts a new line, closes the enclosing block, or ends the
// file. Brackets opened while skipping are skipped as a unit.
func (p *Parser) synchronize(terminators ...TokenType) {
	start := p.current
	depth := 0
	for !p.isAtEnd() {
		if depth == 0 {
			if p.checkAny(terminators...) {
				return
			}
			if p.current > start {
				prev := p.previous().Type
				if prev == SEMICOLON || prev == NEWLINE {
					return
				}
				if p.dialect.NewlineSensitive() && p.startsNewLine() {
					return
				}
			}
		}
		switch p.advance().Type {
		case LEFT_PAREN, LEFT_BRACKET, LEFT_BRACE, INDENT:
			depth++
		case RIGHT_PAREN, RIGHT_BRACKET, RIGHT_BRACE, DEDENT:
			if depth > 0 {
				depth--
			}
		}
	}
}

func (p *Parser) record(err error) {
	if se, ok := err.(*ast.SyntaxError); ok {
		p.errors = append(p.errors, se)
		return
	}
	p.errors = append(p.errors, &ast.SyntaxError{
		Location: p.location(p.peek().Range),
		Message:  err.Error(),
	})
}

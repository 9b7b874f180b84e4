package parser

import "yal/internal/ast"

func (p *Parser) parseStatement() (ast.Statement, error) {
	start := p.current
	switch p.peek().Type {
	case VAR, CONST:
		decl, err := p.parseVariableDeclaration(false)
		if err != nil {
			return nil, err
		}
		decl.Comment = p.docComment(start)
		p.endStatement()
		return decl, nil
	case FUNCTION:
		// `function(` at statement level is an anonymous function expression.
		if p.peekAt(1).Type == IDENTIFIER {
			return p.parseFunctionDeclaration(false)
		}
	case ABSTRACT, CLASS:
		return p.parseClass()
	case INTERFACE:
		return p.parseInterface()
	case ENUM:
		return p.parseEnum()
	case TYPEDEF:
		return p.parseTypedef()
	case IMPORT:
		return p.parseImport()
	case FROM:
		return p.parseFromImport()
	case EXPORT:
		return p.parseExport()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	case RETURN:
		return p.parseReturn()
	case BREAK:
		tok := p.advance()
		p.endStatement()
		return &ast.Break{Range: tok.Range}, nil
	case CONTINUE:
		tok := p.advance()
		p.endStatement()
		return &ast.Continue{Range: tok.Range}, nil
	case LEFT_BRACE:
		return p.parseBlock()
	case STATIC:
		return nil, p.errorAt(p.peek(), "'static' is only allowed on class members")
	case INDENT:
		return nil, p.errorAt(p.peek(), "unexpected indentation")
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	start := p.peek()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt := &ast.ExpressionStatement{Range: p.rangeFrom(start), Expression: expr}
	p.endStatement()
	return stmt, nil
}

// parseVariableDeclaration parses `var|const name[: Type][ = value]` without
// the trailing delimiter.
func (p *Parser) parseVariableDeclaration(static bool) (*ast.Declaration, error) {
	start := p.advance()
	name, err := p.expectIdentifier("expected variable name")
	if err != nil {
		return nil, err
	}
	decl := &ast.Declaration{IsMutable: start.Type == VAR, IsStatic: static, Identifier: name}
	if p.match(COLON) {
		if decl.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if p.match(EQUAL) {
		if decl.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	decl.Range = p.rangeFrom(start)
	return decl, nil
}

func (p *Parser) parseFunctionDeclaration(static bool) (*ast.Declaration, error) {
	startIndex := p.current
	start := p.advance()
	name, err := p.expectIdentifier("expected function name")
	if err != nil {
		return nil, err
	}
	fn, err := p.parseFunctionRest(start, name, true)
	if err != nil {
		return nil, err
	}
	if fn.Body == nil {
		p.endStatement()
	}
	return &ast.Declaration{
		Range:      fn.Range,
		IsStatic:   static,
		Identifier: &ast.Identifier{Range: name.Range, Name: name.Name},
		Value:      fn,
		Comment:    p.docComment(startIndex),
	}, nil
}

// parseFunctionRest parses everything after `function [name]`. A missing
// body is only accepted for declarations, where it marks a signature.
func (p *Parser) parseFunctionRest(start Token, name *ast.Identifier, bodyOptional bool) (*ast.FunctionDisplay, error) {
	fn := &ast.FunctionDisplay{Identifier: name}
	var err error
	if p.check(LEFT_BRACKET) {
		if fn.TypeParameters, err = p.parseTypeParameters(); err != nil {
			return nil, err
		}
	}
	if fn.Parameters, err = p.parseParameters(); err != nil {
		return nil, err
	}
	if p.check(COLON) && !p.blockColonAhead() {
		p.advance()
		if fn.ReturnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if p.blockAhead() {
		if fn.Body, err = p.parseBlock(); err != nil {
			return nil, err
		}
	} else if !bodyOptional {
		return nil, p.errorAt(p.peek(), "expected function body")
	}
	fn.Range = p.rangeFrom(start)
	return fn, nil
}

func (p *Parser) parseTypeParameters() ([]*ast.TypeParameter, error) {
	p.advance()
	p.nesting++
	defer func() { p.nesting-- }()

	params := []*ast.TypeParameter{}
	for !p.check(RIGHT_BRACKET) {
		start := p.peek()
		name, err := p.expectIdentifier("expected type parameter name")
		if err != nil {
			return nil, err
		}
		param := &ast.TypeParameter{Identifier: name}
		if p.match(COLON) {
			if param.Bound, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		param.Range = p.rangeFrom(start)
		params = append(params, param)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RIGHT_BRACKET, "expected ']' after type parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParameters() ([]*ast.Parameter, error) {
	if _, err := p.expect(LEFT_PAREN, "expected '(' before parameters"); err != nil {
		return nil, err
	}
	p.nesting++
	defer func() { p.nesting-- }()

	params := []*ast.Parameter{}
	for !p.check(RIGHT_PAREN) {
		start := p.peek()
		name, err := p.expectIdentifier("expected parameter name")
		if err != nil {
			return nil, err
		}
		param := &ast.Parameter{Identifier: name}
		if p.match(COLON) {
			if param.Type, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		if p.match(EQUAL) {
			if param.DefaultValue, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}
		param.Range = p.rangeFrom(start)
		params = append(params, param)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RIGHT_PAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

// blockColonAhead reports whether a `:` at the cursor opens an indented
// suite rather than introducing a type annotation.
func (p *Parser) blockColonAhead() bool {
	return p.dialect.indentSensitive() && p.check(COLON) && p.peekAt(1).Type == NEWLINE
}

func (p *Parser) blockAhead() bool {
	return p.check(LEFT_BRACE) || (p.dialect.indentSensitive() && p.check(COLON))
}

// parseBlock accepts `{ ... }` in every dialect, and in the indentation
// dialect also `:` followed by either an indented suite or one statement
// on the same line.
func (p *Parser) parseBlock() (*ast.Block, error) {
	saved := p.nesting
	p.nesting = 0
	defer func() { p.nesting = saved }()

	start := p.peek()
	if p.dialect.indentSensitive() && p.match(COLON) {
		if !p.check(NEWLINE) {
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			return &ast.Block{Range: p.rangeFrom(start), Statements: []ast.Statement{stmt}}, nil
		}
		p.advance()
		if _, err := p.expect(INDENT, "expected an indented block"); err != nil {
			return nil, err
		}
		statements := p.parseStatements(DEDENT)
		if _, err := p.expect(DEDENT, "expected end of indented block"); err != nil && !p.isAtEnd() {
			return nil, err
		}
		return &ast.Block{Range: p.rangeFrom(start), Statements: statements}, nil
	}

	if _, err := p.expect(LEFT_BRACE, "expected '{'"); err != nil {
		return nil, err
	}
	statements := p.parseStatements(RIGHT_BRACE)
	if _, err := p.expect(RIGHT_BRACE, "expected '}' after block"); err != nil {
		return nil, err
	}
	return &ast.Block{Range: p.rangeFrom(start), Statements: statements}, nil
}

// skipToElse lets `else` follow a single-line suite in the indentation
// dialect, where the suite's NEWLINE sits between the two.
func (p *Parser) skipToElse() bool {
	if p.check(NEWLINE) && p.peekAt(1).Type == ELSE {
		p.advance()
	}
	return p.match(ELSE)
}

func (p *Parser) parseIf() (ast.Statement, error) {
	start := p.advance()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Condition: condition, Body: body}
	if p.skipToElse() {
		if p.check(IF) {
			stmt.Else, err = p.parseIf()
		} else {
			stmt.Else, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	stmt.Range = p.rangeFrom(start)
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	start := p.advance()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Range: p.rangeFrom(start), Condition: condition, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	start := p.advance()
	variable, err := p.expectIdentifier("expected loop variable after 'for'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IN, "expected 'in' after loop variable"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Range: p.rangeFrom(start), Variable: variable, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	start := p.advance()
	stmt := &ast.Return{}
	if !p.atStatementEnd() {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	stmt.Range = p.rangeFrom(start)
	p.endStatement()
	return stmt, nil
}

func (p *Parser) atStatementEnd() bool {
	if p.isAtEnd() || p.checkAny(SEMICOLON, NEWLINE, RIGHT_BRACE, DEDENT) {
		return true
	}
	return p.dialect.NewlineSensitive() && p.startsNewLine()
}

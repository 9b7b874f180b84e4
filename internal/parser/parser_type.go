package parser

import "yal/internal/ast"

// parseType parses a type expression. Union binds loosest, then the
// nullable suffix, then primaries.
func (p *Parser) parseType() (ast.TypeExpression, error) {
	start := p.peek()
	first, err := p.parseNullableType()
	if err != nil {
		return nil, err
	}
	if !p.check(PIPE) {
		return first, nil
	}
	types := []ast.TypeExpression{first}
	for p.match(PIPE) {
		next, err := p.parseNullableType()
		if err != nil {
			return nil, err
		}
		types = append(types, next)
	}
	return &ast.UnionTypeDisplay{Range: p.rangeFrom(start), Types: types}, nil
}

func (p *Parser) parseNullableType() (ast.TypeExpression, error) {
	start := p.peek()
	t, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	for p.check(QUESTION) && !p.newlineBreaks() {
		p.advance()
		t = &ast.NullableTypeDisplay{Range: p.rangeFrom(start), Type: t}
	}
	return t, nil
}

func (p *Parser) parsePrimaryType() (ast.TypeExpression, error) {
	tok := p.peek()
	switch tok.Type {
	case NULL, TRUE, FALSE, NUMBER, STRING:
		value, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.ValueTypeDisplay{Range: tok.Range, Value: value}, nil
	case LEFT_PAREN:
		if p.functionTypeAhead() {
			return p.parseFunctionType()
		}
		p.advance()
		p.nesting++
		inner, err := p.parseType()
		p.nesting--
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_PAREN, "expected ')' after type"); err != nil {
			return nil, err
		}
		return inner, nil
	case IDENTIFIER:
		return p.parseTypename()
	}
	return nil, p.errorAt(tok, "expected type")
}

func (p *Parser) functionTypeAhead() bool {
	closeAt := p.matchingClose(p.current)
	return closeAt >= 0 && closeAt+1 < len(p.tokens) && p.tokens[closeAt+1].Type == ARROW
}

// parseFunctionType parses `(A, B) => R`. Parameter names are permitted
// for documentation (`(x: A) => R`) and dropped.
func (p *Parser) parseFunctionType() (ast.TypeExpression, error) {
	start := p.advance()
	p.nesting++
	params := []ast.TypeExpression{}
	for !p.check(RIGHT_PAREN) {
		if p.check(IDENTIFIER) && p.peekAt(1).Type == COLON {
			p.advance()
			p.advance()
		}
		param, err := p.parseType()
		if err != nil {
			p.nesting--
			return nil, err
		}
		params = append(params, param)
		if !p.match(COMMA) {
			break
		}
	}
	p.nesting--
	if _, err := p.expect(RIGHT_PAREN, "expected ')' after parameter types"); err != nil {
		return nil, err
	}
	if _, err := p.expect(ARROW, "expected '=>' in function type"); err != nil {
		return nil, err
	}
	ret, err := p.parseNullableType()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionTypeDisplay{Range: p.rangeFrom(start), Parameters: params, ReturnType: ret}, nil
}

func (p *Parser) parseTypename() (ast.TypeExpression, error) {
	start := p.peek()
	name := p.identifier(p.advance())
	var qualifier *ast.Identifier
	if p.check(DOT) && p.peekAt(1).Type == IDENTIFIER {
		p.advance()
		qualifier, name = name, p.identifier(p.advance())
	}

	var args []ast.TypeExpression
	if p.check(LEFT_BRACKET) && !p.newlineBreaks() {
		p.advance()
		p.nesting++
		for !p.check(RIGHT_BRACKET) {
			arg, err := p.parseType()
			if err != nil {
				p.nesting--
				return nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
		}
		p.nesting--
		if _, err := p.expect(RIGHT_BRACKET, "expected ']' after type arguments"); err != nil {
			return nil, err
		}
		if args == nil {
			args = []ast.TypeExpression{}
		}
	}

	if qualifier == nil && args != nil && ast.SpecialTypeNames[name.Name] {
		return &ast.SpecialTypeDisplay{Range: p.rangeFrom(start), Identifier: name, Arguments: args}, nil
	}
	return &ast.Typename{Range: p.rangeFrom(start), Qualifier: qualifier, Identifier: name, Arguments: args}, nil
}

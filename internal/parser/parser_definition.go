package parser

import "yal/internal/ast"

// openBody consumes the opening of a definition body and returns the token
// type that will close it: `}` for braces, DEDENT for an indented suite.
func (p *Parser) openBody(what string) (TokenType, error) {
	if p.dialect.indentSensitive() && p.check(COLON) {
		p.advance()
		if _, err := p.expect(NEWLINE, "expected a line break after ':'"); err != nil {
			return DEDENT, err
		}
		if _, err := p.expect(INDENT, "expected an indented "+what+" body"); err != nil {
			return DEDENT, err
		}
		return DEDENT, nil
	}
	if _, err := p.expect(LEFT_BRACE, "expected '{' before "+what+" body"); err != nil {
		return RIGHT_BRACE, err
	}
	return RIGHT_BRACE, nil
}

func (p *Parser) closeBody(closer TokenType, what string) error {
	if closer == DEDENT && p.isAtEnd() {
		return nil
	}
	message := "expected '}' after " + what + " body"
	if closer == DEDENT {
		message = "expected end of indented " + what + " body"
	}
	_, err := p.expect(closer, message)
	return err
}

// parseMembers parses class and interface members. A malformed member is
// recorded and skipped without abandoning the rest of the body.
func (p *Parser) parseMembers(closer TokenType, allowStatic bool) []*ast.Declaration {
	members := []*ast.Declaration{}
	saved := p.nesting
	p.nesting = 0
	defer func() { p.nesting = saved }()

	for !p.isAtEnd() && !p.check(closer) {
		if p.match(SEMICOLON, NEWLINE) {
			continue
		}
		member, err := p.parseMember(allowStatic)
		if err != nil {
			p.record(err)
			p.synchronize(closer)
			continue
		}
		members = append(members, member)
	}
	return members
}

func (p *Parser) parseMember(allowStatic bool) (*ast.Declaration, error) {
	startIndex := p.current
	static := false
	if p.check(STATIC) {
		if !allowStatic {
			return nil, p.errorAt(p.peek(), "interface members cannot be static")
		}
		p.advance()
		static = true
	}

	switch p.peek().Type {
	case VAR, CONST:
		decl, err := p.parseVariableDeclaration(static)
		if err != nil {
			return nil, err
		}
		decl.Comment = p.docComment(startIndex)
		p.endStatement()
		return decl, nil
	case FUNCTION:
		decl, err := p.parseFunctionDeclaration(static)
		if err != nil {
			return nil, err
		}
		if decl.Comment == "" {
			decl.Comment = p.docComment(startIndex)
		}
		return decl, nil
	}
	return nil, p.errorAt(p.peek(), "expected 'var', 'const' or 'function' in definition body")
}

func (p *Parser) parseClass() (ast.Statement, error) {
	startIndex := p.current
	start := p.peek()
	abstract := p.match(ABSTRACT)
	if _, err := p.expect(CLASS, "expected 'class' after 'abstract'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier("expected class name")
	if err != nil {
		return nil, err
	}
	class := &ast.ClassDefinition{IsAbstract: abstract, Identifier: name, Comment: p.docComment(startIndex)}
	if p.match(EXTENDS) {
		if class.Base, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	closer, err := p.openBody("class")
	if err != nil {
		return nil, err
	}
	class.Members = p.parseMembers(closer, true)
	if err := p.closeBody(closer, "class"); err != nil {
		return nil, err
	}
	class.Range = p.rangeFrom(start)
	return class, nil
}

func (p *Parser) parseInterface() (ast.Statement, error) {
	startIndex := p.current
	start := p.advance()
	name, err := p.expectIdentifier("expected interface name")
	if err != nil {
		return nil, err
	}
	iface := &ast.InterfaceDefinition{Identifier: name, Comment: p.docComment(startIndex)}
	if p.match(EXTENDS) {
		for {
			base, err := p.parseType()
			if err != nil {
				return nil, err
			}
			iface.Bases = append(iface.Bases, base)
			if !p.match(COMMA) {
				break
			}
		}
	}
	closer, err := p.openBody("interface")
	if err != nil {
		return nil, err
	}
	iface.Members = p.parseMembers(closer, false)
	if err := p.closeBody(closer, "interface"); err != nil {
		return nil, err
	}
	iface.Range = p.rangeFrom(start)
	return iface, nil
}

// parseEnum accepts members separated by commas, semicolons or line breaks.
func (p *Parser) parseEnum() (ast.Statement, error) {
	startIndex := p.current
	start := p.advance()
	name, err := p.expectIdentifier("expected enum name")
	if err != nil {
		return nil, err
	}
	enum := &ast.EnumDefinition{Identifier: name, Members: []*ast.EnumMember{}, Comment: p.docComment(startIndex)}
	closer, err := p.openBody("enum")
	if err != nil {
		return nil, err
	}

	saved := p.nesting
	p.nesting = 0
	for !p.isAtEnd() && !p.check(closer) {
		if p.match(COMMA, SEMICOLON, NEWLINE) {
			continue
		}
		memberStart := p.peek()
		memberName, err := p.expectIdentifier("expected enum member name")
		if err != nil {
			p.nesting = saved
			return nil, err
		}
		member := &ast.EnumMember{Identifier: memberName}
		if p.match(EQUAL) {
			if member.Value, err = p.parseExpression(); err != nil {
				p.nesting = saved
				return nil, err
			}
		}
		member.Range = p.rangeFrom(memberStart)
		enum.Members = append(enum.Members, member)
	}
	p.nesting = saved

	if err := p.closeBody(closer, "enum"); err != nil {
		return nil, err
	}
	enum.Range = p.rangeFrom(start)
	return enum, nil
}

func (p *Parser) parseTypedef() (ast.Statement, error) {
	startIndex := p.current
	start := p.advance()
	name, err := p.expectIdentifier("expected typedef name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EQUAL, "expected '=' after typedef name"); err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	stmt := &ast.Typedef{Range: p.rangeFrom(start), Identifier: name, Type: t, Comment: p.docComment(startIndex)}
	p.endStatement()
	return stmt, nil
}

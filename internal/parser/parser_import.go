package parser

import "yal/internal/ast"

func (p *Parser) parseDottedPath() ([]*ast.Identifier, error) {
	path := []*ast.Identifier{}
	for {
		part, err := p.expectIdentifier("expected module name")
		if err != nil {
			return nil, err
		}
		path = append(path, part)
		if !p.match(DOT) {
			return path, nil
		}
	}
}

func (p *Parser) parseAlias() (*ast.Identifier, error) {
	if !p.match(AS) {
		return nil, nil
	}
	return p.expectIdentifier("expected alias name after 'as'")
}

// parseImport handles `import a.b.c [as name]`.
func (p *Parser) parseImport() (ast.Statement, error) {
	start := p.advance()
	path, err := p.parseDottedPath()
	if err != nil {
		return nil, err
	}
	alias, err := p.parseAlias()
	if err != nil {
		return nil, err
	}
	stmt := &ast.ImportAs{Range: p.rangeFrom(start), Path: path, Alias: alias}
	p.endStatement()
	return stmt, nil
}

// parseFromImport handles `from a.b import x [as y], ...`.
func (p *Parser) parseFromImport() (ast.Statement, error) {
	start := p.advance()
	path, err := p.parseDottedPath()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IMPORT, "expected 'import' after module path"); err != nil {
		return nil, err
	}

	names := []*ast.ImportName{}
	for {
		nameStart := p.peek()
		name, err := p.expectIdentifier("expected name to import")
		if err != nil {
			return nil, err
		}
		alias, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		names = append(names, &ast.ImportName{Range: p.rangeFrom(nameStart), Identifier: name, Alias: alias})
		if !p.match(COMMA) {
			break
		}
	}
	stmt := &ast.FromImport{Range: p.rangeFrom(start), Path: path, Names: names}
	p.endStatement()
	return stmt, nil
}

func (p *Parser) parseExport() (ast.Statement, error) {
	start := p.advance()
	name, err := p.expectIdentifier("expected name to export")
	if err != nil {
		return nil, err
	}
	alias, err := p.parseAlias()
	if err != nil {
		return nil, err
	}
	stmt := &ast.ExportAs{Range: p.rangeFrom(start), Identifier: name, Alias: alias}
	p.endStatement()
	return stmt, nil
}

package parser

import (
	"strings"

	"yal/internal/ast"
)

type binaryOperator struct {
	precedence int
	method     string
	rightAssoc bool
}

// Operators that are not in this table (assignment, `?:`) are handled
// outside the precedence loop. `and`/`or`/`as`/`in` carry no method here
// because they build dedicated nodes.
var binaryOperators = map[TokenType]binaryOperator{
	OR:              {precedence: 10},
	AND:             {precedence: 20},
	EQUAL_EQUAL:     {precedence: 30, method: "__eq__"},
	BANG_EQUAL:      {precedence: 30, method: "__ne__"},
	LESS:            {precedence: 30, method: "__lt__"},
	LESS_EQUAL:      {precedence: 30, method: "__le__"},
	GREATER:         {precedence: 30, method: "__gt__"},
	GREATER_EQUAL:   {precedence: 30, method: "__ge__"},
	IN:              {precedence: 30, method: "__contains__"},
	AS:              {precedence: 35},
	PIPE:            {precedence: 40, method: "__or__"},
	CARET:           {precedence: 50, method: "__xor__"},
	AMPERSAND:       {precedence: 60, method: "__and__"},
	LESS_LESS:       {precedence: 70, method: "__lshift__"},
	GREATER_GREATER: {precedence: 70, method: "__rshift__"},
	PLUS:            {precedence: 80, method: "__add__"},
	MINUS:           {precedence: 80, method: "__sub__"},
	STAR:            {precedence: 90, method: "__mul__"},
	SLASH:           {precedence: 90, method: "__div__"},
	SLASH_SLASH:     {precedence: 90, method: "__floordiv__"},
	PERCENT:         {precedence: 90, method: "__mod__"},
	STAR_STAR:       {precedence: 110, method: "__pow__", rightAssoc: true},
}

// Prefix operators sit between table levels: `not` binds looser than
// comparisons, arithmetic negation tighter than `*` but looser than `**`.
const (
	precedenceNot   = 25
	precedenceUnary = 100
)

var unaryMethods = map[TokenType]string{
	MINUS: "__neg__",
	PLUS:  "__pos__",
	TILDE: "__invert__",
}

var compoundAssignments = map[TokenType]string{
	PLUS_EQUAL:            "__add__",
	MINUS_EQUAL:           "__sub__",
	STAR_EQUAL:            "__mul__",
	STAR_STAR_EQUAL:       "__pow__",
	SLASH_EQUAL:           "__div__",
	SLASH_SLASH_EQUAL:     "__floordiv__",
	PERCENT_EQUAL:         "__mod__",
	AMPERSAND_EQUAL:       "__and__",
	PIPE_EQUAL:            "__or__",
	CARET_EQUAL:           "__xor__",
	LESS_LESS_EQUAL:       "__lshift__",
	GREATER_GREATER_EQUAL: "__rshift__",
}

const (
	getterPrefix = "__get_"
	setterPrefix = "__set_"
)

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	start := p.peek()
	lhs, err := p.parseConditional()
	if err != nil {
		return nil, err
	}

	opTok := p.peek()
	method, isCompound := compoundAssignments[opTok.Type]
	if opTok.Type != EQUAL && !isCompound {
		return lhs, nil
	}
	p.advance()

	rhs, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if isCompound {
		// A name is copied so the read and the write are separate nodes. For
		// `a.b += 1` and `a[i] += 1` the receiver and index are shared by the
		// getter and the setter call: they are evaluated and annotated once.
		owner := lhs
		if id, ok := lhs.(*ast.Identifier); ok {
			owner = &ast.Identifier{Range: id.Range, Name: id.Name}
		}
		rhs = &ast.MethodCall{
			Range:      p.rangeFrom(start),
			Owner:      owner,
			Identifier: &ast.Identifier{Range: opTok.Range, Name: method},
			Arguments:  []ast.Expression{rhs},
		}
	}
	return p.assignTo(lhs, rhs, start, opTok)
}

// assignTo rewrites an assignment according to the shape of its target:
// plain names become Assignment, attributes call the setter and
// subscripts call __setitem__.
func (p *Parser) assignTo(target, value ast.Expression, start, opTok Token) (ast.Expression, error) {
	r := p.rangeFrom(start)
	switch t := target.(type) {
	case *ast.Identifier:
		return &ast.Assignment{Range: r, Target: t, Value: value}, nil
	case *ast.MethodCall:
		name := t.Identifier.Name
		if strings.HasPrefix(name, getterPrefix) && len(t.Arguments) == 0 {
			return &ast.MethodCall{
				Range:      r,
				Owner:      t.Owner,
				Identifier: &ast.Identifier{Range: t.Identifier.Range, Name: setterPrefix + strings.TrimPrefix(name, getterPrefix)},
				Arguments:  []ast.Expression{value},
			}, nil
		}
		if name == "__getitem__" && len(t.Arguments) == 1 {
			return &ast.MethodCall{
				Range:      r,
				Owner:      t.Owner,
				Identifier: &ast.Identifier{Range: t.Identifier.Range, Name: "__setitem__"},
				Arguments:  []ast.Expression{t.Arguments[0], value},
			}, nil
		}
	}
	return nil, p.errorAt(opTok, "invalid assignment target")
}

func (p *Parser) parseConditional() (ast.Expression, error) {
	start := p.peek()
	condition, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if !p.check(QUESTION) || p.newlineBreaks() {
		return condition, nil
	}
	p.advance()

	then, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "expected ':' in conditional expression"); err != nil {
		return nil, err
	}
	otherwise, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Range: p.rangeFrom(start), Condition: condition, Then: then, Else: otherwise}, nil
}

// parseBinary is the precedence-climbing loop. Left-associative operators
// parse their right operand one level up; `**` reuses its own level.
func (p *Parser) parseBinary(minPrecedence int) (ast.Expression, error) {
	start := p.peek()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		negated := tok.Type == NOT && p.peekAt(1).Type == IN
		if negated {
			tok = p.peekAt(1)
		}
		op, ok := binaryOperators[tok.Type]
		if !ok || op.precedence < minPrecedence || p.newlineBreaks() {
			return left, nil
		}
		if negated {
			p.advance()
		}
		p.advance()

		if tok.Type == AS {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			left = &ast.TypeAssertion{Range: p.rangeFrom(start), Expression: left, Type: t}
			continue
		}

		next := op.precedence + 1
		if op.rightAssoc {
			next = op.precedence
		}
		right, err := p.parseBinary(next)
		if err != nil {
			return nil, err
		}

		r := p.rangeFrom(start)
		switch tok.Type {
		case AND:
			left = &ast.LogicalAnd{Range: r, Left: left, Right: right}
		case OR:
			left = &ast.LogicalOr{Range: r, Left: left, Right: right}
		case IN:
			left = &ast.MethodCall{
				Range:      r,
				Owner:      right,
				Identifier: &ast.Identifier{Range: tok.Range, Name: op.method},
				Arguments:  []ast.Expression{left},
			}
			if negated {
				left = &ast.LogicalNot{Range: r, Operand: left}
			}
		default:
			left = &ast.MethodCall{
				Range:      r,
				Owner:      left,
				Identifier: &ast.Identifier{Range: tok.Range, Name: op.method},
				Arguments:  []ast.Expression{right},
			}
		}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	start := p.peek()

	if p.match(NOT, BANG) {
		operand, err := p.parseBinary(precedenceNot + 1)
		if err != nil {
			return nil, err
		}
		return &ast.LogicalNot{Range: p.rangeFrom(start), Operand: operand}, nil
	}

	if method, ok := unaryMethods[start.Type]; ok {
		p.advance()
		operand, err := p.parseBinary(precedenceUnary + 1)
		if err != nil {
			return nil, err
		}
		return &ast.MethodCall{
			Range:      p.rangeFrom(start),
			Owner:      operand,
			Identifier: &ast.Identifier{Range: start.Range, Name: method},
		}, nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(primary, start)
}

// parsePostfix handles calls, attribute access and subscripts. A `(` or `[`
// on a new line starts a new statement instead of continuing this one.
func (p *Parser) parsePostfix(expr ast.Expression, start Token) (ast.Expression, error) {
	for {
		switch {
		case p.check(DOT):
			p.advance()
			name, err := p.expectIdentifier("expected attribute name after '.'")
			if err != nil {
				return nil, err
			}
			if p.check(LEFT_PAREN) && !p.newlineBreaks() {
				args, err := p.parseArguments()
				if err != nil {
					return nil, err
				}
				expr = &ast.MethodCall{Range: p.rangeFrom(start), Owner: expr, Identifier: name, Arguments: args}
				continue
			}
			expr = &ast.MethodCall{
				Range:      p.rangeFrom(start),
				Owner:      expr,
				Identifier: &ast.Identifier{Range: name.Range, Name: getterPrefix + name.Name},
			}

		case p.check(LEFT_PAREN) && !p.newlineBreaks():
			open := p.peek()
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.MethodCall{
				Range:      p.rangeFrom(start),
				Owner:      expr,
				Identifier: &ast.Identifier{Range: open.Range, Name: "__call__"},
				Arguments:  args,
			}

		case p.check(LEFT_BRACKET) && !p.newlineBreaks():
			open := p.advance()
			p.nesting++
			index, err := p.parseExpression()
			p.nesting--
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RIGHT_BRACKET, "expected ']' after index"); err != nil {
				return nil, err
			}
			expr = &ast.MethodCall{
				Range:      p.rangeFrom(start),
				Owner:      expr,
				Identifier: &ast.Identifier{Range: open.Range, Name: "__getitem__"},
				Arguments:  []ast.Expression{index},
			}

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArguments() ([]ast.Expression, error) {
	if _, err := p.expect(LEFT_PAREN, "expected '('"); err != nil {
		return nil, err
	}
	p.nesting++
	defer func() { p.nesting-- }()

	args := []ast.Expression{}
	for !p.check(RIGHT_PAREN) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RIGHT_PAREN, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case NULL:
		p.advance()
		return &ast.NullLiteral{Range: tok.Range}, nil
	case TRUE, FALSE:
		p.advance()
		return &ast.BooleanLiteral{Range: tok.Range, Value: tok.Type == TRUE}, nil
	case NUMBER:
		p.advance()
		return &ast.NumberLiteral{Range: tok.Range, Value: tok.NumberValue(), Raw: tok.Lexeme}, nil
	case STRING:
		p.advance()
		return &ast.StringLiteral{Range: tok.Range, Value: tok.StringValue(), Raw: tok.Lexeme}, nil
	case IDENTIFIER:
		p.advance()
		return p.identifier(tok), nil
	case LEFT_PAREN:
		if p.lambdaAhead() {
			return p.parseLambda()
		}
		p.advance()
		p.nesting++
		inner, err := p.parseExpression()
		p.nesting--
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RIGHT_PAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return inner, nil
	case LEFT_BRACKET:
		return p.parseListDisplay()
	case LEFT_BRACE:
		return p.parseRecordDisplay()
	case FUNCTION:
		p.advance()
		fn, err := p.parseFunctionRest(tok, nil, false)
		if err != nil {
			return nil, err
		}
		return fn, nil
	case NATIVE:
		return p.parseNative()
	}
	return nil, p.errorAt(tok, "expected expression")
}

func (p *Parser) parseListDisplay() (ast.Expression, error) {
	start := p.advance()
	p.nesting++
	defer func() { p.nesting-- }()

	items := []ast.Expression{}
	for !p.check(RIGHT_BRACKET) {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RIGHT_BRACKET, "expected ']' after list items"); err != nil {
		return nil, err
	}
	return &ast.ListDisplay{Range: p.rangeFrom(start), Items: items}, nil
}

// parseRecordDisplay accepts `{name: value, "quoted": value, shorthand}`.
func (p *Parser) parseRecordDisplay() (ast.Expression, error) {
	start := p.advance()
	p.nesting++
	defer func() { p.nesting-- }()

	entries := []*ast.RecordEntry{}
	for !p.check(RIGHT_BRACE) {
		keyTok := p.peek()
		var key *ast.Identifier
		switch keyTok.Type {
		case IDENTIFIER:
			key = p.identifier(p.advance())
		case STRING:
			p.advance()
			key = &ast.Identifier{Range: keyTok.Range, Name: keyTok.StringValue()}
		default:
			return nil, p.errorAt(keyTok, "expected record key")
		}

		var value ast.Expression = &ast.Identifier{Range: key.Range, Name: key.Name}
		if p.match(COLON) {
			v, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			value = v
		} else if keyTok.Type == STRING {
			return nil, p.errorAt(p.peek(), "expected ':' after quoted record key")
		}
		entries = append(entries, &ast.RecordEntry{Range: p.rangeFrom(keyTok), Key: key, Value: value})
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.expect(RIGHT_BRACE, "expected '}' after record entries"); err != nil {
		return nil, err
	}
	return &ast.RecordDisplay{Range: p.rangeFrom(start), Entries: entries}, nil
}

// lambdaAhead decides whether the `(` at the cursor opens an arrow
// function's parameter list. It scans to the balancing `)` and looks for
// `=>`, or for `: Type =>` when a return type is annotated. The cursor is
// restored before returning.
func (p *Parser) lambdaAhead() bool {
	closeAt := p.matchingClose(p.current)
	if closeAt < 0 || closeAt+1 >= len(p.tokens) {
		return false
	}
	switch p.tokens[closeAt+1].Type {
	case ARROW:
		return true
	case COLON:
		checkpoint := p.current
		defer func() { p.current = checkpoint }()
		p.current = closeAt + 2
		if _, err := p.parseType(); err != nil {
			return false
		}
		return p.check(ARROW)
	}
	return false
}

func (p *Parser) parseLambda() (ast.Expression, error) {
	start := p.peek()
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	var returnType ast.TypeExpression
	if p.match(COLON) {
		if returnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(ARROW, "expected '=>'"); err != nil {
		return nil, err
	}

	fn := &ast.FunctionDisplay{Parameters: params, ReturnType: returnType}
	if p.check(LEFT_BRACE) {
		if fn.Body, err = p.parseBlock(); err != nil {
			return nil, err
		}
	} else {
		bodyStart := p.peek()
		saved := p.nesting
		p.nesting = 0
		value, err := p.parseAssignment()
		p.nesting = saved
		if err != nil {
			return nil, err
		}
		r := p.rangeFrom(bodyStart)
		fn.Body = &ast.Block{Range: r, Statements: []ast.Statement{&ast.Return{Range: r, Value: value}}}
		fn.ExpressionBody = true
	}
	fn.Range = p.rangeFrom(start)
	return fn, nil
}

// parseNative handles `native "text"` and
// `native function(params): Type "text"`.
func (p *Parser) parseNative() (ast.Expression, error) {
	start := p.advance()
	if p.match(FUNCTION) {
		params, err := p.parseParameters()
		if err != nil {
			return nil, err
		}
		var returnType ast.TypeExpression
		if p.match(COLON) {
			if returnType, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		src, err := p.expect(STRING, "expected native source string")
		if err != nil {
			return nil, err
		}
		return &ast.NativePureFunction{
			Range:      p.rangeFrom(start),
			Parameters: params,
			ReturnType: returnType,
			Source:     src.StringValue(),
		}, nil
	}
	src, err := p.expect(STRING, "expected native source string")
	if err != nil {
		return nil, err
	}
	return &ast.NativeExpression{Range: p.rangeFrom(start), Source: src.StringValue()}, nil
}

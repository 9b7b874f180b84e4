package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"yal/internal/ast"
)

// Scanner turns source text into tokens. It never fails: anything it cannot
// make sense of becomes an ERROR token and scanning carries on.
type Scanner struct {
	source  string
	dialect Dialect
	tokens  []Token
	start   ast.Position
	pos     ast.Position

	// indentation dialect state
	indents      []string
	depth        int
	atLineStart  bool
	lineHasToken bool
}

func NewScanner(source string, opts Options) *Scanner {
	return &Scanner{
		source:      source,
		dialect:     opts.Dialect,
		indents:     []string{""},
		atLineStart: true,
	}
}

// Lex scans source in the default dialect. The result always ends with
// exactly one EOF token whose range is empty.
func Lex(source string) []Token {
	return NewScanner(source, Options{}).ScanTokens()
}

// LexWithOptions is Lex for an explicit dialect.
func LexWithOptions(source string, opts Options) []Token {
	return NewScanner(source, opts).ScanTokens()
}

func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		if s.dialect.indentSensitive() && s.atLineStart && s.depth == 0 {
			s.scanIndentation()
			if s.isAtEnd() {
				break
			}
		}
		s.start = s.pos
		s.scanToken()
	}

	if s.dialect.indentSensitive() {
		s.start = s.pos
		if s.lineHasToken {
			s.addToken(NEWLINE, nil)
		}
		for len(s.indents) > 1 {
			s.indents = s.indents[:len(s.indents)-1]
			s.addToken(DEDENT, nil)
		}
	}

	s.start = s.pos
	s.tokens = append(s.tokens, Token{Type: EOF, Range: ast.Range{Start: s.pos, End: s.pos}})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.peek()
	rest := s.source[s.pos.Offset:]

	switch {
	case c == '\n':
		s.advance()
		if s.dialect.indentSensitive() && s.depth == 0 {
			if s.lineHasToken {
				s.addToken(NEWLINE, nil)
			}
			s.atLineStart = true
			s.lineHasToken = false
		}
	case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
		s.advance()
	case strings.HasPrefix(rest, s.dialect.lineComment()):
		s.scanLineComment()
	case strings.HasPrefix(rest, "/*"):
		s.scanBlockComment()
	case c == '"' || c == '\'':
		s.scanString(c)
	case isDigit(c):
		s.scanNumber()
	case isIdentifierStart(c):
		s.scanIdentifier()
	default:
		if !s.scanSymbol() {
			s.scanUnknown()
		}
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.pos.Offset >= len(s.source)
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.pos.Offset:])
	return r
}

func (s *Scanner) peekNext() rune {
	if s.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s.source[s.pos.Offset:])
	if s.pos.Offset+size >= len(s.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.source[s.pos.Offset+size:])
	return r
}

// advance consumes one rune, keeping line, UTF-16 column/index and byte
// offset in step.
func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.pos.Offset:])
	units := utf16.RuneLen(r)
	if units < 1 {
		units = 1
	}
	s.pos.Offset += size
	s.pos.Index += units
	if r == '\n' {
		s.pos.Line++
		s.pos.Column = 0
	} else {
		s.pos.Column += units
	}
	return r
}

func (s *Scanner) addToken(tt TokenType, value any) {
	s.tokens = append(s.tokens, Token{
		Type:   tt,
		Range:  ast.Range{Start: s.start, End: s.pos},
		Lexeme: s.source[s.start.Offset:s.pos.Offset],
		Value:  value,
	})
	switch tt {
	case COMMENT, NEWLINE, INDENT, DEDENT:
	default:
		s.lineHasToken = true
	}
}

func (s *Scanner) addError(message string) {
	s.addToken(ERROR, message)
}

func (s *Scanner) scanLineComment() {
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}
	text := s.source[s.start.Offset:s.pos.Offset]
	s.addToken(COMMENT, strings.TrimSpace(strings.TrimPrefix(text, s.dialect.lineComment())))
}

func (s *Scanner) scanBlockComment() {
	s.advance()
	s.advance()
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			text := s.source[s.start.Offset+2 : s.pos.Offset-2]
			s.addToken(COMMENT, strings.TrimSpace(text))
			return
		}
		s.advance()
	}
	s.addToken(COMMENT, strings.TrimSpace(s.source[s.start.Offset+2:]))
	s.addError("unterminated block comment")
}

// scanString handles '...', "..." and their triple-quoted forms. A single
// quoted string stops at the end of the line; an unterminated string yields
// the best-effort STRING token followed by an ERROR token over the same span.
func (s *Scanner) scanString(quote rune) {
	triple := strings.Repeat(string(quote), 3)
	isTriple := strings.HasPrefix(s.source[s.pos.Offset:], triple)
	if isTriple {
		s.advance()
		s.advance()
	}
	s.advance()

	var value strings.Builder
	for {
		if s.isAtEnd() || (!isTriple && s.peek() == '\n') {
			s.addToken(STRING, value.String())
			s.addError("unterminated string literal")
			return
		}
		if isTriple && strings.HasPrefix(s.source[s.pos.Offset:], triple) {
			s.advance()
			s.advance()
			s.advance()
			break
		}
		c := s.advance()
		if !isTriple && c == quote {
			break
		}
		if c == '\\' && !s.isAtEnd() {
			s.scanEscape(&value)
			continue
		}
		value.WriteRune(c)
	}
	s.addToken(STRING, value.String())
}

func (s *Scanner) scanEscape(value *strings.Builder) {
	c := s.advance()
	switch c {
	case 'n':
		value.WriteByte('\n')
	case 't':
		value.WriteByte('\t')
	case 'r':
		value.WriteByte('\r')
	case 'b':
		value.WriteByte('\b')
	case 'f':
		value.WriteByte('\f')
	case '"', '\'', '\\':
		value.WriteRune(c)
	case '\n':
		// line continuation
	case 'u':
		if r, ok := s.scanHexDigits(4); ok {
			value.WriteRune(r)
			return
		}
		value.WriteString(`\u`)
	case 'x':
		if s.dialect.hexEscapes() {
			if r, ok := s.scanHexDigits(2); ok {
				value.WriteRune(r)
				return
			}
		}
		value.WriteString(`\x`)
	default:
		value.WriteByte('\\')
		value.WriteRune(c)
	}
}

func (s *Scanner) scanHexDigits(n int) (rune, bool) {
	rest := s.source[s.pos.Offset:]
	if len(rest) < n {
		return 0, false
	}
	v, err := strconv.ParseUint(rest[:n], 16, 32)
	if err != nil {
		return 0, false
	}
	for i := 0; i < n; i++ {
		s.advance()
	}
	return rune(v), true
}

func (s *Scanner) scanNumber() {
	if s.peek() == '0' {
		radix := 0
		switch s.peekNext() {
		case 'x', 'X':
			radix = 16
		case 'o', 'O':
			radix = 8
		case 'b', 'B':
			radix = 2
		}
		if radix != 0 {
			s.scanRadixNumber(radix)
			return
		}
	}

	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if c := s.peek(); c == 'e' || c == 'E' {
		rest := s.source[s.pos.Offset+1:]
		if len(rest) > 0 && (isDigit(rune(rest[0])) || (len(rest) > 1 && (rest[0] == '+' || rest[0] == '-') && isDigit(rune(rest[1])))) {
			s.advance()
			if c := s.peek(); c == '+' || c == '-' {
				s.advance()
			}
			for isDigit(s.peek()) {
				s.advance()
			}
		}
	}

	value, err := strconv.ParseFloat(s.source[s.start.Offset:s.pos.Offset], 64)
	if err != nil {
		s.addError("malformed number literal")
		return
	}
	s.addToken(NUMBER, value)
}

var radixNames = map[int]string{2: "binary", 8: "octal", 16: "hexadecimal"}

func (s *Scanner) scanRadixNumber(radix int) {
	s.advance()
	s.advance()
	digitsStart := s.pos.Offset
	for isRadixDigit(s.peek(), radix) || s.peek() == '_' {
		s.advance()
	}
	digits := strings.ReplaceAll(s.source[digitsStart:s.pos.Offset], "_", "")
	if c := s.peek(); isIdentifierPart(c) {
		// The whole malformed literal becomes one error token.
		for isIdentifierPart(s.peek()) {
			s.advance()
		}
		s.addError(fmt.Sprintf("invalid digit %q in %s literal", c, radixNames[radix]))
		return
	}
	if digits == "" {
		s.addError("missing digits after number prefix")
		return
	}
	value, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		s.addError("number literal out of range")
		return
	}
	s.addToken(NUMBER, float64(value))
}

func (s *Scanner) scanIdentifier() {
	for isIdentifierPart(s.peek()) {
		s.advance()
	}
	text := s.source[s.start.Offset:s.pos.Offset]
	if tt, ok := keywords[text]; ok {
		s.addToken(tt, nil)
		return
	}
	s.addToken(IDENTIFIER, text)
}

// scanSymbol takes the longest operator or punctuation match.
func (s *Scanner) scanSymbol() bool {
	rest := s.source[s.pos.Offset:]
	for n := maxSymbolLength; n > 0; n-- {
		if len(rest) < n {
			continue
		}
		tt, ok := symbols[rest[:n]]
		if !ok {
			continue
		}
		for i := 0; i < n; i++ {
			s.advance()
		}
		switch tt {
		case LEFT_PAREN, LEFT_BRACKET, LEFT_BRACE:
			s.depth++
		case RIGHT_PAREN, RIGHT_BRACKET, RIGHT_BRACE:
			if s.depth > 0 {
				s.depth--
			}
		}
		s.addToken(tt, nil)
		return true
	}
	return false
}

// scanUnknown groups a run of unrecognised characters into one ERROR token.
func (s *Scanner) scanUnknown() {
	for !s.isAtEnd() {
		c := s.peek()
		if unicode.IsSpace(c) || isIdentifierStart(c) || isDigit(c) || c == '"' || c == '\'' || s.startsSymbol() {
			break
		}
		s.advance()
	}
	if s.pos.Offset == s.start.Offset {
		s.advance()
	}
	s.addError("unexpected character " + strconv.Quote(s.source[s.start.Offset:s.pos.Offset]))
}

func (s *Scanner) startsSymbol() bool {
	_, ok := symbols[s.source[s.pos.Offset:s.pos.Offset+1]]
	return ok
}

// scanIndentation runs at the start of each physical line in the
// indentation dialect. Blank and comment-only lines do not affect the
// indentation stack.
func (s *Scanner) scanIndentation() {
	s.atLineStart = false
	s.start = s.pos
	for c := s.peek(); c == ' ' || c == '\t'; c = s.peek() {
		s.advance()
	}
	indent := s.source[s.start.Offset:s.pos.Offset]

	rest := s.source[s.pos.Offset:]
	if rest == "" || rest[0] == '\n' || rest[0] == '\r' || strings.HasPrefix(rest, s.dialect.lineComment()) {
		return
	}

	top := s.indents[len(s.indents)-1]
	switch {
	case indent == top:
	case strings.HasPrefix(indent, top):
		s.indents = append(s.indents, indent)
		s.addToken(INDENT, nil)
	case strings.HasPrefix(top, indent):
		s.start = s.pos
		for len(s.indents) > 1 && len(s.indents[len(s.indents)-1]) > len(indent) {
			s.indents = s.indents[:len(s.indents)-1]
			s.addToken(DEDENT, nil)
		}
		if s.indents[len(s.indents)-1] != indent {
			s.addError("unindent does not match any outer indentation level")
		}
	default:
		s.addError("inconsistent use of tabs and spaces in indentation")
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isRadixDigit(c rune, radix int) bool {
	switch radix {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	default:
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	}
}

func isIdentifierStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentifierPart(c rune) bool {
	return isIdentifierStart(c) || unicode.IsDigit(c)
}

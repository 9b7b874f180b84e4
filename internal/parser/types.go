package parser

import "yal/internal/ast"

type TokenType int

const (
	// Special tokens
	ERROR TokenType = iota
	EOF
	COMMENT

	// Layout tokens, only produced by the indentation dialect
	NEWLINE
	INDENT
	DEDENT

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	STRING

	// Keywords
	ABSTRACT
	AND
	AS
	BREAK
	CLASS
	CONST
	CONTINUE
	ELSE
	ENUM
	EXPORT
	EXTENDS
	FALSE
	FOR
	FROM
	FUNCTION
	IF
	IMPORT
	IN
	INTERFACE
	NATIVE
	NOT
	NULL
	OR
	RETURN
	STATIC
	TRUE
	TYPEDEF
	VAR
	WHILE

	// Operators
	PLUS
	MINUS
	STAR
	STAR_STAR
	SLASH
	SLASH_SLASH
	PERCENT
	TILDE
	AMPERSAND
	PIPE
	CARET
	LESS_LESS
	GREATER_GREATER
	EQUAL
	EQUAL_EQUAL
	BANG
	BANG_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	ARROW
	QUESTION

	// Assignment operators
	PLUS_EQUAL
	MINUS_EQUAL
	STAR_EQUAL
	STAR_STAR_EQUAL
	SLASH_EQUAL
	SLASH_SLASH_EQUAL
	PERCENT_EQUAL
	AMPERSAND_EQUAL
	PIPE_EQUAL
	CARET_EQUAL
	LESS_LESS_EQUAL
	GREATER_GREATER_EQUAL

	// Separators
	COMMA
	DOT
	SEMICOLON
	COLON
	AT

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
)

var tokenTypeNames = map[TokenType]string{
	ERROR:      "ERROR",
	EOF:        "EOF",
	COMMENT:    "COMMENT",
	NEWLINE:    "NEWLINE",
	INDENT:     "INDENT",
	DEDENT:     "DEDENT",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
}

func init() {
	for word, tt := range keywords {
		tokenTypeNames[tt] = word
	}
	for sym, tt := range symbols {
		tokenTypeNames[tt] = sym
	}
}

func (tt TokenType) String() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	return "TokenType(?)"
}

// Token is immutable once produced. Lexeme is the exact source slice the
// token covers; Value carries the decoded payload for literals (a float64
// for NUMBER, the unescaped text for STRING, the message for ERROR).
type Token struct {
	Type   TokenType
	Range  ast.Range
	Lexeme string
	Value  any
}

func (t Token) String() string {
	return t.Type.String() + " " + t.Lexeme
}

// NumberValue returns the numeric payload of a NUMBER token.
func (t Token) NumberValue() float64 {
	f, _ := t.Value.(float64)
	return f
}

// StringValue returns the decoded payload of STRING and ERROR tokens.
func (t Token) StringValue() string {
	s, _ := t.Value.(string)
	return s
}

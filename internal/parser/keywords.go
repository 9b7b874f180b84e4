package parser

var keywords = map[string]TokenType{
	"abstract":  ABSTRACT,
	"and":       AND,
	"as":        AS,
	"break":     BREAK,
	"class":     CLASS,
	"const":     CONST,
	"continue":  CONTINUE,
	"else":      ELSE,
	"enum":      ENUM,
	"export":    EXPORT,
	"extends":   EXTENDS,
	"false":     FALSE,
	"for":       FOR,
	"from":      FROM,
	"function":  FUNCTION,
	"if":        IF,
	"import":    IMPORT,
	"in":        IN,
	"interface": INTERFACE,
	"native":    NATIVE,
	"not":       NOT,
	"null":      NULL,
	"or":        OR,
	"return":    RETURN,
	"static":    STATIC,
	"true":      TRUE,
	"typedef":   TYPEDEF,
	"var":       VAR,
	"while":     WHILE,
}

// symbols is matched longest-first, so "**=" wins over "**" and "*".
var symbols = map[string]TokenType{
	"+":   PLUS,
	"-":   MINUS,
	"*":   STAR,
	"**":  STAR_STAR,
	"/":   SLASH,
	"//":  SLASH_SLASH,
	"%":   PERCENT,
	"~":   TILDE,
	"&":   AMPERSAND,
	"|":   PIPE,
	"^":   CARET,
	"<<":  LESS_LESS,
	">>":  GREATER_GREATER,
	"=":   EQUAL,
	"==":  EQUAL_EQUAL,
	"!":   BANG,
	"!=":  BANG_EQUAL,
	"<":   LESS,
	"<=":  LESS_EQUAL,
	">":   GREATER,
	">=":  GREATER_EQUAL,
	"=>":  ARROW,
	"?":   QUESTION,
	"+=":  PLUS_EQUAL,
	"-=":  MINUS_EQUAL,
	"*=":  STAR_EQUAL,
	"**=": STAR_STAR_EQUAL,
	"/=":  SLASH_EQUAL,
	"//=": SLASH_SLASH_EQUAL,
	"%=":  PERCENT_EQUAL,
	"&=":  AMPERSAND_EQUAL,
	"|=":  PIPE_EQUAL,
	"^=":  CARET_EQUAL,
	"<<=": LESS_LESS_EQUAL,
	">>=": GREATER_GREATER_EQUAL,
	",":   COMMA,
	".":   DOT,
	";":   SEMICOLON,
	":":   COLON,
	"@":   AT,
	"(":   LEFT_PAREN,
	")":   RIGHT_PAREN,
	"{":   LEFT_BRACE,
	"}":   RIGHT_BRACE,
	"[":   LEFT_BRACKET,
	"]":   RIGHT_BRACKET,
}

const maxSymbolLength = 3

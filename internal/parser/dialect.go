package parser

// Dialect selects the surface syntax variant the scanner and parser accept.
type Dialect int

const (
	// DefaultDialect uses `#` line comments and ends statements at newlines.
	DefaultDialect Dialect = iota
	// CStyleDialect uses `//` line comments and requires explicit `;`.
	CStyleDialect
	// Lang3Dialect is DefaultDialect plus significant indentation: the
	// scanner emits NEWLINE, INDENT and DEDENT and blocks may be written as
	// `:` followed by an indented suite.
	Lang3Dialect
)

var dialectNames = map[string]Dialect{
	"default": DefaultDialect,
	"c":       CStyleDialect,
	"lang3":   Lang3Dialect,
}

// ParseDialect maps a user-facing name ("default", "c", "lang3") to a Dialect.
func ParseDialect(name string) (Dialect, bool) {
	d, ok := dialectNames[name]
	return d, ok
}

func (d Dialect) String() string {
	for name, other := range dialectNames {
		if other == d {
			return name
		}
	}
	return "unknown"
}

func (d Dialect) lineComment() string {
	if d == CStyleDialect {
		return "//"
	}
	return "#"
}

// NewlineSensitive reports whether a line break may end a statement.
func (d Dialect) NewlineSensitive() bool {
	return d != CStyleDialect
}

func (d Dialect) indentSensitive() bool {
	return d == Lang3Dialect
}

func (d Dialect) hexEscapes() bool {
	return d != CStyleDialect
}

// Options configures a Lex or Parse call. The zero value is the default
// dialect.
type Options struct {
	Dialect Dialect
}

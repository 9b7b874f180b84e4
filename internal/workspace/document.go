package workspace

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"yal/internal/ast"
)

// Document is the text of one source unit as last seen by the workspace.
// Documents are replaced, never mutated, when their text changes.
type Document struct {
	URI     string
	Version int32
	Text    string

	// lineStarts holds the byte offset and UTF-16 index of each line start.
	lineStarts []lineStart
}

type lineStart struct {
	offset int
	index  int
}

func newDocument(uri string, version int32, text string) *Document {
	d := &Document{URI: uri, Version: version, Text: text}
	d.lineStarts = []lineStart{{}}
	index := 0
	for offset, r := range text {
		index += utf16.RuneLen(r)
		if r == '\n' {
			d.lineStarts = append(d.lineStarts, lineStart{offset: offset + 1, index: index})
		}
	}
	return d
}

// PositionAt converts an editor position (zero-indexed line, UTF-16
// character) to a source position. Out of range values are clamped.
func (d *Document) PositionAt(line, character int) ast.Position {
	if line < 0 {
		line = 0
	}
	if line >= len(d.lineStarts) {
		line = len(d.lineStarts) - 1
	}
	start := d.lineStarts[line]
	pos := ast.Position{Line: line, Index: start.index, Offset: start.offset}

	rest := d.Text[start.offset:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	for pos.Column < character && len(rest) > 0 {
		r, size := utf8.DecodeRuneInString(rest)
		units := utf16.RuneLen(r)
		if units < 0 {
			units = 1
		}
		pos.Column += units
		pos.Index += units
		pos.Offset += size
		rest = rest[size:]
	}
	return pos
}

// Lines reports how many lines the text has.
func (d *Document) Lines() int {
	return len(d.lineStarts)
}

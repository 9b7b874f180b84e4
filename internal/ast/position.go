package ast

import "fmt"

// Position is a zero-indexed point in a source text. Column and Index are
// measured in UTF-16 code units so they can be handed to editors unchanged;
// Offset is the byte offset into the Go string holding the source.
type Position struct {
	Line   int
	Column int
	Index  int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	return p.Index < other.Index
}

type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Contains reports whether pos lies within r, end inclusive so that a cursor
// placed right after an identifier still hits it.
func (r Range) Contains(pos Position) bool {
	return r.Start.Index <= pos.Index && pos.Index <= r.End.Index
}

// ContainsLineColumn is like Contains for callers that only know line/column.
func (r Range) ContainsLineColumn(line, column int) bool {
	if line < r.Start.Line || line > r.End.Line {
		return false
	}
	if line == r.Start.Line && column < r.Start.Column {
		return false
	}
	if line == r.End.Line && column > r.End.Column {
		return false
	}
	return true
}

func (r Range) IsEmpty() bool {
	return r.Start.Index == r.End.Index
}

// Join returns the smallest range covering both a and b.
func Join(a, b Range) Range {
	out := a
	if b.Start.Index < out.Start.Index {
		out.Start = b.Start
	}
	if b.End.Index > out.End.Index {
		out.End = b.End
	}
	return out
}

// Location ties a range to the document it was read from.
type Location struct {
	URI   string
	Range Range
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%s", l.URI, l.Range.Start)
}

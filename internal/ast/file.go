package ast

import "fmt"

// File is the parse result for one source unit. It is returned even when
// the source is malformed; syntax problems are listed in Errors.
type File struct {
	Location   Location
	Version    int32
	Statements []Statement
	Errors     []*SyntaxError
}

func (f *File) NodeRange() Range { return f.Location.Range }
func (*File) NodeType() NodeType { return FILE }
func (f *File) URI() string      { return f.Location.URI }
func (f *File) HasErrors() bool  { return len(f.Errors) > 0 }

type SyntaxError struct {
	Location Location
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

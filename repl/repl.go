// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/lmorg/readline"

	"yal/internal/ast"
	"yal/internal/errors"
	"yal/internal/parser"
	"yal/internal/semantic"
	"yal/internal/types"
)

const (
	PROMPT   = ">> "
	CONTINUE = ".. "
)

const sessionURI = "repl:session"

// Session holds every line accepted so far. Each new line is annotated
// together with that history, so earlier declarations stay in scope.
type Session struct {
	Options    parser.Options
	ShowTokens bool
	ShowAST    bool

	out     io.Writer
	history []string
	pending []string
}

func NewSession(out io.Writer, opts parser.Options) *Session {
	return &Session{Options: opts, out: out}
}

// Start reads lines from the terminal until EOF or :quit.
func Start(out io.Writer, opts parser.Options) error {
	s := NewSession(out, opts)
	rline := readline.NewInstance()
	rline.TabCompleter = s.complete

	for {
		if len(s.pending) > 0 {
			rline.SetPrompt(CONTINUE)
		} else {
			rline.SetPrompt(PROMPT)
		}
		line, err := rline.Readline()
		switch {
		case err == readline.CtrlC:
			s.pending = nil
			continue
		case err == readline.EOF:
			return nil
		case err != nil:
			return err
		}
		if s.Feed(line) {
			return nil
		}
	}
}

// Feed takes one line of input and reports whether the user asked to quit.
// Lines with unclosed brackets are buffered until they balance.
func (s *Session) Feed(line string) bool {
	if len(s.pending) == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ":") {
			return s.command(trimmed)
		}
	}
	s.pending = append(s.pending, line)
	input := strings.Join(s.pending, "\n")
	if depth(parser.LexWithOptions(input, s.Options)) > 0 {
		return false
	}
	s.pending = nil
	s.Eval(input)
	return false
}

func depth(tokens []parser.Token) int {
	n := 0
	for _, tok := range tokens {
		switch tok.Type {
		case parser.LEFT_PAREN, parser.LEFT_BRACE, parser.LEFT_BRACKET:
			n++
		case parser.RIGHT_PAREN, parser.RIGHT_BRACE, parser.RIGHT_BRACKET:
			n--
		}
	}
	return n
}

func (s *Session) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":tokens":
		s.ShowTokens = !s.ShowTokens
		fmt.Fprintf(s.out, "tokens %s\n", onOff(s.ShowTokens))
	case ":ast":
		s.ShowAST = !s.ShowAST
		fmt.Fprintf(s.out, "ast %s\n", onOff(s.ShowAST))
	case ":reset":
		s.history = nil
		fmt.Fprintln(s.out, "session cleared")
	case ":dialect":
		if len(fields) < 2 {
			fmt.Fprintf(s.out, "dialect %s\n", s.Options.Dialect)
			break
		}
		d, ok := parser.ParseDialect(fields[1])
		if !ok {
			color.New(color.FgRed).Fprintf(s.out, "unknown dialect %q\n", fields[1])
			break
		}
		s.Options.Dialect = d
		s.history = nil
		fmt.Fprintf(s.out, "dialect %s, session cleared\n", d)
	default:
		fmt.Fprintln(s.out, "commands: :tokens :ast :dialect [name] :reset :quit")
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (s *Session) prefix() string {
	if len(s.history) == 0 {
		return ""
	}
	return strings.Join(s.history, "\n") + "\n"
}

// Eval annotates input after the history. Input with errors is reported
// and dropped; otherwise it joins the history and its results are printed.
func (s *Session) Eval(input string) {
	prefix := s.prefix()
	source := prefix + input
	start := len(prefix)

	file, tokens := parser.ParseSource(sessionURI, source, s.Options)
	if s.ShowTokens {
		for _, tok := range tokens {
			if tok.Range.Start.Offset >= start && tok.Type != parser.EOF {
				fmt.Fprintln(s.out, tok)
			}
		}
	}

	ann := semantic.AnnotateFile(file)
	var diags []errors.Diagnostic
	for _, d := range ann.Errors {
		if d.Location.Range.Start.Offset >= start {
			diags = append(diags, d)
		}
	}
	if len(diags) > 0 {
		reporter := errors.NewErrorReporter("<repl>", source)
		for _, d := range diags {
			fmt.Fprint(s.out, reporter.FormatError(d))
		}
		if errors.CountErrors(diags) > 0 {
			return
		}
	}
	s.history = append(s.history, input)

	var added []ast.Statement
	for _, stmt := range file.Statements {
		if stmt.NodeRange().Start.Offset >= start {
			added = append(added, stmt)
		}
	}
	if s.ShowAST {
		for _, stmt := range added {
			fmt.Fprintln(s.out, ast.Format(stmt))
		}
	}
	for _, p := range ann.PrintInstances {
		if p.Range.Start.Offset >= start {
			fmt.Fprintln(s.out, p.Value)
		}
	}
	if len(added) == 0 {
		return
	}
	if es, ok := added[len(added)-1].(*ast.ExpressionStatement); ok {
		if line := describe(ann.Info(es.Expression)); line != "" {
			color.New(color.FgCyan).Fprintln(s.out, line)
		}
	}
}

// describe renders an expression result as "value: Type", or just the type
// when the value is not known until run time. Null results print nothing.
func describe(info *semantic.ExpressionInfo) string {
	if info == nil || info.Type == nil || info.Type == types.Null {
		return ""
	}
	if info.Value != nil {
		return fmt.Sprintf("%s: %s", types.Repr(info.Value), info.Type.Widen())
	}
	return info.Type.String()
}

func (s *Session) complete(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	word := pos
	for word > 0 && (unicode.IsLetter(line[word-1]) || unicode.IsDigit(line[word-1]) || line[word-1] == '_') {
		word--
	}
	partial := string(line[word:pos])
	return partial, s.Completions(partial), nil, readline.TabDisplayGrid
}

// Completions lists the suffixes of visible names and keywords that extend
// partial.
func (s *Session) Completions(partial string) []string {
	source := s.prefix()
	file, _ := parser.ParseSource(sessionURI, source, s.Options)
	ann := semantic.AnnotateFile(file)

	seen := map[string]bool{}
	var out []string
	for _, c := range ann.CompletionsAt(file.Location.Range.End) {
		if strings.HasPrefix(c.Label, partial) && !seen[c.Label] {
			seen[c.Label] = true
			out = append(out, c.Label[len(partial):])
		}
	}
	sort.Strings(out)
	return out
}

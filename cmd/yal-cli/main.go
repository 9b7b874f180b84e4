// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"yal/internal/ast"
	"yal/internal/errors"
	"yal/internal/parser"
	"yal/internal/workspace"
)

func main() {
	showTokens := flag.Bool("tokens", false, "print the token stream")
	showAST := flag.Bool("ast", false, "print the syntax tree")
	dialectName := flag.String("dialect", "default", "source dialect: default, c or lang3")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: yal [--tokens] [--ast] [--dialect name] <file.yal>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	dialect, ok := parser.ParseDialect(*dialectName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown dialect %q\n", *dialectName)
		os.Exit(1)
	}

	startTime := time.Now()
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve %s: %v\n", path, err)
		os.Exit(1)
	}

	// Imports resolve against the file's directory.
	ws, err := workspace.New(workspace.Settings{Root: filepath.Dir(abs), Dialect: dialect})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create workspace: %v\n", err)
		os.Exit(1)
	}
	uri := workspace.PathToURI(abs)
	ws.Open(uri, 1, string(source))
	res, err := ws.AnnotateDocument(context.Background(), uri)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to annotate %s: %v\n", path, err)
		os.Exit(1)
	}

	if *showTokens {
		for _, tok := range res.Tokens {
			fmt.Printf("%d:%d\t%s\n", tok.Range.Start.Line+1, tok.Range.Start.Column+1, tok)
		}
	}
	if *showAST {
		for _, stmt := range res.File.Statements {
			fmt.Println(ast.Format(stmt))
		}
	}
	ann := res.Annotation

	errorReporter := errors.NewErrorReporter(path, string(source))
	errors.Sort(ann.Errors)
	for _, d := range ann.Errors {
		fmt.Print(errorReporter.FormatError(d))
	}
	for _, p := range ann.PrintInstances {
		fmt.Println(p.Value)
	}

	formattedDuration := formatDuration(time.Since(startTime))
	if ann.HasErrors() {
		color.Red("Compilation failed after %s (%d errors)", formattedDuration, errors.CountErrors(ann.Errors))
		os.Exit(1)
	}
	color.Green("Successfully processed %s in %s", path, formattedDuration)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

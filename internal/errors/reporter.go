package errors

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"yal/internal/ast"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Diagnostic is a user-facing problem found in a document.
type Diagnostic struct {
	Level       ErrorLevel
	Code        string
	Message     string
	Location    ast.Location
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string    // Description of the suggestion
	Replacement string    // Suggested replacement text (optional)
	Range       ast.Range // Span the replacement applies to (optional)
}

func (d Diagnostic) String() string {
	if d.Code == "" {
		return fmt.Sprintf("%s: %s: %s", d.Location, d.Level, d.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", d.Location, d.Level, d.Code, d.Message)
}

func (d Diagnostic) IsError() bool {
	return d.Level == Error
}

// Sort orders diagnostics by document and then by start position.
func Sort(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Location, diags[j].Location
		if a.URI != b.URI {
			return a.URI < b.URI
		}
		return a.Range.Start.Index < b.Range.Start.Index
	})
}

// CountErrors returns the number of error-level diagnostics.
func CountErrors(diags []Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.IsError() {
			n++
		}
	}
	return n
}

// ErrorReporter handles consistent error formatting and suggestions
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError formats a diagnostic with Rust-like styling and suggestions.
// Positions are zero-indexed internally and shown one-indexed.
func (er *ErrorReporter) FormatError(d Diagnostic) string {
	var result strings.Builder

	levelColor := er.getLevelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0001]: message
	if d.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(d.Level)), d.Message))
	}

	start := d.Location.Range.Start
	line := start.Line + 1
	lineNumberWidth := er.getLineNumberWidth(line + 1)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), er.filename, line, start.Column+1))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if line > 1 && line-2 < len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, line-1)),
			dim("│"),
			er.lines[line-2]))
	}

	if line <= len(er.lines) {
		lineContent := er.lines[line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, line)),
			dim("│"),
			lineContent))

		marker := er.createMarker(start.Column, er.spanLength(d.Location.Range, lineContent), d.Level)
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	if line < len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, line+1)),
			dim("│"),
			er.lines[line]))
	}

	if len(d.Suggestions) > 0 {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		for i, suggestion := range d.Suggestions {
			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s %s: %s\n",
					indent, suggestionColor("help"), suggestionColor("try"), suggestion.Message))
			} else {
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("    "), suggestion.Message))
			}

			if suggestion.Replacement != "" {
				result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
				replacement := strings.ReplaceAll(suggestion.Replacement, "\n", fmt.Sprintf("\n%s %s ", indent, dim("│")))
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("│"), suggestionColor(replacement)))
			}
		}
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range d.Notes {
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), noteColor("note:"), note))
	}

	if d.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), helpColor("help:"), d.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll formats every diagnostic followed by a one-line summary.
func (er *ErrorReporter) FormatAll(diags []Diagnostic) string {
	var result strings.Builder
	warnings := 0
	for _, d := range diags {
		result.WriteString(er.FormatError(d))
		if d.Level == Warning {
			warnings++
		}
	}
	errs := CountErrors(diags)
	if errs > 0 || warnings > 0 {
		result.WriteString(fmt.Sprintf("%s: %s, %s\n", er.filename,
			plural(errs, "error"), plural(warnings, "warning")))
	}
	return result.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// spanLength is the width of the marker under the first line of r. A range
// running onto later lines is underlined to the end of its first line.
func (er *ErrorReporter) spanLength(r ast.Range, line string) int {
	if r.End.Line == r.Start.Line {
		return r.End.Column - r.Start.Column
	}
	return len([]rune(line)) - r.Start.Column
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for a zero-indexed column
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == Warning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return strings.Repeat(" ", max(0, column)) + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	return max(3, len(strconv.Itoa(line)))
}

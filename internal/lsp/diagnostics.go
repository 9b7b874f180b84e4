package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"yal/internal/ast"
	"yal/internal/errors"
)

// ConvertDiagnostics turns annotation diagnostics into LSP diagnostics.
// Syntax errors are part of the list, so one call covers every phase.
func ConvertDiagnostics(diags []errors.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		message := d.Message
		if d.HelpText != "" {
			message += "\nhelp: " + d.HelpText
		}
		for _, s := range d.Suggestions {
			message += "\nhelp: " + s.Message
		}

		diagnostic := protocol.Diagnostic{
			Range:    convertRange(d.Location.Range),
			Severity: ptrSeverity(severity(d.Level)),
			Source:   ptrString(sourceName),
			Message:  message,
		}
		if d.Code != "" {
			diagnostic.Code = &protocol.IntegerOrString{Value: d.Code}
		}
		for _, note := range d.Notes {
			diagnostic.RelatedInformation = append(diagnostic.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: d.Location.URI, Range: convertRange(d.Location.Range)},
				Message:  note,
			})
		}
		out = append(out, diagnostic)
	}
	return out
}

func severity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityError
}

func convertRange(r ast.Range) protocol.Range {
	return protocol.Range{
		Start: convertPosition(r.Start),
		End:   convertPosition(r.End),
	}
}

func convertPosition(p ast.Position) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(p.Line), Character: protocol.UInteger(p.Column)}
}

func convertLocation(l ast.Location) protocol.Location {
	return protocol.Location{URI: l.URI, Range: convertRange(l.Range)}
}

func publish(ctx *glsp.Context, uri string, diags []errors.Diagnostic) {
	converted := ConvertDiagnostics(diags)
	log.Debugf("publishing %d diagnostics for %s", len(converted), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: converted,
	})
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}

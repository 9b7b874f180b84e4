package lsp

import (
	"context"
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"yal/internal/workspace"
)

var log = commonlog.GetLogger("yal.lsp")

const sourceName = "yal"

// Version is reported to clients in the initialize response.
var Version = "0.1.0"

// Handler implements the language server on top of a workspace.
type Handler struct {
	mu        sync.RWMutex
	settings  workspace.Settings
	workspace *workspace.Workspace

	// cancelScan stops the scan started by Initialized, if still running.
	cancelScan context.CancelFunc
}

// NewHandler creates a handler with a workspace that has no root until the
// client sends one.
func NewHandler(settings workspace.Settings) (*Handler, error) {
	ws, err := workspace.New(settings)
	if err != nil {
		return nil, err
	}
	return &Handler{settings: settings, workspace: ws}, nil
}

// Handler wires the methods into a glsp protocol handler.
func (h *Handler) Handler() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentHover:              h.TextDocumentHover,
		TextDocumentDefinition:         h.TextDocumentDefinition,
		TextDocumentReferences:         h.TextDocumentReferences,
		TextDocumentDocumentSymbol:     h.TextDocumentDocumentSymbol,
		TextDocumentSignatureHelp:      h.TextDocumentSignatureHelp,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

func (h *Handler) current() *workspace.Workspace {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.workspace
}

// Initialize advertises the server's capabilities and roots the workspace
// at the client's folder.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	if params.RootURI != nil && *params.RootURI != "" {
		root, err := workspace.URIToPath(*params.RootURI)
		if err != nil {
			return nil, fmt.Errorf("failed to convert root URI %s: %w", *params.RootURI, err)
		}
		settings := h.settings
		settings.Root = root
		ws, err := workspace.New(settings)
		if err != nil {
			return nil, err
		}
		h.mu.Lock()
		h.settings, h.workspace = settings, ws
		h.mu.Unlock()
		log.Infof("workspace root %s", root)
	}

	version := Version
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{"."},
				ResolveProvider:   ptrBool(false),
			},
			SignatureHelpProvider: &protocol.SignatureHelpOptions{
				TriggerCharacters: []string{"(", ","},
			},
			HoverProvider:          true,
			DefinitionProvider:     true,
			ReferencesProvider:     true,
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    sourceName,
			Version: &version,
		},
	}, nil
}

// Initialized scans the workspace in the background and publishes what it
// finds for files the editor has not opened.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ws := h.current()
	if ws.Settings().Root == "" {
		return nil
	}
	scanCtx, cancel := context.WithCancel(context.Background())
	h.mu.Lock()
	h.cancelScan = cancel
	h.mu.Unlock()

	go func() {
		defer cancel()
		results, err := ws.Scan(scanCtx)
		if err != nil {
			log.Errorf("workspace scan: %s", err)
		}
		for _, res := range results {
			if _, open := ws.Document(res.Document.URI); open {
				continue
			}
			publish(ctx, res.Document.URI, res.Annotation.Errors)
		}
	}()
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelScan != nil {
		h.cancelScan()
	}
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	h.current().Open(doc.URI, doc.Version, doc.Text)
	return h.refresh(ctx, doc.URI)
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	var text string
	found := false
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, found = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text, found = c.Text, true
			}
		}
	}
	if !found {
		return fmt.Errorf("no full-text change for %s", uri)
	}
	if _, err := h.current().Change(uri, params.TextDocument.Version, text); err != nil {
		return err
	}
	return h.refresh(ctx, uri)
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.current().Close(params.TextDocument.URI)
	return nil
}

// refresh re-annotates uri and every open document that may depend on it.
func (h *Handler) refresh(ctx *glsp.Context, uri string) error {
	ws := h.current()
	res, err := ws.Annotate(uri)
	if err != nil {
		return fmt.Errorf("failed to annotate %s: %w", uri, err)
	}
	publish(ctx, uri, res.Annotation.Errors)

	for _, other := range ws.Documents() {
		if other == uri {
			continue
		}
		res, err := ws.Annotate(other)
		if err != nil {
			log.Errorf("failed to annotate %s: %s", other, err)
			continue
		}
		for _, dep := range res.Imports {
			if dep == uri {
				publish(ctx, other, res.Annotation.Errors)
				break
			}
		}
	}
	return nil
}

// result returns the annotation of an open document.
func (h *Handler) result(uri string) (*workspace.Result, error) {
	res, err := h.current().Annotate(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate %s: %w", uri, err)
	}
	return res, nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"yal/internal/ast"
	"yal/internal/parser"
	"yal/internal/semantic"
	"yal/internal/stdlib"
	"yal/internal/types"
)

var log = commonlog.GetLogger("yal.workspace")

// Result is everything known about one version of a document.
type Result struct {
	Document   *Document
	File       *ast.File
	Tokens     []parser.Token
	Annotation *semantic.Annotation
	// Imports lists the URIs of workspace files the document imported.
	Imports []string
}

// Workspace owns the open documents and a cache of their annotations.
// It is safe for concurrent use: document bookkeeping is guarded by one
// lock and annotation runs are serialized by another, because the type
// caches the annotator fills are not synchronized.
type Workspace struct {
	settings Settings
	library  *stdlib.Library

	mu        sync.RWMutex
	documents map[string]*Document

	annotating sync.Mutex
	cache      *lru.Cache[string, *Result]
	importing  map[string]bool
}

func New(settings Settings) (*Workspace, error) {
	settings = settings.withDefaults()
	cache, err := lru.New[string, *Result](settings.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create annotation cache: %w", err)
	}
	return &Workspace{
		settings:  settings,
		library:   stdlib.Standard(),
		documents: make(map[string]*Document),
		cache:     cache,
		importing: make(map[string]bool),
	}, nil
}

func (w *Workspace) Settings() Settings {
	return w.settings
}

// Open starts tracking an editor-managed document.
func (w *Workspace) Open(uri string, version int32, text string) *Document {
	doc := newDocument(uri, version, text)
	w.mu.Lock()
	w.documents[uri] = doc
	w.mu.Unlock()
	w.invalidate(uri)
	log.Debugf("opened %s (version %d)", uri, version)
	return doc
}

// Change replaces the text of an open document. Versions must increase.
func (w *Workspace) Change(uri string, version int32, text string) (*Document, error) {
	w.mu.Lock()
	old, ok := w.documents[uri]
	if ok && version < old.Version {
		w.mu.Unlock()
		return nil, fmt.Errorf("stale change for %s: version %d after %d", uri, version, old.Version)
	}
	doc := newDocument(uri, version, text)
	w.documents[uri] = doc
	w.mu.Unlock()

	w.invalidate(uri)
	log.Debugf("changed %s (version %d)", uri, version)
	return doc, nil
}

// Close stops tracking a document. Later imports read it from disk again.
func (w *Workspace) Close(uri string) {
	w.mu.Lock()
	delete(w.documents, uri)
	w.mu.Unlock()
	w.invalidate(uri)
	log.Debugf("closed %s", uri)
}

// Document returns the open document for uri.
func (w *Workspace) Document(uri string) (*Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc, ok := w.documents[uri]
	return doc, ok
}

// Documents lists the open URIs in sorted order.
func (w *Workspace) Documents() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	uris := make([]string, 0, len(w.documents))
	for uri := range w.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// AnnotateDocument fetches the text for uri (the open document if there is
// one, the file on disk otherwise) and annotates it. Cancellation is only
// observed before the annotator starts.
func (w *Workspace) AnnotateDocument(ctx context.Context, uri string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := w.load(uri)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return w.annotate(doc)
}

// Annotate is AnnotateDocument without cancellation.
func (w *Workspace) Annotate(uri string) (*Result, error) {
	return w.AnnotateDocument(context.Background(), uri)
}

// Scan annotates every source file under the root directory. Files are read
// concurrently; annotation runs one document at a time and stops between
// documents once ctx is done, returning what was finished.
func (w *Workspace) Scan(ctx context.Context) ([]*Result, error) {
	if w.settings.Root == "" {
		return nil, nil
	}
	paths, err := w.sourceFiles()
	if err != nil {
		return nil, err
	}
	log.Infof("scanning %d files under %s", len(paths), w.settings.Root)

	docs := make([]*Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.settings.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := w.load(PathToURI(path))
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			log.Infof("scan cancelled after %d of %d files", len(results), len(docs))
			return results, err
		}
		res, err := w.annotate(doc)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (w *Workspace) sourceFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(w.settings.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != w.settings.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Extension {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", w.settings.Root, err)
	}
	return paths, nil
}

// load returns the open document for uri or reads it from disk.
func (w *Workspace) load(uri string) (*Document, error) {
	if doc, ok := w.Document(uri); ok {
		return doc, nil
	}
	path, err := URIToPath(uri)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return newDocument(uri, 0, string(content)), nil
}

func (w *Workspace) annotate(doc *Document) (*Result, error) {
	w.annotating.Lock()
	defer w.annotating.Unlock()
	return w.annotateLocked(doc)
}

func (w *Workspace) annotateLocked(doc *Document) (*Result, error) {
	if res, ok := w.cache.Get(doc.URI); ok {
		if res.Document.Version == doc.Version && res.Document.Text == doc.Text {
			return res, nil
		}
		w.cache.Remove(doc.URI)
	}
	if w.importing[doc.URI] {
		return nil, fmt.Errorf("import cycle through %s", doc.URI)
	}
	w.importing[doc.URI] = true
	defer delete(w.importing, doc.URI)

	file, tokens := parser.ParseSource(doc.URI, doc.Text, parser.Options{Dialect: w.settings.Dialect})
	file.Version = doc.Version

	imp := &fileImporter{w: w, deps: map[string]bool{}}
	ann := semantic.AnnotateFileWithOptions(file, semantic.Options{
		Importer: types.ChainImporter{w.library, imp},
	})

	res := &Result{Document: doc, File: file, Tokens: tokens, Annotation: ann}
	for uri := range imp.deps {
		res.Imports = append(res.Imports, uri)
	}
	sort.Strings(res.Imports)
	w.cache.Add(doc.URI, res)

	log.Debugf("annotated %s (version %d): %d diagnostics", doc.URI, doc.Version, len(ann.Errors))
	return res, nil
}

// invalidate drops the cached result for uri and for everything that
// imports it, directly or not.
func (w *Workspace) invalidate(uri string) {
	w.annotating.Lock()
	defer w.annotating.Unlock()

	stale := map[string]bool{uri: true}
	for changed := true; changed; {
		changed = false
		for _, key := range w.cache.Keys() {
			if stale[key] {
				continue
			}
			res, ok := w.cache.Peek(key)
			if !ok {
				continue
			}
			for _, dep := range res.Imports {
				if stale[dep] {
					stale[key] = true
					changed = true
					break
				}
			}
		}
	}
	for key := range stale {
		w.cache.Remove(key)
	}
}

// fileImporter resolves import paths to files under the workspace root:
// `import a.b` reads <root>/a/b.yal.
type fileImporter struct {
	w    *Workspace
	deps map[string]bool
}

func (f *fileImporter) Import(path string) (*types.Type, error) {
	if f.w.settings.Root == "" {
		return nil, fmt.Errorf("%w: %s", types.ErrModuleNotFound, path)
	}
	file := filepath.Join(f.w.settings.Root, filepath.FromSlash(strings.ReplaceAll(path, ".", "/"))) + Extension
	uri := PathToURI(file)

	doc, err := f.w.load(uri)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", types.ErrModuleNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	f.deps[uri] = true

	res, err := f.w.annotateLocked(doc)
	if err != nil {
		return nil, err
	}
	return res.Annotation.Module(types.ModuleName(path)), nil
}

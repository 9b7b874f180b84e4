package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModuleNotFound is returned by an Importer that does not know a path.
var ErrModuleNotFound = errors.New("module not found")

// Importer resolves a dotted import path to a module type.
type Importer interface {
	Import(path string) (*Type, error)
}

// ImporterFunc adapts a function to the Importer interface.
type ImporterFunc func(path string) (*Type, error)

func (f ImporterFunc) Import(path string) (*Type, error) { return f(path) }

// ChainImporter asks each importer in turn and returns the first module
// found. Errors other than ErrModuleNotFound stop the search.
type ChainImporter []Importer

func (c ChainImporter) Import(path string) (*Type, error) {
	for _, imp := range c {
		if imp == nil {
			continue
		}
		mod, err := imp.Import(path)
		if err == nil {
			return mod, nil
		}
		if !errors.Is(err, ErrModuleNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, path)
}

// MapImporter serves a fixed set of modules, mainly for tests.
type MapImporter map[string]*Type

func (m MapImporter) Import(path string) (*Type, error) {
	if mod, ok := m[path]; ok {
		return mod, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, path)
}

// JoinPath renders path segments the way import statements spell them.
func JoinPath(parts []string) string {
	return strings.Join(parts, ".")
}

// ModuleName is the last segment of a dotted path; `import a.b` binds b.
func ModuleName(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

package stdlib

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"yal/internal/types"
)

//go:embed modules/*.yali
var sources embed.FS

// Library is the set of standard modules. Each module type is built once so
// that every import of the same path sees the same module.
type Library struct {
	modules map[string]*types.Type
	docs    map[string]string
}

var standard = sync.OnceValue(func() *Library {
	lib, err := load()
	if err != nil {
		panic(err)
	}
	return lib
})

func load() (*Library, error) {
	entries, err := sources.ReadDir("modules")
	if err != nil {
		return nil, err
	}
	lib := &Library{modules: map[string]*types.Type{}, docs: map[string]string{}}
	for _, entry := range entries {
		data, err := sources.ReadFile(path.Join("modules", entry.Name()))
		if err != nil {
			return nil, err
		}
		prelude, err := types.ParsePrelude(entry.Name(), string(data))
		if err != nil {
			return nil, err
		}
		for _, name := range prelude.ModuleNames() {
			if _, dup := lib.modules[name]; dup {
				return nil, fmt.Errorf("%s: module %s is already defined", entry.Name(), name)
			}
			mod, err := prelude.Module(name)
			if err != nil {
				return nil, err
			}
			lib.modules[name] = mod
			lib.docs[name] = leadingComment(string(data))
		}
	}
	return lib, nil
}

// leadingComment returns the `#` comment block a module file opens with.
func leadingComment(source string) string {
	var lines []string
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			break
		}
		lines = append(lines, strings.TrimSpace(strings.TrimPrefix(line, "#")))
	}
	return strings.Join(lines, "\n")
}

// Standard returns the standard library.
func Standard() *Library {
	return standard()
}

// Import implements types.Importer.
func (l *Library) Import(modulePath string) (*types.Type, error) {
	if mod, ok := l.modules[modulePath]; ok {
		return mod, nil
	}
	return nil, fmt.Errorf("%w: %s", types.ErrModuleNotFound, modulePath)
}

// Names lists the module paths in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.modules))
	for name := range l.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Doc returns the description written at the top of a module's source.
func (l *Library) Doc(modulePath string) string {
	return l.docs[modulePath]
}

// IsKnownModule checks if a module path is a standard library module.
func IsKnownModule(modulePath string) bool {
	_, ok := Standard().modules[modulePath]
	return ok
}

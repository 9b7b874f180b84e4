package workspace

import (
	"runtime"

	"yal/internal/parser"
)

const (
	defaultCacheSize = 128
	// Extension marks the files a scan picks up and the importer resolves.
	Extension = ".yal"
)

// Settings configures a Workspace. The zero value is usable: no root
// directory (so only open documents and the standard library are
// importable), a default cache size and one reader per CPU.
type Settings struct {
	Root        string
	CacheSize   int
	Concurrency int
	Dialect     parser.Dialect
}

func (s Settings) withDefaults() Settings {
	if s.CacheSize <= 0 {
		s.CacheSize = defaultCacheSize
	}
	if s.Concurrency <= 0 {
		s.Concurrency = runtime.GOMAXPROCS(0)
	}
	return s
}

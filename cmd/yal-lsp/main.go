// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"yal/internal/lsp"
	"yal/internal/parser"
	"yal/internal/workspace"
)

const lsName = "yal"

func main() {
	verbosity := flag.Int("verbosity", 1, "log verbosity; logs go to stderr unless --log is set")
	logPath := flag.String("log", "", "log file path")
	dialectName := flag.String("dialect", "default", "source dialect: default, c or lang3")
	cacheSize := flag.Int("cache", 0, "number of annotated documents to keep")
	flag.Parse()

	var path *string
	if *logPath != "" {
		path = logPath
	}
	commonlog.Configure(*verbosity, path)
	log := commonlog.GetLogger("yal.main")

	dialect, ok := parser.ParseDialect(*dialectName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown dialect %q\n", *dialectName)
		os.Exit(1)
	}

	handler, err := lsp.NewHandler(workspace.Settings{Dialect: dialect, CacheSize: *cacheSize})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create handler: %v\n", err)
		os.Exit(1)
	}

	s := server.NewServer(handler.Handler(), lsName, false)

	log.Infof("starting %s language server %s", lsName, lsp.Version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}

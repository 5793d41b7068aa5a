package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/example/game-save-demo/internal/savegen"
)

func main() {
	root := flag.String("root", ".", "directory to scan for schema.go files")
	importPath := flag.String("import", savegen.DefaultImportPath, "import path of the gamesave package")
	flag.Parse()

	g := savegen.New()
	g.SetRootDir(*root)
	g.SetImportPath(*importPath)
	g.SetLog(func(messages ...any) {
		fmt.Fprintln(os.Stderr, messages...)
	})
	if err := g.Run(); err != nil {
		log.Fatalf("savegen: %v", err)
	}
}

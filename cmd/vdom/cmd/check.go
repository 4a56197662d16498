package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-drift/vdom/pkg/markup"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate markup documents without rendering",
		Long: `Check decodes each document and builds its descriptor trees, reporting
unknown fields, unknown components or handlers, malformed nodes and
duplicate sibling keys. Nothing is rendered.`,
		Usage: "vdom check <file>...",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("check requires at least one document path")
	}

	reg := demoRegistry(zerolog.Nop())
	failed := 0
	for _, path := range args {
		doc, err := markup.DecodeFile(path)
		if err == nil {
			_, err = doc.Build(reg)
		}
		if err != nil {
			failed++
			fmt.Fprintf(stdout, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(stdout, "ok   %s (%d steps)\n", path, len(doc.Steps))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(args))
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/godotjs/javascript/internal/codegen/schema"
)

// SchemaCommand groups subcommands about the input document format.
type SchemaCommand struct {
	Dump SchemaDump `cmd:"" help:"Print the JSON Schema the API document is validated against"`
}

type SchemaDump struct {
	Output string `short:"o" help:"Write to this file instead of stdout" type:"path"`

	out io.Writer
}

// Run is called by Kong when the schema dump command is executed.
func (s *SchemaDump) Run(logger *slog.Logger) error {
	data := schema.DocumentSchema()
	if s.Output == "" {
		w := s.out
		if w == nil {
			w = os.Stdout
		}
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(s.Output, data, 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	logger.Info("Wrote API document schema", "file", s.Output)
	return nil
}

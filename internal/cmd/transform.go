package cmd

import (
	"log/slog"

	"github.com/vlcgo/fourccgen/internal/codegen/header"
)

// Transform runs only the definition-to-assignment rewrite, for feeding a
// preprocessor outside of fourccgen.
type Transform struct {
	Header string `arg:"" help:"C header holding the codec #define lines" type:"existingfile"`
	Output string `help:"Destination of the transformed header" short:"o" required:"" type:"path"`
	Family Family `embed:""`
}

func (t *Transform) Run(logger *slog.Logger) error {
	stats, err := header.TransformFile(t.Header, t.Output, header.Options{
		Directive: t.Family.Directive,
		Prefix:    t.Family.Prefix,
	})
	if err != nil {
		return err
	}
	logger.Info("Transformed header", "lines", stats.Lines, "definitions", stats.Rewritten, "output", t.Output)
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/vlcgo/fourccgen/internal/codegen/meta"
	"github.com/vlcgo/fourccgen/internal/codegen/scanner"
)

// Extract parses already expanded preprocessor output and prints the
// constants it finds.
type Extract struct {
	Input          string `arg:"" help:"Expanded preprocessor output" type:"existingfile"`
	Format         string `help:"Output format" default:"json" enum:"json,yaml,toml,dump"`
	Family         Family `embed:""`
	NoCheckAliases bool   `help:"Do not reject dangling or cyclic aliases" env:"FOURCCGEN_NO_CHECK_ALIASES"`
}

type entryDoc struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
	Args   string `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Line   int    `json:"line" yaml:"line" toml:"line"`
}

type bundleDoc struct {
	Source    string     `json:"source" yaml:"source" toml:"source"`
	Constants []entryDoc `json:"constants" yaml:"constants" toml:"constants"`
}

func (e *Extract) Run(logger *slog.Logger) error {
	b, err := scanner.ExtractFile(e.Input, scanner.Options{
		Prefix:      e.Family.Prefix,
		Constructor: e.Family.Constructor,
	})
	if err != nil {
		return err
	}
	if !e.NoCheckAliases {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	logger.Debug("Extracted constants", "count", b.Len(), "literals", b.Literals(), "aliases", b.Aliases())

	data, err := encodeBundle(b, e.Format)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

func encodeBundle(b *meta.Bundle, format string) ([]byte, error) {
	if format == "dump" {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		return []byte(cfg.Sdump(b.Entries)), nil
	}

	doc := bundleDoc{Source: b.Source, Constants: make([]entryDoc, 0, b.Len())}
	for _, en := range b.Entries {
		doc.Constants = append(doc.Constants, entryDoc{
			Name:   en.Name,
			Kind:   en.Kind.String(),
			Args:   en.Args,
			Target: en.Target,
			Line:   en.Line,
		})
	}

	switch format {
	case "json", "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(doc)
	case "toml":
		return toml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

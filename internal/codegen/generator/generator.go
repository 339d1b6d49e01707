package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/vlcgo/fourccgen/internal/codegen/common"
	"github.com/vlcgo/fourccgen/internal/codegen/expander"
	"github.com/vlcgo/fourccgen/internal/codegen/generator/golang"
	"github.com/vlcgo/fourccgen/internal/codegen/generator/rust"
	"github.com/vlcgo/fourccgen/internal/codegen/header"
	"github.com/vlcgo/fourccgen/internal/codegen/meta"
	"github.com/vlcgo/fourccgen/internal/codegen/scanner"
)

const (
	TransformedName = "fourcc_defs.h"
	ExpandedName    = "fourcc_defs.i"
)

// Stage names a pipeline step in diagnostics.
type Stage string

const (
	StageRead      Stage = "read"
	StageTransform Stage = "transform"
	StageExpand    Stage = "expand"
	StageExtract   Stage = "extract"
	StageEmit      Stage = "emit"
)

// StageError reports which step aborted the run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

func fail(stage Stage, err error) error { return &StageError{Stage: stage, Err: err} }

// LanguageEmitter renders a bundle as source code of one target language.
type LanguageEmitter func(logger *slog.Logger, b *meta.Bundle, target meta.Target) ([]byte, error)

var emitters = map[string]LanguageEmitter{
	"go":   golang.Render,
	"rust": rust.Render,
}

var fileNames = map[string]string{
	"go":   golang.FileName,
	"rust": rust.FileName,
}

// Languages lists the supported target languages, sorted.
func Languages() []string {
	langs := make([]string, 0, len(emitters))
	for k := range emitters {
		langs = append(langs, k)
	}
	sort.Strings(langs)
	return langs
}

// DefaultFileName is the output file name used when only a directory is given.
func DefaultFileName(lang string) string {
	return fileNames[lang]
}

type Config struct {
	Header  string
	Output  string
	WorkDir string
	Lang    string

	Directive   string
	Prefix      string
	Constructor string
	Target      meta.Target

	// CheckAliases rejects dangling and cyclic aliases before emitting.
	CheckAliases bool
}

type Generator struct {
	cfg    Config
	exp    expander.Expander
	emit   LanguageEmitter
	logger *slog.Logger
}

type Result struct {
	Bundle      *meta.Bundle
	Output      string
	Transformed string
	Expanded    string
	Stats       header.Stats
}

func New(cfg Config, exp expander.Expander, logger *slog.Logger) (*Generator, error) {
	if cfg.Header == "" {
		return nil, errors.New("no input header given")
	}
	if cfg.Output == "" {
		return nil, errors.New("no output file given")
	}
	if cfg.Lang == "" {
		cfg.Lang = "go"
	}
	emit, ok := emitters[cfg.Lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language '%s' (supported: %v)", cfg.Lang, Languages())
	}
	if exp == nil {
		return nil, errors.New("no expander configured")
	}
	return &Generator{cfg: cfg, exp: exp, emit: emit, logger: logger}, nil
}

// Run executes read, transform, expand, extract and emit in order and stops
// at the first failure. The output file is only written by the last stage.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	g.logger.Info("Generating FourCC constants", "header", g.cfg.Header, "output", g.cfg.Output, "lang", g.cfg.Lang)

	workDir := g.cfg.WorkDir
	if workDir == "" {
		tmp, err := os.MkdirTemp("", "fourccgen-")
		if err != nil {
			return nil, fail(StageRead, fmt.Errorf("create work directory: %w", err))
		}
		defer os.RemoveAll(tmp)
		workDir = tmp
	} else if err := os.MkdirAll(workDir, common.DirPerm); err != nil {
		return nil, fail(StageRead, fmt.Errorf("create work directory: %w", err))
	}

	res := &Result{
		Output:      g.cfg.Output,
		Transformed: filepath.Join(workDir, TransformedName),
		Expanded:    filepath.Join(workDir, ExpandedName),
	}

	src, err := os.ReadFile(g.cfg.Header)
	if err != nil {
		return nil, fail(StageRead, fmt.Errorf("read header: %w", err))
	}

	var transformed bytes.Buffer
	res.Stats, err = header.Transform(bytes.NewReader(src), &transformed, header.Options{
		Directive: g.cfg.Directive,
		Prefix:    g.cfg.Prefix,
	})
	if err != nil {
		var le *common.LineError
		if errors.As(err, &le) {
			le.File = g.cfg.Header
		}
		return nil, fail(StageTransform, err)
	}
	if err := common.WriteFileAtomic(res.Transformed, transformed.Bytes()); err != nil {
		return nil, fail(StageTransform, err)
	}
	g.logger.Info("Transformed header", "lines", res.Stats.Lines, "definitions", res.Stats.Rewritten, "file", res.Transformed)

	expanded, err := expander.ExpandToFile(ctx, g.exp, res.Transformed, res.Expanded)
	if err != nil {
		return nil, fail(StageExpand, err)
	}
	g.logger.Debug("Expanded header", "bytes", len(expanded), "file", res.Expanded)

	bundle, err := scanner.Extract(bytes.NewReader(expanded), scanner.Options{
		Prefix:      g.cfg.Prefix,
		Constructor: g.cfg.Constructor,
		Source:      res.Expanded,
	})
	if err != nil {
		return nil, fail(StageExtract, err)
	}
	if g.cfg.CheckAliases {
		if err := bundle.Validate(); err != nil {
			return nil, fail(StageExtract, err)
		}
	}
	if bundle.Len() != res.Stats.Rewritten {
		g.logger.Warn("Constant count differs from header definitions",
			"definitions", res.Stats.Rewritten, "constants", bundle.Len())
	}
	g.logger.Info("Extracted constants", "count", bundle.Len(), "literals", bundle.Literals(), "aliases", bundle.Aliases())
	res.Bundle = bundle

	// The banner names the header, not the work directory, so the output does
	// not depend on where intermediates live.
	bundle.Source = filepath.Base(g.cfg.Header)
	content, err := g.emit(g.logger, bundle, g.cfg.Target)
	if err != nil {
		if len(content) > 0 && g.cfg.WorkDir != "" {
			debugPath := filepath.Join(workDir, filepath.Base(g.cfg.Output)+".unformatted")
			if werr := os.WriteFile(debugPath, content, common.FilePerm); werr == nil {
				g.logger.Error("Wrote unformatted output for inspection", "file", debugPath)
			}
		}
		return nil, fail(StageEmit, err)
	}
	if err := common.WriteFileAtomic(g.cfg.Output, content); err != nil {
		return nil, fail(StageEmit, err)
	}

	g.logger.Info("FourCC generation complete", "output", g.cfg.Output, "constants", bundle.Len())
	return res, nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"

	"github.com/vlcgo/fourccgen/internal/codegen/expander"
	"github.com/vlcgo/fourccgen/internal/codegen/generator"
	"github.com/vlcgo/fourccgen/internal/codegen/meta"
	"github.com/vlcgo/fourccgen/internal/stamp"
)

// stdout is where dumps and extracted bundles are printed.
var stdout io.Writer = os.Stdout

// Family selects which macros make up the codec table.
type Family struct {
	Directive   string `help:"Macro definition directive" default:"#define" env:"FOURCCGEN_DIRECTIVE"`
	Prefix      string `help:"Name prefix of the codec constants" default:"VLC_CODEC" env:"FOURCCGEN_PREFIX"`
	Constructor string `help:"Four-character constructor macro" default:"VLC_FOURCC" env:"FOURCCGEN_CONSTRUCTOR_MACRO"`
}

type Generate struct {
	Header         string             `help:"C header holding the codec #define lines" short:"i" required:"" type:"existingfile" env:"FOURCCGEN_HEADER"`
	Output         string             `help:"Output file, or an existing directory to place the default file name in" short:"o" required:"" type:"path" env:"FOURCCGEN_OUTPUT"`
	Lang           string             `help:"Target language" default:"go" enum:"go,rust" env:"FOURCCGEN_LANG"`
	WorkDir        string             `help:"Directory that keeps the intermediate files; a temporary one is used when empty" type:"path" env:"FOURCCGEN_WORK_DIR"`
	Expander       string             `help:"Macro expander: cpp runs the external preprocessor, none uses the transformed header as is" default:"cpp" enum:"cpp,none" env:"FOURCCGEN_EXPANDER"`
	CPP            expander.CPPConfig `embed:"" prefix:"cpp."`
	Family         Family             `embed:""`
	Target         meta.Target        `embed:"" prefix:"target."`
	NoCheckAliases bool               `help:"Do not reject dangling or cyclic aliases; the consuming compiler reports them instead" env:"FOURCCGEN_NO_CHECK_ALIASES"`
	Stamp          string             `help:"Stamp file; generation is skipped while it matches the inputs" type:"path" env:"FOURCCGEN_STAMP"`
	Dump           bool               `help:"Print the extracted constants after generating"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Execute(ctx, logger)
}

func (g *Generate) Execute(ctx context.Context, logger *slog.Logger) error {
	output := g.resolveOutput()

	var digest string
	if g.Stamp != "" {
		src, err := os.ReadFile(g.Header)
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		digest = stamp.Digest(src, g.fingerprint()...)
		fresh, err := stamp.Fresh(g.Stamp, digest, output)
		if err != nil {
			return err
		}
		if fresh {
			logger.Info("Header unchanged, skipping generation", "header", g.Header, "stamp", g.Stamp)
			return nil
		}
	}

	exp, err := expander.New(g.Expander, g.CPP)
	if err != nil {
		return err
	}

	gen, err := generator.New(generator.Config{
		Header:       g.Header,
		Output:       output,
		WorkDir:      g.WorkDir,
		Lang:         g.Lang,
		Directive:    g.Family.Directive,
		Prefix:       g.Family.Prefix,
		Constructor:  g.Family.Constructor,
		Target:       g.Target,
		CheckAliases: !g.NoCheckAliases,
	}, exp, logger)
	if err != nil {
		return err
	}

	res, err := gen.Run(ctx)
	if err != nil {
		return err
	}

	if g.Dump {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
		cfg.Fdump(stdout, res.Bundle.Entries)
	}

	if g.Stamp != "" {
		if err := stamp.Write(g.Stamp, digest); err != nil {
			return fmt.Errorf("write stamp: %w", err)
		}
		logger.Debug("Updated stamp", "file", g.Stamp)
	}
	return nil
}

func (g *Generate) resolveOutput() string {
	if st, err := os.Stat(g.Output); err == nil && st.IsDir() {
		return filepath.Join(g.Output, generator.DefaultFileName(g.Lang))
	}
	return g.Output
}

// fingerprint lists every setting that changes the generated file.
func (g *Generate) fingerprint() []string {
	return []string{
		g.Lang,
		g.Expander,
		g.CPP.Command,
		strings.Join(g.CPP.Args, "\x00"),
		strings.Join(g.CPP.Includes, "\x00"),
		strings.Join(g.CPP.Defines, "\x00"),
		g.Family.Directive,
		g.Family.Prefix,
		g.Family.Constructor,
		g.Target.Package,
		g.Target.Type,
		g.Target.Constructor,
		g.Target.Import,
		fmt.Sprint(!g.NoCheckAliases),
	}
}

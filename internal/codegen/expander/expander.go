// Package expander runs the macro expansion step of the pipeline. The real
// work is done by an external C preprocessor; this package only owns the
// file contract around it.
package expander

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vlcgo/fourccgen/internal/codegen/common"
)

const (
	NameCPP  = "cpp"
	NameNone = "none"
)

var ErrUnknownExpander = errors.New("unknown expander")

// Expander expands every macro reference in the file at path.
type Expander interface {
	Expand(ctx context.Context, path string) ([]byte, error)
}

// Func adapts a plain function to Expander.
type Func func(ctx context.Context, path string) ([]byte, error)

func (f Func) Expand(ctx context.Context, path string) ([]byte, error) { return f(ctx, path) }

// Passthrough returns the file unchanged. Enough for headers that include
// nothing and only alias or construct codecs.
type Passthrough struct{}

func (Passthrough) Expand(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// CPPConfig configures the external preprocessor invocation.
type CPPConfig struct {
	Command  string   `help:"Preprocessor executable" default:"cpp" env:"FOURCCGEN_CPP"`
	Args     []string `help:"Extra preprocessor arguments" default:"-P" env:"FOURCCGEN_CPP_ARGS"`
	Includes []string `help:"Include directories passed as -I" short:"I" type:"path" env:"FOURCCGEN_CPP_INCLUDES"`
	Defines  []string `help:"Macros passed as -D (NAME or NAME=VALUE)" short:"D" env:"FOURCCGEN_CPP_DEFINES"`
}

// CPP invokes a POSIX/GCC compatible C preprocessor.
type CPP struct {
	cfg CPPConfig
}

func NewCPP(cfg CPPConfig) *CPP {
	if cfg.Command == "" {
		cfg.Command = "cpp"
	}
	return &CPP{cfg: cfg}
}

// ExpandError carries the preprocessor's own diagnostics.
type ExpandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExpandError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Command)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return msg + ":\n" + s
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ExpandError) Unwrap() error { return e.Err }

func (c *CPP) args(path string) []string {
	var args []string
	args = append(args, c.cfg.Args...)
	for _, dir := range c.cfg.Includes {
		args = append(args, "-I"+dir)
	}
	for _, d := range c.cfg.Defines {
		args = append(args, "-D"+d)
	}
	return append(args, path)
}

func (c *CPP) Expand(ctx context.Context, path string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.cfg.Command, c.args(path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		ee := &ExpandError{Command: c.cfg.Command, Stderr: stderr.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			ee.ExitCode = exitErr.ExitCode()
		}
		return nil, ee
	}
	return out, nil
}

// New returns the expander registered under name.
func New(name string, cfg CPPConfig) (Expander, error) {
	switch name {
	case NameCPP, "":
		return NewCPP(cfg), nil
	case NameNone:
		return Passthrough{}, nil
	default:
		return nil, fmt.Errorf("%w %q (supported: %s, %s)", ErrUnknownExpander, name, NameCPP, NameNone)
	}
}

// ExpandToFile runs e on in and persists the raw output at out.
func ExpandToFile(ctx context.Context, e Expander, in, out string) ([]byte, error) {
	data, err := e.Expand(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := common.WriteFileAtomic(out, data); err != nil {
		return nil, fmt.Errorf("write expanded output: %w", err)
	}
	return data, nil
}

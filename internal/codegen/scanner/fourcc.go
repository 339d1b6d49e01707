package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vlcgo/fourccgen/internal/codegen/common"
	"github.com/vlcgo/fourccgen/internal/codegen/meta"
)

const (
	DefaultPrefix      = "VLC_CODEC"
	DefaultConstructor = "VLC_FOURCC"

	// Separator between name and value in expanded assignments.
	Separator = " = "

	maxLineSize = 1 << 20
)

var (
	ErrMissingSeparator = errors.New("missing \" = \" separator")
	ErrEmptyValue       = errors.New("empty value expression")
	ErrInvalidName      = errors.New("invalid constant name")
	ErrUnclassifiable   = errors.New("value is neither a constructor call nor an identifier")
	ErrDuplicateName    = errors.New("duplicate constant name")
)

// Options selects the codec family and the constructor macro.
type Options struct {
	Prefix      string
	Constructor string
	// Source is recorded in the bundle and in line errors.
	Source string
}

func (o Options) withDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Constructor == "" {
		o.Constructor = DefaultConstructor
	}
	return o
}

// Extract scans preprocessor output and returns the codec constants in
// encounter order. Lines outside the codec family are skipped.
func Extract(r io.Reader, opts Options) (*meta.Bundle, error) {
	opts = opts.withDefaults()
	bundle := meta.NewBundle(opts.Source)
	firstSeen := make(map[string]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if !strings.HasPrefix(line, opts.Prefix) {
			continue
		}

		entry, err := parseAssignment(line, opts)
		if err != nil {
			return nil, &common.LineError{File: opts.Source, Line: lineNo, Text: line, Err: err}
		}
		entry.Line = lineNo

		if !bundle.Add(entry) {
			return nil, &common.LineError{
				File: opts.Source,
				Line: lineNo,
				Text: line,
				Err:  fmt.Errorf("%w %s (first defined on line %d)", ErrDuplicateName, entry.Name, firstSeen[entry.Name]),
			}
		}
		firstSeen[entry.Name] = lineNo
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read expanded output: %w", err)
	}
	return bundle, nil
}

// ExtractFile is Extract over the file at path.
func ExtractFile(path string, opts Options) (*meta.Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open expanded output: %w", err)
	}
	defer f.Close()

	if opts.Source == "" {
		opts.Source = path
	}
	return Extract(f, opts)
}

func parseAssignment(line string, opts Options) (meta.Entry, error) {
	name, value, ok := strings.Cut(line, Separator)
	if !ok {
		return meta.Entry{}, ErrMissingSeparator
	}
	name = strings.TrimSpace(name)
	if !common.IsCIdent(name) {
		return meta.Entry{}, fmt.Errorf("%w %q", ErrInvalidName, name)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return meta.Entry{}, ErrEmptyValue
	}

	if args, ok := constructorArgs(value, opts.Constructor); ok {
		return meta.Entry{Name: name, Kind: meta.KindLiteral, Args: args}, nil
	}
	if common.IsCIdent(value) {
		return meta.Entry{Name: name, Kind: meta.KindAlias, Target: value}, nil
	}
	return meta.Entry{}, fmt.Errorf("%w: %s", ErrUnclassifiable, value)
}

// constructorArgs returns the parenthesized argument list of a constructor
// call, verbatim. The characters inside are not interpreted.
func constructorArgs(value, ctor string) (string, bool) {
	rest, ok := strings.CutPrefix(value, ctor)
	if !ok {
		return "", false
	}
	rest = strings.TrimLeft(rest, " \t")
	if len(rest) < 2 || rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", false
	}
	return rest, true
}

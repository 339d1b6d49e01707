// Package header rewrites codec macro definitions into assignments.
//
// A preprocessor discards the body of a #define until the macro is used, so
//
//	#define VLC_CODEC_4XM  VLC_FOURCC('4','X','M',' ')
//
// becomes
//
//	VLC_CODEC_4XM = VLC_FOURCC('4','X','M',' ')
//
// which the preprocessor expands in place. Every other line is copied
// unchanged so line numbers and includes survive.
package header

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vlcgo/fourccgen/internal/codegen/common"
)

const (
	DefaultDirective = "#define"
	DefaultPrefix    = "VLC_CODEC"

	maxLineSize = 1 << 20
)

var ErrMalformedDefine = errors.New("malformed codec definition")

type Options struct {
	Directive string
	Prefix    string
}

func (o Options) withDefaults() Options {
	if o.Directive == "" {
		o.Directive = DefaultDirective
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	return o
}

// Stats describes one transform run.
type Stats struct {
	Lines     int
	Rewritten int
}

// Transform copies r to w, rewriting qualifying definitions. Nothing is
// written past the first malformed line.
func Transform(r io.Reader, w io.Writer, opts Options) (Stats, error) {
	opts = opts.withDefaults()

	var stats Stats
	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		line := sc.Text()
		stats.Lines++

		name, value, ok, err := splitDefine(line, opts)
		if err != nil {
			return stats, &common.LineError{Line: stats.Lines, Text: line, Err: err}
		}
		if ok {
			line = name + " = " + value
			stats.Rewritten++
		}
		if _, err := bw.WriteString(line); err != nil {
			return stats, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return stats, err
		}
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("read header: %w", err)
	}
	return stats, bw.Flush()
}

// splitDefine reports ok=false for lines outside the codec family.
func splitDefine(line string, opts Options) (name, value string, ok bool, err error) {
	rest, found := strings.CutPrefix(line, opts.Directive)
	if !found || rest == "" || !isBlank(rest[0]) {
		return "", "", false, nil
	}
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, opts.Prefix) {
		return "", "", false, nil
	}

	i := strings.IndexAny(rest, " \t")
	if i < 0 {
		return "", "", false, fmt.Errorf("%w: no value after name", ErrMalformedDefine)
	}
	name = rest[:i]
	value = strings.TrimLeft(rest[i:], " \t")
	if value == "" {
		return "", "", false, fmt.Errorf("%w: empty value", ErrMalformedDefine)
	}
	return name, value, true, nil
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

// TransformFile transforms the header at src into a new file at dst. dst is
// only created once the whole header has been transformed.
func TransformFile(src, dst string, opts Options) (Stats, error) {
	f, err := os.Open(src)
	if err != nil {
		return Stats{}, fmt.Errorf("open header: %w", err)
	}
	defer f.Close()

	var buf strings.Builder
	stats, err := Transform(f, &buf, opts)
	if err != nil {
		var le *common.LineError
		if errors.As(err, &le) {
			le.File = src
		}
		return stats, err
	}

	if err := common.WriteFileAtomic(dst, []byte(buf.String())); err != nil {
		return stats, fmt.Errorf("write transformed header: %w", err)
	}
	return stats, nil
}

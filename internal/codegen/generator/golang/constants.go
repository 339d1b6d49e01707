// Package golang renders a codec bundle as a Go package.
package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"log/slog"
	"strings"
	"text/template"

	"github.com/vlcgo/fourccgen/internal/codegen/common"
	"github.com/vlcgo/fourccgen/internal/codegen/meta"
)

// FileName is the default name of the generated file.
const FileName = "fourcc_codecs.go"

// Defaults targets pkg/fourcc of this module.
var Defaults = meta.Target{
	Package:     "vlccodec",
	Type:        "fourcc.FourCC",
	Constructor: "fourcc.New",
	Import:      "github.com/vlcgo/fourccgen/pkg/fourcc",
}

// Go has no const function calls, so the bundle is a var block. Aliases are
// plain identifiers of the same package and may refer forward.
const constantsTemplate = `{{.Header}}

package {{.Package}}
{{if and .Import .Constants}}
import "{{.Import}}"
{{end}}{{if .Constants}}
var (
{{range .Constants}}	{{.Name}} {{$.Type}} = {{.Value}}
{{end}})
{{end}}`

var tmpl = template.Must(template.New("constants").Parse(constantsTemplate))

type goConstant struct {
	Name  string
	Value string
}

type constantsData struct {
	Header    string
	Package   string
	Import    string
	Type      string
	Constants []goConstant
}

// Render returns gofmt-ed Go source for b. When formatting fails the raw
// template output is returned alongside the error.
func Render(logger *slog.Logger, b *meta.Bundle, target meta.Target) ([]byte, error) {
	target = withDefaults(target)
	pkg := common.GoPackageName(target.Package)
	if pkg == "" {
		return nil, fmt.Errorf("invalid Go package name %q", target.Package)
	}

	data := constantsData{
		Header:  common.FileHeader("//", b.Source),
		Package: pkg,
		Import:  target.Import,
		Type:    target.Type,
	}
	for _, e := range b.Entries {
		data.Constants = append(data.Constants, goConstant{Name: e.Name, Value: value(e, target)})
	}

	logger.Debug("Rendering Go constants", "package", pkg, "constants", len(data.Constants))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting code: %w", err)
	}
	return formatted, nil
}

// The default import only makes sense for the default type.
func withDefaults(t meta.Target) meta.Target {
	if t.Type == "" && t.Import == "" {
		t.Import = Defaults.Import
	}
	t.Import = strings.TrimSpace(t.Import)
	return t.Or(meta.Target{Package: Defaults.Package, Type: Defaults.Type, Constructor: Defaults.Constructor})
}

func value(e meta.Entry, target meta.Target) string {
	if e.Kind == meta.KindAlias {
		return e.Target
	}
	return target.Constructor + e.Args
}

// Package rust renders a codec bundle as a Rust module.
package rust

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/vlcgo/fourccgen/internal/codegen/common"
	"github.com/vlcgo/fourccgen/internal/codegen/meta"
)

const FileName = "fourcc.rs"

// Defaults expect the including crate to define FourCC and a fourcc! macro
// next to the module.
var Defaults = meta.Target{
	Package:     "fourcc_consts",
	Type:        "FourCC",
	Constructor: "fourcc!",
	Import:      "super::FourCC",
}

const constantsTemplate = `{{.Header}}

pub mod {{.Module}} {
{{- if .Use}}
    #[allow(unused_imports)]
    use {{.Use}};
{{- end}}
{{range .Constants}}
    pub const {{.Name}}: {{$.Type}} = {{.Value}};
{{- end}}
}
`

var tmpl = template.Must(template.New("constants").Parse(constantsTemplate))

type rustConstant struct {
	Name  string
	Value string
}

type constantsData struct {
	Header    string
	Module    string
	Use       string
	Type      string
	Constants []rustConstant
}

// Render returns the Rust module for b. Aliases go through self:: so they
// stay valid when the module is re-exported under another name.
func Render(logger *slog.Logger, b *meta.Bundle, target meta.Target) ([]byte, error) {
	if target.Type == "" && target.Import == "" {
		target.Import = Defaults.Import
	}
	target = target.Or(meta.Target{Package: Defaults.Package, Type: Defaults.Type, Constructor: Defaults.Constructor})
	mod := common.RustModuleName(target.Package)
	if mod == "" {
		return nil, fmt.Errorf("invalid Rust module name %q", target.Package)
	}

	data := constantsData{
		Header: common.FileHeader("//", b.Source),
		Module: mod,
		Use:    target.Import,
		Type:   target.Type,
	}
	for _, e := range b.Entries {
		v := "self::" + e.Target
		if e.Kind == meta.KindLiteral {
			v = target.Constructor + e.Args
		}
		data.Constants = append(data.Constants, rustConstant{Name: e.Name, Value: v})
	}

	logger.Debug("Rendering Rust constants", "module", mod, "constants", len(data.Constants))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

package meta

// Target describes how the emitted declarations reach the FourCC primitive
// in the consuming language.
type Target struct {
	// Package is the Go package or Rust module the bundle is emitted as.
	Package string `help:"Package (Go) or module (Rust) name of the generated bundle" env:"FOURCCGEN_PACKAGE"`
	// Type is the FourCC value type as written in the output.
	Type string `help:"FourCC type as referenced from generated code" env:"FOURCCGEN_TYPE"`
	// Constructor is prepended to the verbatim argument list of literals.
	Constructor string `help:"FourCC constructor as referenced from generated code" env:"FOURCCGEN_CONSTRUCTOR"`
	// Import is the Go import path or Rust use path bringing Type into scope.
	Import string `help:"Import (Go) or use (Rust) path providing the FourCC type" env:"FOURCCGEN_IMPORT"`
}

// Or fills empty fields from def.
func (t Target) Or(def Target) Target {
	if t.Package == "" {
		t.Package = def.Package
	}
	if t.Type == "" {
		t.Type = def.Type
	}
	if t.Constructor == "" {
		t.Constructor = def.Constructor
	}
	if t.Import == "" {
		t.Import = def.Import
	}
	return t
}

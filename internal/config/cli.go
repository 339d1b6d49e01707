// Package config defines the command line surface of fourccgen. Every flag
// can also come from the environment or a json/yaml/toml config file.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/vlcgo/fourccgen/internal/cmd"
	"github.com/vlcgo/fourccgen/internal/log"
)

type CLI struct {
	Config  string           `help:"Config file (json, yaml or toml); flags and env override its values" type:"path" env:"FOURCCGEN_CONFIG"`
	Log     log.Config       `embed:"" prefix:"log."`
	Version kong.VersionFlag `help:"Print version and exit"`

	Generate  cmd.Generate      `cmd:"" help:"Generate FourCC constants from a C header"`
	Transform cmd.Transform     `cmd:"" help:"Rewrite codec #define lines into assignments"`
	Extract   cmd.Extract       `cmd:"" help:"Print the constants found in expanded preprocessor output"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

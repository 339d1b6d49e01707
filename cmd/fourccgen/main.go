// Command fourccgen turns the codec FourCC macros of a C header into
// constants of a Go package (or a Rust module).
//
//	//go:generate go run github.com/vlcgo/fourccgen/cmd/fourccgen generate -i wrapper.h -o .
package main

import (
	"os"
	"strings"

	"github.com/vlcgo/fourccgen/internal/codegen/common"
	"github.com/vlcgo/fourccgen/internal/config"
	"github.com/vlcgo/fourccgen/internal/configpaths"
	"github.com/vlcgo/fourccgen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("fourccgen"),
		kong.Description("FourCC codec constant generator"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("FOURCCGEN_CONFIG"); v != "" {
		return v
	}
	return ""
}

package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/godotjs/javascript/internal/cli"
	"github.com/godotjs/javascript/internal/codegen/common"
	"github.com/godotjs/javascript/internal/config"
	"github.com/godotjs/javascript/internal/configpaths"
	"github.com/godotjs/javascript/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	userCfg := findUserConfig(args)
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version, err := common.GetVersion()
	if err != nil {
		version = "unknown"
	}

	// Kong reports --help, --version and parse failures through this hook.
	exitCode := -1
	var c config.CLI
	parser, err := kong.New(&c,
		kong.Name("bindgen"),
		kong.Description("Generate JavaScript engine bindings for the builtin value types"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
	)
	if err != nil {
		_, _ = os.Stderr.WriteString("bindgen: " + err.Error() + "\n")
		return 2
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		parser.FatalIfErrorf(err)
	}
	if exitCode >= 0 {
		return exitCode
	}

	logger, closeFiles, err := log.SetupLogger(c.Log.Level, c.Log.File, c.Log.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		return 2
	}
	defer func() {
		for _, f := range closeFiles {
			_ = f.Close()
		}
	}()

	ctx.Bind(logger)
	if err := ctx.Run(); err != nil {
		cli.NewDiagnosticReporter(os.Stderr).Report(err)
		return 1
	}
	return 0
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
	if v := os.Getenv("BINDGEN_CONFIG"); v != "" {
		return v
	}
	return ""
}

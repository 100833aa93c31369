package cmd

import (
	"log/slog"

	"github.com/godotjs/javascript/internal/codegen/generator"
)

// GenerateFlags are the inputs shared by generate and watch.
type GenerateFlags struct {
	Schema                string `help:"API document describing the builtin classes (.json, .yaml)" default:"builtin_api.gen.json" type:"path" env:"BINDGEN_SCHEMA"`
	Engine                string `help:"Target engine: quickjs, duktape, or 'all'" default:"quickjs" enum:"quickjs,duktape,all" env:"BINDGEN_ENGINE"`
	Overrides             string `help:"Class configuration overrides file (.yaml, .toml, .json) layered on the built-in defaults" type:"path" env:"BINDGEN_OVERRIDES"`
	AllowUnknownOperators bool   `help:"Skip operator overloads that cannot be bound instead of failing" env:"BINDGEN_ALLOW_UNKNOWN_OPERATORS"`
}

func (f *GenerateFlags) generator(logger *slog.Logger, output string, check bool) *generator.Generator {
	return generator.New(generator.Options{
		SchemaPath:            f.Schema,
		OverridesPath:         f.Overrides,
		OutputDir:             output,
		Check:                 check,
		AllowUnknownOperators: f.AllowUnknownOperators,
	}, logger)
}

func (f *GenerateFlags) generate(logger *slog.Logger, output string, check bool) error {
	gen := f.generator(logger, output, check)
	if f.Engine == "all" {
		return gen.GenAll()
	}
	return gen.GenerateEngine(f.Engine)
}

type Generate struct {
	Output        string `arg:"" optional:"" help:"Output directory for the generated sources" default:"." type:"path"`
	GenerateFlags `embed:""`
	Check         bool `help:"Compare against the files on disk instead of writing; fail if they are out of date" env:"BINDGEN_CHECK"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	logger.Info("Starting binding generation", "schema", g.Schema, "output", g.Output, "engine", g.Engine, "check", g.Check)
	return g.generate(logger, g.Output, g.Check)
}

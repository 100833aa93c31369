package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/godotjs/javascript/internal/codegen/classconfig"
	"github.com/godotjs/javascript/internal/codegen/common"
	"github.com/godotjs/javascript/internal/codegen/generator/duktape"
	"github.com/godotjs/javascript/internal/codegen/generator/quickjs"
	"github.com/godotjs/javascript/internal/codegen/meta"
	"github.com/godotjs/javascript/internal/codegen/schema"
	"github.com/godotjs/javascript/internal/log"
)

// ErrOutOfDate is returned in check mode when a generated file on disk does
// not match what the current inputs would produce.
var ErrOutOfDate = errors.New("generated file is out of date")

type EngineGenerator struct {
	FileName string
	Render   func(logger *slog.Logger, md *meta.Metadata) ([]byte, error)
}

var generators = map[string]EngineGenerator{
	"quickjs": {FileName: quickjs.FileName, Render: quickjs.Render},
	"duktape": {FileName: duktape.FileName, Render: duktape.Render},
}

// Engines lists the supported engine names in sorted order.
func Engines() []string {
	return common.SortedKeys(generators)
}

type Options struct {
	SchemaPath    string
	OverridesPath string
	OutputDir     string
	// Check compares instead of writing.
	Check                 bool
	AllowUnknownOperators bool
}

type Generator struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Generator {
	return &Generator{
		opts:   opts,
		logger: logger,
	}
}

// GenAll generates the bindings of every engine. Nothing is written unless
// every engine rendered successfully.
func (g *Generator) GenAll() error {
	return g.generate(Engines())
}

// GenerateEngine generates the bindings of a single engine.
func (g *Generator) GenerateEngine(engine string) error {
	if _, ok := generators[engine]; !ok {
		return fmt.Errorf("unsupported engine '%s' (supported: %v)", engine, Engines())
	}
	return g.generate([]string{engine})
}

// Load reads the API document and class configuration and returns the
// resolved metadata shared by all engines.
func (g *Generator) Load() (*meta.Metadata, error) {
	g.logger.Info("Loading API document", "path", g.opts.SchemaPath)
	api, err := schema.Load(g.opts.SchemaPath)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("Loaded API document", "classes", len(api.Classes), "digest", api.Digest())

	configs, err := classconfig.Load(g.opts.OverridesPath)
	if err != nil {
		return nil, err
	}
	resolved, err := configs.Resolve(api)
	if err != nil {
		return nil, fmt.Errorf("apply class configuration: %w", err)
	}

	return &meta.Metadata{
		SchemaPath:            g.opts.SchemaPath,
		API:                   resolved,
		Classes:               configs,
		AllowUnknownOperators: g.opts.AllowUnknownOperators,
	}, nil
}

type rendered struct {
	logger *slog.Logger
	path   string
	data   []byte
}

func (g *Generator) generate(engines []string) error {
	md, err := g.Load()
	if err != nil {
		return err
	}

	outputs := make([]rendered, 0, len(engines))
	for _, engine := range engines {
		gen := generators[engine]
		logger := log.ForEngine(g.logger, engine)
		logger.Info("Generating bindings")
		data, err := gen.Render(logger, md)
		if err != nil {
			return fmt.Errorf("generate %s bindings: %w", engine, err)
		}
		outputs = append(outputs, rendered{
			logger: logger,
			path:   filepath.Join(g.opts.OutputDir, gen.FileName),
			data:   data,
		})
	}

	for _, out := range outputs {
		if g.opts.Check {
			if err := checkFile(out.path, out.data); err != nil {
				return err
			}
			out.logger.Info("Bindings up to date", "file", out.path)
			continue
		}
		if err := writeFile(out.path, out.data); err != nil {
			return err
		}
		out.logger.Info("Bindings generation complete", "file", out.path, "bytes", len(out.data))
	}
	return nil
}

func checkFile(path string, want []byte) error {
	have, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s missing: %w", path, ErrOutOfDate)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if !bytes.Equal(have, want) {
		return fmt.Errorf("%s: %w", path, ErrOutOfDate)
	}
	return nil
}

// writeFile replaces path atomically via a temporary file in the same directory.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

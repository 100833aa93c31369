package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/godotjs/javascript/internal/codegen/generator"
	"github.com/godotjs/javascript/internal/codegen/generator/duktape"
	"github.com/godotjs/javascript/internal/codegen/generator/quickjs"
)

var discard = slog.New(slog.DiscardHandler)

const apiDoc = `[{"name": "Vector2", "properties": [{"name": "x", "type": "number"}]}]`

func writeSchema(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(p, []byte(apiDoc), 0o644))
	return p
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	g := &Generate{
		Output:        out,
		GenerateFlags: GenerateFlags{Schema: writeSchema(t, dir), Engine: "all"},
	}
	require.NoError(t, g.Run(discard))
	assert.FileExists(t, filepath.Join(out, quickjs.FileName))
	assert.FileExists(t, filepath.Join(out, duktape.FileName))

	g.Check = true
	require.NoError(t, g.Run(discard))

	g.Engine = "duktape"
	require.NoError(t, os.Remove(filepath.Join(out, duktape.FileName)))
	require.ErrorIs(t, g.Run(discard), generator.ErrOutOfDate)
}

func TestSchemaDump(t *testing.T) {
	var buf bytes.Buffer
	s := &SchemaDump{out: &buf}
	require.NoError(t, s.Run(discard))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "array", doc["type"])

	s.Output = filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, s.Run(discard))
	assert.FileExists(t, s.Output)
}

type testCLI struct {
	Log struct {
		Level string `default:"info" enum:"debug,info"`
	} `embed:"" prefix:"log."`
	Generate Generate      `cmd:""`
	Watch    Watch         `cmd:""`
	Config   ConfigCommand `cmd:""`
}

func testModel(t *testing.T) *kong.Application {
	t.Helper()
	parser, err := kong.New(&testCLI{})
	require.NoError(t, err)
	return parser.Model
}

func TestConfigTemplate(t *testing.T) {
	app := testModel(t)

	root, err := Template(app, "generate", "toml")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"log.level":               "info",
		"schema":                  "builtin_api.gen.json",
		"engine":                  "quickjs",
		"allow-unknown-operators": false,
		"check":                   false,
	}, root)

	root, err = Template(app, "generate", "json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"level": "info"}, root["log"])
	assert.Equal(t, false, root["allow_unknown_operators"])

	root, err = Template(app, "watch", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "info", root["log.level"])
	watch, ok := root["watch"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "200ms", watch["debounce"])
	assert.NotContains(t, watch, "output")
	assert.NotContains(t, watch, "overrides")

	_, err = Template(app, "server", "json")
	require.Error(t, err)
	_, err = Template(app, "generate", "ini")
	require.Error(t, err)
}

func configInit(t *testing.T, args ...string) error {
	t.Helper()
	parser, err := kong.New(&testCLI{})
	require.NoError(t, err)
	kctx, err := parser.Parse(append([]string{"config", "init"}, args...))
	require.NoError(t, err)
	return kctx.Run(discard)
}

func TestConfigInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "bindgen.yaml")
	require.NoError(t, configInit(t, "generate", "--format", "yaml", "--output", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{
		"schema":                  "builtin_api.gen.json",
		"engine":                  "quickjs",
		"allow-unknown-operators": false,
		"check":                   false,
	}, got["generate"])

	require.Error(t, configInit(t, "generate", "--format", "yaml", "--output", dest), "existing file must not be overwritten")
	require.NoError(t, configInit(t, "generate", "--format", "yaml", "--output", dest, "--force"))
}

func TestConfigInitRoundTrip(t *testing.T) {
	loaders := map[string]kong.ConfigurationLoader{
		"json": kong.JSON,
		"yaml": kongyaml.Loader,
		"toml": kongtoml.Loader,
	}
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "bindgen."+format)
			require.NoError(t, configInit(t, "generate", "--format", format, "--output", dest))

			// Change every value away from its default so a key the loader
			// ignores shows up as a default.
			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			edited := strings.NewReplacer("quickjs", "duktape", "false", "true", "info", "debug").Replace(string(data))
			require.NoError(t, os.WriteFile(dest, []byte(edited), 0o644))

			var got testCLI
			parser, err := kong.New(&got, kong.Configuration(loaders[format], dest))
			require.NoError(t, err)
			_, err = parser.Parse([]string{"generate"})
			require.NoError(t, err)

			assert.Equal(t, "duktape", got.Generate.Engine)
			assert.True(t, got.Generate.AllowUnknownOperators)
			assert.True(t, got.Generate.Check)
			assert.Equal(t, "debug", got.Log.Level)
			assert.Equal(t, "builtin_api.gen.json", filepath.Base(got.Generate.Schema))
		})
	}
}

func TestWatchRegeneratesOnChange(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeSchema(t, dir)
	out := filepath.Join(dir, "out")
	target := filepath.Join(out, quickjs.FileName)

	w := &Watch{
		Output:        out,
		GenerateFlags: GenerateFlags{Schema: schemaPath, Engine: "quickjs"},
		Debounce:      10 * time.Millisecond,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, discard) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(target)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	updated := `[{"name": "Vector2", "properties": [{"name": "renamed_field", "type": "number"}]}]`
	require.NoError(t, os.WriteFile(schemaPath, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(target)
		return err == nil && bytes.Contains(data, []byte("renamed_field"))
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

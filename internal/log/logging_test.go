package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestSetupSplitsConsoleStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closers, err := setup(&stdout, &stderr, "debug", "", "text")
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Debug("rendering", "class", "Vector2")
	logger.Error("lookup failed", "key", "Vector4")

	assert.Contains(t, stdout.String(), "class=Vector2")
	assert.NotContains(t, stdout.String(), "lookup failed")
	assert.Contains(t, stderr.String(), "key=Vector4")
	assert.NotContains(t, stderr.String(), "rendering")
}

func TestSetupLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, _, err := setup(&stdout, &stderr, "warn", "", "text")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	Trace(logger, "too verbose")
	assert.NotContains(t, stdout.String(), "hidden")
	assert.NotContains(t, stdout.String(), "too verbose")
	assert.Contains(t, stdout.String(), "shown")

	stdout.Reset()
	logger, _, err = setup(&stdout, &stderr, "trace", "", "text")
	require.NoError(t, err)
	Trace(logger, "members", "class", "Basis")
	assert.Contains(t, stdout.String(), "class=Basis")
}

func TestSetupFileGetsEveryRecord(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "bindgen.log")
	logger, closers, err := setup(&stdout, &stderr, "info", path, "json")
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Info("written", "file", "out.cpp")
	logger.Error("failed", "key", "Vector4")
	require.NoError(t, closers[0].Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file":"out.cpp"`)
	assert.Contains(t, string(data), `"key":"Vector4"`)
	assert.Contains(t, stdout.String(), `"msg":"written"`)
	assert.Contains(t, stderr.String(), `"msg":"failed"`)
}

func TestSetupUnknownFormat(t *testing.T) {
	_, _, err := setup(&bytes.Buffer{}, &bytes.Buffer{}, "info", "", "xml")
	require.ErrorContains(t, err, `unknown log format "xml"`)
}

func TestForEngineKeepsRouting(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, _, err := setup(&stdout, &stderr, "info", "", "text")
	require.NoError(t, err)

	engine := ForEngine(logger, "duktape")
	engine.Info("Bindings generation complete")
	engine.WithGroup("class").Error("lookup failed", "name", "Vector4")

	assert.Contains(t, stdout.String(), "engine=duktape")
	assert.Contains(t, stderr.String(), "engine=duktape")
	assert.Contains(t, stderr.String(), "class.name=Vector4")
	assert.NotContains(t, stdout.String(), "lookup failed")
}

package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up test file")
	return path
}

func newTestApp(t *testing.T, cfg Config, stdin string) (*App, *bytes.Buffer) {
	t.Helper()
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a, err := NewApp(out, strings.NewReader(stdin), &bytes.Buffer{}, config)
	require.NoError(t, err)
	return a, out
}

func TestRun_AllInputsPass(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	a1 := writeInput(t, dir, "a.json", `[1, 2, 3]`)
	a2 := writeInput(t, dir, "b.json", `[]`)
	a, out := newTestApp(t, Config{TypeExpr: "list(integer)", Files: []string{a1, a2}}, "")

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, a1+": ok\n"+a2+": ok\n", out.String())
}

func TestRun_ReportsEveryFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	bad := writeInput(t, dir, "bad.json", `[{"port": 80}, {"port": 70000}]`)
	good := writeInput(t, dir, "good.json", `[{"port": 443}]`)
	a, out := newTestApp(t, Config{
		TypeExpr: `list({"port": range(1, max)})`,
		Bindings: map[string]string{"max": "65535"},
		Files:    []string{bad, good},
	}, "")

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrValidationFailed))
	require.Contains(t, err.Error(), "1 of 2 inputs")

	want := bad + ": FAIL\n" +
		"  in table value:\n" +
		"  in struct field port:\n" +
		"  value in range [1, 65535] expected, got 70000\n" +
		good + ": ok\n"
	require.Equal(t, want, out.String())
}

func TestRun_StdinAndPath(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out := newTestApp(t, Config{
		TypeExpr: "optional(string)",
		Path:     "metadata.name",
	}, `{"metadata": {"labels": {}}}`)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "<stdin>: ok\n", out.String())
}

func TestRun_StringBinding(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out := newTestApp(t, Config{
		TypeExpr: `{"env": mode}`,
		Bindings: map[string]string{"mode": "prod"},
	}, `{"env": "dev"}`)

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.ErrorIs(t, err, ErrValidationFailed)
	require.Contains(t, out.String(), `"prod" expected`)
}

func TestRun_InvalidExpression(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out := newTestApp(t, Config{TypeExpr: "list("}, "[]")

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid type expression")
	require.False(t, errors.Is(err, ErrValidationFailed))
	require.Empty(t, out.String())
}

func TestRun_UnreadableInput(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	good := writeInput(t, dir, "good.json", `{"a": 1}`)
	a, out := newTestApp(t, Config{TypeExpr: "any", Files: []string{missing, good}}, "")

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.ErrorIs(t, err, ErrValidationFailed)
	require.Contains(t, err.Error(), "1 of 2 inputs")
	require.Contains(t, out.String(), missing+": FAIL\n  failed to read input")
	require.Contains(t, out.String(), good+": ok\n")
}

func TestRun_InvalidJSON(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out := newTestApp(t, Config{TypeExpr: "any"}, "{not json")

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.ErrorIs(t, err, ErrValidationFailed)
	require.Contains(t, out.String(), "<stdin>: FAIL\n  invalid JSON document")
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out := newTestApp(t, Config{TypeExpr: "any"}, "1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// --- Act ---
	err := a.Run(ctx)

	// --- Assert ---
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, out.String())
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{LogFormat: "text", LogLevel: "warn"})
	require.Error(t, err)

	_, err = NewConfig(Config{TypeExpr: "number", LogFormat: "yaml", LogLevel: "warn"})
	require.Error(t, err)

	_, err = NewConfig(Config{TypeExpr: "number", LogFormat: "text", LogLevel: "trace"})
	require.Error(t, err)

	_, err = NewConfig(Config{TypeExpr: "number", LogFormat: "text", LogLevel: "warn", Bindings: map[string]string{"": "1"}})
	require.Error(t, err)

	cfg, err := NewConfig(Config{TypeExpr: "number", LogFormat: "json", LogLevel: "debug"})
	require.NoError(t, err)
	require.Equal(t, "number", cfg.TypeExpr)
}

func TestBindingValues(t *testing.T) {
	t.Parallel()

	cfg := Config{Bindings: map[string]string{
		"n":     "10",
		"flag":  "true",
		"names": `["a", "b"]`,
		"word":  "hello",
	}}

	values := cfg.bindingValues()
	require.Equal(t, float64(10), values["n"])
	require.Equal(t, true, values["flag"])
	require.Equal(t, []any{"a", "b"}, values["names"])
	require.Equal(t, "hello", values["word"])
}

func TestLoadEnv(t *testing.T) {
	// --- Arrange ---
	t.Setenv("SHAPECHECK_TYPE", "list(string)")
	t.Setenv("SHAPECHECK_LOG_LEVEL", "debug")

	// --- Act ---
	cfg, err := LoadEnv()

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "list(string)", cfg.TypeExpr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat, "unset variables should take their defaults")
}

func TestRun_FormatsByExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	yml := writeInput(t, dir, "deploy.yaml", "replicas: 3\nports: [80, 443]\n")
	hcl := writeInput(t, dir, "deploy.hcl", "replicas = 2.5\nports = [80]\n")
	a, out := newTestApp(t, Config{
		TypeExpr: `{"replicas": integer, "ports": list(range(1, 65535))}`,
		Files:    []string{yml, hcl},
	}, "")

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.ErrorIs(t, err, ErrValidationFailed)
	want := yml + ": ok\n" +
		hcl + ": FAIL\n" +
		"  in struct field replicas:\n" +
		"  integer expected\n"
	require.Equal(t, want, out.String())
}

func TestRun_ExplicitFormat(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a, out := newTestApp(t, Config{
		TypeExpr: "list(string)",
		Format:   FormatYAML,
		Path:     "names",
	}, "names:\n  - a\n  - b\n")

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "<stdin>: ok\n", out.String())
}

func TestNewConfig_Format(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{TypeExpr: "number", LogFormat: "text", LogLevel: "warn"})
	require.NoError(t, err)
	require.Equal(t, FormatAuto, cfg.Format, "an empty format should default to auto")

	_, err = NewConfig(Config{TypeExpr: "number", Format: "toml", LogFormat: "text", LogLevel: "warn"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid input format")
}

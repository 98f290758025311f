package driver

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rinha/interpreter-go/pkg/interpreter"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// unsetEnv clears key for the duration of the test and restores it after.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfigAppliesValuesAndResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
max_depth: 500
log_level: debug
color: false
corpus_dir: cache/corpus
corpora:
  - name: rinha
    url: https://github.com/aripiprazole/rinha-de-compiler
    tag: v1
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxDepth)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Color)
	assert.Equal(t, filepath.Join(dir, "cache", "corpus"), cfg.CorpusDir)
	assert.Equal(t, filepath.Join(dir, "fixtures"), cfg.Fixtures)

	corpus, ok := cfg.FindCorpus("rinha")
	require.True(t, ok)
	assert.Equal(t, "v1", corpus.Tag)
	_, ok = cfg.FindCorpus("missing")
	assert.False(t, ok)
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().MaxDepth, cfg.MaxDepth)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Color)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "max_dept: 3\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_dept")
}

func TestLoadConfigAggregatesIssues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
max_depth: 0
log_level: loud
corpora:
  - url: ""
    rev: abc
    tag: v1
`)

	_, err := LoadConfig(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 5)
	assert.Contains(t, err.Error(), "max_depth must be positive")
	assert.Contains(t, err.Error(), `log_level "loud"`)
}

func TestValidateBoundsMaxDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = interpreter.MaxDepthLimit
	assert.NoError(t, cfg.Validate())

	cfg.MaxDepth = interpreter.MaxDepthLimit + 1
	var verr *ValidationError
	require.ErrorAs(t, cfg.Validate(), &verr)
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0], "max_depth must be at most")
}

func TestApplyEnvRejectsOversizedDepth(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(key string) (string, bool) {
		if key == EnvMaxDepth {
			return "20000000", true
		}
		return "", false
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "max_depth must be at most")
}

func TestFindConfigWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "log_level: info\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ConfigFileName), path)
}

func TestResolveConfigWithoutFileUsesDefaults(t *testing.T) {
	for _, key := range []string{EnvMaxDepth, EnvLogLevel, EnvColor, EnvCorpusDir} {
		unsetEnv(t, key)
	}
	dir := t.TempDir()

	cfg, err := ResolveConfig("", dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, filepath.Join(dir, ".rinha", "corpus"), cfg.CorpusDir)
}

func TestResolveConfigOverlaysDotEnvAndEnvironment(t *testing.T) {
	for _, key := range []string{EnvMaxDepth, EnvLogLevel, EnvColor, EnvCorpusDir} {
		unsetEnv(t, key)
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), "max_depth: 100\nlog_level: info\n")
	writeFile(t, filepath.Join(dir, ".env"), "RINHA_MAX_DEPTH=250\nRINHA_LOG_LEVEL=error\n")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := ResolveConfig("", dir)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.MaxDepth, ".env should override rinha.yml")
	assert.Equal(t, "debug", cfg.LogLevel, "process environment should win over .env")
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	env := map[string]string{EnvMaxDepth: "deep", EnvColor: "sometimes"}
	err := cfg.ApplyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 2)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
	level, err = ParseLogLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)
}

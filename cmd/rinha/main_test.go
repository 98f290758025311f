package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/driver"
)

// isolate runs the test from an empty directory with no RINHA_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{driver.EnvMaxDepth, driver.EnvLogLevel, driver.EnvColor, driver.EnvCorpusDir} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func fixtureProgram(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "pkg", "fixtures", "testdata", "fixtures", name, "program.json"))
	require.NoError(t, err)
	return path
}

func fixturesRoot(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "pkg", "fixtures", "testdata", "fixtures"))
	require.NoError(t, err)
	return path
}

func writeProgram(t *testing.T, dir, name string, expr ast.Term) string {
	t.Helper()
	file := ast.NewFile(name, expr)
	data, err := json.Marshal(file)
	require.NoError(t, err)
	path := filepath.Join(dir, name+".json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunCommand(t *testing.T) {
	program := fixtureProgram(t, "sum")
	isolate(t)

	code, stdout, stderr := runCLI(t, "run", program)
	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "3\n", stdout)
}

func TestDefaultFormRunsProgram(t *testing.T) {
	program := fixtureProgram(t, "string_concat")
	isolate(t)

	code, stdout, _ := runCLI(t, program)
	assert.Equal(t, 0, code)
	assert.Equal(t, "a1\n1a\n", stdout)
}

func TestRunFlushesOutputBeforeError(t *testing.T) {
	program := fixtureProgram(t, "division_by_zero")
	isolate(t)

	code, stdout, stderr := runCLI(t, "--color=false", "run", program)
	assert.Equal(t, 1, code)
	assert.Equal(t, "1\n", stdout)
	assert.True(t, strings.HasPrefix(stderr, "error: DivisionByZero"), stderr)
	assert.Contains(t, stderr, "division_by_zero.rinha:")
}

func TestRunMaxDepthFlag(t *testing.T) {
	dir := isolate(t)
	loop := ast.Fn([]string{"f"}, ast.CallNamed("f", ast.ID("f")))
	program := writeProgram(t, dir, "loop", ast.Let("loop", loop, ast.CallNamed("loop", ast.ID("loop"))))

	code, _, stderr := runCLI(t, "--max-depth", "25", "run", program)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "StackExhausted")
	assert.Contains(t, stderr, "exceeded 25")
}

func TestRunMissingFile(t *testing.T) {
	dir := isolate(t)
	code, _, stderr := runCLI(t, "run", filepath.Join(dir, "nope.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "load program")
}

func TestShowCommandMatchesGolden(t *testing.T) {
	program := fixtureProgram(t, "sum")
	pkgDir, err := os.Getwd()
	require.NoError(t, err)
	isolate(t)

	code, stdout, stderr := runCLI(t, "show", program)
	require.Equal(t, 0, code, stderr)
	// golden resolves testdata/ relative to the working directory.
	require.NoError(t, os.Chdir(pkgDir))
	golden.Assert(t, stdout, "sum.show.golden")
}

func TestTestCommandRunsFixtures(t *testing.T) {
	root := fixturesRoot(t)
	isolate(t)

	code, stdout, stderr := runCLI(t, "test", "--jobs", "2", root)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "PASS sum\n")
	assert.Contains(t, stdout, "PASS tuple_first_fail\n")
	assert.Contains(t, stdout, " 0 failed, 0 skipped\n")
}

func TestTestCommandReportsFailures(t *testing.T) {
	dir := isolate(t)
	fixture := filepath.Join(dir, "fixtures", "wrong")
	require.NoError(t, os.MkdirAll(fixture, 0o755))
	writeProgram(t, fixture, "program", ast.Print(ast.Int(2)))
	require.NoError(t, os.WriteFile(filepath.Join(fixture, "manifest.yml"), []byte("expect:\n  stdout: [\"1\"]\n"), 0o644))

	code, stdout, stderr := runCLI(t, "--color=false", "test")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "FAIL wrong\n")
	assert.Contains(t, stdout, "0 passed, 1 failed, 0 skipped\n")
	assert.Contains(t, stderr, "1 fixture(s) failed")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "rinha "+Version+"\n", stdout)
}

func TestInvalidConfigIsReported(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_depth: -1\n"), 0o644))

	code, _, stderr := runCLI(t, "--config", cfgPath, "version")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "config validation failed")
}

func TestOversizedMaxDepthIsRejected(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "--max-depth", "20000000", "version")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "max_depth must be at most")
}

func TestEnvironmentOverridesDepth(t *testing.T) {
	dir := isolate(t)
	t.Setenv(driver.EnvMaxDepth, "10")
	loop := ast.Fn([]string{"f"}, ast.CallNamed("f", ast.ID("f")))
	program := writeProgram(t, dir, "loop", ast.Let("loop", loop, ast.CallNamed("loop", ast.ID("loop"))))

	code, _, stderr := runCLI(t, program)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "exceeded 10")
}

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = worktree.Add(rel)
		return err
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Rinha CLI",
			Email: "rinha@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func TestCorpusFetchByConfiguredName(t *testing.T) {
	dir := isolate(t)
	source := filepath.Join(dir, "source")
	require.NoError(t, os.MkdirAll(source, 0o755))
	writeProgram(t, source, "hello", ast.Print(ast.Str("hello")))
	commit := initGitRepo(t, source)

	config := "corpus_dir: cache\ncorpora:\n  - name: local\n    url: " + source + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, driver.ConfigFileName), []byte(config), 0o644))

	code, stdout, stderr := runCLI(t, "corpus", "fetch", "local")
	require.Equal(t, 0, code, stderr)
	checkout := strings.TrimSpace(stdout)
	assert.Equal(t, commit, filepath.Base(checkout))
	assert.True(t, strings.HasPrefix(checkout, filepath.Join(dir, "cache")), checkout)

	code, stdout, _ = runCLI(t, filepath.Join(checkout, "hello.json"))
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", stdout)

	code, stdout, _ = runCLI(t, "corpus", "list")
	assert.Equal(t, 0, code)
	assert.Equal(t, "local\t"+source+"\tHEAD\n", stdout)
}

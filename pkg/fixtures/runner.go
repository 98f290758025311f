package fixtures

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/sync/errgroup"

	"rinha/interpreter-go/pkg/driver"
	"rinha/interpreter-go/pkg/interpreter"
	"rinha/interpreter-go/pkg/runtime"
)

// Options tunes a fixture run. Jobs bounds how many fixtures RunAll
// evaluates at once; each fixture gets its own interpreter.
type Options struct {
	MaxDepth int
	Logger   *slog.Logger
	Jobs     int
}

// Result is the outcome of one fixture.
type Result struct {
	Name        string
	Dir         string
	Description string
	Skipped     bool
	Stdout      []string
	Value       runtime.Value
	Err         error
	Failures    []string
}

// Passed reports whether the fixture met every expectation.
func (r Result) Passed() bool {
	return r.Skipped || len(r.Failures) == 0
}

// Run evaluates the fixture in dir and checks it against its manifest.
// The returned error covers harness problems only (unreadable manifest or
// program); evaluation failures land in Result.
func Run(dir string, opts Options) (Result, error) {
	result := Result{Name: filepath.Base(dir), Dir: dir}
	manifest, err := LoadManifest(dir)
	if err != nil {
		return result, err
	}
	result.Description = manifest.Description
	if manifest.Skip {
		result.Skipped = true
		return result, nil
	}

	program, err := driver.LoadProgram(filepath.Join(dir, manifest.Entry))
	if err != nil {
		return result, err
	}

	var out bytes.Buffer
	interp := interpreter.New(interpreter.Options{Out: &out, Logger: opts.Logger, MaxDepth: opts.MaxDepth})
	result.Value, result.Err = interp.Run(program)
	result.Stdout = splitLines(out.String())
	result.Failures = check(manifest.Expect, result)
	return result, nil
}

// RunAll runs every fixture below root, sorted by directory. A directory is
// a fixture when it holds a manifest or the default entry program.
func RunAll(ctx context.Context, root string, opts Options) ([]Result, error) {
	dirs, err := Discover(root)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(dirs))
	group, ctx := errgroup.WithContext(ctx)
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = 1
	}
	group.SetLimit(jobs)
	for idx, dir := range dirs {
		idx, dir := idx, dir
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(dir, opts)
			if err != nil {
				return fmt.Errorf("fixture %s: %w", dir, err)
			}
			rel, relErr := filepath.Rel(root, dir)
			if relErr == nil && rel != "." {
				res.Name = filepath.ToSlash(rel)
			}
			results[idx] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Discover lists fixture directories below root.
func Discover(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		for _, name := range []string{ManifestFileName, DefaultEntry} {
			if _, err := os.Stat(filepath.Join(path, name)); err == nil {
				dirs = append(dirs, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover fixtures in %s: %w", root, err)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func check(expect Expect, result Result) []string {
	var failures []string
	if diff := cmp.Diff(expect.Stdout, result.Stdout, cmpopts.EquateEmpty()); diff != "" {
		failures = append(failures, fmt.Sprintf("stdout mismatch (-want +got):\n%s", diff))
	}

	if expect.Error != "" {
		want, _ := interpreter.ParseErrorKind(expect.Error)
		got, ok := interpreter.KindOf(result.Err)
		switch {
		case result.Err == nil:
			failures = append(failures, fmt.Sprintf("expected %s error, program succeeded", want))
		case !ok:
			failures = append(failures, fmt.Sprintf("expected %s error, got %v", want, result.Err))
		case got != want:
			failures = append(failures, fmt.Sprintf("expected %s error, got %s: %v", want, got, result.Err))
		}
		return failures
	}
	if result.Err != nil {
		return append(failures, fmt.Sprintf("unexpected error: %v", result.Err))
	}
	if expect.Result != nil {
		if msg := checkValue(*expect.Result, result.Value); msg != "" {
			failures = append(failures, msg)
		}
	}
	return failures
}

func checkValue(want ExpectedResult, got runtime.Value) string {
	if got == nil {
		return fmt.Sprintf("expected %s result, got nothing", want.Kind)
	}
	if got.Kind().String() != want.Kind {
		return fmt.Sprintf("expected %s result, got %s (%s)", want.Kind, got.Kind(), runtime.Format(got))
	}
	if want.Value == nil {
		return ""
	}
	var matches bool
	switch val := got.(type) {
	case runtime.IntegerValue:
		matches = fmt.Sprint(want.Value) == strconv.FormatInt(val.Val, 10)
	case runtime.BoolValue:
		b, ok := want.Value.(bool)
		matches = ok && b == val.Val
	default:
		matches = fmt.Sprint(want.Value) == runtime.Format(got)
	}
	if !matches {
		return fmt.Sprintf("expected result %v, got %s", want.Value, runtime.Format(got))
	}
	return ""
}

func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

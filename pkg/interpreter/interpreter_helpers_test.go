package interpreter

import (
	"bytes"
	"testing"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

// runProgram evaluates expr as a whole program and returns the value, the
// captured output and the error.
func runProgram(t *testing.T, expr ast.Term) (runtime.Value, string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(Options{Out: &out})
	val, err := interp.Run(ast.Program(expr))
	return val, out.String(), err
}

func mustRun(t *testing.T, expr ast.Term) (runtime.Value, string) {
	t.Helper()
	val, out, err := runProgram(t, expr)
	if err != nil {
		t.Fatalf("unexpected error: %v (output %q)", err, out)
	}
	return val, out
}

func expectKind(t *testing.T, err error, kind ErrorKind) *RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rerr.Kind != kind {
		t.Fatalf("expected %s error, got %s: %v", kind, rerr.Kind, err)
	}
	return rerr
}

func expectInt(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	got, ok := val.(runtime.IntegerValue)
	if !ok || got.Val != want {
		t.Fatalf("expected integer %d, got %#v", want, val)
	}
}

package interpreter

import (
	"io"
	"log/slog"
	"time"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

const (
	// DefaultMaxDepth bounds nested closure calls when Options.MaxDepth is unset.
	DefaultMaxDepth = 10000
	// MaxDepthLimit caps Options.MaxDepth. Deeper nesting would exhaust the
	// goroutine stack, which aborts the process instead of raising
	// StackExhausted.
	MaxDepthLimit = 100000
)

// Options configures an Interpreter. The zero value is usable: output is
// discarded, logging is off and the default depth limit applies. MaxDepth
// above MaxDepthLimit is clamped.
type Options struct {
	Out      io.Writer
	Logger   *slog.Logger
	MaxDepth int
}

// Interpreter walks rinha terms. It is not safe for concurrent use.
type Interpreter struct {
	out      io.Writer
	logger   *slog.Logger
	maxDepth int
	depth    int
	global   *runtime.Environment
}

// New returns an interpreter with an empty global environment.
func New(opts Options) *Interpreter {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if maxDepth > MaxDepthLimit {
		maxDepth = MaxDepthLimit
	}
	return &Interpreter{
		out:      out,
		logger:   logger,
		maxDepth: maxDepth,
		global:   runtime.NewEnvironment(nil),
	}
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Run evaluates a whole program in a fresh global environment.
func (i *Interpreter) Run(file *ast.File) (runtime.Value, error) {
	if file == nil || file.Expression == nil {
		return nil, newRuntimeError(MalformedInput, nil, "program has no expression")
	}
	i.global = runtime.NewEnvironment(nil)
	i.depth = 0
	start := time.Now()
	i.logger.Debug("evaluating program", "name", file.Name)
	val, err := i.Evaluate(file.Expression, i.global)
	if err != nil {
		i.logger.Debug("program failed", "name", file.Name, "error", err, "elapsed", time.Since(start))
		return nil, err
	}
	i.logger.Debug("program finished", "name", file.Name, "result", runtime.Format(val), "elapsed", time.Since(start))
	return val, nil
}

// Evaluate reduces term to a value in env.
func (i *Interpreter) Evaluate(term ast.Term, env *runtime.Environment) (runtime.Value, error) {
	if env == nil {
		env = i.global
	}
	return i.evaluateExpression(term, env)
}

package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

// ErrorKind classifies a runtime failure.
type ErrorKind int

const (
	MalformedInput ErrorKind = iota + 1
	UnboundVariable
	NotCallable
	ArityMismatch
	TypeMismatch
	DivisionByZero
	StackExhausted
)

var errorKindNames = map[ErrorKind]string{
	MalformedInput:  "MalformedInput",
	UnboundVariable: "UnboundVariable",
	NotCallable:     "NotCallable",
	ArityMismatch:   "ArityMismatch",
	TypeMismatch:    "TypeMismatch",
	DivisionByZero:  "DivisionByZero",
	StackExhausted:  "StackExhausted",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseErrorKind resolves a kind name as written in fixture manifests.
func ParseErrorKind(name string) (ErrorKind, error) {
	for kind, candidate := range errorKindNames {
		if candidate == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown error kind %q", name)
}

// Sentinels for errors.Is; every RuntimeError unwraps to the one matching
// its kind.
var (
	ErrMalformedInput  = errors.New("malformed input")
	ErrUnboundVariable = errors.New("unbound variable")
	ErrNotCallable     = errors.New("not callable")
	ErrArityMismatch   = errors.New("arity mismatch")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrStackExhausted  = errors.New("stack exhausted")
)

var errorKindSentinels = map[ErrorKind]error{
	MalformedInput:  ErrMalformedInput,
	UnboundVariable: ErrUnboundVariable,
	NotCallable:     ErrNotCallable,
	ArityMismatch:   ErrArityMismatch,
	TypeMismatch:    ErrTypeMismatch,
	DivisionByZero:  ErrDivisionByZero,
	StackExhausted:  ErrStackExhausted,
}

// RuntimeError aborts evaluation. Output written before it stays written.
type RuntimeError struct {
	Kind     ErrorKind
	Message  string
	Location ast.Location
	// Operator and Operands are set for operator type mismatches.
	Operator ast.BinaryOp
	Operands []runtime.Kind
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Location != (ast.Location{}) {
		b.WriteString(" at ")
		b.WriteString(e.Location.String())
	}
	return b.String()
}

func (e *RuntimeError) Unwrap() error {
	return errorKindSentinels[e.Kind]
}

// KindOf extracts the runtime error kind from err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return rerr.Kind, true
	}
	return 0, false
}

func newRuntimeError(kind ErrorKind, node ast.Term, format string, args ...any) *RuntimeError {
	err := &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
	if node != nil {
		err.Location = node.Loc()
	}
	return err
}

func operatorMismatch(node *ast.BinaryExpression, expected string, left, right runtime.Value) *RuntimeError {
	err := newRuntimeError(TypeMismatch, node, "%s expects %s, got %s and %s",
		node.Op.Symbol(), expected, left.Kind(), right.Kind())
	err.Operator = node.Op
	err.Operands = []runtime.Kind{left.Kind(), right.Kind()}
	return err
}

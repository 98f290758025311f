package interpreter

import (
	"errors"
	"fmt"
	"io"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Term, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.StrLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BoolLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.Variable:
		val, err := env.Get(n.Text)
		if err != nil {
			if errors.Is(err, runtime.ErrUndefined) {
				return nil, newRuntimeError(UnboundVariable, n, "variable '%s' is not defined", n.Text)
			}
			return nil, err
		}
		return val, nil
	case *ast.LetExpression:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Define(n.Name.Text, val)
		return i.evaluateExpression(n.Next, env)
	case *ast.FunctionLiteral:
		return &runtime.ClosureValue{
			Params: n.ParamNames(),
			Body:   n.Value,
			Env:    env.Capture(),
		}, nil
	case *ast.CallExpression:
		return i.evaluateCallExpression(n, env)
	case *ast.IfExpression:
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(runtime.BoolValue)
		if !ok {
			return nil, newRuntimeError(TypeMismatch, n.Condition, "if condition must be bool, got %s", cond.Kind())
		}
		if b.Val {
			return i.evaluateExpression(n.Then, env)
		}
		return i.evaluateExpression(n.Otherwise, env)
	case *ast.TupleExpression:
		first, err := i.evaluateExpression(n.First, env)
		if err != nil {
			return nil, err
		}
		second, err := i.evaluateExpression(n.Second, env)
		if err != nil {
			return nil, err
		}
		return runtime.PairValue{First: first, Second: second}, nil
	case *ast.FirstExpression:
		pair, err := i.evaluatePair(n, n.Value, "first", env)
		if err != nil {
			return nil, err
		}
		return pair.First, nil
	case *ast.SecondExpression:
		pair, err := i.evaluatePair(n, n.Value, "second", env)
		if err != nil {
			return nil, err
		}
		return pair.Second, nil
	case *ast.PrintExpression:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(i.out, runtime.Format(val)+"\n"); err != nil {
			return nil, fmt.Errorf("print at %s: %w", n.Loc(), err)
		}
		return val, nil
	case *ast.ErrorNode:
		return nil, newRuntimeError(MalformedInput, n, "parse error: %s", n.Message)
	case nil:
		return nil, newRuntimeError(MalformedInput, nil, "missing expression")
	default:
		return nil, newRuntimeError(MalformedInput, node, "unsupported node %T", node)
	}
}

func (i *Interpreter) evaluatePair(node ast.Term, operand ast.Term, name string, env *runtime.Environment) (runtime.PairValue, error) {
	val, err := i.evaluateExpression(operand, env)
	if err != nil {
		return runtime.PairValue{}, err
	}
	pair, ok := val.(runtime.PairValue)
	if !ok {
		return runtime.PairValue{}, newRuntimeError(TypeMismatch, node, "%s expects a tuple, got %s", name, val.Kind())
	}
	return pair, nil
}

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	calleeVal, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeVal.(*runtime.ClosureValue)
	if !ok {
		return nil, newRuntimeError(NotCallable, call, "cannot call %s", calleeVal.Kind())
	}
	if len(call.Arguments) != fn.Arity() {
		return nil, newRuntimeError(ArityMismatch, call, "expected %d arguments, got %d", fn.Arity(), len(call.Arguments))
	}
	callEnv := fn.Env.Extend()
	for idx, arg := range call.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		callEnv.Define(fn.Params[idx], val)
	}
	if i.depth >= i.maxDepth {
		return nil, newRuntimeError(StackExhausted, call, "call depth exceeded %d", i.maxDepth)
	}
	i.depth++
	defer func() { i.depth-- }()
	return i.evaluateExpression(fn.Body, callEnv)
}

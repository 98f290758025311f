package interpreter

import (
	"strconv"

	"rinha/interpreter-go/pkg/ast"
	"rinha/interpreter-go/pkg/runtime"
)

// evaluateBinaryExpression always evaluates both operands, left first. The
// logical operators do not short-circuit.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	leftVal, err := i.evaluateExpression(expr.LHS, env)
	if err != nil {
		return nil, err
	}
	rightVal, err := i.evaluateExpression(expr.RHS, env)
	if err != nil {
		return nil, err
	}

	switch expr.Op {
	case ast.OpAdd:
		return evaluateAddition(expr, leftVal, rightVal)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpRem:
		return evaluateArithmetic(expr, leftVal, rightVal)
	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		return evaluateComparison(expr, leftVal, rightVal)
	case ast.OpEq, ast.OpNeq:
		return evaluateEquality(expr, leftVal, rightVal)
	case ast.OpAnd, ast.OpOr:
		return evaluateLogical(expr, leftVal, rightVal)
	default:
		return nil, newRuntimeError(MalformedInput, expr, "unsupported binary operator %q", string(expr.Op))
	}
}

func evaluateAddition(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	if l, ok := left.(runtime.IntegerValue); ok {
		if r, ok := right.(runtime.IntegerValue); ok {
			return runtime.IntegerValue{Val: l.Val + r.Val}, nil
		}
	}
	ls, lok := concatOperand(left)
	rs, rok := concatOperand(right)
	if lok && rok {
		return runtime.StringValue{Val: ls + rs}, nil
	}
	return nil, operatorMismatch(expr, "integers or strings", left, right)
}

func concatOperand(v runtime.Value) (string, bool) {
	switch val := v.(type) {
	case runtime.StringValue:
		return val.Val, true
	case runtime.IntegerValue:
		return strconv.FormatInt(val.Val, 10), true
	default:
		return "", false
	}
}

func evaluateArithmetic(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	l, lok := left.(runtime.IntegerValue)
	r, rok := right.(runtime.IntegerValue)
	if !lok || !rok {
		return nil, operatorMismatch(expr, "integers", left, right)
	}
	switch expr.Op {
	case ast.OpSub:
		return runtime.IntegerValue{Val: l.Val - r.Val}, nil
	case ast.OpMul:
		return runtime.IntegerValue{Val: l.Val * r.Val}, nil
	case ast.OpDiv:
		if r.Val == 0 {
			return nil, newRuntimeError(DivisionByZero, expr, "division by zero")
		}
		return runtime.IntegerValue{Val: l.Val / r.Val}, nil
	default:
		if r.Val == 0 {
			return nil, newRuntimeError(DivisionByZero, expr, "remainder by zero")
		}
		return runtime.IntegerValue{Val: l.Val % r.Val}, nil
	}
}

func evaluateComparison(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	l, lok := left.(runtime.IntegerValue)
	r, rok := right.(runtime.IntegerValue)
	if !lok || !rok {
		return nil, operatorMismatch(expr, "integers", left, right)
	}
	var result bool
	switch expr.Op {
	case ast.OpLt:
		result = l.Val < r.Val
	case ast.OpGt:
		result = l.Val > r.Val
	case ast.OpLte:
		result = l.Val <= r.Val
	default:
		result = l.Val >= r.Val
	}
	return runtime.BoolValue{Val: result}, nil
}

func evaluateEquality(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	var equal bool
	switch l := left.(type) {
	case runtime.IntegerValue:
		r, ok := right.(runtime.IntegerValue)
		if !ok {
			return nil, operatorMismatch(expr, "operands of the same scalar type", left, right)
		}
		equal = l.Val == r.Val
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		if !ok {
			return nil, operatorMismatch(expr, "operands of the same scalar type", left, right)
		}
		equal = l.Val == r.Val
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		if !ok {
			return nil, operatorMismatch(expr, "operands of the same scalar type", left, right)
		}
		equal = l.Val == r.Val
	default:
		return nil, operatorMismatch(expr, "operands of the same scalar type", left, right)
	}
	if expr.Op == ast.OpNeq {
		equal = !equal
	}
	return runtime.BoolValue{Val: equal}, nil
}

func evaluateLogical(expr *ast.BinaryExpression, left, right runtime.Value) (runtime.Value, error) {
	l, lok := left.(runtime.BoolValue)
	r, rok := right.(runtime.BoolValue)
	if !lok || !rok {
		return nil, operatorMismatch(expr, "bools", left, right)
	}
	if expr.Op == ast.OpAnd {
		return runtime.BoolValue{Val: l.Val && r.Val}, nil
	}
	return runtime.BoolValue{Val: l.Val || r.Val}, nil
}

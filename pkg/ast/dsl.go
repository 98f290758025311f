package ast

// Literal helpers.

func Int(value int64) *IntLiteral {
	return NewIntLiteral(value)
}

func Str(value string) *StrLiteral {
	return NewStrLiteral(value)
}

func Bool(value bool) *BoolLiteral {
	return NewBoolLiteral(value)
}

func ID(name string) *Variable {
	return NewVariable(name)
}

// Operator helpers.

func Bin(lhs Term, op BinaryOp, rhs Term) *BinaryExpression {
	return NewBinaryExpression(lhs, op, rhs)
}

func Add(lhs, rhs Term) *BinaryExpression { return Bin(lhs, OpAdd, rhs) }
func Sub(lhs, rhs Term) *BinaryExpression { return Bin(lhs, OpSub, rhs) }
func Mul(lhs, rhs Term) *BinaryExpression { return Bin(lhs, OpMul, rhs) }
func Div(lhs, rhs Term) *BinaryExpression { return Bin(lhs, OpDiv, rhs) }
func Rem(lhs, rhs Term) *BinaryExpression { return Bin(lhs, OpRem, rhs) }
func Eq(lhs, rhs Term) *BinaryExpression  { return Bin(lhs, OpEq, rhs) }
func Lt(lhs, rhs Term) *BinaryExpression  { return Bin(lhs, OpLt, rhs) }
func And(lhs, rhs Term) *BinaryExpression { return Bin(lhs, OpAnd, rhs) }
func Or(lhs, rhs Term) *BinaryExpression  { return Bin(lhs, OpOr, rhs) }

// Binding and function helpers.

func Let(name string, value, next Term) *LetExpression {
	return NewLetExpression(name, value, next)
}

func Fn(params []string, body Term) *FunctionLiteral {
	return NewFunctionLiteral(params, body)
}

func Call(callee Term, args ...Term) *CallExpression {
	return NewCallExpression(callee, args)
}

func CallNamed(name string, args ...Term) *CallExpression {
	return NewCallExpression(ID(name), args)
}

// Control flow, tuples, output.

func If(condition, then, otherwise Term) *IfExpression {
	return NewIfExpression(condition, then, otherwise)
}

func Tuple(first, second Term) *TupleExpression {
	return NewTupleExpression(first, second)
}

func First(value Term) *FirstExpression {
	return NewFirstExpression(value)
}

func Second(value Term) *SecondExpression {
	return NewSecondExpression(value)
}

func Print(value Term) *PrintExpression {
	return NewPrintExpression(value)
}

func Err(message string) *ErrorNode {
	return NewErrorNode(message, "")
}

func Program(expr Term) *File {
	return NewFile("<inline>", expr)
}

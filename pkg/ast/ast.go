package ast

import "fmt"

type NodeType string

const (
	NodeInt      NodeType = "Int"
	NodeStr      NodeType = "Str"
	NodeBool     NodeType = "Bool"
	NodeBinary   NodeType = "Binary"
	NodeVar      NodeType = "Var"
	NodeLet      NodeType = "Let"
	NodeFunction NodeType = "Function"
	NodeCall     NodeType = "Call"
	NodeIf       NodeType = "If"
	NodeTuple    NodeType = "Tuple"
	NodeFirst    NodeType = "First"
	NodeSecond   NodeType = "Second"
	NodePrint    NodeType = "Print"
	NodeError    NodeType = "Error"
)

// Location is the source span a node was parsed from. Offsets are byte
// positions into the original file.
type Location struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Filename string `json:"filename"`
}

func (l Location) String() string {
	if l.Filename == "" && l.Start == 0 && l.End == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d..%d", l.Filename, l.Start, l.End)
}

// Term is any node of the program tree.
type Term interface {
	NodeType() NodeType
	Loc() Location
	isTerm()
}

type nodeImpl struct {
	Kind     NodeType `json:"kind"`
	Location Location `json:"location"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Kind: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Kind }
func (n nodeImpl) Loc() Location      { return n.Location }
func (nodeImpl) isTerm()              {}

// File is the root produced by the rinha parser.
type File struct {
	Name       string   `json:"name"`
	Expression Term     `json:"expression"`
	Location   Location `json:"location"`
}

func NewFile(name string, expr Term) *File {
	return &File{Name: name, Expression: expr}
}

// Parameter names a binding site (let names and function parameters).
type Parameter struct {
	Text     string   `json:"text"`
	Location Location `json:"location"`
}

//-----------------------------------------------------------------------------
// Literals
//-----------------------------------------------------------------------------

type IntLiteral struct {
	nodeImpl

	Value int64 `json:"value"`
}

func NewIntLiteral(value int64) *IntLiteral {
	return &IntLiteral{nodeImpl: newNodeImpl(NodeInt), Value: value}
}

type StrLiteral struct {
	nodeImpl

	Value string `json:"value"`
}

func NewStrLiteral(value string) *StrLiteral {
	return &StrLiteral{nodeImpl: newNodeImpl(NodeStr), Value: value}
}

type BoolLiteral struct {
	nodeImpl

	Value bool `json:"value"`
}

func NewBoolLiteral(value bool) *BoolLiteral {
	return &BoolLiteral{nodeImpl: newNodeImpl(NodeBool), Value: value}
}

//-----------------------------------------------------------------------------
// Operators
//-----------------------------------------------------------------------------

type BinaryOp string

const (
	OpAdd BinaryOp = "Add"
	OpSub BinaryOp = "Sub"
	OpMul BinaryOp = "Mul"
	OpDiv BinaryOp = "Div"
	OpRem BinaryOp = "Rem"
	OpEq  BinaryOp = "Eq"
	OpNeq BinaryOp = "Neq"
	OpLt  BinaryOp = "Lt"
	OpGt  BinaryOp = "Gt"
	OpLte BinaryOp = "Lte"
	OpGte BinaryOp = "Gte"
	OpAnd BinaryOp = "And"
	OpOr  BinaryOp = "Or"
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpRem: "%",
	OpEq:  "==",
	OpNeq: "!=",
	OpLt:  "<",
	OpGt:  ">",
	OpLte: "<=",
	OpGte: ">=",
	OpAnd: "&&",
	OpOr:  "||",
}

// Symbol returns the surface syntax of the operator ("+", "==", ...).
func (op BinaryOp) Symbol() string {
	if sym, ok := binaryOpSymbols[op]; ok {
		return sym
	}
	return string(op)
}

// Valid reports whether op is one of the known operators.
func (op BinaryOp) Valid() bool {
	_, ok := binaryOpSymbols[op]
	return ok
}

type BinaryExpression struct {
	nodeImpl

	LHS Term     `json:"lhs"`
	Op  BinaryOp `json:"op"`
	RHS Term     `json:"rhs"`
}

func NewBinaryExpression(lhs Term, op BinaryOp, rhs Term) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinary), LHS: lhs, Op: op, RHS: rhs}
}

//-----------------------------------------------------------------------------
// Bindings & functions
//-----------------------------------------------------------------------------

type Variable struct {
	nodeImpl

	Text string `json:"text"`
}

func NewVariable(text string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVar), Text: text}
}

type LetExpression struct {
	nodeImpl

	Name  Parameter `json:"name"`
	Value Term      `json:"value"`
	Next  Term      `json:"next"`
}

func NewLetExpression(name string, value, next Term) *LetExpression {
	return &LetExpression{nodeImpl: newNodeImpl(NodeLet), Name: Parameter{Text: name}, Value: value, Next: next}
}

type FunctionLiteral struct {
	nodeImpl

	Parameters []Parameter `json:"parameters"`
	Value      Term        `json:"value"`
}

func NewFunctionLiteral(params []string, body Term) *FunctionLiteral {
	ps := make([]Parameter, 0, len(params))
	for _, p := range params {
		ps = append(ps, Parameter{Text: p})
	}
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunction), Parameters: ps, Value: body}
}

// ParamNames returns the parameter names in declaration order.
func (f *FunctionLiteral) ParamNames() []string {
	names := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		names[i] = p.Text
	}
	return names
}

type CallExpression struct {
	nodeImpl

	Callee    Term   `json:"callee"`
	Arguments []Term `json:"arguments"`
}

func NewCallExpression(callee Term, args []Term) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Arguments: args}
}

//-----------------------------------------------------------------------------
// Control flow, tuples, output
//-----------------------------------------------------------------------------

type IfExpression struct {
	nodeImpl

	Condition Term `json:"condition"`
	Then      Term `json:"then"`
	Otherwise Term `json:"otherwise"`
}

func NewIfExpression(condition, then, otherwise Term) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Then: then, Otherwise: otherwise}
}

type TupleExpression struct {
	nodeImpl

	First  Term `json:"first"`
	Second Term `json:"second"`
}

func NewTupleExpression(first, second Term) *TupleExpression {
	return &TupleExpression{nodeImpl: newNodeImpl(NodeTuple), First: first, Second: second}
}

type FirstExpression struct {
	nodeImpl

	Value Term `json:"value"`
}

func NewFirstExpression(value Term) *FirstExpression {
	return &FirstExpression{nodeImpl: newNodeImpl(NodeFirst), Value: value}
}

type SecondExpression struct {
	nodeImpl

	Value Term `json:"value"`
}

func NewSecondExpression(value Term) *SecondExpression {
	return &SecondExpression{nodeImpl: newNodeImpl(NodeSecond), Value: value}
}

type PrintExpression struct {
	nodeImpl

	Value Term `json:"value"`
}

func NewPrintExpression(value Term) *PrintExpression {
	return &PrintExpression{nodeImpl: newNodeImpl(NodePrint), Value: value}
}

// ErrorNode marks a region the parser could not recover from.
type ErrorNode struct {
	nodeImpl

	Message  string `json:"message"`
	FullText string `json:"full_text"`
}

func NewErrorNode(message, fullText string) *ErrorNode {
	return &ErrorNode{nodeImpl: newNodeImpl(NodeError), Message: message, FullText: fullText}
}

// WithLocation stamps a location onto any term built by this package and
// returns it for chaining.
func WithLocation[T Term](term T, loc Location) T {
	switch n := any(term).(type) {
	case *IntLiteral:
		n.Location = loc
	case *StrLiteral:
		n.Location = loc
	case *BoolLiteral:
		n.Location = loc
	case *BinaryExpression:
		n.Location = loc
	case *Variable:
		n.Location = loc
	case *LetExpression:
		n.Location = loc
	case *FunctionLiteral:
		n.Location = loc
	case *CallExpression:
		n.Location = loc
	case *IfExpression:
		n.Location = loc
	case *TupleExpression:
		n.Location = loc
	case *FirstExpression:
		n.Location = loc
	case *SecondExpression:
		n.Location = loc
	case *PrintExpression:
		n.Location = loc
	case *ErrorNode:
		n.Location = loc
	}
	return term
}

package ast

import (
	"strconv"
	"strings"
)

// Render prints a term as rinha-like source text. The output is meant for
// humans (CLI `show`, diagnostics) and is not guaranteed to re-parse
// byte-for-byte.
func Render(term Term) string {
	var b strings.Builder
	p := printer{b: &b}
	p.term(term)
	return b.String()
}

type printer struct {
	b      *strings.Builder
	indent int
}

func (p *printer) write(parts ...string) {
	for _, part := range parts {
		p.b.WriteString(part)
	}
}

func (p *printer) newline() {
	p.b.WriteByte('\n')
	p.b.WriteString(strings.Repeat("  ", p.indent))
}

func (p *printer) term(term Term) {
	switch n := term.(type) {
	case nil:
		p.write("<nil>")
	case *IntLiteral:
		p.write(strconv.FormatInt(n.Value, 10))
	case *StrLiteral:
		p.write(strconv.Quote(n.Value))
	case *BoolLiteral:
		p.write(strconv.FormatBool(n.Value))
	case *Variable:
		p.write(n.Text)
	case *BinaryExpression:
		p.operand(n.LHS)
		p.write(" ", n.Op.Symbol(), " ")
		p.operand(n.RHS)
	case *LetExpression:
		p.write("let ", n.Name.Text, " = ")
		p.term(n.Value)
		p.write(";")
		p.newline()
		p.term(n.Next)
	case *FunctionLiteral:
		p.write("fn (", strings.Join(n.ParamNames(), ", "), ") => ")
		p.block(n.Value)
	case *CallExpression:
		p.operand(n.Callee)
		p.write("(")
		p.list(n.Arguments)
		p.write(")")
	case *IfExpression:
		p.write("if (")
		p.term(n.Condition)
		p.write(") ")
		p.block(n.Then)
		p.write(" else ")
		p.block(n.Otherwise)
	case *TupleExpression:
		p.write("(")
		p.list([]Term{n.First, n.Second})
		p.write(")")
	case *FirstExpression:
		p.write("first(")
		p.term(n.Value)
		p.write(")")
	case *SecondExpression:
		p.write("second(")
		p.term(n.Value)
		p.write(")")
	case *PrintExpression:
		p.write("print(")
		p.term(n.Value)
		p.write(")")
	case *ErrorNode:
		p.write("<error: ", n.Message, ">")
	default:
		p.write("<", string(term.NodeType()), ">")
	}
}

// operand parenthesizes compound sub-terms so precedence stays visible.
func (p *printer) operand(term Term) {
	switch term.(type) {
	case *BinaryExpression, *LetExpression, *IfExpression, *FunctionLiteral:
		p.write("(")
		p.term(term)
		p.write(")")
	default:
		p.term(term)
	}
}

func (p *printer) list(terms []Term) {
	for i, t := range terms {
		if i > 0 {
			p.write(", ")
		}
		p.term(t)
	}
}

func (p *printer) block(body Term) {
	p.write("{")
	p.indent++
	p.newline()
	p.term(body)
	p.indent--
	p.newline()
	p.write("}")
}

package runtime

import (
	"fmt"

	"rinha/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindString
	KindBool
	KindPair
	KindClosure
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindPair:
		return "tuple"
	case KindClosure:
		return "closure"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k := KindInteger; k <= KindClosure; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

//-----------------------------------------------------------------------------
// Compound values
//-----------------------------------------------------------------------------

// PairValue is the result of a tuple expression. Components are held by
// interface so nesting never grows the struct inline.
type PairValue struct {
	First  Value
	Second Value
}

func (v PairValue) Kind() Kind { return KindPair }

// ClosureValue is a function literal together with the environment it was
// created in. Body points into the program tree; it is never copied.
type ClosureValue struct {
	Params []string
	Body   ast.Term
	Env    *Environment
}

func (v *ClosureValue) Kind() Kind { return KindClosure }

// Arity is the number of parameters the closure expects.
func (v *ClosureValue) Arity() int { return len(v.Params) }

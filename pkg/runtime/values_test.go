package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rinha/interpreter-go/pkg/ast"
)

func TestFormatScalars(t *testing.T) {
	assert.Equal(t, "42", Format(IntegerValue{Val: 42}))
	assert.Equal(t, "-7", Format(IntegerValue{Val: -7}))
	assert.Equal(t, "hello", Format(StringValue{Val: "hello"}))
	assert.Equal(t, "true", Format(BoolValue{Val: true}))
	assert.Equal(t, "false", Format(BoolValue{Val: false}))
}

func TestFormatCompound(t *testing.T) {
	inner := PairValue{First: IntegerValue{Val: 1}, Second: StringValue{Val: "b"}}
	outer := PairValue{First: inner, Second: BoolValue{Val: false}}
	assert.Equal(t, "((1, b), false)", Format(outer))

	closure := &ClosureValue{Params: []string{"x"}, Body: ast.ID("x"), Env: NewEnvironment(nil)}
	assert.Equal(t, "<#closure>", Format(closure))
	assert.Equal(t, "(<#closure>, 2)", Format(PairValue{First: closure, Second: IntegerValue{Val: 2}}))
}

func TestKindNames(t *testing.T) {
	names := map[Kind]string{
		KindInteger: "integer",
		KindString:  "string",
		KindBool:    "bool",
		KindPair:    "tuple",
		KindClosure: "closure",
	}
	for kind, name := range names {
		assert.Equal(t, name, kind.String())
		parsed, ok := ParseKind(name)
		assert.True(t, ok)
		assert.Equal(t, kind, parsed)
	}
	_, ok := ParseKind("float")
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	closure := &ClosureValue{}
	assert.True(t, Equal(IntegerValue{Val: 1}, IntegerValue{Val: 1}))
	assert.False(t, Equal(IntegerValue{Val: 1}, StringValue{Val: "1"}))
	assert.True(t, Equal(
		PairValue{First: StringValue{Val: "a"}, Second: BoolValue{Val: true}},
		PairValue{First: StringValue{Val: "a"}, Second: BoolValue{Val: true}},
	))
	assert.True(t, Equal(closure, closure))
	assert.False(t, Equal(closure, &ClosureValue{}))
	assert.Equal(t, 0, closure.Arity())
}

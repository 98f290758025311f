package runtime

import (
	"strconv"
	"strings"
)

// Format renders a value the way print writes it.
func Format(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case IntegerValue:
		b.WriteString(strconv.FormatInt(val.Val, 10))
	case StringValue:
		b.WriteString(val.Val)
	case BoolValue:
		b.WriteString(strconv.FormatBool(val.Val))
	case PairValue:
		b.WriteByte('(')
		writeValue(b, val.First)
		b.WriteString(", ")
		writeValue(b, val.Second)
		b.WriteByte(')')
	case *ClosureValue:
		b.WriteString("<#closure>")
	case nil:
		b.WriteString("<nil>")
	default:
		b.WriteString("<" + v.Kind().String() + ">")
	}
}

// Equal reports structural equality. Closures compare by identity.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case IntegerValue:
		bv, ok := b.(IntegerValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case PairValue:
		bv, ok := b.(PairValue)
		return ok && Equal(av.First, bv.First) && Equal(av.Second, bv.Second)
	case *ClosureValue:
		bv, ok := b.(*ClosureValue)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}

package golisp

import (
	"strconv"
	"strings"
)

// Sprint renders v in the canonical, reader-compatible syntax
// described by §6: parsing the text Sprint returns reproduces a
// structurally equal value (strings modulo escape normalization, per
// §8's round-trip property).
func Sprint(v *Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v *Value) {
	switch v.Kind {
	case KindInt:
		b.WriteString(strconv.Itoa(v.Int))

	case KindString:
		// strconv.Quote's \a \b \f \n \r \t \v escapes match the
		// reader's escape set, and \\ and \" read back through its
		// pass-through rule. Other non-printable bytes come out as
		// \x../\u.. escapes, which the reader does not decode.
		b.WriteString(strconv.Quote(v.Str))

	case KindSymbol:
		b.WriteString(v.Str)

	case KindPair:
		writeList(b, v)

	case KindLambda:
		if v.IsMacro {
			b.WriteString("#<macro>")
		} else {
			b.WriteString("#<lambda>")
		}

	case KindBuiltin:
		b.WriteString("#<builtin>")

	case KindScope:
		b.WriteString("#<scope>")
	}
}

func writeList(b *strings.Builder, v *Value) {
	if v.IsNil() {
		b.WriteString("()")
		return
	}
	b.WriteByte('(')
	cur := v
	first := true
	for {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		writeValue(b, cur.Left)

		switch {
		case cur.Right.Kind == KindPair && cur.Right.IsNil():
			b.WriteByte(')')
			return
		case cur.Right.Kind == KindPair:
			cur = cur.Right
		default:
			b.WriteString(" . ")
			writeValue(b, cur.Right)
			b.WriteByte(')')
			return
		}
	}
}

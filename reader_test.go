package golisp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueShape is a comparison-friendly projection of a Value graph,
// since *Value itself carries heap bookkeeping (mark, next) and
// back-pointers (Captured, Parent) that a structural-equality diff
// should never walk.
type valueShape struct {
	Kind Kind
	Int  int
	Str  string
	Nil  bool
	Car  *valueShape
	Cdr  *valueShape
}

func shapeOf(v *Value) *valueShape {
	if v == nil {
		return nil
	}
	s := &valueShape{Kind: v.Kind, Int: v.Int, Str: v.Str}
	if v.Kind == KindPair {
		s.Nil = v.isNil
		if !v.isNil {
			s.Car = shapeOf(v.Left)
			s.Cdr = shapeOf(v.Right)
		}
	}
	return s
}

func assertSameShape(t *testing.T, want, got *Value) {
	t.Helper()
	diff := cmp.Diff(shapeOf(want), shapeOf(got), cmpopts.EquateEmpty())
	if diff != "" {
		t.Errorf("value shapes differ (-want +got):\n%s", diff)
	}
}

func TestReader_Integer(t *testing.T) {
	rt := NewRuntime()
	v, _, err := rt.ParseValue([]byte("42"))
	require.NoError(t, err)
	assert.Equal(t, 42, v.Int)

	v, _, err = rt.ParseValue([]byte("-7"))
	require.NoError(t, err)
	assert.Equal(t, -7, v.Int)
}

func TestReader_Scenario9_StringEscapes(t *testing.T) {
	rt := NewRuntime()
	v, _, err := rt.ParseValue([]byte(`"hi\nthere"`))
	require.NoError(t, err)
	assert.Equal(t, "hi\nthere", v.Str)
}

func TestReader_Symbol(t *testing.T) {
	rt := NewRuntime()
	v, _, err := rt.ParseValue([]byte("foo-bar?"))
	require.NoError(t, err)
	assert.Equal(t, KindSymbol, v.Kind)
	assert.Equal(t, "foo-bar?", v.Str)
}

func TestReader_EmptyList(t *testing.T) {
	rt := NewRuntime()
	v, _, err := rt.ParseValue([]byte("()"))
	require.NoError(t, err)
	assert.True(t, v.IsNil())
}

func TestReader_ProperList(t *testing.T) {
	rt := NewRuntime()
	v, _, err := rt.ParseValue([]byte("(1 2 3)"))
	require.NoError(t, err)

	items, proper := listToSlice(v)
	require.True(t, proper)
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].Int)
	assert.Equal(t, 2, items[1].Int)
	assert.Equal(t, 3, items[2].Int)
}

func TestReader_DottedList(t *testing.T) {
	rt := NewRuntime()
	v, _, err := rt.ParseValue([]byte("(1 2 . 3)"))
	require.NoError(t, err)

	assert.Equal(t, 1, v.Left.Int)
	assert.Equal(t, 2, v.Right.Left.Int)
	assert.Equal(t, 3, v.Right.Right.Int)
}

func TestReader_ReaderMacros(t *testing.T) {
	rt := NewRuntime()

	tests := []struct {
		src  string
		head string
	}{
		{"'x", "quote"},
		{"`x", "quasiquote"},
		{",x", "unquote"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, _, err := rt.ParseValue([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.head, v.Left.Str)
			assert.Equal(t, "x", v.Right.Left.Str)
		})
	}
}

func TestReader_Scenario10_DottedSymbolRewrite(t *testing.T) {
	rt := NewRuntime()
	v, _, err := rt.ParseValue([]byte("a.b.c"))
	require.NoError(t, err)

	expected, err := rt.ParseProgn([]byte(`(getattr (getattr a (quote b)) (quote c))`))
	require.NoError(t, err)
	// expected is wrapped in (progn ...); unwrap to the single form.
	expectedForm := expected.Right.Left

	assertSameShape(t, expectedForm, v)
}

func TestReader_LeadingOrTrailingDotInSymbolIsSyntaxError(t *testing.T) {
	rt := NewRuntime()

	_, _, err := rt.ParseValue([]byte(".foo"))
	require.Error(t, err)
	e, ok := AsGoLispError(err)
	require.True(t, ok)
	assert.Equal(t, ErrSyntax, e.Kind)

	_, _, err = rt.ParseValue([]byte("foo."))
	require.Error(t, err)
	e, ok = AsGoLispError(err)
	require.True(t, ok)
	assert.Equal(t, ErrSyntax, e.Kind)
}

func TestReader_UnterminatedStringIsSyntaxError(t *testing.T) {
	rt := NewRuntime()
	_, _, err := rt.ParseValue([]byte(`"unterminated`))
	require.Error(t, err)
	e, ok := AsGoLispError(err)
	require.True(t, ok)
	assert.Equal(t, ErrSyntax, e.Kind)
}

func TestReader_UnterminatedListIsSyntaxError(t *testing.T) {
	rt := NewRuntime()
	_, _, err := rt.ParseValue([]byte(`(1 2 3`))
	require.Error(t, err)
	e, ok := AsGoLispError(err)
	require.True(t, ok)
	assert.Equal(t, ErrSyntax, e.Kind)
}

func TestReader_LineNumberTracksNewlines(t *testing.T) {
	rt := NewRuntime()
	// two leading blank lines put the unterminated list on line 3.
	_, _, err := rt.ParseValue([]byte("\n\n(1 2"))
	require.Error(t, err)
	e, ok := AsGoLispError(err)
	require.True(t, ok)
	assert.Equal(t, 3, e.Line)
}

func TestReader_RoundTrip(t *testing.T) {
	// §8: parsing the text Sprint returns reproduces a structurally
	// equal value.
	rt := NewRuntime()

	sources := []string{
		`42`,
		`-7`,
		`foo-bar`,
		`(1 2 3)`,
		`(1 . 2)`,
		`()`,
		`"hello world"`,
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			original, _, err := rt.ParseValue([]byte(src))
			require.NoError(t, err)

			printed := Sprint(original)
			reparsed, _, err := rt.ParseValue([]byte(printed))
			require.NoError(t, err)

			assertSameShape(t, original, reparsed)
		})
	}
}

func TestReader_ParsePrognThreadsTopLevelForms(t *testing.T) {
	rt := NewRuntime()
	v, err := rt.ParseProgn([]byte("1 2 3"))
	require.NoError(t, err)

	assert.Equal(t, "progn", v.Left.Str)
	items, proper := listToSlice(v.Right)
	require.True(t, proper)
	require.Len(t, items, 3)
}

func TestReader_CommentsAreSkipped(t *testing.T) {
	rt := NewRuntime()
	v, _, err := rt.ParseValue([]byte("; a comment\n42"))
	require.NoError(t, err)
	assert.Equal(t, 42, v.Int)
}

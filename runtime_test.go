package golisp

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntime_DefaultScopeBindsEveryNamedBuiltin(t *testing.T) {
	// §6: "Exact names bound: eval car cdr quote cons lambda macro
	// define + - * / == = > >= < <= if null? map reduce print
	// dump-stack progn unquote quasiquote eq?"
	names := []string{
		"eval", "car", "cdr", "quote", "cons", "lambda", "macro",
		"define", "+", "-", "*", "/", "==", "=", ">", ">=", "<", "<=",
		"if", "null?", "map", "reduce", "print", "dump-stack", "progn",
		"unquote", "quasiquote", "eq?",
	}

	rt := NewRuntime()
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			v, err := Lookup(rt.Global, name)
			require.NoError(t, err)
			assert.True(t, v.IsCallable())
		})
	}
}

func TestRuntime_CollectRetainsGlobalScopeBindings(t *testing.T) {
	rt := NewRuntime()
	_, err := rt.LoadSource([]byte(`(define x 5)`))
	require.NoError(t, err)

	rt.Collect()

	v, err := Lookup(rt.Global, "x")
	require.NoError(t, err)
	assert.Equal(t, 5, v.Int)
}

func TestRuntime_CollectReclaimsUnrootedIntermediates(t *testing.T) {
	rt := NewRuntime()
	_, err := rt.LoadSource([]byte(`(+ 1 2 3)`))
	require.NoError(t, err)

	before := rt.HeapLen()
	rt.Collect()
	after := rt.HeapLen()

	assert.Less(t, after, before)
}

func TestRuntime_LoadSourceShortCircuitsOnFirstError(t *testing.T) {
	rt := NewRuntime()
	_, err := rt.LoadSource([]byte(`(define x 1) (/ 1 0) (define y 2)`))
	require.Error(t, err)

	_, err = Lookup(rt.Global, "y")
	assert.Error(t, err, "evaluation should have stopped before the form defining y")
}

func TestRuntime_EvalAllCollectsEveryFailure(t *testing.T) {
	rt := NewRuntime()
	_, err := rt.EvalAll([]byte(`(/ 1 0) (define y 2) nope`))
	require.Error(t, err)

	// both failing forms were reported, and the form between them
	// still ran.
	assert.Contains(t, err.Error(), "divide-by-zero")
	assert.Contains(t, err.Error(), "undefined-symbol")

	v, lookupErr := Lookup(rt.Global, "y")
	require.NoError(t, lookupErr)
	assert.Equal(t, 2, v.Int)
}

func TestRuntime_LastErrorAndClearError(t *testing.T) {
	rt := NewRuntime()
	_, err := rt.LoadSource([]byte(`(/ 1 0)`))
	require.Error(t, err)

	require.NotNil(t, rt.LastError())
	assert.Equal(t, ErrDivideByZero, rt.LastError().Kind)

	rt.ClearError()
	assert.Nil(t, rt.LastError())
}

func TestRuntime_LoadFileReadsAndEvaluates(t *testing.T) {
	rt := NewRuntime()
	dir := t.TempDir()
	path := dir + "/prog.lisp"
	require.NoError(t, os.WriteFile(path, []byte("(+ 1 2)"), 0644))

	v, err := rt.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Int)
}

func TestRuntime_LoadFileMissingIsFileIOError(t *testing.T) {
	rt := NewRuntime()
	_, err := rt.LoadFile("/nonexistent/path/does-not-exist.lisp")
	require.Error(t, err)
	e, ok := AsGoLispError(err)
	require.True(t, ok)
	assert.Equal(t, ErrFileIO, e.Kind)
}

package golisp

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

// Runtime bundles every piece of state a running interpreter needs:
// the value heap, the symbol cache, the evaluator's call stack, the
// toggles in Options, the global scope new top-level forms are
// evaluated in, and the out-of-band error slot that mirrors the
// teacher's `ParsingError`-on-the-struct convention for embedders that
// would rather poll than thread a Go error return through their own
// call chain.
type Runtime struct {
	heap    *Heap
	symbols *symbolCache
	stack   *callStack
	options *Options

	Global *Value

	Stdout io.Writer

	lastError *Error
}

// NewRuntime constructs a Runtime with a fresh heap (containing only
// the nil sentinel), an empty symbol cache, and a global scope
// pre-populated by DefaultScope. Stdout defaults to os.Stdout; an
// embedder that wants to capture `print`/`dump-stack` output assigns
// Runtime.Stdout directly.
func NewRuntime() *Runtime {
	rt := &Runtime{
		heap:    newHeap(),
		symbols: newSymbolCache(),
		options: NewOptions(),
		Stdout:  os.Stdout,
	}
	rt.stack = newCallStack(rt.options.GetInt("eval.stack_trace_depth"))
	rt.Global = rt.DefaultScope()
	return rt
}

// Options exposes the runtime's toggles for an embedder that wants to
// adjust them after construction (e.g. turning on
// "gc.strong_symbol_cache" before loading a program that relies on
// every interned symbol staying alive regardless of use).
func (rt *Runtime) Options() *Options { return rt.options }

// HeapLen reports the number of live values currently on the heap,
// including the nil sentinel; mainly useful for tests asserting that
// Collect actually reclaimed garbage.
func (rt *Runtime) HeapLen() int { return rt.heap.Len() }

func (rt *Runtime) printf(format string, args ...any) {
	fmt.Fprintf(rt.Stdout, format, args...)
}

// Mark marks root and everything transitively reachable from it as
// live, per §6's "mark(rt, root)" primitive. The core does not
// auto-root (§5): an embedder holding a value outside the global
// scope (e.g. a REPL's last returned result) must call Mark on it
// itself, once per root, before calling Sweep.
func (rt *Runtime) Mark(root *Value) {
	rt.heap.Mark(root)
}

// Sweep reclaims every value not marked since the last Sweep, per
// §6's "sweep(rt)" primitive.
func (rt *Runtime) Sweep() {
	rt.heap.Sweep(rt)
}

// Collect is a convenience wrapper over Mark/Sweep for the common
// case: root the nil sentinel and the global scope (and, if
// "gc.strong_symbol_cache" is set, every interned symbol, regardless
// of whether the global scope or any live value still references it,
// per §9's Open Question, resolved in config.go), then sweep. An
// embedder that needs to retain additional roots calls Mark itself
// for each one before calling Sweep directly instead of using
// Collect.
func (rt *Runtime) Collect() {
	rt.Mark(rt.heap.Nil())
	rt.Mark(rt.Global)
	if rt.options.GetBool("gc.strong_symbol_cache") {
		rt.symbols.markRoots(rt.heap)
	}
	rt.Sweep()
}

// ParseValue reads exactly one value from source, starting at byte
// offset 0, and reports how many bytes it consumed. A clean end of
// input with nothing left to parse returns the nil value and no
// error, mirroring Reader.ReadValue's own EOF convention.
func (rt *Runtime) ParseValue(source []byte) (*Value, int, error) {
	r := NewReader(rt, source)
	v, n, err := r.ReadValue()
	if err != nil {
		rt.lastError, _ = AsGoLispError(err)
		return nil, n, err
	}
	if v == nil {
		return rt.heap.Nil(), n, nil
	}
	return v, n, nil
}

// ParseProgn reads every top-level form in source and threads them
// into a single `(progn ...)` form, ready for Eval.
func (rt *Runtime) ParseProgn(source []byte) (*Value, error) {
	r := NewReader(rt, source)
	v, err := r.ReadProgn()
	if err != nil {
		rt.lastError, _ = AsGoLispError(err)
		return nil, err
	}
	return v, nil
}

// EvalGlobal evaluates v in the runtime's global scope.
func (rt *Runtime) EvalGlobal(v *Value) (*Value, error) {
	result, err := rt.Eval(rt.Global, v)
	if err != nil {
		rt.lastError, _ = AsGoLispError(err)
	}
	return result, err
}

// LoadSource parses source as a sequence of top-level forms and
// evaluates each one in turn, in the global scope, stopping at the
// first failure and returning its result. This is the ordinary,
// short-circuiting entry point a REPL uses for one line of input.
func (rt *Runtime) LoadSource(source []byte) (*Value, error) {
	form, err := rt.ParseProgn(source)
	if err != nil {
		return nil, err
	}
	return rt.EvalGlobal(form)
}

// LoadFile reads path from disk and evaluates it via LoadSource.
func (rt *Runtime) LoadFile(path string) (*Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		wrapped := newErrorf(ErrFileIO, "%s: %v", path, err)
		rt.lastError = wrapped
		return nil, wrapped
	}
	return rt.LoadSource(data)
}

// EvalAll parses source as a sequence of top-level forms and
// evaluates every one of them, even after one fails, returning the
// last successful result alongside a combined error built with
// multierr.Append from every failure encountered (nil if none). It is
// the batch alternative to LoadSource/LoadFile, which stop at the
// first failure: every evaluation error is reported in one pass. A
// syntax error still ends the pass, since reading cannot resume past
// it; that error is the last one in the combined result.
func (rt *Runtime) EvalAll(source []byte) (*Value, error) {
	r := NewReader(rt, source)

	var result *Value = rt.heap.Nil()
	var combined error

	for {
		form, _, err := r.ReadValue()
		if err != nil {
			combined = multierr.Append(combined, err)
			break
		}
		if form == nil {
			break
		}
		v, err := rt.Eval(rt.Global, form)
		if err != nil {
			combined = multierr.Append(combined, err)
			continue
		}
		result = v
	}

	if combined != nil {
		rt.lastError, _ = AsGoLispError(multierr.Errors(combined)[0])
	}
	return result, combined
}

// LastError returns the most recently recorded out-of-band error, or
// nil if none is pending, mirroring the teacher's ParsingError-slot
// convention for embedders that prefer polling over threading a Go
// error through their own call chain.
func (rt *Runtime) LastError() *Error { return rt.lastError }

// ClearError resets the out-of-band error slot.
func (rt *Runtime) ClearError() { rt.lastError = nil }

// PrintError writes the current out-of-band error (if any) to Stdout
// in the same "(line %d)"-suffixed form Error.Error() produces.
func (rt *Runtime) PrintError() {
	if rt.lastError == nil {
		return
	}
	rt.printf("error: %s\n", rt.lastError.Error())
}

package golisp

// This file groups the heap constructors for every Value variant
// (§4.1's "new" operation, one function per type descriptor).

// NewInt allocates a signed machine-word integer value.
func (rt *Runtime) NewInt(n int) *Value {
	return rt.heap.alloc(&Value{Kind: KindInt, Int: n})
}

// NewString allocates an immutable string value from s's bytes.
func (rt *Runtime) NewString(s string) *Value {
	return rt.heap.alloc(&Value{Kind: KindString, Str: s})
}

// Intern returns the shared symbol value for name, allocating it on
// first use (§4.3). Unlike the C original this never needs an
// ownership flag for the name bytes: Go strings are immutable and
// already garbage collected by the host runtime, so there is nothing
// for the symbol cache to take ownership of beyond its own map entry.
func (rt *Runtime) Intern(name string) *Value {
	return rt.intern(name)
}

// NewUninterned allocates a symbol value that is not shared via the
// cache; discouraged by §3 but not disallowed.
func (rt *Runtime) NewUninterned(name string) *Value {
	return rt.newUninterned(name)
}

// Cons allocates a new pair with the given car and cdr. Per §3, cdr
// need not itself be a list.
func (rt *Runtime) Cons(car, cdr *Value) *Value {
	return rt.heap.alloc(&Value{Kind: KindPair, Left: car, Right: cdr})
}

// List builds a proper list out of items, terminated by the runtime's
// nil singleton.
func (rt *Runtime) List(items ...*Value) *Value {
	result := rt.heap.Nil()
	for i := len(items) - 1; i >= 0; i-- {
		result = rt.Cons(items[i], result)
	}
	return result
}

// NewLambda allocates a lambda value capturing scope. isMacro
// distinguishes macro kind (unevaluated arguments, re-evaluated
// result) from ordinary lambda kind.
func (rt *Runtime) NewLambda(params []*Value, body *Value, scope *Value, isMacro bool) *Value {
	return rt.heap.alloc(&Value{
		Kind:     KindLambda,
		Params:   params,
		Body:     body,
		Captured: scope,
		IsMacro:  isMacro,
	})
}

// NewBuiltin allocates a host-implemented callable. evalArgs mirrors
// §4.6 step 2-3: true for ordinary builtins and special forms that
// want evaluated arguments, false for special forms and macros that
// must see the unevaluated form.
func (rt *Runtime) NewBuiltin(fn BuiltinFunc, datum any, evalArgs bool) *Value {
	return rt.heap.alloc(&Value{
		Kind:     KindBuiltin,
		Fn:       fn,
		Datum:    datum,
		EvalArgs: evalArgs,
	})
}

// NewScope allocates a fresh scope with the given lexical parent (nil
// for a root scope).
func (rt *Runtime) NewScope(parent *Value) *Value {
	return rt.newScope(parent)
}

// listToSlice collects a proper (or improper) list's Left elements
// into a slice, stopping at the first non-pair tail. It reports
// whether the list was proper (terminated in nil).
func listToSlice(list *Value) (items []*Value, proper bool) {
	cur := list
	for cur.Kind == KindPair && !cur.isNil {
		items = append(items, cur.Left)
		cur = cur.Right
	}
	return items, cur.IsNil()
}

package golisp

// symbolCache interns symbols by name so that two lookups of the same
// name share one Value allocation (§4.3). The cache is not itself a
// GC root (see the "gc.strong_symbol_cache" option in config.go for
// the alternative); it holds weak, best-effort references that Heap.Sweep
// scrubs via Value.free/forget whenever an interned symbol dies.
type symbolCache struct {
	byName map[string]*Value
}

func newSymbolCache() *symbolCache {
	return &symbolCache{byName: make(map[string]*Value)}
}

// intern returns the cached symbol for name, allocating and caching a
// fresh one on first use. Repeated calls with an equal name return the
// identical *Value, which is what makes eq? meaningful for symbols.
func (rt *Runtime) intern(name string) *Value {
	if v, ok := rt.symbols.byName[name]; ok {
		return v
	}
	v := rt.heap.alloc(&Value{Kind: KindSymbol, Str: name, Interned: true})
	rt.symbols.byName[name] = v
	return v
}

// newUninterned constructs a symbol value that is not shared via the
// cache, for callers that explicitly want an identity distinct from
// every other symbol of the same name. Discouraged per §3's invariant
// but not disallowed.
func (rt *Runtime) newUninterned(name string) *Value {
	return rt.heap.alloc(&Value{Kind: KindSymbol, Str: name, Interned: false})
}

// forget removes a symbol from the cache once the collector has
// decided to reclaim it, so a later intern() of the same name builds
// a fresh value instead of returning a dangling one.
func (c *symbolCache) forget(v *Value) {
	if cached, ok := c.byName[v.Str]; ok && cached == v {
		delete(c.byName, v.Str)
	}
}

// markRoots marks every cached symbol as reachable. Only called by
// Runtime.Collect when the "gc.strong_symbol_cache" option is true.
func (c *symbolCache) markRoots(h *Heap) {
	for _, v := range c.byName {
		h.Mark(v)
	}
}

package golisp

// newScope allocates a fresh KindScope value with the given lexical
// parent (nil for the root scope).
func (rt *Runtime) newScope(parent *Value) *Value {
	return rt.heap.alloc(&Value{
		Kind:     KindScope,
		Bindings: make(map[string]*Value),
		Parent:   parent,
	})
}

// Lookup walks scope and its parents for name, returning an
// undefined-symbol error if no binding is found by the time the chain
// is exhausted.
func Lookup(scope *Value, name string) (*Value, error) {
	for s := scope; s != nil; s = s.Parent {
		if v, ok := s.Bindings[name]; ok {
			return v, nil
		}
	}
	return nil, newError(ErrUndefinedSymbol, "undefined symbol: "+name)
}

// Define binds name to value in the innermost scope only, per §4.4:
// binding writes never search parents.
func Define(scope *Value, name string, value *Value) {
	scope.Bindings[name] = value
}

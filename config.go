package golisp

// Options carries the small set of runtime-wide toggles that affect
// the collector and evaluator's behavior without being part of the
// Lisp-visible language itself. It plays the same role `Config` played
// in the teacher: a flat, typed map of named settings constructed once
// with sensible defaults and consulted throughout the runtime, rather
// than a pile of constructor parameters.
type Options struct {
	values map[string]optionValue
}

type optionKind int

const (
	optionKindBool optionKind = iota
	optionKindInt
)

type optionValue struct {
	kind   optionKind
	asBool bool
	asInt  int
}

// NewOptions returns an Options primed with every default this
// runtime relies on.
func NewOptions() *Options {
	o := &Options{values: make(map[string]optionValue)}

	// Resolves the open question "symbol cache and GC" (§9): when
	// false (the default, matching the observed source behavior),
	// the symbol cache roots nothing and an interned symbol with no
	// other live reference is collected like anything else.
	o.SetBool("gc.strong_symbol_cache", false)

	// How many frames of call-stack context dump-stack and error
	// reporting keep around; 0 (or less) records every frame with no
	// limit.
	o.SetInt("eval.stack_trace_depth", 32)

	return o
}

func (o *Options) SetBool(name string, v bool) {
	o.values[name] = optionValue{kind: optionKindBool, asBool: v}
}

func (o *Options) SetInt(name string, v int) {
	o.values[name] = optionValue{kind: optionKindInt, asInt: v}
}

func (o *Options) GetBool(name string) bool {
	if v, ok := o.values[name]; ok && v.kind == optionKindBool {
		return v.asBool
	}
	return false
}

func (o *Options) GetInt(name string) int {
	if v, ok := o.values[name]; ok && v.kind == optionKindInt {
		return v.asInt
	}
	return 0
}

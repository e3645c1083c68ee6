package golisp

// This file implements §4.7's fixed primitive operator set, plus the
// special forms of §4.6 ("implemented as builtins with the
// do-not-evaluate-args flag", per §9's design note). Builtins with a
// fixed argument shape validate arity/type through matchArgs
// (args.go). The variadic ones do not: +, -, * and / check their
// arguments in foldInts, reduce counts and checks its arguments by
// hand, and list, print, progn and dump-stack do no argument checking.

// DefaultScope returns a fresh scope pre-populated with the names
// listed in §6 (the special forms plus the fixed builtin set), plus
// `!=` from §4.7 and one additive convenience (`list`, see
// SPEC_FULL.md §3.7).
func (rt *Runtime) DefaultScope() *Value {
	scope := rt.NewScope(nil)
	def := func(name string, fn BuiltinFunc, evalArgs bool) {
		Define(scope, name, rt.NewBuiltin(fn, nil, evalArgs))
	}

	// Special forms: unevaluated arguments.
	def("quote", biQuote, false)
	def("unquote", biUnquote, false)
	def("quasiquote", biQuasiquote, false)
	def("define", biDefine, false)
	def("if", biIf, false)
	def("progn", biProgn, false)

	// Ordinary builtins: evaluated arguments.
	def("eval", biEval, true)
	def("car", biCar, true)
	def("cdr", biCdr, true)
	def("cons", biCons, true)
	def("+", biAdd, true)
	def("-", biSub, true)
	def("*", biMul, true)
	def("/", biDiv, true)
	def("==", biNumEq, true)
	def("=", biNumEq, true)
	def("!=", biNumNeq, true)
	def("<", biLt, true)
	def("<=", biLe, true)
	def(">", biGt, true)
	def(">=", biGe, true)
	def("null?", biNullP, true)
	def("eq?", biEqP, true)
	def("map", biMap, true)
	def("reduce", biReduce, true)
	def("print", biPrint, true)
	def("dump-stack", biDumpStack, true)
	def("list", biList, true)

	// lambda and macro share one implementation distinguished only
	// by the datum each name was registered with.
	Define(scope, "lambda", rt.NewBuiltin(biLambdaOrMacro, false, false))
	Define(scope, "macro", rt.NewBuiltin(biLambdaOrMacro, true, false))

	return scope
}

func biQuote(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "*")
	if err != nil {
		return nil, err
	}
	return matched[0], nil
}

func biUnquote(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "*")
	if err != nil {
		return nil, err
	}
	return rt.Eval(scope, matched[0])
}

func biQuasiquote(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "*")
	if err != nil {
		return nil, err
	}
	return rt.quasiquote(scope, matched[0])
}

// biLambdaOrMacro backs both `lambda` and `macro`: datum is the bool
// isMacro each name was registered with.
func biLambdaOrMacro(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "lR")
	if err != nil {
		return nil, err
	}
	paramsList, body := matched[0], matched[1]

	paramItems, proper := listToSlice(paramsList)
	if !proper {
		return nil, newErrorf(ErrType, "lambda parameter list must be a proper list")
	}
	for _, p := range paramItems {
		if p.Kind != KindSymbol {
			return nil, newErrorf(ErrType, "lambda parameter names must be symbols, got %s", p.Type())
		}
	}

	isMacro, _ := datum.(bool)
	return rt.NewLambda(paramItems, body, scope, isMacro), nil
}

func biDefine(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "s*")
	if err != nil {
		return nil, err
	}
	name, expr := matched[0], matched[1]
	result, err := rt.Eval(scope, expr)
	if err != nil {
		return nil, err
	}
	Define(scope, name.Str, result)
	return result, nil
}

func biIf(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "***")
	if err != nil {
		return nil, err
	}
	cond, err := rt.Eval(scope, matched[0])
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return rt.Eval(scope, matched[1])
	}
	return rt.Eval(scope, matched[2])
}

func biProgn(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	return rt.Progn(scope, args)
}

func biEval(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "*")
	if err != nil {
		return nil, err
	}
	return rt.Eval(scope, matched[0])
}

func biCar(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "l")
	if err != nil {
		return nil, err
	}
	list := matched[0]
	if list.IsNil() {
		return nil, newErrorf(ErrType, "car of nil")
	}
	return list.Left, nil
}

func biCdr(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "l")
	if err != nil {
		return nil, err
	}
	// cdr of nil returns nil, because nil.Right is nil itself (§9).
	return matched[0].Right, nil
}

func biCons(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "**")
	if err != nil {
		return nil, err
	}
	return rt.Cons(matched[0], matched[1]), nil
}

func biList(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	// args is already the evaluated, proper argument list evalArgs
	// built; that is exactly what `list` should return.
	return args, nil
}

func foldInts(args *Value, format byte) ([]int, error) {
	items, proper := listToSlice(args)
	if !proper {
		return nil, newErrorf(ErrType, "argument list is not a proper list")
	}
	nums := make([]int, len(items))
	for i, item := range items {
		if item.Kind != KindInt {
			return nil, newErrorf(ErrType, "argument %d: expected integer, got %s", i, item.Type())
		}
		nums[i] = item.Int
	}
	return nums, nil
}

func biAdd(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	nums, err := foldInts(args, 'd')
	if err != nil {
		return nil, err
	}
	sum := 0
	for _, n := range nums {
		sum += n
	}
	return rt.NewInt(sum), nil
}

func biMul(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	nums, err := foldInts(args, 'd')
	if err != nil {
		return nil, err
	}
	product := 1
	for _, n := range nums {
		product *= n
	}
	return rt.NewInt(product), nil
}

func biSub(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	nums, err := foldInts(args, 'd')
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, newErrorf(ErrArityTooFew, "- requires at least 1 argument")
	}
	if len(nums) == 1 {
		return rt.NewInt(-nums[0]), nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result -= n
	}
	return rt.NewInt(result), nil
}

func biDiv(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	nums, err := foldInts(args, 'd')
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, newErrorf(ErrArityTooFew, "/ requires at least 1 argument")
	}
	if len(nums) == 1 {
		if nums[0] == 0 {
			return nil, newErrorf(ErrDivideByZero, "division by zero")
		}
		return rt.NewInt(1 / nums[0]), nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return nil, newErrorf(ErrDivideByZero, "division by zero")
		}
		result /= n
	}
	return rt.NewInt(result), nil
}

func boolToInt(rt *Runtime, b bool) *Value {
	if b {
		return rt.NewInt(1)
	}
	return rt.NewInt(0)
}

func biNumEq(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "dd")
	if err != nil {
		return nil, err
	}
	return boolToInt(rt, matched[0].Int == matched[1].Int), nil
}

func biNumNeq(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "dd")
	if err != nil {
		return nil, err
	}
	return boolToInt(rt, matched[0].Int != matched[1].Int), nil
}

func biLt(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "dd")
	if err != nil {
		return nil, err
	}
	return boolToInt(rt, matched[0].Int < matched[1].Int), nil
}

func biLe(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "dd")
	if err != nil {
		return nil, err
	}
	return boolToInt(rt, matched[0].Int <= matched[1].Int), nil
}

func biGt(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "dd")
	if err != nil {
		return nil, err
	}
	return boolToInt(rt, matched[0].Int > matched[1].Int), nil
}

func biGe(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "dd")
	if err != nil {
		return nil, err
	}
	return boolToInt(rt, matched[0].Int >= matched[1].Int), nil
}

func biNullP(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "*")
	if err != nil {
		return nil, err
	}
	return boolToInt(rt, matched[0].IsNil()), nil
}

func biEqP(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "**")
	if err != nil {
		return nil, err
	}
	return boolToInt(rt, matched[0] == matched[1]), nil
}

// biMap applies f to parallel elements of the given lists, stopping
// when the shortest is exhausted. Each call goes through Apply
// directly (rather than re-entering Eval with a freshly synthesized
// `(f 'item ...)` form), so the elements the callback receives never
// need to be quoted to begin with: Apply never evaluates the argument
// list it is handed.
func biMap(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	matched, err := matchArgs(args, "*R")
	if err != nil {
		return nil, err
	}
	f, rest := matched[0], matched[1]
	if !f.IsCallable() {
		return nil, newErrorf(ErrNotCallable, "map: %s is not callable", f.Type())
	}

	listVals, proper := listToSlice(rest)
	if !proper || len(listVals) == 0 {
		return nil, newErrorf(ErrArityTooFew, "map requires at least one list argument")
	}

	lists := make([][]*Value, len(listVals))
	minLen := -1
	for i, lv := range listVals {
		if lv.Kind != KindPair {
			return nil, newErrorf(ErrType, "map: argument %d is not a list", i+1)
		}
		items, _ := listToSlice(lv)
		lists[i] = items
		if minLen == -1 || len(items) < minLen {
			minLen = len(items)
		}
	}

	results := make([]*Value, minLen)
	for i := 0; i < minLen; i++ {
		callArgs := make([]*Value, len(lists))
		for j := range lists {
			callArgs[j] = lists[j][i]
		}
		v, err := rt.Apply(scope, f, rt.List(callArgs...))
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return rt.List(results...), nil
}

// biReduce implements both the 2-arg `(reduce f l)` form (seeded with
// l's first element, requiring |l|>=2) and the 3-arg
// `(reduce f init l)` form (requiring |l|>=1).
func biReduce(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	items, proper := listToSlice(args)
	if !proper {
		return nil, newErrorf(ErrType, "argument list is not a proper list")
	}

	switch len(items) {
	case 2:
		f, l := items[0], items[1]
		if !f.IsCallable() {
			return nil, newErrorf(ErrNotCallable, "reduce: %s is not callable", f.Type())
		}
		if l.Kind != KindPair {
			return nil, newErrorf(ErrType, "reduce: expected list, got %s", l.Type())
		}
		elems, _ := listToSlice(l)
		if len(elems) < 2 {
			return nil, newErrorf(ErrArityTooFew, "reduce without an initial value requires at least 2 elements")
		}
		acc := elems[0]
		for _, e := range elems[1:] {
			var err error
			acc, err = rt.Apply(scope, f, rt.List(acc, e))
			if err != nil {
				return nil, err
			}
		}
		return acc, nil

	case 3:
		f, init, l := items[0], items[1], items[2]
		if !f.IsCallable() {
			return nil, newErrorf(ErrNotCallable, "reduce: %s is not callable", f.Type())
		}
		if l.Kind != KindPair {
			return nil, newErrorf(ErrType, "reduce: expected list, got %s", l.Type())
		}
		elems, _ := listToSlice(l)
		if len(elems) < 1 {
			return nil, newErrorf(ErrArityTooFew, "reduce requires at least 1 element")
		}
		acc := init
		for _, e := range elems {
			var err error
			acc, err = rt.Apply(scope, f, rt.List(acc, e))
			if err != nil {
				return nil, err
			}
		}
		return acc, nil

	default:
		if len(items) < 2 {
			return nil, newErrorf(ErrArityTooFew, "reduce expects 2 or 3 arguments, got %d", len(items))
		}
		return nil, newErrorf(ErrArityTooMany, "reduce expects 2 or 3 arguments, got %d", len(items))
	}
}

func biPrint(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	items, _ := listToSlice(args)
	for _, item := range items {
		rt.printf("%s\n", Sprint(item))
	}
	return rt.heap.Nil(), nil
}

func biDumpStack(rt *Runtime, scope *Value, args *Value, datum any) (*Value, error) {
	rt.printf("%s\n", rt.stack.String())
	return rt.heap.Nil(), nil
}

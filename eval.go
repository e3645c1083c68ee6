package golisp

// Eval implements §4.6's eval(scope, v). Integers, strings, builtins,
// lambdas and scopes are self-evaluating; a symbol is looked up; a
// list either is nil (which is also self-evaluating, being the
// canonical "nothing" value) or is a form to apply.
func (rt *Runtime) Eval(scope *Value, v *Value) (*Value, error) {
	switch v.Kind {
	case KindInt, KindString, KindBuiltin, KindLambda, KindScope:
		return v, nil
	case KindSymbol:
		return Lookup(scope, v.Str)
	case KindPair:
		if v.IsNil() {
			return v, nil
		}
		return rt.evalForm(scope, v)
	default:
		return nil, newErrorf(ErrType, "don't know how to evaluate a %s", v.Type())
	}
}

// evalForm implements the five numbered steps of §4.6's list case.
func (rt *Runtime) evalForm(scope *Value, form *Value) (*Value, error) {
	callee, err := rt.Eval(scope, form.Left)
	if err != nil {
		return nil, err
	}
	if !callee.IsCallable() {
		return nil, newErrorf(ErrNotCallable, "%s is not callable", callee.Type()).
			withStack(rt.stack.String())
	}

	isMacro := callee.Kind == KindLambda && callee.IsMacro
	shouldEvalArgs := true
	if callee.Kind == KindBuiltin {
		shouldEvalArgs = callee.EvalArgs
	} else if isMacro {
		shouldEvalArgs = false
	}

	var args *Value
	if shouldEvalArgs {
		args, err = rt.evalArgs(scope, form.Right)
		if err != nil {
			return nil, err
		}
	} else {
		args = form.Right
	}

	result, err := rt.Apply(scope, callee, args)
	if err != nil {
		return nil, err
	}

	if isMacro {
		// The macro's result is an unevaluated form; interpret it
		// once more, in the caller's scope (§4.6 step 5).
		return rt.Eval(scope, result)
	}
	return result, nil
}

// evalArgs evaluates every element of a proper argument list, in
// source order, into a fresh proper list.
func (rt *Runtime) evalArgs(scope *Value, list *Value) (*Value, error) {
	items, proper := listToSlice(list)
	if !proper {
		return nil, newErrorf(ErrType, "argument list is not a proper list")
	}
	evaluated := make([]*Value, len(items))
	for i, item := range items {
		v, err := rt.Eval(scope, item)
		if err != nil {
			return nil, err
		}
		evaluated[i] = v
	}
	return rt.List(evaluated...), nil
}

// Apply calls callee with args (already evaluated, unless callee
// skips argument evaluation). callerScope is the scope the call site
// is evaluating in; builtins receive it directly, lambdas use it only
// indirectly in that their child scope's parent is the lambda's own
// captured scope, never callerScope (§4.6 step 4, lexical not dynamic
// scoping).
func (rt *Runtime) Apply(callerScope *Value, callee *Value, args *Value) (*Value, error) {
	switch callee.Kind {
	case KindBuiltin:
		rt.stack.push("<builtin>")
		defer rt.stack.pop()
		return callee.Fn(rt, callerScope, args, callee.Datum)

	case KindLambda:
		rt.stack.push("<lambda>")
		defer rt.stack.pop()

		argItems, proper := listToSlice(args)
		if !proper {
			return nil, newErrorf(ErrType, "argument list is not a proper list")
		}
		if len(argItems) < len(callee.Params) {
			return nil, newErrorf(ErrArityTooFew, "expected %d argument(s), got %d", len(callee.Params), len(argItems))
		}
		if len(argItems) > len(callee.Params) {
			return nil, newErrorf(ErrArityTooMany, "expected %d argument(s), got %d", len(callee.Params), len(argItems))
		}

		child := rt.NewScope(callee.Captured)
		for i, param := range callee.Params {
			Define(child, param.Str, argItems[i])
		}
		return rt.Progn(child, callee.Body)

	default:
		return nil, newErrorf(ErrNotCallable, "%s is not callable", callee.Type())
	}
}

// Progn evaluates each element of body (a proper list) in order,
// returning the last result; an empty progn returns nil.
func (rt *Runtime) Progn(scope *Value, body *Value) (*Value, error) {
	items, proper := listToSlice(body)
	if !proper {
		return nil, newErrorf(ErrType, "progn body is not a proper list")
	}
	result := rt.heap.Nil()
	for _, item := range items {
		v, err := rt.Eval(scope, item)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// quasiquote walks x non-destructively (§9: building a fresh tree
// rather than rewriting in place, so the input can still be shared
// elsewhere). Every cons cell whose head is the symbol unquote is
// replaced by evaluating that very cell; every other cons cell is
// rebuilt with both of its fields quasiquoted; every non-list value
// passes through unchanged.
func (rt *Runtime) quasiquote(scope *Value, x *Value) (*Value, error) {
	if x.Kind != KindPair || x.IsNil() {
		return x, nil
	}
	if x.Left.Kind == KindSymbol && x.Left.Str == "unquote" {
		return rt.Eval(scope, x)
	}
	left, err := rt.quasiquote(scope, x.Left)
	if err != nil {
		return nil, err
	}
	right, err := rt.quasiquote(scope, x.Right)
	if err != nil {
		return nil, err
	}
	return rt.Cons(left, right), nil
}

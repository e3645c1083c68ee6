package golisp

// matchArgs is the single declarative argument-matching facility used
// by the fixed-shape builtins in builtins.go (§4.6); the variadic
// arithmetic builtins, reduce, list, print, progn and dump-stack do
// not go through it. format is a
// sequence of letters, one per expected positional argument:
//
//	d  integer       l  list (including nil)
//	s  symbol        S  string
//	*  any value      R  "rest": bind the remaining list and stop
//
// R, if present, must be the last letter in format. Arity mismatches
// produce ErrArityTooFew/ErrArityTooMany; a positional type mismatch
// produces ErrType.
func matchArgs(args *Value, format string) ([]*Value, error) {
	matched := make([]*Value, 0, len(format))
	cursor := args

	for i := 0; i < len(format); i++ {
		spec := format[i]

		if spec == 'R' {
			matched = append(matched, cursor)
			return matched, nil
		}

		if cursor.IsNil() {
			return nil, newErrorf(ErrArityTooFew, "expected at least %d argument(s), got %d", len(format), i)
		}

		arg := cursor.Left
		if err := checkArgType(arg, spec, i); err != nil {
			return nil, err
		}
		matched = append(matched, arg)
		cursor = cursor.Right
	}

	if !cursor.IsNil() {
		extra := 0
		for c := cursor; !c.IsNil(); c = c.Right {
			extra++
		}
		return nil, newErrorf(ErrArityTooMany, "expected %d argument(s), got %d", len(format), len(format)+extra)
	}

	return matched, nil
}

func checkArgType(v *Value, spec byte, position int) error {
	switch spec {
	case 'd':
		if v.Kind != KindInt {
			return newErrorf(ErrType, "argument %d: expected integer, got %s", position, v.Type())
		}
	case 'l':
		if v.Kind != KindPair {
			return newErrorf(ErrType, "argument %d: expected list, got %s", position, v.Type())
		}
	case 's':
		if v.Kind != KindSymbol {
			return newErrorf(ErrType, "argument %d: expected symbol, got %s", position, v.Type())
		}
	case 'S':
		if v.Kind != KindString {
			return newErrorf(ErrType, "argument %d: expected string, got %s", position, v.Type())
		}
	case '*':
		// any value
	}
	return nil
}

package golisp

// The built-in subrs. Each receives the environment and an argument
// list the applier has already evaluated. Signatures are positional:
// extra arguments are ignored and missing ones default to NIL, with
// mis-typed arguments answered by NIL throughout.

func (h *Heap) arg(args Value, n int) Value {
	cur := args
	for i := 0; i < n; i++ {
		cur = h.Cdr(cur)
	}
	return h.Car(cur)
}

// fixnumArg returns the n'th argument when it is a fixnum.
func (h *Heap) fixnumArg(args Value, n int) (int, bool) {
	v := h.arg(args, n)
	if !v.IsFixnum() {
		return 0, false
	}
	return FixnumValue(v), true
}

func subrCar(h *Heap, env, args Value) Value {
	return h.Car(h.arg(args, 0))
}

func subrCdr(h *Heap, env, args Value) Value {
	return h.Cdr(h.arg(args, 0))
}

func subrCons(h *Heap, env, args Value) Value {
	return h.Cons(h.arg(args, 0), h.arg(args, 1))
}

// LIST is the identity on its already-evaluated argument list.
func subrList(h *Heap, env, args Value) Value {
	return args
}

func subrRplaca(h *Heap, env, args Value) Value {
	cell := h.arg(args, 0)
	if !cell.IsCell() {
		return h.NIL
	}
	return h.Rplaca(cell, h.arg(args, 1))
}

func subrRplacd(h *Heap, env, args Value) Value {
	cell := h.arg(args, 0)
	if !cell.IsCell() {
		return h.NIL
	}
	return h.Rplacd(cell, h.arg(args, 1))
}

func subrLength(h *Heap, env, args Value) Value {
	return NewFixnum(h.ListLength(h.arg(args, 0)))
}

// MEMBER answers T or NIL; it does not return the matching tail.
func subrMember(h *Heap, env, args Value) Value {
	x := h.arg(args, 0)
	for list := h.arg(args, 1); list != h.NIL; list = h.Cdr(list) {
		if h.Equal(x, h.Car(list)) {
			return h.T
		}
	}
	return h.NIL
}

func subrAtom(h *Heap, env, args Value) Value {
	return h.Bool(h.arg(args, 0).IsAtom())
}

func subrNull(h *Heap, env, args Value) Value {
	return h.Bool(h.arg(args, 0) == h.NIL)
}

func subrNumberp(h *Heap, env, args Value) Value {
	return h.Bool(h.arg(args, 0).IsFixnum())
}

func subrZerop(h *Heap, env, args Value) Value {
	n, ok := h.fixnumArg(args, 0)
	return h.Bool(ok && n == 0)
}

func subrMinusp(h *Heap, env, args Value) Value {
	n, ok := h.fixnumArg(args, 0)
	return h.Bool(ok && n < 0)
}

func subrStringp(h *Heap, env, args Value) Value {
	return h.Bool(h.arg(args, 0).IsString())
}

func subrStreamp(h *Heap, env, args Value) Value {
	return h.Bool(h.arg(args, 0).IsStream())
}

func subrEq(h *Heap, env, args Value) Value {
	return h.Bool(Eq(h.arg(args, 0), h.arg(args, 1)))
}

func subrEqual(h *Heap, env, args Value) Value {
	return h.Bool(h.Equal(h.arg(args, 0), h.arg(args, 1)))
}

func subrPlus(h *Heap, env, args Value) Value {
	sum := 0
	for cur := args; cur != h.NIL; cur = h.Cdr(cur) {
		v := h.Car(cur)
		if !v.IsFixnum() {
			return h.NIL
		}
		sum += FixnumValue(v)
	}
	return NewFixnum(sum)
}

// MINUS is negation with one argument and subtraction with more.
func subrMinus(h *Heap, env, args Value) Value {
	acc, ok := h.fixnumArg(args, 0)
	if !ok {
		return h.NIL
	}
	rest := h.Cdr(args)
	if rest == h.NIL {
		return NewFixnum(-acc)
	}
	for cur := rest; cur != h.NIL; cur = h.Cdr(cur) {
		v := h.Car(cur)
		if !v.IsFixnum() {
			return h.NIL
		}
		acc -= FixnumValue(v)
	}
	return NewFixnum(acc)
}

// TIMES uses an identity of zero, so the empty product is 0 rather
// than the customary 1.
func subrTimes(h *Heap, env, args Value) Value {
	if args == h.NIL {
		return NewFixnum(0)
	}
	product, ok := h.fixnumArg(args, 0)
	if !ok {
		return h.NIL
	}
	for cur := h.Cdr(args); cur != h.NIL; cur = h.Cdr(cur) {
		v := h.Car(cur)
		if !v.IsFixnum() {
			return h.NIL
		}
		product *= FixnumValue(v)
	}
	return NewFixnum(product)
}

func subrDivide(h *Heap, env, args Value) Value {
	x, ok := h.fixnumArg(args, 0)
	if !ok {
		return h.NIL
	}
	y, ok := h.fixnumArg(args, 1)
	if !ok || y == 0 {
		return h.NIL
	}
	return NewFixnum(x / y)
}

func subrModulo(h *Heap, env, args Value) Value {
	x, ok := h.fixnumArg(args, 0)
	if !ok {
		return h.NIL
	}
	y, ok := h.fixnumArg(args, 1)
	if !ok || y == 0 {
		return h.NIL
	}
	return NewFixnum(x % y)
}

func (h *Heap) compareArgs(args Value, cmp func(x, y int) bool) Value {
	x, ok := h.fixnumArg(args, 0)
	if !ok {
		return h.NIL
	}
	y, ok := h.fixnumArg(args, 1)
	if !ok {
		return h.NIL
	}
	return h.Bool(cmp(x, y))
}

func subrLessThan(h *Heap, env, args Value) Value {
	return h.compareArgs(args, func(x, y int) bool { return x < y })
}

func subrLessOrEqual(h *Heap, env, args Value) Value {
	return h.compareArgs(args, func(x, y int) bool { return x <= y })
}

func subrGreaterThan(h *Heap, env, args Value) Value {
	return h.compareArgs(args, func(x, y int) bool { return x > y })
}

func subrGreaterOrEqual(h *Heap, env, args Value) Value {
	return h.compareArgs(args, func(x, y int) bool { return x >= y })
}

func subrNumEqual(h *Heap, env, args Value) Value {
	return h.compareArgs(args, func(x, y int) bool { return x == y })
}

func subrRead(h *Heap, env, args Value) Value {
	designator := h.arg(args, 0)
	stream := h.BestInputStream(env, designator)
	if !stream.IsStream() {
		return h.NIL
	}
	return h.readObject(env, stream, h.NIL)
}

// PRIN1 prints with readable quoting and returns the object.
func subrPrin1(h *Heap, env, args Value) Value {
	obj := h.arg(args, 0)
	h.PrintQuoted(env, h.arg(args, 1), obj, true)
	return obj
}

// PRINC prints with readable quoting off.
func subrPrinc(h *Heap, env, args Value) Value {
	obj := h.arg(args, 0)
	h.PrintQuoted(env, h.arg(args, 1), obj, false)
	return obj
}

// PRINT emits a newline, the object readably, and a space.
func subrPrint(h *Heap, env, args Value) Value {
	obj := h.arg(args, 0)
	designator := h.arg(args, 1)
	h.Print(env, designator, NewChar('\n'))
	h.PrintQuoted(env, designator, obj, true)
	h.Print(env, designator, NewChar(' '))
	return obj
}

func subrTerpri(h *Heap, env, args Value) Value {
	h.Print(env, h.arg(args, 0), NewChar('\n'))
	return h.NIL
}

func subrEval(h *Heap, env, args Value) Value {
	form := h.arg(args, 0)
	if form == h.NIL {
		return h.NIL
	}
	return h.Eval(env, form)
}

func subrApply(h *Heap, env, args Value) Value {
	function := h.arg(args, 0)
	if !function.IsSubr() && !function.IsCell() {
		return h.NIL
	}
	return h.Apply(env, function, h.arg(args, 1))
}

// addBuiltinSubrs registers every built-in operator in the
// environment, each with its SUBR value and print name.
func (h *Heap) addBuiltinSubrs(env Value) {
	builtins := []struct {
		name string
		fn   Callable
	}{
		{"CAR", subrCar},
		{"CDR", subrCdr},
		{"CONS", subrCons},
		{"ATOM", subrAtom},
		{"EQ", subrEq},
		{"EQUAL", subrEqual},
		{"LIST", subrList},
		{"NULL", subrNull},
		{"NOT", subrNull},
		{"MEMBER", subrMember},
		{"LENGTH", subrLength},
		{"RPLACA", subrRplaca},
		{"RPLACD", subrRplacd},
		{"NUMBERP", subrNumberp},
		{"ZEROP", subrZerop},
		{"MINUSP", subrMinusp},
		{"STRINGP", subrStringp},
		{"STREAMP", subrStreamp},
		{"<", subrLessThan},
		{"<=", subrLessOrEqual},
		{">", subrGreaterThan},
		{">=", subrGreaterOrEqual},
		{"=", subrNumEqual},
		{"+", subrPlus},
		{"-", subrMinus},
		{"*", subrTimes},
		{"/", subrDivide},
		{"%", subrModulo},
		{"READ", subrRead},
		{"PRIN1", subrPrin1},
		{"PRINC", subrPrinc},
		{"PRINT", subrPrint},
		{"TERPRI", subrTerpri},
		{"EVAL", subrEval},
		{"APPLY", subrApply},
	}

	for _, builtin := range builtins {
		atom := h.NewAtom(builtin.name)
		name := h.NewStringFromGo(builtin.name)
		subr := h.NewSubr(builtin.fn, name)
		h.SetSymbolValue(env, atom, h.SUBR, subr, false)
		h.SetSymbolValue(env, atom, h.PNAME, name, false)
	}
}

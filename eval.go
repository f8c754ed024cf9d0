package golisp

// The evaluator is a synchronous recursive tree walk. Dispatch is on
// the form's tag: atoms are symbol lookups, cells are special forms or
// applications, and every other kind evaluates to itself.

// Eval evaluates a form in the given environment.
func (h *Heap) Eval(env, form Value) Value {
	switch form.Tag() {
	case TagAtom:
		return h.evalAtom(env, form)
	case TagCell:
		return h.evalCell(env, form)
	default:
		return form
	}
}

// evalAtom treats the atom as a symbol and returns, in order of
// preference, its SUBR, its EXPR, or its APVAL; NIL when the symbol is
// absent or bare.
func (h *Heap) evalAtom(env, atom Value) Value {
	entry := h.FindSymbol(env, atom, true)
	plist := h.Cdr(entry)
	if entry == h.NIL || plist == h.NIL {
		return h.NIL
	}

	if subr := h.PlistGet(plist, h.SUBR); subr != h.NIL {
		return subr
	}
	if expr := h.PlistGet(plist, h.EXPR); expr != h.NIL {
		return expr
	}
	if apval := h.PlistGet(plist, h.APVAL); apval != h.NIL {
		return apval
	}
	return h.NIL
}

// evalCell decides what a list means by its car: a special form symbol
// dispatches with the whole form unevaluated; any other atom resolves
// to a callable which is applied to the evaluated cdr; a cell in the
// car evaluates to the callable itself. Anything else is NIL.
func (h *Heap) evalCell(env, cell Value) Value {
	head := h.Car(cell)

	switch {
	case head.IsAtom():
		if fn, ok := h.specialForm(head); ok {
			return fn(h, env, cell)
		}
		callable := h.evalAtom(env, head)
		if callable == h.NIL {
			return h.NIL
		}
		args := h.evalArgumentList(env, h.Cdr(cell))
		return h.Apply(env, callable, args)

	case head.IsCell():
		callable := h.evalCell(env, head)
		args := h.evalArgumentList(env, h.Cdr(cell))
		return h.Apply(env, callable, args)
	}

	return h.NIL
}

// evalArgumentList evaluates each element left to right into a fresh
// list.
func (h *Heap) evalArgumentList(env, list Value) Value {
	if list == h.NIL || !list.IsCell() {
		return h.NIL
	}

	head, tail := h.NIL, h.NIL
	for cur := list; cur != h.NIL; cur = h.Cdr(cur) {
		evaluated := h.Eval(env, h.Car(cur))
		cell := h.Cons(evaluated, h.NIL)
		if head == h.NIL {
			head = cell
		} else {
			h.Rplacd(tail, cell)
		}
		tail = cell
	}
	return head
}

// Apply applies a callable to an already-evaluated argument list. A
// cell callable must be a lambda form; anything else is expected to be
// a subr.
func (h *Heap) Apply(env, callable, args Value) Value {
	if callable.IsCell() {
		return h.applyExpr(env, callable, args)
	}
	if callable.IsSubr() {
		return h.CallSubr(callable, env, args)
	}
	return h.NIL
}

// bindVariables binds a lambda list to values pairwise in env, without
// touching parent frames. A length mismatch fails the binding.
func (h *Heap) bindVariables(env, variables, values Value) bool {
	vars, vals := variables, values
	for vars != h.NIL && vals != h.NIL {
		h.SetSymbolValue(env, h.Car(vars), h.APVAL, h.Car(vals), false)
		vars = h.Cdr(vars)
		vals = h.Cdr(vals)
	}
	// Exhausting one list but not the other means the arity did not
	// match.
	return vars == vals
}

// applyExpr applies a (LAMBDA lambda-list body...) form: a child
// environment is created, the lambda list is bound to the arguments
// there, and the body forms run left to right, the last one's value
// being the result.
func (h *Heap) applyExpr(env, function, args Value) Value {
	child := h.NewEnvironment(env)

	rest := h.Cdr(function)
	variables := h.Car(rest)

	if !h.bindVariables(child, variables, args) {
		return h.NIL
	}

	result := h.NIL
	for body := h.Cdr(rest); body != h.NIL; body = h.Cdr(body) {
		result = h.Eval(child, h.Car(body))
	}
	return result
}

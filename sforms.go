package golisp

// Special forms receive the whole unevaluated form, operator included.
// Dispatch is by symbol identity against the heap's registered table,
// not by name.

type sformFunc func(h *Heap, env, cell Value) Value

type sform struct {
	symbol Value
	fn     sformFunc
}

// specialForm looks the atom up in the dispatch table by identity.
func (h *Heap) specialForm(atom Value) (sformFunc, bool) {
	for _, entry := range h.sforms {
		if Eq(atom, entry.symbol) {
			return entry.fn, true
		}
	}
	return nil, false
}

// addBuiltinSpecialForms interns the special form symbols in the
// environment and registers the dispatch table.
func (h *Heap) addBuiltinSpecialForms(env Value) {
	intern := func(name string) Value {
		return h.InternSymbol(env, h.NewAtom(name))
	}

	h.symQuote = intern("QUOTE")
	h.symLambda = intern("LAMBDA")
	h.symBlock = intern("BLOCK")
	h.symDefine = intern("DEFINE")

	h.sforms = []sform{
		{intern("AND"), (*Heap).evalAnd},
		{intern("COND"), (*Heap).evalCond},
		{h.symDefine, (*Heap).evalDefine},
		{intern("DEFUN"), (*Heap).evalDefun},
		{intern("IF"), (*Heap).evalIf},
		{h.symLambda, (*Heap).evalLambda},
		{intern("OR"), (*Heap).evalOr},
		{h.symQuote, (*Heap).evalQuote},
		{h.symBlock, (*Heap).evalBlock},
		{intern("RETURN-FROM"), (*Heap).evalReturnFrom},
		{intern("RETURN"), (*Heap).evalReturn},
		{intern("SET"), (*Heap).evalSet},
		{intern("SETQ"), (*Heap).evalSetq},
		{intern("TAGBODY"), (*Heap).evalTagbody},
		{intern("GO"), (*Heap).evalGo},
	}

	h.tagbodyInitialize(env)
}

// (AND form...) evaluates left to right, stopping at the first NIL.
// With no forms the result is T.
func (h *Heap) evalAnd(env, cell Value) Value {
	args := h.Cdr(cell)
	if args == h.NIL {
		return h.T
	}

	result := h.NIL
	for cur := args; cur != h.NIL; cur = h.Cdr(cur) {
		result = h.Eval(env, h.Car(cur))
		if result == h.NIL {
			return h.NIL
		}
	}
	return result
}

// (OR form...) evaluates left to right, returning the first non-NIL
// value. With no forms the result is NIL.
func (h *Heap) evalOr(env, cell Value) Value {
	for cur := h.Cdr(cell); cur != h.NIL; cur = h.Cdr(cur) {
		if result := h.Eval(env, h.Car(cur)); result != h.NIL {
			return result
		}
	}
	return h.NIL
}

// (COND (test body...)...) evaluates each test in order; the first
// truthy one selects its clause. An empty body yields the test's own
// value.
func (h *Heap) evalCond(env, cell Value) Value {
	for clauses := h.Cdr(cell); clauses != h.NIL; clauses = h.Cdr(clauses) {
		clause := h.Car(clauses)
		result := h.Eval(env, h.Car(clause))
		if result == h.NIL {
			continue
		}
		for body := h.Cdr(clause); body != h.NIL; body = h.Cdr(body) {
			result = h.Eval(env, h.Car(body))
		}
		return result
	}
	return h.NIL
}

// (IF test then [else]) evaluates then or else depending on the test.
// A missing else arm yields NIL.
func (h *Heap) evalIf(env, cell Value) Value {
	rest := h.Cdr(cell)
	test := h.Car(rest)
	thenForm := h.Car(h.Cdr(rest))
	elseRest := h.Cdr(h.Cdr(rest))

	if h.Truthy(h.Eval(env, test)) {
		return h.Eval(env, thenForm)
	}
	if elseRest == h.NIL {
		return h.NIL
	}
	return h.Eval(env, h.Car(elseRest))
}

// (QUOTE x) returns x unevaluated.
func (h *Heap) evalQuote(env, cell Value) Value {
	return h.Car(h.Cdr(cell))
}

// (LAMBDA args body...) is not evaluated, only applied; the form is
// its own value.
func (h *Heap) evalLambda(env, cell Value) Value {
	return cell
}

// (SET name-expr value-expr) evaluates both arguments and binds the
// resulting atom's APVAL in the current frame. A NIL name silently
// yields NIL.
func (h *Heap) evalSet(env, cell Value) Value {
	rest := h.Cdr(cell)
	name := h.Eval(env, h.Car(rest))
	if name == h.NIL {
		return h.NIL
	}
	value := h.Eval(env, h.Car(h.Cdr(rest)))
	return h.SetSymbolValue(env, name, h.APVAL, value, false)
}

// (SETQ name value-expr) is SET with the name taken literally.
func (h *Heap) evalSetq(env, cell Value) Value {
	rest := h.Cdr(cell)
	name := h.Car(rest)
	value := h.Eval(env, h.Car(h.Cdr(rest)))
	return h.SetSymbolValue(env, name, h.APVAL, value, false)
}

// (DEFINE name lambda-form) stores the lambda form unevaluated as the
// symbol's EXPR and returns the name.
func (h *Heap) evalDefine(env, cell Value) Value {
	rest := h.Cdr(cell)
	name := h.Car(rest)
	if name == h.NIL {
		return h.NIL
	}
	expr := h.Car(h.Cdr(rest))
	h.SetSymbolValue(env, name, h.EXPR, expr, false)
	return name
}

// (DEFUN name (args...) body...) rewrites itself to
//
//	(DEFINE name (LAMBDA (args...) (BLOCK name body...)))
//
// and evaluates that.
func (h *Heap) evalDefun(env, cell Value) Value {
	rest := h.Cdr(cell)
	name := h.Car(rest)
	arguments := h.Car(h.Cdr(rest))
	body := h.Cdr(h.Cdr(rest))

	blockForm := h.Cons(h.symBlock, h.Cons(name, body))
	lambdaForm := h.List(h.symLambda, arguments, blockForm)
	defineForm := h.List(h.symDefine, name, lambdaForm)

	return h.Eval(env, defineForm)
}

// (BLOCK tag body...) evaluates the body left to right and returns the
// last value. A RETURN-FROM naming the tag, or a bare RETURN reaching
// this innermost block, exits here with its payload.
func (h *Heap) evalBlock(env, cell Value) (result Value) {
	args := h.Cdr(cell)
	tag := h.Car(args)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		sig, ok := r.(blockSignal)
		if ok && (sig.tag == h.NIL || Eq(sig.tag, tag)) {
			result = sig.value
			return
		}
		panic(r)
	}()

	result = h.NIL
	for body := h.Cdr(args); body != h.NIL; body = h.Cdr(body) {
		result = h.Eval(env, h.Car(body))
	}
	return result
}

// (RETURN-FROM tag [value]) transfers control to the BLOCK named by
// the literal tag, carrying the evaluated value.
func (h *Heap) evalReturnFrom(env, cell Value) Value {
	rest := h.Cdr(cell)
	tag := h.Car(rest)
	value := h.NIL
	if valueRest := h.Cdr(rest); valueRest != h.NIL {
		value = h.Eval(env, h.Car(valueRest))
	}
	panic(blockSignal{tag: tag, value: value})
}

// (RETURN [value]) is RETURN-FROM with a NIL tag: the innermost BLOCK
// catches it.
func (h *Heap) evalReturn(env, cell Value) Value {
	value := h.NIL
	if rest := h.Cdr(cell); rest != h.NIL {
		value = h.Eval(env, h.Car(rest))
	}
	panic(blockSignal{tag: h.NIL, value: value})
}

// (GO tag) transfers control to the named tag in the innermost active
// TAGBODY that declares it.
func (h *Heap) evalGo(env, cell Value) Value {
	tag := h.Car(h.Cdr(cell))
	panic(goSignal{tag: tag})
}

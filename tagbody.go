package golisp

// TAGBODY runs as a small state machine kept in plists. The body is
// split into segments keyed by their leading tag, with implicit start
// and end tags bracketing it:
//
//   - %SI:TAGBODY-SEQUENCE — the tags in declaration order.
//   - %SI:TAGBODY-MAPPING  — plist from tag to its statement list.
//   - %SI:TAGBODY-NEXT     — the tag to execute next; GO rewrites it.
//
// The environment tracks the active invocations under the reserved
// %SI:*TAGBODY-STACK* variable, with %SI:*TAGBODY-CURRENT* pointing at
// the one executing, because a GO may target not just the innermost
// tagbody but any enclosing one still on the stack. Leaving a tagbody
// pops it and everything pushed above it.

// tagbodyInitialize creates and interns the reserved atoms. The two
// stack variables start with an APVAL of NIL rather than themselves.
func (h *Heap) tagbodyInitialize(env Value) {
	h.tagbodyStack = h.InternSymbol(env, h.NewAtom("%SI:*TAGBODY-STACK*"))
	h.tagbodyCurrent = h.InternSymbol(env, h.NewAtom("%SI:*TAGBODY-CURRENT*"))
	h.tagbodySequence = h.InternSymbol(env, h.NewAtom("%SI:TAGBODY-SEQUENCE"))
	h.tagbodyMapping = h.InternSymbol(env, h.NewAtom("%SI:TAGBODY-MAPPING"))
	h.tagbodyNext = h.InternSymbol(env, h.NewAtom("%SI:TAGBODY-NEXT"))
	h.tagbodyStart = h.InternSymbol(env, h.NewAtom("%SI:TAGBODY-START"))
	h.tagbodyEnd = h.InternSymbol(env, h.NewAtom("%SI:TAGBODY-END"))
}

// (TAGBODY form...) builds the state machine, pushes it on the active
// stack, and drives it to the end tag. The result is always NIL.
func (h *Heap) evalTagbody(env, cell Value) Value {
	plist := h.tagbodyCreatePlist(cell)
	if plist == h.NIL {
		return h.NIL
	}
	h.tagbodyPush(env, plist)
	h.tagbodyExecute(env, plist)
	return h.NIL
}

// tagbodyCreatePlist splits the body into tag-keyed segments. An
// element that is neither an atom (a tag) nor a cell (a statement)
// fails the whole form.
func (h *Heap) tagbodyCreatePlist(cell Value) Value {
	tags, tagsTail := h.NIL, h.NIL
	appendTag := func(tag Value) {
		link := h.Cons(tag, h.NIL)
		if tags == h.NIL {
			tags = link
		} else {
			h.Rplacd(tagsTail, link)
		}
		tagsTail = link
	}

	mapping := h.NewPlist(h.Cons(h.tagbodyStart, h.NIL))

	current := h.tagbodyStart
	forms, formsTail := h.NIL, h.NIL

	for cur := h.Cdr(cell); cur != h.NIL; cur = h.Cdr(cur) {
		item := h.Car(cur)
		switch {
		case item.IsAtom():
			// A tag closes the current segment and opens its own.
			h.PlistSet(mapping, current, forms)
			appendTag(current)
			current = item
			forms, formsTail = h.NIL, h.NIL

		case item.IsCell():
			stmt := h.Cons(item, h.NIL)
			if forms == h.NIL {
				forms = stmt
			} else {
				h.Rplacd(formsTail, stmt)
			}
			formsTail = stmt

		default:
			return h.NIL
		}
	}

	// Close the trailing segment and add the implicit end state.
	h.PlistSet(mapping, current, forms)
	appendTag(current)
	h.PlistSet(mapping, h.tagbodyEnd, h.NIL)
	appendTag(h.tagbodyEnd)

	return h.NewPlist(
		h.Cons(h.tagbodyMapping, mapping),
		h.Cons(h.tagbodySequence, tags),
		h.Cons(h.tagbodyNext, h.tagbodyStart),
	)
}

func (h *Heap) tagbodyPush(env, plist Value) {
	stack := h.GetSymbolValue(env, h.tagbodyStack, h.APVAL, true)
	h.SetSymbolValue(env, h.tagbodyStack, h.APVAL, h.Cons(plist, stack), true)
	h.SetSymbolValue(env, h.tagbodyCurrent, h.APVAL, plist, true)
}

// tagbodyPop removes the invocation and anything still stacked above
// it.
func (h *Heap) tagbodyPop(env, plist Value) {
	stack := h.GetSymbolValue(env, h.tagbodyStack, h.APVAL, true)
	for cur := stack; cur != h.NIL; {
		top := h.Car(cur)
		cur = h.Cdr(cur)
		if top == plist {
			h.SetSymbolValue(env, h.tagbodyStack, h.APVAL, cur, true)
			h.SetSymbolValue(env, h.tagbodyCurrent, h.APVAL, h.Car(cur), true)
			return
		}
	}
}

// tagbodyExecute drives the state machine. Each round looks up the
// next tag, runs its statements, and steps the sequence pointer; a GO
// raised inside a statement rewrites the next slot instead, so the
// loop re-enters wherever the jump pointed.
func (h *Heap) tagbodyExecute(env, plist Value) {
	sequence := h.PlistGet(plist, h.tagbodySequence)
	mapping := h.PlistGet(plist, h.tagbodyMapping)

	for {
		current := h.PlistGet(plist, h.tagbodyNext)
		if current == h.tagbodyEnd {
			h.tagbodyPop(env, plist)
			return
		}

		// Align the sequence pointer with the current tag; a jump
		// may have moved it anywhere, including backwards.
		seq := sequence
		for seq != h.NIL && !Eq(h.Car(seq), current) {
			seq = h.Cdr(seq)
		}
		if seq == h.NIL {
			h.tagbodyPop(env, plist)
			return
		}

		forms := h.PlistGet(mapping, current)
		if h.tagbodyRunForms(env, plist, forms) {
			// A GO into this tagbody already updated the next
			// slot.
			continue
		}

		next := h.Car(h.Cdr(seq))
		h.PlistSet(plist, h.tagbodyNext, next)
	}
}

// tagbodyRunForms evaluates one segment's statements. It reports
// whether a GO landed in this tagbody; a GO whose tag belongs to an
// enclosing tagbody pops this one and keeps unwinding.
func (h *Heap) tagbodyRunForms(env, plist, forms Value) (jumped bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		sig, ok := r.(goSignal)
		if !ok {
			panic(r)
		}
		mapping := h.PlistGet(plist, h.tagbodyMapping)
		if found, _ := h.PlistFindEntry(mapping, sig.tag); found {
			h.PlistSet(plist, h.tagbodyNext, sig.tag)
			h.SetSymbolValue(env, h.tagbodyCurrent, h.APVAL, plist, true)
			jumped = true
			return
		}
		h.tagbodyPop(env, plist)
		panic(r)
	}()

	for cur := forms; cur != h.NIL; cur = h.Cdr(cur) {
		h.Eval(env, h.Car(cur))
	}
	return false
}

package golisp

// An environment is a plist keyed by atoms, where each value is itself
// a plist of the symbol's attributes: PNAME, APVAL, EXPR, SUBR. Every
// non-root frame carries a reserved parent-environment entry whose
// APVAL is the parent frame; the root's parent APVAL is NIL.

// parentKeyName names the reserved parent-environment key.
const parentKeyName = "%SI:PARENT-ENVIRONMENT"

// NewEnvironment creates a frame descending from parent. The frame
// carries nothing but the parent pointer:
//
//	((%SI:PARENT-ENVIRONMENT . ((APVAL . parent))))
//
// The parent key needs no PNAME here; it is already in the root.
func (h *Heap) NewEnvironment(parent Value) Value {
	parentPlist := h.NewPlist(h.Cons(h.APVAL, parent))
	return h.NewPlist(h.Cons(h.parentKey, parentPlist))
}

// EnvironmentParent returns the parent frame, or NIL for a root. It
// reads the frame plist directly since it is itself part of symbol
// lookup.
func (h *Heap) EnvironmentParent(env Value) Value {
	parentPlist := h.PlistGet(env, h.parentKey)
	if parentPlist == h.NIL {
		return h.NIL
	}
	return h.PlistGet(parentPlist, h.APVAL)
}

// FindSymbol returns the (atom . plist) entry for the symbol in env,
// ascending the parent chain when recursive, or NIL. Not-found and
// found-but-unbound both come back as NIL.
func (h *Heap) FindSymbol(env, symbol Value, recursive bool) Value {
	found, entry := h.PlistFindEntry(env, symbol)
	if found {
		return entry
	}
	if !recursive {
		return h.NIL
	}
	parent := h.EnvironmentParent(env)
	if parent == h.NIL {
		return h.NIL
	}
	return h.FindSymbol(parent, symbol, recursive)
}

// GetSymbolValue looks up one attribute of a symbol, or NIL.
func (h *Heap) GetSymbolValue(env, symbol, attribute Value, recursive bool) Value {
	entry := h.FindSymbol(env, symbol, recursive)
	if entry == h.NIL {
		return h.NIL
	}
	return h.PlistGet(h.Cdr(entry), attribute)
}

// SetSymbolValue sets one attribute of a symbol and returns the value.
// When recursive, the defining frame is located first and the set
// happens there; otherwise the set happens in env, creating the
// symbol's attribute plist when the symbol is new to the frame.
func (h *Heap) SetSymbolValue(env, symbol, attribute, value Value, recursive bool) Value {
	entry := h.FindSymbol(env, symbol, recursive)
	plist := h.Cdr(entry)
	if plist == h.NIL {
		attrPlist := h.NewPlist(h.Cons(attribute, value))
		h.PlistSet(env, symbol, attrPlist)
	} else {
		h.PlistSet(plist, attribute, value)
	}
	return value
}

// InternSymbol ensures the atom has a binding in the frame, with an
// APVAL of NIL since being interned does not mean being bound, and
// returns the atom.
func (h *Heap) InternSymbol(env, atom Value) Value {
	h.SetSymbolValue(env, atom, h.APVAL, h.NIL, false)
	return atom
}

// NewRootEnvironment builds the minimum self-consistent environment,
// registers the special forms and built-in subrs in it, then returns a
// fresh child so the root itself stays immutable to callers. The
// bootstrap is manual because the keyword atoms serve as keys in the
// very plists that describe them:
//
//	((T . ((PNAME . "T") (APVAL . T)))
//	 (NIL . ((PNAME . "NIL") (APVAL . NIL)))
//	 ...
//	 (%SI:PARENT-ENVIRONMENT . ((PNAME . "...") (APVAL . NIL))))
func (h *Heap) NewRootEnvironment() Value {
	selfBound := func(atom Value, name string) Value {
		plist := h.NewPlist(
			h.Cons(h.PNAME, h.NewStringFromGo(name)),
			h.Cons(h.APVAL, atom),
		)
		return h.Cons(atom, plist)
	}

	parentPlist := h.NewPlist(
		h.Cons(h.PNAME, h.NewStringFromGo(parentKeyName)),
		h.Cons(h.APVAL, h.NIL),
	)

	root := h.List(
		selfBound(h.T, "T"),
		selfBound(h.NIL, "NIL"),
		selfBound(h.PNAME, "PNAME"),
		selfBound(h.APVAL, "APVAL"),
		selfBound(h.EXPR, "EXPR"),
		selfBound(h.SUBR, "SUBR"),
		h.Cons(h.parentKey, parentPlist),
	)

	h.addBuiltinSpecialForms(root)
	h.addBuiltinSubrs(root)

	env := h.NewEnvironment(root)
	h.attachOSStreams(env)
	return env
}

package golisp

// An atom is an opaque named token. The record stores the upper-cased
// name as a length word followed by one codepoint per word. Atoms are
// not uniqued on creation: two with the same name are equal by content
// but need not be identical. Identity for symbols is established by
// the reader's find-or-intern step against the environment.

// NewAtom creates an atom, folding the name to upper case.
func (h *Heap) NewAtom(name string) Value {
	return h.newAtomRecord(h.upper.String(name))
}

// NewAtomFromString creates an atom named by a Lisp string.
func (h *Heap) NewAtomFromString(name Value) Value {
	return h.NewAtom(h.GoString(name))
}

// newAtomRecord allocates the record without case folding; the
// bootstrap atoms are spelled upper-case already.
func (h *Heap) newAtomRecord(name string) Value {
	runes := []rune(name)
	v, rec := h.allocate(TagAtom, 1+len(runes))
	rec[0] = Value(len(runes))
	for i, r := range runes {
		rec[i+1] = Value(r)
	}
	return v
}

// AtomName returns the atom's name.
func (h *Heap) AtomName(v Value) string {
	n := int(h.record(v, 1)[0])
	rec := h.record(v, 1+n)
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		runes[i] = rune(rec[i+1])
	}
	return string(runes)
}

func (h *Heap) atomEqual(a, b Value) bool {
	an := int(h.record(a, 1)[0])
	bn := int(h.record(b, 1)[0])
	if an != bn {
		return false
	}
	ar := h.record(a, 1+an)
	br := h.record(b, 1+bn)
	for i := 1; i <= an; i++ {
		if ar[i] != br[i] {
			return false
		}
	}
	return true
}

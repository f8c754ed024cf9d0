package golisp

// A property list is an ordered list of (key . value) cells. Lookup is
// linear; set replaces an existing entry or appends a fresh one at the
// tail. Environments and symbol-attribute tables are both plists.

// NewPlist builds a plist from entry cells. At least one entry is
// required so the plist has a head to append after.
func (h *Heap) NewPlist(entries ...Value) Value {
	return h.List(entries...)
}

// PlistFindEntry walks the plist for an entry whose key is equal to
// key. It reports whether one was found; on success the returned cell
// is the (key . value) pair, otherwise it is the tail cell of the
// plist, the one a new entry should be appended after.
func (h *Heap) PlistFindEntry(plist, key Value) (bool, Value) {
	cur := plist
	for {
		entry := h.Car(cur)
		if h.Equal(key, h.Car(entry)) {
			return true, entry
		}
		next := h.Cdr(cur)
		if next == h.NIL {
			return false, cur
		}
		cur = next
	}
}

// PlistGet returns the value stored under key, or NIL. A missing entry
// is indistinguishable from one set to NIL.
func (h *Heap) PlistGet(plist, key Value) Value {
	found, entry := h.PlistFindEntry(plist, key)
	if !found {
		return h.NIL
	}
	return h.Cdr(entry)
}

// PlistSet stores value under key, replacing an existing entry or
// appending a new pair, and returns the value.
func (h *Heap) PlistSet(plist, key, value Value) Value {
	found, entry := h.PlistFindEntry(plist, key)
	if found {
		h.Rplacd(entry, value)
	} else {
		pair := h.Cons(key, value)
		h.Rplacd(entry, h.Cons(pair, h.NIL))
	}
	return value
}

// PlistRemove clears the entry under key. The pair is not unlinked;
// its value is set to NIL, which observably behaves the same for
// lookups at the cost of a dead entry.
func (h *Heap) PlistRemove(plist, key Value) Value {
	h.PlistSet(plist, key, h.NIL)
	return h.NIL
}

package golisp

// An interior is an opaque buffer owned by some other object. The heap
// never interprets its contents: strings keep their character buffers
// in one, and streams keep the index of their native Go backend in
// one. The record is a size word followed by the payload.

// NewInterior allocates an interior of n payload words and returns the
// tagged value together with a write-through view of the payload. The
// view is invalidated by the next allocation; use interiorData to
// obtain a fresh one.
func (h *Heap) NewInterior(n int) (Value, []Value) {
	v, rec := h.allocate(TagInterior, 1+n)
	rec[0] = Value(n)
	return v, rec[1 : 1+n]
}

// interiorData returns the payload view of an interior.
func (h *Heap) interiorData(v Value) []Value {
	n := int(h.record(v, 1)[0])
	return h.record(v, 1+n)[1 : 1+n]
}

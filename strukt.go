package golisp

// A struct wraps embedded host data: a pointer word, a size, and a
// type value. The kind is defined for completeness; nothing in the
// core requires it, and a struct compares equal only to itself.

const structWords = 3

// NewStruct creates a struct record.
func (h *Heap) NewStruct(pointer uintptr, size int, typ Value) Value {
	v, rec := h.allocate(TagStruct, structWords)
	rec[0] = Value(pointer)
	rec[1] = Value(size)
	rec[2] = typ
	return v
}

// StructType returns the struct's type value.
func (h *Heap) StructType(v Value) Value {
	return h.record(v, structWords)[2]
}

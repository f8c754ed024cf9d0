package golisp

// A vector is a heterogeneous sequence of values in contiguous
// storage. Unlike a string's character buffer, the contents are live
// references.

const vectorWords = 3

// NewVector creates a vector holding the given items.
func (h *Heap) NewVector(items []Value) Value {
	capacity := len(items)
	if capacity == 0 {
		capacity = 1
	}
	values, buf := h.NewInterior(capacity)
	copy(buf, items)
	v, rec := h.allocate(TagVector, vectorWords)
	rec[0] = values
	rec[1] = Value(capacity)
	rec[2] = Value(len(items))
	return v
}

// VectorCount returns the number of elements in the vector.
func (h *Heap) VectorCount(v Value) int {
	return int(h.record(v, vectorWords)[2])
}

// VectorRef returns the i'th element.
func (h *Heap) VectorRef(v Value, i int) Value {
	values := h.record(v, vectorWords)[0]
	return h.interiorData(values)[i]
}

// vectorEqual compares count then elements pairwise.
func (h *Heap) vectorEqual(a, b Value) bool {
	ar := h.record(a, vectorWords)
	br := h.record(b, vectorWords)
	if ar[2] != br[2] {
		return false
	}
	count := int(ar[2])
	abuf := h.interiorData(ar[0])
	bbuf := h.interiorData(br[0])
	for i := 0; i < count; i++ {
		if !h.Equal(abuf[i], bbuf[i]) {
			return false
		}
	}
	return true
}

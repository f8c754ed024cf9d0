package golisp

// A string is a homogeneous sequence of char values kept in an
// interior buffer, with a capacity and a length. The buffer grows in
// multiples of sixteen by reallocating the interior; the string record
// itself keeps its identity across growth.

const stringWords = 3

const stringGrain = 16

// NewString creates a string over an existing character interior.
func (h *Heap) NewString(chars Value, capacity, length int) Value {
	v, rec := h.allocate(TagString, stringWords)
	if capacity <= 0 {
		capacity = length
	}
	rec[0] = chars
	rec[1] = Value(capacity)
	rec[2] = Value(length)
	return v
}

// NewStringFromGo creates a string holding the runes of s.
func (h *Heap) NewStringFromGo(s string) Value {
	runes := []rune(s)
	capacity := (len(runes) + stringGrain - 1) / stringGrain * stringGrain
	if capacity == 0 {
		capacity = stringGrain
	}
	chars, buf := h.NewInterior(capacity)
	for i, r := range runes {
		buf[i] = NewChar(r)
	}
	return h.NewString(chars, capacity, len(runes))
}

// NewEmptyString creates a string with no characters and room for a
// handful before the first reallocation.
func (h *Heap) NewEmptyString() Value {
	chars, _ := h.NewInterior(stringGrain)
	return h.NewString(chars, stringGrain, 0)
}

// StringLength returns the number of characters in the string.
func (h *Heap) StringLength(v Value) int {
	return int(h.record(v, stringWords)[2])
}

// StringChar returns the i'th char value of the string.
func (h *Heap) StringChar(v Value, i int) Value {
	chars := h.record(v, stringWords)[0]
	return h.interiorData(chars)[i]
}

// GoString renders the string's characters as a Go string.
func (h *Heap) GoString(v Value) string {
	rec := h.record(v, stringWords)
	buf := h.interiorData(rec[0])
	length := int(rec[2])
	runes := make([]rune, length)
	for i := 0; i < length; i++ {
		runes[i] = CharValue(buf[i])
	}
	return string(runes)
}

// StringAppendChar appends one character, reallocating the interior
// when length has reached capacity. The string is modified in place
// and returned.
func (h *Heap) StringAppendChar(str, ch Value) Value {
	rec := h.record(str, stringWords)
	capacity, length := int(rec[1]), int(rec[2])

	if length == capacity {
		newCapacity := capacity + stringGrain
		newChars, newBuf := h.NewInterior(newCapacity)
		// The record view must be refetched: the allocation may
		// have moved the arena.
		rec = h.record(str, stringWords)
		copy(newBuf, h.interiorData(rec[0]))
		rec[0] = newChars
		rec[1] = Value(newCapacity)
		capacity = newCapacity
	}

	buf := h.interiorData(rec[0])
	buf[length] = ch
	rec[2] = Value(length + 1)
	return str
}

// stringEqual compares length then codepoints; capacity is not part of
// a string's identity.
func (h *Heap) stringEqual(a, b Value) bool {
	ar := h.record(a, stringWords)
	br := h.record(b, stringWords)
	if ar[2] != br[2] {
		return false
	}
	length := int(ar[2])
	abuf := h.interiorData(ar[0])
	bbuf := h.interiorData(br[0])
	for i := 0; i < length; i++ {
		if abuf[i] != bbuf[i] {
			return false
		}
	}
	return true
}

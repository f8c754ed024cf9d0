package golisp

// Cells are the sole structural building block: an ordered pair whose
// first half is the car and second half the cdr. Lists are chains of
// cells terminated by NIL.

const cellWords = 2

// Cons allocates a fresh cell.
func (h *Heap) Cons(car, cdr Value) Value {
	v, rec := h.allocate(TagCell, cellWords)
	rec[0] = car
	rec[1] = cdr
	return v
}

// Car returns the car of a cell. The car of NIL is NIL, as is the car
// of any non-cell.
func (h *Heap) Car(v Value) Value {
	if v == h.NIL || !v.IsCell() {
		return h.NIL
	}
	return h.record(v, cellWords)[0]
}

// Cdr returns the cdr of a cell, NIL for NIL and non-cells.
func (h *Heap) Cdr(v Value) Value {
	if v == h.NIL || !v.IsCell() {
		return h.NIL
	}
	return h.record(v, cellWords)[1]
}

// Rplaca replaces the car of the cell in place and returns the cell.
func (h *Heap) Rplaca(cell, car Value) Value {
	h.record(cell, cellWords)[0] = car
	return cell
}

// Rplacd replaces the cdr of the cell in place and returns the cell.
func (h *Heap) Rplacd(cell, cdr Value) Value {
	h.record(cell, cellWords)[1] = cdr
	return cell
}

// List builds a NIL-terminated list of the given values. With no
// arguments it returns NIL.
func (h *Heap) List(items ...Value) Value {
	head, tail := h.NIL, h.NIL
	for _, item := range items {
		cell := h.Cons(item, h.NIL)
		if head == h.NIL {
			head = cell
		} else {
			h.Rplacd(tail, cell)
		}
		tail = cell
	}
	return head
}

// ListLength counts the cells in a list.
func (h *Heap) ListLength(list Value) int {
	n := 0
	for cur := list; cur != h.NIL; cur = h.Cdr(cur) {
		n++
	}
	return n
}

// cellEqual recurs on car and cdr.
func (h *Heap) cellEqual(a, b Value) bool {
	return h.Equal(h.Car(a), h.Car(b)) && h.Equal(h.Cdr(a), h.Cdr(b))
}

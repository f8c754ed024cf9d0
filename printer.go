package golisp

import (
	"fmt"
	"strconv"
)

// The printer renders values back into the textual syntax. Atoms,
// fixnums, chars, strings, cells, and vectors print readably; streams,
// interiors, and structs print as #<KIND 0xHEX> sentinels and subrs as
// #'NAME, none of which the reader will accept back.
//
// Printing does not detect cycles; a list made circular with RPLACA or
// RPLACD will not terminate.

// Print resolves the output designator and prints the value without
// readable quoting of standalone chars and strings.
func (h *Heap) Print(env, designator, obj Value) Value {
	stream := h.BestOutputStream(env, designator)
	return h.printValue(env, stream, obj, false)
}

// PrintQuoted is Print with control over readable quoting: when quote
// is set, a standalone char prints as #\c and a string in its double
// quotes, so the output reads back.
func (h *Heap) PrintQuoted(env, designator, obj Value, quote bool) Value {
	stream := h.BestOutputStream(env, designator)
	return h.printValue(env, stream, obj, quote)
}

// PrintStructural prints cells as explicit dotted pairs all the way
// down, never compressing lists. The output is not readable; the dot
// is syntax the reader does not take.
func (h *Heap) PrintStructural(env, designator, obj Value) Value {
	stream := h.BestOutputStream(env, designator)
	if obj.IsCell() {
		return h.printCell(env, stream, obj, false)
	}
	return h.printValue(env, stream, obj, false)
}

func (h *Heap) printValue(env, stream, obj Value, quote bool) Value {
	switch obj.Tag() {
	case TagFixnum:
		h.writeText(stream, strconv.Itoa(FixnumValue(obj)))
		return h.T

	case TagAtom:
		h.writeText(stream, h.AtomName(obj))
		return h.T

	case TagCell:
		return h.printCell(env, stream, obj, true)

	case TagChar:
		return h.printChar(stream, CharValue(obj), quote)

	case TagString:
		return h.printString(stream, obj, quote)

	case TagVector:
		return h.printVector(env, stream, obj)

	case TagStream:
		h.writeText(stream, fmt.Sprintf("#<STREAM 0x%X>", obj.raw()))
		return h.T

	case TagSubr:
		h.writeText(stream, "#'")
		h.writeText(stream, h.GoString(h.SubrName(obj)))
		return h.T

	case TagInterior:
		h.writeText(stream, fmt.Sprintf("#<INTERIOR 0x%X>", obj.raw()))
		return h.T

	case TagStruct:
		h.writeText(stream, fmt.Sprintf("#<STRUCT 0x%X>", obj.raw()))
		return h.T
	}
	return h.NIL
}

// printInCell prints an element of a cell or vector. Chars and strings
// keep their quoting inside aggregates so the whole form reads back.
func (h *Heap) printInCell(env, stream, obj Value, compress bool) Value {
	switch obj.Tag() {
	case TagCell:
		return h.printCell(env, stream, obj, compress)
	case TagChar:
		return h.printChar(stream, CharValue(obj), true)
	case TagString:
		return h.printString(stream, obj, true)
	}
	return h.printValue(env, stream, obj, false)
}

// printCell prints a cell chain. With compress set, list cdrs print as
// space-separated elements and only a trailing non-list cdr prints
// dotted; without it, every cell prints as an explicit (car . cdr).
func (h *Heap) printCell(env, stream, cell Value, compress bool) Value {
	if !compress {
		h.writeChar(stream, '(')
		h.printInCell(env, stream, h.Car(cell), compress)
		h.writeText(stream, " . ")
		h.printInCell(env, stream, h.Cdr(cell), compress)
		h.writeChar(stream, ')')
		return h.T
	}

	h.writeChar(stream, '(')
	h.printInCell(env, stream, h.Car(cell), compress)
	for rest := h.Cdr(cell); rest != h.NIL; rest = h.Cdr(rest) {
		if rest.IsCell() {
			h.writeChar(stream, ' ')
			h.printInCell(env, stream, h.Car(rest), compress)
		} else {
			// A non-cell cdr ends the chain as a dotted pair.
			h.writeText(stream, " . ")
			h.printInCell(env, stream, rest, compress)
		}
	}
	h.writeChar(stream, ')')
	return h.T
}

func (h *Heap) printChar(stream Value, r rune, quote bool) Value {
	if quote {
		h.writeText(stream, "#\\")
	}
	h.writeChar(stream, r)
	return h.T
}

func (h *Heap) printString(stream, str Value, quote bool) Value {
	if quote {
		h.writeChar(stream, '"')
	}
	length := h.StringLength(str)
	for i := 0; i < length; i++ {
		h.StreamWriteChar(stream, h.StringChar(str, i))
	}
	if quote {
		h.writeChar(stream, '"')
	}
	return h.T
}

func (h *Heap) printVector(env, stream, vec Value) Value {
	h.writeText(stream, "#(")
	count := h.VectorCount(vec)
	for i := 0; i < count; i++ {
		if i > 0 {
			h.writeChar(stream, ' ')
		}
		h.printInCell(env, stream, h.VectorRef(vec, i), true)
	}
	h.writeChar(stream, ')')
	return h.T
}

func (h *Heap) writeChar(stream Value, r rune) {
	h.StreamWriteChar(stream, NewChar(r))
}

func (h *Heap) writeText(stream Value, s string) {
	for _, r := range s {
		h.writeChar(stream, r)
	}
}

package golisp

import (
	"strconv"

	"github.com/pkg/errors"
)

// The reader turns the textual syntax into values, one object per
// call:
//
//	object  := atom | fixnum | quote | list | string | vector | character
//	fixnum  := ('+'|'-')? digit+
//	quote   := '\'' object
//	list    := '(' object* ')'
//	string  := '"' (non-quote | '\' any)* '"'
//	vector  := '#' '(' object* ')'
//	character := '#' '\' any
//	atom    := atom-start atom-cont*
//
// Whitespace and ;-to-end-of-line comments may appear between tokens,
// never inside one. Atom names fold to upper case, and reading an atom
// whose name is already bound in the environment returns the bound
// atom, which is what promotes name equality to identity for symbols.

// Read resolves the stream designator and reads one object. The
// recursive argument is NIL for callers; list reading threads a
// sentinel through it so a close parenthesis can be told apart from
// any real object.
func (h *Heap) Read(env, designator, recursive Value) Value {
	stream := h.BestInputStream(env, designator)
	if !stream.IsStream() {
		return h.NIL
	}
	return h.readObject(env, stream, recursive)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (h *Heap) readObject(env, stream, recursive Value) Value {
	h.skipWhitespaceAndComments(stream)

	ch := h.StreamReadChar(stream)
	if ch == h.NIL {
		return h.NIL
	}
	r := CharValue(ch)

	switch {
	case isDigit(r):
		return h.readFixnum(stream, r)

	case r == '+' || r == '-':
		// A sign introduces a fixnum only when a digit follows;
		// otherwise it starts an atom.
		next := h.StreamReadChar(stream)
		if next.IsChar() {
			h.StreamUnreadChar(stream, next)
			if isDigit(CharValue(next)) {
				return h.readFixnum(stream, r)
			}
		}
		return h.readAtom(env, stream, r)

	case r == '\'':
		return h.readQuote(env, stream, recursive)

	case r == '(':
		return h.readList(env, stream)

	case r == ')':
		// End-of-list marker: return the sentinel when one was
		// threaded through, NIL to signal an error otherwise.
		return recursive

	case r == '"':
		return h.readString(stream)

	case r == '#':
		next := h.StreamReadChar(stream)
		if next == h.NIL {
			return h.NIL
		}
		switch CharValue(next) {
		case '(':
			return h.readVector(env, stream)
		case '\\':
			return h.StreamReadChar(stream)
		default:
			panic(errors.Errorf("reader: unexpected character %q after #", CharValue(next)))
		}
	}

	return h.readAtom(env, stream, r)
}

// isAtomTerminator reports whether r ends an atom token. The
// terminator is left unread for the next call.
func isAtomTerminator(r rune) bool {
	switch r {
	case ' ', '\n', '\t', ';', '(', ')', '#':
		return true
	}
	return false
}

func (h *Heap) readAtom(env, stream Value, first rune) Value {
	runes := []rune{first}
	for {
		ch := h.StreamReadChar(stream)
		if ch == h.NIL {
			break
		}
		r := CharValue(ch)
		if isAtomTerminator(r) {
			h.StreamUnreadChar(stream, ch)
			break
		}
		runes = append(runes, r)
	}

	// If the assembled name is already bound, hand back the bound
	// atom so that (A A) reads with identical cars; intern it
	// otherwise.
	atom := h.NewAtom(string(runes))
	entry := h.FindSymbol(env, atom, true)
	if entry != h.NIL {
		return h.Car(entry)
	}
	return h.InternSymbol(env, atom)
}

// fixnumBufferMax bounds the token length at the host's representable
// decimal range, sign included.
const fixnumBufferMax = 1 + (wordBits-32)/32*9 + 9 // 10 on 32-bit, 19 on 64-bit

func (h *Heap) readFixnum(stream Value, first rune) Value {
	buf := []byte{byte(first)}
	for {
		ch := h.StreamReadChar(stream)
		if ch == h.NIL {
			break
		}
		r := CharValue(ch)
		switch {
		case r == '+' || r == '-':
			// A sign is valid only as the first character.
			return h.NIL
		case isDigit(r):
			if len(buf) == fixnumBufferMax {
				return h.NIL
			}
			buf = append(buf, byte(r))
		default:
			h.StreamUnreadChar(stream, ch)
			goto done
		}
	}
done:
	n, _ := strconv.Atoi(string(buf))
	return NewFixnum(n)
}

func (h *Heap) readList(env, stream Value) Value {
	// A fresh, uninterned atom marks the end of this list; the
	// recursive reader returns it when it consumes the close paren,
	// which no real object can be mistaken for.
	sentinel := h.newAtomRecord("%SI:END-OF-LIST")

	head, tail := h.NIL, h.NIL
	for {
		obj := h.readObject(env, stream, sentinel)
		if obj == sentinel {
			return head
		}
		if obj == h.NIL && h.Truthy(h.StreamEOF(stream)) {
			// Truncated list: the partial result is discarded.
			return h.NIL
		}
		cell := h.Cons(obj, h.NIL)
		if head == h.NIL {
			head = cell
		} else {
			h.Rplacd(tail, cell)
		}
		tail = cell
	}
}

func (h *Heap) readString(stream Value) Value {
	str := h.NewEmptyString()
	for {
		ch := h.StreamReadChar(stream)
		if ch == h.NIL {
			// Truncated string.
			return h.NIL
		}
		switch CharValue(ch) {
		case '"':
			return str
		case '\\':
			// Escape passes the next character through verbatim.
			next := h.StreamReadChar(stream)
			if next == h.NIL {
				return h.NIL
			}
			h.StringAppendChar(str, next)
		default:
			h.StringAppendChar(str, ch)
		}
	}
}

func (h *Heap) readVector(env, stream Value) Value {
	sentinel := h.newAtomRecord("%SI:END-OF-LIST")

	var items []Value
	for {
		obj := h.readObject(env, stream, sentinel)
		if obj == sentinel {
			return h.NewVector(items)
		}
		if obj == h.NIL && h.Truthy(h.StreamEOF(stream)) {
			return h.NIL
		}
		items = append(items, obj)
	}
}

// readQuote wraps the next object in a QUOTE form. This happens at the
// reading level so 'x is exactly (QUOTE x).
func (h *Heap) readQuote(env, stream, recursive Value) Value {
	h.skipWhitespaceAndComments(stream)
	ch := h.StreamReadChar(stream)
	if ch == h.NIL {
		// Nothing after the apostrophe.
		return h.NIL
	}
	h.StreamUnreadChar(stream, ch)

	obj := h.readObject(env, stream, recursive)
	return h.List(h.symQuote, obj)
}

func (h *Heap) skipWhitespaceAndComments(stream Value) {
	for {
		ch := h.StreamReadChar(stream)
		if ch == h.NIL {
			return
		}
		switch CharValue(ch) {
		case ' ', '\n', '\t':
			// Keep skipping.
		case ';':
			h.skipComment(stream)
		default:
			h.StreamUnreadChar(stream, ch)
			return
		}
	}
}

// skipComment consumes through the next newline.
func (h *Heap) skipComment(stream Value) {
	for {
		ch := h.StreamReadChar(stream)
		if ch == h.NIL {
			return
		}
		if CharValue(ch) == '\n' {
			return
		}
	}
}

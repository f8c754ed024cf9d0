package golisp

import (
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultHeapSize is the default capacity of a heap, in bytes.
const DefaultHeapSize = 1 << 20

// Records are aligned to sixteen bytes so the low four bits of every
// byte offset are free for tagging.
const alignWords = 16 / wordSize

// ErrHeapExhausted is the fatal error raised (via panic) when an
// allocation would push the heap past its configured limit.
var ErrHeapExhausted = errors.New("heap exhausted")

// A Heap owns every value in an interpreter instance: the word arena
// records are allocated from, the registry of native Go objects that
// subrs and stream backends live in, and the well-known atoms and
// special-form table that would otherwise be process globals.
//
// Payloads of heap-allocated kinds are byte offsets into the arena, so
// object identity survives growth of the backing slice. A heap is not
// safe for concurrent use; one logical control flow owns it.
type Heap struct {
	words []Value
	limit int // in words

	natives []interface{}

	// The distinguished truth pair. They exist for the lifetime of
	// the heap and are created before anything else.
	T   Value
	NIL Value

	// Well-known keyword atoms used as symbol-attribute keys.
	PNAME Value
	APVAL Value
	EXPR  Value
	SUBR  Value

	// The reserved parent-environment key present on every frame.
	parentKey Value

	// Stream designator atoms, bound once the standard streams are
	// registered in an environment.
	TerminalIO     Value
	StandardInput  Value
	StandardOutput Value

	// Special form dispatch table and the form symbols the
	// evaluator and reader need by identity.
	sforms    []sform
	symQuote  Value
	symLambda Value
	symBlock  Value
	symDefine Value

	// Reserved atoms backing the TAGBODY state machine.
	tagbodyStack    Value
	tagbodyCurrent  Value
	tagbodySequence Value
	tagbodyMapping  Value
	tagbodyNext     Value
	tagbodyStart    Value
	tagbodyEnd      Value

	upper cases.Caser
}

// Option configures a Heap.
type Option func(*Heap) error

// WithSize sets the heap capacity in bytes. Exceeding it is fatal.
func WithSize(size int) Option {
	return func(h *Heap) error {
		if size < 16*alignWords*wordSize {
			return errors.Errorf("heap size %d too small", size)
		}
		h.limit = size / wordSize
		return nil
	}
}

// NewHeap creates a heap and the distinguished values that must exist
// before any environment does.
func NewHeap(opts ...Option) (*Heap, error) {
	h := &Heap{
		limit: DefaultHeapSize / wordSize,
		upper: cases.Upper(language.Und),
	}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	// Reserve the first sixteen bytes so no valid record sits at
	// offset zero.
	h.words = make([]Value, alignWords)

	// The truth pair and the keyword atoms are the bootstrap root
	// set; everything else refers to them.
	h.T = h.newAtomRecord("T")
	h.NIL = h.newAtomRecord("NIL")
	h.PNAME = h.newAtomRecord("PNAME")
	h.APVAL = h.newAtomRecord("APVAL")
	h.EXPR = h.newAtomRecord("EXPR")
	h.SUBR = h.newAtomRecord("SUBR")
	h.parentKey = h.newAtomRecord(parentKeyName)

	return h, nil
}

// allocate carves a record of n words out of the arena and returns the
// tagged value along with a write-through view of the record's slots.
// The view is only valid until the next allocation.
func (h *Heap) allocate(tag Tag, n int) (Value, []Value) {
	// Round the allocation up so the next record stays aligned.
	padded := (n + alignWords - 1) &^ (alignWords - 1)

	off := len(h.words)
	if off+padded > h.limit {
		panic(errors.Wrapf(ErrHeapExhausted, "allocating %d words at %d of %d", padded, off, h.limit))
	}
	h.words = append(h.words, make([]Value, padded)...)

	v := Value(uintptr(off*wordSize)) | Value(tag)
	return v, h.words[off : off+n]
}

// record returns the n slots of the record v points at.
func (h *Heap) record(v Value, n int) []Value {
	idx := int(v.raw()) / wordSize
	return h.words[idx : idx+n]
}

// addNative registers a Go-side object (a subr callable, a stream
// backend) and returns its index. The index is stored in interior
// records, whose bytes are opaque to the heap.
func (h *Heap) addNative(x interface{}) int {
	h.natives = append(h.natives, x)
	return len(h.natives) - 1
}

func (h *Heap) native(i int) interface{} {
	return h.natives[i]
}

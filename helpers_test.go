package golisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestEnv builds a heap and a fresh environment for a test.
func newTestEnv(t *testing.T) (*Heap, Value) {
	t.Helper()
	h, err := NewHeap()
	require.NoError(t, err)
	return h, h.NewRootEnvironment()
}

// readOne reads a single form from source text.
func readOne(h *Heap, env Value, src string) Value {
	stream := NewStringStream(h, src)
	return h.Read(env, stream, h.NIL)
}

// evalString reads and evaluates every form in src, returning the last
// result.
func evalString(h *Heap, env Value, src string) Value {
	stream := NewStringStream(h, src)
	result := h.NIL
	for {
		form := h.Read(env, stream, h.NIL)
		if form == h.NIL && h.Truthy(h.StreamEOF(stream)) {
			return result
		}
		result = h.Eval(env, form)
	}
}

// printString renders a value with readable quoting.
func printString(h *Heap, env, obj Value) string {
	stream, backend := NewBufferStream(h)
	h.PrintQuoted(env, stream, obj, true)
	return backend.String()
}

// printPlain renders a value without readable quoting.
func printPlain(h *Heap, env, obj Value) string {
	stream, backend := NewBufferStream(h)
	h.PrintQuoted(env, stream, obj, false)
	return backend.String()
}

// printStructuralString renders a value in explicit dotted-pair form.
func printStructuralString(h *Heap, env, obj Value) string {
	stream, backend := NewBufferStream(h)
	h.PrintStructural(env, stream, obj)
	return backend.String()
}

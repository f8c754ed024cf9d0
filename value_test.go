package golisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueTags(t *testing.T) {
	h, env := newTestEnv(t)

	stream, _ := NewBufferStream(h)

	tests := []struct {
		name     string
		value    Value
		expected Tag
	}{
		{"cell", h.Cons(h.T, h.NIL), TagCell},
		{"atom", h.NewAtom("FOO"), TagAtom},
		{"fixnum", NewFixnum(42), TagFixnum},
		{"negative fixnum", NewFixnum(-42), TagFixnum},
		{"char", NewChar('x'), TagChar},
		{"string", h.NewStringFromGo("hello"), TagString},
		{"vector", h.NewVector([]Value{h.T}), TagVector},
		{"stream", stream, TagStream},
		{"subr", h.GetSymbolValue(env, h.NewAtom("CAR"), h.SUBR, true), TagSubr},
		{"struct", h.NewStruct(0, 0, h.NIL), TagStruct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Tag())
		})
	}
}

func TestEqIsReflexive(t *testing.T) {
	h, _ := newTestEnv(t)

	values := []Value{
		h.T, h.NIL, NewFixnum(7), NewChar('a'),
		h.NewAtom("X"), h.Cons(h.T, h.NIL), h.NewStringFromGo("s"),
	}
	for _, v := range values {
		assert.True(t, Eq(v, v))
		assert.True(t, h.Equal(v, v), "eq implies equal")
	}
}

func TestEqualIsSymmetric(t *testing.T) {
	h, _ := newTestEnv(t)

	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"same fixnum", NewFixnum(3), NewFixnum(3), true},
		{"different fixnums", NewFixnum(3), NewFixnum(4), false},
		{"same char", NewChar('a'), NewChar('a'), true},
		{"atoms with same name", h.NewAtom("FOO"), h.NewAtom("FOO"), true},
		{"atoms with different names", h.NewAtom("FOO"), h.NewAtom("BAR"), false},
		{"equal strings", h.NewStringFromGo("abc"), h.NewStringFromGo("abc"), true},
		{"unequal strings", h.NewStringFromGo("abc"), h.NewStringFromGo("abd"), false},
		{"fixnum vs char", NewFixnum(97), NewChar('a'), false},
		{"equal lists", h.List(NewFixnum(1), NewFixnum(2)), h.List(NewFixnum(1), NewFixnum(2)), true},
		{"unequal lists", h.List(NewFixnum(1)), h.List(NewFixnum(2)), false},
		{
			"equal vectors",
			h.NewVector([]Value{NewFixnum(1), NewFixnum(2)}),
			h.NewVector([]Value{NewFixnum(1), NewFixnum(2)}),
			true,
		},
		{
			"vectors of different counts",
			h.NewVector([]Value{NewFixnum(1)}),
			h.NewVector([]Value{NewFixnum(1), NewFixnum(2)}),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, h.Equal(tt.a, tt.b))
			assert.Equal(t, tt.expected, h.Equal(tt.b, tt.a), "equal must be symmetric")
		})
	}
}

func TestStructEqualOnlyToItself(t *testing.T) {
	h, _ := newTestEnv(t)

	a := h.NewStruct(0, 8, h.NIL)
	b := h.NewStruct(0, 8, h.NIL)

	assert.True(t, h.Equal(a, a))
	assert.False(t, h.Equal(a, b))
}

func TestFixnumRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"one", 1},
		{"minus one", -1},
		{"small positive", 12345},
		{"small negative", -12345},
		{"maximum", FixnumMax},
		{"minimum", FixnumMin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFixnum(tt.n)
			require.Equal(t, TagFixnum, v.Tag())
			assert.Equal(t, tt.n, FixnumValue(v))
		})
	}
}

func TestCharRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		r    rune
	}{
		{"nul", 0},
		{"ascii", 'a'},
		{"space", ' '},
		{"newline", '\n'},
		{"non-ascii", 'é'},
		{"high codepoint", 0x10FFFF},
		{"top of range", 1<<28 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewChar(tt.r)
			require.Equal(t, TagChar, v.Tag())
			assert.Equal(t, tt.r, CharValue(v))
		})
	}
}

func TestTruthy(t *testing.T) {
	h, _ := newTestEnv(t)

	assert.False(t, h.Truthy(h.NIL))
	assert.True(t, h.Truthy(h.T))
	assert.True(t, h.Truthy(NewFixnum(0)), "zero is not NIL")
	assert.True(t, h.Truthy(h.Cons(h.NIL, h.NIL)))
}

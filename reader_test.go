package golisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFixnums(t *testing.T) {
	h, env := newTestEnv(t)

	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"zero", "0", 0},
		{"plain", "42", 42},
		{"explicit plus", "+42", 42},
		{"negative", "-17", -17},
		{"multi digit", "123456789", 123456789},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := readOne(h, env, tt.input)
			require.Equal(t, TagFixnum, v.Tag())
			assert.Equal(t, tt.expected, FixnumValue(v))
		})
	}
}

func TestReadAtoms(t *testing.T) {
	h, env := newTestEnv(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"upper", "FOO", "FOO"},
		{"lower folds to upper", "foo", "FOO"},
		{"mixed", "FooBar", "FOOBAR"},
		{"leading plus", "+X", "+X"},
		{"leading minus", "-", "-"},
		{"punctuation", "HELLO-WORLD", "HELLO-WORLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := readOne(h, env, tt.input)
			require.Equal(t, TagAtom, v.Tag())
			assert.Equal(t, tt.expected, h.AtomName(v))
		})
	}
}

func TestReadAtomIdentity(t *testing.T) {
	h, env := newTestEnv(t)

	// Reading (A A) must yield the same atom in both positions, not
	// merely atoms with equal names.
	list := readOne(h, env, "(A A)")
	first := h.Car(list)
	second := h.Car(h.Cdr(list))

	require.Equal(t, TagAtom, first.Tag())
	assert.True(t, Eq(first, second))
}

func TestReadAtomCaseFoldsToSameSymbol(t *testing.T) {
	h, env := newTestEnv(t)

	list := readOne(h, env, "(foo FOO Foo)")
	a := h.Car(list)
	b := h.Car(h.Cdr(list))
	c := h.Car(h.Cdr(h.Cdr(list)))

	assert.True(t, Eq(a, b))
	assert.True(t, Eq(b, c))
}

func TestReadWellKnownAtoms(t *testing.T) {
	h, env := newTestEnv(t)

	assert.True(t, Eq(h.T, readOne(h, env, "T")))
	assert.True(t, Eq(h.NIL, readOne(h, env, "nil")))
}

func TestReadQuote(t *testing.T) {
	h, env := newTestEnv(t)

	v := readOne(h, env, "'X")
	require.Equal(t, TagCell, v.Tag())

	quote := h.Car(v)
	assert.Equal(t, "QUOTE", h.AtomName(quote))

	expected := h.List(quote, h.NewAtom("X"))
	assert.True(t, h.Equal(expected, v))
}

func TestReadLists(t *testing.T) {
	h, env := newTestEnv(t)

	tests := []struct {
		name    string
		input   string
		printed string
	}{
		{"empty", "()", "NIL"},
		{"flat", "(1 2 3)", "(1 2 3)"},
		{"nested", "(A (B C) D)", "(A (B C) D)"},
		{"deeply nested", "(((1)))", "(((1)))"},
		{"quote inside", "(A 'B)", "(A (QUOTE B))"},
		{"whitespace", "( 1\n\t2 )", "(1 2)"},
		{"comment between", "(1 ; ignored\n 2)", "(1 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := readOne(h, env, tt.input)
			assert.Equal(t, tt.printed, printString(h, env, v))
		})
	}
}

func TestReadStrings(t *testing.T) {
	h, env := newTestEnv(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `"hello"`, "hello"},
		{"empty", `""`, ""},
		{"case preserved", `"Hello"`, "Hello"},
		{"escaped quote", `"a\"b"`, `a"b`},
		{"escaped backslash", `"a\\b"`, `a\b`},
		{"escape passes through", `"a\nb"`, "anb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := readOne(h, env, tt.input)
			require.Equal(t, TagString, v.Tag())
			assert.Equal(t, tt.expected, h.GoString(v))
		})
	}
}

func TestReadCharacter(t *testing.T) {
	h, env := newTestEnv(t)

	tests := []struct {
		name     string
		input    string
		expected rune
	}{
		{"letter", `#\a`, 'a'},
		{"upper case preserved", `#\A`, 'A'},
		{"open paren", `#\(`, '('},
		{"space", `#\ `, ' '},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := readOne(h, env, tt.input)
			require.Equal(t, TagChar, v.Tag())
			assert.Equal(t, tt.expected, CharValue(v))
		})
	}
}

func TestReadVector(t *testing.T) {
	h, env := newTestEnv(t)

	v := readOne(h, env, "#(1 2 3)")
	require.Equal(t, TagVector, v.Tag())
	assert.Equal(t, 3, h.VectorCount(v))
	assert.Equal(t, 2, FixnumValue(h.VectorRef(v, 1)))
}

func TestReadSkipsCommentsAndWhitespace(t *testing.T) {
	h, env := newTestEnv(t)

	v := readOne(h, env, "; leading comment\n   42")
	assert.Equal(t, 42, FixnumValue(v))
}

func TestReadTerminatorsEndAtoms(t *testing.T) {
	h, env := newTestEnv(t)

	stream := NewStringStream(h, "AB(CD")
	first := h.Read(env, stream, h.NIL)
	assert.Equal(t, "AB", h.AtomName(first))

	// The paren was left unread for the next call.
	second := h.Read(env, stream, h.NIL)
	assert.Equal(t, TagCell, second.Tag())
}

func TestReadConsecutiveForms(t *testing.T) {
	h, env := newTestEnv(t)

	stream := NewStringStream(h, "1 (2 3) FOUR")
	assert.Equal(t, 1, FixnumValue(h.Read(env, stream, h.NIL)))
	assert.Equal(t, "(2 3)", printString(h, env, h.Read(env, stream, h.NIL)))
	assert.Equal(t, "FOUR", h.AtomName(h.Read(env, stream, h.NIL)))
}

func TestReadTruncatedInput(t *testing.T) {
	h, env := newTestEnv(t)

	tests := []struct {
		name  string
		input string
	}{
		{"open list", "(1 2"},
		{"open nested list", "(1 (2"},
		{"open string", `"abc`},
		{"character cut short", `#\`},
		{"lone quote", "'"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, h.NIL, readOne(h, env, tt.input))
		})
	}
}

func TestReadCloseParenAtTopLevel(t *testing.T) {
	h, env := newTestEnv(t)

	// Without a sentinel threaded through, a bare close paren is an
	// error reported as NIL.
	assert.Equal(t, h.NIL, readOne(h, env, ")"))
}

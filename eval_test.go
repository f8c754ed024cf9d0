package golisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalSelfEvaluating(t *testing.T) {
	h, env := newTestEnv(t)

	values := []Value{
		NewFixnum(5),
		NewChar('a'),
		h.NewStringFromGo("s"),
		h.NewVector([]Value{h.T}),
	}
	for _, v := range values {
		assert.True(t, Eq(v, h.Eval(env, v)))
	}
}

func TestEvalAtoms(t *testing.T) {
	h, env := newTestEnv(t)

	t.Run("unknown atom is NIL", func(t *testing.T) {
		assert.Equal(t, h.NIL, h.Eval(env, h.NewAtom("UNKNOWN")))
	})

	t.Run("T evaluates to itself", func(t *testing.T) {
		assert.Equal(t, h.T, h.Eval(env, h.T))
	})

	t.Run("NIL evaluates to itself", func(t *testing.T) {
		assert.Equal(t, h.NIL, h.Eval(env, h.NIL))
	})

	t.Run("SUBR is preferred over APVAL", func(t *testing.T) {
		// Give CAR an APVAL in its defining frame; the SUBR still
		// wins the lookup.
		atom := readOne(h, env, "CAR")
		h.SetSymbolValue(env, atom, h.APVAL, NewFixnum(1), true)
		v := h.Eval(env, atom)
		assert.True(t, v.IsSubr())
	})
}

// The concrete end-to-end scenarios: one form read, evaluated, and
// printed.
func TestEvalScenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"addition", "(+ 1 2)", "3"},
		{"car of list", "(CAR (LIST 1 2 3 4))", "1"},
		{"cdr of cons", "(CDR (CONS 'A '(B C)))", "(B C)"},
		{"lambda with true", "((LAMBDA (V) (IF V 'X 'Y)) T)", "X"},
		{"lambda with false", "((LAMBDA (V) (IF V 'X 'Y)) NIL)", "Y"},
		{"define returns the name", "(DEFINE SQUARE (LAMBDA (X) (* X X)))", "SQUARE"},
		{"defined function applies", "(DEFINE SQUARE (LAMBDA (X) (* X X))) (SQUARE 5)", "25"},
		{"block runs in sequence", "(BLOCK MY (SETQ A 1) (SETQ B 2)) A", "1"},
		{"block second binding", "(BLOCK MY (SETQ A 1) (SETQ B 2)) B", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, env := newTestEnv(t)
			result := evalString(h, env, tt.input)
			assert.Equal(t, tt.expected, printString(h, env, result))
		})
	}
}

func TestEvalLambdaInFunctionPosition(t *testing.T) {
	h, env := newTestEnv(t)

	result := evalString(h, env, "((LAMBDA (A B) (CONS A B)) 1 2)")
	assert.Equal(t, "(1 . 2)", printString(h, env, result))
}

func TestApplyArityMismatch(t *testing.T) {
	h, env := newTestEnv(t)

	t.Run("too few arguments", func(t *testing.T) {
		result := evalString(h, env, "((LAMBDA (A B) A) 1)")
		assert.Equal(t, h.NIL, result)
	})

	t.Run("too many arguments", func(t *testing.T) {
		result := evalString(h, env, "((LAMBDA (A) A) 1 2)")
		assert.Equal(t, h.NIL, result)
	})
}

func TestArgumentOrderIsLeftToRight(t *testing.T) {
	h, env := newTestEnv(t)

	result := evalString(h, env, `
		(SETQ ORDER NIL)
		(LIST (SETQ ORDER (CONS 1 ORDER))
		      (SETQ ORDER (CONS 2 ORDER))
		      (SETQ ORDER (CONS 3 ORDER)))
		ORDER`)
	// Built by consing, so the last evaluation is at the head.
	assert.Equal(t, "(3 2 1)", printString(h, env, result))
}

func TestLambdaScopesBindings(t *testing.T) {
	h, env := newTestEnv(t)

	result := evalString(h, env, `
		(SETQ X 10)
		((LAMBDA (X) (* X X)) 3)
		X`)
	// The parameter shadowed X only inside the application.
	assert.Equal(t, "10", printString(h, env, result))
}

func TestEvalSubr(t *testing.T) {
	h, env := newTestEnv(t)

	t.Run("EVAL evaluates its argument", func(t *testing.T) {
		result := evalString(h, env, "(EVAL '(+ 1 2))")
		assert.Equal(t, 3, FixnumValue(result))
	})

	t.Run("EVAL of NIL is NIL", func(t *testing.T) {
		assert.Equal(t, h.NIL, evalString(h, env, "(EVAL NIL)"))
	})
}

func TestApplySubr(t *testing.T) {
	h, env := newTestEnv(t)

	t.Run("applies a subr", func(t *testing.T) {
		result := evalString(h, env, "(APPLY + '(1 2 3))")
		assert.Equal(t, 6, FixnumValue(result))
	})

	t.Run("applies a lambda", func(t *testing.T) {
		result := evalString(h, env, "(APPLY '(LAMBDA (A B) (CONS A B)) '(1 2))")
		assert.Equal(t, "(1 . 2)", printString(h, env, result))
	})

	t.Run("matches direct evaluation", func(t *testing.T) {
		applied := evalString(h, env, "(APPLY CONS '(1 2))")
		direct := evalString(h, env, "(CONS 1 2)")
		assert.True(t, h.Equal(applied, direct))
	})

	t.Run("non-callable is NIL", func(t *testing.T) {
		assert.Equal(t, h.NIL, evalString(h, env, "(APPLY 5 '(1 2))"))
	})
}

func TestEvalCellWithInvalidHead(t *testing.T) {
	h, env := newTestEnv(t)

	form := h.List(NewFixnum(1), NewFixnum(2))
	assert.Equal(t, h.NIL, h.Eval(env, form))
}

func TestEvalUnknownFunctionIsNIL(t *testing.T) {
	h, env := newTestEnv(t)

	result := evalString(h, env, "(NO-SUCH-FUNCTION 1 2)")
	assert.Equal(t, h.NIL, result)
}

func TestSetqThenEval(t *testing.T) {
	h, env := newTestEnv(t)

	evalString(h, env, "(SETQ X 42)")
	x := readOne(h, env, "X")
	require.Equal(t, TagAtom, x.Tag())
	assert.Equal(t, 42, FixnumValue(h.Eval(env, x)))
}

func TestDefineIdentityFunction(t *testing.T) {
	h, env := newTestEnv(t)

	evalString(h, env, "(DEFINE IDENT (LAMBDA (A) A))")
	for _, src := range []string{"(IDENT 5)", "(IDENT 'FOO)", "(IDENT '(1 2))"} {
		arg := evalString(h, env, src)
		direct := evalString(h, env, src[len("(IDENT "):len(src)-1])
		assert.True(t, h.Equal(direct, arg), "identity on %s", src)
	}
}

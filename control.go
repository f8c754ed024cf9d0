package golisp

import "fmt"

// Nonlocal exits are typed signals thrown through the evaluator with
// panic and recovered only at a matching frame: a blockSignal at the
// BLOCK whose tag it names, a goSignal at a TAGBODY declaring the tag.
// A signal that unwinds past every frame is fatal, which is why both
// satisfy error.

// blockSignal carries a RETURN-FROM (or RETURN, with a NIL tag) to its
// target BLOCK along with the result value.
type blockSignal struct {
	tag   Value
	value Value
}

func (s blockSignal) Error() string {
	return fmt.Sprintf("RETURN-FROM with no matching BLOCK (tag %#x)", uintptr(s.tag))
}

// goSignal carries a GO to the innermost active TAGBODY that declares
// the tag.
type goSignal struct {
	tag Value
}

func (s goSignal) Error() string {
	return fmt.Sprintf("GO with no matching TAGBODY tag (tag %#x)", uintptr(s.tag))
}

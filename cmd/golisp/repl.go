package main

import (
	"os"

	"github.com/golisp-dev/golisp"
)

const banner = "golisp 0.1\n\n"

// repl reads, evaluates, and prints forms from the terminal stream
// until end of input. The banner and prompt only appear when standard
// input is an interactive terminal.
func repl(h *golisp.Heap, env golisp.Value) error {
	interactive := isTerminal(os.Stdin.Fd())

	if interactive {
		printText(h, env, banner)
	}

	for {
		if interactive {
			printText(h, env, "\n> ")
		}

		form := h.Read(env, h.T, h.NIL)
		terminal := h.BestInputStream(env, h.T)
		if form == h.NIL && h.Truthy(h.StreamEOF(terminal)) {
			break
		}

		result := h.Eval(env, form)

		printText(h, env, "\n")
		h.PrintQuoted(env, h.T, result, true)
	}

	if interactive {
		printText(h, env, "\n")
	}
	return nil
}

func printText(h *golisp.Heap, env golisp.Value, s string) {
	h.Print(env, h.T, h.NewStringFromGo(s))
}

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/golisp-dev/golisp"
)

var (
	heapSize int
	evalExpr string
)

var rootCmd = &cobra.Command{
	Use:   "golisp [script...]",
	Short: "A small Lisp interpreter",
	Long: `golisp reads S-expressions, evaluates them against a lexically
scoped environment, and prints the results. With no arguments it runs a
read-eval-print loop on the terminal; script files are loaded and
evaluated in order; -e evaluates one expression and prints its value.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args)
	},
}

func init() {
	rootCmd.Flags().IntVar(&heapSize, "heap-size", golisp.DefaultHeapSize, "heap capacity in bytes")
	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate one expression and print its value")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(scripts []string) (err error) {
	// Heap exhaustion and reader assertion failures surface as
	// panics; they are fatal, but should exit cleanly.
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = errors.Errorf("fatal: %v", r)
		}
	}()

	h, err := golisp.NewHeap(golisp.WithSize(heapSize))
	if err != nil {
		return err
	}
	env := h.NewRootEnvironment()

	if evalExpr != "" {
		return evalOnce(h, env, evalExpr)
	}
	if len(scripts) > 0 {
		for _, path := range scripts {
			if err := loadScript(h, env, path); err != nil {
				return err
			}
		}
		return nil
	}
	return repl(h, env)
}

// evalOnce evaluates every form in the expression and prints the last
// result on standard output.
func evalOnce(h *golisp.Heap, env golisp.Value, expr string) error {
	stream := golisp.NewStringStream(h, expr)
	result := h.NIL
	for {
		form := h.Read(env, stream, h.NIL)
		if form == h.NIL && h.Truthy(h.StreamEOF(stream)) {
			break
		}
		result = h.Eval(env, form)
	}
	h.PrintQuoted(env, h.NIL, result, true)
	h.Print(env, h.NIL, golisp.NewChar('\n'))
	return nil
}

// loadScript reads and evaluates each form in the file without
// printing results.
func loadScript(h *golisp.Heap, env golisp.Value, path string) error {
	stream, err := golisp.NewFileStream(h, path)
	if err != nil {
		return errors.Wrap(err, "loading script")
	}
	defer h.StreamClose(stream)

	for {
		form := h.Read(env, stream, h.NIL)
		if form == h.NIL && h.Truthy(h.StreamEOF(stream)) {
			return nil
		}
		h.Eval(env, form)
	}
}

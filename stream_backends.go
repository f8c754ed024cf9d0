package golisp

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// stringBackend reads from an in-memory rune sequence. Pushback moves
// the cursor, so any number of unreads succeed.
type stringBackend struct {
	runes []rune
	pos   int
}

func (b *stringBackend) Open(readable, writable bool) bool { return readable && !writable }
func (b *stringBackend) Close() bool                       { return true }

func (b *stringBackend) ReadChar() (rune, bool) {
	if b.pos >= len(b.runes) {
		return 0, false
	}
	r := b.runes[b.pos]
	b.pos++
	return r, true
}

func (b *stringBackend) UnreadChar(r rune) bool {
	if b.pos == 0 {
		return false
	}
	b.pos--
	return true
}

func (b *stringBackend) WriteChar(r rune) bool { return false }
func (b *stringBackend) EOF() bool             { return b.pos >= len(b.runes) }

// NewStringStream creates a stream reading the characters of s,
// already open for input.
func NewStringStream(h *Heap, s string) Value {
	stream := h.NewStream(&stringBackend{runes: []rune(s)})
	h.StreamOpen(stream, true, false)
	return stream
}

// BufferBackend accumulates written characters in memory. Tests and
// one-shot evaluation read the result back with String.
type BufferBackend struct {
	buf strings.Builder
}

func (b *BufferBackend) Open(readable, writable bool) bool { return writable && !readable }
func (b *BufferBackend) Close() bool                       { return true }
func (b *BufferBackend) ReadChar() (rune, bool)            { return 0, false }
func (b *BufferBackend) UnreadChar(r rune) bool            { return false }
func (b *BufferBackend) EOF() bool                         { return true }

func (b *BufferBackend) WriteChar(r rune) bool {
	b.buf.WriteRune(r)
	return true
}

// String returns everything written so far.
func (b *BufferBackend) String() string { return b.buf.String() }

// Reset discards everything written so far.
func (b *BufferBackend) Reset() { b.buf.Reset() }

// NewBufferStream creates a stream collecting output in memory,
// already open for writing, and returns the backend for readback.
func NewBufferStream(h *Heap) (Value, *BufferBackend) {
	backend := &BufferBackend{}
	stream := h.NewStream(backend)
	h.StreamOpen(stream, false, true)
	return stream, backend
}

// pairBackend couples an input reader and an output writer, as the
// terminal stream does with stdin and stdout. The bufio layer supplies
// the single character of pushback the contract requires.
type pairBackend struct {
	in  *bufio.Reader
	out io.Writer
}

func (b *pairBackend) Open(readable, writable bool) bool { return true }
func (b *pairBackend) Close() bool                       { return true }

func (b *pairBackend) ReadChar() (rune, bool) {
	if b.in == nil {
		return 0, false
	}
	r, _, err := b.in.ReadRune()
	if err != nil {
		return 0, false
	}
	return r, true
}

func (b *pairBackend) UnreadChar(r rune) bool {
	if b.in == nil {
		return false
	}
	return b.in.UnreadRune() == nil
}

func (b *pairBackend) WriteChar(r rune) bool {
	if b.out == nil {
		return false
	}
	_, err := io.WriteString(b.out, string(r))
	return err == nil
}

func (b *pairBackend) EOF() bool {
	if b.in == nil {
		return false
	}
	_, err := b.in.Peek(1)
	return err == io.EOF
}

// NewPairStream creates a stream reading from r and writing to w,
// already open for both. Either side may be nil.
func NewPairStream(h *Heap, r io.Reader, w io.Writer) Value {
	backend := &pairBackend{out: w}
	if r != nil {
		backend.in = bufio.NewReader(r)
	}
	stream := h.NewStream(backend)
	h.StreamOpen(stream, true, true)
	return stream
}

// NewReaderStream creates an input stream over r, already open.
func NewReaderStream(h *Heap, r io.Reader) Value {
	backend := &pairBackend{in: bufio.NewReader(r)}
	stream := h.NewStream(backend)
	h.StreamOpen(stream, true, false)
	return stream
}

// NewWriterStream creates an output stream over w, already open.
func NewWriterStream(h *Heap, w io.Writer) Value {
	stream := h.NewStream(&pairBackend{out: w})
	h.StreamOpen(stream, false, true)
	return stream
}

// fileBackend reads a file on disk.
type fileBackend struct {
	file *os.File
	in   *bufio.Reader
}

func (b *fileBackend) Open(readable, writable bool) bool { return readable && !writable }

func (b *fileBackend) Close() bool {
	if b.file == nil {
		return true
	}
	err := b.file.Close()
	b.file = nil
	return err == nil
}

func (b *fileBackend) ReadChar() (rune, bool) {
	r, _, err := b.in.ReadRune()
	if err != nil {
		return 0, false
	}
	return r, true
}

func (b *fileBackend) UnreadChar(r rune) bool { return b.in.UnreadRune() == nil }
func (b *fileBackend) WriteChar(r rune) bool  { return false }

func (b *fileBackend) EOF() bool {
	_, err := b.in.Peek(1)
	return err == io.EOF
}

// NewFileStream opens path for reading and wraps it in a stream that
// is already open for input.
func NewFileStream(h *Heap, path string) (Value, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", path)
	}
	backend := &fileBackend{file: file, in: bufio.NewReader(file)}
	stream := h.NewStream(backend)
	h.StreamOpen(stream, true, false)
	return stream, nil
}

// AttachStandardStreams binds the three standard stream symbols in the
// environment: the terminal stream under *TERMINAL-IO*, and the
// default input and output streams under *STANDARD-INPUT* and
// *STANDARD-OUTPUT*.
func (h *Heap) AttachStandardStreams(env, terminal, input, output Value) {
	if h.TerminalIO == 0 {
		h.TerminalIO = h.NewAtom("*TERMINAL-IO*")
		h.StandardInput = h.NewAtom("*STANDARD-INPUT*")
		h.StandardOutput = h.NewAtom("*STANDARD-OUTPUT*")
	}
	bind := func(atom Value, name string, stream Value) {
		h.SetSymbolValue(env, atom, h.PNAME, h.NewStringFromGo(name), false)
		h.SetSymbolValue(env, atom, h.APVAL, stream, false)
	}
	bind(h.TerminalIO, "*TERMINAL-IO*", terminal)
	bind(h.StandardInput, "*STANDARD-INPUT*", input)
	bind(h.StandardOutput, "*STANDARD-OUTPUT*", output)
}

// attachOSStreams wires the process streams: stdin and stdout as the
// terminal pair, stdin as standard input, stdout as standard output.
func (h *Heap) attachOSStreams(env Value) {
	terminal := NewPairStream(h, os.Stdin, os.Stdout)
	input := NewReaderStream(h, os.Stdin)
	output := NewWriterStream(h, os.Stdout)
	h.AttachStandardStreams(env, terminal, input, output)
}

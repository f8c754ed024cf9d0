package golisp

// A stream bundles a backend, reached through the native registry by
// way of an interior handle, with a flag word tracking whether it is
// open for reading, open for writing, and at end. The core operations
// interpose the flag bookkeeping around the backend calls.

const streamWords = 2

type streamFlags uintptr

const (
	streamAtEOF streamFlags = 1 << iota
	streamReadable
	streamWritable
)

// A StreamBackend supplies the character-level behavior of a stream.
// Implementations must support at least one character of pushback
// between any two reads, and must keep reporting end-of-stream once
// they first report it, until reopened.
type StreamBackend interface {
	Open(readable, writable bool) bool
	Close() bool
	ReadChar() (rune, bool)
	UnreadChar(r rune) bool
	WriteChar(r rune) bool
	EOF() bool
}

// NewStream creates a closed stream over the given backend.
func (h *Heap) NewStream(backend StreamBackend) Value {
	idx := h.addNative(backend)
	functions, data := h.NewInterior(1)
	data[0] = Value(idx)
	v, rec := h.allocate(TagStream, streamWords)
	rec[0] = functions
	rec[1] = 0
	return v
}

func (h *Heap) streamBackend(v Value) StreamBackend {
	functions := h.record(v, streamWords)[0]
	idx := int(h.interiorData(functions)[0])
	return h.native(idx).(StreamBackend)
}

func (h *Heap) streamGetFlags(v Value) streamFlags {
	return streamFlags(h.record(v, streamWords)[1])
}

func (h *Heap) streamSetFlags(v Value, flags streamFlags) {
	h.record(v, streamWords)[1] = Value(flags)
}

// StreamOpen opens the stream for reading, writing, or both, setting
// the matching flags on success. Opening an already-open stream fails.
func (h *Heap) StreamOpen(stream Value, readable, writable bool) Value {
	if !stream.IsStream() {
		return h.NIL
	}
	if h.Truthy(h.StreamOpenp(stream)) {
		return h.NIL
	}
	if !h.streamBackend(stream).Open(readable, writable) {
		return h.NIL
	}
	flags := h.streamGetFlags(stream) &^ streamAtEOF
	if readable {
		flags |= streamReadable
	}
	if writable {
		flags |= streamWritable
	}
	h.streamSetFlags(stream, flags)
	return stream
}

// StreamClose closes the stream and clears its open flags.
func (h *Heap) StreamClose(stream Value) Value {
	if !stream.IsStream() {
		return h.NIL
	}
	h.streamBackend(stream).Close()
	flags := h.streamGetFlags(stream)
	flags &^= streamReadable | streamWritable
	h.streamSetFlags(stream, flags)
	return stream
}

// StreamReadChar reads one character, returning NIL at end of stream
// or when the stream is not open for reading.
func (h *Heap) StreamReadChar(stream Value) Value {
	if !stream.IsStream() {
		return h.NIL
	}
	if h.streamGetFlags(stream)&streamReadable == 0 {
		return h.NIL
	}
	r, ok := h.streamBackend(stream).ReadChar()
	if !ok {
		return h.NIL
	}
	return NewChar(r)
}

// StreamUnreadChar pushes one character back onto the stream.
func (h *Heap) StreamUnreadChar(stream, ch Value) Value {
	if !stream.IsStream() {
		return h.NIL
	}
	if !ch.IsChar() {
		return h.NIL
	}
	if !h.streamBackend(stream).UnreadChar(CharValue(ch)) {
		return h.NIL
	}
	return ch
}

// StreamPeekChar reads a character and pushes it straight back.
func (h *Heap) StreamPeekChar(stream Value) Value {
	ch := h.StreamReadChar(stream)
	if ch.IsChar() {
		h.StreamUnreadChar(stream, ch)
	}
	return ch
}

// StreamWriteChar writes one character and returns the stream, or NIL
// when the stream is not open for writing.
func (h *Heap) StreamWriteChar(stream, ch Value) Value {
	if !stream.IsStream() {
		return h.NIL
	}
	if h.streamGetFlags(stream)&streamWritable == 0 {
		return h.NIL
	}
	if !h.streamBackend(stream).WriteChar(CharValue(ch)) {
		return h.NIL
	}
	return stream
}

// StreamWriteString writes every character of a string value.
func (h *Heap) StreamWriteString(stream, str Value) Value {
	if !stream.IsStream() || !str.IsString() {
		return h.NIL
	}
	length := h.StringLength(str)
	for i := 0; i < length; i++ {
		h.StreamWriteChar(stream, h.StringChar(str, i))
	}
	return stream
}

// StreamEOF reports whether the stream is at end. Once observed, the
// condition is cached in the flags and stays set until reopen.
func (h *Heap) StreamEOF(stream Value) Value {
	if !stream.IsStream() {
		return h.NIL
	}
	if h.streamGetFlags(stream)&streamAtEOF != 0 {
		return h.T
	}
	if !h.streamBackend(stream).EOF() {
		return h.NIL
	}
	h.streamSetFlags(stream, h.streamGetFlags(stream)|streamAtEOF)
	return h.T
}

// StreamOpenp reports whether the stream is open in either direction.
func (h *Heap) StreamOpenp(stream Value) Value {
	if !stream.IsStream() {
		return h.NIL
	}
	flags := h.streamGetFlags(stream)
	return h.Bool(flags&(streamReadable|streamWritable) != 0)
}

// BestInputStream resolves a stream designator for reading: T is the
// terminal stream, NIL is standard input, a stream is itself, and
// anything else is NIL.
func (h *Heap) BestInputStream(env, designator Value) Value {
	switch {
	case designator == h.T:
		return h.GetSymbolValue(env, h.TerminalIO, h.APVAL, true)
	case designator == h.NIL:
		return h.GetSymbolValue(env, h.StandardInput, h.APVAL, true)
	case designator.IsStream():
		return designator
	}
	return h.NIL
}

// BestOutputStream resolves a stream designator for writing: T is the
// terminal stream, NIL is standard output, a stream is itself, and
// anything else is NIL.
func (h *Heap) BestOutputStream(env, designator Value) Value {
	switch {
	case designator == h.T:
		return h.GetSymbolValue(env, h.TerminalIO, h.APVAL, true)
	case designator == h.NIL:
		return h.GetSymbolValue(env, h.StandardOutput, h.APVAL, true)
	case designator.IsStream():
		return designator
	}
	return h.NIL
}

package vpack

import "bufio"

// Sink is an append-only byte stream a Dumper writes into (spec.md §4.2).
// Implementations must never reorder or drop writes; two Sink
// implementations must make the dumper's output byte-identical.
type Sink interface {
	PushByte(b byte)
	Append(p []byte)
	Reserve(additional int)
}

// ByteSink is an in-memory Sink backed by a growable []byte, grounded on
// the teacher's bytes.Buffer + json.NewEncoder usage for building output
// entirely in memory (objectdump/dump.go's Sdump/DumpToJSON).
type ByteSink struct {
	buf []byte
}

// NewByteSink returns an empty ByteSink, optionally pre-sized.
func NewByteSink(capacityHint int) *ByteSink {
	return &ByteSink{buf: make([]byte, 0, capacityHint)}
}

func (s *ByteSink) PushByte(b byte)     { s.buf = append(s.buf, b) }
func (s *ByteSink) Append(p []byte)     { s.buf = append(s.buf, p...) }
func (s *ByteSink) Reserve(n int) {
	if cap(s.buf)-len(s.buf) < n {
		grown := make([]byte, len(s.buf), len(s.buf)+n)
		copy(grown, s.buf)
		s.buf = grown
	}
}

// Bytes returns the accumulated output. The returned slice aliases the
// ByteSink's internal buffer.
func (s *ByteSink) Bytes() []byte { return s.buf }

// String returns the accumulated output as a string.
func (s *ByteSink) String() string { return string(s.buf) }

// Len returns the number of bytes written so far.
func (s *ByteSink) Len() int { return len(s.buf) }

// WriterSink adapts a bufio.Writer into a Sink, for streaming output
// straight to a file or network connection without buffering the whole
// document in memory first. Grounded on
// majacQ-juicefs/pkg/meta/dump.go's writeJsonWithOutTree, which wraps an
// io.Writer in a bufio.Writer sized to jsonWriteSize before streaming a
// tree's JSON rendering through it.
type WriterSink struct {
	w   *bufio.Writer
	err error
}

// NewWriterSink wraps w in a Sink. The buffer size is whatever w was
// created with; callers should pick something on the order of tens of
// kilobytes for file/network writers.
func NewWriterSink(w *bufio.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) PushByte(b byte) {
	if s.err != nil {
		return
	}
	s.err = s.w.WriteByte(b)
}

func (s *WriterSink) Append(p []byte) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.Write(p)
}

func (s *WriterSink) Reserve(n int) {
	// bufio.Writer grows its own buffer lazily; nothing to pre-reserve.
}

// Flush flushes any buffered bytes to the underlying writer and returns
// the first write error encountered, if any.
func (s *WriterSink) Flush() error {
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

// Package dump implements the JSON and VJSON renderings of a vpack.Slice
// tree (spec.md §4.3, §4.4).
package dump

import "github.com/go-vpack/vpack"

// UnsupportedBehavior selects how the dumper treats a value with no JSON
// equivalent (spec.md §3.4, §4.3.2).
type UnsupportedBehavior int

const (
	// FailOnUnsupported raises NoJsonEquivalent.
	FailOnUnsupported UnsupportedBehavior = iota
	// NullifyUnsupported emits `null`.
	NullifyUnsupported
	// ConvertUnsupported delegates to the VJSON dialect for this value.
	ConvertUnsupported
)

// CustomTypeHandler renders a vpack.Custom value. It is an interface
// rather than a function pointer, per spec.md §9, so stateful encoders
// (counters, caches, whatever the caller needs) are possible.
type CustomTypeHandler interface {
	// DumpCustom appends the rendering of slice to the Dumper's Sink.
	// base is the enclosing container the Custom value was found in, for
	// handlers that need surrounding context (spec.md §4.3).
	DumpCustom(d *Dumper, slice, base vpack.Slice) error
}

// Options is the immutable configuration record of spec.md §3.4. Build one
// with NewOptions; options are carried by reference and never mutated for
// the duration of a dump (spec.md §9).
type Options struct {
	// EscapeForwardSlashes, when true, writes '/' as "\/"; otherwise as
	// '/'.
	EscapeForwardSlashes bool

	// EscapeUnicode, when true, emits every non-ASCII codepoint as \uXXXX
	// (a surrogate pair for codepoints >= U+10000); when false, the
	// original UTF-8 bytes are copied through.
	EscapeUnicode bool

	// PrettyPrint, when true, splits arrays and objects across lines with
	// a 2-space indent per depth; when false, produces a compact
	// single-line form.
	PrettyPrint bool

	// UnsupportedBehavior is the policy for types with no JSON
	// equivalent.
	UnsupportedBehavior UnsupportedBehavior

	// CustomTypeHandler renders Custom values in JSON mode. Required
	// unless the document never contains a Custom value; VJSON mode
	// renders Custom itself and does not consult this field.
	CustomTypeHandler CustomTypeHandler
}

// Option configures an Options record via NewOptions.
type Option func(*Options)

// WithEscapeForwardSlashes sets EscapeForwardSlashes.
func WithEscapeForwardSlashes(v bool) Option {
	return func(o *Options) { o.EscapeForwardSlashes = v }
}

// WithEscapeUnicode sets EscapeUnicode.
func WithEscapeUnicode(v bool) Option {
	return func(o *Options) { o.EscapeUnicode = v }
}

// WithPrettyPrint sets PrettyPrint.
func WithPrettyPrint(v bool) Option {
	return func(o *Options) { o.PrettyPrint = v }
}

// WithUnsupportedBehavior sets UnsupportedBehavior.
func WithUnsupportedBehavior(b UnsupportedBehavior) Option {
	return func(o *Options) { o.UnsupportedBehavior = b }
}

// WithCustomTypeHandler sets CustomTypeHandler.
func WithCustomTypeHandler(h CustomTypeHandler) Option {
	return func(o *Options) { o.CustomTypeHandler = h }
}

// NewOptions builds an Options record from zero or more Option values,
// applied over sensible defaults (compact, non-escaping, fail on
// unsupported types).
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

package dump

import (
	"github.com/go-vpack/vpack"
)

const hexDigits = "0123456789ABCDEF"

// writeEscapedString appends the JSON-quoted, escaped rendering of raw to
// the Dumper's Sink, grounded on original_source/src/Dumper.cpp's
// dumpString: a per-byte escape table for the ASCII control range and the
// standard JSON escapes, with UTF-8 multi-byte sequences either copied
// through verbatim or, when EscapeUnicode is set, re-encoded as \uXXXX
// (and a surrogate pair for codepoints at or above U+10000).
func (d *Dumper) writeEscapedString(raw []byte) error {
	d.sink.PushByte('"')
	if err := d.writeEscapedStringBody(raw); err != nil {
		return err
	}
	d.sink.PushByte('"')
	return nil
}

// writeEscapedStringBody writes the escaped contents of raw without the
// surrounding quotes, so callers that need a prefix inside the same
// quoted literal (VJSON's "s:" tag) can share the escaping logic.
//
// Sequence length is determined from the lead byte's high bits alone, the
// same pointer-bound check original_source/src/Dumper.cpp's dumpString
// performs (e.g. "p + 1 >= e" before touching a second byte); it never
// validates continuation-byte shape or rejects overlong encodings, matching
// the Non-goal that excludes full UTF-8 validation beyond lead-byte
// framing. A lead byte is only rejected as InvalidUtf8Sequence when the
// buffer doesn't hold enough bytes to cover its declared length; any other
// byte pattern — including a stray continuation byte — is passed through,
// or, when EscapeUnicode is set, written as the \u00XX escape of its value.
func (d *Dumper) writeEscapedStringBody(raw []byte) error {
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c < 0x80 {
			if esc, ok := asciiEscape(c, d.opts.EscapeForwardSlashes); ok {
				d.sink.Append(esc)
			} else {
				d.sink.PushByte(c)
			}
			i++
			continue
		}

		n := utf8SeqLen(c)
		if n == 1 {
			if !d.opts.EscapeUnicode {
				d.sink.PushByte(c)
			} else {
				d.writeUnicodeEscape(rune(c))
			}
			i++
			continue
		}
		if i+n > len(raw) {
			return &vpack.Error{Kind: vpack.InvalidUTF8Sequence, Msg: "truncated UTF-8 sequence in string"}
		}
		if !d.opts.EscapeUnicode {
			d.sink.Append(raw[i : i+n])
			i += n
			continue
		}
		d.writeUnicodeEscape(decodeCodepoint(raw[i:i+n], n))
		i += n
	}
	return nil
}

// utf8SeqLen returns the byte length a UTF-8 lead byte declares for itself
// (2, 3, or 4), or 1 for anything that isn't a recognized multi-byte lead
// byte (ASCII, a stray continuation byte, or 0xF8-0xFF).
func utf8SeqLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// decodeCodepoint extracts the codepoint bits from an n-byte UTF-8
// sequence by position alone, the same cascading bit-extraction
// original_source/src/Dumper.cpp performs without checking that each
// continuation byte actually has its top two bits set to 10.
func decodeCodepoint(b []byte, n int) rune {
	switch n {
	case 2:
		return rune(b[0]&0x1f)<<6 | rune(b[1]&0x3f)
	case 3:
		return rune(b[0]&0x0f)<<12 | rune(b[1]&0x3f)<<6 | rune(b[2]&0x3f)
	case 4:
		return rune(b[0]&0x07)<<18 | rune(b[1]&0x3f)<<12 | rune(b[2]&0x3f)<<6 | rune(b[3]&0x3f)
	default:
		return rune(b[0])
	}
}

// writeUnicodeEscape appends the \uXXXX escape of r, splitting it into a
// UTF-16 surrogate pair when r is outside the basic multilingual plane,
// matching original_source/src/Dumper.cpp's dumpUnicodeCharacter.
func (d *Dumper) writeUnicodeEscape(r rune) {
	if r < 0x10000 {
		appendHex4(d.sink, uint32(r))
		return
	}
	v := uint32(r) - 0x10000
	high := 0xd800 + (v >> 10)
	low := 0xdc00 + (v & 0x3ff)
	appendHex4(d.sink, high)
	appendHex4(d.sink, low)
}

func appendHex4(sink vpack.Sink, v uint32) {
	sink.Append([]byte{
		'\\', 'u',
		hexDigits[(v>>12)&0xf],
		hexDigits[(v>>8)&0xf],
		hexDigits[(v>>4)&0xf],
		hexDigits[v&0xf],
	})
}

// asciiEscape returns the literal escape sequence for an ASCII byte that
// cannot appear unescaped in a JSON string, if any.
func asciiEscape(c byte, escapeSlash bool) ([]byte, bool) {
	switch c {
	case '"':
		return []byte(`\"`), true
	case '\\':
		return []byte(`\\`), true
	case '/':
		if escapeSlash {
			return []byte(`\/`), true
		}
		return nil, false
	case '\b':
		return []byte(`\b`), true
	case '\f':
		return []byte(`\f`), true
	case '\n':
		return []byte(`\n`), true
	case '\r':
		return []byte(`\r`), true
	case '\t':
		return []byte(`\t`), true
	default:
		if c < 0x20 {
			return []byte{'\\', 'u', '0', '0', hexDigits[(c>>4)&0xf], hexDigits[c&0xf]}, true
		}
		return nil, false
	}
}

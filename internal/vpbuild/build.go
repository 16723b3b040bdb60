// Package vpbuild constructs raw VPack byte fixtures for tests. It is not
// part of the public API: spec.md's Non-goals explicitly exclude building
// new VPack documents from the dumper itself, so this encoder lives under
// internal/ and exists only so vpack and vpack/dump can be tested against
// byte-exact, hand-verifiable fixtures instead of parsing real-world
// capture files.
package vpbuild

import (
	"encoding/binary"
	"math"
	"unsafe"
)

func putUintLE(b []byte, v uint64, width int) {
	for i := 0; i < width; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}

func widthFor(v uint64) int {
	switch {
	case v <= 0xff:
		return 1
	case v <= 0xffff:
		return 2
	case v <= 0xffffffff:
		return 4
	default:
		return 8
	}
}

func signedWidthFor(v int64) int {
	for _, w := range []int{1, 2, 4} {
		limit := int64(1) << (8*uint(w) - 1)
		if v >= -limit && v < limit {
			return w
		}
	}
	return 8
}

// Null returns the 1-byte encoding of a Null value.
func Null() []byte { return []byte{0x18} }

// Bool returns the 1-byte encoding of a Bool value.
func Bool(v bool) []byte {
	if v {
		return []byte{0x1a}
	}
	return []byte{0x19}
}

// None returns the 1-byte encoding of a None value.
func None() []byte { return []byte{0x00} }

// MinKey returns the 1-byte encoding of the MinKey sentinel.
func MinKey() []byte { return []byte{0x1e} }

// MaxKey returns the 1-byte encoding of the MaxKey sentinel.
func MaxKey() []byte { return []byte{0x1f} }

// Illegal returns the 1-byte encoding of an Illegal head byte.
func Illegal() []byte { return []byte{0x15} }

// Double returns the 9-byte encoding of a Double value.
func Double(v float64) []byte {
	buf := make([]byte, 9)
	buf[0] = 0x1b
	binary.LittleEndian.PutUint64(buf[1:9], math.Float64bits(v))
	return buf
}

// UTCDate returns the 9-byte encoding of a UTCDate value (milliseconds
// since the Unix epoch).
func UTCDate(ms int64) []byte {
	buf := make([]byte, 9)
	buf[0] = 0x1c
	binary.LittleEndian.PutUint64(buf[1:9], uint64(ms))
	return buf
}

// SmallInt returns the 1-byte encoding of a value in -6..9.
func SmallInt(v int64) []byte {
	if v >= 0 {
		return []byte{byte(0x30 + v)}
	}
	return []byte{byte(0x3a + (v + 6))}
}

// Int returns the minimal-width signed Int encoding of v. INT64_MIN is
// always encoded at full 8-byte width.
func Int(v int64) []byte {
	if v == math.MinInt64 {
		buf := make([]byte, 9)
		buf[0] = 0x20 + 7
		binary.LittleEndian.PutUint64(buf[1:9], uint64(v))
		return buf
	}
	w := signedWidthFor(v)
	buf := make([]byte, 1+w)
	buf[0] = byte(0x20 + w - 1)
	var u uint64
	if v < 0 {
		u = uint64(v) & ((uint64(1) << (8 * uint(w))) - 1)
	} else {
		u = uint64(v)
	}
	putUintLE(buf[1:], u, w)
	return buf
}

// UInt returns the minimal-width unsigned UInt encoding of v.
func UInt(v uint64) []byte {
	w := widthFor(v)
	buf := make([]byte, 1+w)
	buf[0] = byte(0x28 + w - 1)
	putUintLE(buf[1:], v, w)
	return buf
}

// Str returns the short- or long-form String encoding of s.
func Str(s string) []byte {
	b := []byte(s)
	if len(b) <= 126 {
		buf := make([]byte, 1+len(b))
		buf[0] = byte(0x40 + len(b))
		copy(buf[1:], b)
		return buf
	}
	buf := make([]byte, 9+len(b))
	buf[0] = 0xbf
	binary.LittleEndian.PutUint64(buf[1:9], uint64(len(b)))
	copy(buf[9:], b)
	return buf
}

// Binary returns the Binary encoding of b, with a minimal-width length
// prefix.
func Binary(b []byte) []byte {
	w := widthFor(uint64(len(b)))
	buf := make([]byte, 1+w+len(b))
	buf[0] = byte(0xc0 + w - 1)
	putUintLE(buf[1:1+w], uint64(len(b)), w)
	copy(buf[1+w:], b)
	return buf
}

// Custom returns the Custom encoding of payload, tagged with tag (one of
// the 16 Custom head bytes, 0xf0..0xff).
func Custom(tag byte, payload []byte) []byte {
	buf := make([]byte, 9+len(payload))
	buf[0] = tag
	binary.LittleEndian.PutUint64(buf[1:9], uint64(len(payload)))
	copy(buf[9:], payload)
	return buf
}

// BCD returns the 1-byte encoding of a reserved BCD head byte.
func BCD() []byte { return []byte{0xd0} }

// External returns the 9-byte encoding of an External value that refers to
// target. target must be kept alive and unmodified by the caller for as
// long as the returned bytes may be dereferenced. VPack construction is
// outside the public package's scope (spec.md's Non-goals exclude building
// new VPack documents), so this lives here alongside the rest of the
// fixture builders.
func External(target []byte) []byte {
	buf := make([]byte, 9)
	buf[0] = 0x1d
	if len(target) > 0 {
		addr := uintptr(unsafe.Pointer(&target[0]))
		binary.LittleEndian.PutUint64(buf[1:9], uint64(addr))
	}
	return buf
}

var arrayHeads = map[int]byte{1: 0x03, 2: 0x04, 4: 0x05, 8: 0x06}
var objectHeads = map[int]byte{1: 0x0c, 2: 0x0d, 4: 0x0e, 8: 0x0f}

// Array returns the indexed (tail offset table) encoding of an Array
// holding items in order.
func Array(items [][]byte) []byte {
	if len(items) == 0 {
		return []byte{0x01}
	}
	return indexedContainer(items, arrayHeads)
}

// ArrayEqual returns the equal-stride encoding of an Array. Every item
// must have the same byte length.
func ArrayEqual(items [][]byte) []byte {
	if len(items) == 0 {
		return []byte{0x01}
	}
	return equalContainer(items, 0x02)
}

// Object returns the indexed encoding of an Object built from keys and
// values, preserving the given order (the dumper does not sort keys,
// spec.md §9).
func Object(keys []string, values [][]byte) []byte {
	if len(keys) == 0 {
		return []byte{0x0a}
	}
	pairs := make([][]byte, len(keys))
	for i, k := range keys {
		pairs[i] = append(Str(k), values[i]...)
	}
	return indexedContainer(pairs, objectHeads)
}

// ObjectEqual returns the equal-stride encoding of an Object. Every
// key+value pair must have the same combined byte length.
func ObjectEqual(keys []string, values [][]byte) []byte {
	if len(keys) == 0 {
		return []byte{0x0a}
	}
	pairs := make([][]byte, len(keys))
	for i, k := range keys {
		pairs[i] = append(Str(k), values[i]...)
	}
	return equalContainer(pairs, 0x0b)
}

func equalContainer(entries [][]byte, head byte) []byte {
	stride := len(entries[0])
	for _, e := range entries {
		if len(e) != stride {
			panic("vpbuild: equal-stride container requires equal-length entries")
		}
	}
	dataLen := stride * len(entries)
	total := 1 + 8 + 8 + dataLen
	buf := make([]byte, total)
	buf[0] = head
	binary.LittleEndian.PutUint64(buf[1:9], uint64(total))
	binary.LittleEndian.PutUint64(buf[9:17], uint64(len(entries)))
	off := 17
	for _, e := range entries {
		copy(buf[off:], e)
		off += len(e)
	}
	return buf
}

// indexedContainer picks the narrowest index width (1, 2, 4, or 8 bytes)
// that can express the container's final total length, then lays out:
// head(1) + totalLen(w) + count(w) + entries... + offset table (count*w).
func indexedContainer(entries [][]byte, heads map[int]byte) []byte {
	dataLen := 0
	for _, e := range entries {
		dataLen += len(e)
	}
	n := len(entries)
	for _, w := range []int{1, 2, 4, 8} {
		total := 1 + 2*w + dataLen + n*w
		if w == 8 || uint64(total) <= (uint64(1)<<(8*uint(w)))-1 {
			return buildIndexed(entries, w, heads[w])
		}
	}
	panic("vpbuild: unreachable")
}

func buildIndexed(entries [][]byte, w int, head byte) []byte {
	n := len(entries)
	start := 1 + 2*w
	offsets := make([]int, n)
	pos := start
	for i, e := range entries {
		offsets[i] = pos
		pos += len(e)
	}
	idxStart := pos
	total := idxStart + n*w

	buf := make([]byte, total)
	buf[0] = head
	putUintLE(buf[1:1+w], uint64(total), w)
	putUintLE(buf[1+w:1+2*w], uint64(n), w)
	for i, e := range entries {
		copy(buf[offsets[i]:], e)
	}
	for i, off := range offsets {
		putUintLE(buf[idxStart+i*w:idxStart+i*w+w], uint64(off), w)
	}
	return buf
}

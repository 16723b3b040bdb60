package vpack

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Slice is a zero-copy, immutable cursor over one VPack value (spec.md
// §3.2). It owns nothing: its lifetime is bounded by the caller-owned byte
// range it was constructed from. The zero Slice is not valid; use New.
type Slice struct {
	data []byte
}

// New wraps buf as a Slice rooted at buf[0]. buf must contain at least one
// complete VPack value starting at offset 0 (spec.md §3.1 invariant 1);
// New itself performs no validation beyond requiring a non-empty buffer.
func New(buf []byte) (Slice, error) {
	if len(buf) == 0 {
		return Slice{}, newError(InternalError, "empty buffer")
	}
	return Slice{data: buf}, nil
}

// Type classifies the Slice's head byte.
func (s Slice) Type() ValueType {
	if len(s.data) == 0 {
		return None
	}
	return classify(s.data[0])
}

// IsType reports whether the Slice has the given logical type.
func (s Slice) IsType(t ValueType) bool {
	return s.Type() == t
}

// IsInteger reports whether the Slice holds an Int, UInt, or SmallInt.
func (s Slice) IsInteger() bool {
	switch s.Type() {
	case Int, UInt, SmallInt:
		return true
	default:
		return false
	}
}

func (s Slice) head() byte {
	return s.data[0]
}

func (s Slice) invalidType(accessor string) error {
	return newError(InvalidType, "%s called on %s", accessor, s.Type())
}

// ByteSize returns the total number of bytes this value occupies,
// including its head byte.
func (s Slice) ByteSize() (uint64, error) {
	if len(s.data) == 0 {
		return 0, newError(InternalError, "empty slice")
	}
	h := s.head()
	switch s.Type() {
	case None, Illegal, Null, Bool, SmallInt, MinKey, MaxKey:
		return 1, nil
	case Double, UTCDate, External:
		return 9, nil
	case Int:
		return uint64(h-headIntBase+1) + 1, nil
	case UInt:
		return uint64(h-headUIntBase+1) + 1, nil
	case String:
		if h == headStringLong {
			if len(s.data) < 9 {
				return 0, newError(InternalError, "truncated long string header")
			}
			l := binary.LittleEndian.Uint64(s.data[1:9])
			return 9 + l, nil
		}
		return uint64(h-headStringBase) + 1, nil
	case Binary:
		w := int(h-headBinaryBase) + 1
		if len(s.data) < 1+w {
			return 0, newError(InternalError, "truncated binary length")
		}
		l := readUintLE(s.data[1:1+w], w)
		return uint64(1+w) + l, nil
	case BCD:
		return 1, nil
	case Custom:
		if len(s.data) < 9 {
			return 0, newError(InternalError, "truncated custom header")
		}
		l := binary.LittleEndian.Uint64(s.data[1:9])
		return 9 + l, nil
	case Array, Object:
		return s.containerTotalLen()
	default:
		return 0, newError(InternalError, "unrecognized head byte 0x%02x", h)
	}
}

func readUintLE(b []byte, width int) uint64 {
	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = (v << 8) | uint64(b[i])
	}
	return v
}

// GetBool returns the boolean payload of a Bool value.
func (s Slice) GetBool() (bool, error) {
	if s.Type() != Bool {
		return false, s.invalidType("GetBool")
	}
	return s.head() == headTrue, nil
}

// GetDouble returns the IEEE-754 payload of a Double value.
func (s Slice) GetDouble() (float64, error) {
	if s.Type() != Double {
		return 0, s.invalidType("GetDouble")
	}
	if len(s.data) < 9 {
		return 0, newError(InternalError, "truncated double")
	}
	bits := binary.LittleEndian.Uint64(s.data[1:9])
	return math.Float64frombits(bits), nil
}

// GetInt returns the signed payload of an Int or SmallInt value.
func (s Slice) GetInt() (int64, error) {
	switch s.Type() {
	case SmallInt:
		return s.GetSmallInt()
	case Int:
		w := int(s.head()-headIntBase) + 1
		if len(s.data) < 1+w {
			return 0, newError(InternalError, "truncated int")
		}
		u := readUintLE(s.data[1:1+w], w)
		// sign-extend from bit (8w-1)
		shift := uint(64 - 8*w)
		return int64(u<<shift) >> shift, nil
	default:
		return 0, s.invalidType("GetInt")
	}
}

// GetUInt returns the unsigned payload of a UInt or SmallInt value.
func (s Slice) GetUInt() (uint64, error) {
	switch s.Type() {
	case UInt:
		w := int(s.head()-headUIntBase) + 1
		if len(s.data) < 1+w {
			return 0, newError(InternalError, "truncated uint")
		}
		return readUintLE(s.data[1:1+w], w), nil
	case SmallInt:
		v, err := s.GetSmallInt()
		if err != nil {
			return 0, err
		}
		if v < 0 {
			return 0, s.invalidType("GetUInt")
		}
		return uint64(v), nil
	default:
		return 0, s.invalidType("GetUInt")
	}
}

// GetSmallInt returns the signed value packed directly into the head byte
// of a SmallInt (range -6..9).
func (s Slice) GetSmallInt() (int64, error) {
	if s.Type() != SmallInt {
		return 0, s.invalidType("GetSmallInt")
	}
	h := s.head()
	if h >= headSmallIntPos && h < headSmallIntPos+10 {
		return int64(h - headSmallIntPos), nil
	}
	return int64(h-headSmallIntNeg) - 6, nil
}

// GetUTCDate returns the milliseconds-since-epoch payload of a UTCDate.
func (s Slice) GetUTCDate() (int64, error) {
	if s.Type() != UTCDate {
		return 0, s.invalidType("GetUTCDate")
	}
	if len(s.data) < 9 {
		return 0, newError(InternalError, "truncated utc date")
	}
	return int64(binary.LittleEndian.Uint64(s.data[1:9])), nil
}

// GetString returns the raw UTF-8 payload bytes of a String value.
func (s Slice) GetString() ([]byte, error) {
	if s.Type() != String {
		return nil, s.invalidType("GetString")
	}
	h := s.head()
	if h == headStringLong {
		if len(s.data) < 9 {
			return nil, newError(InternalError, "truncated long string header")
		}
		l := binary.LittleEndian.Uint64(s.data[1:9])
		if uint64(len(s.data)-9) < l {
			return nil, newError(InternalError, "string payload exceeds buffer")
		}
		return s.data[9 : 9+l], nil
	}
	n := int(h - headStringBase)
	if len(s.data)-1 < n {
		return nil, newError(InternalError, "string payload exceeds buffer")
	}
	return s.data[1 : 1+n], nil
}

// GetBinary returns the raw payload bytes of a Binary value.
func (s Slice) GetBinary() ([]byte, error) {
	if s.Type() != Binary {
		return nil, s.invalidType("GetBinary")
	}
	w := int(s.head()-headBinaryBase) + 1
	if len(s.data) < 1+w {
		return nil, newError(InternalError, "truncated binary length")
	}
	l := readUintLE(s.data[1:1+w], w)
	start := 1 + w
	if uint64(len(s.data)-start) < l {
		return nil, newError(InternalError, "binary payload exceeds buffer")
	}
	return s.data[start : uint64(start)+l], nil
}

// Raw returns the byte range from the head byte through the declared end
// of this value (used by the VJSON dumper to serialize Custom values
// verbatim, spec.md §4.4).
func (s Slice) Raw() ([]byte, error) {
	n, err := s.ByteSize()
	if err != nil {
		return nil, err
	}
	if uint64(len(s.data)) < n {
		return nil, newError(InternalError, "value exceeds buffer")
	}
	return s.data[:n], nil
}

// CustomPayload returns the opaque bytes carried by a Custom value, for use
// by a CustomTypeHandler.
func (s Slice) CustomPayload() ([]byte, error) {
	if s.Type() != Custom {
		return nil, s.invalidType("CustomPayload")
	}
	if len(s.data) < 9 {
		return nil, newError(InternalError, "truncated custom header")
	}
	l := binary.LittleEndian.Uint64(s.data[1:9])
	if uint64(len(s.data)-9) < l {
		return nil, newError(InternalError, "custom payload exceeds buffer")
	}
	return s.data[9 : 9+l], nil
}

// GetExternal dereferences the pointer payload of an External value,
// returning a fresh Slice over the value it refers to (spec.md §3.1,
// invariant 4). The caller is responsible for keeping the referenced
// memory alive and unmodified, exactly as for the root buffer itself.
// Constructing an External value is outside this package's scope (spec.md's
// Non-goals exclude building new VPack documents); internal/vpbuild.External
// builds one for tests.
func (s Slice) GetExternal() (Slice, error) {
	if s.Type() != External {
		return Slice{}, s.invalidType("GetExternal")
	}
	if len(s.data) < 9 {
		return Slice{}, newError(InternalError, "truncated external")
	}
	addr := binary.LittleEndian.Uint64(s.data[1:9])
	if addr == 0 {
		return Slice{}, newError(InternalError, "external target is nil")
	}
	ptr := (*byte)(unsafe.Pointer(uintptr(addr)))
	// Reconstruct a byte slice of unknown length over the target memory;
	// callers only ever read through further Slice accessors, each of
	// which validates its own bounds from the head byte onward, so an
	// unbounded length here is safe as long as the caller kept the target
	// region alive (spec.md §5 sharing discipline).
	target := unsafe.Slice(ptr, math.MaxInt32)
	return Slice{data: target}, nil
}

package vpack

// containerLayout describes how to read one of the array/object
// sub-encodings named in spec.md §3.1/§4.1: empty, equal-stride (no index
// table), or indexed (tail offset table of width 1/2/4/8).
type containerLayout struct {
	empty    bool
	indexed  bool
	width    int // width of the totalLen/count/index-table fields
}

func layoutFor(head byte) (containerLayout, error) {
	switch head {
	case headEmptyArray, headEmptyObject:
		return containerLayout{empty: true}, nil
	case headEqualArray, headEqualObject:
		return containerLayout{width: 8}, nil
	case headIdxArrayW1, headIdxObjectW1:
		return containerLayout{indexed: true, width: 1}, nil
	case headIdxArrayW2, headIdxObjectW2:
		return containerLayout{indexed: true, width: 2}, nil
	case headIdxArrayW4, headIdxObjectW4:
		return containerLayout{indexed: true, width: 4}, nil
	case headIdxArrayW8, headIdxObjectW8:
		return containerLayout{indexed: true, width: 8}, nil
	default:
		return containerLayout{}, newError(InternalError, "not a container head byte 0x%02x", head)
	}
}

// containerTotalLen reads the explicit total-byte-length field stored
// right after the head byte of a non-empty Array/Object.
func (s Slice) containerTotalLen() (uint64, error) {
	if s.Type() != Array && s.Type() != Object {
		return 0, s.invalidType("containerTotalLen")
	}
	lay, err := layoutFor(s.head())
	if err != nil {
		return 0, err
	}
	if lay.empty {
		return 1, nil
	}
	if len(s.data) < 1+lay.width {
		return 0, newError(InternalError, "truncated container length")
	}
	return readUintLE(s.data[1:1+lay.width], lay.width), nil
}

// containerCount reads the explicit entry-count field stored immediately
// after the total-length field.
func (s Slice) containerCount() (uint64, error) {
	lay, err := layoutFor(s.head())
	if err != nil {
		return 0, err
	}
	if lay.empty {
		return 0, nil
	}
	off := 1 + lay.width
	if len(s.data) < off+lay.width {
		return 0, newError(InternalError, "truncated container count")
	}
	return readUintLE(s.data[off:off+lay.width], lay.width), nil
}

// dataStart returns the byte offset (from the start of the container) at
// which the first member's bytes begin.
func dataStart(lay containerLayout) int {
	return 1 + lay.width + lay.width
}

// entryOffset returns the byte offset (from the start of the container)
// to the i-th member (the i-th value for an Array, the i-th key for an
// Object).
func (s Slice) entryOffset(i uint64, lay containerLayout, count uint64) (uint64, error) {
	if lay.width == 8 && !lay.indexed {
		// Equal-stride: every member (or, for Object, every key+value
		// pair) occupies the same number of bytes.
		total, err := s.containerTotalLen()
		if err != nil {
			return 0, err
		}
		start := uint64(dataStart(lay))
		if count == 0 {
			return 0, newError(InternalError, "equal-stride container has zero count")
		}
		stride := (total - start) / count
		return start + i*stride, nil
	}

	total, err := s.containerTotalLen()
	if err != nil {
		return 0, err
	}
	idxTableStart := total - count*uint64(lay.width)
	entryAt := idxTableStart + i*uint64(lay.width)
	if uint64(len(s.data)) < entryAt+uint64(lay.width) {
		return 0, newError(InternalError, "index table entry exceeds buffer")
	}
	return readUintLE(s.data[entryAt:entryAt+uint64(lay.width)], lay.width), nil
}

func (s Slice) memberAt(i uint64) (Slice, error) {
	if s.Type() != Array && s.Type() != Object {
		return Slice{}, s.invalidType("memberAt")
	}
	lay, err := layoutFor(s.head())
	if err != nil {
		return Slice{}, err
	}
	if lay.empty {
		return Slice{}, newError(IndexOutOfBounds, "index %d on empty container", i)
	}
	count, err := s.containerCount()
	if err != nil {
		return Slice{}, err
	}
	if i >= count {
		return Slice{}, newError(IndexOutOfBounds, "index %d >= length %d", i, count)
	}
	off, err := s.entryOffset(i, lay, count)
	if err != nil {
		return Slice{}, err
	}
	if uint64(len(s.data)) <= off {
		return Slice{}, newError(InternalError, "member offset exceeds buffer")
	}
	return Slice{data: s.data[off:]}, nil
}

// ArrayLength returns the number of elements in an Array.
func (s Slice) ArrayLength() (uint64, error) {
	if s.Type() != Array {
		return 0, s.invalidType("ArrayLength")
	}
	return s.containerCount()
}

// At returns the i-th element of an Array. IndexOutOfBounds if
// i >= ArrayLength().
func (s Slice) At(i uint64) (Slice, error) {
	if s.Type() != Array {
		return Slice{}, s.invalidType("At")
	}
	return s.memberAt(i)
}

// ObjectLength returns the number of entries in an Object.
func (s Slice) ObjectLength() (uint64, error) {
	if s.Type() != Object {
		return 0, s.invalidType("ObjectLength")
	}
	return s.containerCount()
}

// KeyAt returns the key Slice (always a String) of the i-th entry of an
// Object. IndexOutOfBounds if i >= ObjectLength().
func (s Slice) KeyAt(i uint64) (Slice, error) {
	if s.Type() != Object {
		return Slice{}, s.invalidType("KeyAt")
	}
	return s.memberAt(i)
}

// ValueAt returns the value Slice of the i-th entry of an Object.
// IndexOutOfBounds if i >= ObjectLength().
func (s Slice) ValueAt(i uint64) (Slice, error) {
	if s.Type() != Object {
		return Slice{}, s.invalidType("ValueAt")
	}
	key, err := s.KeyAt(i)
	if err != nil {
		return Slice{}, err
	}
	keySize, err := key.ByteSize()
	if err != nil {
		return Slice{}, err
	}
	return Slice{data: key.data[keySize:]}, nil
}

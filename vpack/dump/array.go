package dump

import "github.com/go-vpack/vpack"

// dumpArray renders s as a JSON array, recursing into dumpValue for each
// element. Pretty-printing (spec.md §4.5) splits elements across lines
// with a 2-space indent per depth; compact mode writes a single line with
// no extraneous whitespace.
func (d *Dumper) dumpArray(s, base vpack.Slice) error {
	n, err := s.ArrayLength()
	if err != nil {
		return err
	}
	if n == 0 {
		d.sink.Append([]byte("[]"))
		return nil
	}

	d.sink.PushByte('[')
	d.st.depth++
	for i := uint64(0); i < n; i++ {
		if i > 0 {
			d.sink.PushByte(',')
		}
		d.writeNewlineIndent()
		elem, err := s.At(i)
		if err != nil {
			return err
		}
		if err := d.dumpValue(elem, s); err != nil {
			return err
		}
	}
	d.st.depth--
	d.writeNewlineIndent()
	d.sink.PushByte(']')
	return nil
}

// writeNewlineIndent writes a newline plus the current indent when
// PrettyPrint is set; it is a no-op in compact mode.
func (d *Dumper) writeNewlineIndent() {
	if !d.opts.PrettyPrint {
		return
	}
	d.sink.PushByte('\n')
	for i := 0; i < d.st.depth; i++ {
		d.sink.Append([]byte("  "))
	}
}

package dump

import "github.com/go-vpack/vpack"

// dumpObject renders s as a JSON object. Keys are always rendered with
// the JSON string policy regardless of the active value policy (spec.md
// §4.4: only values switch dialect). Key order is preserved as stored;
// this dumper never sorts attribute names (spec.md §9 Open Question).
func (d *Dumper) dumpObject(s, base vpack.Slice) error {
	n, err := s.ObjectLength()
	if err != nil {
		return err
	}
	if n == 0 {
		d.sink.Append([]byte("{}"))
		return nil
	}

	d.sink.PushByte('{')
	d.st.depth++
	for i := uint64(0); i < n; i++ {
		if i > 0 {
			d.sink.PushByte(',')
		}
		d.writeNewlineIndent()

		key, err := s.KeyAt(i)
		if err != nil {
			return err
		}
		raw, err := key.GetString()
		if err != nil {
			return err
		}
		if err := d.writeEscapedString(raw); err != nil {
			return err
		}
		if d.opts.PrettyPrint {
			d.sink.PushByte(' ')
		}
		d.sink.PushByte(':')
		if d.opts.PrettyPrint {
			d.sink.PushByte(' ')
		}

		val, err := s.ValueAt(i)
		if err != nil {
			return err
		}
		if err := d.dumpValue(val, s); err != nil {
			return err
		}
	}
	d.st.depth--
	d.writeNewlineIndent()
	d.sink.PushByte('}')
	return nil
}

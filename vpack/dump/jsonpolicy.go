package dump

import "github.com/go-vpack/vpack"

// jsonPolicy is the plain-JSON valuePolicy: String renders as a quoted,
// escaped JSON string; UTCDate and Binary have no JSON equivalent and
// fall through to handleUnsupportedType; Custom is rendered by the
// caller-supplied CustomTypeHandler, or fails with NeedCustomTypeHandler
// if none was configured (spec.md §4.3).
type jsonPolicy struct{}

func (jsonPolicy) renderString(d *Dumper, s vpack.Slice) error {
	raw, err := s.GetString()
	if err != nil {
		return err
	}
	return d.writeEscapedString(raw)
}

func (jsonPolicy) renderUTCDate(d *Dumper, s vpack.Slice) error {
	return d.handleUnsupportedType(s, s)
}

func (jsonPolicy) renderBinary(d *Dumper, s vpack.Slice) error {
	return d.handleUnsupportedType(s, s)
}

func (jsonPolicy) renderCustom(d *Dumper, s, base vpack.Slice) error {
	if d.opts.CustomTypeHandler == nil {
		return &vpack.Error{Kind: vpack.NeedCustomTypeHandler, Msg: "Custom value with no CustomTypeHandler configured"}
	}
	return d.opts.CustomTypeHandler.DumpCustom(d, s, base)
}

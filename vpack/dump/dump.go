package dump

import (
	"math"
	"strconv"

	"github.com/go-vpack/vpack"
)

// valuePolicy renders the four value types that differ between the JSON
// and VJSON dialects (spec.md §9: "parametric over a value-rendering
// policy covering the four extended types"). Object/Array keys always use
// the JSON policy regardless of which policy is active for values.
type valuePolicy interface {
	renderString(d *Dumper, s vpack.Slice) error
	renderUTCDate(d *Dumper, s vpack.Slice) error
	renderBinary(d *Dumper, s vpack.Slice) error
	renderCustom(d *Dumper, s, base vpack.Slice) error
}

// Dumper walks a vpack.Slice tree and writes its JSON or VJSON rendering
// into a Sink (spec.md §3.3). A Dumper is re-entrant on disjoint Sinks:
// two Dumpers writing to disjoint Sinks over disjoint byte ranges may run
// concurrently with no coordination (spec.md §5).
type Dumper struct {
	sink   vpack.Sink
	opts   *Options
	st     *state
	policy valuePolicy
}

// NewJSONDumper returns a Dumper that renders plain JSON, delegating
// unrepresentable values to opts.UnsupportedBehavior.
func NewJSONDumper(sink vpack.Sink, opts *Options) *Dumper {
	return &Dumper{sink: sink, opts: opts, policy: jsonPolicy{}}
}

// NewVJSONDumper returns a Dumper that renders the VJSON dialect: String,
// UTCDate, Binary, and Custom values are wrapped in tagged string
// literals (spec.md §4.4); every other type renders exactly as JSON mode
// would. Object keys are always rendered as plain JSON strings regardless
// of dialect (see dumpObject).
func NewVJSONDumper(sink vpack.Sink, opts *Options) *Dumper {
	return &Dumper{sink: sink, opts: opts, policy: vjsonPolicy{}}
}

// Sink returns the Dumper's underlying Sink, for use by a
// CustomTypeHandler that needs to append bytes directly.
func (d *Dumper) Sink() vpack.Sink { return d.sink }

// Dump writes the rendering of root into the Dumper's Sink.
func (d *Dumper) Dump(root vpack.Slice) error {
	d.st = getState()
	defer func() {
		putState(d.st)
		d.st = nil
	}()
	return d.dumpValue(root, root)
}

// dumpValue is the recursive internal form of Dump; base is the enclosing
// container, passed through unchanged across External dereferences, and
// used only when a CustomTypeHandler asks for it (spec.md §4.3).
func (d *Dumper) dumpValue(s, base vpack.Slice) error {
	switch s.Type() {
	case vpack.Null:
		d.sink.Append([]byte("null"))
		return nil

	case vpack.Bool:
		v, err := s.GetBool()
		if err != nil {
			return err
		}
		if v {
			d.sink.Append([]byte("true"))
		} else {
			d.sink.Append([]byte("false"))
		}
		return nil

	case vpack.Double:
		v, err := s.GetDouble()
		if err != nil {
			return err
		}
		if isNonFinite(v) {
			return d.handleUnsupportedType(s, base)
		}
		d.appendDouble(v)
		return nil

	case vpack.Int, vpack.UInt, vpack.SmallInt:
		return d.dumpInteger(s)

	case vpack.String:
		return d.policy.renderString(d, s)

	case vpack.UTCDate:
		return d.policy.renderUTCDate(d, s)
		// Note: the JSON policy's renderUTCDate falls through to
		// handleUnsupportedType; only VJSON renders it directly.

	case vpack.Binary:
		return d.policy.renderBinary(d, s)

	case vpack.Custom:
		return d.policy.renderCustom(d, s, base)

	case vpack.Array:
		return d.dumpArray(s, base)

	case vpack.Object:
		return d.dumpObject(s, base)

	case vpack.External:
		target, err := s.GetExternal()
		if err != nil {
			return err
		}
		return d.dumpValue(target, base)

	case vpack.BCD:
		return &vpack.Error{Kind: vpack.NotImplemented, Msg: "BCD dumping is not implemented"}

	case vpack.None, vpack.Illegal, vpack.MinKey, vpack.MaxKey:
		return d.handleUnsupportedType(s, base)

	default:
		return &vpack.Error{Kind: vpack.InternalError, Msg: "unrecognized value type"}
	}
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// handleUnsupportedType implements spec.md §4.3.2.
func (d *Dumper) handleUnsupportedType(s, base vpack.Slice) error {
	switch d.opts.UnsupportedBehavior {
	case NullifyUnsupported:
		d.sink.Append([]byte("null"))
		return nil
	case ConvertUnsupported:
		vj := vjsonPolicy{}
		return d.dumpValueWithPolicy(s, base, vj)
	default: // FailOnUnsupported
		return &vpack.Error{Kind: vpack.NoJSONEquivalent, Msg: "no JSON equivalent for " + s.Type().String()}
	}
}

// dumpValueWithPolicy renders s under a one-off policy override, used only
// by handleUnsupportedType's ConvertUnsupported path (spec.md §4.3.2: it
// "delegates to the VJSON dialect for this single value," not for the
// whole remaining tree).
func (d *Dumper) dumpValueWithPolicy(s, base vpack.Slice, p valuePolicy) error {
	saved := d.policy
	d.policy = p
	defer func() { d.policy = saved }()
	return d.dumpValue(s, base)
}

func (d *Dumper) dumpInteger(s vpack.Slice) error {
	switch s.Type() {
	case vpack.UInt:
		v, err := s.GetUInt()
		if err != nil {
			return err
		}
		d.appendUint(v)
		return nil
	case vpack.Int:
		v, err := s.GetInt()
		if err != nil {
			return err
		}
		if v == math.MinInt64 {
			d.sink.Append([]byte("-9223372036854775808"))
			return nil
		}
		if v < 0 {
			d.sink.PushByte('-')
			v = -v
		}
		d.appendUint(uint64(v))
		return nil
	case vpack.SmallInt:
		v, err := s.GetSmallInt()
		if err != nil {
			return err
		}
		if v < 0 {
			d.sink.PushByte('-')
			v = -v
		}
		d.sink.PushByte('0' + byte(v))
		return nil
	}
	return &vpack.Error{Kind: vpack.InternalError, Msg: "dumpInteger called on a " + s.Type().String()}
}

// appendUint writes the decimal digits of v with no leading zeros (unless
// v itself is zero), grounded on original_source/src/Dumper.cpp's
// appendUInt (a cascade of threshold comparisons); strconv.AppendUint
// already produces exactly that output without the cascade, so this is
// the idiomatic Go restatement rather than a transliteration.
func (d *Dumper) appendUint(v uint64) {
	var buf [20]byte
	b := strconv.AppendUint(buf[:0], v, 10)
	d.sink.Append(b)
}

// appendDouble writes the shortest round-trip decimal representation of
// v, matching original_source/src/Dumper.cpp's use of fpconv_dtoa (a
// Grisu-class shortest-float algorithm). strconv.AppendFloat with
// precision -1 is Go's standard library equivalent.
func (d *Dumper) appendDouble(v float64) {
	var buf [32]byte
	b := strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
	d.sink.Append(b)
}

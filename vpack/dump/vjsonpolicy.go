package dump

import (
	"encoding/base64"
	"time"

	"github.com/go-vpack/vpack"
)

// vjsonPolicy is the VJSON valuePolicy (spec.md §4.4): String, UTCDate,
// Binary, and Custom values are all rendered as tagged JSON strings so
// that a reader can losslessly recover the original VPack type. Base64
// payloads are written without '=' padding, matching
// original_source/src/Dumper.cpp's VJsonDumper::dumpBinary.
type vjsonPolicy struct{}

func (vjsonPolicy) renderString(d *Dumper, s vpack.Slice) error {
	raw, err := s.GetString()
	if err != nil {
		return err
	}
	d.sink.Append([]byte(`"s:`))
	if err := d.writeEscapedStringBody(raw); err != nil {
		return err
	}
	d.sink.PushByte('"')
	return nil
}

func (vjsonPolicy) renderUTCDate(d *Dumper, s vpack.Slice) error {
	ms, err := s.GetUTCDate()
	if err != nil {
		return err
	}
	t := time.UnixMilli(ms).UTC()
	d.sink.Append([]byte(`"d:`))
	d.sink.Append([]byte(t.Format("2006-01-02T15:04:05.000Z")))
	d.sink.PushByte('"')
	return nil
}

func (vjsonPolicy) renderBinary(d *Dumper, s vpack.Slice) error {
	raw, err := s.GetBinary()
	if err != nil {
		return err
	}
	d.sink.Append([]byte(`"b:`))
	d.sink.Append([]byte(base64.RawStdEncoding.EncodeToString(raw)))
	d.sink.PushByte('"')
	return nil
}

// renderCustom serializes the Custom value's full byte range (head byte
// through its declared end), not just its payload, matching
// VJsonDumper::dumpValue's handling of Custom in the original dumper.
func (vjsonPolicy) renderCustom(d *Dumper, s, base vpack.Slice) error {
	raw, err := s.Raw()
	if err != nil {
		return err
	}
	d.sink.Append([]byte(`"c:`))
	d.sink.Append([]byte(base64.RawStdEncoding.EncodeToString(raw)))
	d.sink.PushByte('"')
	return nil
}

package dump_test

import (
	"math"
	"testing"

	"github.com/go-vpack/vpack"
	"github.com/go-vpack/vpack/dump"
	"github.com/go-vpack/vpack/internal/vpbuild"
)

func dumpJSON(t *testing.T, raw []byte, opts ...dump.Option) string {
	t.Helper()
	s, err := vpack.New(raw)
	if err != nil {
		t.Fatalf("vpack.New: %v", err)
	}
	sink := vpack.NewByteSink(64)
	d := dump.NewJSONDumper(sink, dump.NewOptions(opts...))
	if err := d.Dump(s); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	return sink.String()
}

func dumpJSONErr(t *testing.T, raw []byte, opts ...dump.Option) error {
	t.Helper()
	s, err := vpack.New(raw)
	if err != nil {
		t.Fatalf("vpack.New: %v", err)
	}
	sink := vpack.NewByteSink(64)
	d := dump.NewJSONDumper(sink, dump.NewOptions(opts...))
	return d.Dump(s)
}

func dumpVJSON(t *testing.T, raw []byte, opts ...dump.Option) string {
	t.Helper()
	s, err := vpack.New(raw)
	if err != nil {
		t.Fatalf("vpack.New: %v", err)
	}
	sink := vpack.NewByteSink(64)
	d := dump.NewVJSONDumper(sink, dump.NewOptions(opts...))
	if err := d.Dump(s); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	return sink.String()
}

// Scenario 1: SmallInt(0) -> "0", SmallInt(-1) -> "-1", SmallInt(9) -> "9".
func TestSmallIntScenario(t *testing.T) {
	tests := []struct {
		v    int64
		want string
	}{
		{0, "0"},
		{-1, "-1"},
		{9, "9"},
	}
	for _, tt := range tests {
		got := dumpJSON(t, vpbuild.SmallInt(tt.v))
		if got != tt.want {
			t.Errorf("SmallInt(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

// Scenario 2: Int(INT64_MIN) -> "-9223372036854775808", UInt(max) -> its
// full decimal text.
func TestIntUintBoundaryScenario(t *testing.T) {
	if got := dumpJSON(t, vpbuild.Int(math.MinInt64)); got != "-9223372036854775808" {
		t.Errorf("Int(MinInt64) = %q, want %q", got, "-9223372036854775808")
	}
	if got := dumpJSON(t, vpbuild.UInt(math.MaxUint64)); got != "18446744073709551615" {
		t.Errorf("UInt(MaxUint64) = %q, want %q", got, "18446744073709551615")
	}
}

// Scenario 3: Double(1.5) -> "1.5"; Double(NaN) fails under
// FailOnUnsupported and renders "null" under NullifyUnsupported.
func TestDoubleScenario(t *testing.T) {
	if got := dumpJSON(t, vpbuild.Double(1.5)); got != "1.5" {
		t.Errorf("Double(1.5) = %q, want %q", got, "1.5")
	}

	err := dumpJSONErr(t, vpbuild.Double(math.NaN()))
	if err == nil {
		t.Fatal("Double(NaN) under FailOnUnsupported: want error, got nil")
	}
	if e, ok := err.(*vpack.Error); !ok || e.Kind != vpack.NoJSONEquivalent {
		t.Errorf("Double(NaN) error = %v, want NoJSONEquivalent", err)
	}

	got := dumpJSON(t, vpbuild.Double(math.NaN()), dump.WithUnsupportedBehavior(dump.NullifyUnsupported))
	if got != "null" {
		t.Errorf("Double(NaN) under NullifyUnsupported = %q, want %q", got, "null")
	}
}

// Scenario 4: String("a/b") escapes '/' only when requested.
func TestForwardSlashEscapeScenario(t *testing.T) {
	if got := dumpJSON(t, vpbuild.Str("a/b")); got != `"a/b"` {
		t.Errorf("escapeForwardSlashes=false: got %q, want %q", got, `"a/b"`)
	}
	if got := dumpJSON(t, vpbuild.Str("a/b"), dump.WithEscapeForwardSlashes(true)); got != `"a\/b"` {
		t.Errorf("escapeForwardSlashes=true: got %q, want %q", got, `"a\/b"`)
	}
}

// Scenario 5: String("€") passes through verbatim or escapes to \u20AC.
func TestUnicodeEscapeScenario(t *testing.T) {
	if got := dumpJSON(t, vpbuild.Str("€")); got != `"€"` {
		t.Errorf("escapeUnicode=false: got %q, want %q", got, `"€"`)
	}
	wantEscaped := "\"\\u20AC\""
	if got := dumpJSON(t, vpbuild.Str("€"), dump.WithEscapeUnicode(true)); got != wantEscaped {
		t.Errorf("escapeUnicode=true: got %q, want %q", got, wantEscaped)
	}
}

// Scenario 6: String("😀") (U+1F600) escapes to a UTF-16 surrogate pair
// (high d83d, low de00).
func TestSurrogatePairScenario(t *testing.T) {
	got := dumpJSON(t, vpbuild.Str("😀"), dump.WithEscapeUnicode(true))
	want := "\"\\uD83D\\uDE00\""
	if got != want {
		t.Errorf("String(😀) escaped = %q, want %q", got, want)
	}
}

// Scenario 7: Object{"b":1,"a":2} compact and pretty forms.
func TestObjectCompactAndPretty(t *testing.T) {
	raw := vpbuild.Object([]string{"b", "a"}, [][]byte{vpbuild.SmallInt(1), vpbuild.SmallInt(2)})

	if got := dumpJSON(t, raw); got != `{"b":1,"a":2}` {
		t.Errorf("compact = %q, want %q", got, `{"b":1,"a":2}`)
	}

	want := "{\n  \"b\" : 1,\n  \"a\" : 2\n}"
	if got := dumpJSON(t, raw, dump.WithPrettyPrint(true)); got != want {
		t.Errorf("pretty = %q, want %q", got, want)
	}
}

// Scenario 8: empty Array and Object are identical in compact and pretty.
func TestEmptyContainerScenario(t *testing.T) {
	if got := dumpJSON(t, vpbuild.Array(nil)); got != "[]" {
		t.Errorf("empty array compact = %q, want %q", got, "[]")
	}
	if got := dumpJSON(t, vpbuild.Array(nil), dump.WithPrettyPrint(true)); got != "[]" {
		t.Errorf("empty array pretty = %q, want %q", got, "[]")
	}
	if got := dumpJSON(t, vpbuild.Object(nil, nil)); got != "{}" {
		t.Errorf("empty object compact = %q, want %q", got, "{}")
	}
	if got := dumpJSON(t, vpbuild.Object(nil, nil), dump.WithPrettyPrint(true)); got != "{}" {
		t.Errorf("empty object pretty = %q, want %q", got, "{}")
	}
}

// Scenario 9: Binary(0x00 0xFF) renders as unpadded base64 in VJSON.
func TestBinaryVJSONScenario(t *testing.T) {
	got := dumpVJSON(t, vpbuild.Binary([]byte{0x00, 0xff}))
	want := `"b:AP8"`
	if got != want {
		t.Errorf("Binary VJSON = %q, want %q", got, want)
	}
}

// Scenario 10: UTCDate(0) renders as an ISO-8601 millisecond timestamp in
// VJSON.
func TestUTCDateVJSONScenario(t *testing.T) {
	got := dumpVJSON(t, vpbuild.UTCDate(0))
	want := `"d:1970-01-01T00:00:00.000Z"`
	if got != want {
		t.Errorf("UTCDate VJSON = %q, want %q", got, want)
	}
}

// UTCDate under plain JSON has no equivalent and fails by default.
func TestUTCDateJSONUnsupported(t *testing.T) {
	err := dumpJSONErr(t, vpbuild.UTCDate(0))
	if err == nil {
		t.Fatal("UTCDate under JSON FailOnUnsupported: want error, got nil")
	}
	if e, ok := err.(*vpack.Error); !ok || e.Kind != vpack.NoJSONEquivalent {
		t.Errorf("UTCDate JSON error = %v, want NoJSONEquivalent", err)
	}
}

// Custom values in JSON mode need a registered handler.
func TestCustomNeedsHandler(t *testing.T) {
	err := dumpJSONErr(t, vpbuild.Custom(0xf0, []byte("payload")))
	if err == nil {
		t.Fatal("Custom with no handler: want error, got nil")
	}
	if e, ok := err.(*vpack.Error); !ok || e.Kind != vpack.NeedCustomTypeHandler {
		t.Errorf("Custom error = %v, want NeedCustomTypeHandler", err)
	}
}

type literalHandler struct{}

func (literalHandler) DumpCustom(d *dump.Dumper, slice, base vpack.Slice) error {
	payload, err := slice.CustomPayload()
	if err != nil {
		return err
	}
	d.Sink().PushByte('"')
	d.Sink().Append(payload)
	d.Sink().PushByte('"')
	return nil
}

// A registered CustomTypeHandler renders Custom values in JSON mode.
func TestCustomWithHandler(t *testing.T) {
	got := dumpJSON(t, vpbuild.Custom(0xf0, []byte("ab")), dump.WithCustomTypeHandler(literalHandler{}))
	if got != `"ab"` {
		t.Errorf("Custom with handler = %q, want %q", got, `"ab"`)
	}
}

// Custom values in VJSON mode serialize their full byte range regardless
// of any configured handler.
func TestCustomVJSONIgnoresHandler(t *testing.T) {
	got := dumpVJSON(t, vpbuild.Custom(0xf0, []byte("ab")), dump.WithCustomTypeHandler(literalHandler{}))
	if len(got) < 4 || got[:3] != `"c:` {
		t.Errorf("Custom VJSON = %q, want prefix %q", got, `"c:`)
	}
}

// Nested containers round-trip through the dumper recursively.
func TestNestedContainers(t *testing.T) {
	inner := vpbuild.Array([][]byte{vpbuild.SmallInt(1), vpbuild.SmallInt(2)})
	raw := vpbuild.Object([]string{"nums"}, [][]byte{inner})
	got := dumpJSON(t, raw)
	want := `{"nums":[1,2]}`
	if got != want {
		t.Errorf("nested = %q, want %q", got, want)
	}
}

// BCD always fails with NotImplemented.
func TestBCDNotImplemented(t *testing.T) {
	err := dumpJSONErr(t, vpbuild.BCD())
	if err == nil {
		t.Fatal("BCD: want error, got nil")
	}
	if e, ok := err.(*vpack.Error); !ok || e.Kind != vpack.NotImplemented {
		t.Errorf("BCD error = %v, want NotImplemented", err)
	}
}

package dump_test

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/go-vpack/vpack"
	"github.com/go-vpack/vpack/dump"
	"github.com/go-vpack/vpack/internal/vpbuild"
)

// TestVJSONRoundTripTags builds an object with one field of each extended
// type, dumps it in VJSON, and uses gjson to assert every field carries
// its dialect tag, then edits one field with sjson to confirm the
// resulting document still parses.
func TestVJSONRoundTripTags(t *testing.T) {
	raw := vpbuild.Object(
		[]string{"name", "created", "blob", "ext"},
		[][]byte{
			vpbuild.Str("vpack"),
			vpbuild.UTCDate(0),
			vpbuild.Binary([]byte{0x00, 0xff}),
			vpbuild.Custom(0xf0, []byte("xy")),
		},
	)

	got := dumpVJSON(t, raw)

	if !gjson.Valid(got) {
		t.Fatalf("VJSON output is not valid JSON: %s", got)
	}

	name := gjson.Get(got, "name").String()
	if !strings.HasPrefix(name, "s:") {
		t.Errorf("name = %q, want s: prefix", name)
	}
	created := gjson.Get(got, "created").String()
	if !strings.HasPrefix(created, "d:") {
		t.Errorf("created = %q, want d: prefix", created)
	}
	blob := gjson.Get(got, "blob").String()
	if !strings.HasPrefix(blob, "b:") {
		t.Errorf("blob = %q, want b: prefix", blob)
	}
	ext := gjson.Get(got, "ext").String()
	if !strings.HasPrefix(ext, "c:") {
		t.Errorf("ext = %q, want c: prefix", ext)
	}

	edited, err := sjson.Set(got, "name", "s:renamed")
	if err != nil {
		t.Fatalf("sjson.Set: %v", err)
	}
	if gjson.Get(edited, "name").String() != "s:renamed" {
		t.Errorf("edited name = %q, want %q", gjson.Get(edited, "name").String(), "s:renamed")
	}
}

// Arrays of plain JSON-representable values dump identically whether
// accessed via the dump package directly or inspected afterward with
// gjson.
func TestJSONThenQueryWithGjson(t *testing.T) {
	raw := vpbuild.Object([]string{"items"}, [][]byte{
		vpbuild.Array([][]byte{vpbuild.SmallInt(1), vpbuild.SmallInt(2), vpbuild.SmallInt(3)}),
	})

	s, err := vpack.New(raw)
	if err != nil {
		t.Fatalf("vpack.New: %v", err)
	}
	sink := vpack.NewByteSink(64)
	d := dump.NewJSONDumper(sink, dump.NewOptions())
	if err := d.Dump(s); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	res := gjson.GetBytes(sink.Bytes(), "items.1")
	if res.Int() != 2 {
		t.Errorf("items.1 = %v, want 2", res.Int())
	}
}

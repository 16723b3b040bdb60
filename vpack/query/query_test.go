package query_test

import (
	"testing"

	"github.com/go-vpack/vpack"
	"github.com/go-vpack/vpack/dump"
	"github.com/go-vpack/vpack/internal/vpbuild"
	"github.com/go-vpack/vpack/query"
)

func TestGetOverJSONOutput(t *testing.T) {
	raw := vpbuild.Object([]string{"name", "count"}, [][]byte{
		vpbuild.Str("widget"),
		vpbuild.SmallInt(3),
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

	res := query.Get(sink.Bytes(), "name")
	if !res.Exists() {
		t.Fatal("name: want match, got none")
	}
	if res.String() != "widget" {
		t.Errorf("name = %q, want %q", res.String(), "widget")
	}

	if !query.Get(sink.Bytes(), "count").Exists() {
		t.Fatal("count: want match, got none")
	}

	if query.Get(sink.Bytes(), "missing").Exists() {
		t.Error("missing: want no match, got one")
	}
}

func TestGetOverVJSONOutput(t *testing.T) {
	raw := vpbuild.Object([]string{"created"}, [][]byte{vpbuild.UTCDate(0)})
	s, err := vpack.New(raw)
	if err != nil {
		t.Fatalf("vpack.New: %v", err)
	}
	sink := vpack.NewByteSink(64)
	d := dump.NewVJSONDumper(sink, dump.NewOptions())
	if err := d.Dump(s); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	res := query.Get(sink.Bytes(), "created")
	if res.String() != "d:1970-01-01T00:00:00.000Z" {
		t.Errorf("created = %q, want %q", res.String(), "d:1970-01-01T00:00:00.000Z")
	}
}

func TestDumpAndGet(t *testing.T) {
	raw := vpbuild.Object([]string{"x"}, [][]byte{vpbuild.SmallInt(5)})
	s, err := vpack.New(raw)
	if err != nil {
		t.Fatalf("vpack.New: %v", err)
	}
	sink := vpack.NewByteSink(64)
	d := dump.NewJSONDumper(sink, dump.NewOptions())

	res, err := query.DumpAndGet(d, s, sink, "x")
	if err != nil {
		t.Fatalf("DumpAndGet: %v", err)
	}
	if res.Raw() != "5" {
		t.Errorf("x = %q, want %q", res.Raw(), "5")
	}
}

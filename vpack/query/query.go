// Package query provides post-dump inspection of a Dumper's JSON output,
// so callers can pull a single field out of a rendered document without
// re-parsing it into a generic interface{} tree.
package query

import (
	"github.com/tidwall/gjson"

	"github.com/go-vpack/vpack"
)

// Result wraps the matched gjson.Result, exposing just the accessors a
// caller of this package needs without leaking the gjson type directly
// into every call site.
type Result struct {
	r gjson.Result
}

// Exists reports whether path matched anything in the document.
func (res Result) Exists() bool { return res.r.Exists() }

// String returns the matched value as a string (gjson's usual conversion
// rules apply for non-string JSON values).
func (res Result) String() string { return res.r.String() }

// Raw returns the matched value's raw JSON text, exactly as it appeared
// in the document.
func (res Result) Raw() string { return res.r.Raw }

// Get evaluates a gjson path expression against jsonDoc, the output of a
// dump.Dumper. path syntax is gjson's: dotted field access, numeric array
// indices, and the library's wildcard/query extensions.
//
// Get operates purely on already-rendered JSON text; it never touches a
// vpack.Slice directly. Callers needing both the dumper and the query in
// one step go through DumpAndGet.
func Get(jsonDoc []byte, path string) Result {
	return Result{r: gjson.GetBytes(jsonDoc, path)}
}

// Dumper is the subset of dump.Dumper's behavior DumpAndGet needs: render
// root into a Sink that can also yield its accumulated bytes. This keeps
// the query package from importing vpack/dump and creating a cycle risk
// with any future dump-side helper that wants to query its own output.
type Dumper interface {
	Dump(root vpack.Slice) error
}

// byteSinker is satisfied by vpack.ByteSink; DumpAndGet takes it as its
// own parameter rather than widening Sink's interface just for this one case.
type byteSinker interface {
	Bytes() []byte
}

// DumpAndGet dumps root through d into sink, then evaluates path against
// the result. sink must also implement Bytes() []byte (vpack.ByteSink
// does); this is the convenience path for callers who do not already
// have rendered JSON sitting around.
func DumpAndGet(d Dumper, root vpack.Slice, sink byteSinker, path string) (Result, error) {
	if err := d.Dump(root); err != nil {
		return Result{}, err
	}
	return Get(sink.Bytes(), path), nil
}

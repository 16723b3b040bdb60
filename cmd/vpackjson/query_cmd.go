package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-vpack/vpack/query"
)

// runQuery implements `query OUTFILE PATH`, a thin exercise of the
// vpack/query gjson wiring over a file a prior `dump` produced.
func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("query requires OUTFILE and PATH")
	}
	outfile, path := fs.Arg(0), fs.Arg(1)

	var raw []byte
	var err error
	if outfile == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(outfile)
	}
	if err != nil {
		return err
	}

	res := query.Get(raw, path)
	if !res.Exists() {
		return fmt.Errorf("path %q not found in %s", path, outfile)
	}
	fmt.Println(res.String())
	return nil
}

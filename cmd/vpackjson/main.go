// Command vpackjson converts VPack documents to JSON or VJSON, the
// command-line host around the vpack/dump engineering core (spec.md §1,
// §6; SPEC_FULL.md §6).
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "dump":
		err = runDump(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "query":
		err = runQuery(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "vpackjson:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  vpackjson dump INFILE OUTFILE [flags]
  vpackjson batch INFILE... --out DIR [flags]
  vpackjson query OUTFILE PATH`)
}

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/go-vpack/vpack"
	"github.com/go-vpack/vpack/dump"
)

// parseUnsupportedBehavior maps the --unsupported flag value to the
// dump.UnsupportedBehavior it selects (spec.md §3.4, §4.3.2).
func parseUnsupportedBehavior(s string) (dump.UnsupportedBehavior, error) {
	switch s {
	case "fail":
		return dump.FailOnUnsupported, nil
	case "null":
		return dump.NullifyUnsupported, nil
	case "convert":
		return dump.ConvertUnsupported, nil
	default:
		return 0, fmt.Errorf("unknown --unsupported value %q, want fail|null|convert", s)
	}
}

// runDump implements the single-file `dump INFILE OUTFILE` command, the
// direct Go-native restatement of original_source/src/jsonize.cpp's main.
func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	pretty := fs.Bool("pretty", false, "pretty-print the JSON output (default: auto-detected from stdout)")
	vjson := fs.Bool("vjson", false, "render the VJSON dialect instead of plain JSON")
	escapeUnicode := fs.Bool("escape-unicode", false, "escape non-ASCII codepoints as \\uXXXX")
	escapeSlashes := fs.Bool("escape-slashes", false, "escape forward slashes as \\/")
	unsupported := fs.String("unsupported", "fail", "behavior for values with no JSON equivalent: fail|null|convert")
	logFile := fs.String("log-file", "", "rotate structured logs to this file instead of stderr")
	debugTree := fs.Bool("debug-tree", false, "dump the decoded Slice tree with go-spew before converting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("dump requires INFILE and OUTFILE")
	}
	infile, outfile := fs.Arg(0), fs.Arg(1)

	behavior, err := parseUnsupportedBehavior(*unsupported)
	if err != nil {
		return err
	}

	log := newLogger(*logFile)
	entry := log.WithFields(logrus.Fields{
		"request_id": uuid.New().String(),
		"infile":     infile,
		"outfile":    outfile,
	})

	raw, err := os.ReadFile(infile)
	if err != nil {
		entry.WithError(err).Error("read input failed")
		return err
	}

	root, err := vpack.New(raw)
	if err != nil {
		entry.WithError(err).Error("parse input failed")
		return err
	}

	if *debugTree {
		spew.Fdump(os.Stderr, root)
	}

	usePretty := *pretty
	if !isFlagSet(fs, "pretty") {
		usePretty = isatty.IsTerminal(os.Stdout.Fd())
	}

	opts := dump.NewOptions(
		dump.WithPrettyPrint(usePretty),
		dump.WithEscapeUnicode(*escapeUnicode),
		dump.WithEscapeForwardSlashes(*escapeSlashes),
		dump.WithUnsupportedBehavior(behavior),
	)

	sink := vpack.NewByteSink(len(raw) * 2)
	var d *dump.Dumper
	if *vjson {
		d = dump.NewVJSONDumper(sink, opts)
	} else {
		d = dump.NewJSONDumper(sink, opts)
	}

	if err := d.Dump(root); err != nil {
		entry.WithError(err).Error("dump failed")
		return err
	}

	out, err := os.Create(outfile)
	if err != nil {
		entry.WithError(err).Error("create output failed")
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if _, err := w.Write(sink.Bytes()); err != nil {
		entry.WithError(err).Error("write output failed")
		return err
	}
	if err := w.Flush(); err != nil {
		entry.WithError(err).Error("flush output failed")
		return err
	}

	entry.WithFields(logrus.Fields{
		"bytes_in":  len(raw),
		"bytes_out": sink.Len(),
	}).Info("dump complete")
	fmt.Printf("vpack: %s -> %s\n", humanize.Bytes(uint64(len(raw))), humanize.Bytes(uint64(sink.Len())))
	return nil
}

// isFlagSet reports whether name was explicitly passed on the command
// line, so --pretty's default can fall back to terminal detection only
// when the caller didn't state a preference.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

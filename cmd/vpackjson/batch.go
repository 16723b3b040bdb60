package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/go-vpack/vpack"
	"github.com/go-vpack/vpack/dump"
)

// runBatch implements `batch INFILE... --out DIR`, converting every input
// file independently on a bounded worker pool (SPEC_FULL.md §5/§6). Each
// worker builds its own root Slice and Sink, so no mutable state crosses
// goroutines beyond the pool's own error collection.
func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	outDir := fs.String("out", "", "output directory (required)")
	jobs := fs.Int("jobs", 0, "maximum concurrent conversions (default GOMAXPROCS)")
	pretty := fs.Bool("pretty", false, "pretty-print the JSON output")
	vjson := fs.Bool("vjson", false, "render the VJSON dialect instead of plain JSON")
	unsupported := fs.String("unsupported", "fail", "behavior for values with no JSON equivalent: fail|null|convert")
	logFile := fs.String("log-file", "", "rotate structured logs to this file instead of stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outDir == "" || fs.NArg() == 0 {
		return fmt.Errorf("batch requires --out DIR and at least one INFILE")
	}

	behavior, err := parseUnsupportedBehavior(*unsupported)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	log := newLogger(*logFile)
	batchEntry := log.WithField("batch_id", uuid.New().String())

	maxGoroutines := *jobs
	if maxGoroutines <= 0 {
		maxGoroutines = runtime.GOMAXPROCS(0)
	}

	opts := dump.NewOptions(
		dump.WithPrettyPrint(*pretty),
		dump.WithUnsupportedBehavior(behavior),
	)

	p := pool.New().WithMaxGoroutines(maxGoroutines).WithErrors()
	for _, infile := range fs.Args() {
		infile := infile
		p.Go(func() error {
			return convertOne(infile, *outDir, *vjson, opts, batchEntry)
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	fmt.Printf("vpack: converted %d files into %s\n", fs.NArg(), *outDir)
	return nil
}

func convertOne(infile, outDir string, vjson bool, opts *dump.Options, batchEntry *logrus.Entry) error {
	entry := batchEntry.WithField("infile", infile)

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

	sink := vpack.NewByteSink(len(raw) * 2)
	var d *dump.Dumper
	if vjson {
		d = dump.NewVJSONDumper(sink, opts)
	} else {
		d = dump.NewJSONDumper(sink, opts)
	}

	if err := d.Dump(root); err != nil {
		entry.WithError(err).Error("dump failed")
		return err
	}

	outfile := filepath.Join(outDir, filepath.Base(infile)+".json")
	if err := os.WriteFile(outfile, sink.Bytes(), 0o644); err != nil {
		entry.WithError(err).Error("write output failed")
		return err
	}

	entry.WithField("bytes_out", humanize.Bytes(uint64(sink.Len()))).Info("converted")
	return nil
}

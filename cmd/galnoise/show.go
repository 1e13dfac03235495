package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/galnoise/report"
)

func runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: galnoise show report.msgpack ...\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no report given")
	}

	for i, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		rep, err := report.Decode(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s  run %s  created %s\n", path, rep.RunID, rep.Created.UTC().Format("2006-01-02 15:04:05"))
		if rep.Stats != nil {
			fmt.Printf("events %d  processed %d  skipped %d\n", rep.Stats.Events, rep.Stats.Processed, rep.Stats.Skipped)
		}
		if err := rep.WriteTable(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

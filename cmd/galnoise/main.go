// Command galnoise estimates antenna noise floors and fits their sidereal
// modulation.
//
// Usage:
//
//	galnoise <command> [flags]
//
// Commands:
//
//	estimate   waveform parquet → noise archive (rms{antenna}{channel})
//	fit        noise archive → MessagePack report and table
//	spectrum   waveform parquet → averaged spectra in dBm/Hz
//	show       print the table of a report
//
// Examples:
//
//	galnoise estimate -in waves.parquet -out noise.parquet
//	galnoise fit -in noise.parquet -out report.msgpack -start 2022-11-26 -end 2023-09-25
//	galnoise spectrum -in waves.parquet -step 32
//	galnoise show report.msgpack
package main

import (
	"fmt"
	"os"
)

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"estimate", "estimate noise floors of a waveform file", runEstimate},
	{"fit", "clean, smooth and fit a noise archive", runFit},
	{"spectrum", "average the spectra of a waveform file", runSpectrum},
	{"show", "print a report table", runShow},
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: galnoise <command> [flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(os.Stderr, "\nRun 'galnoise <command> -h' for command flags.\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if name != "-h" && name != "-help" && name != "help" {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", name)
	}
	usage()
	os.Exit(2)
}

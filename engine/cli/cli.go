// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli provides a command-line interface for the COMEHERE
// transformer: a single flag.FlagSet, stdin-or--file input, and an exit
// code that reflects whether the run produced errors.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/mikesamuel/comehere/diag"
	"github.com/mikesamuel/comehere/engine"
)

const useHelp = "Run 'comehere -help' for more information.\n"

func printHelp(flags *flag.FlagSet, stderr io.Writer) {
	fmt.Fprintln(stderr, `Transform a COMEHERE source file.
Usage: comehere [<flag> ...]

Each <flag> must be one of the following:`)
	flags.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(stderr, "    -%-8s %s\n", f.Name, f.Usage)
	})
}

// jsonOutput is what -json writes to stdout: {code, blocks}, where
// blocks[i] is goal i's description (or null) and blocks[0] is always
// null.
type jsonOutput struct {
	Code   string    `json:"code"`
	Blocks []*string `json:"blocks"`
}

// sink forwards diag.Log entries to stderr as they're produced: warnings
// and errors always, informational entries only when -v is given.
type sink struct {
	w       io.Writer
	verbose bool
}

func (s *sink) Info(msg string) {
	if s.verbose {
		fmt.Fprintln(s.w, "Info:", msg)
	}
}
func (s *sink) Warn(msg string)  { fmt.Fprintln(s.w, "Warning:", msg) }
func (s *sink) Error(msg string) { fmt.Fprintln(s.w, "Error:", msg) }

// Run runs the COMEHERE command-line interface. Typical usage is
//
//	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args))
//
// All arguments must be non-nil, and args[0] is required.
func Run(stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	flags := flag.NewFlagSet("comehere", flag.ContinueOnError)

	fileFlag := flags.String("file", "",
		"File containing COMEHERE source (default: standard input)")
	writeFlag := flags.Bool("w", false,
		"Modify the input file on disk instead of writing to standard output (requires -file)")
	jsonFlag := flags.Bool("json", false,
		"Write {code, blocks} as JSON instead of plain source text")
	verboseFlag := flags.Bool("v", false,
		"Verbose: also print informational diagnostics as they're produced")
	listFlag := flags.Bool("list", false,
		"List the transformer's fixed pass pipeline and exit")

	flags.Usage = func() { fmt.Fprint(stderr, useHelp) }
	flags.SetOutput(stderr)
	if err := flags.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			printHelp(flags, stderr)
			return 2
		}
		return 1
	}

	if *listFlag {
		for _, p := range engine.Passes() {
			fmt.Fprintln(stderr, p.Name())
		}
		return 0
	}

	if *writeFlag && *fileFlag == "" {
		fmt.Fprintln(stderr, "Error: The -w flag requires -file.")
		return 1
	}

	var src []byte
	var err error
	if *fileFlag != "" {
		src, err = ioutil.ReadFile(*fileFlag)
	} else {
		src, err = ioutil.ReadAll(stdin)
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	result, err := engine.Transform(string(src), &sink{w: stderr, verbose: *verboseFlag})
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	for _, e := range result.Log.Entries {
		if e.Severity != diag.Info || *verboseFlag {
			fmt.Fprintln(stderr, e.String())
		}
	}

	switch {
	case *writeFlag:
		if err := ioutil.WriteFile(*fileFlag, []byte(result.Code), 0644); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
	case *jsonFlag:
		enc := json.NewEncoder(stdout)
		if err := enc.Encode(jsonOutput{Code: result.Code, Blocks: result.Descriptions}); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
	default:
		fmt.Fprint(stdout, result.Code)
	}

	if result.Log.ContainsErrors() {
		return 3
	}
	return 0
}

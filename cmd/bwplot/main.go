// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Bwplot plots the results of the cache/memory bandwidth benchmark.
//
// Usage:
//
//	bwplot [-http addr] [-v] result_file.csv [display|png]
//
// The input is the CSV printed by the bandwidth benchmark: a header
// row followed by one row per measurement with at least the columns
// test_name, stride, number_of_accesses, read_cycles and write_cycles.
//
// Bwplot draws a 2×2 grid of average throughput (bytes/cycle) against
// test size (kiB): linear and random accesses on the top row, strided
// reads and writes (one line per stride) on the bottom row.
//
// With "display" (the default) the figure is shown in a window. With
// "png" it is written to result_file.csv.png instead. Any other output
// format prints a warning and falls back to display.
//
// The -http flag shows the figure on a local web server at addr
// instead of a window, for machines without a display.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bwperf/bwperf/bwchart"
	"github.com/bwperf/bwperf/bwfmt"
	"github.com/bwperf/bwperf/bwproc"
	"github.com/bwperf/bwperf/bwstat"
)

// Replaced during testing.
var (
	display = showWindow
	serve   = serveHTTP
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args))
}

// run runs bwplot with the given command line (args[0] is the program
// name) and returns the exit status.
func run(stdout, stderr io.Writer, args []string) int {
	err := bwplot(stdout, stderr, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	}
	l := log.New(stderr, "bwplot: ", 0)
	l.Print(err)
	return 1
}

func bwplot(stdout, stderr io.Writer, args []string) error {
	prog := args[0]
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flagHTTP := fs.String("http", "", "show the figure on a web server at `address` instead of a window")
	flagVerbose := fs.Bool("v", false, "log what is plotted")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <result_file.csv> [<display/png>]\n", prog)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(stdout, "Usage: %s <result_file.csv> [<display/png>]\n", prog)
		return nil
	}
	path := fs.Arg(0)

	mode := bwchart.Display
	if fs.NArg() >= 2 {
		m, ok := bwchart.ParseMode(fs.Arg(1))
		if ok {
			mode = m
		} else {
			fmt.Fprintf(stdout, "Unknown output format: %s. Defaulting to display.\n", fs.Arg(1))
		}
	}

	logger := log.New(io.Discard, "bwplot: ", 0)
	if *flagVerbose {
		logger.SetOutput(stderr)
	}

	res, err := bwfmt.Load(path)
	if err != nil {
		return err
	}
	if *flagVerbose {
		counts, err := bwproc.Counts(res)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, c := range counts {
			logger.Printf("%s: %d %s results", path, c.Rows, c.Name)
		}
	}

	fig, err := bwchart.NewFigure(res, bwchart.Title(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if *flagVerbose {
		for i := range fig.Plots {
			for j, p := range fig.Plots[i] {
				logger.Printf("%s: ticks at %q", p.Title.Text, fig.Ticks[i][j].Labels)
			}
		}
		ms := bwstat.Collect(fig)
		scaler := bwstat.ScalerFor(ms)
		for _, m := range ms {
			logger.Print(m.Format(scaler))
		}
	}

	switch mode {
	case bwchart.PNG:
		out := path + ".png"
		if err := fig.Save(out); err != nil {
			return err
		}
		logger.Printf("wrote %s", out)
		return nil
	default:
		if *flagHTTP != "" {
			return serve(*flagHTTP, fig, stderr)
		}
		return display(fig)
	}
}

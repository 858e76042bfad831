// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command mk-index builds a busk N-gram index from one or more files
// or directory trees and writes it to standard output, or to the path
// named by --output (§6).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/baioc/busk/blog"
	"github.com/baioc/busk/index"
	"github.com/baioc/busk/walker"
)

func main() {
	logger := blog.New(os.Stderr, "mk-index: ")
	app := newApp(logger, os.Stdout)

	// cli.App.Run already dispatches cli.ExitCoder errors (the exit
	// codes run returns below) to os.Exit with the right code; only a
	// non-ExitCoder error reaches here.
	if err := app.Run(os.Args); err != nil {
		logger.Fatalf("%v", err)
	}
}

func newApp(logger *blog.Logger, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "mk-index",
		Usage:     "build a busk N-gram index from files or directories",
		ArgsUsage: "path...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print extra information",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the index to PATH (default: standard output)",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print index size statistics to stderr",
			},
			&cli.BoolFlag{
				Name:  "verify-after",
				Usage: "validate the built index's structural invariants before writing it",
			},
		},
		Action: func(c *cli.Context) error {
			logger.SetVerbose(c.Bool("verbose"))
			return run(c, logger, stdout)
		},
	}
}

func run(c *cli.Context, logger *blog.Logger, stdout io.Writer) error {
	if c.NArg() == 0 {
		return cli.Exit("at least one file or directory path is required", 2)
	}

	eng := index.New()
	w := walker.New()

	for _, root := range c.Args().Slice() {
		logger.Infof("index %s", root)
		err := w.Walk(root, func(f walker.File, ferr error) error {
			if ferr != nil {
				logger.Warnf("%s: %v", f.Path, ferr)
				return nil
			}
			file, err := os.Open(f.Path)
			if err != nil {
				logger.Warnf("%s: %v", f.Path, err)
				return nil
			}
			defer file.Close()

			n, err := eng.Ingest(file, []byte(f.Path))
			if err != nil {
				logger.Warnf("%s: %v", f.Path, err)
				return nil
			}
			logger.Debugf("%s: %d ngrams", f.Path, n)
			return nil
		})
		if err != nil {
			return cli.Exit(fmt.Sprintf("walking %s: %v", root, err), 1)
		}
	}

	if c.Bool("verify-after") {
		logger.Infof("validating index")
		if err := eng.Validate(); err != nil {
			return cli.Exit(fmt.Sprintf("index failed validation: %v", err), 1)
		}
	}

	out := stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("creating %s: %v", path, err), 1)
		}
		defer f.Close()
		out = f
	}

	logger.Infof("flush index")
	if err := eng.Save(out); err != nil {
		return cli.Exit(fmt.Sprintf("writing index: %v", err), 1)
	}

	if c.Bool("stats") {
		printStats(eng, logger)
	}

	logger.Infof("done")
	return nil
}

func printStats(eng *index.Engine, logger *blog.Logger) {
	s := eng.Stats()
	fmt.Fprintf(os.Stderr, "paths: %d\n", eng.NumPaths())
	fmt.Fprintf(os.Stderr, "ngrams: %d\n", s.NGramCount)
	fmt.Fprintf(os.Stderr, "path table bytes: %d\n", s.PathBytesLen)
	fmt.Fprintf(os.Stderr, "entries bytes: %d\n", s.EntriesLen)
}

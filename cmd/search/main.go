// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command search runs a literal query against a busk index, reading
// the index from standard input by default or from the path named by
// --index (§6).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/baioc/busk/blog"
	"github.com/baioc/busk/hitfmt"
	"github.com/baioc/busk/index"
	"github.com/baioc/busk/litmatch"
)

// exitLoadFailed and exitTooShort are distinct from exitNoHits
// (§6: "non-zero and distinct if the index failed to load or the
// query was shorter than N").
const (
	exitNoHits     = 1
	exitLoadFailed = 2
	exitTooShort   = 3
)

// osOpener opens candidate files during verification straight off
// disk, satisfying index.Opener.
type osOpener struct{}

func (osOpener) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func main() {
	logger := blog.New(os.Stderr, "search: ")
	app := newApp(logger, os.Stdin, os.Stdout)

	// cli.App.Run already dispatches cli.ExitCoder errors (the exit
	// codes run returns below) to os.Exit with the right code; only a
	// non-ExitCoder error reaches here.
	if err := app.Run(os.Args); err != nil {
		logger.Fatalf("%v", err)
	}
}

func newApp(logger *blog.Logger, stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "search",
		Usage:     "search a busk N-gram index for a literal query",
		ArgsUsage: "query",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print extra information",
			},
			&cli.StringFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "read the index from PATH (default: standard input)",
			},
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "highlight matches with ANSI color",
			},
		},
		Action: func(c *cli.Context) error {
			logger.SetVerbose(c.Bool("verbose"))
			return run(c, logger, stdin, stdout)
		},
	}
}

func run(c *cli.Context, logger *blog.Logger, stdin io.Reader, stdout io.Writer) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one query string is required", 2)
	}
	query := []byte(c.Args().Get(0))

	eng := index.New()
	in := stdin
	if path := c.String("index"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("opening index %s: %v", path, err), exitLoadFailed)
		}
		defer f.Close()
		in = f
	}
	defer eng.Close()

	logger.Infof("loading index")
	if err := eng.Load(in); err != nil {
		return cli.Exit(fmt.Sprintf("loading index: %v", err), exitLoadFailed)
	}

	matcher := litmatch.New(query)
	color := c.Bool("color")

	total, searchErr := eng.Search(query, osOpener{}, matcher, index.SearchOptions{}, func(h index.Hit) error {
		return hitfmt.Write(stdout, hitfmt.Hit{
			Path:      eng.Resolve(h.Path),
			Begin:     h.Begin,
			End:       h.End,
			LineStart: h.LineStart,
			Line:      h.Line,
		}, color)
	})
	if searchErr != nil {
		if index.IsKind(searchErr, index.KindQueryTooShort) {
			return cli.Exit(fmt.Sprintf("%v", searchErr), exitTooShort)
		}
		return cli.Exit(fmt.Sprintf("search: %v", searchErr), exitLoadFailed)
	}

	logger.Infof("%d hits", total)
	if total == 0 {
		return cli.Exit("", exitNoHits)
	}
	return nil
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import (
	"io"

	"github.com/baioc/busk/scan"
)

// An Opener opens a candidate file for verification, given the path
// bytes resolved from its PathHandle. It is the "external I/O port"
// §4.7 step 5 delegates file access to, so that this package never
// hardcodes os.Open and stays testable against an in-memory corpus.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// Hit is one confirmed match: the file it occurred in, its absolute
// byte offsets within that file, and the (possibly buffer-truncated)
// line it falls on, ready for hitfmt to render (§6).
type Hit struct {
	Path       PathHandle
	Begin, End int64
	LineStart  int64
	Line       []byte
}

// SearchOptions tunes the verification scan. A zero value is valid and
// uses scan.DefaultBufferSize.
type SearchOptions struct {
	BufferSize int
}

// Search runs the full top-level pipeline of §4.7: decompose query
// into NGrams, intersect their posting sets to get a sound-but-
// incomplete candidate set, then verify each candidate by scanning it
// with matcher and reporting every true hit to emit, in ascending
// file-offset order within each file (§5 Ordering guarantees).
//
// It returns the total number of hits found. If query is shorter than
// Size, it returns a KindQueryTooShort error and never touches the
// index or any file (§4.6, §7).
func (e *Engine) Search(query []byte, opener Opener, matcher Matcher, opts SearchOptions, emit func(Hit) error) (int, error) {
	if len(query) < Size {
		return 0, newErr(KindQueryTooShort, "query shorter than ngram size", nil)
	}

	survivors := e.candidates(query)
	bufSize := opts.BufferSize
	if bufSize <= 0 {
		bufSize = scan.DefaultBufferSize
	}
	overlap := len(query) - 1

	total := 0
	for _, h := range survivors {
		path := e.Resolve(h)
		rc, err := opener.Open(path)
		if err != nil {
			return total, newErr(KindIOOpen, "opening candidate "+path, err)
		}

		scanErr := scan.Scan(rc, matcher, overlap, bufSize, func(sh scan.Hit) error {
			total++
			return emit(Hit{Path: h, Begin: sh.Begin, End: sh.End, LineStart: sh.LineStart, Line: sh.Line})
		})
		closeErr := rc.Close()

		if scanErr != nil {
			return total, scanErr
		}
		if closeErr != nil {
			return total, newErr(KindIORead, "closing candidate "+path, closeErr)
		}
	}
	return total, nil
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan drives a literal matcher over a stream in fixed-size
// buffers without losing matches that straddle a buffer boundary —
// the open question §9(a) of the design notes leaves unresolved in
// the reference implementation ("the source does not handle this;
// implementers should close it").
//
// The technique is the teacher's own: regexp.Grep.Reader
// (regexp/match.go in the ancestor codesearch tree) slides unconsumed
// bytes down to the front of its buffer before the next refill so a
// line is never split across reads. We do the same thing for a fixed-
// width literal pattern instead of a line: retain the last
// (patternLen-1) bytes of each buffer as the prefix of the next one,
// so any match beginning in one buffer and ending in the next is
// still fully present, in one contiguous haystack, the moment it
// completes.
package scan

import "io"

// DefaultBufferSize is the buffer size used when a caller does not
// override it (§4.7 step 5: "fixed-size buffers (default 4 KiB,
// configurable)").
const DefaultBufferSize = 4096

// A Matcher is the literal-match interface this package drives. It is
// satisfied by index.Matcher; scan does not import the index package
// so that it can be unit tested without constructing an Engine.
type Matcher interface {
	Find(haystack []byte, start int) (begin, end int, ok bool)
}

// Hit is one match's byte offsets, relative to the start of the
// stream Scan was given, plus the line the match falls in. Line is
// bounded at both ends by the nearest newline, zero byte, or buffer
// edge — never re-read from the stream, so a line longer than the
// buffer is reported truncated at the buffer edge rather than in
// full (§6: "bounded at both ends by the nearest newline or zero byte
// or buffer edge"). Line is a copy safe to retain past the callback.
type Hit struct {
	Begin, End int64
	LineStart  int64 // absolute offset of Line[0] in the stream
	Line       []byte
}

func lineBounds(buf []byte, begin, end int) (start, stop int) {
	start = 0
	for i := begin - 1; i >= 0; i-- {
		if buf[i] == '\n' || buf[i] == 0 {
			start = i + 1
			break
		}
	}
	stop = len(buf)
	for i := end; i < len(buf); i++ {
		if buf[i] == '\n' || buf[i] == 0 {
			stop = i
			break
		}
	}
	return start, stop
}

// Scan reads r to completion in buffers of bufSize bytes (a bufSize
// not larger than overlap is replaced by overlap+DefaultBufferSize, so
// that every refill reads at least one new byte), calling report once
// per match found, in ascending offset
// order, until report returns a non-nil error or the stream is
// exhausted. overlap should be patternLen-1: the number of trailing
// bytes of one buffer that must be carried into the next so that no
// occurrence of a patternLen-byte match is ever split across the seam
// invisibly to m.Find.
func Scan(r io.Reader, m Matcher, overlap, bufSize int, report func(Hit) error) error {
	if overlap < 0 {
		overlap = 0
	}
	if bufSize <= overlap {
		bufSize = overlap + DefaultBufferSize
	}

	buf := make([]byte, bufSize)
	filled := 0
	base := int64(0)

	for {
		n, err := io.ReadFull(r, buf[filled:])
		filled += n
		atEOF := err == io.EOF || err == io.ErrUnexpectedEOF
		if err != nil && !atEOF {
			return err
		}

		pos := 0
		for {
			begin, end, ok := m.Find(buf[:filled], pos)
			if !ok {
				break
			}
			lineStart, lineEnd := lineBounds(buf[:filled], begin, end)
			line := append([]byte(nil), buf[lineStart:lineEnd]...)
			hit := Hit{Begin: base + int64(begin), End: base + int64(end), LineStart: base + int64(lineStart), Line: line}
			if err := report(hit); err != nil {
				return err
			}
			pos = end
			if pos <= begin {
				pos = begin + 1
			}
		}

		if atEOF {
			return nil
		}

		keep := overlap
		if keep > filled {
			keep = filled
		}
		start := filled - keep
		n2 := copy(buf, buf[start:filled])
		base += int64(start)
		filled = n2
	}
}

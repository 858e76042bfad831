// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hitfmt renders a confirmed match as the hit line §6
// specifies: "PATH:BYTE_OFFSET+MATCH_LEN: LINE_WITH_MATCH", with
// non-printable bytes escaped and, optionally, ANSI color.
package hitfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Escape renders line the way §6 requires: non-printable bytes as
// \xHH, a literal newline byte as the two characters \n, and a literal
// backslash byte as \\. Printable ASCII passes through unchanged.
func Escape(line []byte) string {
	var b strings.Builder
	b.Grow(len(line))
	for _, c := range line {
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\n':
			b.WriteString(`\n`)
		case c >= 0x20 && c < 0x7F:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, `\x%02X`, c)
		}
	}
	return b.String()
}

// Hit is the minimal shape hitfmt needs to render one line; it mirrors
// index.Hit without importing the index package, keeping hitfmt
// testable on its own and usable by any caller that can resolve a
// path string itself.
type Hit struct {
	Path       string
	Begin, End int64
	LineStart  int64
	Line       []byte
}

// Write renders h to w as one line, as plain text or, if color is
// true, with distinct ANSI SGR styling for the path, the offset
// numerals, the separators, and the matched substring (§6: "the path,
// the offset numerals, the separators, and the matched substring
// receive distinct ANSI SGR codes"). The styles themselves are
// pterm's, the same library rybkr-gitvista uses for its terminal UI;
// this package only chooses which four spans get which built-in
// style.
func Write(w io.Writer, h Hit, color bool) error {
	matchLen := h.End - h.Begin
	escaped := Escape(h.Line)

	if !color {
		_, err := fmt.Fprintf(w, "%s:%d+%d: %s\n", h.Path, h.Begin, matchLen, escaped)
		return err
	}

	path := pterm.NewStyle(pterm.FgMagenta, pterm.Bold).Sprint(h.Path)
	sep := pterm.NewStyle(pterm.FgGray).Sprint(":")
	offset := pterm.NewStyle(pterm.FgGreen).Sprint(strconv.FormatInt(h.Begin, 10) + "+" + strconv.FormatInt(matchLen, 10))
	match := highlightMatch(h, escaped)

	_, err := fmt.Fprintf(w, "%s%s%s%s %s\n", path, sep, offset, sep, match)
	return err
}

// highlightMatch re-applies escaping span-aware so that the raw
// matched bytes (not their escaped form, which may be a different
// length) get wrapped in a distinct style, falling back to styling
// the whole escaped line if the match offsets fall outside it. Hits
// produced by scan.Scan never take the fallback, since its line
// always spans the whole match.
func highlightMatch(h Hit, escaped string) string {
	col := int(h.Begin - h.LineStart)
	matchLen := int(h.End - h.Begin)
	if col < 0 || matchLen < 0 || col+matchLen > len(h.Line) {
		return pterm.NewStyle(pterm.FgLightWhite).Sprint(escaped)
	}
	before := Escape(h.Line[:col])
	matched := Escape(h.Line[col : col+matchLen])
	after := Escape(h.Line[col+matchLen:])
	return before + pterm.NewStyle(pterm.FgLightWhite, pterm.BgRed).Sprint(matched) + after
}

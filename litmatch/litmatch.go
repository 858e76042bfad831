// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package litmatch implements the literal-substring Matcher the core
// index package requires during verification (§1: "The literal-match
// engine used during verification. The core consumes an abstract
// matcher with a single operation find(haystack, start) -> (begin,
// end) | none."). Regexp semantics are explicitly out of scope (§1
// Non-goals); this is intentionally just bytes.Index, not the
// teacher's RE2-derived regexp.Grep (regexp/match.go in the ancestor
// codesearch tree).
package litmatch

import "bytes"

// Matcher finds non-overlapping occurrences of Pattern.
type Matcher struct {
	Pattern []byte
}

// New returns a Matcher for pattern. Pattern must be non-empty.
func New(pattern []byte) *Matcher {
	return &Matcher{Pattern: pattern}
}

// Find returns the first occurrence of m.Pattern in haystack at or
// after start, or ok=false if there is none. It satisfies both
// index.Matcher and scan.Matcher without importing either package.
func (m *Matcher) Find(haystack []byte, start int) (begin, end int, ok bool) {
	if start < 0 {
		start = 0
	}
	if start > len(haystack) || len(m.Pattern) == 0 {
		return 0, 0, false
	}
	i := bytes.Index(haystack[start:], m.Pattern)
	if i < 0 {
		return 0, 0, false
	}
	begin = start + i
	return begin, begin + len(m.Pattern), true
}

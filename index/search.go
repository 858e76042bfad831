// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "sort"

// A Matcher is the abstract literal-match engine the query planner
// consumes during verification (§1, §4.7). Find reports the first
// match of the matcher's pattern in haystack at or after start, or
// ok=false if there is none. It is the only interface the core
// requires of its matching collaborator; regexp, fuzzy, or any other
// matching semantics are explicitly out of scope (§1 Non-goals).
type Matcher interface {
	Find(haystack []byte, start int) (begin, end int, ok bool)
}

// candidates decomposes query into overlapping NGrams and returns the
// handles surviving their intersection (§4.7 steps 1-4), in ascending
// order for deterministic output (§5 Ordering guarantees: "if stable
// output order is required by tests, the caller sorts surviving
// handles ascending before verification").
//
// query must be at least Size bytes; callers are expected to have
// already rejected shorter queries with KindQueryTooShort (§4.7,
// §7 query-too-short).
func (e *Engine) candidates(query []byte) []PathHandle {
	alive := make(map[PathHandle]bool)
	aliveCount := 0
	first := true

	for i := 0; i+Size <= len(query); i++ {
		result := e.Query(query[i : i+Size])

		if first {
			for h := range result {
				alive[h] = true
				aliveCount++
			}
			first = false
		} else {
			for h, isAlive := range alive {
				if !isAlive {
					continue
				}
				if _, ok := result[h]; !ok {
					alive[h] = false
					aliveCount--
				}
			}
		}

		if aliveCount == 0 {
			// Early stop (§4.7 step 4): every subsequent NGram query
			// can only shrink an already-empty candidate set.
			return nil
		}
	}

	survivors := make([]PathHandle, 0, aliveCount)
	for h, isAlive := range alive {
		if isAlive {
			survivors = append(survivors, h)
		}
	}
	sort.Slice(survivors, func(i, j int) bool { return survivors[i] < survivors[j] })
	return survivors
}

// Candidates exposes candidates for testing and for callers (such as
// a future incremental search UI) that want the pre-verification set
// without driving a matcher over any files.
func (e *Engine) Candidates(query []byte) []PathHandle {
	return e.candidates(query)
}

// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "sort"

// A PostingIndex maps NGrams to the set of PathHandles of files
// containing them. Hash-map iteration order is not deterministic
// across runs (different seeds, different insertion order); §4.3 and
// §9 require that determinism instead come from sorting at
// serialization time, so PostingIndex itself stays a plain Go map
// internally (fast insert/lookup) and only EntriesSorted pays the
// sorting cost, once, at save time.
type PostingIndex struct {
	m map[NGram]map[PathHandle]struct{}
}

// NewPostingIndex returns an empty PostingIndex.
func NewPostingIndex() *PostingIndex {
	return &PostingIndex{m: make(map[NGram]map[PathHandle]struct{})}
}

// Insert records that handle's file contains ngram. Idempotent: after
// the call, the set for ngram contains handle exactly once regardless
// of how many times Insert is called with the same pair.
func (p *PostingIndex) Insert(ngram NGram, handle PathHandle) {
	set := p.m[ngram]
	if set == nil {
		set = make(map[PathHandle]struct{})
		p.m[ngram] = set
	}
	set[handle] = struct{}{}
}

// Lookup returns the set of handles recorded for ngram, or nil if
// ngram was never inserted. The returned map is borrowed and must not
// be mutated by the caller; it is invalidated by any subsequent
// Insert.
func (p *PostingIndex) Lookup(ngram NGram) map[PathHandle]struct{} {
	return p.m[ngram]
}

// NGramCount returns the number of distinct NGrams recorded.
func (p *PostingIndex) NGramCount() int {
	return len(p.m)
}

// Entry is one (NGram, sorted handles) pair, as produced by
// EntriesSorted for serialization.
type Entry struct {
	NGram    NGram
	Handles  []PathHandle
}

// EntriesSorted returns every (NGram, handles) pair, with entries
// ordered ascending lexicographically by NGram bytes and, within each
// entry, handles ordered ascending numerically. This is the only place
// PostingIndex imposes an order on its contents; it exists so that two
// indices built from the same ingest sequence serialize to
// byte-identical output irrespective of Go's map iteration order.
func (p *PostingIndex) EntriesSorted() []Entry {
	entries := make([]Entry, 0, len(p.m))
	for ngram, set := range p.m {
		handles := make([]PathHandle, 0, len(set))
		for h := range set {
			handles = append(handles, h)
		}
		sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
		entries = append(entries, Entry{NGram: ngram, Handles: handles})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].NGram.Less(entries[j].NGram) })
	return entries
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import "testing"

func TestPostingIndexInsertIdempotent(t *testing.T) {
	p := NewPostingIndex()
	g := NGram{'a', 'b', 'c'}
	p.Insert(g, 0)
	p.Insert(g, 0)
	p.Insert(g, 1)

	set := p.Lookup(g)
	if len(set) != 2 {
		t.Fatalf("Lookup returned %d handles, want 2 (duplicate insert must not double-count)", len(set))
	}
}

func TestPostingIndexLookupMiss(t *testing.T) {
	p := NewPostingIndex()
	if set := p.Lookup(NGram{'x', 'y', 'z'}); set != nil {
		t.Errorf("Lookup on absent ngram = %v, want nil", set)
	}
}

func TestPostingIndexEntriesSortedDeterministic(t *testing.T) {
	p := NewPostingIndex()
	p.Insert(NGram{'c', 'c', 'c'}, 5)
	p.Insert(NGram{'a', 'a', 'a'}, 9)
	p.Insert(NGram{'a', 'a', 'a'}, 1)
	p.Insert(NGram{'b', 'b', 'b'}, 3)

	entries := p.EntriesSorted()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	wantOrder := []NGram{{'a', 'a', 'a'}, {'b', 'b', 'b'}, {'c', 'c', 'c'}}
	for i, e := range entries {
		if e.NGram != wantOrder[i] {
			t.Errorf("entries[%d].NGram = %v, want %v", i, e.NGram, wantOrder[i])
		}
	}
	if h := entries[0].Handles; len(h) != 2 || h[0] != 1 || h[1] != 9 {
		t.Errorf("entries[0].Handles = %v, want ascending [1 9]", h)
	}
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import (
	"bytes"
	"strings"
	"testing"
)

// TestIngestQuerySanity is scenario 1 of §8: ingest one file with
// bytes "abcabd" under path "/t/a".
func TestIngestQuerySanity(t *testing.T) {
	e := New()
	n, err := e.Ingest(strings.NewReader("abcabd"), []byte("/t/a"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if n != 4 {
		t.Fatalf("Ingest returned %d ngrams, want 4", n)
	}

	for _, g := range []string{"abc", "bca", "cab", "abd"} {
		set := e.Query([]byte(g))
		if len(set) != 1 {
			t.Errorf("Query(%q) returned %d handles, want 1", g, len(set))
			continue
		}
		for h := range set {
			if got := e.Resolve(h); got != "/t/a" {
				t.Errorf("Query(%q) resolved to %q, want /t/a", g, got)
			}
		}
	}
}

// TestIngestCountsMatchFormula checks the §8 "N-gram count" invariant:
// exactly max(0, F-N+1) ngrams per file of length F.
func TestIngestCountsMatchFormula(t *testing.T) {
	cases := []struct {
		data string
		want int64
	}{
		{"", 0},
		{"a", 0},
		{"ab", 0},
		{"abc", 1},
		{"abcd", 2},
		{"abcdefgh", 6},
	}
	for _, tc := range cases {
		e := New()
		n, err := e.Ingest(strings.NewReader(tc.data), []byte("p"))
		if err != nil {
			t.Fatalf("Ingest(%q): %v", tc.data, err)
		}
		if n != tc.want {
			t.Errorf("Ingest(%q) = %d ngrams, want %d", tc.data, n, tc.want)
		}
	}
}

// TestShortFileLeavesPathWithNoPostings is §8 scenario 4.
func TestShortFileLeavesPathWithNoPostings(t *testing.T) {
	e := New()
	n, err := e.Ingest(strings.NewReader("xy"), []byte("/s"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if n != 0 {
		t.Fatalf("Ingest of 2-byte file returned %d ngrams, want 0", n)
	}
	if got := e.Query([]byte("xy?")); got != nil {
		t.Errorf("Query against short file's ngram = %v, want nil", got)
	}
}

// TestIntersectionPruning is §8 scenario 2.
func TestIntersectionPruning(t *testing.T) {
	e := New()
	if _, err := e.Ingest(strings.NewReader("hello"), []byte("/x")); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Ingest(strings.NewReader("world"), []byte("/y")); err != nil {
		t.Fatal(err)
	}

	cand := e.Candidates([]byte("hello"))
	if len(cand) != 1 {
		t.Fatalf("Candidates(hello) = %v, want exactly 1 survivor", cand)
	}
	if e.Resolve(cand[0]) != "/x" {
		t.Errorf("survivor resolved to %q, want /x", e.Resolve(cand[0]))
	}

	if cand := e.Candidates([]byte("lorem")); cand != nil {
		t.Errorf("Candidates(lorem) = %v, want nil (no file contains 'lor')", cand)
	}
}

// TestSaveLoadRoundTrip checks byte-identical round-trip of the
// NGram->handles mapping and PathTable bytes (§8 "Round-trip").
func TestSaveLoadRoundTrip(t *testing.T) {
	e := New()
	for _, f := range []struct {
		path, data string
	}{
		{"/a", "hello world"},
		{"/b", "goodbye world"},
	} {
		if _, err := e.Ingest(strings.NewReader(f.data), []byte(f.path)); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := e.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := New()
	if err := loaded.Load(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !bytes.Equal(e.paths.Bytes(), loaded.paths.Bytes()) {
		t.Errorf("PathTable bytes differ after round-trip")
	}
	if !entriesEqual(e.postings.EntriesSorted(), loaded.postings.EntriesSorted()) {
		t.Errorf("PostingIndex entries differ after round-trip")
	}
}

func entriesEqual(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].NGram != b[i].NGram {
			return false
		}
		if len(a[i].Handles) != len(b[i].Handles) {
			return false
		}
		for j := range a[i].Handles {
			if a[i].Handles[j] != b[i].Handles[j] {
				return false
			}
		}
	}
	return true
}

// TestSaveIsDeterministic is §8 "Determinism": two engines built from
// the same ordered ingest sequence serialize identically.
func TestSaveIsDeterministic(t *testing.T) {
	build := func() []byte {
		e := New()
		e.Ingest(strings.NewReader("hello"), []byte("/a"))
		e.Ingest(strings.NewReader("world"), []byte("/b"))
		var buf bytes.Buffer
		e.Save(&buf)
		return buf.Bytes()
	}
	a, b := build(), build()
	if !bytes.Equal(a, b) {
		t.Errorf("two saves of the same ingest sequence differ")
	}
}

// TestLoadRejectsCorruptHandle is §8 scenario 5.
func TestLoadRejectsCorruptHandle(t *testing.T) {
	e := New()
	e.Ingest(strings.NewReader("abc"), []byte("/a"))
	var buf bytes.Buffer
	if err := e.Save(&buf); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	// The single posting entry's 8-byte handle sits right after its
	// posting_len (4) and ngram (Size) fields, immediately following
	// the header and path table.
	handleOff := headerSize + e.paths.Len() + 4 + Size
	for i := 0; i < 8; i++ {
		data[handleOff+i] = 0xFF
	}

	loaded := New()
	err := loaded.Load(bytes.NewReader(data))
	if err == nil {
		t.Fatal("Load accepted a corrupted handle")
	}
	if !IsKind(err, KindCorruptHandle) {
		t.Errorf("Load error = %v, want KindCorruptHandle", err)
	}
}

// TestLoadRejectsBadMagic is §8 scenario 6.
func TestLoadRejectsBadMagic(t *testing.T) {
	e := New()
	e.Ingest(strings.NewReader("abc"), []byte("/a"))
	var buf bytes.Buffer
	e.Save(&buf)
	data := buf.Bytes()
	data[0] = 0x00

	loaded := New()
	err := loaded.Load(bytes.NewReader(data))
	if !IsKind(err, KindBadMagic) {
		t.Errorf("Load error = %v, want KindBadMagic", err)
	}
}

func TestLoadRejectsTruncated(t *testing.T) {
	e := New()
	e.Ingest(strings.NewReader("abc"), []byte("/a"))
	var buf bytes.Buffer
	e.Save(&buf)
	data := buf.Bytes()

	loaded := New()
	err := loaded.Load(bytes.NewReader(data[:len(data)-1]))
	if !IsKind(err, KindTruncated) {
		t.Errorf("Load error = %v, want KindTruncated", err)
	}

	err = loaded.Load(bytes.NewReader(data[:4]))
	if !IsKind(err, KindTruncated) {
		t.Errorf("Load of short header error = %v, want KindTruncated", err)
	}
}

func TestSearchQueryTooShort(t *testing.T) {
	e := New()
	e.Ingest(strings.NewReader("hello world"), []byte("/a"))
	_, err := e.Search([]byte("ab"), nil, nil, SearchOptions{}, nil)
	if !IsKind(err, KindQueryTooShort) {
		t.Errorf("Search with short query error = %v, want KindQueryTooShort", err)
	}
}

func TestValidateAcceptsFreshEngine(t *testing.T) {
	e := New()
	e.Ingest(strings.NewReader("hello world"), []byte("/a"))
	if err := e.Validate(); err != nil {
		t.Errorf("Validate on a freshly-ingested engine: %v", err)
	}
}

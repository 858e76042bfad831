// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

// Validate re-walks a loaded engine's postings confirming every handle
// still resolves into the current PathTable (§4.5 corrupt-handle,
// re-checked here independent of the load-time pass in format.go). It
// is the analogue of the teacher's index.Check (index/check.go in the
// ancestor codesearch tree), which likewise walks posting blocks after
// an mmap'd Open to catch corruption the trailer-only validation at
// load time would miss.
//
// Note that NGram and handle ordering are not meaningful things to
// re-check here: PostingIndex is map-backed, so EntriesSorted always
// returns its contents in sorted order regardless of what order (if
// any) the bytes were read in. Sortedness is guaranteed by
// construction, not by the data that produced it, so only handle
// validity is worth walking for.
//
// Validate never mutates e; it is read-only diagnostics, distinct
// from the mandatory load-time validation in format.go (magic, length,
// handle bounds), which always runs.
func (e *Engine) Validate() error {
	for _, ent := range e.postings.EntriesSorted() {
		for _, h := range ent.Handles {
			if !e.paths.Valid(h) {
				return newErr(KindCorruptHandle, "posting handle out of range", nil)
			}
		}
	}
	return nil
}

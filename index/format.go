// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

// On-disk format (§4.5 of the design notes). All multi-byte integers
// are little-endian.
//
//	header (24 bytes):
//		magic        [8]byte  "\xFF BUSK01 \x1A"
//		ngram_count  uint64   number of distinct N-grams
//		paths_len    uint64   byte length of the PathTable payload
//	paths_len bytes of PathTable payload (zero-terminated strings)
//	ngram_count entries, each:
//		posting_len  uint32
//		ngram        [Size]byte
//		postings     [posting_len]uint64, ascending
//
// Entries are written in ascending lexicographic order of NGram bytes
// (PostingIndex.EntriesSorted already guarantees this), which combined
// with the ascending-handle requirement inside each entry is what
// makes two saves of the same ingest sequence byte-identical
// regardless of Go map iteration order.
//
// This is a from-scratch format, not a simplification of the
// teacher's gamma-coded, prefix-compressed, mmap-indexed csearch
// format (index/read.go, index/write.go in the ancestor tree): that
// format's random-access posting-index blocks and delta-coding exist
// to keep multi-gigabyte real-world indices small, which this
// specification's Non-goals explicitly rule out ("compression of
// path storage ... left as a noted future extension"). What carries
// over is the teacher's shape, not its bytes: a small fixed header,
// a path arena, then posting data, all written through one buffered
// pass.

import (
	"bufio"
	"encoding/binary"
	"io"
)

var magic = [8]byte{0xFF, 'B', 'U', 'S', 'K', '0', '1', 0x1A}

const headerSize = 8 + 8 + 8

// Save writes the full on-disk representation of pt and pi to w. Every
// save writes the full state; there is no incremental format.
func Save(w io.Writer, pt *PathTable, pi *PostingIndex) error {
	bw := bufio.NewWriterSize(w, 1<<16)

	var hdr [headerSize]byte
	copy(hdr[0:8], magic[:])
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(pi.NGramCount()))
	binary.LittleEndian.PutUint64(hdr[16:24], uint64(pt.Len()))
	if _, err := bw.Write(hdr[:]); err != nil {
		return newErr(KindIOWrite, "writing header", err)
	}

	if _, err := bw.Write(pt.Bytes()); err != nil {
		return newErr(KindIOWrite, "writing path table", err)
	}

	var scratch [4]byte
	var postBuf [8]byte
	for _, e := range pi.EntriesSorted() {
		binary.LittleEndian.PutUint32(scratch[:], uint32(len(e.Handles)))
		if _, err := bw.Write(scratch[:]); err != nil {
			return newErr(KindIOWrite, "writing posting length", err)
		}
		if _, err := bw.Write(e.NGram[:]); err != nil {
			return newErr(KindIOWrite, "writing ngram", err)
		}
		for _, h := range e.Handles {
			binary.LittleEndian.PutUint64(postBuf[:], uint64(h))
			if _, err := bw.Write(postBuf[:]); err != nil {
				return newErr(KindIOWrite, "writing posting handle", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return newErr(KindIOWrite, "flushing index", err)
	}
	return nil
}

// decode parses the full on-disk representation from data, validating
// as it goes per §4.5. On any failure it returns a nil PathTable/
// PostingIndex and the describing error; there is no partial result.
func decode(data []byte) (*PathTable, *PostingIndex, error) {
	if len(data) < headerSize {
		return nil, nil, newErr(KindTruncated, "short header", nil)
	}
	if string(data[0:8]) != string(magic[:]) {
		return nil, nil, newErr(KindBadMagic, "magic mismatch", nil)
	}
	ngramCount := binary.LittleEndian.Uint64(data[8:16])
	pathsLen := binary.LittleEndian.Uint64(data[16:24])

	rest := data[headerSize:]
	if uint64(len(rest)) < pathsLen {
		return nil, nil, newErr(KindTruncated, "short path table", nil)
	}
	pt := &PathTable{data: rest[:pathsLen:pathsLen]}
	rest = rest[pathsLen:]

	pi := NewPostingIndex()
	for i := uint64(0); i < ngramCount; i++ {
		if len(rest) < 4 {
			return nil, nil, newErr(KindTruncated, "short entry header", nil)
		}
		postingLen := binary.LittleEndian.Uint32(rest[:4])
		rest = rest[4:]

		if len(rest) < Size {
			return nil, nil, newErr(KindTruncated, "short ngram", nil)
		}
		var g NGram
		copy(g[:], rest[:Size])
		rest = rest[Size:]

		need := int(postingLen) * 8
		if len(rest) < need {
			return nil, nil, newErr(KindTruncated, "short posting list", nil)
		}
		for j := uint32(0); j < postingLen; j++ {
			h := PathHandle(binary.LittleEndian.Uint64(rest[:8]))
			rest = rest[8:]
			if uint64(h) >= pathsLen {
				return nil, nil, newErr(KindCorruptHandle, "handle out of range", nil)
			}
			pi.Insert(g, h)
		}
	}

	return pt, pi, nil
}

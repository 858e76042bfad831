// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package index

import (
	"fmt"

	"github.com/pkg/errors"
)

// A Kind classifies a failure the way §7 of the design notes taxonomy
// does, so that callers (cmd/mk-index, cmd/search) can map it to an
// exit code without string-matching error text.
type Kind int

const (
	// KindNone is the zero Kind; never appears on a returned error.
	KindNone Kind = iota
	// KindIOOpen is a failure to open a file.
	KindIOOpen
	// KindIORead is a failure reading from an open file or stream.
	KindIORead
	// KindIOWrite is a failure writing to a file or stream.
	KindIOWrite
	// KindTruncated means the on-disk stream ended before a required
	// field was fully read.
	KindTruncated
	// KindBadMagic means the header's magic prefix did not match.
	KindBadMagic
	// KindCorruptHandle means an on-disk PathHandle pointed outside
	// the loaded PathTable.
	KindCorruptHandle
	// KindQueryTooShort means a query string was shorter than Size.
	KindQueryTooShort
	// KindWalk means a directory entry could not be stat'd or opened;
	// always logged and skipped, never returned from ingest itself,
	// but defined here so the walker can report it in the same
	// vocabulary.
	KindWalk
)

func (k Kind) String() string {
	switch k {
	case KindIOOpen:
		return "io-open"
	case KindIORead:
		return "io-read"
	case KindIOWrite:
		return "io-write"
	case KindTruncated:
		return "truncated"
	case KindBadMagic:
		return "bad-magic"
	case KindCorruptHandle:
		return "corrupt-handle"
	case KindQueryTooShort:
		return "query-too-short"
	case KindWalk:
		return "walk-error"
	default:
		return "none"
	}
}

// Error is the error type returned by the load-fatal and query-fatal
// operations of this package. It carries a Kind for programmatic
// dispatch and wraps an underlying cause (via github.com/pkg/errors)
// for human-readable diagnostics and stack context.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

func newErr(kind Kind, msg string, cause error) *Error {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &Error{Kind: kind, msg: msg, err: cause}
}

// IsKind reports whether err is an *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

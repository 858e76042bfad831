// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package walker enumerates the regular files under a set of root
// paths in deterministic order, skipping directories and files that
// match a configurable set of ignore globs. It generalizes cindex.go's
// hardcoded dotfile/backup-file skip rules (elem[0] == '.' || elem[0]
// == '#' || elem[0] == '~' || elem[len(elem)-1] == '~') into
// doublestar glob patterns, matched against each entry's path relative
// to the root being walked.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// DefaultIgnore are the glob patterns skipped when a Walker is
// constructed with no explicit patterns, chosen to match cindex.go's
// built-in rule: skip any path element starting with '.', '#', or '~',
// or ending in '~'.
var DefaultIgnore = []string{
	"**/.*",
	"**/#*",
	"**/~*",
	"**/*~",
}

// A File is one regular file discovered by Walk, named by its path
// joined onto the root it was found under (absolute only if that root
// was).
type File struct {
	Path string
	Info fs.FileInfo
}

// Walker enumerates files under a set of roots, skipping entries whose
// path (relative to the root they were found under) matches any of
// Ignore. A nil or empty Ignore falls back to DefaultIgnore.
type Walker struct {
	Ignore []string

	// Concurrency bounds how many directory entries are stat'd in
	// parallel while a directory is being read. It does not affect the
	// order files are delivered in: Walk always yields files in sorted
	// path order, one at a time, so callers may feed them straight
	// into something like an IndexEngine that is not safe for
	// concurrent ingestion (§5's single-writer contract).
	Concurrency int
}

// New returns a Walker using DefaultIgnore and the default stat
// concurrency of 8.
func New() *Walker {
	return &Walker{Ignore: DefaultIgnore}
}

func (w *Walker) ignore(rel string) (bool, error) {
	patterns := w.Ignore
	if len(patterns) == 0 {
		patterns = DefaultIgnore
	}
	for _, pat := range patterns {
		matched, err := doublestar.Match(pat, rel)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// Walk visits every regular file reachable from root, calling visit
// once per file in ascending path order. A root that is itself a
// regular file is visited directly. Errors reading a directory or
// stat'ing an entry are reported to visit as a File with a nil Info
// and a non-nil error rather than aborting the whole walk, mirroring
// cindex.go's "log.Printf(...); return nil" recovery inside
// filepath.Walk.
func (w *Walker) Walk(root string, visit func(File, error) error) error {
	info, err := os.Lstat(root)
	if err != nil {
		return visit(File{Path: root}, err)
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return visit(File{Path: root, Info: info}, nil)
		}
		return nil
	}
	return w.walkDir(root, root, visit)
}

func (w *Walker) walkDir(root, dir string, visit func(File, error) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return visit(File{Path: dir}, err)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)

	type statResult struct {
		name string
		info fs.FileInfo
		err  error
	}
	results := make([]statResult, len(names))

	limit := w.Concurrency
	if limit <= 0 {
		limit = 8
	}
	var g errgroup.Group
	g.SetLimit(limit)
	var mu sync.Mutex
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			info, err := os.Lstat(filepath.Join(dir, name))
			mu.Lock()
			results[i] = statResult{name: name, info: info, err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // per-entry errors are carried in results, not returned here

	for _, r := range results {
		path := filepath.Join(dir, r.name)
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = r.name
		}
		skip, ignErr := w.ignore(filepath.ToSlash(rel))
		if ignErr != nil {
			if err := visit(File{Path: path}, ignErr); err != nil {
				return err
			}
			continue
		}
		if skip {
			continue
		}
		if r.err != nil {
			if err := visit(File{Path: path}, r.err); err != nil {
				return err
			}
			continue
		}
		switch {
		case r.info.IsDir():
			if err := w.walkDir(root, path, visit); err != nil {
				return err
			}
		case r.info.Mode().IsRegular():
			if err := visit(File{Path: path, Info: r.info}, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

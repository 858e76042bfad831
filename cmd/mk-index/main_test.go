// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/baioc/busk/blog"
	"github.com/baioc/busk/index"
)

// runApp invokes the app's Action for args and returns any error
// without letting cli.App.Run call os.Exit, so tests can inspect the
// exit code of a cli.ExitCoder directly.
func runApp(t *testing.T, stdout io.Writer, args ...string) error {
	t.Helper()
	logger := blog.New(&bytes.Buffer{}, "")
	app := newApp(logger, stdout)
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app.Run(append([]string{"mk-index"}, args...))
}

func TestMkIndexRequiresAtLeastOnePath(t *testing.T) {
	var out bytes.Buffer
	err := runApp(t, &out)
	require.Error(t, err)
	exitErr, ok := err.(cli.ExitCoder)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestMkIndexWritesIndexToStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("abcabd"), 0644))

	var out bytes.Buffer
	err := runApp(t, &out, path)
	require.NoError(t, err)
	assert.NotZero(t, out.Len())

	eng := index.New()
	require.NoError(t, eng.Load(bytes.NewReader(out.Bytes())))
	assert.Equal(t, 1, eng.NumPaths())
}

func TestMkIndexVerifyAfterPassesOnCleanIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	var out bytes.Buffer
	err := runApp(t, &out, "--verify-after", path)
	require.NoError(t, err)
	assert.NotZero(t, out.Len())
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blog is a small leveled logger, modeled on the busk
// original's log.h (LOG_LEVEL_TRACE..LOG_LEVEL_FATAL, a per-config
// level and output) fused with the teacher's use of the standard log
// package (log.SetPrefix, log.Printf/log.Fatalf in cindex.go and
// cserver.go). Go threads a logger value explicitly rather than
// through a thread-local, so a *Logger is passed to callers instead of
// being read from a package-level or thread-local variable.
package blog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level mirrors log.h's LogLevel enum, in the same relative order
// (trace is the most verbose, fatal the least).
type Level int

const (
	LevelTrace Level = iota - 2
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is a *log.Logger plus a minimum level; messages below the
// level are dropped. The zero value is not usable; use New.
type Logger struct {
	level Level
	log   *log.Logger
}

// New returns a Logger writing to w with the given prefix (the
// teacher's per-binary convention is log.SetPrefix("cindex: ")) at
// LevelInfo.
func New(w io.Writer, prefix string) *Logger {
	return &Logger{
		level: LevelInfo,
		log:   log.New(w, prefix, 0),
	}
}

// SetLevel changes the minimum level logged.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// SetVerbose raises the level to LevelTrace when v is true, mirroring
// search.c's "cfg.verbose -> logger.level = LOG_LEVEL_TRACE", and
// resets it to LevelInfo otherwise.
func (l *Logger) SetVerbose(v bool) {
	if v {
		l.level = LevelTrace
	} else {
		l.level = LevelInfo
	}
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	l.log.Print(level.String() + ": " + fmt.Sprintf(format, args...))
}

func (l *Logger) Tracef(format string, args ...any) { l.logf(LevelTrace, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// Fatalf logs at LevelFatal regardless of the configured level, then
// exits the process, matching log.Fatalf's behavior in the teacher's
// cmd/cindex and cmd/cserver.
func (l *Logger) Fatalf(format string, args ...any) {
	l.log.Print(LevelFatal.String() + ": " + fmt.Sprintf(format, args...))
	os.Exit(1)
}

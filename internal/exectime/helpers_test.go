// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import (
	"errors"
	"reflect"
	"sync"
	"time"
)

// record is one message captured by recordingSink.
type record struct {
	level Level
	msg   string
}

// recordingSink captures every message with its severity.
type recordingSink struct {
	mu      sync.Mutex
	records []record
}

func (s *recordingSink) add(level Level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record{level: level, msg: msg})
}

func (s *recordingSink) Trace(msg string) { s.add(LevelTrace, msg) }
func (s *recordingSink) Debug(msg string) { s.add(LevelDebug, msg) }
func (s *recordingSink) Info(msg string)  { s.add(LevelInfo, msg) }
func (s *recordingSink) Warn(msg string)  { s.add(LevelWarn, msg) }
func (s *recordingSink) Error(msg string) { s.add(LevelError, msg) }

func (s *recordingSink) all() []record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record, len(s.records))
	copy(out, s.records)
	return out
}

// errWarnerSink additionally captures errors passed to WarnErr.
type errWarnerSink struct {
	recordingSink
	warnErrs []error
}

func (s *errWarnerSink) WarnErr(msg string, err error) {
	s.mu.Lock()
	s.warnErrs = append(s.warnErrs, err)
	s.mu.Unlock()
	s.add(LevelWarn, msg)
}

// stepClock advances by step on every reading.
type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

// Bar is a marked type used across the tests.
type Bar struct {
	delay time.Duration
	calls int
}

func (b *Bar) Foo(n int) (int, error) {
	b.calls++
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	return n * 2, nil
}

func (b *Bar) Fail() (string, error) {
	b.calls++
	return "partial", errBarFailed
}

func (b *Bar) Explode() (int, error) {
	b.calls++
	panic("bar exploded")
}

func (b Bar) Name() string {
	return "bar"
}

func (b *Bar) Sum(base int, more ...int) int {
	for _, m := range more {
		base += m
	}
	return base
}

var errBarFailed = errors.New("bar failed")

func sampleCompute(n int) (int, error) {
	return n + 1, nil
}

// testPkg is the import path of this package as seen by the runtime.
var testPkg = reflect.TypeFor[Bar]().PkgPath()

// barType is the qualified name of Bar.
var barType = testPkg + ".Bar"

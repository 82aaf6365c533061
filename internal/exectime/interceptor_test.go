// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package exectime

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// exitMillis extracts the elapsed milliseconds from an exit line.
func exitMillis(t *testing.T, entry, exit string) int64 {
	t.Helper()

	prefix := entry + ": Total time taken - "
	suffix := " " + UnitLabel
	if !strings.HasPrefix(exit, prefix) || !strings.HasSuffix(exit, suffix) {
		t.Fatalf("malformed exit line %q for entry %q", exit, entry)
	}
	ms, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(exit, prefix), suffix), 10, 64)
	if err != nil {
		t.Fatalf("exit line %q has no integer elapsed time: %v", exit, err)
	}
	return ms
}

func newBarInterceptor(t *testing.T, level Level, opts ...Option) (*Interceptor, *recordingSink) {
	t.Helper()

	reg := NewRegistry()
	if err := reg.MarkType(barType, Marker{Level: level}); err != nil {
		t.Fatalf("MarkType: %v", err)
	}
	sink := &recordingSink{}
	return New(sink, reg, opts...), sink
}

func TestInterceptor_RoutesEachLevel(t *testing.T) {
	t.Parallel()

	for _, lvl := range Levels() {
		t.Run(lvl.String(), func(t *testing.T) {
			t.Parallel()
			ic, sink := newBarInterceptor(t, lvl)
			bar := &Bar{}

			foo := Wrap1(ic, SignatureFor[Bar]("Foo"), bar.Foo)
			if _, err := foo(1); err != nil {
				t.Fatalf("Foo returned error: %v", err)
			}

			records := sink.all()
			if len(records) != 2 {
				t.Fatalf("expected 2 log lines, got %d: %+v", len(records), records)
			}
			for _, r := range records {
				if r.level != lvl {
					t.Errorf("line %q logged at %v, want %v", r.msg, r.level, lvl)
				}
			}
			if records[0].msg != "Entering method - Foo of Bar" {
				t.Errorf("entry line = %q", records[0].msg)
			}
			exitMillis(t, records[0].msg, records[1].msg)
		})
	}
}

func TestInterceptor_DefaultLevelIsInfo(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register(Target{Type: barType, Method: "Foo"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	sink := &recordingSink{}
	ic := New(sink, reg)

	if _, err := Wrap1(ic, SignatureFor[Bar]("Foo"), (&Bar{}).Foo)(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, r := range sink.all() {
		if r.level != LevelInfo {
			t.Errorf("line %q logged at %v, want INFO", r.msg, r.level)
		}
	}
}

func TestInterceptor_FooOfBarScenario(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.MarkType("example.com/shop.Bar", Marker{Level: LevelInfo}); err != nil {
		t.Fatalf("MarkType: %v", err)
	}
	sink := &recordingSink{}
	clock := &stepClock{t: time.Unix(1700000000, 0), step: 50 * time.Millisecond}
	ic := New(sink, reg, WithClock(clock.Now))

	sig := Signature{Package: "example.com/shop", Type: "Bar", Method: "foo"}
	foo := Wrap(ic, sig, func() (string, error) { return "V", nil })

	got, err := foo()
	if err != nil || got != "V" {
		t.Fatalf("foo() = %q, %v; want V, nil", got, err)
	}

	want := []record{
		{LevelInfo, "Entering method - foo of Bar"},
		{LevelInfo, "Entering method - foo of Bar: Total time taken - 50 MILLISECONDS"},
	}
	records := sink.all()
	if len(records) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(records), len(want), records)
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, records[i], want[i])
		}
	}
}

func TestInterceptor_ElapsedBoundedByWallClock(t *testing.T) {
	t.Parallel()

	ic, sink := newBarInterceptor(t, LevelInfo)
	bar := &Bar{delay: 20 * time.Millisecond}
	foo := Wrap1(ic, SignatureFor[Bar]("Foo"), bar.Foo)

	start := time.Now()
	if _, err := foo(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wall := time.Since(start).Milliseconds()

	records := sink.all()
	if len(records) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(records))
	}
	ms := exitMillis(t, records[0].msg, records[1].msg)
	if ms < 20 {
		t.Errorf("elapsed %dms is below the injected 20ms delay", ms)
	}
	if ms > wall {
		t.Errorf("elapsed %dms exceeds wall clock %dms", ms, wall)
	}
}

func TestInterceptor_ReturnValuePassesThrough(t *testing.T) {
	t.Parallel()

	ic, _ := newBarInterceptor(t, LevelDebug)
	bar := &Bar{}

	got, err := Wrap1(ic, SignatureFor[Bar]("Foo"), bar.Foo)(21)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("Foo(21) = %d, want 42", got)
	}
	if bar.calls != 1 {
		t.Errorf("Foo called %d times, want 1", bar.calls)
	}
}

func TestInterceptor_UnmarkedCallsAreNotWrapped(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	ic := New(sink, NewRegistry())
	bar := &Bar{}

	got, err := Wrap1(ic, SignatureFor[Bar]("Foo"), bar.Foo)(2)
	if err != nil || got != 4 {
		t.Fatalf("Foo(2) = %d, %v", got, err)
	}
	if n := len(sink.all()); n != 0 {
		t.Errorf("unmarked call logged %d lines", n)
	}

	var nilIC *Interceptor
	if _, err := Wrap1(nilIC, SignatureFor[Bar]("Foo"), bar.Foo)(2); err != nil {
		t.Errorf("nil interceptor should leave the call untouched: %v", err)
	}
}

func TestInterceptor_PropagatesWrappedError(t *testing.T) {
	t.Parallel()

	ic, sink := newBarInterceptor(t, LevelInfo)
	bar := &Bar{}

	got, err := Wrap(ic, SignatureFor[Bar]("Fail"), bar.Fail)()
	if !errors.Is(err, errBarFailed) {
		t.Fatalf("error = %v, want errBarFailed", err)
	}
	if got != "partial" {
		t.Errorf("result = %q, want the wrapped call's own result", got)
	}

	records := sink.all()
	if len(records) != 1 || records[0].msg != "Entering method - Fail of Bar" {
		t.Errorf("expected only the entry line, got %+v", records)
	}
}

func TestInterceptor_PropagatesPanic(t *testing.T) {
	t.Parallel()

	ic, sink := newBarInterceptor(t, LevelInfo)
	explode := Wrap(ic, SignatureFor[Bar]("Explode"), (&Bar{}).Explode)

	defer func() {
		r := recover()
		if r != "bar exploded" {
			t.Errorf("recovered %v, want the original panic value", r)
		}
		if n := len(sink.all()); n != 1 {
			t.Errorf("expected only the entry line, got %d lines", n)
		}
	}()
	_, _ = explode()
	t.Fatal("panic did not propagate")
}

func TestInterceptor_LegacySwallowsWrappedError(t *testing.T) {
	t.Parallel()

	ic, sink := newBarInterceptor(t, LevelInfo, WithSuppressErrors(true))
	if !ic.SuppressErrors() {
		t.Fatal("SuppressErrors() = false")
	}

	got, err := Wrap(ic, SignatureFor[Bar]("Fail"), (&Bar{}).Fail)()
	if err != nil {
		t.Errorf("legacy policy returned error %v", err)
	}
	if got != "" {
		t.Errorf("legacy policy returned %q, want zero value", got)
	}

	records := sink.all()
	if len(records) != 2 {
		t.Fatalf("expected entry and warning, got %+v", records)
	}
	warn := records[1]
	if warn.level != LevelWarn || !strings.HasPrefix(warn.msg, WarningMessage) || !strings.Contains(warn.msg, "bar failed") {
		t.Errorf("warning line = %+v", warn)
	}
}

func TestInterceptor_LegacySwallowsPanic(t *testing.T) {
	t.Parallel()

	ic, sink := newBarInterceptor(t, LevelInfo, WithSuppressErrors(true))

	got, err := Wrap(ic, SignatureFor[Bar]("Explode"), (&Bar{}).Explode)()
	if err != nil || got != 0 {
		t.Errorf("legacy policy returned %d, %v; want 0, nil", got, err)
	}

	records := sink.all()
	if len(records) != 2 || !strings.Contains(records[1].msg, "bar exploded") {
		t.Errorf("expected entry and panic warning, got %+v", records)
	}
}

func TestInterceptor_UnmappedLevel(t *testing.T) {
	t.Parallel()

	sig := Signature{Package: "example.com/shop", Type: "Bar", Method: "foo"}

	t.Run("default policy runs the call untimed", func(t *testing.T) {
		t.Parallel()
		sink := &errWarnerSink{}
		ic := New(sink, nil)

		called := false
		keep, err := ic.Intercept(sig, Marker{Level: Level(42)}, func() error {
			called = true
			return nil
		})
		if !keep || err != nil || !called {
			t.Errorf("Intercept = %v, %v (called %v); want true, nil, called", keep, err, called)
		}

		records := sink.all()
		if len(records) != 1 || records[0].msg != WarningMessage {
			t.Fatalf("expected one warning, got %+v", records)
		}
		if len(sink.warnErrs) != 1 || !errors.Is(sink.warnErrs[0], ErrUnmappedLevel) {
			t.Errorf("WarnErr errors = %v, want ErrUnmappedLevel", sink.warnErrs)
		}
	})

	t.Run("legacy policy short-circuits", func(t *testing.T) {
		t.Parallel()
		sink := &recordingSink{}
		ic := New(sink, nil, WithSuppressErrors(true))

		called := false
		keep, err := ic.Intercept(sig, Marker{Level: Level(42)}, func() error {
			called = true
			return nil
		})
		if keep || err != nil || called {
			t.Errorf("Intercept = %v, %v (called %v); want false, nil, not called", keep, err, called)
		}
		if records := sink.all(); len(records) != 1 || records[0].level != LevelWarn {
			t.Errorf("expected one warning, got %+v", records)
		}
	})
}

func TestInterceptor_UnresolvableSignature(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.MarkType("example.com/shop.Bar", Marker{}); err != nil {
		t.Fatalf("MarkType: %v", err)
	}
	sig := Signature{Package: "example.com/shop", Type: "Bar"}

	sink := &recordingSink{}
	ic := New(sink, reg)
	got, err := Wrap(ic, sig, func() (int, error) { return 7, nil })()
	if err != nil || got != 7 {
		t.Errorf("default policy = %d, %v; want 7, nil", got, err)
	}
	records := sink.all()
	if len(records) != 1 || !strings.Contains(records[0].msg, "missing method name") {
		t.Errorf("expected one warning naming the cause, got %+v", records)
	}

	legacySink := &recordingSink{}
	legacy := New(legacySink, reg, WithSuppressErrors(true))
	got, err = Wrap(legacy, sig, func() (int, error) { return 7, nil })()
	if err != nil || got != 0 {
		t.Errorf("legacy policy = %d, %v; want 0, nil", got, err)
	}
}

func TestInterceptor_ConcurrentCallsStayIndependent(t *testing.T) {
	t.Parallel()

	const workers = 16

	reg := NewRegistry()
	for i := 0; i < workers; i++ {
		if err := reg.MarkMethod("example.com/shop.Bar", fmt.Sprintf("op%d", i), Marker{}); err != nil {
			t.Fatalf("MarkMethod: %v", err)
		}
	}
	sink := &recordingSink{}
	ic := New(sink, reg)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sig := Signature{Package: "example.com/shop", Type: "Bar", Method: fmt.Sprintf("op%d", i)}
			delay := time.Duration(i%4) * 5 * time.Millisecond
			op := Wrap(ic, sig, func() (int, error) {
				time.Sleep(delay)
				return i, nil
			})
			if got, err := op(); err != nil || got != i {
				t.Errorf("op%d = %d, %v", i, got, err)
			}
		}(i)
	}
	wg.Wait()

	byEntry := make(map[string][]string)
	for _, r := range sink.all() {
		entry, _, _ := strings.Cut(r.msg, ": Total time taken")
		byEntry[entry] = append(byEntry[entry], r.msg)
	}
	if len(byEntry) != workers {
		t.Fatalf("expected %d distinct calls, got %d", workers, len(byEntry))
	}
	for entry, lines := range byEntry {
		if len(lines) != 2 {
			t.Errorf("%s: got %d lines, want entry and exit", entry, len(lines))
			continue
		}
		if lines[0] != entry {
			t.Errorf("%s: first line %q is not the entry", entry, lines[0])
		}
		exitMillis(t, entry, lines[1])
	}
}

func TestWrapVariants(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.MarkType("example.com/shop.Cart", Marker{Level: LevelDebug}); err != nil {
		t.Fatalf("MarkType: %v", err)
	}
	sink := &recordingSink{}
	ic := New(sink, reg)
	sig := func(m string) Signature { return Signature{Package: "example.com/shop", Type: "Cart", Method: m} }

	add := Wrap2(ic, sig("Add"), func(a, b int) (int, error) { return a + b, nil })
	if got, _ := add(2, 3); got != 5 {
		t.Errorf("Add = %d, want 5", got)
	}

	type ctxKey struct{}
	lookup := WrapCtx(ic, sig("Lookup"), func(ctx context.Context, k string) (string, error) {
		v, _ := ctx.Value(ctxKey{}).(string)
		return v + k, nil
	})
	ctx := context.WithValue(context.Background(), ctxKey{}, "v-")
	if got, _ := lookup(ctx, "k"); got != "v-k" {
		t.Errorf("Lookup = %q, want v-k", got)
	}

	errReset := errors.New("reset failed")
	reset := Run(ic, sig("Reset"), func() error { return errReset })
	if err := reset(); !errors.Is(err, errReset) {
		t.Errorf("Reset error = %v", err)
	}

	total, err := Do(ic, sig("Total"), func() (float64, error) { return 9.5, nil })
	if err != nil || total != 9.5 {
		t.Errorf("Total = %v, %v", total, err)
	}

	// Add, Lookup and Total log entry and exit; Reset logs its entry only.
	records := sink.all()
	if len(records) != 7 {
		t.Fatalf("expected 7 lines, got %d: %+v", len(records), records)
	}
	for _, r := range records {
		if r.level != LevelDebug {
			t.Errorf("line %q at %v, want DEBUG", r.msg, r.level)
		}
	}
}

func TestMessages(t *testing.T) {
	t.Parallel()

	entry := EntryMessage(Signature{Package: "github.com/acme/billing", Method: "Compute"})
	if entry != "Entering method - Compute of billing" {
		t.Errorf("EntryMessage = %q", entry)
	}
	if got := ExitMessage("E", 1500*time.Microsecond); got != "E: Total time taken - 1 MILLISECONDS" {
		t.Errorf("ExitMessage = %q", got)
	}
	if got := ExitMessage("E", -time.Second); got != "E: Total time taken - 0 MILLISECONDS" {
		t.Errorf("negative elapsed should clamp to zero, got %q", got)
	}
}

func TestSinkFuncs(t *testing.T) {
	t.Parallel()

	var got []string
	sink := SinkFuncs{
		InfoFunc: func(msg string) { got = append(got, "info:"+msg) },
		WarnFunc: func(msg string) { got = append(got, "warn:"+msg) },
	}
	reg := NewRegistry()
	if err := reg.MarkType("example.com/shop.Bar", Marker{}); err != nil {
		t.Fatalf("MarkType: %v", err)
	}
	ic := New(sink, reg)

	sig := Signature{Package: "example.com/shop", Type: "Bar", Method: "foo"}
	if _, err := Wrap(ic, sig, func() (int, error) { return 1, nil })(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "info:Entering method - foo of Bar" {
		t.Errorf("SinkFuncs received %v", got)
	}

	// Nil fields discard.
	sink.Trace("dropped")
	sink.Error("dropped")
	if len(got) != 2 {
		t.Errorf("nil sink funcs should discard, got %v", got)
	}

	// Without ErrWarner the cause is appended to the warning text.
	got = nil
	_, _ = ic.Intercept(sig, Marker{Level: Level(42)}, func() error { return nil })
	if len(got) != 1 || !strings.HasPrefix(got[0], "warn:"+WarningMessage+" ") || !strings.Contains(got[0], "LEVEL(42)") {
		t.Errorf("warning = %v", got)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	ic := New(nil, nil, WithClock(nil))
	if ic.Registry() == nil {
		t.Fatal("New should create an empty registry")
	}
	if _, ok := ic.Matches(Signature{Package: "p", Type: "T", Method: "M"}); ok {
		t.Error("empty registry should not match")
	}
	// Discarding sink must accept every level.
	keep, err := ic.Intercept(Signature{Package: "p", Type: "T", Method: "M"}, Marker{Level: LevelError}, func() error { return nil })
	if !keep || err != nil {
		t.Errorf("Intercept = %v, %v", keep, err)
	}
}

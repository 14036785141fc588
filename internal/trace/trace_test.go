package trace

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "phase", "DETAIL", "debug"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q) error: %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) succeeded")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopePackage) {
		t.Error("phase level emitted package scope")
	}
	if !LevelDetail.ShouldEmit(ScopePackage) || LevelDetail.ShouldEmit(ScopeType) {
		t.Error("detail level scope filtering is wrong")
	}
	if !LevelDebug.ShouldEmit(ScopeType) {
		t.Error("debug level dropped type scope")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("off tracer is enabled")
	}
	// spans on a disabled tracer are inert
	s := Begin(tr, ScopeRun, "run", 0)
	if s.ID() != 0 || s.End("") != 0 {
		t.Error("disabled span recorded")
	}
}

func TestStartNestsUnderContextSpan(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Output: &buf, Format: FormatNDJSON})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)
	ctx, run := Start(ctx, ScopeRun, "run")
	_, phase := Start(ctx, ScopePhase, "load")
	phase.WithExtra("packages", "2").End("ok")
	run.End("")

	type ev struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		SpanID   uint64            `json:"span_id"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	var events []ev
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var e ev
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad ndjson line %q: %v", sc.Text(), err)
		}
		events = append(events, e)
	}
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[1].ParentID != events[0].SpanID {
		t.Errorf("load parent = %d, want %d", events[1].ParentID, events[0].SpanID)
	}
	if events[2].Kind != "end" || events[2].Extra["packages"] != "2" {
		t.Errorf("load end event = %+v", events[2])
	}
}

func TestStreamTracerConcurrentEmit(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Begin(tr, ScopeType, "type", uint64(i)).End("")
		}()
	}
	wg.Wait()
	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("got %d lines, want 16", n)
	}
}

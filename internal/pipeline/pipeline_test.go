package pipeline

import (
	"sync"
	"testing"
	"time"
)

func TestTimingsAccumulate(t *testing.T) {
	var tm Timings
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add(StageRender, time.Millisecond)
		}()
	}
	wg.Wait()
	tm.Add(StageLoad, 2*time.Millisecond)

	if got := tm.Duration(StageRender); got != 4*time.Millisecond {
		t.Errorf("Duration(render) = %v, want 4ms", got)
	}
	if !tm.Has(StageLoad) || tm.Has(StageWrite) {
		t.Errorf("Has(load)/Has(write) = %v/%v", tm.Has(StageLoad), tm.Has(StageWrite))
	}
	if got := tm.Sum(Stages...); got != 6*time.Millisecond {
		t.Errorf("Sum = %v, want 6ms", got)
	}
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 2)
	var seen []Event
	sink := MultiSink{ChannelSink{Ch: ch}, FuncSink(func(e Event) { seen = append(seen, e) }), nil}
	Emit(sink, Event{Item: "Color", Stage: StageAnalyze, Status: StatusDone})
	Emit(nil, Event{})

	if len(seen) != 1 || seen[0].Item != "Color" {
		t.Errorf("FuncSink saw %+v", seen)
	}
	if got := <-ch; got.Stage != StageAnalyze {
		t.Errorf("ChannelSink got %+v", got)
	}
}

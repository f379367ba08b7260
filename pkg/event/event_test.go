package event_test

import (
	"sync"
	"testing"

	"github.com/Kantor012/Product-Catalog/pkg/event"
)

func TestListenAndFire(t *testing.T) {
	defer event.Flush()

	var got []interface{}
	event.Listen("test.fired", func(payload interface{}) {
		got = append(got, payload)
	})
	event.Listen("test.fired", func(payload interface{}) {
		got = append(got, payload)
	})

	event.Fire("test.fired", 42)

	if len(got) != 2 {
		t.Fatalf("expected both listeners to run, got %d calls", len(got))
	}
	if got[0] != 42 || got[1] != 42 {
		t.Errorf("listeners received wrong payload: %v", got)
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	defer event.Flush()
	event.Fire("never.registered", nil) // must not panic
}

func TestFireAsync(t *testing.T) {
	defer event.Flush()

	var wg sync.WaitGroup
	wg.Add(2)
	event.Listen("async.fired", func(interface{}) { wg.Done() })
	event.Listen("async.fired", func(interface{}) { wg.Done() })

	event.FireAsync("async.fired", nil)
	wg.Wait()
}

func TestFlush(t *testing.T) {
	calls := 0
	event.Listen("flushed", func(interface{}) { calls++ })
	event.Flush()

	event.Fire("flushed", nil)
	if calls != 0 {
		t.Error("listener survived Flush")
	}
}

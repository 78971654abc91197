package analyze

import (
	"testing"

	"github.com/racelens/racelens/internal/event"
)

func write(addr string, thread int) *event.Event {
	return &event.Event{Kind: event.KindTransition, Address: addr, Thread: thread, DoesWrite: true}
}

func read(addr string, thread int) *event.Event {
	return &event.Event{Kind: event.KindTransition, Address: addr, Thread: thread}
}

func annotation(thread int, desc string) *event.Event {
	return &event.Event{Kind: event.KindAnnotation, Thread: thread, Description: desc}
}

func TestBuildAccessSets(t *testing.T) {
	events := []*event.Event{
		write("0xa", 0),
		write("0xa", 0), // duplicate thread, deduplicated
		read("0xa", 1),
		write("0xb", 2),
		read("0xc", 0),
		annotation(0, "push returned"),
	}

	sets := BuildAccessSets(events)

	if got := len(sets.Writers["0xa"]); got != 1 {
		t.Errorf("writers[0xa] has %d threads, want 1", got)
	}
	if got := len(sets.Readers["0xa"]); got != 1 {
		t.Errorf("readers[0xa] has %d threads, want 1", got)
	}
	if _, ok := sets.Writers["0xb"][2]; !ok {
		t.Error("writers[0xb] missing thread 2")
	}
	if len(sets.Writers["0xc"]) != 0 {
		t.Error("read-only address has writers")
	}
	if len(sets.Writers) != 2 {
		t.Errorf("got %d written addresses, want 2", len(sets.Writers))
	}
}

func TestBuildAccessSetsIgnoresAnnotations(t *testing.T) {
	sets := BuildAccessSets([]*event.Event{annotation(0, "only annotations")})

	if len(sets.Writers) != 0 || len(sets.Readers) != 0 {
		t.Errorf("annotations contributed to access sets: %+v", sets)
	}
}

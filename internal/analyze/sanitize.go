package analyze

import (
	"strings"

	"github.com/racelens/racelens/internal/event"
)

// Denylists identify synchronization/allocator internals to strip from
// user-facing traces. All matching is plain substring containment; the
// lists are deliberately approximate and come from configuration, not
// from any runtime derivation.
type Denylists struct {
	// FrameFunctions: a frame whose Function contains any of these is
	// removed from every event's trace (atomic wrappers, CAS and
	// tagged-pointer primitives).
	FrameFunctions []string

	// InternalLines and InternalFunctions drive the event-level drop:
	// a frame is internal if its resolved Contents contains any
	// InternalLines entry (guard acquisition helpers) or its Function
	// contains any InternalFunctions entry (hazard-pointer plumbing).
	InternalLines     []string
	InternalFunctions []string
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// FilterFrames returns the trace with internal-function frames removed,
// preserving the order of survivors. The input slice is not modified.
func (d *Denylists) FilterFrames(trace []event.Frame) []event.Frame {
	if len(trace) == 0 {
		return trace
	}
	kept := make([]event.Frame, 0, len(trace))
	for _, frame := range trace {
		if containsAny(frame.Function, d.FrameFunctions) {
			continue
		}
		kept = append(kept, frame)
	}
	return kept
}

func (d *Denylists) frameInternal(frame *event.Frame) bool {
	return containsAny(frame.Contents, d.InternalLines) ||
		containsAny(frame.Function, d.InternalFunctions)
}

// DropEvent reports whether a transition should be removed outright:
// every frame in its trace is synchronization-internal, so the event has
// no user-visible call site and no diagnostic value. Annotations are never
// dropped, and neither is a transition with an empty trace.
func (d *Denylists) DropEvent(ev *event.Event) bool {
	if !ev.IsTransition() || len(ev.Trace) == 0 {
		return false
	}
	for i := range ev.Trace {
		if !d.frameInternal(&ev.Trace[i]) {
			return false
		}
	}
	return true
}

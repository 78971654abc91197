package analyze

import (
	"github.com/racelens/racelens/internal/event"
	"github.com/racelens/racelens/internal/highlight"
	"github.com/racelens/racelens/internal/logger"
	"github.com/racelens/racelens/internal/source"
)

// Pipeline enriches a raw trace: relevance flags, annotated descriptions,
// resolved frame contents, sanitized stacks. Deterministic for a given
// input and denylist configuration.
type Pipeline struct {
	cache *source.Cache
	deny  Denylists
}

// NewPipeline builds a pipeline around a source cache and denylists. The
// cache may be shared across runs; file contents are assumed stable for
// its lifetime.
func NewPipeline(cache *source.Cache, deny Denylists) *Pipeline {
	return &Pipeline{cache: cache, deny: deny}
}

// Run transforms events in place and returns the surviving list, in input
// order. Stage order matters: access sets come from the full unfiltered
// trace, relevance and annotation are computed before any frame is touched,
// and the event-level drop sees only the frames that survived filtering.
func (p *Pipeline) Run(events []*event.Event) []*event.Event {
	sets := BuildAccessSets(events)

	for _, ev := range events {
		if ev.IsTransition() {
			ev.Relevant = sets.Relevant(ev.Address)
			ev.Description = highlight.AnnotateAddresses(ev.Description)
		}
	}

	for _, ev := range events {
		p.resolveFrames(ev)
		ev.Trace = p.deny.FilterFrames(ev.Trace)
	}

	kept := make([]*event.Event, 0, len(events))
	for _, ev := range events {
		if p.deny.DropEvent(ev) {
			logger.Debug().
				Str("address", ev.Address).
				Int("thread", ev.Thread).
				Msg("Dropped transition with all-internal stack")
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

// resolveFrames fills in Contents for each frame: the source line with the
// token at the frame's column marked. A frame whose file cannot be read or
// whose line is out of range keeps empty Contents; the event survives.
func (p *Pipeline) resolveFrames(ev *event.Event) {
	for i := range ev.Trace {
		frame := &ev.Trace[i]

		lines, err := p.cache.Lines(frame.File)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("function", frame.Function).
				Msg("Skipping frame resolution")
			continue
		}
		if frame.Line < 1 || frame.Line > len(lines) {
			logger.Warn().
				Str("file", frame.File).
				Int("line", frame.Line).
				Msg("Frame line out of range")
			continue
		}

		// Tracer columns are 1-based; Mark wants a 0-based offset.
		frame.Contents = highlight.Mark(lines[frame.Line-1], frame.Column-1)
	}
}

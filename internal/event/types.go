// Package event defines the trace event model emitted by the instrumented
// test runner and consumed by the analysis pipeline.
package event

// Kind discriminates the two event variants found in a trace dump.
type Kind string

const (
	// KindTransition is a single recorded memory access (read or write)
	// by one thread at one address.
	KindTransition Kind = "transition"
	// KindAnnotation is a free-form marker emitted by the test program
	// itself; it carries no memory-access semantics.
	KindAnnotation Kind = "annotation"
)

// Frame is one call-stack entry as reported by the tracer. Line and Column
// are 1-based. Contents is computed during analysis: the source line with
// the token at Column demarcated.
type Frame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Function string `json:"function"`
	Contents string `json:"contents,omitempty"`
}

// Event is a single record in a trace dump. Which fields are meaningful
// depends on Kind: annotations only carry Thread, Description and Trace.
type Event struct {
	Kind        Kind    `json:"type"`
	Thread      int     `json:"thread"`
	Description string  `json:"description"`
	Trace       []Frame `json:"trace,omitempty"`

	// Transition fields. Address and the values are opaque hex strings;
	// the analysis never interprets them numerically.
	Address   string `json:"address,omitempty"`
	DoesWrite bool   `json:"does_write,omitempty"`
	Value     string `json:"value,omitempty"`
	NewValue  string `json:"new_value,omitempty"`
	Step      int    `json:"step,omitempty"`
	Length    int    `json:"length,omitempty"`

	// Relevant is computed by the pipeline: true if this transition
	// participates in a cross-thread conflicting access.
	Relevant bool `json:"relevant,omitempty"`
}

// IsTransition reports whether the event is a memory access.
func (e *Event) IsTransition() bool {
	return e.Kind == KindTransition
}

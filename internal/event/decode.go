package event

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MalformedEvent reports a record that is missing a required field for its
// variant, or is not valid JSON at all. Index is the record's 0-based
// position in the input.
type MalformedEvent struct {
	Index  int
	Reason string
}

func (e *MalformedEvent) Error() string {
	return fmt.Sprintf("malformed event at index %d: %s", e.Index, e.Reason)
}

// rawEvent mirrors Event with pointer fields for everything whose absence
// must be detected, so "missing" and "zero value" stay distinguishable.
type rawEvent struct {
	Kind        string  `json:"type"`
	Thread      *int    `json:"thread"`
	Description *string `json:"description"`
	Trace       []Frame `json:"trace"`
	Address     string  `json:"address"`
	DoesWrite   *bool   `json:"does_write"`
	Value       string  `json:"value"`
	NewValue    string  `json:"new_value"`
	Step        int     `json:"step"`
	Length      int     `json:"length"`
}

// DecodeAll reads a trace dump in JSON Lines form (one event object per
// line, blank lines ignored) and validates every record. It fails fast on
// the first malformed record with a *MalformedEvent naming its position.
func DecodeAll(r io.Reader) ([]*Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var events []*Event
	index := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawEvent
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, &MalformedEvent{Index: index, Reason: err.Error()}
		}

		ev, err := raw.validate(index)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	return events, nil
}

func (r *rawEvent) validate(index int) (*Event, error) {
	switch Kind(r.Kind) {
	case KindTransition:
		if r.Address == "" {
			return nil, &MalformedEvent{Index: index, Reason: "transition without address"}
		}
		if r.DoesWrite == nil {
			return nil, &MalformedEvent{Index: index, Reason: "transition without does_write"}
		}
		if r.Thread == nil {
			return nil, &MalformedEvent{Index: index, Reason: "transition without thread"}
		}
	case KindAnnotation:
		if r.Description == nil {
			return nil, &MalformedEvent{Index: index, Reason: "annotation without description"}
		}
	case "":
		return nil, &MalformedEvent{Index: index, Reason: "missing event type"}
	default:
		return nil, &MalformedEvent{Index: index, Reason: fmt.Sprintf("unknown event type %q", r.Kind)}
	}

	ev := &Event{
		Kind:     Kind(r.Kind),
		Trace:    r.Trace,
		Address:  r.Address,
		Value:    r.Value,
		NewValue: r.NewValue,
		Step:     r.Step,
		Length:   r.Length,
	}
	if r.Thread != nil {
		ev.Thread = *r.Thread
	}
	if r.Description != nil {
		ev.Description = *r.Description
	}
	if r.DoesWrite != nil {
		ev.DoesWrite = *r.DoesWrite
	}
	return ev, nil
}

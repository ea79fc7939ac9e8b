package models

import "time"

// Resource is a horizontal lane of the timeline
type Resource struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"` // 6-digit hex, e.g. "#fdf500"
}

// CalendarEvent is the host-facing shape of an event. It carries no internal id.
type CalendarEvent struct {
	Title    string `json:"title" yaml:"title"`
	Start    string `json:"start" yaml:"start"` // YYYY-MM-DDTHH:mm
	End      string `json:"end" yaml:"end"`     // YYYY-MM-DDTHH:mm
	Color    string `json:"color" yaml:"color"`
	Editable bool   `json:"editable" yaml:"editable"`
	Resource int    `json:"resource" yaml:"resource"` // Resource.ID
}

// StartTime parses Start. See ParseTimestamp.
func (e CalendarEvent) StartTime() (time.Time, error) {
	return ParseTimestamp(e.Start)
}

// EndTime parses End. See ParseTimestamp.
func (e CalendarEvent) EndTime() (time.Time, error) {
	return ParseTimestamp(e.End)
}

// SameSpan reports whether both events have identical start and end strings
func (e CalendarEvent) SameSpan(other CalendarEvent) bool {
	return e.Start == other.Start && e.End == other.End
}

// Span is a (start, end) pair as supplied by the host
type Span struct {
	Start string
	End   string
}

// TimedEvent is the internal form of an event: the host fields plus an id,
// pixel geometry and display labels.
type TimedEvent struct {
	CalendarEvent

	ID       int
	Geometry Geometry

	DisplayStart string // "4:00 PM"
	DisplayEnd   string // "6:30 PM"

	// Dirty is set once the user modified the event interactively.
	// Dirty events are never overwritten by an external re-sync.
	Dirty bool

	// Origin is the span the host knows the event by: the ingested span, or
	// the span reported to OnAddEvent for events created on the timeline.
	Origin Span
}

// External returns the host-facing form of the event
func (e TimedEvent) External() CalendarEvent {
	return e.CalendarEvent
}

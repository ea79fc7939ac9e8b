package interaction

import "github.com/borgmon/resource-timeline/pkg/models"

// GestureKind names a GestureState variant
type GestureKind int

const (
	KindIdle GestureKind = iota
	KindCreating
	KindDragging
	KindResizingLeft
	KindResizingRight
	KindPendingDelete
)

func (k GestureKind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindCreating:
		return "creating"
	case KindDragging:
		return "dragging"
	case KindResizingLeft:
		return "resizing-left"
	case KindResizingRight:
		return "resizing-right"
	case KindPendingDelete:
		return "pending-delete"
	}
	return "unknown"
}

// GestureState is the controller state. Exactly one variant is current:
// Idle, *Creating, *Dragging, *ResizingLeft, *ResizingRight or PendingDelete.
type GestureState interface {
	Kind() GestureKind
}

// Idle means no gesture is running
type Idle struct{}

// Creating tracks a create drag on the empty grid of a row
type Creating struct {
	ResourceID int
	ID         int // speculative id, taken at the first write past the threshold
	PressX     int // window x of the press
	Anchor     int // snapped surface x of the press
	OffsetY    int

	// Event is the last provisional event written to the store.
	// Created turns true once the threshold has been crossed.
	Event   models.TimedEvent
	Created bool
}

// Dragging tracks a move of an existing event
type Dragging struct {
	ResourceID int
	EventID    int
	ShiftX     int // pointer offset from the block's left edge at press time
	ShiftY     int
	Moved      bool
}

// ResizingLeft tracks a drag of the left edge; the right edge stays fixed
type ResizingLeft struct {
	ResourceID int
	EventID    int
	PressX     int // surface x of the press
	Right      int // fixed surface x of the right edge
	Width      int // width at press time
}

// ResizingRight tracks a drag of the right edge; the left edge stays fixed
type ResizingRight struct {
	ResourceID int
	EventID    int
	PressX     int
	Left       int
	Width      int
}

// PendingDelete waits for the user to confirm deleting EventID
type PendingDelete struct {
	EventID int
}

func (Idle) Kind() GestureKind           { return KindIdle }
func (*Creating) Kind() GestureKind      { return KindCreating }
func (*Dragging) Kind() GestureKind      { return KindDragging }
func (*ResizingLeft) Kind() GestureKind  { return KindResizingLeft }
func (*ResizingRight) Kind() GestureKind { return KindResizingRight }
func (PendingDelete) Kind() GestureKind  { return KindPendingDelete }

package interaction

import "github.com/borgmon/resource-timeline/pkg/models"

// Point is a pointer position in window coordinates
type Point struct {
	X, Y int
}

// Rect is an axis-aligned box in window coordinates
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width of the box
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height of the box
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Contains reports whether p lies inside the box. Right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// RefKind selects what a Ref points at
type RefKind int

const (
	RefSurface RefKind = iota // drag surface of a resource row
	RefEvent                  // rendered event block
)

// Ref identifies a rendered element whose bounds the controller needs
type Ref struct {
	Kind       RefKind
	ResourceID int
	EventID    int
}

// SurfaceRef refers to the drag surface of a resource row
func SurfaceRef(resourceID int) Ref {
	return Ref{Kind: RefSurface, ResourceID: resourceID}
}

// EventRef refers to the block of an event inside a resource row
func EventRef(resourceID, eventID int) Ref {
	return Ref{Kind: RefEvent, ResourceID: resourceID, EventID: eventID}
}

// BoundsProvider reports the current on-screen bounds of rendered elements.
// ok is false when the element is not rendered.
type BoundsProvider interface {
	Bounds(ref Ref) (r Rect, ok bool)
}

// BoundsFunc adapts a function to BoundsProvider
type BoundsFunc func(ref Ref) (Rect, bool)

// Bounds calls f(ref)
func (f BoundsFunc) Bounds(ref Ref) (Rect, bool) {
	return f(ref)
}

// EventRect places an event geometry inside its row surface
func EventRect(surface Rect, g models.Geometry) Rect {
	left := surface.Left + g.Left(surface.Width())
	top := surface.Top + g.OffsetY
	return Rect{Left: left, Top: top, Right: left + g.Width, Bottom: top + g.Height}
}

// TargetKind is what a pointer press landed on
type TargetKind int

const (
	TargetGrid        TargetKind = iota // empty grid area of a row
	TargetEvent                         // body of an event block
	TargetLeftHandle                    // left resize handle of an event block
	TargetRightHandle                   // right resize handle of an event block
)

func (k TargetKind) String() string {
	switch k {
	case TargetGrid:
		return "grid"
	case TargetEvent:
		return "event"
	case TargetLeftHandle:
		return "left-handle"
	case TargetRightHandle:
		return "right-handle"
	}
	return "unknown"
}

// Target is the element under a pointer press
type Target struct {
	Kind    TargetKind
	EventID int // unused for TargetGrid
}

package interaction

import "github.com/google/uuid"

// GestureHandle is the lifecycle of one pointer gesture: one move listener and
// one release listener, both dropped on End.
type GestureHandle struct {
	id    uuid.UUID
	kind  GestureKind
	move  func(Point)
	end   func(Point)
	ended bool
}

func newGestureHandle(kind GestureKind) *GestureHandle {
	return &GestureHandle{id: uuid.New(), kind: kind}
}

// ID identifies the gesture in logs
func (h *GestureHandle) ID() uuid.UUID {
	return h.id
}

// Kind of gesture the handle drives
func (h *GestureHandle) Kind() GestureKind {
	return h.kind
}

// OnMove sets the move listener, replacing any previous one
func (h *GestureHandle) OnMove(fn func(Point)) {
	h.move = fn
}

// OnEnd sets the release listener, replacing any previous one
func (h *GestureHandle) OnEnd(fn func(Point)) {
	h.end = fn
}

// Ended reports whether End has been called
func (h *GestureHandle) Ended() bool {
	return h.ended
}

// Move delivers a pointer move. Ignored after End.
func (h *GestureHandle) Move(p Point) {
	if h.ended || h.move == nil {
		return
	}
	h.move(p)
}

// End removes both listeners, then runs the release listener once.
// Later calls are no-ops.
func (h *GestureHandle) End(p Point) {
	if h.ended {
		return
	}
	h.ended = true
	end := h.end
	h.move, h.end = nil, nil
	if end != nil {
		end(p)
	}
}

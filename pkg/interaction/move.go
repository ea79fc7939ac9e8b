package interaction

import (
	"go.uber.org/zap"

	"github.com/borgmon/resource-timeline/pkg/store"
)

func (c *Controller) beginDrag(resourceID, eventID int, p Point) {
	if _, ok := c.store.Get(eventID); !ok {
		return
	}
	block, ok := c.bounds.Bounds(EventRef(resourceID, eventID))
	if !ok {
		return
	}
	c.store.Dispatch(store.SetActive{ID: eventID})

	st := &Dragging{
		ResourceID: resourceID,
		EventID:    eventID,
		ShiftX:     p.X - block.Left,
		ShiftY:     p.Y - block.Top,
	}
	h := c.begin(st, p)
	h.OnMove(func(p Point) { c.dragMove(st, p) })
	h.OnEnd(func(Point) {
		defer c.finish(h)
		if !st.Moved {
			c.store.NotifyClick(eventID)
			return
		}
		if ev, ok := c.store.Get(eventID); ok {
			c.logger.Info("event moved",
				zap.Int("id", eventID), zap.String("start", ev.Start), zap.String("end", ev.End))
		}
	})
}

// dragMove re-anchors the block on its left edge at the snapped pointer
// position. Ticks that would put the block at x <= 0 are dropped.
func (c *Controller) dragMove(st *Dragging, p Point) {
	surface, ok := c.surface(st.ResourceID)
	if !ok {
		return
	}
	ev, ok := c.store.Get(st.EventID)
	if !ok {
		return
	}

	local := p.X - st.ShiftX - surface.Left
	x := c.mapper.Snap(c.mapper.Coefficient(local), local)
	if x <= 0 {
		return
	}
	sw := surface.Width()
	if x == ev.Geometry.Left(sw) {
		return
	}

	width := ev.Geometry.Width
	ev.Geometry = ev.Geometry.AnchorLeftAt(x)
	c.setStart(&ev, x)
	c.setEnd(&ev, x+width)
	ev.Dirty = true

	st.Moved = true
	c.store.Dispatch(store.UpdateGeometry{Event: ev})
}

func (c *Controller) beginResize(resourceID, eventID int, left bool, surface Rect, p Point) {
	ev, ok := c.store.Get(eventID)
	if !ok {
		return
	}
	c.store.Dispatch(store.SetActive{ID: eventID})

	sw := surface.Width()
	local := p.X - surface.Left

	var (
		st   GestureState
		move func(Point)
	)
	if left {
		rl := &ResizingLeft{
			ResourceID: resourceID,
			EventID:    eventID,
			PressX:     local,
			Right:      ev.Geometry.Right(sw),
			Width:      ev.Geometry.Width,
		}
		st, move = rl, func(p Point) { c.resizeLeftMove(rl, p) }
	} else {
		rr := &ResizingRight{
			ResourceID: resourceID,
			EventID:    eventID,
			PressX:     local,
			Left:       ev.Geometry.Left(sw),
			Width:      ev.Geometry.Width,
		}
		st, move = rr, func(p Point) { c.resizeRightMove(rr, p) }
	}

	h := c.begin(st, p)
	h.OnMove(move)
	h.OnEnd(func(Point) {
		defer c.finish(h)
		ev, ok := c.store.Get(eventID)
		if !ok {
			return
		}
		if clamped := c.clampWidth(ev); clamped.Geometry.Width != ev.Geometry.Width {
			clamped.Dirty = true
			c.store.Dispatch(store.UpdateGeometry{Event: clamped})
			ev = clamped
		}
		c.logger.Info("event resized",
			zap.Int("id", eventID), zap.Stringer("edge", h.Kind()),
			zap.String("start", ev.Start), zap.String("end", ev.End))
	})
}

// resizeLeftMove keeps the right edge anchored and recomputes the start.
// Negative widths and left edges at x <= 0 are dropped.
func (c *Controller) resizeLeftMove(st *ResizingLeft, p Point) {
	surface, ok := c.surface(st.ResourceID)
	if !ok {
		return
	}
	ev, ok := c.store.Get(st.EventID)
	if !ok {
		return
	}

	delta := p.X - surface.Left - st.PressX
	step := c.snapDelta(delta)
	width := st.Width + step
	if delta > 0 {
		width = st.Width - step
	}
	left := st.Right - width
	if width < 0 || left <= 0 {
		return
	}

	ev.Geometry = ev.Geometry.AnchorRightAt(st.Right, surface.Width())
	ev.Geometry.Width = width
	c.setStart(&ev, left)
	ev.Dirty = true
	c.store.Dispatch(store.UpdateGeometry{Event: ev})
}

// resizeRightMove keeps the left edge anchored and recomputes the end.
// Negative widths are dropped.
func (c *Controller) resizeRightMove(st *ResizingRight, p Point) {
	surface, ok := c.surface(st.ResourceID)
	if !ok {
		return
	}
	ev, ok := c.store.Get(st.EventID)
	if !ok {
		return
	}

	delta := p.X - surface.Left - st.PressX
	step := c.snapDelta(delta)
	width := st.Width - step
	if delta > 0 {
		width = st.Width + step
	}
	if width < 0 {
		return
	}

	ev.Geometry = ev.Geometry.AnchorLeftAt(st.Left)
	ev.Geometry.Width = width
	c.setEnd(&ev, st.Left+width)
	ev.Dirty = true
	c.store.Dispatch(store.UpdateGeometry{Event: ev})
}

// Hover records whether the pointer is over the block of eventID.
// Resize handles are only accepted on the hovered block.
func (c *Controller) Hover(eventID int, inside bool) {
	switch {
	case inside:
		c.hovered, c.hovering = eventID, true
	case c.hovering && c.hovered == eventID:
		c.hovering = false
	}
}

// IsHovered reports whether the pointer is over the block of eventID
func (c *Controller) IsHovered(eventID int) bool {
	return c.hovering && c.hovered == eventID
}

package interaction

import (
	"go.uber.org/zap"

	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/store"
)

func (c *Controller) beginCreate(resourceID int, surface Rect, p Point) {
	local := p.X - surface.Left
	st := &Creating{
		ResourceID: resourceID,
		PressX:     p.X,
		Anchor:     c.mapper.Snap(c.mapper.Coefficient(local), local),
		OffsetY:    p.Y - surface.Top - c.cfg.CreateTopInset,
	}

	h := c.begin(st, p)
	h.OnMove(func(p Point) { c.createMove(st, p) })
	h.OnEnd(func(Point) {
		defer c.finish(h)
		if !st.Created {
			c.logger.Debug("create below threshold, nothing added", zap.Stringer("gesture", h.ID()))
			return
		}
		ev := c.clampWidth(st.Event)
		c.store.Dispatch(store.AddEvent{Event: ev})
		c.logger.Info("event created",
			zap.Int("id", ev.ID), zap.Int("resource", ev.Resource),
			zap.String("start", ev.Start), zap.String("end", ev.End))
	})
}

// createMove writes the provisional event under the speculative id. Below the
// threshold the previous tick's event stays as it is.
func (c *Controller) createMove(st *Creating, p Point) {
	delta := p.X - st.PressX
	if abs(delta) <= c.cfg.CreateThreshold {
		return
	}
	surface, ok := c.surface(st.ResourceID)
	if !ok {
		return
	}
	width := c.snapDelta(delta)
	bg := c.rowColor(st.ResourceID)

	ev := models.TimedEvent{
		CalendarEvent: models.CalendarEvent{
			Title:    c.cfg.NewEventTitle,
			Color:    c.cfg.NewEventColor,
			Resource: st.ResourceID,
		},
	}
	if delta > 0 {
		ev.Geometry = models.LeftAnchored(st.Anchor, st.OffsetY, width, c.cfg.EventHeight, bg)
		c.setStart(&ev, st.Anchor)
		c.setEnd(&ev, st.Anchor+width)
	} else {
		if st.Anchor-width < 0 {
			return
		}
		ev.Geometry = models.RightAnchored(surface.Width()-st.Anchor, st.OffsetY, width, c.cfg.EventHeight, bg)
		c.setStart(&ev, st.Anchor-width)
		c.setEnd(&ev, st.Anchor)
	}

	if !c.ownsSpeculativeID(st) {
		st.ID = c.store.MaxKey()
	}
	ev.ID = st.ID

	st.Event = ev
	st.Created = true
	c.store.Dispatch(store.UpdateGeometry{Event: ev})
}

// ownsSpeculativeID reports whether the store still holds this gesture's
// provisional event under st.ID. Events synced in since the last write keep
// their ids.
func (c *Controller) ownsSpeculativeID(st *Creating) bool {
	if !st.Created {
		return false
	}
	cur, ok := c.store.Get(st.ID)
	return ok && cur == st.Event
}

// clampWidth raises a width below the minimum, keeping the anchored edge and
// re-deriving the moving edge's timestamp
func (c *Controller) clampWidth(ev models.TimedEvent) models.TimedEvent {
	minWidth := c.cfg.MinEventWidth
	if ev.Geometry.Width >= minWidth {
		return ev
	}
	surface, ok := c.surface(ev.Resource)
	if !ok {
		return ev
	}
	sw := surface.Width()
	ev.Geometry.Width = minWidth
	if ev.Geometry.Anchor == models.AnchorRight {
		c.setStart(&ev, ev.Geometry.Left(sw))
	} else {
		c.setEnd(&ev, ev.Geometry.Right(sw))
	}
	return ev
}

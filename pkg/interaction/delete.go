package interaction

import (
	"go.uber.org/zap"

	"github.com/borgmon/resource-timeline/pkg/store"
)

// KeyDown handles a key pressed while the block of eventID has focus
func (c *Controller) KeyDown(eventID int, key string) {
	if key == KeyDelete {
		c.RequestDelete(eventID)
	}
}

// RequestDelete makes eventID the deletion target and asks for confirmation.
// It returns false when a gesture or another deletion is running, or the
// event is unknown.
func (c *Controller) RequestDelete(eventID int) bool {
	if c.state.Kind() != KindIdle {
		return false
	}
	ev, ok := c.store.Get(eventID)
	if !ok {
		return false
	}

	c.store.Dispatch(store.SetActive{ID: eventID})
	c.state = PendingDelete{EventID: eventID}
	c.logger.Debug("delete requested", zap.Int("id", eventID))

	if c.prompt == nil {
		c.resolveDelete(eventID, true)
		return true
	}
	c.prompt.Ask(ev, func(confirm bool) { c.resolveDelete(eventID, confirm) })
	return true
}

func (c *Controller) resolveDelete(eventID int, confirm bool) {
	pending, ok := c.state.(PendingDelete)
	if !ok || pending.EventID != eventID {
		return
	}
	c.state = Idle{}

	if !confirm {
		c.logger.Debug("delete cancelled", zap.Int("id", eventID))
		return
	}
	c.store.Dispatch(store.DeleteEvent{ID: eventID})
	c.logger.Info("event deleted", zap.Int("id", eventID))
}

// Blur clears the active event when its block loses focus, unless a
// deletion of it waits for confirmation
func (c *Controller) Blur(eventID int) {
	if _, ok := c.state.(PendingDelete); ok {
		return
	}
	if id, ok := c.store.ActiveID(); ok && id == eventID {
		c.store.Dispatch(store.SetInactive{})
	}
}

// Package interaction turns pointer and keyboard input on resource rows into
// event store actions: creating, moving, resizing and deleting events.
//
// A Controller runs on the UI thread and is not safe for concurrent use.
package interaction

import (
	"time"

	"go.uber.org/zap"

	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/store"
	"github.com/borgmon/resource-timeline/pkg/timegrid"
)

// KeyDelete is the key name that asks to delete the focused event
const KeyDelete = "Delete"

// DeletePrompt asks the user to confirm a deletion. answer must be called
// exactly once, possibly later from the UI thread.
type DeletePrompt interface {
	Ask(ev models.TimedEvent, answer func(confirm bool))
}

// PromptFunc adapts a function to DeletePrompt
type PromptFunc func(ev models.TimedEvent, answer func(confirm bool))

// Ask calls f
func (f PromptFunc) Ask(ev models.TimedEvent, answer func(bool)) {
	f(ev, answer)
}

// Options configure a Controller
type Options struct {
	Store  *store.EventStore
	Bounds BoundsProvider
	Prompt DeletePrompt // nil deletes without asking
	Logger *zap.Logger
	Now    func() time.Time // clock of the move rate limit
}

// Controller is the gesture state machine shared by all rows of a timeline
type Controller struct {
	store  *store.EventStore
	bounds BoundsProvider
	prompt DeletePrompt
	logger *zap.Logger
	cfg    *models.Config
	mapper *timegrid.Mapper

	state   GestureState
	handle  *GestureHandle
	limiter moveLimiter

	hovered  int
	hovering bool
}

// NewController creates an idle controller
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cfg := opts.Store.Config()
	return &Controller{
		store:   opts.Store,
		bounds:  opts.Bounds,
		prompt:  opts.Prompt,
		logger:  logger,
		cfg:     cfg,
		mapper:  opts.Store.Mapper(),
		state:   Idle{},
		limiter: moveLimiter{interval: cfg.MoveInterval, now: now},
	}
}

// State returns the current gesture state
func (c *Controller) State() GestureState {
	return c.state
}

// Handle returns the running gesture, or nil when no pointer gesture runs
func (c *Controller) Handle() *GestureHandle {
	return c.handle
}

// PointerDown starts a gesture on the row of resourceID. It is ignored while
// a deletion waits for confirmation.
func (c *Controller) PointerDown(resourceID int, target Target, p Point) {
	if _, ok := c.state.(PendingDelete); ok {
		return
	}
	if c.handle != nil && !c.handle.Ended() {
		c.logger.Warn("gesture abandoned without release",
			zap.Stringer("gesture", c.handle.ID()), zap.Stringer("kind", c.handle.Kind()))
		c.handle.End(p)
	}

	surface, ok := c.bounds.Bounds(SurfaceRef(resourceID))
	if !ok {
		return
	}

	kind := target.Kind
	if (kind == TargetLeftHandle || kind == TargetRightHandle) && !c.IsHovered(target.EventID) {
		kind = TargetEvent
	}

	switch kind {
	case TargetGrid:
		c.beginCreate(resourceID, surface, p)
	case TargetEvent:
		c.beginDrag(resourceID, target.EventID, p)
	case TargetLeftHandle, TargetRightHandle:
		c.beginResize(resourceID, target.EventID, kind == TargetLeftHandle, surface, p)
	}
}

// PointerMove feeds the running gesture. Moves are rate limited.
func (c *Controller) PointerMove(p Point) {
	if c.handle == nil || c.handle.Ended() {
		return
	}
	if !c.limiter.admit(p) {
		return
	}
	c.handle.Move(p)
}

// PointerUp ends the running gesture after applying any parked move
func (c *Controller) PointerUp(p Point) {
	h := c.handle
	if h == nil || h.Ended() {
		return
	}
	if parked, ok := c.limiter.flush(); ok {
		h.Move(parked)
	}
	h.End(p)
}

func (c *Controller) begin(state GestureState, p Point) *GestureHandle {
	h := newGestureHandle(state.Kind())
	c.state = state
	c.handle = h
	c.limiter.reset(p)
	c.logger.Debug("gesture started", zap.Stringer("gesture", h.ID()), zap.Stringer("kind", h.Kind()))
	return h
}

func (c *Controller) finish(h *GestureHandle) {
	if c.handle == h {
		c.handle = nil
		c.state = Idle{}
	}
	c.logger.Debug("gesture ended", zap.Stringer("gesture", h.ID()), zap.Stringer("kind", h.Kind()))
}

func (c *Controller) surface(resourceID int) (Rect, bool) {
	return c.bounds.Bounds(SurfaceRef(resourceID))
}

func (c *Controller) slot(x int) timegrid.Slot {
	return c.mapper.PixelToTimeAt(x, c.store.WeekStart())
}

func (c *Controller) setStart(ev *models.TimedEvent, x int) {
	s := c.slot(x)
	ev.Start = s.Timestamp()
	ev.DisplayStart = s.Time12()
}

func (c *Controller) setEnd(ev *models.TimedEvent, x int) {
	s := c.slot(x)
	ev.End = s.Timestamp()
	ev.DisplayEnd = s.Time12()
}

// snapDelta quantizes a pointer distance to whole grid steps
func (c *Controller) snapDelta(delta int) int {
	return timegrid.Snap(c.mapper.Build(0).Boundaries, abs(delta))
}

func (c *Controller) rowColor(resourceID int) string {
	if r, ok := c.store.Resource(resourceID); ok {
		return r.Color
	}
	return c.cfg.DefaultColor
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

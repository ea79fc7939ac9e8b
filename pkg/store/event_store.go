package store

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/timegrid"
	"github.com/borgmon/resource-timeline/pkg/week"
)

// Callbacks notify the host application. Any of them may be nil.
type Callbacks struct {
	OnAddEvent    func(models.TimedEvent)
	OnDeleteEvent func(models.TimedEvent)
	OnEventClick  func(models.TimedEvent)
}

// Action is a store mutation. The set is closed: AddEvent, UpdateGeometry,
// DeleteEvent, SetActive and SetInactive.
type Action interface {
	isAction()
}

// AddEvent stores a completed new event and notifies OnAddEvent
type AddEvent struct{ Event models.TimedEvent }

// UpdateGeometry overwrites the event stored under Event.ID, creating it if needed
type UpdateGeometry struct{ Event models.TimedEvent }

// DeleteEvent removes an event and notifies OnDeleteEvent
type DeleteEvent struct{ ID int }

// SetActive marks the event targeted by gestures and deletion
type SetActive struct{ ID int }

// SetInactive clears the active event
type SetInactive struct{}

func (AddEvent) isAction()       {}
func (UpdateGeometry) isAction() {}
func (DeleteEvent) isAction()    {}
func (SetActive) isAction()      {}
func (SetInactive) isAction()    {}

// Options configure a new EventStore
type Options struct {
	Config    *models.Config
	Mapper    *timegrid.Mapper
	Resources []models.Resource
	Events    []models.CalendarEvent // host-supplied initial events
	WeekStart time.Time
	Callbacks Callbacks
	Logger    *zap.Logger
}

// EventStore owns the event map of one timeline. All rows and gestures
// mutate it through Dispatch.
type EventStore struct {
	mu sync.RWMutex

	cfg         *models.Config
	transformer *Transformer
	nav         *week.Navigator
	logger      *zap.Logger

	events    EventMap
	active    int
	hasActive bool

	// last host-supplied list, replayed when the visible week changes
	external []models.CalendarEvent

	callbacks   Callbacks
	subscribers map[int]func()
	nextSub     int
}

// NewEventStore ingests the initial host events with ids starting at 1
func NewEventStore(opts Options) *EventStore {
	cfg := opts.Config
	if cfg == nil {
		cfg = models.DefaultConfig()
	}
	cfg.Normalize()

	mapper := opts.Mapper
	if mapper == nil {
		mapper = timegrid.NewMapperFromConfig(cfg)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	weekStart := opts.WeekStart
	if weekStart.IsZero() {
		weekStart = time.Now()
	}

	s := &EventStore{
		cfg: cfg,
		transformer: &Transformer{
			Mapper:    mapper,
			Config:    cfg,
			Resources: append([]models.Resource(nil), opts.Resources...),
			Logger:    logger,
		},
		nav:         week.NewNavigator(weekStart),
		logger:      logger,
		external:    append([]models.CalendarEvent(nil), opts.Events...),
		callbacks:   opts.Callbacks,
		subscribers: make(map[int]func()),
	}
	s.events = s.transformer.Ingest(s.external, s.nav.Start(), 1)

	logger.Info("event store ready",
		zap.Int("events", len(s.events)),
		zap.Int("resources", len(opts.Resources)),
		zap.Time("week_start", s.nav.Start()))
	return s
}

// Dispatch applies an action. Actions on unknown ids are ignored.
// Host callbacks and subscribers run after the store is unlocked.
func (s *EventStore) Dispatch(a Action) {
	var notify func()

	s.mu.Lock()
	switch a := a.(type) {
	case AddEvent:
		ev := a.Event
		// the host learns this span through OnAddEvent
		if ev.Origin == (models.Span{}) {
			ev.Origin = models.Span{Start: ev.Start, End: ev.End}
		}
		s.events[ev.ID] = ev
		if cb := s.callbacks.OnAddEvent; cb != nil {
			notify = func() { cb(ev) }
		}
		s.logger.Debug("event added", zap.Int("id", ev.ID), zap.String("start", ev.Start), zap.String("end", ev.End))

	case UpdateGeometry:
		s.events[a.Event.ID] = a.Event

	case DeleteEvent:
		ev, ok := s.events[a.ID]
		if !ok {
			s.mu.Unlock()
			s.logger.Debug("delete of unknown event ignored", zap.Int("id", a.ID))
			return
		}
		delete(s.events, a.ID)
		if s.hasActive && s.active == a.ID {
			s.hasActive = false
		}
		if cb := s.callbacks.OnDeleteEvent; cb != nil {
			notify = func() { cb(ev) }
		}
		s.logger.Debug("event deleted", zap.Int("id", a.ID), zap.String("title", ev.Title))

	case SetActive:
		s.active, s.hasActive = a.ID, true

	case SetInactive:
		s.hasActive = false
	}
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	s.changed()
}

// NotifyClick reports a direct click on an event to the host
func (s *EventStore) NotifyClick(id int) {
	ev, ok := s.Get(id)
	if !ok {
		return
	}
	if cb := s.callbacks.OnEventClick; cb != nil {
		cb(ev)
	}
}

// Sync merges a new host event list (a host re-render) into the store
func (s *EventStore) Sync(external []models.CalendarEvent) {
	s.mu.Lock()
	s.external = append([]models.CalendarEvent(nil), external...)
	s.events = s.transformer.MergeExternalUpdate(s.events, s.external, s.nav.Start())
	s.mu.Unlock()

	s.changed()
}

// Navigate moves the visible week forward (dir > 0) or back (dir < 0) and
// re-merges the last host list against it
func (s *EventStore) Navigate(dir int) time.Time {
	s.mu.Lock()
	start := s.nav.Go(dir)
	s.events = s.transformer.MergeExternalUpdate(s.events, s.external, start)
	s.mu.Unlock()

	s.logger.Debug("week changed", zap.Time("week_start", start))
	s.changed()
	return start
}

// Subscribe registers fn to run after every change. The returned func removes it.
func (s *EventStore) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *EventStore) changed() {
	s.mu.RLock()
	subs := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

// Get returns the event stored under id
func (s *EventStore) Get(id int) (models.TimedEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id]
	return ev, ok
}

// Events returns a copy of all tracked events
func (s *EventStore) Events() EventMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events.Clone()
}

// Visible returns the events of the visible week
func (s *EventStore) Visible() EventMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return VisibleSlice(s.events, s.nav.Start())
}

// MaxKey returns the id the next new event gets
func (s *EventStore) MaxKey() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return MaxKey(s.events)
}

// ActiveID returns the active event, if any
func (s *EventStore) ActiveID() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.hasActive
}

// WeekStart returns the first day of the visible week
func (s *EventStore) WeekStart() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.Start()
}

// Days returns the labels of the visible week
func (s *EventStore) Days() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nav.Days()
}

// Resources returns the resource rows
func (s *EventStore) Resources() []models.Resource {
	return append([]models.Resource(nil), s.transformer.Resources...)
}

// Resource looks up a resource row by id
func (s *EventStore) Resource(id int) (models.Resource, bool) {
	for _, r := range s.transformer.Resources {
		if r.ID == id {
			return r, true
		}
	}
	return models.Resource{}, false
}

// Config returns the timeline configuration
func (s *EventStore) Config() *models.Config {
	return s.cfg
}

// Mapper returns the grid mapper shared with the interaction layer
func (s *EventStore) Mapper() *timegrid.Mapper {
	return s.transformer.Mapper
}

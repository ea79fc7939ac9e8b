package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"fyne.io/fyne/v2/test"

	"github.com/borgmon/resource-timeline/pkg/models"
)

func newTestStore(t *testing.T, cb Callbacks, events ...models.CalendarEvent) *EventStore {
	return NewEventStore(Options{
		Resources: testResources,
		Events:    events,
		WeekStart: weekOf16Jan,
		Callbacks: cb,
		Logger:    zaptest.NewLogger(t),
	})
}

var standup = models.CalendarEvent{
	Title:    "Standup",
	Start:    "2023-01-19T16:00",
	End:      "2023-01-19T18:30",
	Resource: 1,
}

func TestNewEventStore(t *testing.T) {
	s := newTestStore(t, Callbacks{}, standup)

	ev, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "4:00 PM", ev.DisplayStart)
	assert.Equal(t, 2, s.MaxKey())
	assert.Equal(t, "16 Mon Jan 2023", s.Days()[0])
	assert.Equal(t, weekOf16Jan, s.WeekStart())

	_, active := s.ActiveID()
	assert.False(t, active)
}

func TestNewEventStore_Defaults(t *testing.T) {
	s := NewEventStore(Options{})
	assert.NotNil(t, s.Config())
	assert.NotNil(t, s.Mapper())
	assert.Equal(t, 1, s.MaxKey())
	assert.Empty(t, s.Visible())
}

func TestDispatch_DeleteEvent(t *testing.T) {
	var deleted []models.TimedEvent
	s := newTestStore(t, Callbacks{
		OnDeleteEvent: func(ev models.TimedEvent) { deleted = append(deleted, ev) },
	}, standup)

	s.Dispatch(SetActive{ID: 1})
	s.Dispatch(DeleteEvent{ID: 1})

	require.Len(t, deleted, 1)
	assert.Equal(t, "Standup", deleted[0].Title)
	assert.NotContains(t, s.Visible(), 1)
	_, active := s.ActiveID()
	assert.False(t, active)

	// unknown id is a no-op
	s.Dispatch(DeleteEvent{ID: 1})
	assert.Len(t, deleted, 1)
}

func TestDispatch_AddEvent(t *testing.T) {
	var added []models.TimedEvent
	s := newTestStore(t, Callbacks{
		OnAddEvent: func(ev models.TimedEvent) { added = append(added, ev) },
	})

	ev := models.TimedEvent{
		ID:            s.MaxKey(),
		CalendarEvent: models.CalendarEvent{Title: "New Event", Start: "2023-01-17T09:00", End: "2023-01-17T10:00", Resource: 2},
	}
	s.Dispatch(UpdateGeometry{Event: ev})
	assert.Empty(t, added, "geometry updates do not notify the host")

	s.Dispatch(AddEvent{Event: ev})
	require.Len(t, added, 1)
	assert.Equal(t, 1, added[0].ID)
	assert.Equal(t, models.Span{Start: "2023-01-17T09:00", End: "2023-01-17T10:00"}, added[0].Origin)
	assert.Equal(t, 2, s.MaxKey())

	got, _ := s.Get(1)
	assert.Equal(t, added[0], got)
}

func TestSync_MovedAddedEventNotDuplicated(t *testing.T) {
	var added []models.TimedEvent
	s := newTestStore(t, Callbacks{
		OnAddEvent: func(ev models.TimedEvent) { added = append(added, ev) },
	})

	s.Dispatch(AddEvent{Event: models.TimedEvent{
		ID:            s.MaxKey(),
		CalendarEvent: models.CalendarEvent{Title: "New Event", Start: "2023-01-17T09:00", End: "2023-01-17T10:00", Resource: 2},
	}})
	require.Len(t, added, 1)

	moved, _ := s.Get(1)
	moved.Start, moved.End = "2023-01-17T11:00", "2023-01-17T12:00"
	moved.Dirty = true
	s.Dispatch(UpdateGeometry{Event: moved})

	s.Sync([]models.CalendarEvent{added[0].External()})
	require.Len(t, s.Events(), 1)
	got, _ := s.Get(1)
	assert.Equal(t, "2023-01-17T11:00", got.Start)
}

func TestDispatch_UpdateGeometryLastWriteWins(t *testing.T) {
	s := newTestStore(t, Callbacks{}, standup)

	ev, _ := s.Get(1)
	ev.Geometry.Width = 42
	s.Dispatch(UpdateGeometry{Event: ev})
	ev.Geometry.Width = 84
	s.Dispatch(UpdateGeometry{Event: ev})

	got, _ := s.Get(1)
	assert.Equal(t, 84, got.Geometry.Width)
}

func TestDispatch_ActiveLifecycle(t *testing.T) {
	s := newTestStore(t, Callbacks{}, standup)

	s.Dispatch(SetActive{ID: 1})
	id, ok := s.ActiveID()
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	s.Dispatch(SetInactive{})
	_, ok = s.ActiveID()
	assert.False(t, ok)
}

func TestSubscribe(t *testing.T) {
	s := newTestStore(t, Callbacks{}, standup)

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })
	s.Dispatch(SetActive{ID: 1})
	s.Navigate(1)
	assert.Equal(t, 2, calls)

	unsubscribe()
	s.Dispatch(SetInactive{})
	assert.Equal(t, 2, calls)
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := newTestStore(t, Callbacks{}, standup)
	var seen int
	s.Subscribe(func() { seen = len(s.Events()) })
	s.Dispatch(DeleteEvent{ID: 1})
	assert.Equal(t, 0, seen)
}

func TestNavigate(t *testing.T) {
	s := newTestStore(t, Callbacks{}, standup)

	start := s.Navigate(1)
	assert.Equal(t, weekOf16Jan.AddDate(0, 0, 7), start)
	assert.Empty(t, s.Visible())
	assert.Len(t, s.Events(), 1, "navigation keeps the tracked events")

	s.Navigate(-1)
	assert.Contains(t, s.Visible(), 1)
}

func TestSync(t *testing.T) {
	s := newTestStore(t, Callbacks{}, standup)

	s.Sync([]models.CalendarEvent{
		standup,
		{Title: "Review", Start: "2023-01-20T10:00", End: "2023-01-20T11:00", Resource: 2},
	})
	assert.Equal(t, []int{1, 2}, s.Events().IDs())

	s.Sync([]models.CalendarEvent{standup})
	assert.Len(t, s.Events(), 2, "sync only adds")
}

func TestNotifyClick(t *testing.T) {
	var clicked []int
	s := newTestStore(t, Callbacks{
		OnEventClick: func(ev models.TimedEvent) { clicked = append(clicked, ev.ID) },
	}, standup)

	s.NotifyClick(1)
	s.NotifyClick(7)
	assert.Equal(t, []int{1}, clicked)
}

func TestResource(t *testing.T) {
	s := newTestStore(t, Callbacks{})
	r, ok := s.Resource(2)
	require.True(t, ok)
	assert.Equal(t, "Room B", r.Name)

	_, ok = s.Resource(9)
	assert.False(t, ok)
	assert.Len(t, s.Resources(), 2)
}

func TestConfigStore(t *testing.T) {
	cs := NewConfigStore(test.NewTempApp(t))

	cfg := cs.Load(nil)
	assert.Equal(t, models.DefaultConfig(), cfg)

	cfg.HoldToDelete = 3
	cfg.NewEventTitle = "Booking"
	cfg.DayWidth = 2688
	cs.Save(cfg)

	got := cs.Load(nil)
	assert.Equal(t, 3, got.HoldToDelete)
	assert.Equal(t, "Booking", got.NewEventTitle)
	assert.Equal(t, 2688, got.DayWidth)
	assert.Equal(t, cfg.MoveInterval, got.MoveInterval)

	assert.Nil(t, cs.LoadResources())
	cs.SaveResources(testResources)
	assert.Equal(t, testResources, cs.LoadResources())
}

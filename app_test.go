package main

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/borgmon/resource-timeline/pkg/config"
	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/store"
)

func TestHostEvents(t *testing.T) {
	h := &hostEvents{}
	h.setLocal(demoEvents[:1])
	h.setRemote([]models.CalendarEvent{{Title: "Remote", Start: "2023-01-17T09:00", End: "2023-01-17T10:00", Resource: 2}})

	created := models.CalendarEvent{Title: "New Event", Start: "2023-01-16T16:00", End: "2023-01-16T17:45", Resource: 1}
	h.add(created)
	assert.Len(t, h.all(), 3)

	moved := models.TimedEvent{
		CalendarEvent: models.CalendarEvent{Title: "Fixed event", Start: "2023-01-19T17:00", End: "2023-01-19T19:30", Resource: 1},
		Origin:        models.Span{Start: "2023-01-19T16:00", End: "2023-01-19T18:30"},
	}
	assert.True(t, h.remove(moved), "matched by its ingested span")
	assert.True(t, h.remove(models.TimedEvent{CalendarEvent: created}))
	assert.False(t, h.remove(models.TimedEvent{CalendarEvent: created}))

	remaining := h.all()
	require.Len(t, remaining, 1)
	assert.Equal(t, "Remote", remaining[0].Title)
}

func TestTimelineApp_Dataset(t *testing.T) {
	a := test.NewTempApp(t)
	dir := t.TempDir()
	eventsPath := filepath.Join(dir, "events.yaml")
	require.NoError(t, config.SaveDataset(eventsPath, &config.Dataset{
		Resources: demoResources,
		Events:    demoEvents,
	}))

	ta, err := newTimelineApp(a, AppOptions{
		ConfigPath: filepath.Join(dir, "timeline.yaml"),
		EventsPath: eventsPath,
		Week:       "2023-01-16",
		Logger:     zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Len(t, ta.store.Events(), 3)
	assert.Len(t, ta.store.Visible(), 2, "the Jan 13 event lies in the previous week")

	ev, ok := ta.store.Get(1)
	require.True(t, ok)
	ev.Start, ev.End = "2023-01-19T17:00", "2023-01-19T19:30"
	ev.Dirty = true
	ta.store.Dispatch(store.UpdateGeometry{Event: ev})

	ta.shutdown()

	saved, err := config.LoadDataset(eventsPath)
	require.NoError(t, err)
	require.Len(t, saved.Events, 3)
	assert.Equal(t, "2023-01-19T17:00", saved.Events[0].Start)
	assert.Equal(t, demoResources, saved.Resources)
}

func TestTimelineApp_Errors(t *testing.T) {
	a := test.NewTempApp(t)

	_, err := newTimelineApp(a, AppOptions{Week: "next monday"})
	assert.Error(t, err)

	_, err = newTimelineApp(a, AppOptions{EventsPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestTimelineApp_DemoData(t *testing.T) {
	a := test.NewTempApp(t)

	ta, err := newTimelineApp(a, AppOptions{Week: "2023-01-16", ICSURL: "https://example.com/cal.ics"})
	require.NoError(t, err)

	assert.Equal(t, demoResources, ta.store.Resources())
	assert.Equal(t, "https://example.com/cal.ics", ta.config.ICSURL)
	assert.Len(t, ta.snapshot(), len(demoEvents))
}

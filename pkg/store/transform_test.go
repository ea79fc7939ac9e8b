package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/timegrid"
)

var weekOf16Jan = time.Date(2023, time.January, 16, 0, 0, 0, 0, time.UTC)

var testResources = []models.Resource{
	{ID: 1, Name: "Room A", Color: "#fdf500"},
	{ID: 2, Name: "Room B", Color: "#00b3fd"},
}

func newTransformer(t *testing.T) *Transformer {
	cfg := models.DefaultConfig()
	return &Transformer{
		Mapper:    timegrid.NewMapperFromConfig(cfg),
		Config:    cfg,
		Resources: testResources,
		Logger:    zaptest.NewLogger(t),
	}
}

func TestMaxKey(t *testing.T) {
	assert.Equal(t, 1, MaxKey(nil))
	assert.Equal(t, 1, MaxKey(EventMap{}))
	assert.Equal(t, 8, MaxKey(EventMap{3: {}, 7: {}, 1: {}}))
}

func TestEventMap_IDs(t *testing.T) {
	assert.Equal(t, []int{1, 3, 7}, EventMap{7: {}, 1: {}, 3: {}}.IDs())
}

func TestIngest(t *testing.T) {
	tr := newTransformer(t)

	m := tr.Ingest([]models.CalendarEvent{{
		Title:    "Standup",
		Start:    "2023-01-19T16:00",
		End:      "2023-01-19T18:30",
		Resource: 1,
	}}, weekOf16Jan, 1)

	require.Len(t, m, 1)
	ev, ok := m[1]
	require.True(t, ok)

	assert.Equal(t, 1, ev.ID)
	assert.Equal(t, "4:00 PM", ev.DisplayStart)
	assert.Equal(t, "6:30 PM", ev.DisplayEnd)
	assert.Equal(t, 140, ev.Geometry.Width)
	assert.Equal(t, 3*1344+16*56, ev.Geometry.Offset)
	assert.Equal(t, models.AnchorLeft, ev.Geometry.Anchor)
	assert.Equal(t, 12, ev.Geometry.OffsetY)
	assert.Equal(t, 50, ev.Geometry.Height)
	assert.Equal(t, "#fdf500", ev.Geometry.BackgroundColor)
	assert.Equal(t, models.Span{Start: "2023-01-19T16:00", End: "2023-01-19T18:30"}, ev.Origin)
	assert.False(t, ev.Dirty)
}

func TestIngest_SequentialIDs(t *testing.T) {
	tr := newTransformer(t)
	events := []models.CalendarEvent{
		{Start: "2023-01-16T09:00", End: "2023-01-16T10:00", Resource: 1},
		{Start: "2023-01-17T09:00", End: "2023-01-17T10:00", Resource: 2},
		{Start: "2023-01-18T09:00", End: "2023-01-18T10:00", Resource: 1},
	}
	m := tr.Ingest(events, weekOf16Jan, 5)
	assert.Equal(t, []int{5, 6, 7}, m.IDs())
	assert.Equal(t, "2023-01-17T09:00", m[6].Start)
	assert.Equal(t, "#00b3fd", m[6].Geometry.BackgroundColor)
}

func TestIngest_UnknownResourceUsesDefaultColor(t *testing.T) {
	tr := newTransformer(t)
	m := tr.Ingest([]models.CalendarEvent{
		{Start: "2023-01-16T09:00", End: "2023-01-16T10:00", Resource: 99},
	}, weekOf16Jan, 1)
	assert.Equal(t, "#eeeeee", m[1].Geometry.BackgroundColor)
}

func TestIngest_MalformedEventKeptWithoutGeometry(t *testing.T) {
	tr := newTransformer(t)
	m := tr.Ingest([]models.CalendarEvent{
		{Title: "broken", Start: "19/01/2023 16:00", End: "2023-01-19T18:30", Resource: 1},
	}, weekOf16Jan, 1)

	require.Len(t, m, 1)
	assert.Equal(t, 0, m[1].Geometry.Width)
	assert.Equal(t, 0, m[1].Geometry.Offset)
	assert.Empty(t, m[1].DisplayStart)

	assert.Contains(t, VisibleSlice(m, weekOf16Jan), 1)
}

func TestNewEvents(t *testing.T) {
	existing := EventMap{
		1: {CalendarEvent: models.CalendarEvent{Start: "2023-01-16T09:00", End: "2023-01-16T10:00"}},
		2: {
			CalendarEvent: models.CalendarEvent{Start: "2023-01-17T11:00", End: "2023-01-17T12:00"},
			Dirty:         true,
			Origin:        models.Span{Start: "2023-01-17T09:00", End: "2023-01-17T10:00"},
		},
	}
	external := []models.CalendarEvent{
		{Title: "same", Start: "2023-01-16T09:00", End: "2023-01-16T10:00"},
		{Title: "moved", Start: "2023-01-17T09:00", End: "2023-01-17T10:00"},
		{Title: "fresh", Start: "2023-01-18T09:00", End: "2023-01-18T10:00"},
	}

	got := NewEvents(external, existing)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Title)
}

func TestMergeExternalUpdate(t *testing.T) {
	tr := newTransformer(t)
	external := []models.CalendarEvent{
		{Title: "a", Start: "2023-01-16T09:00", End: "2023-01-16T10:00", Resource: 1},
		{Title: "b", Start: "2023-01-17T09:00", End: "2023-01-17T10:00", Resource: 2},
	}
	existing := tr.Ingest(external, weekOf16Jan, 1)

	// the user drags b, which changes its span and marks it dirty
	moved := existing[2]
	moved.Start, moved.End = "2023-01-17T13:00", "2023-01-17T14:00"
	moved.Dirty = true
	existing[2] = moved

	next := append(external, models.CalendarEvent{Title: "c", Start: "2023-01-18T09:00", End: "2023-01-18T10:00", Resource: 1})
	merged := tr.MergeExternalUpdate(existing, next, weekOf16Jan)

	assert.Equal(t, []int{1, 2, 3}, merged.IDs())
	assert.Equal(t, "2023-01-17T13:00", merged[2].Start, "dirty event must not be overwritten")
	assert.Equal(t, "c", merged[3].Title)

	// existing is untouched
	assert.Len(t, existing, 2)
}

func TestMergeExternalUpdate_Idempotent(t *testing.T) {
	tr := newTransformer(t)
	external := []models.CalendarEvent{
		{Start: "2023-01-16T09:00", End: "2023-01-16T10:00", Resource: 1},
	}
	m := tr.Ingest(external, weekOf16Jan, 1)
	for i := 0; i < 3; i++ {
		m = tr.MergeExternalUpdate(m, external, weekOf16Jan)
	}
	assert.Len(t, m, 1)
}

func TestVisibleSlice(t *testing.T) {
	m := EventMap{
		1: {CalendarEvent: models.CalendarEvent{Start: "2023-01-16T00:00", End: "2023-01-16T01:00"}},
		2: {CalendarEvent: models.CalendarEvent{Start: "2023-01-22T23:45", End: "2023-01-23T00:00"}},
		3: {CalendarEvent: models.CalendarEvent{Start: "2023-01-23T00:00", End: "2023-01-23T01:00"}},
		4: {CalendarEvent: models.CalendarEvent{Start: "2023-01-15T23:45", End: "2023-01-16T00:00"}},
		5: {CalendarEvent: models.CalendarEvent{Start: "", End: ""}},
		6: {CalendarEvent: models.CalendarEvent{Start: "2023-01-17T09:00", End: "garbage"}},
	}
	got := VisibleSlice(m, weekOf16Jan)
	assert.Equal(t, []int{1, 2, 5, 6}, got.IDs())
}

package store

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/timegrid"
	"github.com/borgmon/resource-timeline/pkg/week"
)

// EventMap is the keyed event model. Values are copied on every write, so a
// map handed out by the store never changes underneath its reader.
type EventMap map[int]models.TimedEvent

// Clone returns a shallow copy of the map
func (m EventMap) Clone() EventMap {
	out := make(EventMap, len(m))
	for id, ev := range m {
		out[id] = ev
	}
	return out
}

// IDs returns the keys in ascending order
func (m EventMap) IDs() []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// MaxKey returns the largest id plus one, or 1 for an empty map
func MaxKey(m EventMap) int {
	if len(m) == 0 {
		return 1
	}
	top := 0
	for id := range m {
		if id > top {
			top = id
		}
	}
	return top + 1
}

// Transformer turns host events into timed events
type Transformer struct {
	Mapper    *timegrid.Mapper
	Config    *models.Config
	Resources []models.Resource
	Logger    *zap.Logger
}

func (tr *Transformer) logger() *zap.Logger {
	if tr.Logger == nil {
		return zap.NewNop()
	}
	return tr.Logger
}

func (tr *Transformer) backgroundFor(resourceID int) (string, bool) {
	for _, r := range tr.Resources {
		if r.ID == resourceID {
			return r.Color, true
		}
	}
	return tr.Config.DefaultColor, false
}

// Ingest assigns sequential ids starting at nextID and computes geometry for
// each event relative to weekStart. Events whose timestamps cannot be parsed
// are kept with an empty geometry; the visible-week filter passes them through.
func (tr *Transformer) Ingest(events []models.CalendarEvent, weekStart time.Time, nextID int) EventMap {
	out := make(EventMap, len(events))
	id := nextID
	for _, ev := range events {
		out[id] = tr.timed(id, ev, weekStart)
		id++
	}
	return out
}

func (tr *Transformer) timed(id int, ev models.CalendarEvent, weekStart time.Time) models.TimedEvent {
	te := models.TimedEvent{
		CalendarEvent: ev,
		ID:            id,
		Origin:        models.Span{Start: ev.Start, End: ev.End},
	}

	bg, ok := tr.backgroundFor(ev.Resource)
	if !ok {
		tr.logger().Debug("event resource has no match, using default color",
			zap.Int("id", id), zap.Int("resource", ev.Resource))
	}
	te.Geometry = models.LeftAnchored(0, tr.Config.EventTop, 0, tr.Config.EventHeight, bg)

	start, err := ev.StartTime()
	if err != nil {
		tr.logger().Warn("event start unparsable, geometry skipped", zap.Int("id", id), zap.Error(err))
		return te
	}
	end, err := ev.EndTime()
	if err != nil {
		tr.logger().Warn("event end unparsable, geometry skipped", zap.Int("id", id), zap.Error(err))
		return te
	}

	p := tr.Mapper.Place(start, end, weekStart)
	te.Geometry.Offset = p.X
	te.Geometry.Width = p.Width
	te.DisplayStart = p.DisplayStart
	te.DisplayEnd = p.DisplayEnd
	return te
}

// NewEvents returns the external events that are not represented in existing:
// an event is skipped when its (start, end) matches a tracked event, or the
// span a dirty event was ingested with.
func NewEvents(external []models.CalendarEvent, existing EventMap) []models.CalendarEvent {
	tracked := make(map[models.Span]bool, len(existing))
	for _, ev := range existing {
		tracked[models.Span{Start: ev.Start, End: ev.End}] = true
		if ev.Dirty && ev.Origin != (models.Span{}) {
			tracked[ev.Origin] = true
		}
	}

	out := make([]models.CalendarEvent, 0, len(external))
	for _, ev := range external {
		if tracked[models.Span{Start: ev.Start, End: ev.End}] {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// MergeExternalUpdate ingests the external events not yet represented in
// existing, with ids continuing from MaxKey(existing), and returns the union.
// existing itself is not modified.
func (tr *Transformer) MergeExternalUpdate(existing EventMap, external []models.CalendarEvent, weekStart time.Time) EventMap {
	fresh := tr.Ingest(NewEvents(external, existing), weekStart, MaxKey(existing))

	out := existing.Clone()
	for id, ev := range fresh {
		out[id] = ev
	}
	if len(fresh) > 0 {
		tr.logger().Debug("merged external events", zap.Int("added", len(fresh)), zap.Int("total", len(out)))
	}
	return out
}

// VisibleSlice keeps the events whose start falls into the week starting at
// weekStart. Events with a missing or unparsable start or end are always kept.
func VisibleSlice(m EventMap, weekStart time.Time) EventMap {
	out := make(EventMap)
	for id, ev := range m {
		if visible(ev, weekStart) {
			out[id] = ev
		}
	}
	return out
}

func visible(ev models.TimedEvent, weekStart time.Time) bool {
	if ev.Start == "" || ev.End == "" {
		return true
	}
	start, err := ev.StartTime()
	if err != nil {
		return true
	}
	if _, err := ev.EndTime(); err != nil {
		return true
	}
	return week.Contains(start, weekStart)
}

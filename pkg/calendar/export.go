package calendar

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/borgmon/resource-timeline/pkg/models"
)

// ProductID identifies exported documents
const ProductID = "-//borgmon//resource-timeline//EN"

const floatingLayout = "20060102T150405"

// ErrNothingToExport is returned by Export for an empty event list. An
// iCalendar document needs at least one component.
var ErrNothingToExport = errors.New("no events to export")

// uidNamespace seeds the name-based UIDs of exported events
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/borgmon/resource-timeline"))

// EventUID derives a stable UID from the event's resource, span and title, so
// exporting the same event twice yields the same UID
func EventUID(ev models.CalendarEvent) string {
	key := strconv.Itoa(ev.Resource) + "|" + ev.Start + "|" + ev.End + "|" + ev.Title
	return uuid.NewSHA1(uidNamespace, []byte(key)).String()
}

// Export writes events as an iCalendar document. Start and end are written as
// floating DATE-TIMEs. An event with an unparsable timestamp fails the export.
func Export(w io.Writer, events []models.CalendarEvent, now time.Time) error {
	if len(events) == 0 {
		return ErrNothingToExport
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)

	for _, ev := range events {
		start, err := ev.StartTime()
		if err != nil {
			return fmt.Errorf("event %q: %w", ev.Title, err)
		}
		end, err := ev.EndTime()
		if err != nil {
			return fmt.Errorf("event %q: %w", ev.Title, err)
		}

		vevent := ical.NewEvent()
		vevent.Props.SetText(ical.PropUID, EventUID(ev))
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
		vevent.Props.Set(floatingProp(ical.PropDateTimeStart, start))
		vevent.Props.Set(floatingProp(ical.PropDateTimeEnd, end))
		vevent.Props.SetText(ical.PropSummary, ev.Title)
		vevent.Props.SetText(propResourceID, strconv.Itoa(ev.Resource))
		if models.Color(ev.Color).Valid() {
			vevent.Props.SetText(propColor, ev.Color)
		}
		cal.Children = append(cal.Children, vevent.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func floatingProp(name string, t time.Time) *ical.Prop {
	prop := ical.NewProp(name)
	prop.Value = t.Format(floatingLayout)
	return prop
}

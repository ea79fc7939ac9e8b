package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/borgmon/resource-timeline/pkg/models"
)

const (
	propResourceID = "X-RESOURCE-ID"
	propColor      = "X-COLOR"
	propColorRFC   = "COLOR" // RFC 7986, CSS color names are ignored
)

// vevent is a decoded VEVENT with its times converted to floating wall clock
type vevent struct {
	UID      string
	Title    string
	Status   string
	Color    string
	Resource int
	HasRes   bool
	AllDay   bool

	Start time.Time
	End   time.Time

	RRule   string
	ExDates []time.Time
}

func parseEvent(comp *ical.Component, loc *time.Location) vevent {
	normalizeComponentTimezones(comp)
	event := vevent{}

	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil {
		event.UID = uidProp.Value
	}

	if summary, err := comp.Props.Text(ical.PropSummary); err == nil {
		event.Title = summary
	}

	if startProp := comp.Props.Get(ical.PropDateTimeStart); startProp != nil {
		if t, err := parseDateTimeProperty(comp, startProp, loc); err == nil {
			event.Start = t
		}
		event.AllDay = startProp.ValueType() == ical.ValueDate
	}

	if endProp := comp.Props.Get(ical.PropDateTimeEnd); endProp != nil {
		if t, err := parseDateTimeProperty(comp, endProp, loc); err == nil {
			event.End = t
		}
	}

	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil {
		event.Status = strings.ToUpper(statusProp.Value)
	}
	if event.Status != "CANCELLED" && isCancelledTitle(event.Title) {
		event.Status = "CANCELLED"
	}

	for _, name := range []string{propColor, propColorRFC} {
		if p := comp.Props.Get(name); p != nil && models.Color(p.Value).Valid() {
			event.Color = p.Value
			break
		}
	}

	if p := comp.Props.Get(propResourceID); p != nil {
		if id, err := strconv.Atoi(strings.TrimSpace(p.Value)); err == nil {
			event.Resource, event.HasRes = id, true
		}
	}

	if rruleProp := comp.Props.Get(ical.PropRecurrenceRule); rruleProp != nil {
		event.RRule = rruleProp.Value
	}
	for _, exProp := range comp.Props.Values(ical.PropExceptionDates) {
		for _, raw := range strings.Split(exProp.Value, ",") {
			single := exProp
			single.Value = raw
			if t, err := parseDateTimeProperty(comp, &single, loc); err == nil {
				event.ExDates = append(event.ExDates, t)
			}
		}
	}

	return event
}

// parseDateTimeProperty reads a DATE or DATE-TIME and returns the wall clock
// it has in loc, as a floating time
func parseDateTimeProperty(comp *ical.Component, prop *ical.Prop, loc *time.Location) (time.Time, error) {
	if t, err := prop.DateTime(loc); err == nil {
		return models.Floating(t.In(loc)), nil
	}

	value := prop.Value
	zone := getTimezoneFromComponent(comp)

	formats := []string{
		"20060102T150405",
		"20060102T150405Z",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"20060102",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, zone); err == nil {
			return models.Floating(t.In(loc)), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", value)
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func isCancelledTitle(title string) bool {
	cleanTitle := nonAlnum.ReplaceAllString(strings.ToLower(title), "")
	return strings.HasPrefix(cleanTitle, "canceled") || strings.HasPrefix(cleanTitle, "cancelled")
}

// toCalendarEvent converts a decoded occurrence to the host event shape
func (e vevent) toCalendarEvent(defaultResource int) models.CalendarEvent {
	resource := defaultResource
	if e.HasRes {
		resource = e.Resource
	}
	return models.CalendarEvent{
		Title:    e.Title,
		Start:    models.FormatTimestamp(e.Start),
		End:      models.FormatTimestamp(e.End),
		Color:    e.Color,
		Editable: true,
		Resource: resource,
	}
}

// Package week computes the seven-day window shown by the timeline.
//
// All dates are floating calendar dates: the wall clock of the input is kept
// and re-expressed in time.UTC so that day arithmetic never crosses a DST
// transition.
package week

import (
	"time"
)

const (
	// DaysPerWeek is the number of day columns in the view.
	DaysPerWeek = 7
	// MaxWeekSearch bounds LocateOffset to about a century in each direction.
	MaxWeekSearch = 5218

	dayLabelLayout = "2 Mon Jan 2006"
)

// StartOfDay returns midnight of t's calendar day
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func floating(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Dates returns the seven calendar days starting at start
func Dates(start time.Time) []time.Time {
	day := StartOfDay(start)
	out := make([]time.Time, DaysPerWeek)
	for i := range out {
		out[i] = day.AddDate(0, 0, i)
	}
	return out
}

// Days returns the seven day labels starting at start, e.g. "19 Thu Jan 2023"
func Days(start time.Time) []string {
	dates := Dates(start)
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(dayLabelLayout)
	}
	return out
}

// Shift moves date by one week in the direction of dir's sign.
// A zero dir returns date unchanged.
func Shift(date time.Time, dir int) time.Time {
	switch {
	case dir > 0:
		return floating(date).AddDate(0, 0, DaysPerWeek)
	case dir < 0:
		return floating(date).AddDate(0, 0, -DaysPerWeek)
	}
	return floating(date)
}

// Contains reports whether weekStart <= candidate < weekStart + 7 days
func Contains(candidate, weekStart time.Time) bool {
	c := floating(candidate)
	ws := floating(weekStart)
	return !c.Before(ws) && c.Before(Shift(ws, 1))
}

// DaysBetween returns the signed number of calendar days from from to to
func DaysBetween(from, to time.Time) int {
	a := StartOfDay(from)
	b := StartOfDay(to)
	return int(b.Sub(a).Round(time.Hour).Hours()) / 24
}

// LocateOffset returns the day column (0..6) of date inside the week that
// contains it, walking outward from weekStart one week at a time. ok is false
// if no week within MaxWeekSearch contains date.
func LocateOffset(date, weekStart time.Time) (offset int, ok bool) {
	ws := floating(weekStart)
	dir := 0
	switch {
	case Contains(date, ws):
		return DaysBetween(ws, date), true
	case floating(date).After(ws):
		dir = 1
	default:
		dir = -1
	}

	for i := 0; i < MaxWeekSearch; i++ {
		ws = Shift(ws, dir)
		if Contains(date, ws) {
			return DaysBetween(ws, date), true
		}
	}
	return 0, false
}

// Navigator tracks the visible week
type Navigator struct {
	start time.Time
}

// NewNavigator starts at midnight of start's day
func NewNavigator(start time.Time) *Navigator {
	return &Navigator{start: StartOfDay(start)}
}

// Start returns the first day of the visible week
func (n *Navigator) Start() time.Time {
	return n.start
}

// Go shifts the visible week by one in the direction of dir
func (n *Navigator) Go(dir int) time.Time {
	n.start = Shift(n.start, dir)
	return n.start
}

// Next shows the following week
func (n *Navigator) Next() time.Time {
	return n.Go(1)
}

// Prev shows the previous week
func (n *Navigator) Prev() time.Time {
	return n.Go(-1)
}

// Days returns the labels of the visible week
func (n *Navigator) Days() []string {
	return Days(n.start)
}

// Contains reports whether t falls into the visible week
func (n *Navigator) Contains(t time.Time) bool {
	return Contains(t, n.start)
}

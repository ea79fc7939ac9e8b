package timegrid

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/borgmon/resource-timeline/pkg/week"
)

var (
	hourLabels   = buildHourLabels()
	quarterMins  = [StepsPerHour]int{0, 15, 30, 45}
	meridiemAMPM = [2]string{"AM", "PM"}
)

func buildHourLabels() []string {
	labels := make([]string, HoursPerDay)
	for h := range labels {
		labels[h] = Format12(h, 0)
	}
	return labels
}

// HourLabels returns "12:00 AM", "1:00 AM", ... "11:00 PM"
func HourLabels() []string {
	out := make([]string, len(hourLabels))
	copy(out, hourLabels)
	return out
}

// Format12 formats a 24-hour clock time as "4:05 PM"
func Format12(hour, minute int) string {
	c := ClockOf(hour, minute)
	return fmt.Sprintf("%d:%02d %s", c.Hour12, c.Minute, c.meridiem())
}

// Format24 formats a clock time as "16:05"
func Format24(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// Clock is a 12-hour time of day
type Clock struct {
	Hour12 int // 1..12
	Minute int
	PM     bool
}

// ClockOf converts a 24-hour time of day
func ClockOf(hour, minute int) Clock {
	c := Clock{Hour12: hour % 12, Minute: minute, PM: hour >= 12}
	if c.Hour12 == 0 {
		c.Hour12 = 12
	}
	return c
}

// ParseClock parses "4:15 PM"
func ParseClock(s string) (Clock, error) {
	var c Clock
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return c, fmt.Errorf("clock %q: want \"h:mm AM|PM\"", s)
	}
	hm := strings.SplitN(parts[0], ":", 2)
	if len(hm) != 2 {
		return c, fmt.Errorf("clock %q: missing minutes", s)
	}
	h, err := strconv.Atoi(hm[0])
	if err != nil || h < 1 || h > 12 {
		return c, fmt.Errorf("clock %q: bad hour", s)
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil || m < 0 || m > 59 {
		return c, fmt.Errorf("clock %q: bad minute", s)
	}
	switch strings.ToUpper(parts[1]) {
	case "AM":
	case "PM":
		c.PM = true
	default:
		return c, fmt.Errorf("clock %q: want AM or PM", s)
	}
	c.Hour12, c.Minute = h, m
	return c, nil
}

// Hour24 returns the 24-hour hour
func (c Clock) Hour24() int {
	h := c.Hour12 % 12
	if c.PM {
		h += 12
	}
	return h
}

func (c Clock) meridiem() string {
	if c.PM {
		return meridiemAMPM[1]
	}
	return meridiemAMPM[0]
}

func (c Clock) hourLabel() string {
	return fmt.Sprintf("%d:00 %s", c.Hour12, c.meridiem())
}

func (c Clock) String() string {
	return fmt.Sprintf("%d:%02d %s", c.Hour12, c.Minute, c.meridiem())
}

// Slot is a calendar date plus a quarter-hour time of day
type Slot struct {
	Date   time.Time // midnight
	Hour   int       // 0..23
	Minute int       // 0, 15, 30 or 45
}

// DateLabel formats the date as "2023-01-19"
func (s Slot) DateLabel() string {
	return s.Date.Format("2006-01-02")
}

// Time12 formats the time as "4:00 PM"
func (s Slot) Time12() string {
	return Format12(s.Hour, s.Minute)
}

// Time24 formats the time as "16:00"
func (s Slot) Time24() string {
	return Format24(s.Hour, s.Minute)
}

// Timestamp formats the slot as "2023-01-19T16:00"
func (s Slot) Timestamp() string {
	return s.DateLabel() + "T" + s.Time24()
}

// Time returns the slot's instant
func (s Slot) Time() time.Time {
	return s.Date.Add(time.Duration(s.Hour)*time.Hour + time.Duration(s.Minute)*time.Minute)
}

func slotAt(date time.Time, step int) Slot {
	return Slot{Date: date, Hour: step / StepsPerHour, Minute: quarterMins[step%StepsPerHour]}
}

// PixelToTime maps surface x inside the day column at offset to a date and
// a quarter-hour time. weekStart is the date of column 0. Positions left of
// the column clamp to 12:00 AM, positions right of it to 11:45 PM.
func (m *Mapper) PixelToTime(x, offset int, weekStart time.Time) Slot {
	grid := m.Build(offset)
	date := week.StartOfDay(weekStart).AddDate(0, 0, offset)

	if x < grid.Base() {
		return slotAt(date, 0)
	}
	for h, label := range hourLabels {
		for q, b := range grid.hours[label] {
			step := h*StepsPerHour + q
			if b > x {
				return slotAt(date, step-1)
			}
			if b == x {
				return slotAt(date, step)
			}
		}
	}
	return slotAt(date, StepsPerDay-1)
}

// PixelToTimeAt resolves the day column from x itself
func (m *Mapper) PixelToTimeAt(x int, weekStart time.Time) Slot {
	return m.PixelToTime(x, m.Coefficient(x), weekStart)
}

// TimeToPixel returns the boundary of a clock time in the day column at offset.
// Minutes other than 15, 30 and 45 resolve to the hour; an unknown hour
// resolves to the start of the column.
func (m *Mapper) TimeToPixel(c Clock, offset int) int {
	grid := m.Build(offset)
	bucket, ok := grid.Hour(c.hourLabel())
	if !ok {
		return grid.Base()
	}
	switch c.Minute {
	case 15:
		return bucket[1]
	case 30:
		return bucket[2]
	case 45:
		return bucket[3]
	}
	return bucket[0]
}

// Placement is the horizontal placement of an event in the week
type Placement struct {
	DayOffset    int
	X            int
	Width        int
	DisplayStart string
	DisplayEnd   string
}

// Place lays out an event spanning start..end in the week starting at
// weekStart. Events outside the week keep their weekday column. Width never
// goes below zero.
func (m *Mapper) Place(start, end, weekStart time.Time) Placement {
	offset, ok := week.LocateOffset(start, weekStart)
	if !ok {
		offset = 0
	}

	startX := m.TimeToPixel(ClockOf(start.Hour(), start.Minute()), offset)
	endX := m.TimeToPixel(ClockOf(end.Hour(), end.Minute()), offset)
	endX += m.dayWidth * week.DaysBetween(start, end)

	p := Placement{
		DayOffset:    offset,
		X:            startX,
		Width:        endX - startX,
		DisplayStart: Format12(start.Hour(), start.Minute()),
		DisplayEnd:   Format12(end.Hour(), end.Minute()),
	}
	if p.Width < 0 {
		p.Width = 0
	}
	return p
}

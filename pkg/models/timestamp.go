package models

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"time"
)

// TimestampLayout is the only accepted shape of CalendarEvent.Start/End
const TimestampLayout = "2006-01-02T15:04"

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidColor     = errors.New("invalid color")
)

var (
	timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)
	colorPattern     = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// ParseTimestamp parses a floating local time of the form YYYY-MM-DDTHH:mm.
// The result is expressed in time.UTC, which only serves as a neutral zone:
// no offset is ever applied.
func ParseTimestamp(s string) (time.Time, error) {
	if !timestampPattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
	}
	return t, nil
}

// FormatTimestamp formats t as YYYY-MM-DDTHH:mm, ignoring its location
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Floating drops the location of t, keeping its wall clock
func Floating(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// Color is a 6-digit hex color string
type Color string

// Valid reports whether c is of the form #rrggbb
func (c Color) Valid() bool {
	return colorPattern.MatchString(string(c))
}

// NRGBA converts c for rendering
func (c Color) NRGBA() (color.NRGBA, error) {
	if !c.Valid() {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, string(c))
	}
	v, err := strconv.ParseUint(string(c[1:]), 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, string(c), err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// ColorOr returns the NRGBA value of c, or of fallback if c is invalid
func ColorOr(c, fallback Color) color.NRGBA {
	if rgba, err := c.NRGBA(); err == nil {
		return rgba
	}
	rgba, _ := fallback.NRGBA()
	return rgba
}

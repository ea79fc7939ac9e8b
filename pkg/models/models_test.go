package models

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2023-01-19T16:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.January, 19, 16, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2023-01-19T16:00", FormatTimestamp(got))

	for _, s := range []string{
		"",
		"2023-01-19",
		"2023-01-19T16:00:00",
		"2023-1-19T16:00",
		"2023-01-19 16:00",
		"2023-01-19T16:00Z",
		"2023-13-01T10:00",
		"2023-01-19T25:00",
	} {
		_, err := ParseTimestamp(s)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, s)
	}
}

func TestFloating(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	got := Floating(time.Date(2023, time.January, 19, 16, 30, 45, 0, loc))
	assert.Equal(t, time.Date(2023, time.January, 19, 16, 30, 0, 0, time.UTC), got)
}

func TestColor(t *testing.T) {
	rgba, err := Color("#fdf500").NRGBA()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xfd, G: 0xf5, B: 0x00, A: 0xff}, rgba)

	for _, c := range []Color{"", "fdf500", "#fff", "#fdf5001", "#gggggg"} {
		assert.False(t, c.Valid(), string(c))
		_, err := c.NRGBA()
		assert.ErrorIs(t, err, ErrInvalidColor)
	}

	assert.Equal(t, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}, ColorOr("purple", "#eeeeee"))
}

func TestGeometry_Anchors(t *testing.T) {
	const width = 9408

	g := LeftAnchored(4928, 12, 140, 50, "#fdf500")
	x, ok := g.OffsetX()
	assert.True(t, ok)
	assert.Equal(t, 4928, x)
	_, ok = g.OffsetXFromRight()
	assert.False(t, ok)
	assert.Equal(t, 5068, g.Right(width))

	r := g.AnchorRightAt(g.Right(width), width)
	_, ok = r.OffsetX()
	assert.False(t, ok)
	fromRight, ok := r.OffsetXFromRight()
	assert.True(t, ok)
	assert.Equal(t, width-5068, fromRight)
	assert.Equal(t, 4928, r.Left(width))
	assert.Equal(t, "right", r.Anchor.String())

	back := r.AnchorLeftAt(r.Left(width))
	assert.Equal(t, g, back)
}

func TestConfig_Normalize(t *testing.T) {
	cfg := &Config{DayWidth: 1000, MoveInterval: -time.Second, DefaultColor: "grey", HoldToDelete: -1}
	cfg.Normalize()

	assert.Equal(t, 1344, cfg.DayWidth)
	assert.Equal(t, 14, cfg.StepWidth())
	assert.Equal(t, 20, cfg.CreateThreshold)
	assert.Equal(t, 14, cfg.MinEventWidth)
	assert.Equal(t, "#eeeeee", cfg.DefaultColor)
	assert.Equal(t, "New Event", cfg.NewEventTitle)
	assert.Zero(t, cfg.MoveInterval)
	assert.Zero(t, cfg.HoldToDelete)
	assert.GreaterOrEqual(t, cfg.RowHeight, cfg.EventHeight)

	d := DefaultConfig()
	d.Normalize()
	assert.Equal(t, DefaultConfig(), d)
}

func TestTimedEvent_External(t *testing.T) {
	ev := TimedEvent{
		CalendarEvent: CalendarEvent{Title: "Standup", Start: "2023-01-19T16:00", End: "2023-01-19T18:30", Resource: 2},
		ID:            7,
		Dirty:         true,
	}
	ext := ev.External()
	assert.Equal(t, ev.CalendarEvent, ext)
	assert.True(t, ext.SameSpan(CalendarEvent{Start: "2023-01-19T16:00", End: "2023-01-19T18:30"}))
}

package models

import "time"

// Config holds timeline configuration
type Config struct {
	DayWidth        int `json:"day_width" yaml:"day_width"`               // pixels per day column, 96 quarter-hour steps
	CreateThreshold int `json:"create_threshold" yaml:"create_threshold"` // pixels before a drag creates an event
	MinEventWidth   int `json:"min_event_width" yaml:"min_event_width"`
	EventHeight     int `json:"event_height" yaml:"event_height"`
	EventTop        int `json:"event_top" yaml:"event_top"`               // offsetY of ingested events
	CreateTopInset  int `json:"create_top_inset" yaml:"create_top_inset"` // subtracted from the press y on create
	RowHeight       int `json:"row_height" yaml:"row_height"`

	DefaultColor  string `json:"default_color" yaml:"default_color"` // events without a matching resource
	NewEventTitle string `json:"new_event_title" yaml:"new_event_title"`
	NewEventColor string `json:"new_event_color" yaml:"new_event_color"`

	MoveInterval time.Duration `json:"move_interval" yaml:"move_interval"` // rate limit of pointer moves
	HoldToDelete int           `json:"hold_to_delete" yaml:"hold_to_delete"` // seconds, 0 = plain confirm

	ICSURL string `json:"ics_url" yaml:"ics_url"` // optional host event source
}

// DefaultConfig returns the stock timeline configuration
func DefaultConfig() *Config {
	return &Config{
		DayWidth:        1344,
		CreateThreshold: 20,
		MinEventWidth:   14,
		EventHeight:     50,
		EventTop:        12,
		CreateTopInset:  5,
		RowHeight:       74,
		DefaultColor:    "#eeeeee",
		NewEventTitle:   "New Event",
		NewEventColor:   "#9e9e9e",
		MoveInterval:    16 * time.Millisecond,
		HoldToDelete:    0,
	}
}

// Normalize fills zero or invalid values with defaults
func (c *Config) Normalize() {
	d := DefaultConfig()
	// A day column must split into 96 whole-pixel quarter-hour steps.
	if c.DayWidth <= 0 || c.DayWidth%96 != 0 {
		c.DayWidth = d.DayWidth
	}
	if c.CreateThreshold <= 0 {
		c.CreateThreshold = d.CreateThreshold
	}
	if c.MinEventWidth <= 0 {
		c.MinEventWidth = c.StepWidth()
	}
	if c.EventHeight <= 0 {
		c.EventHeight = d.EventHeight
	}
	if c.EventTop < 0 {
		c.EventTop = d.EventTop
	}
	if c.CreateTopInset < 0 {
		c.CreateTopInset = d.CreateTopInset
	}
	if c.RowHeight < c.EventHeight {
		c.RowHeight = c.EventHeight + 2*c.EventTop
	}
	if !Color(c.DefaultColor).Valid() {
		c.DefaultColor = d.DefaultColor
	}
	if c.NewEventTitle == "" {
		c.NewEventTitle = d.NewEventTitle
	}
	if !Color(c.NewEventColor).Valid() {
		c.NewEventColor = d.NewEventColor
	}
	if c.MoveInterval < 0 {
		c.MoveInterval = 0
	}
	if c.HoldToDelete < 0 {
		c.HoldToDelete = 0
	}
}

// StepWidth is the pixel width of one quarter-hour step
func (c *Config) StepWidth() int {
	return c.DayWidth / 96
}

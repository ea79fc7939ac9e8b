package store

import (
	"encoding/json"
	"time"

	"fyne.io/fyne/v2"

	"github.com/borgmon/resource-timeline/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	prefs fyne.Preferences
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{prefs: app.Preferences()}
}

// Load overlays stored preferences on top of base. A nil base means defaults.
func (cs *ConfigStore) Load(base *models.Config) *models.Config {
	if base == nil {
		base = models.DefaultConfig()
	}
	p := cs.prefs

	config := &models.Config{
		DayWidth:        p.IntWithFallback("day_width", base.DayWidth),
		CreateThreshold: p.IntWithFallback("create_threshold", base.CreateThreshold),
		MinEventWidth:   p.IntWithFallback("min_event_width", base.MinEventWidth),
		EventHeight:     p.IntWithFallback("event_height", base.EventHeight),
		EventTop:        p.IntWithFallback("event_top", base.EventTop),
		CreateTopInset:  p.IntWithFallback("create_top_inset", base.CreateTopInset),
		RowHeight:       p.IntWithFallback("row_height", base.RowHeight),
		DefaultColor:    p.StringWithFallback("default_color", base.DefaultColor),
		NewEventTitle:   p.StringWithFallback("new_event_title", base.NewEventTitle),
		NewEventColor:   p.StringWithFallback("new_event_color", base.NewEventColor),
		MoveInterval:    time.Duration(p.IntWithFallback("move_interval_ms", int(base.MoveInterval/time.Millisecond))) * time.Millisecond,
		HoldToDelete:    p.IntWithFallback("hold_to_delete", base.HoldToDelete),
		ICSURL:          p.StringWithFallback("ics_url", base.ICSURL),
	}
	config.Normalize()
	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	p := cs.prefs

	p.SetInt("day_width", config.DayWidth)
	p.SetInt("create_threshold", config.CreateThreshold)
	p.SetInt("min_event_width", config.MinEventWidth)
	p.SetInt("event_height", config.EventHeight)
	p.SetInt("event_top", config.EventTop)
	p.SetInt("create_top_inset", config.CreateTopInset)
	p.SetInt("row_height", config.RowHeight)
	p.SetString("default_color", config.DefaultColor)
	p.SetString("new_event_title", config.NewEventTitle)
	p.SetString("new_event_color", config.NewEventColor)
	p.SetInt("move_interval_ms", int(config.MoveInterval/time.Millisecond))
	p.SetInt("hold_to_delete", config.HoldToDelete)
	p.SetString("ics_url", config.ICSURL)
}

// LoadResources returns the stored resource rows, or nil if none are stored
func (cs *ConfigStore) LoadResources() []models.Resource {
	raw := cs.prefs.String("resources")
	if raw == "" {
		return nil
	}
	var resources []models.Resource
	if err := json.Unmarshal([]byte(raw), &resources); err != nil {
		return nil
	}
	return resources
}

// SaveResources stores the resource rows as a JSON string
func (cs *ConfigStore) SaveResources(resources []models.Resource) {
	if raw, err := json.Marshal(resources); err == nil {
		cs.prefs.SetString("resources", string(raw))
	}
}

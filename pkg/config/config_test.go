package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/resource-timeline/pkg/models"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "timeline.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("create_threshold: 30\nmove_interval: 40ms\nday_width: 1000\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.CreateThreshold)
	assert.Equal(t, 40*time.Millisecond, cfg.MoveInterval)
	assert.Equal(t, 1344, cfg.DayWidth, "widths that do not split into quarter hours fall back")
	assert.Equal(t, "New Event", cfg.NewEventTitle)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.yaml")
	cfg := models.DefaultConfig()
	cfg.HoldToDelete = 2
	cfg.ICSURL = "https://example.com/cal.ics"

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrEmptyPath)
	assert.ErrorIs(t, Save("x.yaml", nil), ErrNilConfig)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("day_width: [1, 2"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	ds := &Dataset{
		Resources: []models.Resource{{ID: 1, Name: "Room A", Color: "#fdf500"}},
		Events: []models.CalendarEvent{
			{Title: "Standup", Start: "2023-01-19T16:00", End: "2023-01-19T18:30", Resource: 1},
		},
	}
	require.NoError(t, SaveDataset(path, ds))

	got, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestDataset_Validate(t *testing.T) {
	dup := Dataset{Resources: []models.Resource{
		{ID: 1, Color: "#ffffff"},
		{ID: 1, Color: "#000000"},
	}}
	assert.ErrorIs(t, dup.Validate(), ErrInvalidDataset)

	badColor := Dataset{Resources: []models.Resource{{ID: 1, Color: "red"}}}
	err := badColor.Validate()
	assert.ErrorIs(t, err, ErrInvalidDataset)
	assert.ErrorIs(t, err, models.ErrInvalidColor)

	malformedEvent := Dataset{
		Resources: []models.Resource{{ID: 1, Color: "#ffffff"}},
		Events:    []models.CalendarEvent{{Start: "soon"}},
	}
	assert.NoError(t, malformedEvent.Validate())
}

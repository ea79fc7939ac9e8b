package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/resource-timeline/pkg/config"
	"github.com/borgmon/resource-timeline/pkg/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWeek(t *testing.T) {
	out, err := run(t, "week", "2023-01-16")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Week of 2023-01-16", lines[0])
	assert.Equal(t, "0  16 Mon Jan 2023", lines[1])
	assert.Equal(t, "6  22 Sun Jan 2023", lines[7])

	out, err = run(t, "week", "2023-01-16", "--shift", "-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Week of 2023-01-09\n"))

	out, err = run(t, "week", "2023-01-16", "--shift", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Week of 2023-02-06\n"), out)

	out, err = run(t, "week", "2023-01-16", "--shift", "-3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Week of 2022-12-26\n"), out)
}

func TestGrid(t *testing.T) {
	out, err := run(t, "grid", "--day", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "4:00 PM   896 910 924 938\n")

	out, err = run(t, "grid", "--day", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "12:00 AM  1344 1358 1372 1386\n")

	_, err = run(t, "grid", "--day", "7")
	assert.Error(t, err)

	_, err = run(t, "grid", "--day-width", "1000")
	assert.ErrorContains(t, err, "quarter hours")
}

func TestLocate(t *testing.T) {
	out, err := run(t, "locate", "2023-01-19T16:00", "2023-01-19T18:30", "--week", "2023-01-16")
	require.NoError(t, err)
	assert.Equal(t, "day 3  x 4928  width 140  4:00 PM - 6:30 PM  visible true\n", out)

	out, err = run(t, "locate", "2023-01-13T16:30", "--week", "2023-01-16")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "visible false\n"), out)

	_, err = run(t, "locate", "tomorrow", "--week", "2023-01-16")
	assert.ErrorIs(t, err, models.ErrInvalidTimestamp)
}

func TestPixel(t *testing.T) {
	out, err := run(t, "pixel", "4928", "--week", "2023-01-16")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2023-01-19T16:00  4:00 PM  snapped x "), out)

	_, err = run(t, "pixel", "left")
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	eventsPath := filepath.Join(dir, "events.yaml")
	icsPath := filepath.Join(dir, "events.ics")
	events := []models.CalendarEvent{
		{Title: "Standup", Start: "2023-01-19T16:00", End: "2023-01-19T18:30", Color: "#fdf500", Editable: true, Resource: 2},
	}
	require.NoError(t, config.SaveDataset(eventsPath, &config.Dataset{
		Resources: []models.Resource{{ID: 2, Name: "Room B", Color: "#00b3fd"}},
		Events:    events,
	}))

	_, err := run(t, "export", "--events", eventsPath, "--out", icsPath)
	require.NoError(t, err)
	raw, err := os.ReadFile(icsPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "SUMMARY:Standup")

	out, err := run(t, "import", icsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "title: Standup")

	importedPath := filepath.Join(dir, "imported.yaml")
	out, err = run(t, "import", icsPath, "--out", importedPath)
	require.NoError(t, err)
	assert.Equal(t, "imported 1 events into "+importedPath+"\n", out)

	_, err = run(t, "import", icsPath, "--out", importedPath)
	require.NoError(t, err)
	ds, err := config.LoadDataset(importedPath)
	require.NoError(t, err)
	assert.Equal(t, append(events, events...), ds.Events)
}

func TestExport_RequiresEvents(t *testing.T) {
	_, err := run(t, "export")
	assert.Error(t, err)
}

func TestExport_EmptyDataset(t *testing.T) {
	dir := t.TempDir()
	eventsPath := filepath.Join(dir, "events.yaml")
	icsPath := filepath.Join(dir, "events.ics")
	require.NoError(t, config.SaveDataset(eventsPath, &config.Dataset{
		Resources: []models.Resource{{ID: 1, Name: "Room A", Color: "#fdf500"}},
	}))

	out, err := run(t, "export", "--events", eventsPath, "--out", icsPath)
	require.NoError(t, err)
	assert.Equal(t, eventsPath+": no events to export\n", out)
	assert.NoFileExists(t, icsPath)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.yaml")

	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	_, err = run(t, "config", "init", path)
	assert.ErrorContains(t, err, "--force")

	_, err = run(t, "config", "init", path, "--force")
	assert.NoError(t, err)

	out, err = run(t, "config", "show", path)
	require.NoError(t, err)
	assert.Contains(t, out, "day_width: 1344")
	assert.Contains(t, out, "move_interval: 16ms")
}

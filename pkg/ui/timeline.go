// Package ui renders a resource timeline with fyne and connects it to the
// event store and gesture controller.
package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/borgmon/resource-timeline/pkg/interaction"
	"github.com/borgmon/resource-timeline/pkg/store"
	"github.com/borgmon/resource-timeline/pkg/ui/components"
)

const nameColumnWidth = 120

// Timeline is the week view: a navigation bar, a day header and one row
// surface per resource
type Timeline struct {
	store      *store.EventStore
	controller *interaction.Controller
	logger     *zap.Logger

	rows      map[int]*components.RowSurface
	weekLabel *widget.Label
	dayLabels []*canvas.Text
	content   fyne.CanvasObject

	unsubscribe func()
}

// NewTimeline builds the view of s. A nil prompt deletes without asking.
func NewTimeline(s *store.EventStore, prompt interaction.DeletePrompt, logger *zap.Logger) *Timeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Timeline{
		store:  s,
		logger: logger,
		rows:   make(map[int]*components.RowSurface),
	}
	t.controller = interaction.NewController(interaction.Options{
		Store:  s,
		Bounds: t,
		Prompt: prompt,
		Logger: logger.Named("interaction"),
	})
	t.build()
	t.unsubscribe = s.Subscribe(func() {
		fyne.Do(t.refresh)
	})
	t.refresh()
	return t
}

// Bounds implements interaction.BoundsProvider with the rendered rows
func (t *Timeline) Bounds(ref interaction.Ref) (interaction.Rect, bool) {
	row, ok := t.rows[ref.ResourceID]
	if !ok {
		return interaction.Rect{}, false
	}
	surface, ok := row.Bounds()
	if !ok || ref.Kind == interaction.RefSurface {
		return surface, ok
	}
	ev, ok := t.store.Get(ref.EventID)
	if !ok || ev.Resource != ref.ResourceID {
		return interaction.Rect{}, false
	}
	return interaction.EventRect(surface, ev.Geometry), true
}

// Controller returns the gesture controller shared by all rows
func (t *Timeline) Controller() *interaction.Controller {
	return t.controller
}

// Row returns the surface of a resource
func (t *Timeline) Row(resourceID int) (*components.RowSurface, bool) {
	row, ok := t.rows[resourceID]
	return row, ok
}

// WeekLabel returns the text of the navigation bar
func (t *Timeline) WeekLabel() string {
	return t.weekLabel.Text
}

// Content returns the canvas object to place in a window
func (t *Timeline) Content() fyne.CanvasObject {
	return t.content
}

// Close detaches the view from the store
func (t *Timeline) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

func (t *Timeline) build() {
	dayWidth := float32(t.store.Mapper().DayWidth())

	t.weekLabel = widget.NewLabel("")
	t.weekLabel.TextStyle = fyne.TextStyle{Bold: true}
	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { t.Navigate(-1) })
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { t.Navigate(1) })
	toolbar := container.NewBorder(nil, nil, container.NewHBox(prev, next), nil, t.weekLabel)

	// Day labels are placed by hand so they line up with the day columns.
	headerSpace := canvas.NewRectangle(color.Transparent)
	headerSpace.SetMinSize(fyne.NewSize(dayWidth*7, 28))
	labels := container.NewWithoutLayout()
	for d := 0; d < 7; d++ {
		label := canvas.NewText("", theme.Color(theme.ColorNameForeground))
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.Move(fyne.NewPos(float32(d)*dayWidth+theme.Padding(), theme.Padding()))
		t.dayLabels = append(t.dayLabels, label)
		labels.Add(label)
	}
	header := container.NewStack(headerSpace, labels)

	lines := []fyne.CanvasObject{container.NewHBox(nameSpacer(), header)}
	for _, r := range t.store.Resources() {
		row := components.NewRowSurface(r, t.store, t.controller)
		t.rows[r.ID] = row

		name := widget.NewLabel(r.Name)
		name.Truncation = fyne.TextTruncateEllipsis
		nameCell := container.NewStack(nameSpacer(), name)
		lines = append(lines, container.NewHBox(nameCell, row))
	}

	body := container.NewScroll(container.NewVBox(lines...))
	t.content = container.NewBorder(toolbar, nil, nil, nil, body)
}

func nameSpacer() fyne.CanvasObject {
	space := canvas.NewRectangle(color.Transparent)
	space.SetMinSize(fyne.NewSize(nameColumnWidth, 0))
	return space
}

// Navigate shows the previous (-1) or next (+1) week
func (t *Timeline) Navigate(dir int) {
	start := t.store.Navigate(dir)
	t.logger.Debug("week changed", zap.Time("start", start))
}

func (t *Timeline) refresh() {
	start := t.store.WeekStart()
	t.weekLabel.SetText(fmt.Sprintf("Week of %s", start.Format("Mon, Jan 2 2006")))
	for i, day := range t.store.Days() {
		if i < len(t.dayLabels) {
			t.dayLabels[i].Text = day
			t.dayLabels[i].Resize(t.dayLabels[i].MinSize())
			t.dayLabels[i].Refresh()
		}
	}
	for _, row := range t.rows {
		row.Refresh()
	}
}

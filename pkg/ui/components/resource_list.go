package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/resource-timeline/pkg/models"
)

// ResourceList manages the resource rows of a timeline with add and remove
// controls
type ResourceList struct {
	list        *widget.List
	data        []models.Resource
	selectedIdx int
	window      fyne.Window
	onChange    func([]models.Resource)
}

// NewResourceList creates the list and the container holding it. window
// parents the add dialog.
func NewResourceList(data []models.Resource, window fyne.Window, onChange func([]models.Resource)) (*ResourceList, *fyne.Container) {
	rl := &ResourceList{
		data:        append([]models.Resource(nil), data...),
		selectedIdx: -1,
		window:      window,
		onChange:    onChange,
	}

	rl.list = widget.NewList(
		func() int {
			return len(rl.data)
		},
		func() fyne.CanvasObject {
			swatch := canvas.NewRectangle(theme.Color(theme.ColorNameDisabled))
			swatch.SetMinSize(fyne.NewSize(16, 16))
			return container.NewHBox(swatch, widget.NewLabel("template"))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(rl.data) {
				return
			}
			r := rl.data[i]
			row := o.(*fyne.Container)
			swatch := row.Objects[0].(*canvas.Rectangle)
			swatch.FillColor = models.ColorOr(models.Color(r.Color), "#eeeeee")
			swatch.Refresh()
			row.Objects[1].(*widget.Label).SetText(fmt.Sprintf("%d  %s", r.ID, r.Name))
		})

	rl.list.OnSelected = func(id widget.ListItemID) {
		rl.selectedIdx = id
	}

	plusButton := widget.NewButtonWithIcon("", theme.ContentAddIcon(), rl.showAddDialog)
	minusButton := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), rl.RemoveSelected)

	listScroll := container.NewScroll(rl.list)
	listScroll.SetMinSize(fyne.NewSize(0, 150))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		listScroll,
	)

	return rl, container.NewVBox(listWithBorder, container.NewHBox(plusButton, minusButton))
}

func (rl *ResourceList) showAddDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Room A")
	colorEntry := widget.NewEntry()
	colorEntry.SetPlaceHolder("#fdf500")
	colorEntry.Validator = func(s string) error {
		if !models.Color(s).Valid() {
			return models.ErrInvalidColor
		}
		return nil
	}

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Color", colorEntry),
	}
	dialog.ShowForm("Add Resource", "Add", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := rl.AddItem(nameEntry.Text, colorEntry.Text); err != nil {
			dialog.ShowError(err, rl.window)
		}
	}, rl.window)
}

// GetData returns the current resources
func (rl *ResourceList) GetData() []models.Resource {
	return append([]models.Resource(nil), rl.data...)
}

// AddItem appends a resource with the next free id
func (rl *ResourceList) AddItem(name, hex string) error {
	if !models.Color(hex).Valid() {
		return fmt.Errorf("resource %q: %w", name, models.ErrInvalidColor)
	}
	next := 1
	for _, r := range rl.data {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	rl.data = append(rl.data, models.Resource{ID: next, Name: name, Color: hex})
	rl.list.Refresh()
	rl.changed()
	return nil
}

// Select marks the item at index i
func (rl *ResourceList) Select(i int) {
	rl.list.Select(i)
}

// RemoveSelected removes the currently selected resource
func (rl *ResourceList) RemoveSelected() {
	if rl.selectedIdx < 0 || rl.selectedIdx >= len(rl.data) {
		return
	}
	rl.data = append(rl.data[:rl.selectedIdx], rl.data[rl.selectedIdx+1:]...)
	rl.list.UnselectAll()
	rl.selectedIdx = -1
	rl.list.Refresh()
	rl.changed()
}

func (rl *ResourceList) changed() {
	if rl.onChange != nil {
		rl.onChange(rl.GetData())
	}
}

package ui

import (
	"slices"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/ui/components"
)

var holdOptions = []string{"0 s (confirm)", "1 s", "2 s", "3 s", "5 s"}

// SettingsWindow edits the timeline configuration and resource rows.
// Saved values take effect on the next start.
type SettingsWindow struct {
	window    fyne.Window
	config    *models.Config
	resources []models.Resource
	onSave    func(*models.Config, []models.Resource)

	thresholdEntry *widget.Entry
	intervalEntry  *widget.Entry
	holdSelect     *widget.Select
	titleEntry     *widget.Entry
	colorEntry     *widget.Entry
	icsEntry       *widget.Entry
	resourceList   *components.ResourceList

	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

// NewSettingsWindow creates the window. onSave receives copies of the edited values.
func NewSettingsWindow(app fyne.App, config *models.Config, resources []models.Resource, onSave func(*models.Config, []models.Resource)) *SettingsWindow {
	cfg := *config
	sw := &SettingsWindow{
		config:    &cfg,
		resources: append([]models.Resource(nil), resources...),
		onSave:    onSave,
	}
	sw.window = app.NewWindow("Resource Timeline - Settings")
	sw.buildUI()
	return sw
}

func (sw *SettingsWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("General", sw.buildGeneralTab()),
		container.NewTabItem("Resources", sw.buildResourcesTab()),
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable()

	closeButton := widget.NewButton("Close", sw.handleClose)

	buttonRow := container.NewBorder(nil, nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		closeButton,
		container.NewHBox(),
	)

	sw.window.SetContent(container.NewBorder(nil, container.NewPadded(buttonRow), nil, nil, tabs))
	sw.window.Resize(fyne.NewSize(640, 480))
	sw.window.SetCloseIntercept(sw.handleClose)
}

func (sw *SettingsWindow) buildGeneralTab() fyne.CanvasObject {
	changed := func(string) { sw.markChanged() }

	sw.thresholdEntry = widget.NewEntry()
	sw.thresholdEntry.SetText(strconv.Itoa(sw.config.CreateThreshold))
	sw.thresholdEntry.OnChanged = changed

	sw.intervalEntry = widget.NewEntry()
	sw.intervalEntry.SetText(strconv.Itoa(int(sw.config.MoveInterval / time.Millisecond)))
	sw.intervalEntry.OnChanged = changed

	sw.holdSelect = widget.NewSelect(holdOptions, nil)
	sw.holdSelect.SetSelected(holdLabel(sw.config.HoldToDelete))
	sw.holdSelect.OnChanged = changed

	sw.titleEntry = widget.NewEntry()
	sw.titleEntry.SetText(sw.config.NewEventTitle)
	sw.titleEntry.OnChanged = changed

	sw.colorEntry = widget.NewEntry()
	sw.colorEntry.SetText(sw.config.NewEventColor)
	sw.colorEntry.OnChanged = changed

	sw.icsEntry = widget.NewEntry()
	sw.icsEntry.SetPlaceHolder("https://example.com/calendar.ics")
	sw.icsEntry.SetText(sw.config.ICSURL)
	sw.icsEntry.OnChanged = changed

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Create threshold (px):"), sw.thresholdEntry,
		widget.NewLabel("Pointer move interval (ms):"), sw.intervalEntry,
		widget.NewLabel("Hold to delete:"), sw.holdSelect,
		widget.NewLabel("New event title:"), sw.titleEntry,
		widget.NewLabel("New event color:"), sw.colorEntry,
		widget.NewLabel("Calendar URL:"), sw.icsEntry,
	)

	note := widget.NewLabel("Changes apply after restarting the timeline")
	note.Importance = widget.MediumImportance

	return container.NewPadded(container.NewVScroll(container.NewVBox(form, widget.NewSeparator(), note)))
}

func (sw *SettingsWindow) buildResourcesTab() fyne.CanvasObject {
	list, box := components.NewResourceList(sw.resources, sw.window, func(rs []models.Resource) {
		sw.markChanged()
	})
	sw.resourceList = list
	return container.NewPadded(box)
}

func holdLabel(seconds int) string {
	if seconds <= 0 {
		return holdOptions[0]
	}
	return strconv.Itoa(seconds) + " s"
}

func parseHold(label string) int {
	if label == holdOptions[0] {
		return 0
	}
	n, _ := strconv.Atoi(label[:len(label)-len(" s")])
	return n
}

// getConfigFromUI reads the form. Unparsable numbers keep their saved value.
func (sw *SettingsWindow) getConfigFromUI() *models.Config {
	cfg := *sw.config
	if n, err := strconv.Atoi(sw.thresholdEntry.Text); err == nil {
		cfg.CreateThreshold = n
	}
	if n, err := strconv.Atoi(sw.intervalEntry.Text); err == nil {
		cfg.MoveInterval = time.Duration(n) * time.Millisecond
	}
	if sw.holdSelect.Selected != "" {
		cfg.HoldToDelete = parseHold(sw.holdSelect.Selected)
	}
	cfg.NewEventTitle = sw.titleEntry.Text
	cfg.NewEventColor = sw.colorEntry.Text
	cfg.ICSURL = sw.icsEntry.Text
	cfg.Normalize()
	return &cfg
}

func (sw *SettingsWindow) save() {
	cfg := sw.getConfigFromUI()
	resources := sw.resourceList.GetData()
	if sw.onSave != nil {
		sw.onSave(cfg, resources)
	}
	sw.config = cfg
	sw.resources = resources
	sw.hasUnsavedChanges = false
	sw.saveStatusLabel.SetText("Settings saved")
	sw.updateSaveButtonState()
}

// Show displays the window
func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

func (sw *SettingsWindow) markChanged() {
	sw.hasUnsavedChanges = true
	sw.updateSaveButtonState()
}

func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.saveButton == nil {
		return
	}
	if sw.hasUnsavedChanges {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

func (sw *SettingsWindow) handleClose() {
	if !sw.hasActualChanges() {
		sw.window.Close()
		return
	}
	dialog.ShowConfirm("Unsaved Changes",
		"You have unsaved changes. Are you sure you want to close?",
		func(confirmed bool) {
			if confirmed {
				sw.window.Close()
			}
		}, sw.window)
}

// hasActualChanges compares the form with the saved values
func (sw *SettingsWindow) hasActualChanges() bool {
	if *sw.getConfigFromUI() != *sw.config {
		return true
	}
	return !slices.Equal(sw.resourceList.GetData(), sw.resources)
}

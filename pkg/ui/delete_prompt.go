package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/ui/components"
)

// DeletePrompt confirms deletions with a dialog. With a hold time the
// delete button has to be held down, otherwise a plain yes/no confirm is shown.
type DeletePrompt struct {
	window fyne.Window
	hold   time.Duration
}

// NewDeletePrompt creates a prompt parented by window
func NewDeletePrompt(window fyne.Window, holdSeconds int) *DeletePrompt {
	return &DeletePrompt{window: window, hold: time.Duration(holdSeconds) * time.Second}
}

func describe(ev models.TimedEvent) string {
	return fmt.Sprintf("Delete %q (%s - %s)?", ev.Title, ev.DisplayStart, ev.DisplayEnd)
}

// Ask implements interaction.DeletePrompt
func (p *DeletePrompt) Ask(ev models.TimedEvent, answer func(bool)) {
	if p.hold <= 0 {
		dialog.ShowConfirm("Delete Event", describe(ev), answer, p.window)
		return
	}

	answered := false
	once := func(confirm bool) {
		if !answered {
			answered = true
			answer(confirm)
		}
	}

	var dlg dialog.Dialog
	button := components.NewHoldButton(
		fmt.Sprintf("Delete (Hold %ds)", int(p.hold/time.Second)),
		p.hold,
		func() {
			once(true)
			dlg.Hide()
		})
	dlg = dialog.NewCustom("Delete Event", "Cancel",
		container.NewVBox(widget.NewLabel(describe(ev)), button), p.window)
	dlg.SetOnClosed(func() { once(false) })
	dlg.Show()
}

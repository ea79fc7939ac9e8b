package components

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const holdTick = 50 * time.Millisecond

// HoldButton is a button that fires only after being held down for Hold
type HoldButton struct {
	widget.BaseWidget
	Text       string
	Hold       time.Duration
	OnComplete func()

	hovered  bool
	progress float64
	stop     chan struct{} // non-nil while held
}

// NewHoldButton creates a new HoldButton
func NewHoldButton(text string, hold time.Duration, onComplete func()) *HoldButton {
	b := &HoldButton{
		Text:       text,
		Hold:       hold,
		OnComplete: onComplete,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	progressBar := canvas.NewRectangle(theme.Color(theme.ColorNameError))

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

// SetProgress updates the progress bar
func (b *HoldButton) SetProgress(progress float64) {
	b.progress = progress
	b.Refresh()
}

// Progress returns the filled share of the bar
func (b *HoldButton) Progress() float64 {
	return b.progress
}

// Holding reports whether the button is held down
func (b *HoldButton) Holding() bool {
	return b.stop != nil
}

func (b *HoldButton) startHold() {
	if b.stop != nil {
		return
	}
	if b.Hold <= 0 {
		b.complete()
		return
	}

	stop := make(chan struct{})
	b.stop = stop
	b.SetProgress(0)

	started := time.Now()
	hold := b.Hold
	go func() {
		ticker := time.NewTicker(holdTick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				progress := float64(now.Sub(started)) / float64(hold)
				fyne.Do(func() { b.advance(stop, progress) })
				if progress >= 1 {
					return
				}
			}
		}
	}()
}

// advance runs on the UI thread; ticks of a released hold are dropped
func (b *HoldButton) advance(stop chan struct{}, progress float64) {
	if b.stop != stop {
		return
	}
	if progress < 1 {
		b.SetProgress(progress)
		return
	}
	b.stop = nil
	b.complete()
}

func (b *HoldButton) complete() {
	b.SetProgress(1)
	if b.OnComplete != nil {
		b.OnComplete()
	}
}

func (b *HoldButton) stopHold() {
	if b.stop == nil {
		return
	}
	close(b.stop)
	b.stop = nil
	b.SetProgress(0)
}

// Tapped implements fyne.Tappable
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.hovered = false
	// leaving the button releases the hold
	b.stopHold()
	b.Refresh()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	b.startHold()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.stopHold()
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Progress bar fills from left to right
	progressWidth := size.Width * float32(r.button.progress)
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	minWidth := textSize.Width + theme.Padding()*4
	minHeight := textSize.Height + theme.Padding()*2

	if minWidth < 240 {
		minWidth = 240
	}
	if minHeight < 48 {
		minHeight = 48
	}

	return fyne.NewSize(minWidth, minHeight)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.Color(theme.ColorNameForeground)

	if r.button.hovered {
		r.bg.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}

	size := r.bg.Size()
	progressWidth := size.Width * float32(r.button.progress)
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.Color(theme.ColorNameButton)
}

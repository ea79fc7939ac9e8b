package components

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/resource-timeline/pkg/interaction"
	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/store"
	"github.com/borgmon/resource-timeline/pkg/timegrid"
)

// HandleWidth is the width of the resize grips at both ends of a block
const HandleWidth = 6

var (
	gridDayColor  = color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	gridHourColor = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	handleColor   = color.NRGBA{R: 0x42, G: 0x42, B: 0x42, A: 0x99}
	blockText     = color.NRGBA{A: 0xff}
)

// RowSurface is the drag surface of one resource row. It draws the row's
// event blocks and forwards pointer and key input to the gesture controller.
type RowSurface struct {
	widget.BaseWidget

	Resource models.Resource

	store      *store.EventStore
	controller *interaction.Controller

	pressed   bool
	last      interaction.Point
	hovered   int // 0 when no block is under the pointer
	focused   int // block that took keyboard focus with the last press
	indicator interaction.IndicatorState
}

// NewRowSurface creates the surface of resource r
func NewRowSurface(r models.Resource, s *store.EventStore, ctl *interaction.Controller) *RowSurface {
	row := &RowSurface{Resource: r, store: s, controller: ctl}
	row.ExtendBaseWidget(row)
	return row
}

func toPoint(p fyne.Position) interaction.Point {
	return interaction.Point{X: int(math.Round(float64(p.X))), Y: int(math.Round(float64(p.Y)))}
}

func (r *RowSurface) weekWidth() int {
	return r.store.Mapper().DayWidth() * 7
}

// Bounds returns the surface rectangle in window coordinates
func (r *RowSurface) Bounds() (interaction.Rect, bool) {
	if !r.Visible() {
		return interaction.Rect{}, false
	}
	origin := toPoint(fyne.CurrentApp().Driver().AbsolutePositionForObject(r))
	height := int(math.Round(float64(r.Size().Height)))
	if height <= 0 {
		height = r.store.Config().RowHeight
	}
	return interaction.Rect{
		Left:   origin.X,
		Top:    origin.Y,
		Right:  origin.X + r.weekWidth(),
		Bottom: origin.Y + height,
	}, true
}

// events returns the visible blocks of this row, lowest id first
func (r *RowSurface) events() []models.TimedEvent {
	visible := r.store.Visible()
	out := make([]models.TimedEvent, 0, len(visible))
	for _, id := range visible.IDs() {
		if ev := visible[id]; ev.Resource == r.Resource.ID {
			out = append(out, ev)
		}
	}
	return out
}

// TargetAt reports what lies under p. Later blocks are drawn on top and win.
func (r *RowSurface) TargetAt(p interaction.Point) interaction.Target {
	surface, ok := r.Bounds()
	if !ok {
		return interaction.Target{Kind: interaction.TargetGrid}
	}
	evs := r.events()
	for i := len(evs) - 1; i >= 0; i-- {
		rect := interaction.EventRect(surface, evs[i].Geometry)
		if !rect.Contains(p) {
			continue
		}
		kind := interaction.TargetEvent
		switch {
		case p.X < rect.Left+HandleWidth:
			kind = interaction.TargetLeftHandle
		case p.X >= rect.Right-HandleWidth:
			kind = interaction.TargetRightHandle
		}
		return interaction.Target{Kind: kind, EventID: evs[i].ID}
	}
	return interaction.Target{Kind: interaction.TargetGrid}
}

func (r *RowSurface) hover(id int) {
	if id == r.hovered {
		return
	}
	if r.hovered != 0 {
		r.controller.Hover(r.hovered, false)
	}
	r.hovered = id
	if id != 0 {
		r.controller.Hover(id, true)
	}
	r.Refresh()
}

func (r *RowSurface) track(p interaction.Point) {
	t := r.TargetAt(p)
	if t.Kind == interaction.TargetGrid {
		r.hover(0)
	} else {
		r.hover(t.EventID)
	}
	r.indicator = r.controller.Indicator(r.Resource.ID, p)
	r.Refresh()
}

// MouseDown implements desktop.Mouseable
func (r *RowSurface) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	p := toPoint(ev.AbsolutePosition)
	r.track(p)
	target := r.TargetAt(p)

	r.pressed, r.last = true, p
	r.controller.PointerDown(r.Resource.ID, target, p)

	if target.Kind != interaction.TargetGrid {
		r.focused = target.EventID
		if c := fyne.CurrentApp().Driver().CanvasForObject(r); c != nil {
			c.Focus(r)
		}
	}
}

// MouseUp implements desktop.Mouseable
func (r *RowSurface) MouseUp(ev *desktop.MouseEvent) {
	r.release(toPoint(ev.AbsolutePosition))
}

// Dragged implements fyne.Draggable
func (r *RowSurface) Dragged(ev *fyne.DragEvent) {
	if !r.pressed {
		return
	}
	p := toPoint(ev.AbsolutePosition)
	r.last = p
	r.controller.PointerMove(p)
	r.indicator = r.controller.Indicator(r.Resource.ID, p)
	r.Refresh()
}

// DragEnd implements fyne.Draggable
func (r *RowSurface) DragEnd() {
	r.release(r.last)
}

func (r *RowSurface) release(p interaction.Point) {
	if !r.pressed {
		return
	}
	r.pressed = false
	r.controller.PointerUp(p)
	r.Refresh()
}

// MouseIn implements desktop.Hoverable
func (r *RowSurface) MouseIn(ev *desktop.MouseEvent) {
	r.track(toPoint(ev.AbsolutePosition))
}

// MouseMoved implements desktop.Hoverable
func (r *RowSurface) MouseMoved(ev *desktop.MouseEvent) {
	r.track(toPoint(ev.AbsolutePosition))
}

// MouseOut implements desktop.Hoverable
func (r *RowSurface) MouseOut() {
	r.hover(0)
	r.indicator = interaction.IndicatorState{}
	r.Refresh()
}

// FocusGained implements fyne.Focusable
func (r *RowSurface) FocusGained() {}

// FocusLost implements fyne.Focusable
func (r *RowSurface) FocusLost() {
	if r.focused != 0 {
		r.controller.Blur(r.focused)
		r.focused = 0
	}
}

// TypedRune implements fyne.Focusable
func (r *RowSurface) TypedRune(rune) {}

// TypedKey implements fyne.Focusable
func (r *RowSurface) TypedKey(ev *fyne.KeyEvent) {
	if r.focused == 0 {
		return
	}
	switch ev.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		r.controller.KeyDown(r.focused, interaction.KeyDelete)
	}
}

// CreateRenderer implements fyne.Widget
func (r *RowSurface) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	rnd := &rowRenderer{row: r, bg: bg}

	dayWidth := r.store.Mapper().DayWidth()
	for x := 0; x <= r.weekWidth(); x += dayWidth / timegrid.HoursPerDay {
		line := canvas.NewLine(gridHourColor)
		if x%dayWidth == 0 {
			line.StrokeColor = gridDayColor
		}
		rnd.lines = append(rnd.lines, gridLine{x: float32(x), line: line})
	}

	rnd.marker = canvas.NewLine(theme.Color(theme.ColorNamePrimary))
	rnd.marker.StrokeWidth = 2
	rnd.markerLabel = canvas.NewText("", theme.Color(theme.ColorNamePrimary))
	rnd.markerLabel.TextSize = theme.CaptionTextSize()
	rnd.Refresh()
	return rnd
}

type gridLine struct {
	x    float32
	line *canvas.Line
}

type blockObjects struct {
	geometry models.Geometry
	rect     *canvas.Rectangle
	title    *canvas.Text
	span     *canvas.Text
	handles  []*canvas.Rectangle
}

type rowRenderer struct {
	row         *RowSurface
	bg          *canvas.Rectangle
	lines       []gridLine
	blocks      []blockObjects
	marker      *canvas.Line
	markerLabel *canvas.Text
}

func (r *rowRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	for _, gl := range r.lines {
		gl.line.Position1 = fyne.NewPos(gl.x, 0)
		gl.line.Position2 = fyne.NewPos(gl.x, size.Height)
	}

	width := r.row.weekWidth()
	for _, b := range r.blocks {
		left := float32(b.geometry.Left(width))
		top := float32(b.geometry.OffsetY)
		w, h := float32(b.geometry.Width), float32(b.geometry.Height)

		b.rect.Move(fyne.NewPos(left, top))
		b.rect.Resize(fyne.NewSize(w, h))
		pad := float32(HandleWidth)
		b.title.Move(fyne.NewPos(left+pad, top+2))
		b.span.Move(fyne.NewPos(left+pad, top+2+b.title.MinSize().Height))
		for i, hd := range b.handles {
			x := left
			if i == 1 {
				x = left + w - HandleWidth
			}
			hd.Move(fyne.NewPos(x, top))
			hd.Resize(fyne.NewSize(HandleWidth, h))
		}
	}

	ind := r.row.indicator
	r.marker.Hidden = !ind.Visible
	r.markerLabel.Hidden = !ind.Visible
	r.marker.Position1 = fyne.NewPos(float32(ind.X), 0)
	r.marker.Position2 = fyne.NewPos(float32(ind.X), size.Height)
	r.markerLabel.Move(fyne.NewPos(float32(ind.X)+2, 0))
}

func (r *rowRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.row.weekWidth()), float32(r.row.store.Config().RowHeight))
}

func (r *rowRenderer) Refresh() {
	cfg := r.row.store.Config()
	active, hasActive := r.row.store.ActiveID()

	r.blocks = r.blocks[:0]
	for _, ev := range r.row.events() {
		fill := models.ColorOr(models.Color(ev.Geometry.BackgroundColor), models.Color(cfg.DefaultColor))
		rect := canvas.NewRectangle(fill)
		rect.CornerRadius = 4
		if hasActive && active == ev.ID {
			rect.StrokeColor = theme.Color(theme.ColorNamePrimary)
			rect.StrokeWidth = 2
		}

		title := canvas.NewText(ev.Title, blockText)
		title.TextStyle = fyne.TextStyle{Bold: true}
		title.TextSize = theme.CaptionTextSize()
		span := canvas.NewText(ev.DisplayStart+" - "+ev.DisplayEnd, blockText)
		span.TextSize = theme.CaptionTextSize()

		b := blockObjects{geometry: ev.Geometry, rect: rect, title: title, span: span}
		if r.row.hovered == ev.ID {
			b.handles = []*canvas.Rectangle{canvas.NewRectangle(handleColor), canvas.NewRectangle(handleColor)}
		}
		r.blocks = append(r.blocks, b)
	}

	r.markerLabel.Text = r.row.indicator.Label
	r.bg.FillColor = theme.Color(theme.ColorNameBackground)
	r.Layout(r.row.Size())
	canvas.Refresh(r.row)
}

func (r *rowRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, 1+len(r.lines)+4*len(r.blocks)+2)
	objs = append(objs, r.bg)
	for _, gl := range r.lines {
		objs = append(objs, gl.line)
	}
	for _, b := range r.blocks {
		objs = append(objs, b.rect, b.title, b.span)
		for _, hd := range b.handles {
			objs = append(objs, hd)
		}
	}
	return append(objs, r.marker, r.markerLabel)
}

func (r *rowRenderer) Destroy() {}

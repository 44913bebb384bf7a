package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const gripSize = 10

// noteEntry is a word-wrapping multi-line entry whose secondary tap opens the
// note's own menu instead of the clipboard menu.
type noteEntry struct {
	widget.Entry
	onSecondaryTap func(pos fyne.Position)
}

func newNoteEntry(text string) *noteEntry {
	e := &noteEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	e.SetText(text)
	return e
}

// TappedSecondary shows the note menu at the pointer.
func (e *noteEntry) TappedSecondary(ev *fyne.PointEvent) {
	if e.onSecondaryTap != nil {
		e.onSecondaryTap(ev.AbsolutePosition)
	}
}

// resizeGrip is the small square in a note's bottom-right corner. Dragging it
// resizes the window.
type resizeGrip struct {
	widget.BaseWidget
	onDrag    func(delta fyne.Delta)
	onDragEnd func()
}

func newResizeGrip() *resizeGrip {
	g := &resizeGrip{}
	g.ExtendBaseWidget(g)
	return g
}

func (g *resizeGrip) CreateRenderer() fyne.WidgetRenderer {
	square := canvas.NewRectangle(color.Black)
	square.SetMinSize(fyne.NewSize(gripSize, gripSize))
	return widget.NewSimpleRenderer(square)
}

func (g *resizeGrip) Dragged(ev *fyne.DragEvent) {
	if g.onDrag != nil {
		g.onDrag(ev.Dragged)
	}
}

func (g *resizeGrip) DragEnd() {
	if g.onDragEnd != nil {
		g.onDragEnd()
	}
}

func (g *resizeGrip) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

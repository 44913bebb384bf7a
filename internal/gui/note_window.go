package gui

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"

	"stickynotes/internal/board"
	"stickynotes/internal/notes"
)

const (
	defaultTitle  = "Note"
	maxTitleRunes = 32
)

// noteWindow is the live window of one note.
type noteWindow struct {
	id         string
	window     fyne.Window
	entry      *noteEntry
	background *canvas.Rectangle
	grip       *resizeGrip

	dragging  bool
	dragStart fyne.Size
	dragDelta fyne.Delta
}

func newNoteWindow(a fyne.App, e board.Entry) *noteWindow {
	w := a.NewWindow(windowTitle(e.Note.Text))
	w.SetPadded(false)

	nw := &noteWindow{
		id:         e.ID,
		window:     w,
		entry:      newNoteEntry(e.Note.Text),
		background: canvas.NewRectangle(noteColor(e.Note.Color)),
		grip:       newResizeGrip(),
	}

	body := container.NewBorder(nil,
		container.NewHBox(layout.NewSpacer(), nw.grip),
		nil, nil,
		nw.entry,
	)
	w.SetContent(container.NewStack(
		nw.background,
		container.NewThemeOverride(body, newNoteTheme()),
	))
	w.Resize(fyne.NewSize(float32(e.Note.Width), float32(e.Note.Height)))
	return nw
}

func (nw *noteWindow) setColor(hex string) {
	nw.background.FillColor = noteColor(hex)
	nw.background.Refresh()
}

func (nw *noteWindow) size() fyne.Size {
	return nw.window.Canvas().Size()
}

// beginDrag records the size the grip drag is measured from.
func (nw *noteWindow) beginDrag() {
	if nw.dragging {
		return
	}
	nw.dragging = true
	nw.dragStart = nw.size()
	nw.dragDelta = fyne.Delta{}
}

// dragTarget accumulates a grip movement and returns the requested size.
func (nw *noteWindow) dragTarget(d fyne.Delta) fyne.Size {
	nw.beginDrag()
	nw.dragDelta.DX += d.DX
	nw.dragDelta.DY += d.DY
	return fyne.NewSize(nw.dragStart.Width+nw.dragDelta.DX, nw.dragStart.Height+nw.dragDelta.DY)
}

func (nw *noteWindow) endDrag() {
	nw.dragging = false
}

func noteColor(hex string) color.Color {
	c, err := notes.ParseColor(hex)
	if err != nil {
		c, _ = notes.ParseColor(notes.DefaultColor)
	}
	return c
}

// windowTitle is the note's first non-empty line, shortened.
func windowTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > maxTitleRunes {
			r := []rune(line)
			line = string(r[:maxTitleRunes-1]) + "…"
		}
		return line
	}
	return defaultTitle
}

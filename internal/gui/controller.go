package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"stickynotes/internal/board"
	"stickynotes/internal/logger"
	"stickynotes/internal/notes"
)

const (
	swatchSize = 20

	// cascadeOffset places a new note diagonally below the last one.
	cascadeOffset = 30
)

// Controller creates one window per note and turns window events into board
// operations. All methods run on the Fyne event loop.
type Controller struct {
	app    fyne.App
	board  *board.Board
	logger logger.Logger

	windows  map[string]*noteWindow
	order    []string
	swatches map[string]fyne.Resource

	quitHandler func()
	quitting    bool
	isShutdown  bool
}

func NewController(a fyne.App, b *board.Board, log logger.Logger) *Controller {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Controller{
		app:      a,
		board:    b,
		logger:   log,
		windows:  make(map[string]*noteWindow),
		swatches: make(map[string]fyne.Resource),
	}
}

// SetQuitHandler replaces the default quit behaviour (final save, then
// app.Quit) so the application lifecycle can run its own shutdown sequence.
func (c *Controller) SetQuitHandler(handler func()) {
	c.quitHandler = handler
}

// Start opens a window for every note and installs the global menu.
func (c *Controller) Start() {
	firstRun := c.board.Len() == 0
	// Placement is left to the window manager, welcome note included.
	entries := c.board.Open(notes.DefaultX, notes.DefaultY)

	for _, e := range entries {
		c.openWindow(e)
	}
	c.installTrayMenu()

	c.logger.Info("Controller", "notes opened", map[string]interface{}{
		"count":     len(entries),
		"first_run": firstRun,
	})
}

func (c *Controller) openWindow(e board.Entry) *noteWindow {
	nw := newNoteWindow(c.app, e)
	id := e.ID

	nw.entry.OnChanged = func(text string) {
		if err := c.board.SetText(id, text); err != nil {
			c.logger.Debug("Controller", "text change for closed note", map[string]interface{}{"id": id})
			return
		}
		nw.window.SetTitle(windowTitle(text))
	}
	nw.entry.onSecondaryTap = func(pos fyne.Position) {
		widget.ShowPopUpMenuAtPosition(c.noteMenu(id), nw.window.Canvas(), pos)
	}
	nw.grip.onDrag = func(d fyne.Delta) {
		c.ResizeNote(id, nw.dragTarget(d))
	}
	nw.grip.onDragEnd = nw.endDrag
	nw.window.SetCloseIntercept(func() {
		c.CloseNote(id)
	})

	c.windows[id] = nw
	c.order = append(c.order, id)
	if e.Visible {
		nw.window.Show()
	}
	return nw
}

// NewNote adds an empty note next to the most recently opened one.
func (c *Controller) NewNote() {
	x, y := notes.DefaultX, notes.DefaultY
	if len(c.order) > 0 {
		if last, ok := c.board.Note(c.order[len(c.order)-1]); ok {
			x, y = last.X+cascadeOffset, last.Y+cascadeOffset
		}
	}
	e := c.board.Add(x, y)
	nw := c.openWindow(e)
	nw.window.RequestFocus()
}

// CloseNote hides a note. Hiding the last visible note quits.
func (c *Controller) CloseNote(id string) {
	nw, ok := c.windows[id]
	if !ok {
		return
	}
	// Capture the text before the window goes away so the final save sees it.
	_ = c.board.SetText(id, nw.entry.Text)

	allHidden, err := c.board.Close(id)
	if err != nil {
		c.logger.Error("Controller", err, map[string]interface{}{"id": id})
		return
	}
	nw.window.Hide()

	if allHidden {
		c.logger.Info("Controller", "all notes closed", nil)
		c.Quit()
	}
}

// DestroyNote removes a note for good. Destroying the last note quits.
func (c *Controller) DestroyNote(id string) {
	nw, ok := c.windows[id]
	if !ok {
		return
	}
	remaining, err := c.board.Destroy(id)
	delete(c.windows, id)
	c.removeFromOrder(id)
	nw.window.Close()

	if err != nil {
		c.showError("Could not save notes", err)
	}
	if remaining == 0 {
		c.Quit()
	}
}

// RecolorNote changes a note's color and saves.
func (c *Controller) RecolorNote(id, hex string) {
	nw, ok := c.windows[id]
	if !ok {
		return
	}
	if err := c.board.Recolor(id, hex); err != nil {
		c.showError("Could not change color", err)
	}
	if n, ok := c.board.Note(id); ok {
		nw.setColor(n.Color)
	}
}

// ResizeNote applies a size requested by the resize grip. Sizes at or below
// the minimum are refused.
func (c *Controller) ResizeNote(id string, size fyne.Size) bool {
	nw, ok := c.windows[id]
	if !ok {
		return false
	}
	accepted, err := c.board.Resize(id, int(size.Width), int(size.Height))
	if err != nil || !accepted {
		return false
	}
	nw.window.Resize(size)
	return true
}

// ApplyExternal adopts palette and default size keys from an externally
// edited configuration file.
func (c *Controller) ApplyExternal(s notes.Settings) {
	c.board.ApplyExternal(s)
}

// Observe implements board.Probe. Fyne can neither read nor set a window's
// screen position, so x/y are never mutated here: the recorded position is
// reported back unchanged and only text and size come from the window.
func (c *Controller) Observe(id string) (string, board.Geometry, bool) {
	nw, ok := c.windows[id]
	if !ok {
		return "", board.Geometry{}, false
	}
	rec, ok := c.board.Note(id)
	if !ok {
		return "", board.Geometry{}, false
	}

	geom := board.Geometry{X: rec.X, Y: rec.Y, Width: rec.Width, Height: rec.Height}
	if size := nw.size(); size.Width > 0 && size.Height > 0 {
		geom.Width, geom.Height = int(size.Width), int(size.Height)
	}
	return nw.entry.Text, geom, true
}

// Quit runs the shutdown sequence once.
func (c *Controller) Quit() {
	if c.quitting {
		return
	}
	c.quitting = true

	if c.quitHandler != nil {
		c.quitHandler()
		return
	}
	c.Shutdown()
	c.app.Quit()
}

// Shutdown writes the final configuration. Safe to call more than once.
func (c *Controller) Shutdown() {
	if c.isShutdown {
		return
	}
	c.isShutdown = true

	if err := c.board.Shutdown(c); err != nil {
		c.logger.Error("Controller", err, map[string]interface{}{
			"stage": "final save",
		})
	}
	c.logger.Info("Controller", "shutdown completed", nil)
}

func (c *Controller) noteMenu(id string) *fyne.Menu {
	palette := c.board.Palette()
	colorItems := make([]*fyne.MenuItem, 0, len(palette))
	for _, hex := range palette {
		item := fyne.NewMenuItem(hex, func() { c.RecolorNote(id, hex) })
		item.Icon = c.swatch(hex)
		colorItems = append(colorItems, item)
	}
	colors := fyne.NewMenuItem("Colors", nil)
	colors.ChildMenu = fyne.NewMenu("", colorItems...)

	return fyne.NewMenu("",
		fyne.NewMenuItem("Close note", func() { c.CloseNote(id) }),
		fyne.NewMenuItem("Destroy note", func() { c.DestroyNote(id) }),
		colors,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("New note", c.NewNote),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", c.Quit),
	)
}

func (c *Controller) swatch(hex string) fyne.Resource {
	if res, ok := c.swatches[hex]; ok {
		return res
	}
	data, err := notes.Swatch(hex, swatchSize)
	if err != nil {
		c.logger.Warning("Controller", "swatch unavailable", map[string]interface{}{"color": hex})
		return nil
	}
	res := fyne.NewStaticResource(fmt.Sprintf("swatch-%s.png", hex[1:]), data)
	c.swatches[hex] = res
	return res
}

func (c *Controller) showError(title string, err error) {
	c.logger.Error("Controller", err, map[string]interface{}{
		"title": title,
	})
	for _, id := range c.order {
		if nw, ok := c.windows[id]; ok && c.board.Visible(id) {
			dialog.ShowError(err, nw.window)
			return
		}
	}
}

func (c *Controller) removeFromOrder(id string) {
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Package board owns the running application's note state. It is the single
// place where note records are created, mutated and removed, and it decides
// when the configuration is written back to disk.
//
// A Board is not safe for concurrent use; every call is expected to come from
// the GUI event loop.
package board

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"stickynotes/internal/logger"
	"stickynotes/internal/notes"
)

// WelcomeText is the body of the note created when no notes exist.
const WelcomeText = "Welcome to your notes!"

var ErrUnknownNote = errors.New("unknown note")

// Saver persists the configuration.
type Saver interface {
	Save(cfg *notes.Config) error
}

// Geometry is a note window's position and size in screen units.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// Probe reads the live state of an open note window. ok is false when the
// window no longer exists.
type Probe interface {
	Observe(id string) (text string, geom Geometry, ok bool)
}

// Entry is an open note: a handle plus the index-aligned record.
type Entry struct {
	ID      string
	Note    notes.Note
	Visible bool
}

type slot struct {
	id      string
	visible bool
}

type Board struct {
	cfg   *notes.Config
	slots []slot // index-aligned with cfg.Notes
	saver Saver
	log   logger.Logger

	shutdown bool
}

func New(cfg *notes.Config, saver Saver, log logger.Logger) *Board {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	cfg = cfg.Clone()
	slots := make([]slot, len(cfg.Notes))
	for i := range slots {
		slots[i] = slot{id: uuid.NewString(), visible: true}
	}
	return &Board{cfg: cfg, slots: slots, saver: saver, log: log}
}

// Open returns the notes to show at start-up. An empty board gets the
// welcome note at (x, y).
func (b *Board) Open(x, y int) []Entry {
	if len(b.cfg.Notes) == 0 {
		b.appendNote(notes.Note{
			Text:   WelcomeText,
			Color:  b.cfg.PaletteColor(0),
			X:      x,
			Y:      y,
			Width:  b.cfg.DefaultWidth,
			Height: b.cfg.DefaultHeight,
		})
		b.log.Info("Board", "welcome note created", nil)
	}

	entries := make([]Entry, len(b.slots))
	for i, s := range b.slots {
		entries[i] = Entry{ID: s.id, Note: b.cfg.Notes[i], Visible: s.visible}
	}
	return entries
}

// Add creates an empty note at (x, y) using the next palette color and the
// current default size.
func (b *Board) Add(x, y int) Entry {
	n := notes.Note{
		Color:  b.cfg.PaletteColor(len(b.slots)),
		X:      x,
		Y:      y,
		Width:  b.cfg.DefaultWidth,
		Height: b.cfg.DefaultHeight,
	}
	id := b.appendNote(n)

	b.log.Debug("Board", "note created", map[string]interface{}{
		"id":    id,
		"color": n.Color,
		"count": len(b.slots),
	})
	return Entry{ID: id, Note: n, Visible: true}
}

func (b *Board) appendNote(n notes.Note) string {
	id := uuid.NewString()
	b.cfg.Notes = append(b.cfg.Notes, n)
	b.slots = append(b.slots, slot{id: id, visible: true})
	return id
}

func (b *Board) SetText(id, text string) error {
	i, err := b.index(id)
	if err != nil {
		return err
	}
	b.cfg.Notes[i].Text = text
	return nil
}

// Resize applies a new size when both sides exceed notes.MinNoteSize and
// reports whether it did. An accepted size becomes the default for new notes.
func (b *Board) Resize(id string, width, height int) (bool, error) {
	i, err := b.index(id)
	if err != nil {
		return false, err
	}
	if width <= notes.MinNoteSize || height <= notes.MinNoteSize {
		return false, nil
	}
	b.cfg.Notes[i].Width = width
	b.cfg.Notes[i].Height = height
	b.cfg.DefaultWidth = width
	b.cfg.DefaultHeight = height
	return true, nil
}

// Recolor changes a note's color and saves immediately.
func (b *Board) Recolor(id, color string) error {
	i, err := b.index(id)
	if err != nil {
		return err
	}
	norm, err := notes.NormalizeColor(color)
	if err != nil {
		return err
	}
	b.cfg.Notes[i].Color = norm

	b.log.Debug("Board", "note recolored", map[string]interface{}{
		"id":    id,
		"color": norm,
	})
	return b.save()
}

// Close hides a note without removing its record. It reports whether every
// note is now hidden.
func (b *Board) Close(id string) (bool, error) {
	i, err := b.index(id)
	if err != nil {
		return false, err
	}
	b.slots[i].visible = false
	return b.allHidden(), nil
}

// Destroy removes a note and saves immediately. It returns the number of
// notes left; zero means the application should shut down.
func (b *Board) Destroy(id string) (int, error) {
	i, err := b.index(id)
	if err != nil {
		return len(b.slots), err
	}
	b.cfg.Notes = append(b.cfg.Notes[:i], b.cfg.Notes[i+1:]...)
	b.slots = append(b.slots[:i], b.slots[i+1:]...)

	b.log.Info("Board", "note destroyed", map[string]interface{}{
		"id":        id,
		"remaining": len(b.slots),
	})
	return len(b.slots), b.save()
}

// Reconcile copies the live text and geometry of every visible note into
// its record.
func (b *Board) Reconcile(probe Probe) {
	if probe == nil {
		return
	}
	for i, s := range b.slots {
		if !s.visible {
			continue
		}
		text, geom, ok := probe.Observe(s.id)
		if !ok {
			continue
		}
		n := &b.cfg.Notes[i]
		n.Text = text
		n.X, n.Y = geom.X, geom.Y
		n.Width, n.Height = geom.Width, geom.Height
	}
}

// Shutdown reconciles and writes the final configuration. Later calls are
// no-ops.
func (b *Board) Shutdown(probe Probe) error {
	if b.shutdown {
		return nil
	}
	b.shutdown = true
	b.Reconcile(probe)

	b.log.Info("Board", "final save", map[string]interface{}{
		"notes": len(b.cfg.Notes),
	})
	return b.save()
}

// IsShutdown reports whether Shutdown has run.
func (b *Board) IsShutdown() bool {
	return b.shutdown
}

// ApplyExternal adopts the palette and default size keys present in an
// externally edited file. Records of open notes stay owned by this process.
func (b *Board) ApplyExternal(s notes.Settings) {
	if len(s.Colors) > 0 {
		b.cfg.Colors = append([]string(nil), s.Colors...)
	}
	if s.DefaultWidth != nil && *s.DefaultWidth > 0 {
		b.cfg.DefaultWidth = *s.DefaultWidth
	}
	if s.DefaultHeight != nil && *s.DefaultHeight > 0 {
		b.cfg.DefaultHeight = *s.DefaultHeight
	}
	b.log.Info("Board", "external settings applied", map[string]interface{}{
		"colors":         len(b.cfg.Colors),
		"default_width":  b.cfg.DefaultWidth,
		"default_height": b.cfg.DefaultHeight,
	})
}

// Note returns the current record for id.
func (b *Board) Note(id string) (notes.Note, bool) {
	i, err := b.index(id)
	if err != nil {
		return notes.Note{}, false
	}
	return b.cfg.Notes[i], true
}

// Visible reports whether id is an open, shown note.
func (b *Board) Visible(id string) bool {
	i, err := b.index(id)
	return err == nil && b.slots[i].visible
}

// Palette returns a copy of the color palette.
func (b *Board) Palette() []string {
	return append([]string(nil), b.cfg.Colors...)
}

func (b *Board) Len() int {
	return len(b.slots)
}

// Snapshot returns a copy of the configuration as it would be saved now.
func (b *Board) Snapshot() *notes.Config {
	return b.cfg.Clone()
}

func (b *Board) index(id string) (int, error) {
	for i, s := range b.slots {
		if s.id == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownNote, id)
}

func (b *Board) allHidden() bool {
	for _, s := range b.slots {
		if s.visible {
			return false
		}
	}
	return true
}

func (b *Board) save() error {
	if b.saver == nil {
		return nil
	}
	if err := b.saver.Save(b.cfg); err != nil {
		b.log.Error("Board", err, nil)
		return err
	}
	return nil
}

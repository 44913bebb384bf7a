package gui

import (
	"image/color"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickynotes/internal/board"
	"stickynotes/internal/notes"
)

type harness struct {
	app   fyne.App
	store *notes.Store
	board *board.Board
	ctrl  *Controller
	quits int
}

func newHarness(t *testing.T, cfg *notes.Config) *harness {
	t.Helper()

	h := &harness{app: test.NewTempApp(t)}
	h.store = notes.NewStore(filepath.Join(t.TempDir(), notes.DefaultFileName), nil)
	h.board = board.New(cfg, h.store, nil)
	h.ctrl = NewController(h.app, h.board, nil)
	h.ctrl.SetQuitHandler(func() {
		h.quits++
		h.ctrl.Shutdown()
	})
	h.ctrl.Start()
	return h
}

func (h *harness) saved(t *testing.T) *notes.Config {
	t.Helper()
	cfg, err := h.store.Load()
	require.NoError(t, err)
	return cfg
}

func twoNoteConfig() *notes.Config {
	cfg := notes.DefaultConfig()
	cfg.Notes = []notes.Note{
		{Text: "groceries\nmilk", Color: "#FFB3BA", X: 10, Y: 20, Width: 250, Height: 200},
		{Text: "call back", Color: "#BFFFBF", X: 300, Y: 20, Width: 260, Height: 210},
	}
	return cfg
}

func TestStart_OpensOneWindowPerNote(t *testing.T) {
	h := newHarness(t, twoNoteConfig())

	assert.Len(t, h.ctrl.windows, 2)
	assert.Len(t, h.app.Driver().AllWindows(), 2)

	titles := []string{}
	for _, id := range h.ctrl.order {
		titles = append(titles, h.ctrl.windows[id].window.Title())
	}
	assert.Equal(t, []string{"groceries", "call back"}, titles)
}

func TestStart_FirstRunShowsWelcomeNote(t *testing.T) {
	h := newHarness(t, notes.DefaultConfig())

	require.Len(t, h.ctrl.order, 1)
	nw := h.ctrl.windows[h.ctrl.order[0]]
	assert.Equal(t, board.WelcomeText, nw.entry.Text)

	h.ctrl.Quit()
	saved := h.saved(t)
	require.Len(t, saved.Notes, 1)
	assert.Equal(t, notes.DefaultX, saved.Notes[0].X)
	assert.Equal(t, notes.DefaultY, saved.Notes[0].Y)
}

func TestDestroyLastNote_QuitsWithEmptySave(t *testing.T) {
	h := newHarness(t, twoNoteConfig())
	first, second := h.ctrl.order[0], h.ctrl.order[1]

	h.ctrl.DestroyNote(first)
	assert.Zero(t, h.quits)
	assert.Len(t, h.saved(t).Notes, 1)

	h.ctrl.DestroyNote(second)
	assert.Equal(t, 1, h.quits)
	assert.Empty(t, h.saved(t).Notes)
	assert.Empty(t, h.app.Driver().AllWindows())
}

func TestCloseAllNotes_QuitsAndKeepsRecords(t *testing.T) {
	h := newHarness(t, twoNoteConfig())
	first, second := h.ctrl.order[0], h.ctrl.order[1]

	h.ctrl.windows[first].entry.SetText("groceries\nmilk\neggs")
	h.ctrl.CloseNote(first)
	assert.Zero(t, h.quits)

	h.ctrl.CloseNote(second)
	assert.Equal(t, 1, h.quits)

	saved := h.saved(t)
	require.Len(t, saved.Notes, 2)
	assert.Equal(t, "groceries\nmilk\neggs", saved.Notes[0].Text)
}

func TestQuit_RunsOnce(t *testing.T) {
	h := newHarness(t, twoNoteConfig())

	h.ctrl.Quit()
	h.ctrl.Quit()
	assert.Equal(t, 1, h.quits)
}

func TestRecolorNote(t *testing.T) {
	h := newHarness(t, twoNoteConfig())
	id := h.ctrl.order[1]

	h.ctrl.RecolorNote(id, "#baffff")

	want, _ := notes.ParseColor("#BAFFFF")
	assert.Equal(t, color.Color(want), h.ctrl.windows[id].background.FillColor)
	assert.Equal(t, "#BAFFFF", h.saved(t).Notes[1].Color)
}

func TestResizeNote_RefusesSmallSizes(t *testing.T) {
	h := newHarness(t, twoNoteConfig())
	id := h.ctrl.order[0]

	assert.False(t, h.ctrl.ResizeNote(id, fyne.NewSize(100, 300)))
	assert.True(t, h.ctrl.ResizeNote(id, fyne.NewSize(320, 240)))

	n, ok := h.board.Note(id)
	require.True(t, ok)
	assert.Equal(t, 320, n.Width)
	assert.Equal(t, 240, n.Height)
	assert.Equal(t, 320, h.board.Snapshot().DefaultWidth)
}

func TestResizeGrip_AccumulatesDrag(t *testing.T) {
	h := newHarness(t, twoNoteConfig())
	id := h.ctrl.order[0]
	nw := h.ctrl.windows[id]
	start := nw.size()

	nw.grip.Dragged(&fyne.DragEvent{Dragged: fyne.NewDelta(20, 10)})
	nw.grip.Dragged(&fyne.DragEvent{Dragged: fyne.NewDelta(20, 10)})
	nw.grip.DragEnd()

	n, _ := h.board.Note(id)
	assert.Equal(t, int(start.Width)+40, n.Width)
	assert.Equal(t, int(start.Height)+20, n.Height)
	assert.False(t, nw.dragging)
}

func TestNewNote_CascadesFromLastNote(t *testing.T) {
	h := newHarness(t, twoNoteConfig())

	h.ctrl.NewNote()
	require.Len(t, h.ctrl.order, 3)

	n, ok := h.board.Note(h.ctrl.order[2])
	require.True(t, ok)
	assert.Equal(t, 300+cascadeOffset, n.X)
	assert.Equal(t, 20+cascadeOffset, n.Y)
	assert.Equal(t, notes.DefaultPalette()[2], n.Color)
	assert.Len(t, h.app.Driver().AllWindows(), 3)
}

func TestNoteMenu_HasColorSwatches(t *testing.T) {
	h := newHarness(t, twoNoteConfig())

	menu := h.ctrl.noteMenu(h.ctrl.order[0])
	require.Len(t, menu.Items, 7)

	colors := menu.Items[2]
	assert.Equal(t, "Colors", colors.Label)
	require.NotNil(t, colors.ChildMenu)
	require.Len(t, colors.ChildMenu.Items, len(notes.DefaultPalette()))
	for _, item := range colors.ChildMenu.Items {
		assert.NotNil(t, item.Icon, item.Label)
	}
}

func TestApplyExternal_ChangesMenuPalette(t *testing.T) {
	h := newHarness(t, twoNoteConfig())

	h.ctrl.ApplyExternal(notes.Settings{Colors: []string{"#000000"}})

	menu := h.ctrl.noteMenu(h.ctrl.order[0])
	assert.Len(t, menu.Items[2].ChildMenu.Items, 1)
}

func TestObserve_ReportsLiveText(t *testing.T) {
	h := newHarness(t, twoNoteConfig())
	id := h.ctrl.order[0]
	h.ctrl.windows[id].entry.SetText("edited")

	text, geom, ok := h.ctrl.Observe(id)
	require.True(t, ok)
	assert.Equal(t, "edited", text)
	assert.Equal(t, 10, geom.X)
	assert.Equal(t, 20, geom.Y)

	_, _, ok = h.ctrl.Observe("missing")
	assert.False(t, ok)
}

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, defaultTitle, windowTitle(""))
	assert.Equal(t, defaultTitle, windowTitle("\n  \n"))
	assert.Equal(t, "second line", windowTitle("\n  second line  \nthird"))

	long := windowTitle("abcdefghijklmnopqrstuvwxyzabcdefghijkl")
	assert.Equal(t, maxTitleRunes, len([]rune(long)))
}

func TestNoteTheme(t *testing.T) {
	th := newNoteTheme()

	assert.Equal(t, color.Color(color.Transparent), th.Color(theme.ColorNameInputBackground, theme.VariantLight))
	assert.Equal(t, color.Color(color.Black), th.Color(theme.ColorNameForeground, theme.VariantDark))
}

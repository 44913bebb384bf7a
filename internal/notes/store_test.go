package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	store := NewStore(path, nil)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(path)
	require.NoError(t, err, "default file should be written")
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	store := NewStore(path, nil)

	cfg := DefaultConfig()
	cfg.DefaultWidth = 410
	cfg.Notes = []Note{
		{Text: "line one\nline two", Color: "#FFB3BA", X: 10, Y: 20, Width: 300, Height: 150},
		{Text: "ünïcødé", Color: "#FFD700", X: -5, Y: 900, Width: 101, Height: 101},
		{Text: "lower case", Color: "#ffb3ba", X: 0, Y: 0, Width: 250, Height: 200},
		{Text: "short form", Color: "#abc", X: 7, Y: 8, Width: 250, Height: 200},
	}
	cfg.Colors = append(cfg.Colors, "#bfffbf", "#fd0")
	require.NoError(t, store.Save(cfg))

	loaded, err := NewStore(path, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Notes, loaded.Notes)
	assert.Equal(t, cfg, loaded)
}

func TestStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, DefaultFileName), nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(DefaultConfig()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), TempFilePrefix))
}

func TestStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewStore(path, nil).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestStore_SaveFailsWhenDirectoryMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", DefaultFileName)

	err := NewStore(path, nil).Save(DefaultConfig())
	assert.Error(t, err)
}

func TestStore_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFileName, NewStore("", nil).Path())
}

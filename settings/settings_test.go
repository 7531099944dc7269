package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "config.json"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := tempStore(t)

	set, err := s.Load()
	require.NoError(t, err, "a missing settings file is not an error")
	assert.Equal(t, DefaultNext, set.Hotkeys["next"])
	assert.Equal(t, DefaultPrev, set.Hotkeys["prev"])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)

	err := s.Save(Settings{Hotkeys: map[string]string{
		"next": "ctrl+alt+n",
		"prev": "ctrl+alt+p",
	}})
	require.NoError(t, err)

	set, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "ctrl+alt+n", set.Hotkeys["next"])
	assert.Equal(t, "ctrl+alt+p", set.Hotkeys["prev"])
}

func TestLoadMergesPartialFileOverDefaults(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"hotkeys": {"next": "f13"}}`), 0o644))

	set, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "f13", set.Hotkeys["next"])
	assert.Equal(t, DefaultPrev, set.Hotkeys["prev"], "missing entries fall back to defaults")
}

func TestLoadMalformedFileWarnsAndFallsBack(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	set, err := s.Load()
	assert.Error(t, err, "malformed settings surface a warning")
	assert.Equal(t, DefaultNext, set.Hotkeys["next"], "defaults must still be usable")
	assert.Equal(t, DefaultPrev, set.Hotkeys["prev"])
}

func TestSaveDropsUnknownActions(t *testing.T) {
	s := tempStore(t)

	err := s.Save(Settings{Hotkeys: map[string]string{
		"next":   "ctrl+n",
		"prev":   "ctrl+p",
		"bogus":  "ctrl+b",
		"delete": "ctrl+d",
	}})
	require.NoError(t, err)

	set, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, set.Hotkeys, 2)
	assert.Equal(t, "ctrl+n", set.Hotkeys["next"])
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "nested", "deeper", "config.json"))

	require.NoError(t, s.Save(Defaults()))
	_, err := os.Stat(s.Path())
	assert.NoError(t, err)
}

func TestBlankStoredComboFallsBackToDefault(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"hotkeys": {"next": "", "prev": "f1"}}`), 0o644))

	set, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultNext, set.Hotkeys["next"])
	assert.Equal(t, "f1", set.Hotkeys["prev"])
}

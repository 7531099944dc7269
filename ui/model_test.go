package ui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipbeat/cycler"
	"clipbeat/hotkey"
	"clipbeat/settings"
)

type fakeClip struct {
	writes []string
	err    error
}

func (f *fakeClip) Write(text string) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

type fakeRegistrar struct {
	bindings  map[string]string
	errs      []error
	calls     int
	available bool
}

func (f *fakeRegistrar) RegisterAll(b map[string]string) []error {
	f.calls++
	f.bindings = b
	return f.errs
}

func (f *fakeRegistrar) Available() bool { return f.available }

func newTestModel(t *testing.T, clip *fakeClip, reg *fakeRegistrar) Model {
	t.Helper()
	store := settings.NewStore(filepath.Join(t.TempDir(), "config.json"))
	set, err := store.Load()
	require.NoError(t, err)
	m := NewModel(Deps{
		Engine:   cycler.New(clip),
		Store:    store,
		Settings: set,
		Hotkeys:  reg,
	})
	return apply(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update must return a ui.Model")
	return out
}

func TestNavigationUpdatesLabelAndClipboard(t *testing.T) {
	clip := &fakeClip{}
	m := newTestModel(t, clip, &fakeRegistrar{available: true})
	m.text.SetValue("a\n\nb\nc")

	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	assert.Equal(t, "1 / 3", m.label)

	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	assert.Equal(t, "2 / 3", m.label)

	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	assert.Equal(t, "3 / 3", m.label)

	assert.Equal(t, []string{"a", "b", "c"}, clip.writes)
}

func TestHighlightFollowsItemLine(t *testing.T) {
	m := newTestModel(t, &fakeClip{}, &fakeRegistrar{available: true})
	m.text.SetValue("a\n\nb\nc")

	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	assert.Equal(t, 0, m.text.Line(), "item a lives on buffer line 1")

	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	assert.Equal(t, 2, m.text.Line(), "item b lives on buffer line 3, blank line skipped")
}

func TestEmptyBufferShowsZeroIndicator(t *testing.T) {
	clip := &fakeClip{}
	m := newTestModel(t, clip, &fakeRegistrar{available: true})

	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	assert.Equal(t, "0 / 0", m.label)
	assert.Empty(t, clip.writes)

	m = apply(t, m, ActionMsg{Action: hotkey.ActionPrev})
	assert.Equal(t, "0 / 0", m.label)
	assert.Empty(t, clip.writes)
}

func TestClearingBufferResetsIndicator(t *testing.T) {
	m := newTestModel(t, &fakeClip{}, &fakeRegistrar{available: true})
	m.text.SetValue("only line")

	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	assert.Equal(t, "1 / 1", m.label)

	m.text.SetValue("")
	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	assert.Equal(t, "0 / 0", m.label)
}

func TestCopyFailureWarnsButKeepsCycling(t *testing.T) {
	clip := &fakeClip{err: errors.New("clipboard locked")}
	m := newTestModel(t, clip, &fakeRegistrar{available: true})
	m.text.SetValue("a\nb")

	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	assert.Equal(t, "1 / 2", m.label, "navigation state still advances")
	assert.Contains(t, m.status, "copy failed")
}

func TestFooterButtonsClickable(t *testing.T) {
	clip := &fakeClip{}
	m := newTestModel(t, clip, &fakeRegistrar{available: true})
	m.text.SetValue("a\nb")

	_, next := m.buttonSpans()
	m = apply(t, m, tea.MouseMsg{
		X:      next.start,
		Y:      m.footerRow(),
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, "1 / 2", m.label)
	assert.Equal(t, []string{"a"}, clip.writes)

	prev, _ := m.buttonSpans()
	m = apply(t, m, tea.MouseMsg{
		X:      prev.start,
		Y:      m.footerRow(),
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, "1 / 2", m.label, "prev directly after next re-copies the same item")
	assert.Equal(t, []string{"a", "a"}, clip.writes)
}

func TestClickOutsideButtonsDoesNothing(t *testing.T) {
	clip := &fakeClip{}
	m := newTestModel(t, clip, &fakeRegistrar{available: true})
	m.text.SetValue("a")

	m = apply(t, m, tea.MouseMsg{
		X:      0,
		Y:      0, // title row
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Empty(t, clip.writes)
}

func TestSettingsSavePersistsAndReregisters(t *testing.T) {
	reg := &fakeRegistrar{available: true}
	m := newTestModel(t, &fakeClip{}, reg)

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.Equal(t, modeSettings, m.mode)

	m.nextIn.SetValue("ctrl+alt+n")
	m.prevIn.SetValue("ctrl+alt+p")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, modeEdit, m.mode)
	require.Equal(t, 1, reg.calls)
	assert.Equal(t, "ctrl+alt+n", reg.bindings["next"])
	assert.Equal(t, "ctrl+alt+p", reg.bindings["prev"])

	reloaded, err := m.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "ctrl+alt+n", reloaded.Hotkeys["next"])
}

func TestSettingsBindingErrorSurfacesInStatus(t *testing.T) {
	reg := &fakeRegistrar{
		available: true,
		errs: []error{&hotkey.BindingError{
			Action: hotkey.ActionNext,
			Combo:  "bad!!combo",
			Err:    errors.New("unknown key"),
		}},
	}
	m := newTestModel(t, &fakeClip{}, reg)

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	m.nextIn.SetValue("bad!!combo")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, modeEdit, m.mode, "a bad combo never blocks the app")
	assert.Contains(t, m.status, "bad!!combo")
}

func TestSettingsCancelDiscardsEdits(t *testing.T) {
	reg := &fakeRegistrar{available: true}
	m := newTestModel(t, &fakeClip{}, reg)

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	m.nextIn.SetValue("f24")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeEdit, m.mode)
	assert.Zero(t, reg.calls, "cancel must not re-register")
	assert.Equal(t, settings.DefaultNext, m.set.Hotkeys["next"])
}

func TestStartupWarningShowsInStatus(t *testing.T) {
	store := settings.NewStore(filepath.Join(t.TempDir(), "config.json"))
	m := NewModel(Deps{
		Engine:   cycler.New(&fakeClip{}),
		Store:    store,
		Settings: settings.Defaults(),
		Warnings: []string{"settings file unreadable, using defaults"},
	})
	assert.Contains(t, m.status, "unreadable")
}

func TestStatusExpires(t *testing.T) {
	m := newTestModel(t, &fakeClip{err: errors.New("nope")}, &fakeRegistrar{available: true})
	m.text.SetValue("a")

	m = apply(t, m, ActionMsg{Action: hotkey.ActionNext})
	require.NotEmpty(t, m.status)

	m = apply(t, m, statusExpiredMsg{id: m.statusID})
	assert.Empty(t, m.status)
}

// Package ui is the Bubble Tea shell around the cycling engine: the editable
// text area, the prev/next controls with the current/total indicator, and the
// hot-key settings form.
package ui

import (
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"clipbeat/cycler"
	"clipbeat/hotkey"
	"clipbeat/settings"
)

type mode int

const (
	modeEdit mode = iota
	modeSettings
)

// chromeRows is what the view spends outside the textarea: title, footer,
// help line.
const chromeRows = 3

const statusTTL = 4 * time.Second

// ActionMsg carries a navigation action onto the update loop. The global
// hot-key dispatcher posts it through tea.Program.Send, which is the
// marshaling boundary: by the time Update sees one, it is ordered FIFO with
// every other message on the single-threaded loop, so a hot-key press can
// never interleave with an in-flight button press.
type ActionMsg struct {
	Action hotkey.Action
}

type statusExpiredMsg struct{ id int }

// Registrar is the slice of the hot-key dispatcher the model needs for
// settings changes.
type Registrar interface {
	RegisterAll(bindings map[string]string) []error
	Available() bool
}

// Deps wires the model's collaborators.
type Deps struct {
	Engine   *cycler.Engine
	Store    *settings.Store
	Settings settings.Settings
	Hotkeys  Registrar
	// Warnings collected during startup (settings load, binding errors),
	// surfaced in the status segment once the UI is up.
	Warnings []string
}

type Model struct {
	engine *cycler.Engine
	store  *settings.Store
	set    settings.Settings
	reg    Registrar

	mode   mode
	text   textarea.Model
	nextIn textinput.Model
	prevIn textinput.Model
	focus  int // settings form: 0 = next field, 1 = prev field

	label    string
	status   string
	statusID int

	width  int
	height int
}

func NewModel(d Deps) Model {
	ta := textarea.New()
	ta.Placeholder = "Paste your lines here, one item per line"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = currentItemStyle
	ta.BlurredStyle.CursorLine = currentItemStyle
	ta.Focus()

	nextIn := textinput.New()
	nextIn.Placeholder = settings.DefaultNext
	nextIn.CharLimit = 64
	nextIn.Width = 36

	prevIn := textinput.New()
	prevIn.Placeholder = settings.DefaultPrev
	prevIn.CharLimit = 64
	prevIn.Width = 36

	m := Model{
		engine: d.Engine,
		store:  d.Store,
		set:    d.Settings,
		reg:    d.Hotkeys,
		text:   ta,
		nextIn: nextIn,
		prevIn: prevIn,
		label:  "0 / 0",
	}
	if len(d.Warnings) > 0 {
		m.status = d.Warnings[0]
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.text.SetWidth(msg.Width)
		m.text.SetHeight(max(msg.Height-chromeRows, 3))
		return m, nil

	case ActionMsg:
		return m.navigate(msg.Action)

	case statusExpiredMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.mode == modeSettings {
			return m.updateSettings(msg)
		}
		return m.updateEdit(msg)
	}

	// Cursor blink and other component messages.
	var cmd tea.Cmd
	if m.mode == modeSettings {
		if m.focus == 0 {
			m.nextIn, cmd = m.nextIn.Update(msg)
		} else {
			m.prevIn, cmd = m.prevIn.Update(msg)
		}
	} else {
		m.text, cmd = m.text.Update(msg)
	}
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Next):
		return m.navigate(hotkey.ActionNext)
	case key.Matches(msg, keys.Prev):
		return m.navigate(hotkey.ActionPrev)
	case key.Matches(msg, keys.Settings):
		m.openSettings()
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Cancel):
		m.closeSettings()
		return m, nil
	case key.Matches(msg, keys.Save):
		return m.saveSettings()
	case key.Matches(msg, keys.NextField):
		m.cycleFocus()
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.nextIn, cmd = m.nextIn.Update(msg)
	} else {
		m.prevIn, cmd = m.prevIn.Update(msg)
	}
	return m, cmd
}

// navigate runs one engine transition against the buffer as it is right now
// and syncs label, highlight and status from the resulting step.
func (m Model) navigate(action hotkey.Action) (tea.Model, tea.Cmd) {
	var step cycler.Step
	if action == hotkey.ActionPrev {
		step = m.engine.Retreat(m.text.Value())
	} else {
		step = m.engine.Advance(m.text.Value())
	}
	m.label = step.Label()
	if step.Total == 0 {
		return m, nil
	}
	m.focusLine(step.Item.Line)
	if step.CopyErr != nil {
		return m, m.setStatus("copy failed: " + step.CopyErr.Error())
	}
	return m, nil
}

// focusLine moves the caret to the given 1-based buffer line. The cursor-line
// styling is the highlight mark and the textarea scrolls the caret into view
// on its own; the previous mark disappears for free since there is only one
// caret. Recomputed whole on every navigation.
func (m *Model) focusLine(line int) {
	target := line - 1
	if target < 0 {
		target = 0
	}
	if last := m.text.LineCount() - 1; target > last {
		target = last
	}
	m.text.MoveToBegin()
	for m.text.Line() < target {
		before := m.text.Line()
		m.text.CursorDown()
		if m.text.Line() == before {
			break
		}
	}
	m.text.CursorStart()
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusID++
	id := m.statusID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusExpiredMsg{id: id} })
}

func (m *Model) openSettings() {
	m.mode = modeSettings
	m.nextIn.SetValue(m.set.Hotkeys["next"])
	m.prevIn.SetValue(m.set.Hotkeys["prev"])
	m.focus = 0
	m.nextIn.Focus()
	m.prevIn.Blur()
	m.text.Blur()
}

func (m *Model) closeSettings() {
	m.mode = modeEdit
	m.nextIn.Blur()
	m.prevIn.Blur()
	m.text.Focus()
}

func (m *Model) cycleFocus() {
	m.focus = 1 - m.focus
	if m.focus == 0 {
		m.nextIn.Focus()
		m.prevIn.Blur()
	} else {
		m.prevIn.Focus()
		m.nextIn.Blur()
	}
}

// saveSettings commits whatever was typed: persist, then immediately rebuild
// the global registrations. A combo the backend rejects is reported for that
// action only and never blocks the other one.
func (m Model) saveSettings() (tea.Model, tea.Cmd) {
	set := settings.Settings{Hotkeys: map[string]string{
		"next": strings.TrimSpace(m.nextIn.Value()),
		"prev": strings.TrimSpace(m.prevIn.Value()),
	}}

	var cmds []tea.Cmd
	if err := m.store.Save(set); err != nil {
		log.Printf("settings save failed: %v", err)
		cmds = append(cmds, m.setStatus("save failed: "+err.Error()))
	}
	m.set = set

	if m.reg != nil {
		if errs := m.reg.RegisterAll(set.Hotkeys); len(errs) > 0 {
			for _, err := range errs {
				log.Printf("hotkey: %v", err)
			}
			cmds = append(cmds, m.setStatus(errs[0].Error()))
		} else if len(cmds) == 0 {
			cmds = append(cmds, m.setStatus("hot-keys saved"))
		}
	}

	m.closeSettings()
	return m, tea.Batch(cmds...)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeEdit || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Y != m.footerRow() {
		return m, nil
	}
	prev, next := m.buttonSpans()
	switch {
	case prev.contains(msg.X):
		return m.navigate(hotkey.ActionPrev)
	case next.contains(msg.X):
		return m.navigate(hotkey.ActionNext)
	}
	return m, nil
}

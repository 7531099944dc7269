package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"clipbeat/hotkey"
)

type span struct {
	start, end int // half-open cell range on the footer row
}

func (s span) contains(x int) bool { return x >= s.start && x < s.end }

func (m Model) View() string {
	if m.mode == modeSettings {
		return m.settingsView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("ClipBeat"))
	b.WriteString(" ")
	b.WriteString(hintStyle.Render("cycle lines through the clipboard"))
	b.WriteString("\n")
	b.WriteString(m.text.View())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("ctrl+←/→ cycle · ctrl+g hot-keys · ctrl+q quit"))
	return b.String()
}

func (m Model) footerView() string {
	prevBtn, indicator, nextBtn := m.footerParts()
	footer := prevBtn + indicator + nextBtn
	switch {
	case m.status != "":
		footer += "  " + statusStyle.Render(m.status)
	case m.reg != nil && !m.reg.Available():
		footer += "  " + hintStyle.Render("global hot-keys unavailable, in-window keys only")
	}
	return footer
}

func (m Model) footerParts() (prevBtn, indicator, nextBtn string) {
	prevBtn = buttonStyle.Render("◀ prev")
	indicator = indicatorStyle.Render(m.label)
	nextBtn = buttonStyle.Render("next ▶")
	return
}

// footerRow is the 0-based terminal row the footer renders on: title plus the
// textarea body.
func (m Model) footerRow() int {
	return 1 + max(m.height-chromeRows, 3)
}

// buttonSpans recomputes the clickable cell ranges of the two footer buttons
// from the same strings footerView renders.
func (m Model) buttonSpans() (prev, next span) {
	prevBtn, indicator, nextBtn := m.footerParts()
	pw := lipgloss.Width(prevBtn)
	iw := lipgloss.Width(indicator)
	nw := lipgloss.Width(nextBtn)
	prev = span{start: 0, end: pw}
	next = span{start: pw + iw, end: pw + iw + nw}
	return prev, next
}

func (m Model) settingsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hot-keys"))
	b.WriteString("\n\n")
	b.WriteString(formLabelStyle.Render("Next item global hot-key"))
	b.WriteString("\n")
	b.WriteString(m.nextIn.View())
	b.WriteString(comboNote(m.nextIn.Value()))
	b.WriteString("\n\n")
	b.WriteString(formLabelStyle.Render("Previous item global hot-key"))
	b.WriteString("\n")
	b.WriteString(m.prevIn.View())
	b.WriteString(comboNote(m.prevIn.Value()))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("stored in " + m.store.Path()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("tab switch field · ctrl+s save · esc cancel"))
	return b.String()
}

// comboNote gives live feedback on the combo under edit.
func comboNote(spec string) string {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return ""
	}
	if err := hotkey.ValidateCombo(spec); err != nil {
		return "  " + statusStyle.Render(err.Error())
	}
	return ""
}

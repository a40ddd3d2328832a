package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/chime/internal/editor"
)

func (m *Model) viewClock() string {
	sections := []string{
		m.styles.Box.Render(m.renderClockFace()),
	}

	if list := m.renderAlarmList(); list != "" {
		sections = append(sections, "", list)
	}

	sections = append(sections, "", m.renderHints(m.keys.ClockHelp()))

	return m.layout(sections...)
}

func (m *Model) viewEditor() string {
	v, ok := m.editor.View()
	if !ok {
		return m.viewClock()
	}

	box := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render(m.title),
		"",
		m.renderEditorFields(v),
	)

	sections := []string{
		m.styles.Box.Render(box),
		"",
		m.renderHints(m.keys.EditorHelp()),
	}

	return m.layout(sections...)
}

// layout centers the sections and pins the status bar to the bottom line.
func (m *Model) layout(sections ...string) string {
	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	status := m.renderStatusBar()

	height := m.height - lipgloss.Height(status)
	if height < 1 {
		height = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, body),
		status,
	)
}

func (m *Model) renderClockFace() string {
	layout := "15:04:05"
	if m.twelveHour {
		layout = "03:04:05 PM"
	}
	return m.styles.Normal.Render(m.clock.Format(layout))
}

func (m *Model) renderEditorFields(v editor.View) string {
	field := func(f editor.Field, text string) string {
		switch {
		case v.Selected != f || v.Saved:
			return m.styles.Normal.Render(text)
		case v.Pending:
			return m.styles.Pending.Render(text)
		default:
			return m.styles.Selected.Render(text)
		}
	}
	sep := m.styles.Separator.Render(":")

	parts := []string{
		field(editor.FieldHour, v.Hour),
		sep,
		field(editor.FieldMinute, v.Minute),
		sep,
		field(editor.FieldSecond, v.Second),
	}
	if v.TwelveHour {
		parts = append(parts, " ", field(editor.FieldPeriod, v.Period))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf(" %s | Alarms: %d", m.formatName(), m.registry.Len())

	right := ""
	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left+middle) + right
}

func (m *Model) formatName() string {
	if m.twelveHour {
		return "12h"
	}
	return "24h"
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// maxListedAlarms caps the list under the clock; older alarms scroll off.
const maxListedAlarms = 8

// renderAlarmList shows the most recent alarms, marking those that already
// fired today.
func (m *Model) renderAlarmList() string {
	statuses := m.registry.Statuses()
	if len(statuses) == 0 {
		return ""
	}

	if len(statuses) > maxListedAlarms {
		statuses = statuses[len(statuses)-maxListedAlarms:]
	}

	lines := make([]string, 0, len(statuses))
	for _, st := range statuses {
		line := "⏰ " + st.Alarm.DisplayTime()
		if st.Alarm.Label != "" {
			line += "  " + st.Alarm.Label
		}

		if st.Triggered {
			lines = append(lines, m.styles.Triggered.Render(line+"  ✓"))
		} else {
			lines = append(lines, m.styles.Alarm.Render(line))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderHints draws the key hint bar, wrapped to the terminal width.
func (m *Model) renderHints(bindings []key.Binding) string {
	hints := m.help.ShortHelpView(bindings)

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	if lipgloss.Width(hints) <= width {
		return hints
	}

	// Too wide for one line: wrap the plain text and restyle it.
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}

	wrapped := wordwrap.String(strings.Join(parts, " • "), width)
	return m.styles.Help.Render(wrapped)
}

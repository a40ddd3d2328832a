package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/chime/internal/alarm"
	"github.com/cwarden/chime/internal/config"
	"github.com/cwarden/chime/internal/editor"
	"github.com/cwarden/chime/internal/logger"
)

type ViewMode int

const (
	ViewClock ViewMode = iota
	ViewEditor
)

const messageTimeout = 5 * time.Second

type Model struct {
	// Core components
	ctx      context.Context
	config   *config.Config
	editor   *editor.Editor
	registry *alarm.Registry
	notifier alarm.Notifier
	now      func() time.Time

	// View state
	mode       ViewMode
	twelveHour bool
	clock      time.Time

	// Editor state
	session int    // bumped on every open so stale exit timers are ignored
	title   string // editor box title

	// Timers. The display tick pauses while the editor is open; the alarm
	// tick starts with the first alarm and never stops.
	clockTicking bool
	alarmTicking bool

	// UI state
	width     int
	height    int
	message   string
	messageID int

	keys   KeyMap
	help   help.Model
	styles Styles
}

type Styles struct {
	Normal    lipgloss.Style
	Selected  lipgloss.Style
	Pending   lipgloss.Style
	Separator lipgloss.Style
	Box       lipgloss.Style
	Title     lipgloss.Style
	Help      lipgloss.Style
	Alarm     lipgloss.Style
	Triggered lipgloss.Style
	Message   lipgloss.Style
}

func NewModel(ctx context.Context, cfg *config.Config, notifier alarm.Notifier) *Model {
	now := time.Now()

	m := &Model{
		ctx:        logger.WithName(ctx, "ui"),
		config:     cfg,
		editor:     editor.New(),
		registry:   alarm.NewRegistry(),
		notifier:   notifier,
		now:        time.Now,
		mode:       ViewClock,
		twelveHour: cfg.TwelveHour,
		clock:      now,
		keys:       NewKeyMap(cfg),
		help:       help.New(),
		styles:     NewStyles(cfg.Colors),
	}
	m.help.Styles.ShortKey = m.styles.Help.Bold(true)
	m.help.Styles.ShortDesc = m.styles.Help

	return m
}

func NewStyles(colors map[string]string) Styles {
	color := func(name string) lipgloss.Color {
		return lipgloss.Color(colors[name])
	}

	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(color("normal")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(color("selected")).
			Bold(true),
		Pending: lipgloss.NewStyle().
			Foreground(color("selected")).
			Bold(true).
			Underline(true),
		Separator: lipgloss.NewStyle().
			Foreground(color("separator")),
		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(color("border")).
			Padding(0, 2),
		Title: lipgloss.NewStyle().
			Foreground(color("border")).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(color("hint")),
		Alarm: lipgloss.NewStyle().
			Foreground(color("normal")),
		Triggered: lipgloss.NewStyle().
			Foreground(color("triggered")).
			Bold(true),
		Message: lipgloss.NewStyle().
			Foreground(color("triggered")).
			Padding(0, 1),
	}
}

// AddAlarm registers an alarm before the program starts.
func (m *Model) AddAlarm(a alarm.Alarm) {
	m.registry.Add(a)
}

func (m *Model) Init() tea.Cmd {
	m.clockTicking = true
	cmds := []tea.Cmd{clockTickCmd()}

	if m.registry.Len() > 0 {
		m.alarmTicking = true
		cmds = append(cmds, alarmTickCmd())
	}

	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case clockTickMsg:
		// Paused while editing; closeEditor restarts it.
		if m.mode == ViewEditor {
			m.clockTicking = false
			return m, nil
		}
		m.clock = time.Time(msg)
		return m, clockTickCmd()

	case alarmTickMsg:
		cmds := m.checkAlarms(time.Time(msg))
		cmds = append(cmds, alarmTickCmd())
		return m, tea.Batch(cmds...)

	case editorExitMsg:
		if m.mode == ViewEditor && msg.session == m.session {
			return m, m.closeEditor()
		}
		return m, nil

	case notifiedMsg:
		if msg.err != nil {
			logger.ErrorKV(m.ctx, "Failed to send notification", "id", msg.alarm.ID, "error", msg.err)
		}
		return m, nil

	case messageTimeoutMsg:
		if int(msg) == m.messageID {
			m.message = ""
		}
		return m, nil

	case ConfigChangedMsg:
		m.applyConfig(msg)
		return m, m.showMessage("Config reloaded")
	}

	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ViewEditor:
		return m.viewEditor()
	default:
		return m.viewClock()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleFormat):
		m.twelveHour = !m.twelveHour
		m.editor.SetMode(m.twelveHour)
		return m, nil
	}

	// Mode-specific handling
	switch m.mode {
	case ViewClock:
		return m.handleClockKeys(msg)
	case ViewEditor:
		return m.handleEditorKeys(msg)
	}

	return m, nil
}

func (m *Model) handleClockKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.NewAlarm) {
		m.openEditor()
	}
	return m, nil
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m, m.closeEditor()

	case key.Matches(msg, m.keys.Save):
		return m, m.saveAlarm()

	case key.Matches(msg, m.keys.PrevField):
		m.editor.Navigate(editor.Prev)

	case key.Matches(msg, m.keys.NextField):
		m.editor.Navigate(editor.Next)

	case key.Matches(msg, m.keys.Increment):
		m.editor.Increment()

	case key.Matches(msg, m.keys.Decrement):
		m.editor.Decrement()

	case key.Matches(msg, m.keys.Digit):
		m.editor.DigitKey(int(msg.Runes[0] - '0'))
	}

	return m, nil
}

func (m *Model) openEditor() {
	m.session++
	m.editor.Open(m.now(), m.twelveHour)
	m.mode = ViewEditor
	m.title = "set new alarm"
}

// closeEditor tears the editor down and resumes the display clock.
func (m *Model) closeEditor() tea.Cmd {
	m.editor.Close()
	m.mode = ViewClock
	m.title = ""
	m.clock = m.now()

	if m.clockTicking {
		return nil
	}
	m.clockTicking = true
	return clockTickCmd()
}

func (m *Model) saveAlarm() tea.Cmd {
	a, ok := m.editor.Save(m.now())
	if !ok {
		return nil
	}

	m.registry.Add(a)
	m.title = "alarm saved: " + a.DisplayTime()
	logger.InfoKV(m.ctx, "Alarm saved", "id", a.ID, "time", a.DisplayTime())

	session := m.session
	cmds := []tea.Cmd{
		tea.Tick(m.config.SaveExitDelay, func(time.Time) tea.Msg {
			return editorExitMsg{session: session}
		}),
	}

	if !m.alarmTicking {
		m.alarmTicking = true
		cmds = append(cmds, alarmTickCmd())
	}

	return tea.Batch(cmds...)
}

// checkAlarms runs one matching tick and returns a notification command per
// fired alarm.
func (m *Model) checkAlarms(now time.Time) []tea.Cmd {
	var cmds []tea.Cmd
	for _, a := range m.registry.Match(now) {
		logger.InfoKV(m.ctx, "Alarm fired", "id", a.ID, "time", a.DisplayTime())
		cmds = append(cmds, m.showMessage(fmt.Sprintf("Alarm: %s", a.DisplayTime())))

		if m.notifier != nil {
			cmds = append(cmds, m.notifyCmd(a))
		}
	}
	return cmds
}

func (m *Model) notifyCmd(a alarm.Alarm) tea.Cmd {
	ctx, notifier := m.ctx, m.notifier
	title, body := alarm.Message(a, m.config.NotifyTitle)

	return func() tea.Msg {
		return notifiedMsg{alarm: a, err: notifier.Notify(ctx, title, body)}
	}
}

func (m *Model) applyConfig(msg ConfigChangedMsg) {
	if msg.Config == nil {
		return
	}

	m.config = msg.Config
	m.keys = NewKeyMap(msg.Config)
	m.styles = NewStyles(msg.Config.Colors)
	m.help.Styles.ShortKey = m.styles.Help.Bold(true)
	m.help.Styles.ShortDesc = m.styles.Help
	if msg.Notifier != nil {
		m.notifier = msg.Notifier
	}

	logger.InfoKV(m.ctx, "Config reloaded", "path", msg.Config.Path)
}

func (m *Model) showMessage(text string) tea.Cmd {
	m.message = text
	m.messageID++
	id := m.messageID
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return messageTimeoutMsg(id)
	})
}

func clockTickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func alarmTickCmd() tea.Cmd {
	return tea.Every(alarm.DefaultTickInterval, func(t time.Time) tea.Msg {
		return alarmTickMsg(t)
	})
}

// ConfigChangedMsg carries a reloaded configuration into the program.
type ConfigChangedMsg struct {
	Config   *config.Config
	Notifier alarm.Notifier
}

// Message types
type clockTickMsg time.Time
type alarmTickMsg time.Time
type messageTimeoutMsg int
type editorExitMsg struct {
	session int
}
type notifiedMsg struct {
	alarm alarm.Alarm
	err   error
}

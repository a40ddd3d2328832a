package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/cwarden/chime/internal/config"
)

// KeyMap holds the bindings for both view modes.
type KeyMap struct {
	Quit         key.Binding
	NewAlarm     key.Binding
	ToggleFormat key.Binding

	PrevField key.Binding
	NextField key.Binding
	Increment key.Binding
	Decrement key.Binding
	Digit     key.Binding
	Save      key.Binding
	Cancel    key.Binding

	// Help-only bindings that pair up the arrows in the hint bar.
	selectField key.Binding
	changeValue key.Binding
}

var digitKeys = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

func NewKeyMap(cfg *config.Config) KeyMap {
	bind := func(action, desc string) key.Binding {
		keys := cfg.Keys(action)
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keyLabel(keys), desc))
	}

	km := KeyMap{
		Quit:         bind("quit", "quit"),
		NewAlarm:     bind("new_alarm", "set new alarm"),
		ToggleFormat: bind("toggle_format", "change time format"),
		PrevField:    bind("prev_field", "previous field"),
		NextField:    bind("next_field", "next field"),
		Increment:    bind("increment", "increment"),
		Decrement:    bind("decrement", "decrement"),
		Save:         bind("save", "save alarm"),
		Cancel:       bind("cancel", "cancel"),
		Digit:        key.NewBinding(key.WithKeys(digitKeys...), key.WithHelp("0-9", "direct input")),
	}

	prev, next := cfg.Keys("prev_field"), cfg.Keys("next_field")
	km.selectField = key.NewBinding(
		key.WithKeys(append(append([]string{}, prev...), next...)...),
		key.WithHelp(keyLabel(prev)+"/"+keyLabel(next), "select digit"),
	)
	up, down := cfg.Keys("increment"), cfg.Keys("decrement")
	km.changeValue = key.NewBinding(
		key.WithKeys(append(append([]string{}, up...), down...)...),
		key.WithHelp(keyLabel(up)+"/"+keyLabel(down), "change value"),
	)

	return km
}

// ClockHelp is the hint set shown while the clock is displayed.
func (k KeyMap) ClockHelp() []key.Binding {
	return []key.Binding{k.NewAlarm, k.ToggleFormat, k.Quit}
}

// EditorHelp is the hint set shown while an alarm is being edited.
func (k KeyMap) EditorHelp() []key.Binding {
	return []key.Binding{
		k.Save,
		k.Cancel,
		k.changeValue,
		k.selectField,
		k.Digit,
		k.ToggleFormat,
		k.Quit,
	}
}

// keyLabel renders the first key of a binding the way the hint bar shows it.
func keyLabel(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	switch k := keys[0]; k {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	default:
		return k
	}
}

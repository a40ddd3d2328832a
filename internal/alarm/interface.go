package alarm

import (
	"context"
)

// Notifier delivers an alarm to the user. Implementations must not block
// for long; callers log the returned error and otherwise ignore it.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// DefaultTitle is the notification title used when an alarm has no label.
const DefaultTitle = "CLI Clock Alarm"

// Message returns the notification title and body for a fired alarm.
func Message(a Alarm, title string) (string, string) {
	if a.Label != "" {
		title = a.Label
	} else if title == "" {
		title = DefaultTitle
	}
	return title, "Time: " + a.DisplayTime()
}

// Package notify implements alarm.Notifier: desktop notifications through an
// external helper (notify-send), the terminal bell, and fan-out to several.
package notify

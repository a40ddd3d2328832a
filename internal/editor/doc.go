// Package editor implements the field-by-field alarm time editor: a cursor
// over hour, minute, second and (in 12-hour mode) AM/PM, with wrapping
// increment/decrement and two-keystroke numeric entry.
//
// The editor is a plain state machine with no terminal I/O; internal/ui
// translates key presses into calls and renders View.
package editor

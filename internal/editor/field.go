package editor

import (
	"fmt"

	"github.com/cwarden/chime/internal/alarm"
)

// Field is one editable component of an alarm time.
type Field int

const (
	FieldHour Field = iota
	FieldMinute
	FieldSecond
	FieldPeriod
)

func (f Field) String() string {
	switch f {
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	case FieldSecond:
		return "second"
	case FieldPeriod:
		return "period"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// FieldCount returns the size of the active field set.
func FieldCount(twelveHour bool) int {
	if twelveHour {
		return 4
	}
	return 3
}

// values is the field value model: the current numbers behind each field.
type values struct {
	hour   int
	minute int
	second int
	period alarm.Period
}

// bounds returns the inclusive range of a numeric field.
func bounds(f Field, twelveHour bool) (int, int) {
	switch f {
	case FieldHour:
		if twelveHour {
			return 1, 12
		}
		return 0, 23
	case FieldMinute, FieldSecond:
		return 0, 59
	}
	return 0, 0
}

// wrap steps v by delta inside [lo, hi], cycling at both ends.
func wrap(v, delta, lo, hi int) int {
	n := hi - lo + 1
	return lo + ((v-lo+delta)%n+n)%n
}

// clamp limits a completed two-digit entry to the field's range. A 12-hour
// hour of 0 reads as 12, as on a clock face.
func clamp(f Field, v int, twelveHour bool) int {
	lo, hi := bounds(f, twelveHour)
	if f == FieldHour && twelveHour && v == 0 {
		return 12
	}
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

func (v *values) get(f Field) int {
	switch f {
	case FieldHour:
		return v.hour
	case FieldMinute:
		return v.minute
	case FieldSecond:
		return v.second
	}
	return 0
}

func (v *values) set(f Field, n int) {
	switch f {
	case FieldHour:
		v.hour = n
	case FieldMinute:
		v.minute = n
	case FieldSecond:
		v.second = n
	}
}

func pad(n int) string {
	return fmt.Sprintf("%02d", n)
}

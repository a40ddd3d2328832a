package alarm

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Period int

const (
	PeriodNone Period = iota
	PeriodAM
	PeriodPM
)

func (p Period) String() string {
	switch p {
	case PeriodAM:
		return "AM"
	case PeriodPM:
		return "PM"
	default:
		return ""
	}
}

// Toggle flips AM and PM. PeriodNone stays PeriodNone.
func (p Period) Toggle() Period {
	switch p {
	case PeriodAM:
		return PeriodPM
	case PeriodPM:
		return PeriodAM
	default:
		return p
	}
}

const (
	SecondsPerDay = 24 * 60 * 60
)

// Alarm is a saved alarm time. It is never modified after creation; the
// trigger state lives in the Registry.
type Alarm struct {
	ID         string
	Hour       int
	Minute     int
	Second     int
	Period     Period // PeriodNone unless TwelveHour
	TwelveHour bool
	Label      string
	CreatedAt  time.Time
}

// New builds an alarm with a fresh time-ordered ID. Period is dropped in
// 24-hour mode.
func New(hour, minute, second int, period Period, twelveHour bool, now time.Time) Alarm {
	if !twelveHour {
		period = PeriodNone
	} else if period == PeriodNone {
		period = PeriodAM
	}

	return Alarm{
		ID:         NewID(now),
		Hour:       hour,
		Minute:     minute,
		Second:     second,
		Period:     period,
		TwelveHour: twelveHour,
		CreatedAt:  now,
	}
}

// NewID returns a UUIDv7, falling back to the creation time in milliseconds
// if the random source fails.
func NewID(now time.Time) string {
	id, err := uuid.NewV7()
	if err != nil {
		return strconv.FormatInt(now.UnixMilli(), 10)
	}
	return id.String()
}

// Hour24 returns the alarm hour on the 24-hour clock.
func (a Alarm) Hour24() int {
	return To24Hour(a.Hour, a.Period, a.TwelveHour)
}

// SecondsSinceMidnight is the normalized time-of-day used for matching.
func (a Alarm) SecondsSinceMidnight() int {
	return a.Hour24()*3600 + a.Minute*60 + a.Second
}

// DisplayTime formats the alarm as entered: HH:MM:SS with an optional AM/PM suffix.
func (a Alarm) DisplayTime() string {
	s := fmt.Sprintf("%02d:%02d:%02d", a.Hour, a.Minute, a.Second)
	if a.TwelveHour && a.Period != PeriodNone {
		s += " " + a.Period.String()
	}
	return s
}

// To24Hour converts an hour as shown on a clock face to the 24-hour clock.
func To24Hour(hour int, period Period, twelveHour bool) int {
	if !twelveHour {
		return hour
	}
	switch {
	case period == PeriodPM && hour != 12:
		return hour + 12
	case period == PeriodAM && hour == 12:
		return 0
	}
	return hour
}

// From24Hour converts a 24-hour clock hour to its 12-hour face value and period.
func From24Hour(hour int) (int, Period) {
	switch {
	case hour == 0:
		return 12, PeriodAM
	case hour < 12:
		return hour, PeriodAM
	case hour == 12:
		return 12, PeriodPM
	default:
		return hour - 12, PeriodPM
	}
}

// SecondsOf returns the wall-clock seconds since local midnight of t.
func SecondsOf(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

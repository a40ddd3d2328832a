package alarm

import (
	"time"
)

type entry struct {
	alarm     Alarm
	triggered bool
}

// Status is a read-only view of a registered alarm.
type Status struct {
	Alarm     Alarm
	Triggered bool
}

// Registry is the append-only set of saved alarms.
//
// It has no locking: exactly one goroutine may own it (the bubbletea update
// loop or Loop.Run).
type Registry struct {
	entries []*entry
	last    int // second of day seen by the previous Match, -1 before the first
}

// catchUp bounds how many skipped seconds Match still fires for. A longer gap
// (suspend, clock change) only checks the current second.
const catchUp = 60

func NewRegistry() *Registry {
	return &Registry{last: -1}
}

func (r *Registry) Add(a Alarm) {
	r.entries = append(r.entries, &entry{alarm: a})
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Alarms returns the alarms in insertion order.
func (r *Registry) Alarms() []Alarm {
	alarms := make([]Alarm, 0, len(r.entries))
	for _, e := range r.entries {
		alarms = append(alarms, e.alarm)
	}
	return alarms
}

func (r *Registry) Statuses() []Status {
	statuses := make([]Status, 0, len(r.entries))
	for _, e := range r.entries {
		statuses = append(statuses, Status{Alarm: e.alarm, Triggered: e.triggered})
	}
	return statuses
}

// Match applies one tick of the matching rule at now and returns the alarms
// that fire on this tick.
//
// An alarm fires when the time-of-day reaches its own and it has not fired
// yet; once the time-of-day has passed it, it is re-armed for the next day.
// Seconds skipped since the previous call (up to catchUp) count as reached,
// and crossing midnight re-arms every alarm.
func (r *Registry) Match(now time.Time) []Alarm {
	current := SecondsOf(now)

	span := 1
	rolled := false
	if r.last >= 0 && current != r.last {
		gap := (current - r.last + SecondsPerDay) % SecondsPerDay
		if gap <= catchUp {
			span = gap
		}
		rolled = current < r.last
	}
	r.last = current

	var fired []Alarm
	for _, e := range r.entries {
		target := e.alarm.SecondsSinceMidnight()
		reached := (current-target+SecondsPerDay)%SecondsPerDay < span

		if rolled {
			e.triggered = false
		}

		switch {
		case reached && !e.triggered:
			e.triggered = true
			fired = append(fired, e.alarm)
		case !reached && current > target:
			e.triggered = false
		}
	}
	return fired
}

package editor

import (
	"strconv"
	"time"

	"github.com/cwarden/chime/internal/alarm"
)

type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// session is the state of one open editor. It exists only between Open and
// Close.
type session struct {
	selected       Field
	twelveHour     bool
	buffer         string
	awaitingSecond bool
	saved          bool
	values         values
}

// Editor is the digit-cursor controller. The zero value is an inactive
// editor; every operation on an inactive editor is a no-op.
type Editor struct {
	s *session
}

func New() *Editor {
	return &Editor{}
}

// Open starts a new session pre-filled with now in the requested mode.
// Any previous session is discarded.
func (e *Editor) Open(now time.Time, twelveHour bool) {
	s := &session{
		selected:   FieldHour,
		twelveHour: twelveHour,
		values: values{
			hour:   now.Hour(),
			minute: now.Minute(),
			second: now.Second(),
		},
	}
	if twelveHour {
		s.values.hour, s.values.period = alarm.From24Hour(now.Hour())
	}
	e.s = s
}

// Close tears down the session.
func (e *Editor) Close() {
	e.s = nil
}

func (e *Editor) Active() bool {
	return e.s != nil
}

// editable reports whether the session accepts edits.
func (e *Editor) editable() bool {
	return e.s != nil && !e.s.saved
}

func (e *Editor) resetBuffer() {
	e.s.buffer = ""
	e.s.awaitingSecond = false
}

// Navigate moves the cursor one field, wrapping within the active field set.
// A half-entered number is discarded.
func (e *Editor) Navigate(dir Direction) {
	if !e.editable() {
		return
	}
	n := FieldCount(e.s.twelveHour)
	e.s.selected = Field(wrap(int(e.s.selected), int(dir), 0, n-1))
	e.resetBuffer()
}

func (e *Editor) Increment() {
	e.step(1)
}

func (e *Editor) Decrement() {
	e.step(-1)
}

func (e *Editor) step(delta int) {
	if !e.editable() {
		return
	}
	s := e.s
	if s.selected == FieldPeriod {
		if s.twelveHour {
			s.values.period = s.values.period.Toggle()
		}
		return
	}

	lo, hi := bounds(s.selected, s.twelveHour)
	s.values.set(s.selected, wrap(s.values.get(s.selected), delta, lo, hi))
}

// DigitKey feeds one numeric keystroke into the two-stage entry protocol.
// The first digit is shown as-is; the second completes the pair, clamps it,
// and advances to the next field unless the cursor is on the last one.
func (e *Editor) DigitKey(d int) {
	if !e.editable() || d < 0 || d > 9 {
		return
	}
	s := e.s
	if s.selected == FieldPeriod {
		return
	}

	if !s.awaitingSecond {
		s.buffer = strconv.Itoa(d)
		s.awaitingSecond = true
		s.values.set(s.selected, d)
		return
	}

	s.buffer += strconv.Itoa(d)
	v, _ := strconv.Atoi(s.buffer)
	s.values.set(s.selected, clamp(s.selected, v, s.twelveHour))
	e.resetBuffer()

	if int(s.selected) < FieldCount(s.twelveHour)-1 {
		s.selected++
	}
}

// SetMode switches between 12- and 24-hour entry. The entered time-of-day is
// kept: the hour is re-expressed in the new mode rather than clamped.
func (e *Editor) SetMode(twelveHour bool) {
	if !e.editable() || e.s.twelveHour == twelveHour {
		return
	}
	s := e.s
	e.resetBuffer()

	if twelveHour {
		hour := clamp(FieldHour, s.values.hour, false)
		s.values.hour, s.values.period = alarm.From24Hour(hour)
	} else {
		hour := clamp(FieldHour, s.values.hour, true)
		period := s.values.period
		if period == alarm.PeriodNone {
			period = alarm.PeriodAM
		}
		s.values.hour = alarm.To24Hour(hour, period, true)
		s.values.period = alarm.PeriodNone
	}
	s.twelveHour = twelveHour

	if int(s.selected) >= FieldCount(twelveHour) {
		s.selected = FieldSecond
	}
}

// Save snapshots the current values as an alarm and seals the session. The
// caller owns registering the alarm and closing the editor.
func (e *Editor) Save(now time.Time) (alarm.Alarm, bool) {
	if !e.editable() {
		return alarm.Alarm{}, false
	}
	s := e.s
	e.resetBuffer()

	// A lone first digit may have left the hour outside the 12-hour range.
	hour := s.values.hour
	if lo, hi := bounds(FieldHour, s.twelveHour); hour < lo || hour > hi {
		hour = clamp(FieldHour, hour, s.twelveHour)
	}

	a := alarm.New(hour, s.values.minute, s.values.second, s.values.period, s.twelveHour, now)
	s.saved = true
	return a, true
}

// View is what a renderer needs to draw the editor.
type View struct {
	Hour       string
	Minute     string
	Second     string
	Period     string // empty in 24-hour mode
	Selected   Field
	TwelveHour bool
	Pending    bool // a first digit is waiting for its pair
	Saved      bool
}

func (e *Editor) View() (View, bool) {
	if e.s == nil {
		return View{}, false
	}
	s := e.s
	v := View{
		Hour:       pad(s.values.hour),
		Minute:     pad(s.values.minute),
		Second:     pad(s.values.second),
		Selected:   s.selected,
		TwelveHour: s.twelveHour,
		Pending:    s.awaitingSecond,
		Saved:      s.saved,
	}
	if s.twelveHour {
		v.Period = s.values.period.String()
	}
	return v, true
}

package alarm

import (
	"context"
	"time"

	"github.com/cwarden/chime/internal/logger"
)

// DefaultTickInterval is how often the loop compares wall time to alarms.
const DefaultTickInterval = time.Second

// Loop runs the matching rule once per tick without a terminal attached.
//
// Once Run has started all registry access happens inside it; Add hands
// alarms over a channel so there is a single writer.
type Loop struct {
	registry *Registry
	notifier Notifier
	title    string
	interval time.Duration
	now      func() time.Time
	adds     chan Alarm
	fired    chan Alarm
}

type LoopOption func(*Loop)

// WithTitle sets the notification title for unlabeled alarms.
func WithTitle(title string) LoopOption {
	return func(l *Loop) {
		l.title = title
	}
}

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		l.interval = d
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) {
		l.now = now
	}
}

// WithFired makes the loop report every fired alarm on ch. Sends never block;
// a full channel drops the report.
func WithFired(ch chan Alarm) LoopOption {
	return func(l *Loop) {
		l.fired = ch
	}
}

// WithAlarms registers alarms before Run starts, bypassing the add queue.
func WithAlarms(alarms ...Alarm) LoopOption {
	return func(l *Loop) {
		for _, a := range alarms {
			l.registry.Add(a)
		}
	}
}

func NewLoop(notifier Notifier, opts ...LoopOption) *Loop {
	l := &Loop{
		registry: NewRegistry(),
		notifier: notifier,
		title:    DefaultTitle,
		interval: DefaultTickInterval,
		now:      time.Now,
		adds:     make(chan Alarm, 16),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add queues an alarm for registration. It blocks only if Run is not
// draining and the queue is full.
func (l *Loop) Add(ctx context.Context, a Alarm) error {
	select {
	case l.adds <- a:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes additions and ticks until ctx is cancelled. Ticking starts
// with the first alarm and is aligned to interval boundaries of the wall
// clock, the way tea.Every is.
func (l *Loop) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "alarm-loop")

	var (
		timer *time.Timer
		tick  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	start := func() {
		if timer != nil {
			return
		}
		timer = time.NewTimer(untilNextTick(time.Now(), l.interval))
		tick = timer.C
		logger.DebugKV(ctx, "Matching started", "interval", l.interval.String())
	}

	if l.registry.Len() > 0 {
		start()
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil

		case a := <-l.adds:
			l.registry.Add(a)
			logger.InfoKV(ctx, "Alarm registered", "id", a.ID, "time", a.DisplayTime())
			start()

		case <-tick:
			l.check(ctx, l.now())
			timer.Reset(untilNextTick(time.Now(), l.interval))
		}
	}
}

// untilNextTick returns the wait from now to the next multiple of d.
func untilNextTick(now time.Time, d time.Duration) time.Duration {
	return now.Truncate(d).Add(d).Sub(now)
}

func (l *Loop) check(ctx context.Context, now time.Time) {
	for _, a := range l.registry.Match(now) {
		logger.InfoKV(ctx, "Alarm fired", "id", a.ID, "time", a.DisplayTime())

		go l.dispatch(ctx, a)

		if l.fired != nil {
			select {
			case l.fired <- a:
			default:
			}
		}
	}
}

func (l *Loop) dispatch(ctx context.Context, a Alarm) {
	if l.notifier == nil {
		return
	}

	ctx = logger.WithKV(ctx, "id", a.ID)

	title, body := Message(a, l.title)
	if err := l.notifier.Notify(ctx, title, body); err != nil {
		logger.ErrorKV(ctx, "Failed to send notification", "error", err)
	}
}

package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"go.uber.org/multierr"

	"github.com/cwarden/chime/internal/alarm"
)

// DefaultCommand is the desktop notification helper on freedesktop systems.
const DefaultCommand = "notify-send"

// ErrNoCommand is returned by Desktop when no helper command is configured.
var ErrNoCommand = errors.New("notification command is not set")

// Desktop shows a notification by starting an external helper such as
// notify-send. Notify returns once the process has started; it is reaped in
// the background.
type Desktop struct {
	Command string

	start func(cmd *exec.Cmd) error
}

func NewDesktop(command string) *Desktop {
	return &Desktop{Command: command}
}

func (d *Desktop) Notify(ctx context.Context, title, body string) error {
	if d.Command == "" {
		return ErrNoCommand
	}

	//nolint:gosec // The helper command comes from the user's own config.
	cmd := exec.CommandContext(ctx, d.Command, title, body)

	start := d.start
	if start == nil {
		start = startAndReap
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("start %s: %w", d.Command, err)
	}
	return nil
}

func startAndReap(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// Bell rings the terminal bell. Each ring is a single one-byte Write, so on a
// terminal it cannot land inside another writer's escape sequence.
type Bell struct {
	w io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Notify(_ context.Context, _, _ string) error {
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// Multi delivers to every notifier and reports all failures together.
type Multi []alarm.Notifier

func (m Multi) Notify(ctx context.Context, title, body string) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Notify(ctx, title, body))
	}
	return err
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, title, body string) error

func (f Func) Notify(ctx context.Context, title, body string) error {
	return f(ctx, title, body)
}

// Options selects which notifiers Build assembles.
type Options struct {
	Command string
	Bell    bool
	// Terminal receives the bell; usually os.Stdout.
	Terminal io.Writer
}

// Build returns the notifier described by opts. With nothing enabled it
// returns an empty Multi, which does nothing.
func Build(opts Options) Multi {
	var m Multi
	if opts.Command != "" {
		m = append(m, NewDesktop(opts.Command))
	}
	if opts.Bell && opts.Terminal != nil {
		m = append(m, NewBell(opts.Terminal))
	}
	return m
}

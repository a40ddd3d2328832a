package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwarden/chime/internal/alarm"
	"github.com/cwarden/chime/internal/config"
	"github.com/cwarden/chime/internal/logger"
	"github.com/cwarden/chime/internal/notify"
	"github.com/cwarden/chime/internal/parser"
	"github.com/cwarden/chime/internal/ui"
)

var (
	cfgFile    string
	twelveHour bool
	alarmFlags []string
	logLevel   string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "chime",
	Short: "A terminal clock with alarms",
	Long: `Chime is a terminal clock. Press a to set an alarm with a digit cursor;
a desktop notification is sent when the wall clock reaches it.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initConfig,
	RunE:              runTUI,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringSliceVarP(&alarmFlags, "alarm", "a", []string{}, "Alarm time, e.g. 7:30pm or 'in 10m' (can be specified multiple times)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&twelveHour, "12h", false, "Start in 12-hour mode")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if twelveHour {
		cfg.TwelveHour = true
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	return nil
}

// reload reads the config file again, keeping command-line overrides.
func reload(path string) (*config.Config, error) {
	next, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if twelveHour {
		next.TwelveHour = true
	}
	return next, nil
}

// parseAlarms turns the --alarm values into alarms relative to now.
func parseAlarms(now time.Time) ([]alarm.Alarm, error) {
	p := parser.NewTimeParser()
	p.SetNow(now)

	alarms := make([]alarm.Alarm, 0, len(alarmFlags))
	for _, value := range alarmFlags {
		parsed, err := p.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("invalid alarm %q: %w", value, err)
		}
		alarms = append(alarms, parsed.Alarm(now))
	}
	return alarms, nil
}

func buildNotifier(c *config.Config, terminal io.Writer) alarm.Notifier {
	return notify.Build(notify.Options{
		Command:  c.NotifyCommand,
		Bell:     c.Bell,
		Terminal: terminal,
	})
}

// openTerminal returns a separate handle on the controlling terminal for the
// bell, so it never shares a writer with the bubbletea renderer. Without a
// terminal it falls back to stdout.
func openTerminal() (io.Writer, func()) {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return os.Stdout, func() {}
	}
	return tty, func() { _ = tty.Close() }
}

// openLog points the global logger at the configured log file. The terminal
// belongs to bubbletea while the TUI runs.
func openLog() (func(), error) {
	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	if cfg.LogFile == "" {
		logger.SetLogger(zap.NewNop().Sugar())
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	sink, closeSink, err := zap.Open(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := logger.New(nil, sink)
	logger.SetLogger(l)

	return func() {
		_ = l.Sync()
		closeSink()
	}, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := logger.ToContext(cmd.Context(), logger.Logger())

	alarms, err := parseAlarms(time.Now())
	if err != nil {
		return err
	}

	terminal, closeTerminal := openTerminal()
	defer closeTerminal()

	model := ui.NewModel(ctx, cfg, buildNotifier(cfg, terminal))
	for _, a := range alarms {
		model.AddAlarm(a)
		logger.InfoKV(ctx, "Alarm added from command line", "id", a.ID, "time", a.DisplayTime())
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if cfg.Path != "" {
		stop := watchConfig(ctx, cfg.Path, func(next *config.Config) {
			p.Send(ui.ConfigChangedMsg{Config: next, Notifier: buildNotifier(next, terminal)})
		})
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}

// watchConfig reloads path on every change and hands valid configs to apply.
// Invalid edits are logged and ignored.
func watchConfig(ctx context.Context, path string, apply func(*config.Config)) func() {
	ctx = logger.WithName(ctx, "config-watcher")

	w, err := config.NewWatcher(func(changed string) {
		next, err := reload(changed)
		if err != nil {
			logger.WarnKV(ctx, "Ignoring invalid config", "path", changed, "error", err)
			return
		}
		apply(next)
	}, func(err error) {
		logger.ErrorKV(ctx, "Config watcher failed", "error", err)
	})
	if err != nil {
		logger.WarnKV(ctx, "Config hot reload disabled", "error", err)
		return func() {}
	}

	if err := w.AddFile(path); err != nil {
		logger.WarnKV(ctx, "Config hot reload disabled", "path", path, "error", err)
		_ = w.Close()
		return func() {}
	}

	return func() { _ = w.Close() }
}

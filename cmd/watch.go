package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwarden/chime/internal/alarm"
	"github.com/cwarden/chime/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run alarms without the clock display",
	Long: `Register the --alarm times and send a notification when each one comes
due. Runs until interrupted; every alarm fires once per day.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if len(alarmFlags) == 0 {
		return errors.New("at least one --alarm is required")
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)
	logger.SetLogger(logger.New(nil, os.Stderr))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.ToContext(ctx, logger.Logger())

	alarms, err := parseAlarms(time.Now())
	if err != nil {
		return err
	}

	loop := alarm.NewLoop(buildNotifier(cfg, os.Stdout),
		alarm.WithTitle(cfg.NotifyTitle),
		alarm.WithAlarms(alarms...),
	)
	for _, a := range alarms {
		fmt.Fprintf(cmd.OutOrStdout(), "Alarm set for %s\n", a.DisplayTime())
	}

	return loop.Run(ctx)
}

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwarden/chime/internal/config"
)

func TestParseAlarms(t *testing.T) {
	now := time.Date(2025, 8, 25, 14, 0, 0, 0, time.Local)

	alarmFlags = []string{"7:30pm", "06:15:30 tea", "in 10m"}
	defer func() { alarmFlags = nil }()

	alarms, err := parseAlarms(now)
	if err != nil {
		t.Fatalf("parseAlarms failed: %v", err)
	}

	want := []string{"07:30:00 PM", "06:15:30", "14:10:00"}
	if len(alarms) != len(want) {
		t.Fatalf("Expected %d alarms, got %d", len(want), len(alarms))
	}
	for i, a := range alarms {
		if a.DisplayTime() != want[i] {
			t.Errorf("Alarm %d: got %s, want %s", i, a.DisplayTime(), want[i])
		}
	}

	if alarms[1].Label != "tea" {
		t.Errorf("Label not kept: %q", alarms[1].Label)
	}
}

func TestParseAlarmsInvalid(t *testing.T) {
	alarmFlags = []string{"25:00"}
	defer func() { alarmFlags = nil }()

	if _, err := parseAlarms(time.Now()); err == nil || !strings.Contains(err.Error(), "25:00") {
		t.Errorf("Expected error naming the bad alarm, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	if got := out.String(); got != "Chime dev\n" {
		t.Errorf("Wrong version output: %q", got)
	}
}

func TestRunWatchManyAlarms(t *testing.T) {
	alarmFlags = nil
	for i := 0; i < 20; i++ {
		alarmFlags = append(alarmFlags, fmt.Sprintf("%02d:15", i))
	}
	defer func() { alarmFlags = nil }()

	cfg = config.DefaultConfig()
	cfg.NotifyCommand = ""
	defer func() { cfg = nil }()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetContext(ctx)
	c.SetOut(&out)

	start := time.Now()
	if err := runWatch(c, nil); err != nil {
		t.Fatalf("runWatch failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("runWatch took %v to stop", elapsed)
	}

	if got := strings.Count(out.String(), "Alarm set for"); got != 20 {
		t.Errorf("Expected 20 alarms registered, got %d", got)
	}
}

func TestRunWatchRequiresAlarm(t *testing.T) {
	alarmFlags = nil
	if err := runWatch(&cobra.Command{}, nil); err == nil {
		t.Error("Expected error without --alarm")
	}
}

func TestBuildNotifierUsesTerminalForBell(t *testing.T) {
	c := config.DefaultConfig()
	c.NotifyCommand = ""
	c.Bell = true

	var term bytes.Buffer
	if err := buildNotifier(c, &term).Notify(context.Background(), "t", "b"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if term.String() != "\a" {
		t.Errorf("Bell not written to the terminal handle: %q", term.String())
	}

	w, closeTerminal := openTerminal()
	defer closeTerminal()
	if w == nil {
		t.Error("openTerminal returned no writer")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TwelveHour {
		t.Error("24-hour mode should be the default")
	}

	if cfg.SaveExitDelay != 2*time.Second {
		t.Errorf("Wrong default save exit delay: %v", cfg.SaveExitDelay)
	}

	if cfg.NotifyCommand != "notify-send" {
		t.Errorf("Wrong default notify command: %s", cfg.NotifyCommand)
	}

	if cfg.NotifyTitle != "CLI Clock Alarm" {
		t.Errorf("Wrong default notify title: %s", cfg.NotifyTitle)
	}

	if cfg.Colors["selected"] != "#00A300" {
		t.Errorf("Wrong selected color: %s", cfg.Colors["selected"])
	}

	for _, action := range Actions {
		if len(cfg.Keys(action)) == 0 {
			t.Errorf("No default keys for %s", action)
		}
	}

	if got := strings.Join(cfg.Keys("prev_field"), " "); got != "left h" {
		t.Errorf("Wrong prev_field keys: %s", got)
	}
}

func TestParseLine(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		line     string
		check    func(*Config) bool
		hasError bool
	}{
		{
			line: "set time_format 12h",
			check: func(c *Config) bool {
				return c.TwelveHour
			},
		},
		{
			line: "set notify_command /usr/bin/dunstify",
			check: func(c *Config) bool {
				return c.NotifyCommand == "/usr/bin/dunstify"
			},
		},
		{
			line: `set notify_title "Wake up"`,
			check: func(c *Config) bool {
				return c.NotifyTitle == "Wake up"
			},
		},
		{
			line: "set save_exit_delay 5",
			check: func(c *Config) bool {
				return c.SaveExitDelay == 5*time.Second
			},
		},
		{
			line: "bind x save",
			check: func(c *Config) bool {
				return strings.HasSuffix(c.KeyBindings["save"], ",x")
			},
		},
		{
			line: "color selected #ff0000",
			check: func(c *Config) bool {
				return c.Colors["selected"] == "#ff0000"
			},
		},
		{
			line:     "bind x explode",
			hasError: true,
		},
		{
			line:     "set time_format 36h",
			hasError: true,
		},
		{
			line:     "invalid command",
			hasError: true,
		},
		{
			line: "# comment line",
		},
		{
			line: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := cfg.parseLine(tt.line)

			if tt.hasError && err == nil {
				t.Error("Expected error but got none")
			}

			if !tt.hasError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Check failed for line: %s", tt.line)
			}
		})
	}
}

func TestSetVariable(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		value    string
		check    func(*Config) bool
		hasError bool
	}{
		{
			name:  "save_exit_delay",
			value: "1500ms",
			check: func(c *Config) bool {
				return c.SaveExitDelay == 1500*time.Millisecond
			},
		},
		{
			name:     "save_exit_delay",
			value:    "soon",
			hasError: true,
		},
		{
			name:  "bell",
			value: "1",
			check: func(c *Config) bool {
				return c.Bell
			},
		},
		{
			name:  "log_file",
			value: "~/chime.log",
			check: func(c *Config) bool {
				return !strings.HasPrefix(c.LogFile, "~") && strings.HasSuffix(c.LogFile, "chime.log")
			},
		},
		{
			name:  "log_level",
			value: "debug",
			check: func(c *Config) bool {
				return c.LogLevel == "debug"
			},
		},
		{
			name:  "time_format",
			value: "24",
			check: func(c *Config) bool {
				return !c.TwelveHour
			},
		},
		{
			name:     "unknown_variable",
			value:    "something",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			err := cfg.setVariable(tt.name, tt.value)

			if tt.hasError && err == nil {
				t.Error("Expected error but got none")
			}

			if !tt.hasError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Check failed for %s = %s", tt.name, tt.value)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "chimerc")

	content := `# Test config file
set time_format 12h
set notify_command dunstify
set bell true
set save_exit_delay 3s

bind n new_alarm
bind p new_alarm

color selected cyan
`

	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg, err := LoadFile(configFile)
	if err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if !cfg.TwelveHour {
		t.Error("Expected 12-hour mode")
	}

	if cfg.NotifyCommand != "dunstify" {
		t.Errorf("Wrong notify command: %s", cfg.NotifyCommand)
	}

	if !cfg.Bell {
		t.Error("Bell should be enabled")
	}

	if cfg.SaveExitDelay != 3*time.Second {
		t.Errorf("Wrong save exit delay: %v", cfg.SaveExitDelay)
	}

	if got := strings.Join(cfg.Keys("new_alarm"), " "); got != "n p" {
		t.Errorf("Wrong new_alarm keys: %s", got)
	}

	if got := strings.Join(cfg.Keys("save"), " "); got != "s" {
		t.Errorf("Unrelated binding changed: %s", got)
	}

	if cfg.Colors["selected"] != "cyan" {
		t.Errorf("Wrong selected color: %s", cfg.Colors["selected"])
	}

	if cfg.Path != configFile {
		t.Errorf("Wrong path: %s", cfg.Path)
	}
}

func TestLoadFileYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "chime.yaml")

	content := `time_format: 12h
save_exit_delay: 500ms
notify_title: Kettle
colors:
  selected: "#123456"
bindings:
  save: "enter"
`

	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg, err := LoadFile(configFile)
	if err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if !cfg.TwelveHour {
		t.Error("Expected 12-hour mode")
	}

	if cfg.SaveExitDelay != 500*time.Millisecond {
		t.Errorf("Wrong save exit delay: %v", cfg.SaveExitDelay)
	}

	if cfg.NotifyTitle != "Kettle" {
		t.Errorf("Wrong notify title: %s", cfg.NotifyTitle)
	}

	if cfg.NotifyCommand != "notify-send" {
		t.Errorf("Default notify command lost: %s", cfg.NotifyCommand)
	}

	if cfg.Colors["selected"] != "#123456" || cfg.Colors["normal"] != "#ffffff" {
		t.Errorf("Colors not merged: %v", cfg.Colors)
	}

	if got := strings.Join(cfg.Keys("save"), " "); got != "enter" {
		t.Errorf("Wrong save keys: %s", got)
	}

	if got := strings.Join(cfg.Keys("cancel"), " "); got != "esc" {
		t.Errorf("Default cancel binding lost: %s", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	bad := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("bindings:\n  explode: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("Expected error for unknown action")
	}

	badFormat := filepath.Join(tmpDir, "format.yml")
	if err := os.WriteFile(badFormat, []byte("time_format: 36h\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(badFormat); err == nil {
		t.Error("Expected error for invalid time_format")
	}

	badRC := filepath.Join(tmpDir, "badrc")
	if err := os.WriteFile(badRC, []byte("set time_format 12h\nfrobnicate\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(badRC)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected line 2 error, got %v", err)
	}

	if _, err := LoadFile(filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "custom")
	if err := os.WriteFile(configFile, []byte("set time_format 12h\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CHIME_CONFIG", configFile)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.TwelveHour || cfg.Path != configFile {
		t.Errorf("Config not loaded from CHIME_CONFIG: %+v", cfg)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CHIME_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Path != "" {
		t.Errorf("Expected defaults, loaded %s", cfg.Path)
	}
}

func TestLoadFileYAMLMatchesRC(t *testing.T) {
	tmpDir := t.TempDir()

	rc := filepath.Join(tmpDir, "chimerc")
	if err := os.WriteFile(rc, []byte("set time_format 12h\nset save_exit_delay 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	yml := filepath.Join(tmpDir, "chime.yaml")
	if err := os.WriteFile(yml, []byte("time_format: 12h\nsave_exit_delay: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fromRC, err := LoadFile(rc)
	if err != nil {
		t.Fatalf("Failed to load rc: %v", err)
	}
	fromYAML, err := LoadFile(yml)
	if err != nil {
		t.Fatalf("Failed to load yaml: %v", err)
	}

	if fromRC.TwelveHour != fromYAML.TwelveHour || !fromYAML.TwelveHour {
		t.Errorf("time_format differs: rc=%v yaml=%v", fromRC.TwelveHour, fromYAML.TwelveHour)
	}
	if fromRC.SaveExitDelay != fromYAML.SaveExitDelay || fromYAML.SaveExitDelay != 5*time.Second {
		t.Errorf("save_exit_delay differs: rc=%v yaml=%v", fromRC.SaveExitDelay, fromYAML.SaveExitDelay)
	}
}

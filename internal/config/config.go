package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwarden/chime/internal/notify"
)

type Config struct {
	// Clock settings. Both go through setVariable in either file format, so
	// YAML uses the rc spelling (time_format: 12h, save_exit_delay: 2s).
	TwelveHour    bool          `yaml:"-"`
	SaveExitDelay time.Duration `yaml:"-"`

	// Notification settings
	NotifyCommand string `yaml:"notify_command"`
	NotifyTitle   string `yaml:"notify_title"`
	Bell          bool   `yaml:"bell"`

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	// UI settings
	Colors      map[string]string `yaml:"colors"`
	KeyBindings map[string]string `yaml:"bindings"` // action -> comma separated keys

	// Path is the file the config was loaded from, empty for defaults.
	Path string `yaml:"-"`
}

const (
	DefaultSaveExitDelay = 2 * time.Second
	DefaultNotifyTitle   = "CLI Clock Alarm"
)

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	bindRe  = regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
)

var errUnknownAction = errors.New("unknown action")

// Actions lists every bindable action.
var Actions = []string{
	"quit",
	"new_alarm",
	"toggle_format",
	"prev_field",
	"next_field",
	"increment",
	"decrement",
	"save",
	"cancel",
}

func DefaultConfig() *Config {
	return &Config{
		TwelveHour:    false,
		SaveExitDelay: DefaultSaveExitDelay,

		NotifyCommand: notify.DefaultCommand,
		NotifyTitle:   DefaultNotifyTitle,
		Bell:          false,

		LogFile:  filepath.Join(stateDir(), "chime.log"),
		LogLevel: "info",

		Colors: map[string]string{
			"normal":    "#ffffff",
			"selected":  "#00A300",
			"separator": "#b7b7b7",
			"border":    "#00A300",
			"hint":      "241",
			"triggered": "220",
		},

		KeyBindings: map[string]string{
			"quit":          "q,ctrl+c",
			"new_alarm":     "a",
			"toggle_format": "t",
			"prev_field":    "left,h",
			"next_field":    "right,l",
			"increment":     "up,k",
			"decrement":     "down,j",
			"save":          "s",
			"cancel":        "esc",
		},
	}
}

// Keys returns the keys bound to action.
func (c *Config) Keys(action string) []string {
	var keys []string
	for _, k := range strings.Split(c.KeyBindings[action], ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// LoadConfig loads the first config file found, or the defaults if none exists.
func LoadConfig() (*Config, error) {
	home, _ := os.UserHomeDir()

	configPaths := []string{
		os.Getenv("CHIME_CONFIG"),
		xdgPath("chimerc"),
		xdgPath("chime.yaml"),
		filepath.Join(home, ".config", "chime", "chimerc"),
		filepath.Join(home, ".chimerc"),
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return DefaultConfig(), nil
}

// LoadFile loads path over the defaults. Files ending in .yaml or .yml are
// read as YAML, anything else as an rc file.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = config.loadYAML(path)
	default:
		err = config.loadFromFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config from %s: %w", path, err)
	}

	config.Path = path
	return config, nil
}

func (c *Config) loadYAML(path string) error {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}

	// Maps are merged key by key so a partial file keeps the other defaults.
	colors, bindings := c.Colors, c.KeyBindings
	c.Colors, c.KeyBindings = nil, nil

	if err := yaml.Unmarshal(contents, c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	var clock struct {
		TimeFormat    string `yaml:"time_format"`
		SaveExitDelay string `yaml:"save_exit_delay"`
	}
	if err := yaml.Unmarshal(contents, &clock); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if clock.TimeFormat != "" {
		if err := c.setVariable("time_format", clock.TimeFormat); err != nil {
			return err
		}
	}
	if clock.SaveExitDelay != "" {
		if err := c.setVariable("save_exit_delay", clock.SaveExitDelay); err != nil {
			return err
		}
	}

	for k, v := range c.Colors {
		colors[k] = v
	}
	for action, keys := range c.KeyBindings {
		if !knownAction(action) {
			return fmt.Errorf("%w: %s", errUnknownAction, action)
		}
		bindings[action] = keys
	}
	c.Colors, c.KeyBindings = colors, bindings

	return c.validate()
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	rebound := map[string]bool{}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// The first bind for an action replaces the default keys, later
		// ones add to it.
		if matches := bindRe.FindStringSubmatch(line); matches != nil && !rebound[matches[2]] {
			rebound[matches[2]] = true
			delete(c.KeyBindings, matches[2])
		}

		if err := c.parseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	return c.validate()
}

func (c *Config) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	// Handle set commands: set variable value
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// Handle bind commands: bind key action
	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		key, action := matches[1], matches[2]
		if !knownAction(action) {
			return fmt.Errorf("%w: %s", errUnknownAction, action)
		}
		if existing := c.KeyBindings[action]; existing != "" {
			key = existing + "," + key
		}
		c.KeyBindings[action] = key
		return nil
	}

	// Handle color commands: color element color_spec
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = strings.Trim(matches[2], `"'`)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "time_format":
		switch strings.ToLower(value) {
		case "12h", "12", "12-hour":
			c.TwelveHour = true
		case "24h", "24", "24-hour":
			c.TwelveHour = false
		default:
			return fmt.Errorf("invalid time_format: %s", value)
		}

	case "save_exit_delay":
		delay, err := time.ParseDuration(value)
		if err != nil {
			// Try parsing as seconds
			if seconds, err2 := strconv.Atoi(value); err2 == nil {
				delay = time.Duration(seconds) * time.Second
			} else {
				return fmt.Errorf("invalid save_exit_delay: %s", value)
			}
		}
		c.SaveExitDelay = delay

	case "notify_command":
		c.NotifyCommand = value

	case "notify_title":
		c.NotifyTitle = value

	case "bell":
		c.Bell = strings.ToLower(value) == "true" || value == "1"

	case "log_file":
		c.LogFile = expandHome(value)

	case "log_level":
		c.LogLevel = value

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func (c *Config) validate() error {
	if c.SaveExitDelay < 0 {
		return fmt.Errorf("save_exit_delay must not be negative: %s", c.SaveExitDelay)
	}
	if c.NotifyTitle == "" {
		c.NotifyTitle = DefaultNotifyTitle
	}
	c.LogFile = expandHome(c.LogFile)
	return nil
}

func knownAction(action string) bool {
	for _, a := range Actions {
		if a == action {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func xdgPath(name string) string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "chime", name)
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "chime")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "chime")
	}
	return os.TempDir()
}

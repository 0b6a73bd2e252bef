package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"verdandi/internal/remind"
)

// Config is built once at startup and passed into the core; the core never
// reads ambient state.
type Config struct {
	RemindersFile string
	RemindCommand string
	Editor        string

	WeekStartsMonday bool
	TimeFormat       string
	DateFormat       string

	// Busy-level accounting
	BusyAlgorithm   int           // remind.BusyCount or remind.BusyDuration
	UntimedDuration time.Duration // duration credited to untimed reminders
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		RemindersFile: filepath.Join(home, ".reminders"),
		RemindCommand: "remind",
		Editor:        getDefaultEditor(),

		WeekStartsMonday: true,
		TimeFormat:       "15:04",
		DateFormat:       "Jan 2, 2006",

		BusyAlgorithm:   remind.BusyCount,
		UntimedDuration: time.Hour,
	}
}

// LoadConfig reads the first rc file found among the candidate locations.
// No rc file at all is fine; a broken one is not.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	configPaths := []string{
		os.Getenv("VERDANDI_CONFIG"),
		filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "verdandi", "verdandirc"),
		filepath.Join(os.Getenv("HOME"), ".config", "verdandi", "verdandirc"),
		filepath.Join(os.Getenv("HOME"), ".verdandirc"),
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	return config, nil
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.parseLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

var setRe = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)

func (c *Config) parseLine(line string) error {
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}
	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	value = strings.Trim(value, `"'`)

	switch name {
	case "reminders_file":
		if strings.HasPrefix(value, "~/") {
			home, _ := os.UserHomeDir()
			value = filepath.Join(home, value[2:])
		}
		c.RemindersFile = value

	case "remind_command":
		c.RemindCommand = value

	case "editor":
		c.Editor = value

	case "week_starts_monday":
		c.WeekStartsMonday = strings.ToLower(value) == "true" || value == "1"

	case "time_format":
		c.TimeFormat = value

	case "date_format":
		c.DateFormat = value

	case "busy_algorithm":
		// Unknown algorithms are rejected here, not defaulted silently.
		switch value {
		case "1":
			c.BusyAlgorithm = remind.BusyCount
		case "2":
			c.BusyAlgorithm = remind.BusyDuration
		default:
			return fmt.Errorf("invalid busy_algorithm: %s", value)
		}

	case "untimed_duration":
		minutes, err := strconv.ParseFloat(value, 64)
		if err != nil || minutes < 0 {
			return fmt.Errorf("invalid untimed_duration: %s", value)
		}
		c.UntimedDuration = time.Duration(minutes * float64(time.Minute))

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func getDefaultEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return "vi"
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"verdandi/internal/remind"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RemindCommand != "remind" {
		t.Errorf("Wrong default remind command: %s", cfg.RemindCommand)
	}

	if !strings.HasSuffix(cfg.RemindersFile, ".reminders") {
		t.Errorf("Wrong default reminders file: %s", cfg.RemindersFile)
	}

	if !cfg.WeekStartsMonday {
		t.Error("Week should start on Monday by default")
	}

	if cfg.BusyAlgorithm != remind.BusyCount {
		t.Errorf("Wrong default busy algorithm: %d", cfg.BusyAlgorithm)
	}

	if cfg.UntimedDuration != time.Hour {
		t.Errorf("Wrong default untimed duration: %v", cfg.UntimedDuration)
	}

	if cfg.TimeFormat != "15:04" {
		t.Errorf("Wrong default time format: %s", cfg.TimeFormat)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line     string
		check    func(*Config) bool
		hasError bool
	}{
		{
			line: "set remind_command /usr/bin/remind",
			check: func(c *Config) bool {
				return c.RemindCommand == "/usr/bin/remind"
			},
		},
		{
			line: "set reminders_file /home/user/calendar.rem",
			check: func(c *Config) bool {
				return c.RemindersFile == "/home/user/calendar.rem"
			},
		},
		{
			line: "set week_starts_monday false",
			check: func(c *Config) bool {
				return !c.WeekStartsMonday
			},
		},
		{
			line: "set busy_algorithm 2",
			check: func(c *Config) bool {
				return c.BusyAlgorithm == remind.BusyDuration
			},
		},
		{
			line:     "set busy_algorithm 3",
			hasError: true,
		},
		{
			line: "set untimed_duration 90",
			check: func(c *Config) bool {
				return c.UntimedDuration == 90*time.Minute
			},
		},
		{
			line: "set untimed_duration 7.5",
			check: func(c *Config) bool {
				return c.UntimedDuration == 7*time.Minute+30*time.Second
			},
		},
		{
			line:     "set untimed_duration soon",
			hasError: true,
		},
		{
			line: `set editor "vim"`,
			check: func(c *Config) bool {
				return c.Editor == "vim"
			},
		},
		{
			line:     "set no_such_variable 1",
			hasError: true,
		},
		{
			line:     "frobnicate the calendar",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.parseLine(tt.line)

			if tt.hasError {
				if err == nil {
					t.Error("Expected an error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("Config not updated as expected by %q", tt.line)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "verdandirc")

	content := `# verdandi configuration
set remind_command /opt/remind/bin/remind
set busy_algorithm 2
set untimed_duration 30

set week_starts_monday 0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.loadFromFile(path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.RemindCommand != "/opt/remind/bin/remind" {
		t.Errorf("Wrong remind command: %s", cfg.RemindCommand)
	}
	if cfg.BusyAlgorithm != remind.BusyDuration {
		t.Errorf("Wrong busy algorithm: %d", cfg.BusyAlgorithm)
	}
	if cfg.UntimedDuration != 30*time.Minute {
		t.Errorf("Wrong untimed duration: %v", cfg.UntimedDuration)
	}
	if cfg.WeekStartsMonday {
		t.Error("week_starts_monday 0 should disable Monday start")
	}
}

func TestLoadFromFileReportsLineNumber(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "verdandirc")

	content := "set remind_command remind\nset busy_algorithm 9\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	err := cfg.loadFromFile(path)
	if err == nil {
		t.Fatal("Expected an error for an invalid busy_algorithm")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Error should name the offending line: %v", err)
	}
}

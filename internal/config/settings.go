package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/PixPMusic/midiparams/internal/logging"
)

// Settings are the workbench settings, read from config.yaml and
// MIDIPARAMS_* environment variables
type Settings struct {
	Log       LogSettings       `mapstructure:"log"`
	MIDI      MIDISettings      `mapstructure:"midi"`
	Workbench WorkbenchSettings `mapstructure:"workbench"`
}

// LogSettings controls logging
type LogSettings struct {
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
	// Format is "text" or "json"
	Format string `mapstructure:"format"`
}

// MIDISettings controls device selection
type MIDISettings struct {
	// Port is the name of the input port selected when an instance has no
	// stored selection. Empty means the first named port.
	Port string `mapstructure:"port"`
}

// WorkbenchSettings controls the standalone host
type WorkbenchSettings struct {
	// Instance names the saved parameter set to load; created on first use
	Instance string `mapstructure:"instance"`
	// PollIntervalMs is how often slot values are read back for display
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
}

// PollInterval returns the poll interval as a time.Duration
func (w WorkbenchSettings) PollInterval() time.Duration {
	return time.Duration(w.PollIntervalMs) * time.Millisecond
}

// Default returns the default settings
func Default() *Settings {
	return &Settings{
		Log: LogSettings{
			Level:  logging.LevelInfo,
			Format: logging.FormatText,
		},
		Workbench: WorkbenchSettings{
			Instance:       DefaultInstance,
			PollIntervalMs: 50,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.format", defaults.Log.Format)
	viper.SetDefault("midi.port", defaults.MIDI.Port)
	viper.SetDefault("workbench.instance", defaults.Workbench.Instance)
	viper.SetDefault("workbench.poll_interval_ms", defaults.Workbench.PollIntervalMs)
}

// Load reads the settings from viper and validates them
func Load() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings for values the workbench cannot use
func (s *Settings) Validate() error {
	var problems []string
	if !logging.IsValidLevel(s.Log.Level) {
		problems = append(problems, fmt.Sprintf("log.level: unknown level %q", s.Log.Level))
	}
	switch strings.ToLower(s.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		problems = append(problems, fmt.Sprintf("log.format: must be %q or %q", logging.FormatText, logging.FormatJSON))
	}
	if strings.TrimSpace(s.Workbench.Instance) == "" {
		problems = append(problems, "workbench.instance: must not be empty")
	}
	if s.Workbench.PollIntervalMs < 10 {
		problems = append(problems, "workbench.poll_interval_ms: must be at least 10")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Dir returns the platform-appropriate config directory
func Dir() string {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return ".midiparams"
	}
	return filepath.Join(configHome, "midiparams")
}

// SettingsFile returns the path to the settings file
func SettingsFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

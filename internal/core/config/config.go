// Package config handles configuration loading and validation for hirewatch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/hirewatch/internal/core/header"
	"github.com/colonyops/hirewatch/internal/core/notify"
	"github.com/colonyops/hirewatch/internal/core/styles"
)

// DefaultFrameInterval is the progress bar redraw period (about 60 fps).
const DefaultFrameInterval = 16 * time.Millisecond

// Config holds the application configuration.
type Config struct {
	Toasts  ToastConfig   `yaml:"toasts"`
	Header  header.Config `yaml:"header"`
	TUI     TUIConfig     `yaml:"tui"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// ToastConfig holds notification toast settings.
type ToastConfig struct {
	Durations     notify.Durations `yaml:"durations"`
	MaxVisible    int              `yaml:"max_visible"`    // <0 disables the cap
	PauseOnHover  bool             `yaml:"pause_on_hover"` // pointer over a toast pauses it
	FrameInterval time.Duration    `yaml:"frame_interval"`
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Toasts: ToastConfig{
			Durations:     notify.DefaultDurations(),
			MaxVisible:    5,
			PauseOnHover:  true,
			FrameInterval: DefaultFrameInterval,
		},
		Header: header.DefaultConfig(),
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path. A missing file yields the
// defaults. dataDir is stored on the result as-is.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by an explicit empty entry in the file.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	d := &c.Toasts.Durations
	if d.Success == 0 {
		d.Success = defaults.Toasts.Durations.Success
	}
	if d.Error == 0 {
		d.Error = defaults.Toasts.Durations.Error
	}
	if d.Warning == 0 {
		d.Warning = defaults.Toasts.Durations.Warning
	}
	if d.Info == 0 {
		d.Info = defaults.Toasts.Durations.Info
	}
	if c.Toasts.MaxVisible == 0 {
		c.Toasts.MaxVisible = defaults.Toasts.MaxVisible
	}
	if c.Toasts.FrameInterval == 0 {
		c.Toasts.FrameInterval = defaults.Toasts.FrameInterval
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate reports the values that cannot be clamped into something
// meaningful. Negative header values are not among them; header.New clamps
// those to zero.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateToasts(),
		criterio.Run("tui.theme", c.TUI.Theme, isKnownTheme),
	)
}

// LogFile returns the default log file location inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "hirewatch.log")
}

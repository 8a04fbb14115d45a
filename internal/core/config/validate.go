package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/hirewatch/internal/core/notify"
	"github.com/colonyops/hirewatch/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep runs the checks of Validate plus file system checks on the
// config file and data directory, reporting every field problem at once.
// An empty configPath skips the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.Validate(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateToasts() error {
	var errs criterio.FieldErrorsBuilder
	for _, k := range notify.Kinds {
		if d := c.Toasts.Durations.For(k); d < 0 {
			errs = errs.Append("toasts.durations."+string(k), fmt.Errorf("must not be negative, got %s", d))
		}
	}
	if c.Toasts.FrameInterval < time.Millisecond {
		errs = errs.Append("toasts.frame_interval", fmt.Errorf("must be at least 1ms, got %s", c.Toasts.FrameInterval))
	}
	return errs.ToError()
}

func isKnownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q, available: %v", name, styles.ThemeNames())
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// Warnings returns settings that are valid but probably unintended.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Toasts.MaxVisible < 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "toasts",
			Item:     "max_visible",
			Message:  "negative value disables the cap; toasts can fill the screen",
		})
	}
	if !c.Toasts.PauseOnHover {
		warnings = append(warnings, ValidationWarning{
			Category: "toasts",
			Item:     "pause_on_hover",
			Message:  "toasts keep counting down under the pointer",
		})
	}
	if c.Toasts.FrameInterval > 100*time.Millisecond {
		warnings = append(warnings, ValidationWarning{
			Category: "toasts",
			Item:     "frame_interval",
			Message:  fmt.Sprintf("%s between frames makes progress bars stutter", c.Toasts.FrameInterval),
		})
	}
	for _, neg := range []struct {
		item     string
		negative bool
	}{
		{"scroll_top_threshold", c.Header.ScrollTopThreshold < 0},
		{"hide_delay", c.Header.HideDelay < 0},
		{"hover_zone_height", c.Header.HoverZoneHeight < 0},
	} {
		if neg.negative {
			warnings = append(warnings, ValidationWarning{
				Category: "header",
				Item:     neg.item,
				Message:  "negative value is treated as 0",
			})
		}
	}
	if c.Header.HideDelay > time.Second {
		warnings = append(warnings, ValidationWarning{
			Category: "header",
			Item:     "hide_delay",
			Message:  fmt.Sprintf("header lingers %s after scrolling down", c.Header.HideDelay),
		})
	}

	return warnings
}

package commands

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/colonyops/hirewatch/internal/core/config"
	"github.com/colonyops/hirewatch/internal/core/metrics"
)

// Flags holds global flag values and the state built from them in the root
// Before hook.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	DebugPort  int

	// Config is loaded in the Before hook and available to all commands.
	Config *config.Config

	// Registry collects the metrics exposed by the debug server.
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "hirewatch", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "hirewatch")
}

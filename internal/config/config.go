// Package config provides configuration types, defaults, and persistence for the ag CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for ag.
type Config struct {
	RegistryPath    string        `mapstructure:"registry_path"`
	BackupDir       string        `mapstructure:"backup_dir"`
	BackupRetention int           `mapstructure:"backup_retention"`
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout"`
	ScanRoots       []string      `mapstructure:"scan_roots"`
	FeedbackPath    string        `mapstructure:"feedback_path"`
	LogFile         string        `mapstructure:"log_file"`
	Debug           bool          `mapstructure:"debug"`
}

// Defaults returns the default configuration.
// All paths live under ~/.agentic so a fresh machine needs no config file.
func Defaults() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	root := filepath.Join(home, ".agentic")

	return Config{
		RegistryPath:    filepath.Join(root, "venv_registry.json"),
		BackupDir:       filepath.Join(root, "backups"),
		BackupRetention: 10,
		ProbeTimeout:    10 * time.Second,
		ScanRoots:       []string{filepath.Join(home, "projects")},
		FeedbackPath:    filepath.Join(root, "feedback.json"),
		LogFile:         filepath.Join(root, "logs", "ag.log"),
	}
}

// Validate checks the configuration for values the core components cannot
// operate with. Zero values that have sane fallbacks are filled in by the
// callers, not rejected here.
func Validate(cfg Config) error {
	if cfg.RegistryPath == "" {
		return fmt.Errorf("registry_path is required")
	}
	if cfg.BackupDir == "" {
		return fmt.Errorf("backup_dir is required")
	}
	if cfg.BackupRetention < 1 {
		return fmt.Errorf("backup_retention must be at least 1, got %d", cfg.BackupRetention)
	}
	if cfg.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be positive, got %s", cfg.ProbeTimeout)
	}
	return nil
}

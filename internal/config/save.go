package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with yaml tags matching the viper keys.
// Durations are rendered as strings ("10s") so viper can parse them back.
type fileConfig struct {
	RegistryPath    string   `yaml:"registry_path"`
	BackupDir       string   `yaml:"backup_dir"`
	BackupRetention int      `yaml:"backup_retention"`
	ProbeTimeout    string   `yaml:"probe_timeout"`
	ScanRoots       []string `yaml:"scan_roots"`
	FeedbackPath    string   `yaml:"feedback_path"`
	LogFile         string   `yaml:"log_file"`
}

// WriteDefaultConfig writes the default configuration to the given path.
// Used on first run when no config file exists anywhere in the lookup order.
func WriteDefaultConfig(path string) error {
	return WriteConfig(path, Defaults())
}

// WriteConfig persists a configuration file atomically (write to temp, then rename).
func WriteConfig(path string, cfg Config) error {
	out := fileConfig{
		RegistryPath:    cfg.RegistryPath,
		BackupDir:       cfg.BackupDir,
		BackupRetention: cfg.BackupRetention,
		ProbeTimeout:    cfg.ProbeTimeout.String(),
		ScanRoots:       cfg.ScanRoots,
		FeedbackPath:    cfg.FeedbackPath,
		LogFile:         cfg.LogFile,
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".agentic.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

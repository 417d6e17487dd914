// Package cmd implements the ag command tree.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentic-framework/agentic-core/internal/config"
	"github.com/agentic-framework/agentic-core/internal/log"
	"github.com/agentic-framework/agentic-core/internal/venv"
)

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "ag",
	Short: "Operator CLI for a personal development workspace",
	Long: `ag manages a personal development workspace: a registry of Python
virtual environments, workspace configuration, and feedback tracking.

The virtual environment registry tracks metadata about environments living
elsewhere on disk, survives file corruption via rotated backups, and can
reconcile its state against the filesystem with 'ag venv cleanup' and
'ag venv repair'.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/agentic/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging to the log file")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("registry_path", defaults.RegistryPath)
	viper.SetDefault("backup_dir", defaults.BackupDir)
	viper.SetDefault("backup_retention", defaults.BackupRetention)
	viper.SetDefault("probe_timeout", defaults.ProbeTimeout)
	viper.SetDefault("scan_roots", defaults.ScanRoots)
	viper.SetDefault("feedback_path", defaults.FeedbackPath)
	viper.SetDefault("log_file", defaults.LogFile)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .agentic/config.yaml (current directory)
		// 2. ~/.config/agentic/config.yaml (user config)
		if _, err := os.Stat(".agentic/config.yaml"); err == nil {
			viper.SetConfigFile(".agentic/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "agentic"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a default user config.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "agentic", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)

	if debugFlag || os.Getenv("AGENTIC_DEBUG") != "" {
		cfg.Debug = true
	}
	if cfg.Debug {
		if cleanup, err := log.Init(cfg.LogFile); err == nil {
			logCleanup = cleanup
		}
	}
}

// newStore builds the registry store from the active configuration.
func newStore() *venv.Store {
	return venv.NewStore(cfg.RegistryPath, cfg.BackupDir, cfg.BackupRetention)
}

// newVerifier builds a verifier over the real interpreter prober.
func newVerifier() *venv.Verifier {
	return venv.NewVerifier(venv.ExecProber{}, cfg.ProbeTimeout)
}

// newManager builds the registry operation layer.
func newManager() *venv.Manager {
	return venv.NewManager(newStore(), newVerifier())
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if logCleanup != nil {
		logCleanup()
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

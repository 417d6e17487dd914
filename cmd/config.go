package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/agentic-framework/agentic-core/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage workspace configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !viper.IsSet(args[0]) {
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}
		fmt.Println(viper.Get(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value and persist it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !viper.IsSet(args[0]) {
			return fmt.Errorf("unknown configuration key: %s", args[0])
		}
		viper.Set(args[0], args[1])

		var updated config.Config
		if err := viper.Unmarshal(&updated); err != nil {
			return fmt.Errorf("applying value: %w", err)
		}
		if err := config.Validate(updated); err != nil {
			return err
		}

		if err := config.WriteConfig(configFilePath(), updated); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(viper.AllSettings())
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		fmt.Printf("Reset configuration at %s\n", path)
		return nil
	},
}

// configFilePath is the file config mutations write to: the loaded config
// file when one exists, otherwise the default user config location.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agentic/config.yaml"
	}
	return filepath.Join(home, ".config", "agentic", "config.yaml")
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configResetCmd)
	rootCmd.AddCommand(configCmd)
}

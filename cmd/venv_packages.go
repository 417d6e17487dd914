package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	packagesPath        string
	packagesProjectName string
)

var venvUpdatePackagesCmd = &cobra.Command{
	Use:   "update-packages",
	Short: "Refresh the installed-package snapshot for an environment",
	Long: `Re-probe the installed packages of a registered environment and store
the snapshot in the registry. The snapshot is only refreshed by this
command; add and check never touch it. Fails if the environment does not
verify as valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if packagesPath == "" && packagesProjectName == "" {
			return fmt.Errorf("either --venv-path or --project-name is required")
		}

		updated, err := newManager().UpdatePackages(packagesPath, packagesProjectName)
		if err != nil {
			return err
		}

		fmt.Printf("Updated package list for %d environment(s)\n", updated)
		return nil
	},
}

var venvUpdateLastUsedCmd = &cobra.Command{
	Use:   "update-last-used <venv-path>",
	Short: "Mark an environment as used",
	Long:  `Refresh the last-used timestamp for a registered environment.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newManager().Touch(args[0]); err != nil {
			return err
		}
		fmt.Printf("Updated last-used timestamp for %s\n", args[0])
		return nil
	},
}

func init() {
	venvUpdatePackagesCmd.Flags().StringVar(&packagesPath, "venv-path", "", "path of the environment")
	venvUpdatePackagesCmd.Flags().StringVar(&packagesProjectName, "project-name", "", "project name of the environment(s)")
	venvCmd.AddCommand(venvUpdatePackagesCmd)
	venvCmd.AddCommand(venvUpdateLastUsedCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	removePath        string
	removeProjectName string
)

var venvRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a virtual environment from the registry",
	Long: `Remove a virtual environment from the registry.

Matching by --venv-path removes the single record with that canonical path.
Matching by --project-name removes every record carrying that name, since
project names are not unique. The environment directory itself is never
touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if removePath == "" && removeProjectName == "" {
			return fmt.Errorf("either --venv-path or --project-name is required")
		}

		removed, err := newManager().Remove(removePath, removeProjectName)
		if err != nil {
			return err
		}

		fmt.Printf("Removed %d virtual environment(s) from registry\n", removed)
		return nil
	},
}

func init() {
	venvRemoveCmd.Flags().StringVar(&removePath, "venv-path", "", "path of the environment to remove")
	venvRemoveCmd.Flags().StringVar(&removeProjectName, "project-name", "", "project name of the environment(s) to remove")
	venvCmd.AddCommand(venvRemoveCmd)
}

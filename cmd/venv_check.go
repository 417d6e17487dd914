package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-framework/agentic-core/internal/presentation"
	"github.com/agentic-framework/agentic-core/internal/venv"
)

var (
	checkPath        string
	checkProjectName string
)

var venvCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a registered virtual environment",
	Long: `Look up a virtual environment by path or project name and verify it
against the live filesystem. A valid result refreshes the environment's
last-used timestamp. Exits non-zero unless the environment is valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkPath == "" && checkProjectName == "" {
			return fmt.Errorf("either --venv-path or --project-name is required")
		}

		result, err := newManager().Check(checkPath, checkProjectName)
		if err != nil {
			return err
		}

		presentation.NewFormatter(os.Stdout).FormatCheck(result)

		if result.Status != venv.StatusValid {
			return fmt.Errorf("environment is %s", result.Status)
		}
		return nil
	},
}

func init() {
	venvCheckCmd.Flags().StringVar(&checkPath, "venv-path", "", "path of the environment to check")
	venvCheckCmd.Flags().StringVar(&checkProjectName, "project-name", "", "project name of the environment to check")
	venvCmd.AddCommand(venvCheckCmd)
}

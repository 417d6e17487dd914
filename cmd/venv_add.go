package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-framework/agentic-core/internal/venv"
)

var (
	addPythonVersion string
	addDescription   string
	addNoVerify      bool
	addForce         bool
)

var venvAddCmd = &cobra.Command{
	Use:   "add <venv-path> <project-name>",
	Short: "Add an existing virtual environment to the registry",
	Long: `Add an existing virtual environment to the registry.

The path is verified before registration: the environment must contain
bin/python and bin/pip, and the interpreter must answer a version query.
Adding a path that is already registered updates the existing entry in
place, preserving its creation timestamp.

Use --no-verify to skip verification, or --force to register an environment
that fails it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := newManager()

		rec, err := manager.Add(venv.AddOptions{
			Path:          args[0],
			ProjectName:   args[1],
			PythonVersion: addPythonVersion,
			Description:   addDescription,
			Verify:        !addNoVerify,
			Force:         addForce,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added virtual environment: %s (%s, Python %s)\n",
			rec.Path, rec.ProjectName, rec.PythonVersion)
		return nil
	},
}

func init() {
	venvAddCmd.Flags().StringVar(&addPythonVersion, "python-version", "",
		"Python version (detected automatically if not provided)")
	venvAddCmd.Flags().StringVar(&addDescription, "description", "",
		"description of the virtual environment")
	venvAddCmd.Flags().BoolVar(&addNoVerify, "no-verify", false,
		"skip verification of the virtual environment")
	venvAddCmd.Flags().BoolVar(&addForce, "force", false,
		"register even if verification fails")
	venvCmd.AddCommand(venvAddCmd)
}

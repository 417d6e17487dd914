package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-framework/agentic-core/internal/presentation"
)

var (
	listVerbose      bool
	listShowPackages bool
)

var venvListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered virtual environments",
	Long: `List registered virtual environments, most recently used first.

Each entry is re-verified against the filesystem at list time:
  ✓  valid (binaries present, interpreter responds)
  !  present but invalid
  ✗  directory missing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := newManager().List()
		if err != nil {
			return err
		}

		formatter := presentation.NewFormatter(os.Stdout)
		formatter.FormatEnvironments(entries, listVerbose || listShowPackages, listShowPackages)
		return nil
	},
}

func init() {
	venvListCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "show detailed information")
	venvListCmd.Flags().BoolVarP(&listShowPackages, "packages", "p", false, "show installed packages (implies verbose fields)")
	venvCmd.AddCommand(venvListCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-framework/agentic-core/internal/venv"
)

var venvCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove registry entries whose directories no longer exist",
	Long: `Remove registry entries for virtual environments whose directories have
been deleted from disk. Environments that exist but fail verification are
kept; fix or remove those explicitly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		verifier := newVerifier()
		reconciler := venv.NewReconciler(store, verifier, venv.NewManager(store, verifier), venv.DenyAll{})

		removed, err := reconciler.Cleanup()
		if err != nil {
			return err
		}

		fmt.Printf("Cleanup complete. Removed %d non-existent virtual environment(s).\n", removed)
		return nil
	},
}

func init() {
	venvCmd.AddCommand(venvCleanupCmd)
}

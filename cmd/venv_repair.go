package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-framework/agentic-core/internal/venv"
)

var (
	repairRoots []string
	repairYes   bool
)

var venvRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Scan for untracked virtual environments and register them",
	Long: `Scan the configured roots (or the --root overrides) for virtual
environments the registry does not know about. Each valid candidate is
proposed for registration with an interactive prompt; pass --yes to accept
all candidates for scripted use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		roots := repairRoots
		if len(roots) == 0 {
			roots = cfg.ScanRoots
		}
		if len(roots) == 0 {
			return fmt.Errorf("no scan roots configured; set scan_roots or pass --root")
		}

		var confirm venv.Confirmer = newTerminalConfirmer()
		if repairYes {
			confirm = venv.ConfirmAll{}
		}

		store := newStore()
		verifier := newVerifier()
		reconciler := venv.NewReconciler(store, verifier, venv.NewManager(store, verifier), confirm)

		discovered, err := reconciler.Repair(roots)
		if err != nil {
			return err
		}

		if discovered == 0 {
			fmt.Println("No new virtual environments found.")
		} else {
			fmt.Printf("Registered %d new virtual environment(s).\n", discovered)
		}
		return nil
	},
}

func init() {
	venvRepairCmd.Flags().StringArrayVar(&repairRoots, "root", nil, "directory to scan (repeatable, overrides configured scan_roots)")
	venvRepairCmd.Flags().BoolVarP(&repairYes, "yes", "y", false, "register all discovered environments without prompting")
	venvCmd.AddCommand(venvRepairCmd)
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var venvCmd = &cobra.Command{
	Use:   "venv",
	Short: "Manage the virtual environment registry",
	Long: `Manage the registry of Python virtual environments.

The registry tracks metadata (path, project, interpreter version, package
snapshot) about environments created elsewhere; it never creates or deletes
the environments themselves.`,
}

func init() {
	rootCmd.AddCommand(venvCmd)
}

// terminalConfirmer prompts the operator on stdin for each proposal.
type terminalConfirmer struct {
	reader *bufio.Reader
}

func newTerminalConfirmer() *terminalConfirmer {
	return &terminalConfirmer{reader: bufio.NewReader(os.Stdin)}
}

// Confirm prints the prompt and reads a y/n answer. Anything that is not an
// explicit yes counts as no.
func (c *terminalConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s (y/n): ", prompt)
	answer, err := c.reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

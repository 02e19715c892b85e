package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/coop/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "coop",
		Short:   "In-memory ledger for a small financial cooperative",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newShellCommand())

	return rootCmd
}

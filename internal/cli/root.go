// Package cli implements schedctl, the offline companion of the scheduler
// service.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the schedctl root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schedctl",
		Short: "Offline tools for the fleet scheduler",
		Long: `schedctl runs the scheduler's rules against files, without a running service.

Examples:
  schedctl allocate --trailer trailer.json --product diesel --quantity 12000
  schedctl verify snapshot.json
  schedctl verify --json snapshot.json`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(NewAllocateCommand())
	rootCmd.AddCommand(NewVerifyCommand())

	return rootCmd
}

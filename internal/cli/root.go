package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "openpr",
		Short: "Openpr creates GitHub pull requests from the branch you are on",
		Long: `Openpr creates GitHub pull requests from the branch you are on.

It resolves the repository behind your git remote, offers the branches of
the upstream repository as well as your fork as merge targets, and
validates the request before anything is sent to GitHub.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

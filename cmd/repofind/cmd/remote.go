package cmd

import (
	"github.com/spf13/cobra"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Commands to manage configured remotes",
	Long: `Commands to manage the locally configured remotes.

Configured remotes are the highest-priority discovery strategy: a remote
advertising a requested ref is reported without touching the network.`,
}

func init() {
	rootCmd.AddCommand(remoteCmd)
}

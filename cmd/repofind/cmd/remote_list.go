package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured remotes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "remote_list", err)
		}(time.Now())

		var remotes []string
		remotes, err = remotesStore().ListRemotes(context.Background())
		if err != nil {
			wrapFatalln("list remotes", err)
			return
		}
		for _, remote := range remotes {
			infoLogger.Println(remote)
		}
	},
}

func init() {
	addRemotesDirFlag(remoteListCmd)
	addCacheDirFlag(remoteListCmd)
	remoteCmd.AddCommand(remoteListCmd)
}

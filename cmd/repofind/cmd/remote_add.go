package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/oneconcern/repofind/pkg/model"
	"github.com/oneconcern/repofind/pkg/remoteconfig"
	"github.com/spf13/cobra"
)

var remoteAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Add a configured remote",
	Long: `Add a configured remote.

Refs advertised with --ref make the remote eligible when those refs are
requested. A checksum may be pinned with REF=CHECKSUM; without one the
checksum is recorded as unknown.

Adding a remote that is already configured fails, unless --force is given
to replace it.`,
	Example: `% repofind remote add exampleos https://repo.example.com/ostree \
    --ref exampleos/x86_64/standard`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "remote_add", err)
		}(time.Now())

		name, url := args[0], args[1]

		var refs model.RefChecksums
		if len(repofindFlags.remote.refs) > 0 {
			refs = make(model.RefChecksums, len(repofindFlags.remote.refs))
			for _, spec := range repofindFlags.remote.refs {
				ref, sum, _ := strings.Cut(spec, "=")
				refs[ref] = sum
			}
			if err = model.ValidateRefChecksums(refs); err != nil {
				wrapFatalln("invalid --ref", err)
				return
			}
		}

		desc := remoteconfig.RemoteDescriptor{
			URL:  url,
			Refs: refs,
		}
		if repofindFlags.remote.noGPGVerify {
			verify := false
			desc.GPGVerify = &verify
			desc.GPGVerifySummary = &verify
		}

		if err = remotesStore().SaveRemote(context.Background(), name, desc); err != nil {
			wrapFatalln("save remote", err)
			return
		}
		infoLogger.Printf("Added remote %q.", name)
	},
}

func init() {
	addRemotesDirFlag(remoteAddCmd)
	addCacheDirFlag(remoteAddCmd)
	addDisableFsyncFlag(remoteAddCmd)
	addRefFlag(remoteAddCmd)
	addNoGPGVerifyFlag(remoteAddCmd)
	addForceFlag(remoteAddCmd)
	remoteCmd.AddCommand(remoteAddCmd)
}

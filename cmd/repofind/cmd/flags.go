package cmd

import (
	"time"

	"github.com/oneconcern/repofind/pkg/dlogger"
	"github.com/oneconcern/repofind/pkg/remoteconfig"
	"github.com/spf13/cobra"
)

type rootFlagsT struct {
	config     string
	loglevel   string
	remotesDir string
	metrics    metricsFlags
}

type findFlagsT struct {
	cacheDir     string
	disableFsync bool
	timeout      time.Duration
}

type remoteFlagsT struct {
	refs        []string
	noGPGVerify bool
	force       bool
}

type flagsT struct {
	root   rootFlagsT
	find   findFlagsT
	remote remoteFlagsT
}

var repofindFlags flagsT

func addConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&repofindFlags.root.config, "config", "",
		"Set the config file for this command")
}

func addLogLevelFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&repofindFlags.root.loglevel, "loglevel", dlogger.LogLevelInfo,
		"The logging level (info, debug, none)")
}

func addRemotesDirFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&repofindFlags.root.remotesDir, "remotes", "",
		"The directory holding remote descriptors")
}

func addCacheDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&repofindFlags.find.cacheDir, "cache-dir", "",
		"Use an alternate configuration directory for this invocation")
}

func addDisableFsyncFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&repofindFlags.find.disableFsync, "disable-fsync", false,
		"Do not invoke fsync() when writing remote descriptors")
}

func addTimeoutFlag(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&repofindFlags.find.timeout, "timeout", 0,
		"Bound the whole resolution with a timeout (e.g. 30s). 0 means no timeout")
}

func addRefFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&repofindFlags.remote.refs, "ref", nil,
		"Advertise a ref served by this remote, as REF or REF=CHECKSUM (repeatable)")
}

func addNoGPGVerifyFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&repofindFlags.remote.noGPGVerify, "no-gpg-verify", false,
		"Disable signature verification for this remote")
}

func addForceFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&repofindFlags.remote.force, "force", false,
		"Replace the remote if it is already configured")
}

func addMetricsFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Var(&repofindFlags.root.metrics, "metrics",
		"Toggle metrics collection (true/false)")
	cmd.PersistentFlags().StringVar(&repofindFlags.root.metrics.URL, "metrics-url", "",
		"Fully qualified URL of the metrics collection backend")
}

// remotesStore builds the remote configuration store configured by flags.
// The per-invocation cache dir takes precedence over the configured
// remotes directory.
func remotesStore() remoteconfig.Store {
	dir := repofindFlags.root.remotesDir
	if repofindFlags.find.cacheDir != "" {
		dir = repofindFlags.find.cacheDir
	}
	return remoteconfig.New(
		remoteconfig.WithDir(dir),
		remoteconfig.WithFsyncDisabled(repofindFlags.find.disableFsync),
		remoteconfig.WithOverwrite(repofindFlags.remote.force),
	)
}

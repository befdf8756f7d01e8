package cmd

import (
	"context"
	"sort"
	"time"

	"github.com/oneconcern/repofind/pkg/finder"
	cfgfinder "github.com/oneconcern/repofind/pkg/finder/config"
	"github.com/oneconcern/repofind/pkg/finder/mount"
	"github.com/oneconcern/repofind/pkg/model"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find REF [REF...]",
	Short: "Find remotes able to serve the given refs",
	Long: `Find remotes able to serve the given refs.

Every discovery strategy is queried in parallel: locally configured
remotes with matching advertised refs, and mounted removable volumes
carrying repositories for the refs. The combined candidates are printed
in priority order. An empty result list is not an error.`,
	Example: `% repofind find exampleos/x86_64/standard
Result 0: file:///run/media/usb/repo
 - Priority: 50
 - Summary last modified: unknown
 - Refs:
  - exampleos/x86_64/standard`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "find", err)
		}(time.Now())

		ctx := context.Background()
		if repofindFlags.find.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, repofindFlags.find.timeout)
			defer cancel()
		}

		var results model.Results
		results, err = finder.ResolveAll(ctx, buildFinders(), args,
			finder.Logger(logger),
			finder.WithMetrics(repofindFlags.root.metrics.IsEnabled()),
		)
		if err != nil {
			wrapFatalln("resolve refs", err)
			return
		}
		printResults(results)
	},
}

// buildFinders assembles the discovery strategies queried by find.
// Patched in tests.
var buildFinders = func() []finder.Finder {
	return []finder.Finder{
		mount.New(mount.Logger(logger)),
		cfgfinder.New(remotesStore(), cfgfinder.Logger(logger)),
	}
}

func printResults(results model.Results) {
	if len(results) == 0 {
		infoLogger.Println("No results.")
		return
	}
	for i, result := range results {
		lastModified := "unknown"
		if !result.SummaryLastModified.IsZero() {
			lastModified = result.SummaryLastModified.UTC().Format(time.RFC3339)
		}

		refs := result.Refs.Refs()
		sort.Strings(refs)

		infoLogger.Printf("Result %d: %s", i, result.Remote.URL)
		infoLogger.Printf(" - Priority: %d", result.Priority)
		infoLogger.Printf(" - Summary last modified: %s", lastModified)
		infoLogger.Printf(" - Refs:")
		for _, ref := range refs {
			infoLogger.Printf("  - %s", ref)
		}
	}
}

func init() {
	addRemotesDirFlag(findCmd)
	addCacheDirFlag(findCmd)
	addDisableFsyncFlag(findCmd)
	addTimeoutFlag(findCmd)
	rootCmd.AddCommand(findCmd)
}

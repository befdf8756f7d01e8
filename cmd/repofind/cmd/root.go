package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/oneconcern/repofind/pkg/dlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repofind",
	Short: "Repofind locates remote sources for content refs",
	Long: `Repofind queries several discovery strategies in parallel to work out
which remote repositories are able to serve a set of content refs:
locally configured remotes and removable volumes carrying a well-known
repository layout.

Results are merged into a single priority-ordered list. A strategy that
fails only removes its own contribution, never the whole query.
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		logger, err = dlogger.GetConsoleLogger(repofindFlags.root.loglevel)
		if err != nil {
			wrapFatalln("initialize logger", err)
			return
		}
		initMetrics()
	},
}

var (
	config *CLIConfig
	logger *zap.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		wrapFatalWithCodef(1, "%v", err)
	}
}

func init() {
	log.SetFlags(0)
	addConfigFlag(rootCmd)
	addLogLevelFlag(rootCmd)
	addMetricsFlags(rootCmd)
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("remotes", filepath.Join(".repofind", "remotes"))
	switch {
	case repofindFlags.root.config != "":
		viper.SetConfigFile(repofindFlags.root.config)
	case os.Getenv("REPOFIND_CONFIG") != "":
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv("REPOFIND_CONFIG"))
	default:
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.repofind")
		viper.AddConfigPath("/etc/repofind")
		viper.SetConfigName("repofind")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setRepofindParams(&repofindFlags)
}

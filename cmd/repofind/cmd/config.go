package cmd

import (
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Remotes    string `json:"remotes" yaml:"remotes"`       // Directory holding remote descriptors
	LogLevel   string `json:"loglevel" yaml:"loglevel"`     // Default log level
	Metrics    *bool  `json:"metrics" yaml:"metrics"`       // Toggle metrics collection
	MetricsURL string `json:"metricsURL" yaml:"metricsURL"` // Metrics backend URL
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// setRepofindParams fills in flag values left unset on the command line
// from the configuration file.
func (c *CLIConfig) setRepofindParams(flags *flagsT) {
	if flags.root.remotesDir == "" {
		flags.root.remotesDir = c.Remotes
	}
	if flags.root.loglevel == "" {
		flags.root.loglevel = c.LogLevel
	}
	if flags.root.metrics.Enabled == nil {
		flags.root.metrics.Enabled = c.Metrics
	}
	if flags.root.metrics.URL == "" {
		flags.root.metrics.URL = c.MetricsURL
	}
}

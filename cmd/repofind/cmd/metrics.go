package cmd

import (
	"strconv"
	"time"

	"github.com/oneconcern/repofind/pkg/metrics"
	"github.com/oneconcern/repofind/pkg/metrics/exporters/influxdb"
)

type metricsFlags struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"` // pointer because we want to distinguish unset from false
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	m       *M
}

func (m *metricsFlags) IsEnabled() bool {
	return m.Enabled != nil && *m.Enabled
}

// String implements pflag.Value
func (m *metricsFlags) String() string {
	if m.Enabled == nil {
		return "false"
	}
	return strconv.FormatBool(*m.Enabled)
}

// Set implements pflag.Value
func (m *metricsFlags) Set(value string) error {
	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	m.Enabled = &enabled
	return nil
}

// Type implements pflag.Value
func (m *metricsFlags) Type() string {
	return "bool"
}

// M describes metrics for the cmd package
type M struct {
	Usage *metrics.UsageMetrics
}

// initMetrics sets up the metrics exporter once, when metrics are enabled
func initMetrics() {
	if !repofindFlags.root.metrics.IsEnabled() {
		return
	}
	store, err := influxdb.NewStore(
		influxdb.WithURL(repofindFlags.root.metrics.URL),
		influxdb.WithTimeout(5*time.Second),
	)
	if err != nil {
		wrapFatalln("initialize metrics backend", err)
		return
	}
	metrics.Init(
		metrics.WithBasePath("repofind"),
		metrics.WithExporter(influxdb.NewExporter(influxdb.WithStore(store))),
	)
	repofindFlags.root.metrics.m = metrics.EnsureMetrics("cli", func() interface{} {
		return &M{
			Usage: metrics.NewUsageMetrics("cli"),
		}
	}).(*M)
}

// cliUsage records a usage metric in the CLI context in a single go.
// This is intended to be used in some defer statement.
//
// Metrics are flushed as soon as the command is done.
func cliUsage(t0 time.Time, command string, err error) {
	if repofindFlags.root.metrics.IsEnabled() && repofindFlags.root.metrics.m != nil {
		repofindFlags.root.metrics.m.Usage.UsedAll(t0, command)(err)
		metrics.Flush()
	}
}

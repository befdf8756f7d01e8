// Package metrics collects usage and resolution metrics with opencensus.
//
// Metrics collection is a global, opt-in facility: a top-level package
// (such as the CLI driver) calls Init once to define the exporter and
// global tags, then instrumented packages register their metric sets
// lazily with EnsureMetrics.
package metrics

import (
	"context"
	"path"
	"sync"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	// global settings for metrics
	mp       *settings
	initOnce sync.Once
)

type settings struct {
	basePath  string
	contexter func() context.Context
	exporter  view.Exporter
	tags      map[string]string

	// registered metric sets, keyed by unique location
	modules   map[string]interface{}
	exclusive sync.Mutex

	d time.Duration
}

func defaultSettings() *settings {
	return &settings{
		contexter: context.Background,
		modules:   make(map[string]interface{}),
		// reporting period is left to the opencensus default (10s)
	}
}

// Init global settings for metrics collection, such as global tags and
// exporter setup.
//
// Init may be called multiple times: only the first time matters.
// Metric sets may be registered at init time or later on.
func Init(opts ...Option) {
	initOnce.Do(func() {
		mp = defaultSettings()
		for _, apply := range opts {
			apply(mp)
		}
		if mp.exporter != nil {
			view.RegisterExporter(mp.exporter)
		}
		if mp.d > 0 {
			view.SetReportingPeriod(mp.d)
		}
	})
}

// Flush reports all collected metrics to the exporter backend.
//
// There is no flushing mechanism in opencensus: this temporarily lowers
// the reporting period so the worker picks up pending rows.
func Flush() {
	if mp == nil {
		return
	}
	view.SetReportingPeriod(100 * time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	if mp.d > 0 {
		view.SetReportingPeriod(mp.d)
	}
}

// EnsureMetrics allows for lazy registration of metric sets.
//
// It may safely be called several times for the same location: only the
// first registration is retained, and subsequent calls return it.
func EnsureMetrics(location string, create func() interface{}) interface{} {
	if mp == nil {
		Init()
	}
	mp.exclusive.Lock()
	defer mp.exclusive.Unlock()

	if m, ok := mp.modules[location]; ok {
		return m
	}
	m := create()
	mp.modules[location] = m
	return m
}

// name scopes a measure name under the configured base path and a location
func name(location, metric string) string {
	if mp == nil {
		Init()
	}
	return path.Join(mp.basePath, location, metric)
}

func mergeTags(tags []map[string]string) []tag.Mutator {
	merged := make(map[string]string)
	if mp != nil {
		for k, v := range mp.tags {
			merged[k] = v
		}
	}
	for _, m := range tags {
		for k, v := range m {
			merged[k] = v
		}
	}
	mutators := make([]tag.Mutator, 0, len(merged))
	for k, v := range merged {
		key := tag.MustNewKey(k)
		mutators = append(mutators, tag.Upsert(key, v))
	}
	return mutators
}

// Inc increments a counter-like metric
func Inc(counter *stats.Int64Measure, tags ...map[string]string) {
	_ = stats.RecordWithTags(mp.contexter(), mergeTags(tags), counter.M(1))
}

// Int64 sets a value to a measurement
func Int64(measure *stats.Int64Measure, value int64, tags ...map[string]string) {
	_ = stats.RecordWithTags(mp.contexter(), mergeTags(tags), measure.M(value))
}

// Float64 sets a value to a measurement
func Float64(measure *stats.Float64Measure, value float64, tags ...map[string]string) {
	_ = stats.RecordWithTags(mp.contexter(), mergeTags(tags), measure.M(value))
}

// Since feeds a millisecs timing measurement from some start time
func Since(start time.Time, measure *stats.Float64Measure, tags ...map[string]string) {
	ms := float64(time.Since(start).Nanoseconds()) / 1e6
	_ = stats.RecordWithTags(mp.contexter(), mergeTags(tags), measure.M(ms))
}

// newCounter builds and registers a counter measure with a sum view
func newCounter(location, metric, description string) *stats.Int64Measure {
	m := stats.Int64(name(location, metric), description, stats.UnitDimensionless)
	_ = view.Register(&view.View{
		Name:        m.Name(),
		Description: description,
		Measure:     m,
		Aggregation: view.Sum(),
	})
	return m
}

// newTiming builds and registers a milliseconds measure with a distribution view
func newTiming(location, metric, description string) *stats.Float64Measure {
	m := stats.Float64(name(location, metric), description, stats.UnitMilliseconds)
	_ = view.Register(&view.View{
		Name:        m.Name(),
		Description: description,
		Measure:     m,
		Aggregation: view.Distribution(1, 10, 100, 1000, 10000),
	})
	return m
}

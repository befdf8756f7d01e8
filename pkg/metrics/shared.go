package metrics

import (
	"time"

	"go.opencensus.io/stats"
)

// UsageMetrics is a common set of metrics reporting about entry point usage
type UsageMetrics struct {
	Count    *stats.Int64Measure
	Failures *stats.Int64Measure
	Timing   *stats.Float64Measure
}

// NewUsageMetrics builds and registers a usage metric set scoped under location
func NewUsageMetrics(location string) *UsageMetrics {
	return &UsageMetrics{
		Count:    newCounter(location, "usageCount", "number of calls to an entry point"),
		Failures: newCounter(location, "usageFailures", "number of failed calls to an entry point"),
		Timing:   newTiming(location, "usageTiming", "response time of an entry point in milliseconds"),
	}
}

func (u *UsageMetrics) tags(operation string) map[string]string {
	return map[string]string{"kind": "usage", "operation": operation}
}

// Inc increments the usage counter for an operation
func (u *UsageMetrics) Inc(operation string) {
	Inc(u.Count, u.tags(operation))
}

// Failed records a failed call to an operation
func (u *UsageMetrics) Failed(operation string) {
	Inc(u.Failures, u.tags(operation))
}

// UsedAll records all usage metrics for an operation in one go.
//
// It is intended to be used in a defer statement, with the error captured
// when the deferred call fires:
//
//	func (m *myType) MyInstrumentedFunc() (err error) {
//	  defer myUsage.UsedAll(time.Now(), "MyInstrumentedFunc")(err)
//	  ...
//	}
func (u *UsageMetrics) UsedAll(start time.Time, operation string) func(error) {
	return func(err error) {
		Since(start, u.Timing, u.tags(operation))
		Inc(u.Count, u.tags(operation))
		if err != nil {
			Inc(u.Failures, u.tags(operation))
		}
	}
}

// ResolveMetrics is a set of metrics reporting about ref resolution outcomes
type ResolveMetrics struct {
	Results        *stats.Int64Measure
	FinderFailures *stats.Int64Measure
}

// NewResolveMetrics builds and registers a resolution metric set scoped under location
func NewResolveMetrics(location string) *ResolveMetrics {
	return &ResolveMetrics{
		Results:        newCounter(location, "resultCount", "number of candidate remotes resolved"),
		FinderFailures: newCounter(location, "finderFailures", "number of finders that failed to contribute"),
	}
}

// Record captures the outcome of one combined resolution
func (m *ResolveMetrics) Record(results, failures int) {
	Int64(m.Results, int64(results), map[string]string{"kind": "resolve"})
	if failures > 0 {
		Int64(m.FinderFailures, int64(failures), map[string]string{"kind": "resolve"})
	}
}

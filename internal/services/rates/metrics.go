package rates

import "time"

const (
	ResultSuccess  = "success"
	ResultFallback = "fallback"
)

// MetricsCollector receives rate fetch outcomes.
type MetricsCollector interface {
	RecordFetch(source, result string)
	RecordFetchDuration(source string, d time.Duration)
	RecordCacheHit(source string)
	RecordCacheMiss(source string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordFetch(string, string)                 {}
func (n *NoopMetricsCollector) RecordFetchDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordCacheHit(string)                      {}
func (n *NoopMetricsCollector) RecordCacheMiss(string)                     {}

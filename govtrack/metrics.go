package govtrack

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector records fetch, replay and error counts. A nil collector
// records nothing.
type MetricsCollector struct {
	fetchesTotal  *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	replayLookups *prometheus.CounterVec
	recordedTotal *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		fetchesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "govtrack_fetches_total",
				Help: "Total number of fetches by resource and mode",
			},
			[]string{"resource", "mode"},
		),
		fetchDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "govtrack_fetch_duration_seconds",
				Help:    "Duration of live GovTrack requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource"},
		),
		replayLookups: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "govtrack_replay_lookups_total",
				Help: "Offline cache lookups by result (hit or miss)",
			},
			[]string{"result"},
		),
		recordedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "govtrack_recorded_responses_total",
				Help: "Live responses appended to the replay cache",
			},
			[]string{"resource"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "govtrack_errors_total",
				Help: "Errors returned to callers by kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordFetch counts a fetch; duration is only observed for live calls.
func (mc *MetricsCollector) RecordFetch(resource, mode string, duration time.Duration) {
	if mc == nil {
		return
	}
	mc.fetchesTotal.WithLabelValues(resource, mode).Inc()
	if mode == modeOnline {
		mc.fetchDuration.WithLabelValues(resource).Observe(duration.Seconds())
	}
}

// RecordReplay counts an offline lookup.
func (mc *MetricsCollector) RecordReplay(hit bool) {
	if mc == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	mc.replayLookups.WithLabelValues(result).Inc()
}

// RecordAppend counts a response written to the cache.
func (mc *MetricsCollector) RecordAppend(resource string) {
	if mc == nil {
		return
	}
	mc.recordedTotal.WithLabelValues(resource).Inc()
}

// RecordError counts an error by kind.
func (mc *MetricsCollector) RecordError(kind ErrorKind) {
	if mc == nil {
		return
	}
	mc.errorsTotal.WithLabelValues(string(kind)).Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	CyclesTotal     prometheus.Counter
	TrackersChecked prometheus.Counter
	LookupsTotal    prometheus.Counter
	AlertsSent      prometheus.Counter
	CycleDuration   prometheus.Histogram
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		CyclesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_cycles_total",
			Help:      "The total number of completed poll cycles",
		}),
		TrackersChecked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trackers_checked_total",
			Help:      "The total number of tracker checks across all cycles",
		}),
		LookupsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_lookups_total",
			Help:      "The total number of external price lookups",
		}),
		AlertsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_alerts_sent_total",
			Help:      "The total number of price alerts delivered",
		}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_cycle_duration_seconds",
			Help:      "Time taken to run one poll cycle",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

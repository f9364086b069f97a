package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "f1calendar"

var (
	Generations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generations_total",
		Help:      "Calendar generation runs by result",
	}, []string{"result"})

	Events = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events",
		Help:      "Number of events in the last generated calendar",
	})

	SkippedRaces = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "skipped_races",
		Help:      "Races left out of the last generated calendar because their start could not be parsed",
	})

	LastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful generation",
	})

	FetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Time spent fetching the season schedule",
		Buckets:   prometheus.DefBuckets,
	})

	StaticRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "static_requests_total",
		Help:      "Static file requests by status code",
	}, []string{"code"})
)

func init() {
	prometheus.MustRegister(Generations, Events, SkippedRaces, LastSuccess, FetchDuration, StaticRequests)
}

// Result labels for Generations.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

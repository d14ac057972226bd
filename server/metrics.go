// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are the instruments exported by a Server on its own registry.
type metrics struct {
	requests *prometheus.CounterVec   // by request kind
	results  *prometheus.CounterVec   // accepted parse results, by outcome
	stale    prometheus.Counter       // superseded parse results
	duration *prometheus.HistogramVec // analysis stage durations
	sessions prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jinspect_requests_total",
			Help: "Total number of analysis requests received",
		}, []string{"kind"}),
		results: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jinspect_results_total",
			Help: "Total number of parse results delivered",
		}, []string{"outcome"}),
		stale: f.NewCounter(prometheus.CounterOpts{
			Name: "jinspect_stale_results_total",
			Help: "Total number of parse results discarded as superseded",
		}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jinspect_analysis_duration_seconds",
			Help:    "Duration of analysis stages in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "jinspect_active_sessions",
			Help: "Number of open analysis sessions",
		}),
	}
}

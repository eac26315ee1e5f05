package conversation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "meditation_sessions_active",
		Help: "Live meditation sessions currently registered",
	})

	metricBargeIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meditation_barge_in_total",
		Help: "User speech events that interrupted AI playback",
	})

	metricUtterances = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meditation_utterances_total",
		Help: "Finalized user utterances handed to the response pipeline",
	})

	metricPipelineCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meditation_pipeline_completed_total",
		Help: "Response pipeline invocations that delivered a turn",
	})

	metricPipelineCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meditation_pipeline_cancelled_total",
		Help: "Response pipeline invocations abandoned before delivery",
	})

	metricStaleDebounce = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meditation_debounce_stale_total",
		Help: "Debounce timer fires superseded by a newer fragment",
	})
)

// Package metrics holds the prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WorkoutsGenerated counts successful workout generations by type and style.
	WorkoutsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workout_app_workouts_generated_total",
		Help: "Number of workouts generated, by workout type and style.",
	}, []string{"type", "style"})

	// GenerationFailures counts failed generation attempts by reason.
	GenerationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workout_app_workout_generation_failures_total",
		Help: "Number of failed workout generation attempts, by reason.",
	}, []string{"reason"})

	// DrillsSampled observes how many drills a generation actually drew.
	DrillsSampled = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "workout_app_drills_sampled",
		Help:    "Distribution of sample sizes returned by workout generation.",
		Buckets: []float64{1, 2, 3, 5, 8, 10, 15, 20},
	})

	// HTTPRequestDuration observes handler latency by method, path and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "workout_app_http_request_duration_seconds",
		Help:    "HTTP request latency, by method, route and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

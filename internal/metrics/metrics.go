// Package metrics holds the Prometheus collectors of the settlement service.
// They register on the default registry, which cmd/server exposes on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PlansComputed counts plans run through the engine, by algorithm.
var PlansComputed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "settleup",
	Subsystem: "engine",
	Name:      "plans_computed_total",
	Help:      "Total settlement plans computed, by algorithm.",
}, []string{"algorithm"})

// PlanDuration tracks how long the engine takes per plan.
var PlanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "settleup",
	Subsystem: "engine",
	Name:      "plan_duration_seconds",
	Help:      "Time spent computing a settlement plan.",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
}, []string{"algorithm"})

// PlanSettlements tracks the number of settlements per plan.
var PlanSettlements = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "settleup",
	Subsystem: "engine",
	Name:      "plan_settlements",
	Help:      "Number of settlements in a computed plan.",
	Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
})

// EngineErrors counts rejected computations by error kind.
var EngineErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "settleup",
	Subsystem: "engine",
	Name:      "errors_total",
	Help:      "Total settlement computations rejected, by error kind.",
}, []string{"kind"})

// CacheRequests counts plan cache lookups by result (hit, miss, error).
var CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "settleup",
	Subsystem: "cache",
	Name:      "requests_total",
	Help:      "Total plan cache lookups, by result.",
}, []string{"result"})

// EventsPublished counts published events by subject and outcome.
var EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "settleup",
	Subsystem: "events",
	Name:      "published_total",
	Help:      "Total events published, by subject and outcome.",
}, []string{"subject", "outcome"})

// RPCRequests counts RPCs by procedure and connect code.
var RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "settleup",
	Subsystem: "rpc",
	Name:      "requests_total",
	Help:      "Total RPCs handled, by procedure and code.",
}, []string{"procedure", "code"})

// Package metrics exposes Prometheus instrumentation for guild generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GeneratorMetrics is what the generator records. NoOp satisfies it for tests and the CLI.
type GeneratorMetrics interface {
	RecordRun(outcome string, duration time.Duration)
	RecordPhase(phase, outcome string, duration time.Duration)
	RecordEntityOperation(entity, action string)
	RecordListenerFailure(kind string)
	RecordCommand(command, outcome string)
}

// Metrics is the Prometheus-backed GeneratorMetrics with its own registry.
type Metrics struct {
	registry *prometheus.Registry

	runs             *prometheus.CounterVec
	runDuration      *prometheus.HistogramVec
	phaseDuration    *prometheus.HistogramVec
	entityOperations *prometheus.CounterVec
	listenerFailures *prometheus.CounterVec
	commands         *prometheus.CounterVec
}

// New registers all collectors under namespace on a fresh registry.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_runs_total",
			Help:      "Guild generation runs by outcome",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_run_duration_seconds",
			Help:      "Wall time of a guild generation run",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"outcome"}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_phase_duration_seconds",
			Help:      "Wall time of a single generation phase",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase", "outcome"}),
		entityOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_operations_total",
			Help:      "Guild entities created or deleted",
		}, []string{"entity", "action"}),
		listenerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_listener_failures_total",
			Help:      "Event listeners that returned an error or panicked",
		}, []string{"kind"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Slash command invocations by outcome",
		}, []string{"command", "outcome"}),
	}
	registry.MustRegister(
		m.runs, m.runDuration, m.phaseDuration, m.entityOperations, m.listenerFailures, m.commands,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) RecordRun(outcome string, duration time.Duration) {
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *Metrics) RecordPhase(phase, outcome string, duration time.Duration) {
	m.phaseDuration.WithLabelValues(phase, outcome).Observe(duration.Seconds())
}

func (m *Metrics) RecordEntityOperation(entity, action string) {
	m.entityOperations.WithLabelValues(entity, action).Inc()
}

func (m *Metrics) RecordListenerFailure(kind string) {
	m.listenerFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordCommand(command, outcome string) {
	m.commands.WithLabelValues(command, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// NoOp discards everything.
type NoOp struct{}

func (NoOp) RecordRun(string, time.Duration)           {}
func (NoOp) RecordPhase(string, string, time.Duration) {}
func (NoOp) RecordEntityOperation(string, string)      {}
func (NoOp) RecordListenerFailure(string)              {}
func (NoOp) RecordCommand(string, string)              {}

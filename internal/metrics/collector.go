// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector aggregates the editor and persistence metrics.
type Collector struct {
	// Editor metrics
	editorActionsTotal    *prometheus.CounterVec
	editorRejectionsTotal *prometheus.CounterVec
	historyDepth          prometheus.Gauge
	undoTotal             prometheus.Counter
	redoTotal             prometheus.Counter

	// Persistence metrics
	savesTotal        *prometheus.CounterVec
	saveDuration      *prometheus.HistogramVec
	coalescedTotal    prometheus.Counter
	queueDepth        prometheus.Gauge
	discardedFlushers prometheus.Counter

	logger *zap.Logger
}

// NewCollector creates a metrics collector. All metrics are registered on
// the default registry under the given namespace.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.editorActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "editor_actions_total",
			Help:      "Total number of editor actions applied",
		},
		[]string{"action"},
	)

	c.editorRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "editor_rejections_total",
			Help:      "Total number of editor actions rejected by validation or the live guard",
		},
		[]string{"action"},
	)

	c.historyDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "editor_history_depth",
			Help:      "Current undo history depth (currentIndex)",
		},
	)

	c.undoTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "editor_undo_total",
			Help:      "Total number of undo operations applied",
		},
	)

	c.redoTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "editor_redo_total",
			Help:      "Total number of redo operations applied",
		},
	)

	c.savesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_saves_total",
			Help:      "Total number of workflow save attempts",
		},
		[]string{"variant", "status"}, // variant: draft, live; status: ok, error
	)

	c.saveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "workflow_save_duration_seconds",
			Help:      "Workflow save duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"variant"},
	)

	c.coalescedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_saves_coalesced_total",
			Help:      "Total number of queued documents superseded before being saved",
		},
	)

	c.queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workflow_save_queue_depth",
			Help:      "Number of documents waiting to be saved",
		},
	)

	c.discardedFlushers = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_saves_discarded_total",
			Help:      "Total number of queued saves discarded by restore or mode switch",
		},
	)

	return c
}

// RecordAction records one applied editor action.
func (c *Collector) RecordAction(action string) {
	if c == nil {
		return
	}
	c.editorActionsTotal.WithLabelValues(action).Inc()
}

// RecordRejection records one rejected editor action.
func (c *Collector) RecordRejection(action string) {
	if c == nil {
		return
	}
	c.editorRejectionsTotal.WithLabelValues(action).Inc()
}

// SetHistoryDepth records the current undo history depth.
func (c *Collector) SetHistoryDepth(depth int) {
	if c == nil {
		return
	}
	c.historyDepth.Set(float64(depth))
}

// RecordUndo records one applied undo.
func (c *Collector) RecordUndo() {
	if c == nil {
		return
	}
	c.undoTotal.Inc()
}

// RecordRedo records one applied redo.
func (c *Collector) RecordRedo() {
	if c == nil {
		return
	}
	c.redoTotal.Inc()
}

// RecordSave records one save attempt with its outcome.
func (c *Collector) RecordSave(variant string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.savesTotal.WithLabelValues(variant, status).Inc()
	c.saveDuration.WithLabelValues(variant).Observe(duration.Seconds())
}

// RecordCoalesced records a queued document superseded by a newer one.
func (c *Collector) RecordCoalesced() {
	if c == nil {
		return
	}
	c.coalescedTotal.Inc()
}

// SetQueueDepth records the current save queue depth.
func (c *Collector) SetQueueDepth(depth int) {
	if c == nil {
		return
	}
	c.queueDepth.Set(float64(depth))
}

// RecordDiscarded records queued saves dropped by Discard.
func (c *Collector) RecordDiscarded() {
	if c == nil {
		return
	}
	c.discardedFlushers.Inc()
}

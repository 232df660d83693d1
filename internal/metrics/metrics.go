package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Sync Engine Metrics
	SyncCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todosync_sync_cycles_total",
			Help: "Total number of sync cycles by trigger and result",
		},
		[]string{"trigger", "result"}, // result: "success", "error", "skipped", "coalesced"
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "todosync_sync_duration_seconds",
			Help:    "Duration of sync cycles in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	OperationsUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "todosync_operations_uploaded_total",
			Help: "Total number of compacted operations uploaded to the server",
		},
	)

	PendingOperations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "todosync_pending_operations",
			Help: "Current number of pending operations in the log",
		},
	)

	ConflictsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todosync_conflicts_resolved_total",
			Help: "Total number of resolved conflicts",
		},
		[]string{"severity", "action"},
	)

	QueueFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todosync_queue_failures_total",
			Help: "Total number of failed sync queue item uploads",
		},
		[]string{"collection", "permanent"},
	)

	// Realtime Transport Metrics
	RealtimeConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "todosync_realtime_connected",
			Help: "Whether the realtime channel is connected (1) or not (0)",
		},
	)

	RealtimeReconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "todosync_realtime_reconnects_total",
			Help: "Total number of realtime reconnect attempts",
		},
	)

	RealtimeMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todosync_realtime_messages_total",
			Help: "Total number of realtime messages",
		},
		[]string{"direction", "type"}, // direction: "in", "out"
	)

	// Network Monitor Metrics
	NetworkOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "todosync_network_online",
			Help: "Whether the server is reachable (1) or not (0)",
		},
	)
)

// RecordSyncCycle records one finished sync cycle
func RecordSyncCycle(trigger, result string, duration time.Duration) {
	SyncCycles.WithLabelValues(trigger, result).Inc()
	if duration > 0 {
		SyncDuration.Observe(duration.Seconds())
	}
}

// RecordConflict records one resolved conflict
func RecordConflict(severity, action string) {
	ConflictsResolved.WithLabelValues(severity, action).Inc()
}

// RecordQueueFailure records a failed queue item upload
func RecordQueueFailure(collection string, permanent bool) {
	p := "false"
	if permanent {
		p = "true"
	}
	QueueFailures.WithLabelValues(collection, p).Inc()
}

// SetBool sets a 0/1 gauge
func SetBool(g prometheus.Gauge, v bool) {
	if v {
		g.Set(1)
		return
	}
	g.Set(0)
}
